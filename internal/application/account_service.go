package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"account-service/internal/domain/entity"
	"account-service/internal/domain/event"
	repo "account-service/internal/domain/repository"
	"account-service/pkg/helpers"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
)

// EventPublisher delivers domain events best-effort; a false return means
// the event was dropped, which callers ignore.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event) bool
}

// Service orchestrates the account store and event publisher and owns the
// error taxonomy exposed to handlers. Any error other than the sentinels
// above is an internal failure.
type Service struct {
	Repo   repo.AccountRepository
	Pub    EventPublisher
	Logger *logrus.Logger
}

func NewService(r repo.AccountRepository, pub EventPublisher, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Pub: pub, Logger: logger}
}

// Register creates a new account and returns its id. The account is
// persisted before the created event is published; a dropped event never
// fails the registration.
func (s *Service) Register(ctx context.Context, name, email, password string) (int64, error) {
	if name == "" || email == "" || password == "" {
		return 0, fmt.Errorf("%w: name, email and password are required", ErrInvalidArgument)
	}
	existing, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("register lookup: %w", err)
	}
	if existing != nil {
		return 0, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		s.Logger.WithError(err).Error("password hashing failed")
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.Repo.Insert(ctx, name, email, hash)
	if err != nil {
		// Concurrent registration can slip past the lookup above; the
		// store's uniqueness constraint is authoritative.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return 0, ErrEmailTaken
		}
		s.Logger.WithError(err).Error("account creation failed")
		return 0, fmt.Errorf("create account: %w", err)
	}
	s.Pub.Publish(ctx, event.AccountCreated{AccountID: id, Name: name, Email: email})
	s.Logger.WithField("account_id", id).Info("account registered")
	return id, nil
}

// Authenticate verifies credentials and returns the account id. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (int64, error) {
	a, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("authenticate lookup: %w", err)
	}
	if a == nil {
		return 0, ErrInvalidCredentials
	}
	ok, err := helpers.VerifyPassword(a.PasswordHash, password)
	if err != nil {
		// A verification failure such as a malformed stored hash is not a
		// credential mismatch; it must surface as an internal error.
		s.Logger.WithError(err).WithField("account_id", a.ID).Error("password verification failed")
		return 0, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return 0, ErrInvalidCredentials
	}
	s.Logger.WithField("account_id", a.ID).Debug("account authenticated")
	return a.ID, nil
}

// GetProfile returns the account with id.
func (s *Service) GetProfile(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("profile lookup: %w", err)
	}
	if a == nil {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// UpdateName changes the display name and returns the refreshed account.
// The update is persisted before the updated event is published.
func (s *Service) UpdateName(ctx context.Context, id int64, name string) (*entity.Account, error) {
	if id <= 0 || name == "" {
		return nil, fmt.Errorf("%w: account id and name are required", ErrInvalidArgument)
	}
	ok, err := s.Repo.UpdateName(ctx, id, name)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", id).Error("name update failed")
		return nil, fmt.Errorf("update name: %w", err)
	}
	if !ok {
		return nil, ErrAccountNotFound
	}
	s.Pub.Publish(ctx, event.AccountUpdated{AccountID: id, Name: name})
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refetch after update: %w", err)
	}
	if a == nil {
		// The update succeeded, so an absent row here is a consistency
		// anomaly worth surfacing as an internal failure.
		return nil, fmt.Errorf("account %d missing after successful update", id)
	}
	s.Logger.WithField("account_id", id).Info("account name updated")
	return a, nil
}
