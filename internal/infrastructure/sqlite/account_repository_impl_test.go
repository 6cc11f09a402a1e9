package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"account-service/internal/domain/repository"
)

func openTestRepo(t *testing.T) *AccountRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestOpen_IsIdempotent(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "accounts.db")

	first, err := Open(path)
	req.NoError(err)
	id, err := first.Insert(context.Background(), "Ann", "ann@x.com", "hash")
	req.NoError(err)
	req.NoError(first.Close())

	// Re-opening an initialized file must not lose data or fail on the
	// existing schema.
	second, err := Open(path)
	req.NoError(err)
	defer func() { _ = second.Close() }()

	a, err := second.FindByID(context.Background(), id)
	req.NoError(err)
	req.NotNil(a)
	req.Equal("ann@x.com", a.Email)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestOpen_UnwritableLocation(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "accounts.db"))
	require.Error(t, err)
}

func TestInsert_AssignsIDAndTimestamps(t *testing.T) {
	req := require.New(t)
	repo := openTestRepo(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	id, err := repo.Insert(ctx, "Ann", "ann@x.com", "hash1")
	req.NoError(err)
	req.Positive(id)

	a, err := repo.FindByID(ctx, id)
	req.NoError(err)
	req.NotNil(a)
	req.Equal(id, a.ID)
	req.Equal("Ann", a.Name)
	req.Equal("ann@x.com", a.Email)
	req.Equal("hash1", a.PasswordHash)
	req.True(a.CreatedAt.After(before))
	req.Equal(a.CreatedAt, a.UpdatedAt)
}

func TestInsert_DuplicateEmail(t *testing.T) {
	req := require.New(t)
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, "Ann", "ann@x.com", "hash1")
	req.NoError(err)

	_, err = repo.Insert(ctx, "Bob", "ann@x.com", "hash2")
	req.ErrorIs(err, repository.ErrDuplicateEmail)

	// The original record stays untouched.
	a, err := repo.FindByEmail(ctx, "ann@x.com")
	req.NoError(err)
	req.NotNil(a)
	req.Equal(id, a.ID)
	req.Equal("Ann", a.Name)
	req.Equal("hash1", a.PasswordHash)
}

func TestInsert_EmailIsCaseSensitive(t *testing.T) {
	req := require.New(t)
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, "Ann", "ann@x.com", "hash1")
	req.NoError(err)
	_, err = repo.Insert(ctx, "Ann", "ANN@x.com", "hash2")
	req.NoError(err)
}

func TestFind_AbsentIsNotAnError(t *testing.T) {
	req := require.New(t)
	repo := openTestRepo(t)
	ctx := context.Background()

	a, err := repo.FindByID(ctx, 999)
	req.NoError(err)
	req.Nil(a)

	a, err = repo.FindByEmail(ctx, "nobody@x.com")
	req.NoError(err)
	req.Nil(a)
}

func TestUpdateName_UnknownID(t *testing.T) {
	req := require.New(t)
	repo := openTestRepo(t)
	ctx := context.Background()

	ok, err := repo.UpdateName(ctx, 999, "Ghost")
	req.NoError(err)
	req.False(ok)

	// No record appears as a side effect.
	a, err := repo.FindByID(ctx, 999)
	req.NoError(err)
	req.Nil(a)
}

func TestUpdateName_RefreshesUpdatedAtOnly(t *testing.T) {
	req := require.New(t)
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, "Ann", "ann@x.com", "hash1")
	req.NoError(err)
	created, err := repo.FindByID(ctx, id)
	req.NoError(err)

	time.Sleep(5 * time.Millisecond)

	ok, err := repo.UpdateName(ctx, id, "Annie")
	req.NoError(err)
	req.True(ok)

	updated, err := repo.FindByID(ctx, id)
	req.NoError(err)
	req.Equal("Annie", updated.Name)
	req.Equal(created.Email, updated.Email)
	req.Equal(created.CreatedAt, updated.CreatedAt)
	req.Equal(created.PasswordHash, updated.PasswordHash)
	req.True(updated.UpdatedAt.After(created.UpdatedAt))
}
