// Package sqlite provides the SQLite-backed account store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"account-service/internal/domain/entity"
	"account-service/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);`

// AccountRepository persists accounts in a SQLite database. Every call
// borrows its own connection from the database/sql pool; nothing is held
// across requests.
type AccountRepository struct {
	db *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (or creates) the account database at path and ensures the
// schema exists. Safe to call against an already-initialized file.
func Open(path string) (*AccountRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &AccountRepository{db: db}, nil
}

// Close closes the SQLite handle.
func (r *AccountRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *AccountRepository) Insert(ctx context.Context, name, email, passwordHash string) (int64, error) {
	now := toMillis(time.Now())
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, email, passwordHash, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert account id: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = ?
	`, id)
	return scanAccount(row)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = ?
	`, email)
	return scanAccount(row)
}

func (r *AccountRepository) UpdateName(ctx context.Context, id int64, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, updated_at = ?
		WHERE id = ?
	`, name, toMillis(time.Now()), id)
	if err != nil {
		return false, fmt.Errorf("update account name: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update account name: %w", err)
	}
	return n > 0, nil
}

func scanAccount(row *sql.Row) (*entity.Account, error) {
	a := &entity.Account{}
	var createdAt, updatedAt int64
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
