// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface, substitutable for the in-memory store when
// state has to survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
	"github.com/jpvieira/borga/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset drops all rows from every table.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	for _, table := range []string{"group_games", "groups", "tokens", "users", "games"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// The pure Go driver surfaces constraint errors by message only.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// userExists reports whether the user id is present.
func (s *SQLiteStore) userExists(ctx context.Context, q queryer, userID string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// queryer abstracts *sql.DB and *sql.Tx for shared lookups.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// notFoundUser builds the canonical user NOT_FOUND error.
func notFoundUser(userID string) error {
	return errs.NotFound("user not found", "userId", userID)
}

// notFoundGroup builds the canonical group NOT_FOUND error.
func notFoundGroup(userID, groupID string) error {
	return errs.NotFound("group not found", "userId", userID, "groupId", groupID)
}

// scanGame reads one game row in column order
// (id, name, url, image, publisher, amazon_rank, price).
func scanGame(row interface{ Scan(...any) error }) (*models.Game, error) {
	var g models.Game
	if err := row.Scan(&g.ID, &g.Name, &g.URL, &g.Image, &g.Publisher, &g.AmazonRank, &g.Price); err != nil {
		return nil, err
	}
	return &g, nil
}
