package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
)

// CreateUser inserts a new user and mints its session token.
func (s *SQLiteStore) CreateUser(ctx context.Context, userID, name, passwordHash string) (*models.User, string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user := &models.User{
		ID:           userID,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, name, password_hash, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Name, user.PasswordHash, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, "", errs.AlreadyExists("user already exists", "userId", userID)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to insert user: %w", err)
	}

	token := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO tokens (token, user_id) VALUES (?, ?)",
		token, userID,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to insert token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return user, token, nil
}

// GetUser retrieves a user by id.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, password_hash, created_at FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFoundUser(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// TokenForUser returns the token minted for the user at registration.
func (s *SQLiteStore) TokenForUser(ctx context.Context, userID string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		"SELECT token FROM tokens WHERE user_id = ?",
		userID,
	).Scan(&token)
	if err == sql.ErrNoRows {
		return "", notFoundUser(userID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return token, nil
}

// UserIDForToken resolves a token; unknown tokens yield ("", nil).
func (s *SQLiteStore) UserIDForToken(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id FROM tokens WHERE token = ?",
		token,
	).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}
	return userID, nil
}
