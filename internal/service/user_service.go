package service

import (
	"context"
	"log/slog"

	"github.com/jpvieira/borga/internal/auth"
	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
	"github.com/jpvieira/borga/internal/storage"
)

// UserService handles registration, login and user lookup.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a user account and returns its session token.
// No pre-existing token is required. The password is optional; when
// present it is bcrypt-hashed before reaching storage.
func (s *UserService) Register(ctx context.Context, params RegisterUserParams) (*UserToken, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var passwordHash string
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, errs.New("could not hash password")
		}
		passwordHash = hash
	}

	user, token, err := s.store.CreateUser(ctx, *params.UserID, *params.Name, passwordHash)
	if err != nil {
		slog.Warn("Register failed", "user_id", *params.UserID, "error", err)
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID)
	return &UserToken{UserID: user.ID, Name: user.Name, Token: token}, nil
}

// Login verifies the user's password and returns the session token
// minted at registration. Users without a password cannot log in.
func (s *UserService) Login(ctx context.Context, params LoginParams) (*UserToken, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, *params.UserID)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			// Do not reveal whether the user exists.
			return nil, errs.Unauthenticated("invalid user or password")
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, *params.Password); err != nil {
		slog.Warn("Login failed", "user_id", user.ID)
		return nil, errs.Unauthenticated("invalid user or password")
	}

	token, err := s.store.TokenForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return &UserToken{UserID: user.ID, Name: user.Name, Token: token}, nil
}

// GetUser returns the user's own account details.
func (s *UserService) GetUser(ctx context.Context, token, userID string) (*models.User, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}
	return s.store.GetUser(ctx, userID)
}
