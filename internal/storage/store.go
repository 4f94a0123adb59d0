// Package storage provides abstractions for BORGA's persistent state.
package storage

import (
	"context"

	"github.com/jpvieira/borga/internal/models"
)

// Store defines the interface for user, group and game storage.
// This abstraction allows swapping storage backends (in-memory, SQLite,
// a remote search cluster, etc.) without changing the service layer.
//
// Every resolve-by-id operation fails with a NOT_FOUND error carrying
// the offending ids; every create-new-id operation fails with
// ALREADY_EXISTS carrying the conflicting id. Operations are
// deterministic given current state and never retry.
type Store interface {
	// CreateUser creates a user with an empty group set, mints a fresh
	// session token for it and returns both. passwordHash may be empty
	// when the user registers without a password.
	CreateUser(ctx context.Context, userID, name, passwordHash string) (*models.User, string, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// TokenForUser returns the session token minted for the user at
	// registration. Used by login.
	TokenForUser(ctx context.Context, userID string) (string, error)

	// UserIDForToken resolves a bearer token to its user id. An unknown
	// token yields ("", nil) — authentication policy belongs to callers.
	UserIDForToken(ctx context.Context, token string) (string, error)

	// CreateGroup inserts a new group under the user.
	CreateGroup(ctx context.Context, userID, groupID, name, description string) (*models.Group, error)

	// EditGroup updates a group's name and/or description in place.
	// A nil field keeps its prior value.
	EditGroup(ctx context.Context, userID, groupID string, name, description *string) (*models.Group, error)

	// ListGroups returns the user's full groupId→Group mapping.
	ListGroups(ctx context.Context, userID string) (map[string]*models.Group, error)

	// GetGroup retrieves one group of the user.
	GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error)

	// DeleteGroup removes a group and returns its pre-deletion state.
	DeleteGroup(ctx context.Context, userID, groupID string) (*models.Group, error)

	// AddGameToGroup upserts the game into the shared catalog cache and
	// records a gameId→gameName reference in the group.
	AddGameToGroup(ctx context.Context, userID, groupID string, game models.Game) (*models.Game, error)

	// GetGameFromGroup resolves a game referenced by the group. A game
	// present in the catalog cache but not referenced by this group is
	// NOT_FOUND.
	GetGameFromGroup(ctx context.Context, userID, groupID, gameID string) (*models.Game, error)

	// RemoveGameFromGroup deletes the group's reference to the game and
	// returns the cached record. The cached record itself survives.
	RemoveGameFromGroup(ctx context.Context, userID, groupID, gameID string) (*models.Game, error)

	// PopularGames returns up to 20 games ordered by descending
	// reference count across all users' groups. Ties break by the order
	// games first entered the catalog cache.
	PopularGames(ctx context.Context) ([]models.Game, error)

	// Reset clears all state. Intended for test isolation.
	Reset(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
