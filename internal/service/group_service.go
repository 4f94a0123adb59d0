package service

import (
	"context"
	"log/slog"

	"github.com/jpvieira/borga/internal/catalog"
	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
	"github.com/jpvieira/borga/internal/storage"
)

// GroupService handles a user's favorite-game groups. Every operation
// requires the caller's token to resolve to the target userId.
type GroupService struct {
	store   storage.Store
	catalog catalog.Client
}

// NewGroupService creates a new GroupService with the given storage
// backend and catalog client.
func NewGroupService(store storage.Store, catalog catalog.Client) *GroupService {
	return &GroupService{store: store, catalog: catalog}
}

// Create inserts a new group under the user.
func (s *GroupService) Create(ctx context.Context, token, userID string, params CreateGroupParams) (*models.Group, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	group, err := s.store.CreateGroup(ctx, userID, *params.GroupID, *params.Name, *params.Description)
	if err != nil {
		slog.Warn("CreateGroup failed", "user_id", userID, "group_id", *params.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Group created", "user_id", userID, "group_id", group.ID)
	return group, nil
}

// Edit updates a group's name and/or description; absent fields keep
// their prior value.
func (s *GroupService) Edit(ctx context.Context, token, userID, groupID string, params EditGroupParams) (*models.Group, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if params.Name == nil && params.Description == nil {
		return nil, errs.BadRequest(map[string]string{
			"groupName":        "at least one property required",
			"groupDescription": "at least one property required",
		})
	}

	group, err := s.store.EditGroup(ctx, userID, groupID, params.Name, params.Description)
	if err != nil {
		return nil, err
	}

	slog.Info("Group updated", "user_id", userID, "group_id", groupID)
	return group, nil
}

// List returns the user's full groupId→Group mapping.
func (s *GroupService) List(ctx context.Context, token, userID string) (map[string]*models.Group, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}
	return s.store.ListGroups(ctx, userID)
}

// Get returns one group of the user.
func (s *GroupService) Get(ctx context.Context, token, userID, groupID string) (*models.Group, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, userID, groupID)
}

// Delete removes a group and returns its pre-deletion state.
func (s *GroupService) Delete(ctx context.Context, token, userID, groupID string) (*models.Group, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}

	group, err := s.store.DeleteGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	slog.Info("Group deleted", "user_id", userID, "group_id", groupID)
	return group, nil
}

// AddGame resolves a game through the catalog by name and adds the best
// match to the group. The record lands in the shared catalog cache.
func (s *GroupService) AddGame(ctx context.Context, token, userID, groupID string, params AddGameParams) (*models.Game, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	matches, err := s.catalog.SearchByName(ctx, *params.GameName, 1)
	if err != nil {
		slog.Warn("Catalog lookup failed", "game_name", *params.GameName, "error", err)
		return nil, err
	}

	game, err := s.store.AddGameToGroup(ctx, userID, groupID, matches[0])
	if err != nil {
		return nil, err
	}

	slog.Info("Game added to group",
		"user_id", userID, "group_id", groupID, "game_id", game.ID)
	return game, nil
}

// GetGame returns a game referenced by the group.
func (s *GroupService) GetGame(ctx context.Context, token, userID, groupID, gameID string) (*models.Game, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}
	return s.store.GetGameFromGroup(ctx, userID, groupID, gameID)
}

// RemoveGame deletes the group's reference to the game.
func (s *GroupService) RemoveGame(ctx context.Context, token, userID, groupID, gameID string) (*models.Game, error) {
	if err := authorize(ctx, s.store, token, userID); err != nil {
		return nil, err
	}

	game, err := s.store.RemoveGameFromGroup(ctx, userID, groupID, gameID)
	if err != nil {
		return nil, err
	}

	slog.Info("Game removed from group",
		"user_id", userID, "group_id", groupID, "game_id", gameID)
	return game, nil
}
