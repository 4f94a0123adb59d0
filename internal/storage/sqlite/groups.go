package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
)

// CreateGroup inserts a new group under the user.
func (s *SQLiteStore) CreateGroup(ctx context.Context, userID, groupID, name, description string) (*models.Group, error) {
	exists, err := s.userExists(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFoundUser(userID)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO groups (user_id, id, name, description) VALUES (?, ?, ?, ?)",
		userID, groupID, name, description,
	)
	if isUniqueViolation(err) {
		return nil, errs.AlreadyExists("group already exists", "userId", userID, "groupId", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}

	return &models.Group{
		ID:          groupID,
		Name:        name,
		Description: description,
		Games:       make(map[string]string),
	}, nil
}

// EditGroup updates name and/or description; nil keeps the prior value.
func (s *SQLiteStore) EditGroup(ctx context.Context, userID, groupID string, name, description *string) (*models.Group, error) {
	group, err := s.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		group.Name = *name
	}
	if description != nil {
		group.Description = *description
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE groups SET name = ?, description = ? WHERE user_id = ? AND id = ?",
		group.Name, group.Description, userID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

// ListGroups returns the user's full groupId→Group mapping.
func (s *SQLiteStore) ListGroups(ctx context.Context, userID string) (map[string]*models.Group, error) {
	exists, err := s.userExists(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFoundUser(userID)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description FROM groups WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := make(map[string]*models.Group)
	for rows.Next() {
		g := &models.Group{Games: make(map[string]string)}
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Attach game references
	gameRows, err := s.db.QueryContext(ctx,
		"SELECT group_id, game_id, game_name FROM group_games WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group games: %w", err)
	}
	defer gameRows.Close()

	for gameRows.Next() {
		var groupID, gameID, gameName string
		if err := gameRows.Scan(&groupID, &gameID, &gameName); err != nil {
			return nil, fmt.Errorf("failed to scan group game: %w", err)
		}
		if g, ok := groups[groupID]; ok {
			g.Games[gameID] = gameName
		}
	}
	if err := gameRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group games: %w", err)
	}

	return groups, nil
}

// GetGroup retrieves one group of the user, including game references.
func (s *SQLiteStore) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group := &models.Group{Games: make(map[string]string)}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM groups WHERE user_id = ? AND id = ?",
		userID, groupID,
	).Scan(&group.ID, &group.Name, &group.Description)
	if err == sql.ErrNoRows {
		exists, checkErr := s.userExists(ctx, s.db, userID)
		if checkErr != nil {
			return nil, checkErr
		}
		if !exists {
			return nil, notFoundUser(userID)
		}
		return nil, notFoundGroup(userID, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT game_id, game_name FROM group_games WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gameID, gameName string
		if err := rows.Scan(&gameID, &gameName); err != nil {
			return nil, fmt.Errorf("failed to scan group game: %w", err)
		}
		group.Games[gameID] = gameName
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group games: %w", err)
	}

	return group, nil
}

// DeleteGroup removes a group and returns its pre-deletion state.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	// ON DELETE CASCADE clears the group's game references.
	_, err = s.db.ExecContext(ctx,
		"DELETE FROM groups WHERE user_id = ? AND id = ?",
		userID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete group: %w", err)
	}
	return group, nil
}
