// Package memory provides the in-memory implementation of storage.Store.
//
// State lives in three logical collections: users (each owning its
// groups), the shared game catalog cache, and the token→userId session
// table. A single mutex makes every operation atomic with respect to the
// others; no operation performs I/O while holding it.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
	"github.com/jpvieira/borga/internal/ranking"
	"github.com/jpvieira/borga/internal/storage"
)

// popularLimit caps PopularGames results.
const popularLimit = 20

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store with process-local maps.
type Store struct {
	mu sync.Mutex

	users      map[string]*userRecord
	games      map[string]models.Game
	gameSeq    map[string]int // catalog insertion order, for tie-breaks
	nextSeq    int
	tokens     map[string]string // token → userID
	userTokens map[string]string // userID → token

	now func() int64
}

type userRecord struct {
	user   models.User
	groups map[string]*models.Group
}

// New creates an empty in-memory store.
func New() *Store {
	s := &Store{now: unixNow}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.users = make(map[string]*userRecord)
	s.games = make(map[string]models.Game)
	s.gameSeq = make(map[string]int)
	s.nextSeq = 0
	s.tokens = make(map[string]string)
	s.userTokens = make(map[string]string)
}

// CreateUser creates a user with an empty group set and mints its token.
func (s *Store) CreateUser(ctx context.Context, userID, name, passwordHash string) (*models.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; ok {
		return nil, "", errs.AlreadyExists("user already exists", "userId", userID)
	}

	rec := &userRecord{
		user: models.User{
			ID:           userID,
			Name:         name,
			PasswordHash: passwordHash,
			CreatedAt:    s.now(),
		},
		groups: make(map[string]*models.Group),
	}
	s.users[userID] = rec

	token := uuid.NewString()
	s.tokens[token] = userID
	s.userTokens[userID] = token

	u := rec.user
	return &u, token, nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return nil, errs.NotFound("user not found", "userId", userID)
	}
	u := rec.user
	return &u, nil
}

// TokenForUser returns the token minted for the user at registration.
func (s *Store) TokenForUser(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.userTokens[userID]
	if !ok {
		return "", errs.NotFound("user not found", "userId", userID)
	}
	return token, nil
}

// UserIDForToken resolves a token; unknown tokens yield ("", nil).
func (s *Store) UserIDForToken(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tokens[token], nil
}

// CreateGroup inserts a new group under the user.
func (s *Store) CreateGroup(ctx context.Context, userID, groupID, name, description string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return nil, errs.NotFound("user not found", "userId", userID)
	}
	if _, ok := rec.groups[groupID]; ok {
		return nil, errs.AlreadyExists("group already exists", "userId", userID, "groupId", groupID)
	}

	group := &models.Group{
		ID:          groupID,
		Name:        name,
		Description: description,
		Games:       make(map[string]string),
	}
	rec.groups[groupID] = group
	return group.Clone(), nil
}

// EditGroup mutates name/description in place; nil keeps the prior value.
func (s *Store) EditGroup(ctx context.Context, userID, groupID string, name, description *string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.resolveGroup(userID, groupID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		group.Name = *name
	}
	if description != nil {
		group.Description = *description
	}
	return group.Clone(), nil
}

// ListGroups returns the user's full groupId→Group mapping.
func (s *Store) ListGroups(ctx context.Context, userID string) (map[string]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return nil, errs.NotFound("user not found", "userId", userID)
	}
	groups := make(map[string]*models.Group, len(rec.groups))
	for id, g := range rec.groups {
		groups[id] = g.Clone()
	}
	return groups, nil
}

// GetGroup retrieves one group of the user.
func (s *Store) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.resolveGroup(userID, groupID)
	if err != nil {
		return nil, err
	}
	return group.Clone(), nil
}

// DeleteGroup removes a group and returns its pre-deletion state.
func (s *Store) DeleteGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.resolveGroup(userID, groupID)
	if err != nil {
		return nil, err
	}
	delete(s.users[userID].groups, groupID)
	return group, nil
}

// AddGameToGroup upserts the game into the catalog cache and references
// it from the group.
func (s *Store) AddGameToGroup(ctx context.Context, userID, groupID string, game models.Game) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.resolveGroup(userID, groupID)
	if err != nil {
		return nil, err
	}

	if _, ok := s.gameSeq[game.ID]; !ok {
		s.gameSeq[game.ID] = s.nextSeq
		s.nextSeq++
	}
	s.games[game.ID] = game
	group.Games[game.ID] = game.Name

	g := game
	return &g, nil
}

// GetGameFromGroup resolves a game referenced by this group.
func (s *Store) GetGameFromGroup(ctx context.Context, userID, groupID, gameID string) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.resolveGroup(userID, groupID)
	if err != nil {
		return nil, err
	}
	if _, ok := group.Games[gameID]; !ok {
		return nil, errs.NotFound("game not in group", "userId", userID, "groupId", groupID, "gameId", gameID)
	}
	game := s.games[gameID]
	return &game, nil
}

// RemoveGameFromGroup deletes the group's reference and returns the
// cached record. The catalog cache entry survives.
func (s *Store) RemoveGameFromGroup(ctx context.Context, userID, groupID, gameID string) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.resolveGroup(userID, groupID)
	if err != nil {
		return nil, err
	}
	if _, ok := group.Games[gameID]; !ok {
		return nil, errs.NotFound("game not in group", "userId", userID, "groupId", groupID, "gameId", gameID)
	}
	delete(group.Games, gameID)
	game := s.games[gameID]
	return &game, nil
}

// PopularGames counts references across all users' groups and returns
// the top 20 records, ties broken by catalog insertion order.
func (s *Store) PopularGames(ctx context.Context) ([]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, rec := range s.users {
		for _, group := range rec.groups {
			for gameID := range group.Games {
				counts[gameID]++
			}
		}
	}

	top := ranking.Top(counts, s.gameSeq, popularLimit)
	games := make([]models.Game, 0, len(top))
	for _, id := range top {
		games = append(games, s.games[id])
	}
	return games, nil
}

// Reset clears all state.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

func unixNow() int64 { return time.Now().Unix() }

// resolveGroup looks up a group; callers must hold s.mu.
func (s *Store) resolveGroup(userID, groupID string) (*models.Group, error) {
	rec, ok := s.users[userID]
	if !ok {
		return nil, errs.NotFound("user not found", "userId", userID)
	}
	group, ok := rec.groups[groupID]
	if !ok {
		return nil, errs.NotFound("group not found", "userId", userID, "groupId", groupID)
	}
	return group, nil
}
