package service

import (
	"context"
	"testing"

	"github.com/jpvieira/borga/internal/catalog"
	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
	"github.com/jpvieira/borga/internal/storage/memory"
)

// fakeCatalog serves canned game records keyed by lowercase name.
type fakeCatalog struct {
	games map[string]models.Game
	err   error
}

var _ catalog.Client = (*fakeCatalog)(nil)

func (f *fakeCatalog) SearchByName(ctx context.Context, name string, limit int) ([]models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	if game, ok := f.games[name]; ok {
		return []models.Game{game}, nil
	}
	return nil, errs.NotFound("no games match name", "name", name)
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, game := range f.games {
		if game.ID == id {
			g := game
			return &g, nil
		}
	}
	return nil, errs.NotFound("game not found in catalog", "gameId", id)
}

// newFixture builds the service set over a fresh memory store and a
// catalog preloaded with a couple of games.
func newFixture(t *testing.T) (*UserService, *GroupService, *GameService) {
	t.Helper()

	store := memory.New()
	t.Cleanup(func() { store.Close() })

	cat := &fakeCatalog{games: map[string]models.Game{
		"monopoly skyrim": {
			ID:    "I9azM1kA6l",
			Name:  "Monopoly Skyrim",
			URL:   "https://example.com/monopoly-skyrim",
			Price: 420.69,
		},
		"root": {
			ID:        "TAAifFP590",
			Name:      "Root",
			Publisher: "Leder Games",
			Price:     47.99,
		},
	}}

	return NewUserService(store), NewGroupService(store, cat), NewGameService(store, cat)
}

// register creates a user and returns its token.
func register(t *testing.T, users *UserService, userID, name string) string {
	t.Helper()
	result, err := users.Register(context.Background(), RegisterUserParams{
		UserID: ptr(userID),
		Name:   ptr(name),
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", userID, err)
	}
	return result.Token
}

func ptr(s string) *string { return &s }
