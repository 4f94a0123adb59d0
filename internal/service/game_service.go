package service

import (
	"context"
	"log/slog"

	"github.com/jpvieira/borga/internal/catalog"
	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
	"github.com/jpvieira/borga/internal/storage"
)

// GameService handles the read-only game operations: catalog search and
// the popular-games ranking. Neither requires a token.
type GameService struct {
	store   storage.Store
	catalog catalog.Client
}

// NewGameService creates a new GameService with the given storage
// backend and catalog client.
func NewGameService(store storage.Store, catalog catalog.Client) *GameService {
	return &GameService{store: store, catalog: catalog}
}

// Search queries the external catalog by game name.
func (s *GameService) Search(ctx context.Context, name string, limit int) ([]models.Game, error) {
	if name == "" {
		return nil, errs.BadRequest(map[string]string{
			"name": "required property missing",
		})
	}

	games, err := s.catalog.SearchByName(ctx, name, limit)
	if err != nil {
		slog.Warn("Catalog search failed", "name", name, "error", err)
		return nil, err
	}
	return games, nil
}

// Popular returns the most-referenced games across all users' groups.
func (s *GameService) Popular(ctx context.Context) ([]models.Game, error) {
	return s.store.PopularGames(ctx)
}
