package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
)

// AddGameToGroup upserts the game into the catalog cache and references
// it from the group.
func (s *SQLiteStore) AddGameToGroup(ctx context.Context, userID, groupID string, game models.Game) (*models.Game, error) {
	if _, err := s.GetGroup(ctx, userID, groupID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Upsert keeps the original rowid, which is the catalog insertion
	// order used by PopularGames tie-breaking.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, name, url, image, publisher, amazon_rank, price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			image = excluded.image,
			publisher = excluded.publisher,
			amazon_rank = excluded.amazon_rank,
			price = excluded.price`,
		game.ID, game.Name, game.URL, game.Image, game.Publisher, game.AmazonRank, game.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert game: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO group_games (user_id, group_id, game_id, game_name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, group_id, game_id) DO UPDATE SET game_name = excluded.game_name`,
		userID, groupID, game.ID, game.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert game reference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	g := game
	return &g, nil
}

// GetGameFromGroup resolves a game referenced by this group.
func (s *SQLiteStore) GetGameFromGroup(ctx context.Context, userID, groupID, gameID string) (*models.Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.name, g.url, g.image, g.publisher, g.amazon_rank, g.price
		FROM group_games gg
		JOIN games g ON g.id = gg.game_id
		WHERE gg.user_id = ? AND gg.group_id = ? AND gg.game_id = ?`,
		userID, groupID, gameID,
	)
	game, err := scanGame(row)
	if err == sql.ErrNoRows {
		// Distinguish a missing group from a missing reference.
		if _, groupErr := s.GetGroup(ctx, userID, groupID); groupErr != nil {
			return nil, groupErr
		}
		return nil, errs.NotFound("game not in group",
			"userId", userID, "groupId", groupID, "gameId", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// RemoveGameFromGroup deletes the group's reference to the game and
// returns the cached record. The catalog cache entry survives.
func (s *SQLiteStore) RemoveGameFromGroup(ctx context.Context, userID, groupID, gameID string) (*models.Game, error) {
	game, err := s.GetGameFromGroup(ctx, userID, groupID, gameID)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		"DELETE FROM group_games WHERE user_id = ? AND group_id = ? AND game_id = ?",
		userID, groupID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to remove game reference: %w", err)
	}
	return game, nil
}

// PopularGames returns up to 20 games by descending reference count,
// ties broken by catalog insertion order (rowid).
func (s *SQLiteStore) PopularGames(ctx context.Context) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.url, g.image, g.publisher, g.amazon_rank, g.price
		FROM group_games gg
		JOIN games g ON g.id = gg.game_id
		GROUP BY gg.game_id
		ORDER BY COUNT(*) DESC, g.rowid ASC
		LIMIT 20`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular games: %w", err)
	}
	defer rows.Close()

	games := make([]models.Game, 0, 20)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}
