// Package catalog provides the client for the external board-game
// catalog. The catalog is a black-box HTTP collaborator; this package
// turns its JSON responses into models.Game records and its failures
// into EXT_SVC_FAIL errors.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/models"
)

const (
	// DefaultLimit is the search result size when callers pass limit <= 0.
	DefaultLimit = 10
	// MaxLimit caps the search result size regardless of the caller.
	MaxLimit = 50
)

// Client is the interface services consume, so tests can substitute a
// fake catalog.
type Client interface {
	// SearchByName returns games whose name matches, best match first.
	SearchByName(ctx context.Context, name string, limit int) ([]models.Game, error)

	// GetByID returns the single game with the given catalog id.
	GetByID(ctx context.Context, id string) (*models.Game, error)
}

// HTTPClient implements Client against a Board Game Atlas-style API:
// GET {base}/search?name=...&client_id=... and
// GET {base}/search?ids=...&client_id=...
type HTTPClient struct {
	baseURL  string
	clientID string
	http     *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a catalog client. clientID is the API credential
// sent on every request.
func NewHTTPClient(baseURL, clientID string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:  baseURL,
		clientID: clientID,
		http:     &http.Client{Timeout: timeout},
	}
}

// SearchByName queries the catalog's search endpoint by game name.
func (c *HTTPClient) SearchByName(ctx context.Context, name string, limit int) ([]models.Game, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	query := url.Values{
		"name":  {name},
		"limit": {fmt.Sprint(limit)},
	}
	games, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, errs.NotFound("no games match name", "name", name)
	}
	return games, nil
}

// GetByID queries the catalog's search endpoint by game id.
func (c *HTTPClient) GetByID(ctx context.Context, id string) (*models.Game, error) {
	games, err := c.search(ctx, url.Values{"ids": {id}})
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, errs.NotFound("game not found in catalog", "gameId", id)
	}
	return &games[0], nil
}

func (c *HTTPClient) search(ctx context.Context, query url.Values) ([]models.Game, error) {
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
	}
	endpoint := c.baseURL + "/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.ExternalService("building catalog request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.ExternalService("catalog unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.ExternalService("reading catalog response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.ExternalService(
			fmt.Sprintf("catalog returned status %d", resp.StatusCode), nil)
	}

	return parseGames(body), nil
}

// parseGames extracts game records from a catalog search response.
// The catalog payload is loosely shaped; only id and name are treated
// as mandatory, the rest pass through when present.
func parseGames(body []byte) []models.Game {
	var games []models.Game
	gjson.GetBytes(body, "games").ForEach(func(_, value gjson.Result) bool {
		game := models.Game{
			ID:         value.Get("id").String(),
			Name:       value.Get("name").String(),
			URL:        value.Get("url").String(),
			Image:      value.Get("image_url").String(),
			Publisher:  value.Get("primary_publisher.name").String(),
			AmazonRank: int(value.Get("amazon_rank").Int()),
			Price:      value.Get("price").Float(),
		}
		if game.ID == "" || game.Name == "" {
			return true // skip malformed records
		}
		games = append(games, game)
		return true
	})
	return games
}
