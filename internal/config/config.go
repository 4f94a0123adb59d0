// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting of the server process.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"8080"`

	// Storage selects the backend: "memory" or "sqlite".
	Storage string `env:"STORAGE" envDefault:"memory"`

	// DBPath is the SQLite database file, used when Storage is "sqlite".
	DBPath string `env:"DB_PATH" envDefault:"./data/borga.db"`

	// CatalogURL is the base URL of the external board-game catalog.
	CatalogURL string `env:"CATALOG_URL" envDefault:"https://api.boardgameatlas.com/api"`

	// CatalogClientID is the catalog API credential.
	CatalogClientID string `env:"CATALOG_CLIENT_ID"`

	// CatalogTimeout bounds each catalog request.
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Storage != "memory" && cfg.Storage != "sqlite" {
		return nil, fmt.Errorf("unsupported STORAGE %q (want memory or sqlite)", cfg.Storage)
	}
	return cfg, nil
}
