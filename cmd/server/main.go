package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jpvieira/borga/internal/catalog"
	"github.com/jpvieira/borga/internal/config"
	"github.com/jpvieira/borga/internal/httpapi"
	"github.com/jpvieira/borga/internal/middleware"
	"github.com/jpvieira/borga/internal/service"
	"github.com/jpvieira/borga/internal/storage"
	"github.com/jpvieira/borga/internal/storage/memory"
	"github.com/jpvieira/borga/internal/storage/sqlite"
	"github.com/jpvieira/borga/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Storage)

	cat := catalog.NewHTTPClient(cfg.CatalogURL, cfg.CatalogClientID, cfg.CatalogTimeout)

	router := httpapi.NewRouter(
		service.NewUserService(store),
		service.NewGroupService(store, cat),
		service.NewGameService(store, cat),
	)

	handler := middleware.Logging(middleware.CORS(middleware.Metrics(router)))

	// h2c allows HTTP/2 without TLS for local and proxy-terminated setups.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case "sqlite":
		return sqlite.New(cfg.DBPath)
	default:
		return memory.New(), nil
	}
}
