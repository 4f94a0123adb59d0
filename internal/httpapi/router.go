// Package httpapi exposes the BORGA services over a REST JSON API.
// Handlers stay thin: decode, delegate to a service, render. All policy
// (authorization, validation, error classification) lives below.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpvieira/borga/internal/service"
)

type api struct {
	users  *service.UserService
	groups *service.GroupService
	games  *service.GameService
}

// NewRouter builds the route tree over the given services.
func NewRouter(users *service.UserService, groups *service.GroupService, games *service.GameService) http.Handler {
	a := &api{users: users, groups: groups, games: games}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", a.register)
		r.Post("/users/login", a.login)
		r.Get("/users/{userId}", a.getUser)

		r.Get("/games", a.searchGames)
		r.Get("/games/popular", a.popularGames)

		r.Route("/users/{userId}/groups", func(r chi.Router) {
			r.Post("/", a.createGroup)
			r.Get("/", a.listGroups)
			r.Get("/{groupId}", a.getGroup)
			r.Put("/{groupId}", a.editGroup)
			r.Delete("/{groupId}", a.deleteGroup)

			r.Put("/{groupId}/games", a.addGame)
			r.Get("/{groupId}/games/{gameId}", a.getGame)
			r.Delete("/{groupId}/games/{gameId}", a.removeGame)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
