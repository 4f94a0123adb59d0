package httpapi

import (
	"net/http"
	"strconv"
)

func (a *api) searchGames(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	games, err := a.games.Search(r.Context(), name, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (a *api) popularGames(w http.ResponseWriter, r *http.Request) {
	games, err := a.games.Popular(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}
