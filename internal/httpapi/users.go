package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jpvieira/borga/internal/service"
)

func (a *api) register(w http.ResponseWriter, r *http.Request) {
	var params service.RegisterUserParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	result, err := a.users.Register(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var params service.LoginParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	result, err := a.users.Login(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *api) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.GetUser(r.Context(), bearerToken(r), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
