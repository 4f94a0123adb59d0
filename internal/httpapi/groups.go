package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jpvieira/borga/internal/service"
)

func (a *api) createGroup(w http.ResponseWriter, r *http.Request) {
	var params service.CreateGroupParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	group, err := a.groups.Create(r.Context(), bearerToken(r), chi.URLParam(r, "userId"), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (a *api) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := a.groups.List(r.Context(), bearerToken(r), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (a *api) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := a.groups.Get(r.Context(), bearerToken(r),
		chi.URLParam(r, "userId"), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (a *api) editGroup(w http.ResponseWriter, r *http.Request) {
	var params service.EditGroupParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	group, err := a.groups.Edit(r.Context(), bearerToken(r),
		chi.URLParam(r, "userId"), chi.URLParam(r, "groupId"), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (a *api) deleteGroup(w http.ResponseWriter, r *http.Request) {
	group, err := a.groups.Delete(r.Context(), bearerToken(r),
		chi.URLParam(r, "userId"), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (a *api) addGame(w http.ResponseWriter, r *http.Request) {
	var params service.AddGameParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	game, err := a.groups.AddGame(r.Context(), bearerToken(r),
		chi.URLParam(r, "userId"), chi.URLParam(r, "groupId"), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

func (a *api) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := a.groups.GetGame(r.Context(), bearerToken(r),
		chi.URLParam(r, "userId"), chi.URLParam(r, "groupId"), chi.URLParam(r, "gameId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (a *api) removeGame(w http.ResponseWriter, r *http.Request) {
	game, err := a.groups.RemoveGame(r.Context(), bearerToken(r),
		chi.URLParam(r, "userId"), chi.URLParam(r, "groupId"), chi.URLParam(r, "gameId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}
