// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import "net/http"

func (h *Handlers) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := h.Favorites.List(r.Context(), user.ID, pageParams(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondPage(w, page)
}

func (h *Handlers) handleFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	ids, err := h.Favorites.IDs(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ids)
}

func (h *Handlers) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := idParam(r, "recipeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.Favorites.Add(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "favorited"})
}

func (h *Handlers) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := idParam(r, "recipeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.Favorites.Remove(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
