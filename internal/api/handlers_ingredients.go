// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"net/http"
	"strconv"

	"github.com/opencookbook/cookbook/internal/ingredients"
)

func (h *Handlers) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := h.Ingredients.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handlers) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	var in ingredients.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	ing, err := h.Ingredients.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ing)
}

func (h *Handlers) handleSearchIngredients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Ingredients.Search(r.Context(), q, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
