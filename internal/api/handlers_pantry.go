// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"net/http"

	"github.com/opencookbook/cookbook/internal/pantry"
)

func (h *Handlers) handleListPantry(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	items, err := h.Pantry.List(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handlers) handleUpsertPantry(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in pantry.UpsertInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.Pantry.Upsert(r.Context(), user.ID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) handleDeletePantryItem(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := idParam(r, "itemID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.Pantry.Delete(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
