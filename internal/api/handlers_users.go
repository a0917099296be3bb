// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"net/http"

	"github.com/opencookbook/cookbook/internal/users"
)

func (h *Handlers) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handlers) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in users.UpdateProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	updated, err := h.Users.UpdateProfile(r.Context(), user.ID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
