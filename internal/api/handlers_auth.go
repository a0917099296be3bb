// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"net/http"

	"github.com/opencookbook/cookbook/internal/auth"
	"github.com/opencookbook/cookbook/internal/models"
)

type authResponse struct {
	User   *models.User    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	user, tokens, err := h.Auth.Register(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{User: user, Tokens: tokens})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	user, tokens, err := h.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{User: user, Tokens: tokens})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (h *Handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	tokens, err := h.Auth.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tokens)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handlers) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in changePasswordRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.Auth.ChangePassword(r.Context(), user.ID, in.CurrentPassword, in.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
