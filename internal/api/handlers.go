// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package api exposes the HTTP surface: routing, request decoding and
// the response envelope.
//
// Every response uses models.APIResponse. Domain errors carry an
// apperr.Kind which maps onto the HTTP status; anything unclassified
// is a 500 with the detail kept out of the body.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/auth"
	"github.com/opencookbook/cookbook/internal/favorites"
	"github.com/opencookbook/cookbook/internal/ingredients"
	"github.com/opencookbook/cookbook/internal/logging"
	"github.com/opencookbook/cookbook/internal/middleware"
	"github.com/opencookbook/cookbook/internal/models"
	"github.com/opencookbook/cookbook/internal/pantry"
	"github.com/opencookbook/cookbook/internal/ratings"
	"github.com/opencookbook/cookbook/internal/recipes"
	"github.com/opencookbook/cookbook/internal/shopping"
	"github.com/opencookbook/cookbook/internal/users"
	"github.com/opencookbook/cookbook/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	Auth        *auth.Service
	Users       *users.Service
	Ingredients *ingredients.Service
	Recipes     *recipes.Service
	Pantry      *pantry.Service
	Shopping    *shopping.Service
	Ratings     *ratings.Service
	Favorites   *favorites.Service
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	respondEnvelope(w, status, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// respondPage unwraps a models.Page into data plus pagination metadata.
func respondPage[T any](w http.ResponseWriter, page models.Page[T]) {
	respondEnvelope(w, http.StatusOK, models.APIResponse{
		Status: "success",
		Data:   page.Items,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			Page:      &page.Page,
			Size:      &page.Size,
			Total:     &page.Total,
		},
	})
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusOf(kind)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Error().Err(err).
			Str("request_id", middleware.RequestIDFrom(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		message = "internal error"
	}
	respondEnvelope(w, status, models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: kind.String(), Message: message},
	})
}

func respondEnvelope(w http.ResponseWriter, status int, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("encode response")
	}
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the body into v and runs struct validation.
func decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "malformed request body", err)
	}
	return validation.Struct(v)
}

// idParam parses a numeric chi URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Newf(apperr.KindValidation, "invalid %s", name)
	}
	return id, nil
}

// pageParams reads ?page= and ?size=, normalized to the configured
// bounds.
func pageParams(r *http.Request) models.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return models.NormalizePage(page, size)
}

// currentUser returns the authenticated user; the Authenticate
// middleware guarantees presence on protected routes.
func currentUser(r *http.Request) (*models.User, error) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		return nil, apperr.New(apperr.KindUnauthorized, "not authenticated")
	}
	return u, nil
}
