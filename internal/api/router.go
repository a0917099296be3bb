// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opencookbook/cookbook/internal/middleware"
)

// RouterConfig tunes the HTTP surface.
type RouterConfig struct {
	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string

	// AuthRateLimit caps unauthenticated auth attempts per IP per
	// minute. Zero disables the limiter.
	AuthRateLimit int
}

// NewRouter assembles the route tree.
//
// Public routes: health, metrics and the credential endpoints, the
// latter rate limited by IP. Everything else requires a bearer token.
func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Metrics)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.AuthRateLimit > 0 {
				r.Use(httprate.Limit(
					cfg.AuthRateLimit, time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
				))
			}
			r.Post("/auth/register", h.handleRegister)
			r.Post("/auth/login", h.handleLogin)
			r.Post("/auth/refresh", h.handleRefresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(h.Auth))

			r.Post("/auth/change-password", h.handleChangePassword)
			r.Get("/users/me", h.handleGetMe)
			r.Put("/users/me", h.handleUpdateMe)

			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", h.handleListIngredients)
				r.Post("/", h.handleCreateIngredient)
				r.Get("/search", h.handleSearchIngredients)
			})

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", h.handleListRecipes)
				r.Post("/", h.handleCreateRecipe)
				r.Get("/search", h.handleSearchRecipes)
				r.Get("/match", h.handleMatchRecipes)
				r.Get("/top-rated", h.handleTopRatedRecipes)

				r.Route("/{recipeID}", func(r chi.Router) {
					r.Get("/", h.handleGetRecipe)
					r.Delete("/", h.handleDeleteRecipe)
					r.Post("/shopping-list", h.handleAddRecipeToShoppingList)

					r.Get("/ratings", h.handleListRatings)
					r.Post("/ratings", h.handleUpsertRating)
					r.Delete("/ratings", h.handleDeleteRating)
				})
			})

			r.Route("/pantry", func(r chi.Router) {
				r.Get("/", h.handleListPantry)
				r.Put("/", h.handleUpsertPantry)
				r.Delete("/{itemID}", h.handleDeletePantryItem)
			})

			r.Route("/shopping-lists", func(r chi.Router) {
				r.Get("/", h.handleListShoppingLists)
				r.Post("/", h.handleCreateShoppingList)

				r.Route("/{listID}", func(r chi.Router) {
					r.Get("/", h.handleGetShoppingList)
					r.Put("/name", h.handleRenameShoppingList)
					r.Post("/finalize", h.handleFinalizeShoppingList)
					r.Post("/items", h.handleAddShoppingListItem)
					r.Patch("/items/{itemID}", h.handleUpdateShoppingListItem)
					r.Delete("/items/{itemID}", h.handleDeleteShoppingListItem)
				})
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", h.handleListFavorites)
				r.Get("/ids", h.handleFavoriteIDs)
				r.Post("/{recipeID}", h.handleAddFavorite)
				r.Delete("/{recipeID}", h.handleRemoveFavorite)
			})
		})
	})

	return r
}
