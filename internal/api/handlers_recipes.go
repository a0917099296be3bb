// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"net/http"
	"strings"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/ratings"
	"github.com/opencookbook/cookbook/internal/recipes"
)

func (h *Handlers) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	page, err := h.Recipes.List(r.Context(), pageParams(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondPage(w, page)
}

func (h *Handlers) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in recipes.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	recipe, err := h.Recipes.Create(r.Context(), in, &user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, recipe)
}

func (h *Handlers) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "recipeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	recipe, err := h.Recipes.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func (h *Handlers) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Recipes.Delete(r.Context(), id, user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSearchRecipes serves the combined search endpoint:
//
//	?q=           title substring
//	?ingredients= comma-separated names, all required
//	?inPantryOnly=true  rank by the caller's pantry coverage
//
// Exactly one of the three selects the search strategy.
func (h *Handlers) handleSearchRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pageParams(r)

	switch {
	case q.Get("inPantryOnly") == "true":
		user, err := currentUser(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		result, err := h.Recipes.SearchByPantry(r.Context(), user.ID, page)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondPage(w, result)
	case q.Get("ingredients") != "":
		names := strings.Split(q.Get("ingredients"), ",")
		result, err := h.Recipes.SearchByIngredientNames(r.Context(), names, page)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondPage(w, result)
	case q.Get("q") != "":
		result, err := h.Recipes.SearchByTitle(r.Context(), q.Get("q"), page)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondPage(w, result)
	default:
		respondError(w, r, apperr.New(apperr.KindValidation,
			"one of q, ingredients or inPantryOnly is required"))
	}
}

func (h *Handlers) handleMatchRecipes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ingredients")
	if strings.TrimSpace(raw) == "" {
		respondError(w, r, apperr.New(apperr.KindValidation, "ingredients is required"))
		return
	}
	matches, err := h.Recipes.RankByIngredientOverlap(r.Context(), strings.Split(raw, ","))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

func (h *Handlers) handleTopRatedRecipes(w http.ResponseWriter, r *http.Request) {
	page, err := h.Recipes.TopRated(r.Context(), pageParams(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondPage(w, page)
}

func (h *Handlers) handleListRatings(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "recipeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var viewerID *int64
	if user, err := currentUser(r); err == nil {
		viewerID = &user.ID
	}
	views, err := h.Ratings.List(r.Context(), id, viewerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *Handlers) handleUpsertRating(w http.ResponseWriter, r *http.Request) {
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
	var in ratings.UpsertInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	rating, err := h.Ratings.Upsert(r.Context(), user.ID, id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rating)
}

func (h *Handlers) handleDeleteRating(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Ratings.Delete(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
