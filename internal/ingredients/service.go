// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package ingredients manages the shared ingredient index.
//
// Ingredient names are unique case-insensitively. Search ranks prefix
// matches above substring matches, shorter names above longer ones, and
// breaks remaining ties alphabetically.
package ingredients

import (
	"context"
	"strings"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/metrics"
	"github.com/opencookbook/cookbook/internal/models"
)

// DefaultSearchLimit caps search results when the caller does not ask
// for a specific limit.
const DefaultSearchLimit = 20

// MaxSearchLimit is the hard ceiling for a single search response.
const MaxSearchLimit = 100

// Service exposes ingredient catalog operations.
type Service struct {
	db *database.DB
}

// NewService creates an ingredient service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// CreateInput carries the fields for a new ingredient.
type CreateInput struct {
	Name     string                    `json:"name" validate:"required,max=120"`
	Unit     string                    `json:"unit" validate:"required,max=40"`
	Category models.IngredientCategory `json:"category"`
}

// Create adds a new ingredient. The name must be unique ignoring case
// and surrounding whitespace; a duplicate yields KindConflict.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Ingredient, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "ingredient name must not be blank")
	}
	if unit == "" {
		return nil, apperr.New(apperr.KindValidation, "ingredient unit must not be blank")
	}
	category := in.Category
	if category == "" {
		category = models.CategoryOther
	}
	return s.db.CreateIngredient(ctx, name, unit, category)
}

// Get returns a single ingredient by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Ingredient, error) {
	return s.db.GetIngredient(ctx, id)
}

// List returns all ingredients ordered by name.
func (s *Service) List(ctx context.Context) ([]models.Ingredient, error) {
	return s.db.ListIngredients(ctx)
}

// Search returns ingredients matching query, ranked before the limit is
// applied so prefix matches are never crowded out by substring matches.
// A blank query returns an empty result rather than the whole index.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Ingredient, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.Ingredient{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	metrics.SearchQueriesTotal.WithLabelValues("ingredient").Inc()
	return s.db.SearchIngredientsRanked(ctx, query, limit)
}
