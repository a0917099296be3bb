// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package favorites tracks which recipes a user has bookmarked.
// Adding and removing are idempotent.
package favorites

import (
	"context"

	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/models"
)

// Service exposes favorite operations.
type Service struct {
	db *database.DB
}

// NewService creates a favorites service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Add bookmarks a recipe. Re-adding is a no-op, an unknown recipe is
// KindNotFound.
func (s *Service) Add(ctx context.Context, userID, recipeID int64) error {
	return s.db.WithTx(ctx, func(st *database.Store) error {
		if _, err := st.GetRecipe(ctx, recipeID); err != nil {
			return err
		}
		exists, err := st.FavoriteExists(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return st.InsertFavorite(ctx, userID, recipeID)
	})
}

// Remove drops the bookmark if present.
func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	return s.db.DeleteFavorite(ctx, userID, recipeID)
}

// List returns the user's favorite recipes as summaries.
func (s *Service) List(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	return s.db.ListFavoriteRecipes(ctx, userID, page)
}

// IDs returns the ids of the user's favorite recipes, for cheap
// client-side flagging.
func (s *Service) IDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.db.FavoriteRecipeIDs(ctx, userID)
}
