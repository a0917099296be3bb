// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package database

import (
	"context"
	"fmt"

	"github.com/opencookbook/cookbook/internal/models"
)

// FavoriteExists reports whether the user already favorited the recipe.
func (s *Store) FavoriteExists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var n int64
	err := s.q.QueryRowContext(ctx,
		`SELECT count(*) FROM favorites WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID).Scan(&n)
	if err != nil {
		return false, mapError(err, "check favorite")
	}
	return n > 0, nil
}

// InsertFavorite marks a recipe as favorite.
func (s *Store) InsertFavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.q.ExecContext(ctx,
		`INSERT INTO favorites (user_id, recipe_id) VALUES (?, ?)`,
		userID, recipeID); err != nil {
		return mapError(err, "insert favorite")
	}
	return nil
}

// DeleteFavorite removes the favorite mark. Removing an absent favorite
// is a no-op.
func (s *Store) DeleteFavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID); err != nil {
		return mapError(err, "delete favorite")
	}
	return nil
}

// ListFavoriteRecipes returns one page of the user's favorite recipes,
// most recently favorited first.
func (s *Store) ListFavoriteRecipes(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	return s.summaryPage(ctx, page,
		`SELECT count(*) FROM favorites f JOIN recipes r ON r.id = f.recipe_id WHERE f.user_id = ?`,
		fmt.Sprintf(
			`SELECT %s
			 FROM favorites f
			 JOIN recipes r ON r.id = f.recipe_id
			 WHERE f.user_id = ?
			 ORDER BY f.created_at DESC, f.id DESC
			 LIMIT ? OFFSET ?`, recipeSummaryColumns),
		userID,
	)
}

// FavoriteRecipeIDs returns the ids of every recipe the user favorited.
func (s *Store) FavoriteRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT recipe_id FROM favorites WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, mapError(err, "list favorite ids")
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err, "scan favorite id")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
