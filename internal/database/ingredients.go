// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/models"
)

// CreateIngredient inserts a catalog entry. Duplicate names (compared
// case-insensitively) fail with KindConflict.
func (s *Store) CreateIngredient(ctx context.Context, name, unit string, category models.IngredientCategory) (*models.Ingredient, error) {
	if category == "" {
		category = models.CategoryOther
	}

	ing := &models.Ingredient{Name: name, Unit: unit, Category: category}
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO ingredients (name, name_norm, unit, category)
		 VALUES (?, ?, ?, ?) RETURNING id`,
		name, norm(name), unit, string(category),
	).Scan(&ing.ID)
	if err != nil {
		if apperr.KindOf(mapError(err, "")) == apperr.KindConflict {
			return nil, apperr.New(apperr.KindConflict, "ingredient with this name already exists")
		}
		return nil, mapError(err, "create ingredient")
	}
	return ing, nil
}

// GetIngredient loads one ingredient by id.
func (s *Store) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	ing := &models.Ingredient{}
	var category string
	err := s.q.QueryRowContext(ctx,
		`SELECT id, name, unit, category FROM ingredients WHERE id = ?`, id,
	).Scan(&ing.ID, &ing.Name, &ing.Unit, &category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "ingredient %d not found", id)
	}
	if err != nil {
		return nil, mapError(err, "get ingredient")
	}
	ing.Category = models.IngredientCategory(category)
	return ing, nil
}

// ListIngredients returns the whole catalog ordered by name.
func (s *Store) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, name, unit, category FROM ingredients ORDER BY name_norm, id`)
	if err != nil {
		return nil, mapError(err, "list ingredients")
	}
	defer rows.Close()

	out := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		var category string
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit, &category); err != nil {
			return nil, mapError(err, "scan ingredient")
		}
		ing.Category = models.IngredientCategory(category)
		out = append(out, ing)
	}
	return out, rows.Err()
}

// SearchIngredientsRanked returns catalog entries matching query,
// prefix matches before interior substring matches, then shortest name
// first, then lexicographic. The query must already be normalized
// (trimmed, lower-cased) and non-empty; truncation to limit happens
// after ranking.
func (s *Store) SearchIngredientsRanked(ctx context.Context, query string, limit int) ([]models.Ingredient, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, name, unit, category
		 FROM ingredients
		 WHERE name_norm LIKE '%' || ? || '%'
		 ORDER BY
		   CASE WHEN name_norm LIKE ? || '%' THEN 0 ELSE 1 END,
		   length(name) ASC,
		   name ASC
		 LIMIT ?`,
		query, query, limit)
	if err != nil {
		return nil, mapError(err, "search ingredients")
	}
	defer rows.Close()

	out := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		var category string
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit, &category); err != nil {
			return nil, mapError(err, "scan ingredient")
		}
		ing.Category = models.IngredientCategory(category)
		out = append(out, ing)
	}
	return out, rows.Err()
}

// CountIngredients reports the catalog size. Used by the seeder to
// decide whether sample data should be inserted.
func (s *Store) CountIngredients(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q.QueryRowContext(ctx, `SELECT count(*) FROM ingredients`).Scan(&n); err != nil {
		return 0, mapError(err, "count ingredients")
	}
	return n, nil
}
