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

const pantryItemColumns = `p.id, p.user_id, p.ingredient_id, i.name, i.unit, i.category, p.amount`

func scanPantryItem(row interface{ Scan(...interface{}) error }) (*models.PantryItem, error) {
	item := &models.PantryItem{}
	var category string
	if err := row.Scan(&item.ID, &item.UserID, &item.IngredientID, &item.Name, &item.Unit, &category, &item.Amount); err != nil {
		return nil, err
	}
	item.Category = models.IngredientCategory(category)
	return item, nil
}

// ListPantry returns the user's pantry joined with ingredient details,
// ordered by ingredient name.
func (s *Store) ListPantry(ctx context.Context, userID int64) ([]models.PantryItem, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+pantryItemColumns+`
		 FROM pantry_items p
		 JOIN ingredients i ON i.id = p.ingredient_id
		 WHERE p.user_id = ?
		 ORDER BY i.name_norm, p.id`, userID)
	if err != nil {
		return nil, mapError(err, "list pantry")
	}
	defer rows.Close()

	out := []models.PantryItem{}
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, mapError(err, "scan pantry item")
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

// GetPantryItem loads the item for a (user, ingredient) pair.
func (s *Store) GetPantryItem(ctx context.Context, userID, ingredientID int64) (*models.PantryItem, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+pantryItemColumns+`
		 FROM pantry_items p
		 JOIN ingredients i ON i.id = p.ingredient_id
		 WHERE p.user_id = ? AND p.ingredient_id = ?`, userID, ingredientID)
	item, err := scanPantryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "pantry item not found")
	}
	if err != nil {
		return nil, mapError(err, "get pantry item")
	}
	return item, nil
}

// GetPantryItemByID loads one pantry item by primary key.
func (s *Store) GetPantryItemByID(ctx context.Context, id int64) (*models.PantryItem, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+pantryItemColumns+`
		 FROM pantry_items p
		 JOIN ingredients i ON i.id = p.ingredient_id
		 WHERE p.id = ?`, id)
	item, err := scanPantryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "pantry item not found")
	}
	if err != nil {
		return nil, mapError(err, "get pantry item")
	}
	return item, nil
}

// UpsertPantryItem sets the amount for a (user, ingredient) pair,
// creating the row on first reference. The (user, ingredient) pair
// stays unique; concurrent creation of the same pair surfaces as
// KindConflict through the unique constraint.
func (s *Store) UpsertPantryItem(ctx context.Context, userID, ingredientID int64, amount float64) (*models.PantryItem, error) {
	res, err := s.q.ExecContext(ctx,
		`UPDATE pantry_items SET amount = ? WHERE user_id = ? AND ingredient_id = ?`,
		amount, userID, ingredientID)
	if err != nil {
		return nil, mapError(err, "update pantry item")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := s.q.ExecContext(ctx,
			`INSERT INTO pantry_items (user_id, ingredient_id, amount) VALUES (?, ?, ?)`,
			userID, ingredientID, amount); err != nil {
			return nil, mapError(err, "insert pantry item")
		}
	}
	return s.GetPantryItem(ctx, userID, ingredientID)
}

// DeletePantryItem removes one pantry item by primary key.
func (s *Store) DeletePantryItem(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM pantry_items WHERE id = ?`, id)
	if err != nil {
		return mapError(err, "delete pantry item")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "pantry item not found")
	}
	return nil
}

// PantryIngredientIDs returns the set of ingredient ids present in the
// user's pantry.
func (s *Store) PantryIngredientIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT ingredient_id FROM pantry_items WHERE user_id = ?`, userID)
	if err != nil {
		return nil, mapError(err, "pantry ingredient ids")
	}
	defer rows.Close()

	out := map[int64]struct{}{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err, "scan pantry ingredient id")
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

// PantryNamesForUser returns the normalized ingredient names in the
// user's pantry.
func (s *Store) PantryNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT i.name_norm
		 FROM pantry_items p
		 JOIN ingredients i ON i.id = p.ingredient_id
		 WHERE p.user_id = ?
		 ORDER BY i.name_norm`, userID)
	if err != nil {
		return nil, mapError(err, "pantry names")
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapError(err, "scan pantry name")
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
