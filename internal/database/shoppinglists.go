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

// ListShoppingLists returns the user's lists, newest first, with item
// counts.
func (s *Store) ListShoppingLists(ctx context.Context, userID int64) ([]models.ShoppingListSummary, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT l.id, l.name,
		        (SELECT count(*) FROM shopping_list_items li WHERE li.list_id = l.id) AS items_count
		 FROM shopping_lists l
		 WHERE l.user_id = ?
		 ORDER BY l.created_at DESC, l.id DESC`, userID)
	if err != nil {
		return nil, mapError(err, "list shopping lists")
	}
	defer rows.Close()

	out := []models.ShoppingListSummary{}
	for rows.Next() {
		var sum models.ShoppingListSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.ItemsCount); err != nil {
			return nil, mapError(err, "scan shopping list summary")
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetShoppingList loads the list aggregate with its items regardless of
// owner. Ownership checks belong to the service layer, which
// distinguishes NotFound from Forbidden.
func (s *Store) GetShoppingList(ctx context.Context, id int64) (*models.ShoppingList, error) {
	list := &models.ShoppingList{ID: id}
	err := s.q.QueryRowContext(ctx,
		`SELECT user_id, name, created_at FROM shopping_lists WHERE id = ?`, id,
	).Scan(&list.UserID, &list.Name, &list.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "shopping list not found")
	}
	if err != nil {
		return nil, mapError(err, "get shopping list")
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT id, ingredient_id, name, amount, unit
		 FROM shopping_list_items WHERE list_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, mapError(err, "get shopping list items")
	}
	defer rows.Close()

	list.Items = []models.ShoppingListItem{}
	for rows.Next() {
		var item models.ShoppingListItem
		var ingredientID sql.NullInt64
		var amount sql.NullFloat64
		var unit sql.NullString
		if err := rows.Scan(&item.ID, &ingredientID, &item.Name, &amount, &unit); err != nil {
			return nil, mapError(err, "scan shopping list item")
		}
		if ingredientID.Valid {
			item.IngredientID = &ingredientID.Int64
		}
		if amount.Valid {
			item.Amount = &amount.Float64
		}
		if unit.Valid {
			item.Unit = &unit.String
		}
		list.Items = append(list.Items, item)
	}
	return list, rows.Err()
}

// CreateShoppingList inserts a list. The name must already be resolved
// and unique for the user; a concurrent duplicate surfaces as
// KindConflict through the (user_id, name_norm) constraint.
func (s *Store) CreateShoppingList(ctx context.Context, userID int64, name string) (*models.ShoppingList, error) {
	list := &models.ShoppingList{UserID: userID, Name: name, Items: []models.ShoppingListItem{}}
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO shopping_lists (user_id, name, name_norm)
		 VALUES (?, ?, ?) RETURNING id, created_at`,
		userID, name, norm(name),
	).Scan(&list.ID, &list.CreatedAt)
	if err != nil {
		return nil, mapError(err, "create shopping list")
	}
	return list, nil
}

// ShoppingListNameExists reports whether the user already owns a list
// with this name, compared case-insensitively.
func (s *Store) ShoppingListNameExists(ctx context.Context, userID int64, name string) (bool, error) {
	var n int64
	err := s.q.QueryRowContext(ctx,
		`SELECT count(*) FROM shopping_lists WHERE user_id = ? AND name_norm = ?`,
		userID, norm(name)).Scan(&n)
	if err != nil {
		return false, mapError(err, "check shopping list name")
	}
	return n > 0, nil
}

// RenameShoppingList updates the list name.
func (s *Store) RenameShoppingList(ctx context.Context, id int64, name string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE shopping_lists SET name = ?, name_norm = ? WHERE id = ?`,
		name, norm(name), id)
	if err != nil {
		return mapError(err, "rename shopping list")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "shopping list not found")
	}
	return nil
}

// DeleteShoppingList removes the list and its owned items. Should run
// inside WithTx.
func (s *Store) DeleteShoppingList(ctx context.Context, id int64) error {
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM shopping_list_items WHERE list_id = ?`, id); err != nil {
		return mapError(err, "delete shopping list items")
	}
	res, err := s.q.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ?`, id)
	if err != nil {
		return mapError(err, "delete shopping list")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "shopping list not found")
	}
	return nil
}

// InsertShoppingListItem appends one item and assigns its ID.
func (s *Store) InsertShoppingListItem(ctx context.Context, listID int64, item *models.ShoppingListItem) error {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO shopping_list_items (list_id, ingredient_id, name, amount, unit)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		listID, item.IngredientID, item.Name, item.Amount, item.Unit,
	).Scan(&item.ID)
	if err != nil {
		return mapError(err, "insert shopping list item")
	}
	return nil
}

// UpdateShoppingListItem persists an item's mutable fields. The item
// must belong to the given list.
func (s *Store) UpdateShoppingListItem(ctx context.Context, listID int64, item *models.ShoppingListItem) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE shopping_list_items
		 SET ingredient_id = ?, name = ?, amount = ?, unit = ?
		 WHERE id = ? AND list_id = ?`,
		item.IngredientID, item.Name, item.Amount, item.Unit, item.ID, listID)
	if err != nil {
		return mapError(err, "update shopping list item")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "shopping list item not found")
	}
	return nil
}

// DeleteShoppingListItem removes one item; NotFound when the item does
// not belong to the list.
func (s *Store) DeleteShoppingListItem(ctx context.Context, listID, itemID int64) error {
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM shopping_list_items WHERE id = ? AND list_id = ?`, itemID, listID)
	if err != nil {
		return mapError(err, "delete shopping list item")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "shopping list item not found")
	}
	return nil
}
