// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package pantry tracks each user's ingredient stock. One row per
// (user, ingredient), created on first reference and updated in place.
package pantry

import (
	"context"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/models"
)

// Service exposes pantry operations.
type Service struct {
	db *database.DB
}

// NewService creates a pantry service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// UpsertInput sets the stock level for one catalog ingredient.
type UpsertInput struct {
	IngredientID int64   `json:"ingredientId" validate:"required,gt=0"`
	Amount       float64 `json:"amount" validate:"gte=0"`
}

// List returns the user's pantry ordered by ingredient name.
func (s *Service) List(ctx context.Context, userID int64) ([]models.PantryItem, error) {
	return s.db.ListPantry(ctx, userID)
}

// Upsert sets the user's stock of one ingredient, creating the pantry
// row on first use. The ingredient must exist in the catalog.
func (s *Service) Upsert(ctx context.Context, userID int64, in UpsertInput) (*models.PantryItem, error) {
	if in.Amount < 0 {
		return nil, apperr.New(apperr.KindValidation, "amount must not be negative")
	}
	var item *models.PantryItem
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		if _, err := st.GetIngredient(ctx, in.IngredientID); err != nil {
			return err
		}
		var err error
		item, err = st.UpsertPantryItem(ctx, userID, in.IngredientID, in.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes one pantry row. Deleting another user's row is
// KindForbidden, an unknown row KindNotFound.
func (s *Service) Delete(ctx context.Context, userID, itemID int64) error {
	return s.db.WithTx(ctx, func(st *database.Store) error {
		item, err := st.GetPantryItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.UserID != userID {
			return apperr.New(apperr.KindForbidden, "pantry item belongs to another user")
		}
		return st.DeletePantryItem(ctx, itemID)
	})
}
