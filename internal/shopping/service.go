// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package shopping manages shopping lists and their reconciliation
// with recipes and the pantry.
//
// Items are either backed by a catalog ingredient or freeform. Filling
// a list from a recipe is idempotent: ingredients already on the list
// are never added twice. Finalizing a list can merge its amounts into
// the pantry; the list is deleted either way.
package shopping

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/metrics"
	"github.com/opencookbook/cookbook/internal/models"
)

// DefaultListName is used when a list is created without a name.
const DefaultListName = "Shopping list"

// Fill modes for AddFromRecipe.
const (
	ModeMissing = "missing"
	ModeAll     = "all"
)

// Service exposes shopping list operations.
type Service struct {
	db *database.DB
}

// NewService creates a shopping list service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// List returns the user's lists, newest first, with item counts.
func (s *Service) List(ctx context.Context, userID int64) ([]models.ShoppingListSummary, error) {
	return s.db.ListShoppingLists(ctx, userID)
}

// Get loads one of the user's lists with its items. Lists of other
// users are reported as not found.
func (s *Service) Get(ctx context.Context, userID, listID int64) (*models.ShoppingList, error) {
	return getOwnedList(ctx, s.db.Store, userID, listID)
}

// Create makes a new list. A blank name falls back to DefaultListName,
// and a taken name is disambiguated with a " (n)" suffix instead of
// failing.
func (s *Service) Create(ctx context.Context, userID int64, name string) (*models.ShoppingList, error) {
	base := strings.TrimSpace(name)
	if base == "" {
		base = DefaultListName
	}
	var list *models.ShoppingList
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		unique, err := disambiguateName(ctx, st, userID, base)
		if err != nil {
			return err
		}
		list, err = st.CreateShoppingList(ctx, userID, unique)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ItemInput carries item fields: a catalog reference or a freeform
// name, plus optional amount and unit.
type ItemInput struct {
	IngredientID *int64   `json:"ingredientId,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Amount       *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Unit         *string  `json:"unit,omitempty"`
}

// AddItem appends an item to the user's list. An ingredient-backed
// item inherits name and unit from the catalog unless a unit is given;
// a freeform item needs a non-blank name.
func (s *Service) AddItem(ctx context.Context, userID, listID int64, in ItemInput) (*models.ShoppingListItem, error) {
	var item *models.ShoppingListItem
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		if _, err := getOwnedList(ctx, st, userID, listID); err != nil {
			return err
		}
		built, err := buildItem(ctx, st, in)
		if err != nil {
			return err
		}
		item = built
		return st.InsertShoppingListItem(ctx, listID, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem patches an item in place. Setting an ingredient reference
// switches the item to catalog-backed; setting a name without one
// switches it to freeform.
func (s *Service) UpdateItem(ctx context.Context, userID, listID, itemID int64, in ItemInput) (*models.ShoppingListItem, error) {
	var updated *models.ShoppingListItem
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		list, err := getOwnedList(ctx, st, userID, listID)
		if err != nil {
			return err
		}
		item := findItem(list, itemID)
		if item == nil {
			return apperr.New(apperr.KindNotFound, "shopping list item not found")
		}

		switch {
		case in.IngredientID != nil:
			ing, err := st.GetIngredient(ctx, *in.IngredientID)
			if err != nil {
				return err
			}
			item.IngredientID = &ing.ID
			item.Name = ing.Name
			unit := ing.Unit
			item.Unit = &unit
		case in.Name != nil:
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return apperr.New(apperr.KindValidation, "item name must not be blank")
			}
			item.IngredientID = nil
			item.Name = name
		}
		if in.Amount != nil {
			item.Amount = in.Amount
		}
		if in.Unit != nil {
			item.Unit = in.Unit
		}

		updated = item
		return st.UpdateShoppingListItem(ctx, listID, item)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteItem removes one item from the user's list.
func (s *Service) DeleteItem(ctx context.Context, userID, listID, itemID int64) error {
	return s.db.WithTx(ctx, func(st *database.Store) error {
		if _, err := getOwnedList(ctx, st, userID, listID); err != nil {
			return err
		}
		return st.DeleteShoppingListItem(ctx, listID, itemID)
	})
}

// Rename changes the list name. The new name must be non-blank and,
// unless it only changes the current name's case or spacing, unused by
// the user's other lists.
func (s *Service) Rename(ctx context.Context, userID, listID int64, name string) (*models.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "list name must not be blank")
	}
	var out *models.ShoppingList
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		list, err := st.GetShoppingList(ctx, listID)
		if err != nil {
			return err
		}
		if list.UserID != userID {
			return apperr.New(apperr.KindForbidden, "shopping list belongs to another user")
		}
		if normName(name) != normName(list.Name) {
			taken, err := st.ShoppingListNameExists(ctx, userID, name)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Newf(apperr.KindConflict, "shopping list %q already exists", name)
			}
		}
		if err := st.RenameShoppingList(ctx, listID, name); err != nil {
			return err
		}
		list.Name = name
		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddFromRecipeInput selects a target list and fill mode. With no
// ListID a new list is created, named NewListName or "List: <title>".
type AddFromRecipeInput struct {
	ListID      *int64  `json:"listId,omitempty"`
	NewListName *string `json:"newListName,omitempty"`
	Mode        string  `json:"mode,omitempty"`
}

// AddFromRecipe fills a shopping list from a recipe's ingredient
// lines. In ModeMissing (the default) lines already stocked in the
// pantry are skipped; ModeAll takes every line. Lines whose ingredient
// is already on the list, by catalog reference or by name, are never
// duplicated, so the call is idempotent.
func (s *Service) AddFromRecipe(ctx context.Context, userID, recipeID int64, in AddFromRecipeInput) (*models.ShoppingList, error) {
	mode := strings.ToLower(strings.TrimSpace(in.Mode))
	if mode == "" {
		mode = ModeMissing
	}
	if mode != ModeMissing && mode != ModeAll {
		return nil, apperr.Newf(apperr.KindValidation, "unknown fill mode %q", in.Mode)
	}

	var listID int64
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		recipe, err := st.GetRecipe(ctx, recipeID)
		if err != nil {
			return err
		}

		list, err := resolveTargetList(ctx, st, userID, recipe, in)
		if err != nil {
			return err
		}
		listID = list.ID

		var pantry map[int64]struct{}
		if mode == ModeMissing {
			pantry, err = st.PantryIngredientIDs(ctx, userID)
			if err != nil {
				return err
			}
		}

		onList := make(map[int64]struct{}, len(list.Items))
		freeform := make(map[string]struct{}, len(list.Items))
		for _, it := range list.Items {
			if it.IngredientID != nil {
				onList[*it.IngredientID] = struct{}{}
			} else {
				freeform[normName(it.Name)] = struct{}{}
			}
		}

		for _, line := range recipe.Ingredients {
			if mode == ModeMissing {
				if _, stocked := pantry[line.IngredientID]; stocked {
					continue
				}
			}
			if _, dup := onList[line.IngredientID]; dup {
				continue
			}
			if _, dup := freeform[normName(line.Name)]; dup {
				continue
			}

			ingID := line.IngredientID
			amount := line.Amount
			unit := line.Unit
			item := &models.ShoppingListItem{
				IngredientID: &ingID,
				Name:         line.Name,
				Amount:       &amount,
				Unit:         &unit,
			}
			if err := st.InsertShoppingListItem(ctx, list.ID, item); err != nil {
				return err
			}
			onList[ingID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, listID)
}

// Finalize completes a shopping cycle. With addToPantry, every
// ingredient-backed item with a positive amount is added onto the
// user's pantry stock; the list is deleted in both cases.
func (s *Service) Finalize(ctx context.Context, userID, listID int64, addToPantry bool) error {
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		list, err := st.GetShoppingList(ctx, listID)
		if err != nil {
			return err
		}
		if list.UserID != userID {
			return apperr.New(apperr.KindForbidden, "shopping list belongs to another user")
		}

		if addToPantry {
			for _, item := range list.Items {
				if item.IngredientID == nil || item.Amount == nil || *item.Amount <= 0 {
					continue
				}
				current := 0.0
				existing, err := st.GetPantryItem(ctx, userID, *item.IngredientID)
				switch {
				case err == nil:
					current = existing.Amount
				case apperr.KindOf(err) == apperr.KindNotFound:
					// first stock of this ingredient
				default:
					return err
				}
				if _, err := st.UpsertPantryItem(ctx, userID, *item.IngredientID, current+*item.Amount); err != nil {
					return err
				}
			}
		}
		return st.DeleteShoppingList(ctx, listID)
	})
	if err != nil {
		return err
	}
	metrics.ShoppingListsFinalized.WithLabelValues(strconv.FormatBool(addToPantry)).Inc()
	return nil
}

func getOwnedList(ctx context.Context, st *database.Store, userID, listID int64) (*models.ShoppingList, error) {
	list, err := st.GetShoppingList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, apperr.New(apperr.KindNotFound, "shopping list not found")
	}
	return list, nil
}

func resolveTargetList(ctx context.Context, st *database.Store, userID int64, recipe *models.Recipe, in AddFromRecipeInput) (*models.ShoppingList, error) {
	if in.ListID != nil {
		return getOwnedList(ctx, st, userID, *in.ListID)
	}
	base := ""
	if in.NewListName != nil {
		base = strings.TrimSpace(*in.NewListName)
	}
	if base == "" {
		base = "List: " + recipe.Title
	}
	name, err := disambiguateName(ctx, st, userID, base)
	if err != nil {
		return nil, err
	}
	return st.CreateShoppingList(ctx, userID, name)
}

func buildItem(ctx context.Context, st *database.Store, in ItemInput) (*models.ShoppingListItem, error) {
	item := &models.ShoppingListItem{Amount: in.Amount, Unit: in.Unit}
	if in.IngredientID != nil {
		ing, err := st.GetIngredient(ctx, *in.IngredientID)
		if err != nil {
			return nil, err
		}
		item.IngredientID = &ing.ID
		item.Name = ing.Name
		if item.Unit == nil {
			unit := ing.Unit
			item.Unit = &unit
		}
		return item, nil
	}
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "item needs an ingredient reference or a name")
	}
	item.Name = name
	return item, nil
}

// disambiguateName returns base, or base with the first free " (n)"
// suffix counting from 2, so creating never fails on a name clash.
func disambiguateName(ctx context.Context, st *database.Store, userID int64, base string) (string, error) {
	name := base
	for n := 2; ; n++ {
		taken, err := st.ShoppingListNameExists(ctx, userID, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s (%d)", base, n)
	}
}

func findItem(list *models.ShoppingList, itemID int64) *models.ShoppingListItem {
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			return &list.Items[i]
		}
	}
	return nil
}

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
