// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package shopping

import (
	"context"
	"testing"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/config"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/models"
)

func newTestService(t *testing.T) (*Service, *database.DB) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB"})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db), db
}

func mustIngredient(t *testing.T, db *database.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ing, err := db.CreateIngredient(context.Background(), name, unit, models.CategoryOther)
	if err != nil {
		t.Fatalf("create ingredient %q: %v", name, err)
	}
	return ing
}

func mustRecipe(t *testing.T, db *database.DB, title string, ings ...*models.Ingredient) *models.Recipe {
	t.Helper()
	r := &models.Recipe{Title: title}
	for _, ing := range ings {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
			IngredientID: ing.ID, Name: ing.Name, Unit: ing.Unit, Amount: 100,
		})
	}
	err := db.WithTx(context.Background(), func(st *database.Store) error {
		return st.CreateRecipe(context.Background(), r)
	})
	if err != nil {
		t.Fatalf("create recipe %q: %v", title, err)
	}
	return r
}

func TestCreateDisambiguatesNames(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	names := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		list, err := svc.Create(ctx, 1, "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		names = append(names, list.Name)
	}
	want := []string{"Shopping list", "Shopping list (2)", "Shopping list (3)"}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("list[%d] name = %q, want %q", i, names[i], w)
		}
	}

	// Another user starts from the unsuffixed name again.
	other, err := svc.Create(ctx, 2, "shopping LIST")
	if err != nil {
		t.Fatalf("Create() for other user error = %v", err)
	}
	if other.Name != "shopping LIST" {
		t.Errorf("other user name = %q, want unsuffixed", other.Name)
	}
}

func TestGetHidesForeignLists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	list, err := svc.Create(ctx, 1, "Groceries")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Get(ctx, 2, list.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("foreign Get() kind = %v, want KindNotFound", apperr.KindOf(err))
	}
}

func TestAddItemVariants(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	milk := mustIngredient(t, db, "Milk", "ml")
	list, err := svc.Create(ctx, 1, "Groceries")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	amount := 500.0
	backed, err := svc.AddItem(ctx, 1, list.ID, ItemInput{IngredientID: &milk.ID, Amount: &amount})
	if err != nil {
		t.Fatalf("AddItem() backed error = %v", err)
	}
	if backed.Name != "Milk" || backed.Unit == nil || *backed.Unit != "ml" {
		t.Errorf("backed item did not inherit catalog name/unit: %+v", backed)
	}

	name := "fancy napkins"
	free, err := svc.AddItem(ctx, 1, list.ID, ItemInput{Name: &name})
	if err != nil {
		t.Fatalf("AddItem() freeform error = %v", err)
	}
	if free.IngredientID != nil || free.Name != "fancy napkins" {
		t.Errorf("freeform item = %+v", free)
	}

	if _, err := svc.AddItem(ctx, 1, list.ID, ItemInput{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("empty item kind = %v, want KindValidation", apperr.KindOf(err))
	}
}

func TestUpdateItemSwitchesForms(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	milk := mustIngredient(t, db, "Milk", "ml")
	list, err := svc.Create(ctx, 1, "Groceries")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	amount := 1.0
	item, err := svc.AddItem(ctx, 1, list.ID, ItemInput{IngredientID: &milk.ID, Amount: &amount})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	// Backed to freeform.
	name := "Oat drink"
	got, err := svc.UpdateItem(ctx, 1, list.ID, item.ID, ItemInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}
	if got.IngredientID != nil || got.Name != "Oat drink" {
		t.Errorf("item after switch = %+v", got)
	}

	// Freeform back to catalog-backed.
	got, err = svc.UpdateItem(ctx, 1, list.ID, item.ID, ItemInput{IngredientID: &milk.ID})
	if err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}
	if got.IngredientID == nil || *got.IngredientID != milk.ID || got.Name != "Milk" {
		t.Errorf("item after switch back = %+v", got)
	}

	if _, err := svc.UpdateItem(ctx, 1, list.ID, 9999, ItemInput{Name: &name}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("unknown item kind = %v, want KindNotFound", apperr.KindOf(err))
	}
}

func TestAddFromRecipeModesAndIdempotency(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	flour := mustIngredient(t, db, "Flour", "g")
	egg := mustIngredient(t, db, "Egg", "pcs")
	milk := mustIngredient(t, db, "Milk", "ml")
	recipe := mustRecipe(t, db, "Pancakes", flour, egg, milk)

	const userID = 1
	if _, err := db.UpsertPantryItem(ctx, userID, flour.ID, 1000); err != nil {
		t.Fatalf("stock pantry: %v", err)
	}

	// Default mode skips the stocked flour and derives the list name.
	list, err := svc.AddFromRecipe(ctx, userID, recipe.ID, AddFromRecipeInput{})
	if err != nil {
		t.Fatalf("AddFromRecipe() error = %v", err)
	}
	if list.Name != "List: Pancakes" {
		t.Errorf("derived name = %q, want %q", list.Name, "List: Pancakes")
	}
	if len(list.Items) != 2 {
		t.Fatalf("missing mode added %d items, want 2: %+v", len(list.Items), list.Items)
	}

	// Repeating the fill adds nothing.
	list, err = svc.AddFromRecipe(ctx, userID, recipe.ID, AddFromRecipeInput{ListID: &list.ID})
	if err != nil {
		t.Fatalf("AddFromRecipe() repeat error = %v", err)
	}
	if len(list.Items) != 2 {
		t.Errorf("repeat fill grew the list to %d items", len(list.Items))
	}

	// Mode all tops up the stocked ingredient too.
	list, err = svc.AddFromRecipe(ctx, userID, recipe.ID, AddFromRecipeInput{ListID: &list.ID, Mode: ModeAll})
	if err != nil {
		t.Fatalf("AddFromRecipe() all error = %v", err)
	}
	if len(list.Items) != 3 {
		t.Errorf("all mode list has %d items, want 3", len(list.Items))
	}

	if _, err := svc.AddFromRecipe(ctx, userID, recipe.ID, AddFromRecipeInput{Mode: "everything"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("unknown mode kind = %v, want KindValidation", apperr.KindOf(err))
	}
}

func TestAddFromRecipeSkipsMatchingFreeformNames(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	milk := mustIngredient(t, db, "Milk", "ml")
	recipe := mustRecipe(t, db, "Porridge", milk)

	list, err := svc.Create(ctx, 1, "Groceries")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	name := "  MILK "
	if _, err := svc.AddItem(ctx, 1, list.ID, ItemInput{Name: &name}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	got, err := svc.AddFromRecipe(ctx, 1, recipe.ID, AddFromRecipeInput{ListID: &list.ID})
	if err != nil {
		t.Fatalf("AddFromRecipe() error = %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("freeform milk was duplicated: %+v", got.Items)
	}
}

func TestFinalizeMergesIntoPantry(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	flour := mustIngredient(t, db, "Flour", "g")
	milk := mustIngredient(t, db, "Milk", "ml")

	const userID = 1
	if _, err := db.UpsertPantryItem(ctx, userID, flour.ID, 200); err != nil {
		t.Fatalf("stock pantry: %v", err)
	}

	list, err := svc.Create(ctx, userID, "Groceries")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	flourAmt, milkAmt, zero := 300.0, 500.0, 0.0
	freeform := "candles"
	for _, in := range []ItemInput{
		{IngredientID: &flour.ID, Amount: &flourAmt},
		{IngredientID: &milk.ID, Amount: &milkAmt},
		{IngredientID: &milk.ID, Amount: &zero},
		{Name: &freeform},
	} {
		if _, err := svc.AddItem(ctx, userID, list.ID, in); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
	}

	if err := svc.Finalize(ctx, 2, list.ID, true); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("foreign Finalize() kind = %v, want KindForbidden", apperr.KindOf(err))
	}
	if err := svc.Finalize(ctx, userID, list.ID, true); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	// Existing stock is topped up, new stock created, zero amounts and
	// freeform items ignored.
	items, err := db.ListPantry(ctx, userID)
	if err != nil {
		t.Fatalf("ListPantry() error = %v", err)
	}
	byID := map[int64]float64{}
	for _, it := range items {
		byID[it.IngredientID] = it.Amount
	}
	if byID[flour.ID] != 500 {
		t.Errorf("flour stock = %v, want 500", byID[flour.ID])
	}
	if byID[milk.ID] != 500 {
		t.Errorf("milk stock = %v, want 500", byID[milk.ID])
	}

	if _, err := svc.Get(ctx, userID, list.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("list survived finalize: kind = %v", apperr.KindOf(err))
	}
}

func TestFinalizeWithoutPantryMergeStillDeletes(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	milk := mustIngredient(t, db, "Milk", "ml")

	list, err := svc.Create(ctx, 1, "Groceries")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	amt := 500.0
	if _, err := svc.AddItem(ctx, 1, list.ID, ItemInput{IngredientID: &milk.ID, Amount: &amt}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if err := svc.Finalize(ctx, 1, list.ID, false); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	items, err := db.ListPantry(ctx, 1)
	if err != nil {
		t.Fatalf("ListPantry() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("pantry grew without merge: %+v", items)
	}
	if _, err := svc.Get(ctx, 1, list.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("list survived finalize: kind = %v", apperr.KindOf(err))
	}
}

func TestRename(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, 1, "Groceries")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, 1, "Weekend"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Rename(ctx, 1, a.ID, "  "); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("blank rename kind = %v, want KindValidation", apperr.KindOf(err))
	}
	if _, err := svc.Rename(ctx, 1, a.ID, "weekend"); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("duplicate rename kind = %v, want KindConflict", apperr.KindOf(err))
	}
	if _, err := svc.Rename(ctx, 2, a.ID, "Mine"); apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("foreign rename kind = %v, want KindForbidden", apperr.KindOf(err))
	}

	got, err := svc.Rename(ctx, 1, a.ID, "GROCERIES")
	if err != nil {
		t.Fatalf("case-only rename error = %v", err)
	}
	if got.Name != "GROCERIES" {
		t.Errorf("Name = %q, want %q", got.Name, "GROCERIES")
	}

	got, err = svc.Rename(ctx, 1, a.ID, "Pantry run")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if got.Name != "Pantry run" {
		t.Errorf("Name = %q, want %q", got.Name, "Pantry run")
	}
}
