// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package recipes

import (
	"context"
	"testing"

	"github.com/opencookbook/cookbook/internal/models"
)

func TestSearchByTitleBlank(t *testing.T) {
	svc, _ := newTestService(t)
	page, err := svc.SearchByTitle(context.Background(), "  ", models.NormalizePage(0, 10))
	if err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Errorf("blank title search returned %d items", len(page.Items))
	}
}

func TestSearchByTitleCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustRecipe(t, svc, "Pasta Carbonara")
	mustRecipe(t, svc, "Apple Pie")

	for _, q := range []string{"Pasta", "CARBONARA", "pasta"} {
		page, err := svc.SearchByTitle(ctx, q, models.NormalizePage(0, 10))
		if err != nil {
			t.Fatalf("SearchByTitle(%q) error = %v", q, err)
		}
		if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Title != "Pasta Carbonara" {
			t.Errorf("SearchByTitle(%q) = %+v, want Pasta Carbonara", q, page.Items)
		}
	}
}

func TestSearchByIngredientNamesDedupes(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	flour := mustIngredient(t, db, "Flour")
	egg := mustIngredient(t, db, "Egg")
	sugar := mustIngredient(t, db, "Sugar")
	mustRecipe(t, svc, "Cake", flour.ID, egg.ID, sugar.ID)
	mustRecipe(t, svc, "Omelette", egg.ID)

	// Duplicate and differently-cased names count once.
	page, err := svc.SearchByIngredientNames(ctx,
		[]string{" Flour ", "EGG", "egg", ""}, models.NormalizePage(0, 10))
	if err != nil {
		t.Fatalf("SearchByIngredientNames() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Cake" {
		t.Fatalf("items = %+v, want only Cake", page.Items)
	}

	empty, err := svc.SearchByIngredientNames(ctx, []string{"  ", ""}, models.NormalizePage(0, 10))
	if err != nil {
		t.Fatalf("SearchByIngredientNames() error = %v", err)
	}
	if len(empty.Items) != 0 {
		t.Errorf("empty name set returned %d items", len(empty.Items))
	}
}

func TestRankByIngredientOverlap(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	flour := mustIngredient(t, db, "Flour")
	egg := mustIngredient(t, db, "Egg")
	sugar := mustIngredient(t, db, "Sugar")
	milk := mustIngredient(t, db, "Milk")
	salt := mustIngredient(t, db, "Salt")

	mustRecipe(t, svc, "Cake", flour.ID, egg.ID, sugar.ID, milk.ID)
	mustRecipe(t, svc, "Omelette", egg.ID, salt.ID)
	mustRecipe(t, svc, "Scrambled Eggs", egg.ID)
	mustRecipe(t, svc, "Caramel", sugar.ID)

	got, err := svc.RankByIngredientOverlap(ctx, []string{"egg", "Flour", "milk"})
	if err != nil {
		t.Fatalf("RankByIngredientOverlap() error = %v", err)
	}
	// Cake matches 3 missing 1; Scrambled Eggs matches 1 missing 0;
	// Omelette matches 1 missing 1; Caramel matches 0 and is excluded.
	want := []struct {
		title   string
		matched int
		missing int
	}{
		{"Cake", 3, 1},
		{"Scrambled Eggs", 1, 0},
		{"Omelette", 1, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Title != w.title || got[i].MatchedCount != w.matched || got[i].MissingCount != w.missing {
			t.Errorf("match[%d] = %+v, want %+v", i, got[i], w)
		}
	}

	none, err := svc.RankByIngredientOverlap(ctx, nil)
	if err != nil {
		t.Fatalf("RankByIngredientOverlap(nil) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("empty name set ranked %d recipes", len(none))
	}
}

func TestSearchByPantryEmptyPantry(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	egg := mustIngredient(t, db, "Egg")
	mustRecipe(t, svc, "Omelette", egg.ID)

	page, err := svc.SearchByPantry(ctx, 42, models.NormalizePage(0, 10))
	if err != nil {
		t.Fatalf("SearchByPantry() error = %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("empty pantry returned %d items", len(page.Items))
	}
}

func TestSearchByPantryOrdersByCoverage(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	egg := mustIngredient(t, db, "Egg")
	flour := mustIngredient(t, db, "Flour")
	milk := mustIngredient(t, db, "Milk")
	sugar := mustIngredient(t, db, "Sugar")

	mustRecipe(t, svc, "Scrambled Eggs", egg.ID)
	mustRecipe(t, svc, "Cake", flour.ID, egg.ID, sugar.ID, milk.ID)
	mustRecipe(t, svc, "Caramel", sugar.ID)

	const userID = 7
	for _, ing := range []*models.Ingredient{egg, flour, milk} {
		if _, err := db.UpsertPantryItem(ctx, userID, ing.ID, 100); err != nil {
			t.Fatalf("stock pantry: %v", err)
		}
	}

	page, err := svc.SearchByPantry(ctx, userID, models.NormalizePage(0, 10))
	if err != nil {
		t.Fatalf("SearchByPantry() error = %v", err)
	}
	want := []string{"Scrambled Eggs", "Cake"}
	if len(page.Items) != len(want) {
		t.Fatalf("items = %+v, want titles %v", page.Items, want)
	}
	for i, title := range want {
		if page.Items[i].Title != title {
			t.Errorf("item[%d] = %q, want %q", i, page.Items[i].Title, title)
		}
	}
}
