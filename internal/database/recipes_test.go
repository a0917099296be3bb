// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package database

import (
	"context"
	"testing"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/models"
)

func line(ing *models.Ingredient, amount float64) models.RecipeIngredient {
	return models.RecipeIngredient{IngredientID: ing.ID, Amount: amount}
}

func TestRecipeAggregateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, db, "Flour", "g")
	egg := mustCreateIngredient(t, db, "Egg", "pcs")

	timeMin := 12
	r := &models.Recipe{
		Title:            "Pancakes",
		Description:      "Quick breakfast",
		TotalTimeMinutes: &timeMin,
		Ingredients:      []models.RecipeIngredient{line(flour, 200), line(egg, 2)},
		Steps: []models.RecipeStep{
			{StepNo: 1, Instruction: "Mix"},
			{StepNo: 2, Instruction: "Fry", TimeMinutes: &timeMin},
		},
	}
	if err := db.WithTx(ctx, func(s *Store) error { return s.CreateRecipe(ctx, r) }); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	got, err := db.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Title != "Pancakes" || got.TotalTimeMinutes == nil || *got.TotalTimeMinutes != 12 {
		t.Errorf("recipe row mismatch: %+v", got)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0].Name != "Flour" || got.Ingredients[1].Amount != 2 {
		t.Errorf("ingredient lines mismatch: %+v", got.Ingredients)
	}
	if len(got.Steps) != 2 || got.Steps[0].Instruction != "Mix" || got.Steps[1].TimeMinutes == nil {
		t.Errorf("steps mismatch: %+v", got.Steps)
	}
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, db, "Flour", "g")
	user := mustCreateUser(t, db, "rater@example.com")
	r := mustCreateRecipe(t, db, "Bread", []models.RecipeIngredient{line(flour, 500)})

	rating := &models.Rating{RecipeID: r.ID, UserID: user.ID, Stars: 5}
	if err := db.InsertRating(ctx, rating); err != nil {
		t.Fatalf("InsertRating: %v", err)
	}
	if err := db.InsertFavorite(ctx, user.ID, r.ID); err != nil {
		t.Fatalf("InsertFavorite: %v", err)
	}

	if err := db.WithTx(ctx, func(s *Store) error { return s.DeleteRecipe(ctx, r.ID) }); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	if _, err := db.GetRecipe(ctx, r.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("recipe should be gone, got %v", err)
	}
	if stars, _ := db.ListRatingStars(ctx, r.ID); len(stars) != 0 {
		t.Errorf("ratings should cascade, got %d", len(stars))
	}
	if exists, _ := db.FavoriteExists(ctx, user.ID, r.ID); exists {
		t.Error("favorites should cascade")
	}
}

func TestSearchRecipesByTitle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustCreateRecipe(t, db, "Tomato Soup", nil)
	mustCreateRecipe(t, db, "Cream of Tomato", nil)
	mustCreateRecipe(t, db, "Apple Pie", nil)

	page, err := db.SearchRecipesByTitle(ctx, "tomato", models.NormalizePage(0, 20))
	if err != nil {
		t.Fatalf("SearchRecipesByTitle: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("total = %d, items = %d, want 2/2", page.Total, len(page.Items))
	}
	if page.Items[0].Title != "Cream of Tomato" {
		t.Errorf("title order mismatch: %+v", page.Items)
	}
}

func TestSearchRecipesByIngredientNamesANDSemantics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, db, "Flour", "g")
	egg := mustCreateIngredient(t, db, "Egg", "pcs")
	sugar := mustCreateIngredient(t, db, "Sugar", "g")

	mustCreateRecipe(t, db, "Cake", []models.RecipeIngredient{line(flour, 1), line(egg, 1), line(sugar, 1)})
	mustCreateRecipe(t, db, "Omelette", []models.RecipeIngredient{line(egg, 3)})

	// Both requested names present only in Cake.
	page, err := db.SearchRecipesByIngredientNames(ctx, []string{"flour", "egg"}, models.NormalizePage(0, 20))
	if err != nil {
		t.Fatalf("SearchRecipesByIngredientNames: %v", err)
	}
	if page.Total != 1 || page.Items[0].Title != "Cake" {
		t.Errorf("AND semantics violated: %+v", page.Items)
	}

	// One unknown name means no recipe can match every name.
	page, err = db.SearchRecipesByIngredientNames(ctx, []string{"egg", "saffron"}, models.NormalizePage(0, 20))
	if err != nil {
		t.Fatalf("SearchRecipesByIngredientNames: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("expected empty result, got %+v", page.Items)
	}
}

func TestSearchRecipesByPantryOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, db, "Flour", "g")
	egg := mustCreateIngredient(t, db, "Egg", "pcs")
	sugar := mustCreateIngredient(t, db, "Sugar", "g")
	salt := mustCreateIngredient(t, db, "Salt", "g")

	// Pantry covers flour and egg.
	pantry := []string{"flour", "egg"}

	// 0 missing, 2 matched.
	mustCreateRecipe(t, db, "Scrambled", []models.RecipeIngredient{line(flour, 1), line(egg, 2)})
	// 1 missing, 2 matched.
	mustCreateRecipe(t, db, "Cake", []models.RecipeIngredient{line(flour, 1), line(egg, 1), line(sugar, 1)})
	// 1 missing, 1 matched.
	mustCreateRecipe(t, db, "Flatbread", []models.RecipeIngredient{line(flour, 1), line(salt, 1)})
	// 0 matched: excluded.
	mustCreateRecipe(t, db, "Caramel", []models.RecipeIngredient{line(sugar, 1)})

	page, err := db.SearchRecipesByPantry(ctx, pantry, models.NormalizePage(0, 20))
	if err != nil {
		t.Fatalf("SearchRecipesByPantry: %v", err)
	}

	want := []string{"Scrambled", "Cake", "Flatbread"}
	if len(page.Items) != len(want) {
		t.Fatalf("result count = %d, want %d: %+v", len(page.Items), len(want), page.Items)
	}
	for i, title := range want {
		if page.Items[i].Title != title {
			t.Errorf("rank %d = %q, want %q", i, page.Items[i].Title, title)
		}
	}
}

func TestSearchRecipesByPantryDuplicateLinesCountOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, db, "Flour", "g")
	sugar := mustCreateIngredient(t, db, "Sugar", "g")
	salt := mustCreateIngredient(t, db, "Salt", "g")
	yeast := mustCreateIngredient(t, db, "Yeast", "g")

	// Sugar appears on two lines; it is still one missing ingredient.
	mustCreateRecipe(t, db, "Layer Cake", []models.RecipeIngredient{
		line(flour, 300), line(sugar, 100), line(sugar, 50),
	})
	mustCreateRecipe(t, db, "Bread", []models.RecipeIngredient{
		line(flour, 500), line(salt, 10), line(yeast, 7),
	})

	page, err := db.SearchRecipesByPantry(ctx, []string{"flour"}, models.NormalizePage(0, 20))
	if err != nil {
		t.Fatalf("SearchRecipesByPantry: %v", err)
	}

	// Layer Cake misses only sugar; Bread misses salt and yeast.
	want := []string{"Layer Cake", "Bread"}
	if len(page.Items) != len(want) {
		t.Fatalf("result count = %d, want %d: %+v", len(page.Items), len(want), page.Items)
	}
	for i, title := range want {
		if page.Items[i].Title != title {
			t.Errorf("rank %d = %q, want %q", i, page.Items[i].Title, title)
		}
	}
}

func TestSearchRecipesByPantryRatingAndTimeTieBreaks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	egg := mustCreateIngredient(t, db, "Egg", "pcs")

	fast, slow := 10, 40
	r1 := mustCreateRecipe(t, db, "Boiled Egg", []models.RecipeIngredient{line(egg, 1)})
	r2 := mustCreateRecipe(t, db, "Poached Egg", []models.RecipeIngredient{line(egg, 1)})
	r3 := mustCreateRecipe(t, db, "Deviled Egg", []models.RecipeIngredient{line(egg, 2)})

	// Same missing/matched for all three; rating then time decide.
	rating := 4.5
	if err := db.UpdateRecipeAvgRating(ctx, r2.ID, &rating); err != nil {
		t.Fatalf("UpdateRecipeAvgRating: %v", err)
	}
	if _, err := db.conn.ExecContext(ctx, `UPDATE recipes SET total_time_min = ? WHERE id = ?`, fast, r1.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.conn.ExecContext(ctx, `UPDATE recipes SET total_time_min = ? WHERE id = ?`, slow, r3.ID); err != nil {
		t.Fatal(err)
	}

	page, err := db.SearchRecipesByPantry(ctx, []string{"egg"}, models.NormalizePage(0, 20))
	if err != nil {
		t.Fatalf("SearchRecipesByPantry: %v", err)
	}

	// Poached (rated) first; Boiled (10 min) before Deviled (40 min).
	want := []string{"Poached Egg", "Boiled Egg", "Deviled Egg"}
	for i, title := range want {
		if page.Items[i].Title != title {
			t.Errorf("rank %d = %q, want %q", i, page.Items[i].Title, title)
		}
	}
}

func TestTopRatedRecipes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	r1 := mustCreateRecipe(t, db, "Average", nil)
	r2 := mustCreateRecipe(t, db, "Great", nil)
	mustCreateRecipe(t, db, "Unrated", nil)

	three, five := 3.0, 5.0
	_ = db.UpdateRecipeAvgRating(ctx, r1.ID, &three)
	_ = db.UpdateRecipeAvgRating(ctx, r2.ID, &five)

	page, err := db.TopRatedRecipes(ctx, models.NormalizePage(0, 20))
	if err != nil {
		t.Fatalf("TopRatedRecipes: %v", err)
	}
	want := []string{"Great", "Average", "Unrated"}
	for i, title := range want {
		if page.Items[i].Title != title {
			t.Errorf("rank %d = %q, want %q", i, page.Items[i].Title, title)
		}
	}
}

func TestListRecipesPagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		mustCreateRecipe(t, db, title, nil)
	}

	page, err := db.ListRecipes(ctx, models.NormalizePage(1, 2))
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("total = %d, want 5", page.Total)
	}
	if len(page.Items) != 2 || page.Items[0].Title != "C" || page.Items[1].Title != "D" {
		t.Errorf("page 1 of size 2 = %+v, want [C D]", page.Items)
	}
}

func TestRecipeNameSets(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, db, "Flour", "g")
	mustCreateRecipe(t, db, "Bread", []models.RecipeIngredient{line(flour, 500)})
	mustCreateRecipe(t, db, "Empty", nil)

	sets, err := db.RecipeNameSets(ctx)
	if err != nil {
		t.Fatalf("RecipeNameSets: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("set count = %d, want 2", len(sets))
	}
	if sets[0].Title != "Bread" || len(sets[0].Names) != 1 || sets[0].Names[0] != "flour" {
		t.Errorf("bread set mismatch: %+v", sets[0])
	}
	if len(sets[1].Names) != 0 {
		t.Errorf("empty recipe should have no names: %+v", sets[1])
	}
}
