// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package seed loads a small sample catalog on first start so a fresh
// deployment has something to browse.
package seed

import (
	"context"

	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/logging"
	"github.com/opencookbook/cookbook/internal/models"
)

type seedIngredient struct {
	name     string
	unit     string
	category models.IngredientCategory
}

type seedLine struct {
	ingredient string
	amount     float64
}

type seedRecipe struct {
	title       string
	description string
	timeMin     int
	lines       []seedLine
	steps       []string
}

var sampleIngredients = []seedIngredient{
	{"Flour", "g", models.CategoryGrain},
	{"Egg", "pcs", models.CategoryDairy},
	{"Milk", "ml", models.CategoryDairy},
	{"Butter", "g", models.CategoryDairy},
	{"Sugar", "g", models.CategoryOther},
	{"Salt", "g", models.CategorySpice},
	{"Tomato", "pcs", models.CategoryVegetable},
	{"Onion", "pcs", models.CategoryVegetable},
	{"Garlic", "cloves", models.CategoryVegetable},
	{"Olive Oil", "ml", models.CategoryOther},
	{"Spaghetti", "g", models.CategoryGrain},
	{"Basil", "g", models.CategorySpice},
}

var sampleRecipes = []seedRecipe{
	{
		title:       "Pancakes",
		description: "Fluffy weekend pancakes.",
		timeMin:     25,
		lines: []seedLine{
			{"Flour", 250}, {"Egg", 2}, {"Milk", 300}, {"Butter", 30}, {"Sugar", 20},
		},
		steps: []string{
			"Whisk the dry ingredients.",
			"Beat in eggs and milk until smooth.",
			"Fry ladlefuls in butter until golden.",
		},
	},
	{
		title:       "Tomato Sauce",
		description: "Base sauce for pasta and pizza.",
		timeMin:     40,
		lines: []seedLine{
			{"Tomato", 6}, {"Onion", 1}, {"Garlic", 2}, {"Olive Oil", 30}, {"Salt", 5},
		},
		steps: []string{
			"Sweat onion and garlic in olive oil.",
			"Add chopped tomatoes and simmer for half an hour.",
			"Season with salt.",
		},
	},
	{
		title:       "Spaghetti al Pomodoro",
		description: "Spaghetti with tomato sauce and basil.",
		timeMin:     20,
		lines: []seedLine{
			{"Spaghetti", 400}, {"Tomato", 4}, {"Garlic", 1}, {"Olive Oil", 20}, {"Basil", 10},
		},
		steps: []string{
			"Boil the spaghetti in salted water.",
			"Toss with quick tomato sauce.",
			"Finish with basil and a drizzle of oil.",
		},
	},
}

// Run inserts the sample catalog if the ingredient table is empty.
// Calling it on a populated database is a no-op, so restarts are safe.
func Run(ctx context.Context, db *database.DB) error {
	count, err := db.CountIngredients(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logging.Debug().Int64("ingredients", count).Msg("seed skipped, catalog not empty")
		return nil
	}

	return db.WithTx(ctx, func(st *database.Store) error {
		byName := make(map[string]*models.Ingredient, len(sampleIngredients))
		for _, si := range sampleIngredients {
			ing, err := st.CreateIngredient(ctx, si.name, si.unit, si.category)
			if err != nil {
				return err
			}
			byName[si.name] = ing
		}

		for _, sr := range sampleRecipes {
			timeMin := sr.timeMin
			r := &models.Recipe{
				Title:            sr.title,
				Description:      sr.description,
				TotalTimeMinutes: &timeMin,
			}
			for _, line := range sr.lines {
				ing := byName[line.ingredient]
				r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
					IngredientID: ing.ID,
					Name:         ing.Name,
					Unit:         ing.Unit,
					Category:     ing.Category,
					Amount:       line.amount,
				})
			}
			for i, step := range sr.steps {
				r.Steps = append(r.Steps, models.RecipeStep{StepNo: i + 1, Instruction: step})
			}
			if err := st.CreateRecipe(ctx, r); err != nil {
				return err
			}
		}

		logging.Info().
			Int("ingredients", len(sampleIngredients)).
			Int("recipes", len(sampleRecipes)).
			Msg("sample catalog seeded")
		return nil
	})
}
