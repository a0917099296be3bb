// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package models defines the domain entities shared across the store,
// service and API layers.
//
// Ownership is explicit: a Recipe owns its ingredient lines and steps,
// a ShoppingList owns its items. Owned children are loaded and deleted
// with their parent; there are no back-references.
package models

import "time"

// IngredientCategory groups ingredients for display.
type IngredientCategory string

// Ingredient categories.
const (
	CategoryVegetable IngredientCategory = "VEGETABLE"
	CategoryFruit     IngredientCategory = "FRUIT"
	CategoryDairy     IngredientCategory = "DAIRY"
	CategoryMeat      IngredientCategory = "MEAT"
	CategoryGrain     IngredientCategory = "GRAIN"
	CategorySpice     IngredientCategory = "SPICE"
	CategoryOther     IngredientCategory = "OTHER"
)

// Ingredient is a catalog entry. Names are unique case-insensitively.
type Ingredient struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Unit     string             `json:"unit"`
	Category IngredientCategory `json:"category"`
}

// RecipeIngredient is one ingredient line of a recipe, in recipe order.
// Name, Unit and Category are denormalized from the ingredient catalog
// on load.
type RecipeIngredient struct {
	IngredientID int64              `json:"ingredientId"`
	Name         string             `json:"ingredientName"`
	Unit         string             `json:"unit"`
	Category     IngredientCategory `json:"category"`
	Amount       float64            `json:"amount"`
}

// RecipeStep is one instruction of a recipe, ordered by StepNo.
type RecipeStep struct {
	StepNo      int    `json:"stepNo"`
	Instruction string `json:"instruction"`
	TimeMinutes *int   `json:"timeMin,omitempty"`
}

// Recipe is the full recipe aggregate: the recipe row plus its owned
// ingredient lines and steps.
//
// AvgRating is a cached derived value maintained by the rating
// aggregator; it is recomputed on every rating change, never adjusted
// incrementally.
type Recipe struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	TotalTimeMinutes *int               `json:"totalTimeMin,omitempty"`
	AvgRating        *float64           `json:"avgRating,omitempty"`
	AuthorID         *int64             `json:"authorId,omitempty"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	Steps            []RecipeStep       `json:"steps,omitempty"`
}

// RecipeSummary is the list/search projection of a recipe, without the
// owned children.
type RecipeSummary struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	TotalTimeMinutes *int     `json:"totalTimeMin,omitempty"`
	AvgRating        *float64 `json:"avgRating,omitempty"`
}

// RecipeMatch is one result of the in-memory ingredient-overlap ranking.
type RecipeMatch struct {
	RecipeID     int64  `json:"recipeId"`
	Title        string `json:"title"`
	MatchedCount int    `json:"matchedCount"`
	MissingCount int    `json:"missingCount"`
}

// PantryItem is a user's stock of one ingredient. Unique per
// (UserID, IngredientID); created on first reference.
type PantryItem struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"-"`
	IngredientID int64   `json:"ingredientId"`
	Name         string  `json:"ingredientName"`
	Unit         string  `json:"unit"`
	Category     IngredientCategory `json:"category"`
	Amount       float64 `json:"amount"`
}

// ShoppingListItem is one position of a shopping list. Either
// IngredientID is set (name and unit inherited from the catalog) or
// Name carries a freeform entry; never both absent.
type ShoppingListItem struct {
	ID           int64    `json:"id"`
	IngredientID *int64   `json:"ingredientId,omitempty"`
	Name         string   `json:"name"`
	Amount       *float64 `json:"amount,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
}

// ShoppingList is the list aggregate with its owned items. Names are
// unique per user, case-insensitively.
type ShoppingList struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"-"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"createdAt"`
	Items     []ShoppingListItem `json:"items"`
}

// ShoppingListSummary is the list overview projection.
type ShoppingListSummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ItemsCount int    `json:"itemsCount"`
}

// Rating is one user's rating of one recipe. Unique per
// (RecipeID, UserID). Stars is within [1,5].
type Rating struct {
	ID        int64     `json:"id"`
	RecipeID  int64     `json:"-"`
	UserID    int64     `json:"-"`
	Stars     int       `json:"stars"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingView is a rating annotated for display: the author's name and
// whether it belongs to the viewer.
type RatingView struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Stars       int       `json:"stars"`
	Comment     *string   `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Mine        bool      `json:"mine"`
}

// User is an account. PasswordHash never serializes.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DisplayName returns the user's presentable name, falling back to the
// email address when no name is set.
func (u *User) DisplayName() string {
	switch {
	case u.Name != "" && u.Surname != "":
		return u.Name + " " + u.Surname
	case u.Name != "":
		return u.Name
	case u.Surname != "":
		return u.Surname
	default:
		return u.Email
	}
}

// Favorite marks a recipe as a user's favorite. Unique per
// (UserID, RecipeID).
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	RecipeID  int64     `json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}
