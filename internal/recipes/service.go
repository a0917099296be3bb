// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package recipes implements the recipe catalog: the recipe aggregate
// lifecycle and the search and ranking operations over it.
package recipes

import (
	"context"
	"sort"
	"strings"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/models"
)

// Service exposes recipe catalog operations.
type Service struct {
	db *database.DB
}

// NewService creates a recipe service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// IngredientLineInput is one ingredient reference of a new recipe.
type IngredientLineInput struct {
	IngredientID int64   `json:"ingredientId" validate:"required,gt=0"`
	Amount       float64 `json:"amount" validate:"gte=0"`
}

// StepInput is one instruction of a new recipe.
type StepInput struct {
	StepNo      int    `json:"stepNo" validate:"gte=0"`
	Instruction string `json:"instruction" validate:"required"`
	TimeMinutes *int   `json:"timeMin,omitempty"`
}

// CreateInput carries a new recipe aggregate.
type CreateInput struct {
	Title            string                `json:"title" validate:"required,max=200"`
	Description      string                `json:"description"`
	TotalTimeMinutes *int                  `json:"totalTimeMin,omitempty"`
	Ingredients      []IngredientLineInput `json:"ingredients" validate:"dive"`
	Steps            []StepInput           `json:"steps" validate:"dive"`
}

// Create stores a new recipe aggregate. Every ingredient line must
// reference an existing catalog ingredient; an unknown reference fails
// the whole create with KindNotFound. Steps are ordered by StepNo.
func (s *Service) Create(ctx context.Context, in CreateInput, authorID *int64) (*models.Recipe, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.New(apperr.KindValidation, "recipe title must not be blank")
	}

	r := &models.Recipe{
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		TotalTimeMinutes: in.TotalTimeMinutes,
		AuthorID:         authorID,
	}

	err := s.db.WithTx(ctx, func(st *database.Store) error {
		for _, line := range in.Ingredients {
			ing, err := st.GetIngredient(ctx, line.IngredientID)
			if err != nil {
				return err
			}
			r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Unit:         ing.Unit,
				Category:     ing.Category,
				Amount:       line.Amount,
			})
		}

		steps := make([]StepInput, len(in.Steps))
		copy(steps, in.Steps)
		sort.SliceStable(steps, func(i, j int) bool { return steps[i].StepNo < steps[j].StepNo })
		for _, step := range steps {
			r.Steps = append(r.Steps, models.RecipeStep{
				StepNo:      step.StepNo,
				Instruction: strings.TrimSpace(step.Instruction),
				TimeMinutes: step.TimeMinutes,
			})
		}

		return st.CreateRecipe(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Get loads the full recipe aggregate.
func (s *Service) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	return s.db.GetRecipe(ctx, id)
}

// List returns recipe summaries ordered by title.
func (s *Service) List(ctx context.Context, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	return s.db.ListRecipes(ctx, page)
}

// Delete removes the recipe and everything hanging off it: ingredient
// lines, steps, ratings and favorites. Only the author may delete; a
// recipe without an author is deletable by anyone authenticated.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.db.WithTx(ctx, func(st *database.Store) error {
		r, err := st.GetRecipe(ctx, id)
		if err != nil {
			return err
		}
		if r.AuthorID != nil && *r.AuthorID != userID {
			return apperr.New(apperr.KindForbidden, "only the author may delete this recipe")
		}
		return st.DeleteRecipe(ctx, id)
	})
}
