// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package ratings maintains recipe ratings and the cached average.
//
// One rating per (recipe, user); writing again replaces it. The
// recipe's average is recomputed from scratch in the same transaction
// as every write, never adjusted incrementally.
package ratings

import (
	"context"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/metrics"
	"github.com/opencookbook/cookbook/internal/models"
)

// Service exposes rating operations.
type Service struct {
	db *database.DB
}

// NewService creates a rating service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// UpsertInput carries a rating write.
type UpsertInput struct {
	Stars   int     `json:"stars" validate:"gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// Upsert writes the user's rating of a recipe, replacing any previous
// one, and refreshes the recipe's cached average in the same
// transaction.
func (s *Service) Upsert(ctx context.Context, userID, recipeID int64, in UpsertInput) (*models.Rating, error) {
	if in.Stars < 1 || in.Stars > 5 {
		return nil, apperr.New(apperr.KindValidation, "stars must be between 1 and 5")
	}
	var rating *models.Rating
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		if _, err := st.GetRecipe(ctx, recipeID); err != nil {
			return err
		}

		existing, err := st.GetRating(ctx, recipeID, userID)
		switch {
		case err == nil:
			existing.Stars = in.Stars
			existing.Comment = in.Comment
			if err := st.UpdateRating(ctx, existing); err != nil {
				return err
			}
			rating = existing
		case apperr.KindOf(err) == apperr.KindNotFound:
			rating = &models.Rating{
				RecipeID: recipeID,
				UserID:   userID,
				Stars:    in.Stars,
				Comment:  in.Comment,
			}
			if err := st.InsertRating(ctx, rating); err != nil {
				return err
			}
		default:
			return err
		}

		return recomputeAverage(ctx, st, recipeID)
	})
	if err != nil {
		return nil, err
	}
	metrics.RatingsWritten.WithLabelValues("upsert").Inc()
	return rating, nil
}

// Delete removes the user's rating of a recipe and refreshes the
// cached average. Having no rating to delete is KindNotFound.
func (s *Service) Delete(ctx context.Context, userID, recipeID int64) error {
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		rating, err := st.GetRating(ctx, recipeID, userID)
		if err != nil {
			return err
		}
		if err := st.DeleteRating(ctx, rating.ID); err != nil {
			return err
		}
		return recomputeAverage(ctx, st, recipeID)
	})
	if err != nil {
		return err
	}
	metrics.RatingsWritten.WithLabelValues("delete").Inc()
	return nil
}

// List returns the recipe's ratings, most recent first, annotated with
// the author's display name and whether each belongs to the viewer.
func (s *Service) List(ctx context.Context, recipeID int64, viewerID *int64) ([]models.RatingView, error) {
	if _, err := s.db.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	rows, err := s.db.ListRatingsByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	views := make([]models.RatingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.RatingView{
			ID:          row.Rating.ID,
			DisplayName: row.User.DisplayName(),
			Stars:       row.Rating.Stars,
			Comment:     row.Rating.Comment,
			CreatedAt:   row.Rating.CreatedAt,
			Mine:        viewerID != nil && row.Rating.UserID == *viewerID,
		})
	}
	return views, nil
}

// recomputeAverage recalculates the recipe's average from all its
// ratings. A recipe without ratings averages to zero.
func recomputeAverage(ctx context.Context, st *database.Store, recipeID int64) error {
	stars, err := st.ListRatingStars(ctx, recipeID)
	if err != nil {
		return err
	}
	avg := 0.0
	if len(stars) > 0 {
		sum := 0
		for _, v := range stars {
			sum += v
		}
		avg = float64(sum) / float64(len(stars))
	}
	return st.UpdateRecipeAvgRating(ctx, recipeID, &avg)
}
