// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/models"
)

// GetRating loads the rating for a (recipe, user) pair.
func (s *Store) GetRating(ctx context.Context, recipeID, userID int64) (*models.Rating, error) {
	r := &models.Rating{RecipeID: recipeID, UserID: userID}
	var comment sql.NullString
	err := s.q.QueryRowContext(ctx,
		`SELECT id, stars, comment, created_at
		 FROM ratings WHERE recipe_id = ? AND user_id = ?`, recipeID, userID,
	).Scan(&r.ID, &r.Stars, &comment, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "rating not found")
	}
	if err != nil {
		return nil, mapError(err, "get rating")
	}
	if comment.Valid {
		r.Comment = &comment.String
	}
	return r, nil
}

// InsertRating creates a rating and assigns its ID.
func (s *Store) InsertRating(ctx context.Context, r *models.Rating) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO ratings (recipe_id, user_id, stars, comment, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		r.RecipeID, r.UserID, r.Stars, r.Comment, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		return mapError(err, "insert rating")
	}
	return nil
}

// UpdateRating persists new stars and comment for an existing rating.
func (s *Store) UpdateRating(ctx context.Context, r *models.Rating) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE ratings SET stars = ?, comment = ? WHERE id = ?`,
		r.Stars, r.Comment, r.ID)
	if err != nil {
		return mapError(err, "update rating")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "rating not found")
	}
	return nil
}

// DeleteRating removes one rating by primary key.
func (s *Store) DeleteRating(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM ratings WHERE id = ?`, id)
	if err != nil {
		return mapError(err, "delete rating")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "rating not found")
	}
	return nil
}

// ListRatingStars returns the stars of every current rating for the
// recipe. Used for the full average recompute.
func (s *Store) ListRatingStars(ctx context.Context, recipeID int64) ([]int, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT stars FROM ratings WHERE recipe_id = ?`, recipeID)
	if err != nil {
		return nil, mapError(err, "list rating stars")
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var stars int
		if err := rows.Scan(&stars); err != nil {
			return nil, mapError(err, "scan rating stars")
		}
		out = append(out, stars)
	}
	return out, rows.Err()
}

// RatingWithUser joins a rating with its author for display.
type RatingWithUser struct {
	Rating models.Rating
	User   models.User
}

// ListRatingsByRecipe returns the recipe's ratings, most recent first,
// with the rating users joined in.
func (s *Store) ListRatingsByRecipe(ctx context.Context, recipeID int64) ([]RatingWithUser, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.stars, r.comment, r.created_at,
		        u.name, u.surname, u.email
		 FROM ratings r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.recipe_id = ?
		 ORDER BY r.created_at DESC, r.id DESC`, recipeID)
	if err != nil {
		return nil, mapError(err, "list ratings")
	}
	defer rows.Close()

	out := []RatingWithUser{}
	for rows.Next() {
		var rw RatingWithUser
		var comment sql.NullString
		rw.Rating.RecipeID = recipeID
		if err := rows.Scan(&rw.Rating.ID, &rw.Rating.UserID, &rw.Rating.Stars, &comment, &rw.Rating.CreatedAt,
			&rw.User.Name, &rw.User.Surname, &rw.User.Email); err != nil {
			return nil, mapError(err, "scan rating")
		}
		if comment.Valid {
			rw.Rating.Comment = &comment.String
		}
		rw.User.ID = rw.Rating.UserID
		out = append(out, rw)
	}
	return out, rows.Err()
}
