// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/models"
)

// recipeSummaryColumns is the projection shared by every recipe list
// and search query.
const recipeSummaryColumns = `r.id, r.title, r.description, r.total_time_min, r.avg_rating`

// CreateRecipe inserts the recipe aggregate: the row, its ingredient
// lines in order and its steps. The recipe ID is assigned on return.
// Should run inside WithTx.
func (s *Store) CreateRecipe(ctx context.Context, r *models.Recipe) error {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO recipes (title, description, total_time_min, avg_rating, author_id)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		r.Title, r.Description, r.TotalTimeMinutes, r.AvgRating, r.AuthorID,
	).Scan(&r.ID)
	if err != nil {
		return mapError(err, "create recipe")
	}

	for i, line := range r.Ingredients {
		if _, err := s.q.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, position, ingredient_id, amount)
			 VALUES (?, ?, ?, ?)`,
			r.ID, i, line.IngredientID, line.Amount); err != nil {
			return mapError(err, "create recipe ingredient line")
		}
	}

	for _, step := range r.Steps {
		if _, err := s.q.ExecContext(ctx,
			`INSERT INTO recipe_steps (recipe_id, step_no, instruction, time_min)
			 VALUES (?, ?, ?, ?)`,
			r.ID, step.StepNo, step.Instruction, step.TimeMinutes); err != nil {
			return mapError(err, "create recipe step")
		}
	}
	return nil
}

// GetRecipe loads the full recipe aggregate as one consistent read:
// the row, its ingredient lines (with catalog name/unit/category) and
// its steps.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	r := &models.Recipe{ID: id}
	var totalTime sql.NullInt64
	var avgRating sql.NullFloat64
	var authorID sql.NullInt64

	err := s.q.QueryRowContext(ctx,
		`SELECT title, description, total_time_min, avg_rating, author_id
		 FROM recipes WHERE id = ?`, id,
	).Scan(&r.Title, &r.Description, &totalTime, &avgRating, &authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "recipe %d not found", id)
	}
	if err != nil {
		return nil, mapError(err, "get recipe")
	}
	if totalTime.Valid {
		v := int(totalTime.Int64)
		r.TotalTimeMinutes = &v
	}
	if avgRating.Valid {
		r.AvgRating = &avgRating.Float64
	}
	if authorID.Valid {
		r.AuthorID = &authorID.Int64
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT ri.ingredient_id, i.name, i.unit, i.category, ri.amount
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = ?
		 ORDER BY ri.position`, id)
	if err != nil {
		return nil, mapError(err, "get recipe ingredients")
	}
	defer rows.Close()

	r.Ingredients = []models.RecipeIngredient{}
	for rows.Next() {
		var line models.RecipeIngredient
		var category string
		if err := rows.Scan(&line.IngredientID, &line.Name, &line.Unit, &category, &line.Amount); err != nil {
			return nil, mapError(err, "scan recipe ingredient")
		}
		line.Category = models.IngredientCategory(category)
		r.Ingredients = append(r.Ingredients, line)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "get recipe ingredients")
	}

	stepRows, err := s.q.QueryContext(ctx,
		`SELECT step_no, instruction, time_min
		 FROM recipe_steps WHERE recipe_id = ? ORDER BY step_no`, id)
	if err != nil {
		return nil, mapError(err, "get recipe steps")
	}
	defer stepRows.Close()

	r.Steps = []models.RecipeStep{}
	for stepRows.Next() {
		var step models.RecipeStep
		var timeMin sql.NullInt64
		if err := stepRows.Scan(&step.StepNo, &step.Instruction, &timeMin); err != nil {
			return nil, mapError(err, "scan recipe step")
		}
		if timeMin.Valid {
			v := int(timeMin.Int64)
			step.TimeMinutes = &v
		}
		r.Steps = append(r.Steps, step)
	}
	return r, stepRows.Err()
}

// DeleteRecipe removes the recipe and everything it owns or that
// references it: ingredient lines, steps, ratings and favorites.
// Should run inside WithTx.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	for _, stmt := range []string{
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`,
		`DELETE FROM recipe_steps WHERE recipe_id = ?`,
		`DELETE FROM ratings WHERE recipe_id = ?`,
		`DELETE FROM favorites WHERE recipe_id = ?`,
	} {
		if _, err := s.q.ExecContext(ctx, stmt, id); err != nil {
			return mapError(err, "delete recipe children")
		}
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return mapError(err, "delete recipe")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Newf(apperr.KindNotFound, "recipe %d not found", id)
	}
	return nil
}

// UpdateRecipeAvgRating persists a recomputed average. A nil avg clears
// the cached value (no ratings left).
func (s *Store) UpdateRecipeAvgRating(ctx context.Context, id int64, avg *float64) error {
	res, err := s.q.ExecContext(ctx, `UPDATE recipes SET avg_rating = ? WHERE id = ?`, avg, id)
	if err != nil {
		return mapError(err, "update avg rating")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Newf(apperr.KindNotFound, "recipe %d not found", id)
	}
	return nil
}

// ListRecipes returns one page of the catalog ordered by title.
func (s *Store) ListRecipes(ctx context.Context, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	return s.summaryPage(ctx, page,
		`SELECT count(*) FROM recipes r`,
		fmt.Sprintf(`SELECT %s FROM recipes r ORDER BY r.title, r.id LIMIT ? OFFSET ?`, recipeSummaryColumns),
	)
}

// SearchRecipesByTitle returns recipes whose title contains q,
// case-insensitively. q must already be normalized and non-empty.
func (s *Store) SearchRecipesByTitle(ctx context.Context, q string, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	pattern := "%" + q + "%"
	return s.summaryPage(ctx, page,
		`SELECT count(*) FROM recipes r WHERE lower(r.title) LIKE ?`,
		fmt.Sprintf(`SELECT %s FROM recipes r WHERE lower(r.title) LIKE ? ORDER BY r.title, r.id LIMIT ? OFFSET ?`, recipeSummaryColumns),
		pattern,
	)
}

// SearchRecipesByIngredientNames returns recipes containing every one
// of the requested ingredient names (AND semantics): the distinct
// match count must equal the requested set size. Names must already be
// normalized and deduplicated.
func (s *Store) SearchRecipesByIngredientNames(ctx context.Context, names []string, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	in, args := inClause(names)

	matching := fmt.Sprintf(
		`SELECT ri.recipe_id
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE i.name_norm IN %s
		 GROUP BY ri.recipe_id
		 HAVING count(DISTINCT i.name_norm) >= ?`, in)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM recipes r WHERE r.id IN (%s)`, matching)
	pageQuery := fmt.Sprintf(
		`SELECT %s FROM recipes r WHERE r.id IN (%s) ORDER BY r.title, r.id LIMIT ? OFFSET ?`,
		recipeSummaryColumns, matching)

	args = append(args, int64(len(names)))
	return s.summaryPage(ctx, page, countQuery, pageQuery, args...)
}

// SearchRecipesByPantry returns recipes sharing at least one ingredient
// name with the pantry, ordered by the composite key: fewest missing
// ingredients, most matches, best average rating (missing as 0),
// shortest total time (missing last), then title. The ordering is a
// strict total order; title with id breaks remaining ties.
func (s *Store) SearchRecipesByPantry(ctx context.Context, pantryNames []string, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	in, args := inClause(pantryNames)

	ranked := fmt.Sprintf(
		`SELECT ri.recipe_id,
		        count(DISTINCT ri.ingredient_id) AS total_cnt,
		        count(DISTINCT CASE WHEN i.name_norm IN %s THEN ri.ingredient_id END) AS matched_cnt
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 GROUP BY ri.recipe_id
		 HAVING count(DISTINCT CASE WHEN i.name_norm IN %s THEN ri.ingredient_id END) >= 1`, in, in)

	// The IN list appears twice (projection and HAVING); duplicate args.
	args = append(args, args...)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM (%s)`, ranked)
	pageQuery := fmt.Sprintf(
		`SELECT %s
		 FROM recipes r
		 JOIN (%s) m ON m.recipe_id = r.id
		 ORDER BY
		   (m.total_cnt - m.matched_cnt) ASC,
		   m.matched_cnt DESC,
		   coalesce(r.avg_rating, 0) DESC,
		   coalesce(r.total_time_min, 2147483647) ASC,
		   r.title ASC,
		   r.id ASC
		 LIMIT ? OFFSET ?`,
		recipeSummaryColumns, ranked)

	return s.summaryPage(ctx, page, countQuery, pageQuery, args...)
}

// TopRatedRecipes returns one page ordered by average rating, highest
// first; unrated recipes sort last.
func (s *Store) TopRatedRecipes(ctx context.Context, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	return s.summaryPage(ctx, page,
		`SELECT count(*) FROM recipes r`,
		fmt.Sprintf(
			`SELECT %s FROM recipes r
			 ORDER BY coalesce(r.avg_rating, 0) DESC, r.title ASC, r.id ASC
			 LIMIT ? OFFSET ?`, recipeSummaryColumns),
	)
}

// RecipeNameSet pairs a recipe with the normalized names of its
// ingredients, for in-memory overlap ranking.
type RecipeNameSet struct {
	RecipeID int64
	Title    string
	Names    []string
}

// RecipeNameSets loads every recipe with its normalized ingredient
// names.
func (s *Store) RecipeNameSets(ctx context.Context) ([]RecipeNameSet, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT r.id, r.title, i.name_norm
		 FROM recipes r
		 LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		 LEFT JOIN ingredients i ON i.id = ri.ingredient_id
		 ORDER BY r.id, ri.position`)
	if err != nil {
		return nil, mapError(err, "load recipe name sets")
	}
	defer rows.Close()

	out := []RecipeNameSet{}
	index := map[int64]int{}
	for rows.Next() {
		var id int64
		var title string
		var name sql.NullString
		if err := rows.Scan(&id, &title, &name); err != nil {
			return nil, mapError(err, "scan recipe name set")
		}
		pos, ok := index[id]
		if !ok {
			pos = len(out)
			index[id] = pos
			out = append(out, RecipeNameSet{RecipeID: id, Title: title})
		}
		if name.Valid {
			out[pos].Names = append(out[pos].Names, name.String)
		}
	}
	return out, rows.Err()
}

// summaryPage runs the count plus page query pair shared by all recipe
// listings. Extra args are passed to both queries; limit and offset are
// appended to the page query only.
func (s *Store) summaryPage(ctx context.Context, page models.PageRequest, countQuery, pageQuery string, args ...interface{}) (models.Page[models.RecipeSummary], error) {
	result := models.Page[models.RecipeSummary]{
		Items: []models.RecipeSummary{},
		Page:  page.Page,
		Size:  page.Size,
	}

	if err := s.q.QueryRowContext(ctx, countQuery, args...).Scan(&result.Total); err != nil {
		return result, mapError(err, "count recipes")
	}

	pageArgs := append(append([]interface{}{}, args...), page.Size, page.Offset())
	rows, err := s.q.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		return result, mapError(err, "page recipes")
	}
	defer rows.Close()

	for rows.Next() {
		var sum models.RecipeSummary
		var totalTime sql.NullInt64
		var avgRating sql.NullFloat64
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Description, &totalTime, &avgRating); err != nil {
			return result, mapError(err, "scan recipe summary")
		}
		if totalTime.Valid {
			v := int(totalTime.Int64)
			sum.TotalTimeMinutes = &v
		}
		if avgRating.Valid {
			sum.AvgRating = &avgRating.Float64
		}
		result.Items = append(result.Items, sum)
	}
	return result, rows.Err()
}

// inClause builds an "(?, ?, ...)" fragment and its argument list.
func inClause(values []string) (string, []interface{}) {
	if len(values) == 0 {
		// A never-matching placeholder keeps queries valid for empty
		// input; callers normally short-circuit before reaching here.
		return "(NULL)", nil
	}
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ") + ")", args
}
