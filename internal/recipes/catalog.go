// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package recipes

import (
	"context"
	"sort"
	"strings"

	"github.com/opencookbook/cookbook/internal/metrics"
	"github.com/opencookbook/cookbook/internal/models"
)

// SearchByTitle returns recipes whose title contains q, ignoring case.
// A blank query returns an empty page.
func (s *Service) SearchByTitle(ctx context.Context, q string, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return models.EmptyPage[models.RecipeSummary](page), nil
	}
	metrics.SearchQueriesTotal.WithLabelValues("title").Inc()
	return s.db.SearchRecipesByTitle(ctx, q, page)
}

// SearchByIngredientNames returns recipes containing every named
// ingredient. Names match the catalog case-insensitively; duplicates in
// the request count once. An empty set returns an empty page.
func (s *Service) SearchByIngredientNames(ctx context.Context, names []string, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	set := normalizeNameSet(names)
	if len(set) == 0 {
		return models.EmptyPage[models.RecipeSummary](page), nil
	}
	metrics.SearchQueriesTotal.WithLabelValues("ingredient_names").Inc()
	return s.db.SearchRecipesByIngredientNames(ctx, set, page)
}

// RankByIngredientOverlap ranks every recipe sharing at least one
// ingredient with the given names: most matched ingredients first,
// fewest missing ingredients second. Recipes with no overlap are
// excluded entirely.
func (s *Service) RankByIngredientOverlap(ctx context.Context, names []string) ([]models.RecipeMatch, error) {
	set := normalizeNameSet(names)
	if len(set) == 0 {
		return []models.RecipeMatch{}, nil
	}
	have := make(map[string]struct{}, len(set))
	for _, n := range set {
		have[n] = struct{}{}
	}

	recipes, err := s.db.RecipeNameSets(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SearchQueriesTotal.WithLabelValues("overlap").Inc()

	matches := make([]models.RecipeMatch, 0, len(recipes))
	for _, r := range recipes {
		matched := 0
		for _, n := range r.Names {
			if _, ok := have[n]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		matches = append(matches, models.RecipeMatch{
			RecipeID:     r.RecipeID,
			Title:        r.Title,
			MatchedCount: matched,
			MissingCount: len(r.Names) - matched,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchedCount != matches[j].MatchedCount {
			return matches[i].MatchedCount > matches[j].MatchedCount
		}
		if matches[i].MissingCount != matches[j].MissingCount {
			return matches[i].MissingCount < matches[j].MissingCount
		}
		return matches[i].RecipeID < matches[j].RecipeID
	})
	return matches, nil
}

// SearchByPantry returns recipes ordered by how well the user's pantry
// covers them: fewest missing ingredients first, then most matched,
// then best rated, then quickest, then title. Recipes sharing no
// ingredient with the pantry are excluded. An empty pantry yields an
// empty page.
func (s *Service) SearchByPantry(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	names, err := s.db.PantryNamesForUser(ctx, userID)
	if err != nil {
		return models.Page[models.RecipeSummary]{}, err
	}
	if len(names) == 0 {
		return models.EmptyPage[models.RecipeSummary](page), nil
	}
	metrics.SearchQueriesTotal.WithLabelValues("pantry").Inc()
	return s.db.SearchRecipesByPantry(ctx, names, page)
}

// TopRated returns recipes ordered by average rating, best first.
func (s *Service) TopRated(ctx context.Context, page models.PageRequest) (models.Page[models.RecipeSummary], error) {
	metrics.SearchQueriesTotal.WithLabelValues("top_rated").Inc()
	return s.db.TopRatedRecipes(ctx, page)
}

// normalizeNameSet lowercases and trims names, dropping blanks and
// duplicates while keeping first-seen order.
func normalizeNameSet(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
