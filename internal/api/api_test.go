// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/opencookbook/cookbook/internal/auth"
	"github.com/opencookbook/cookbook/internal/config"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/favorites"
	"github.com/opencookbook/cookbook/internal/ingredients"
	"github.com/opencookbook/cookbook/internal/models"
	"github.com/opencookbook/cookbook/internal/pantry"
	"github.com/opencookbook/cookbook/internal/ratings"
	"github.com/opencookbook/cookbook/internal/recipes"
	"github.com/opencookbook/cookbook/internal/shopping"
	"github.com/opencookbook/cookbook/internal/users"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB"})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	jwtMgr, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	tokens, err := auth.NewTokenStore(&config.AuthConfig{TokenStoreInMemory: true})
	if err != nil {
		t.Fatalf("NewTokenStore() error = %v", err)
	}
	t.Cleanup(func() { tokens.Close() })

	h := &Handlers{
		Auth:        auth.NewService(db, jwtMgr, tokens, 4),
		Users:       users.NewService(db),
		Ingredients: ingredients.NewService(db),
		Recipes:     recipes.NewService(db),
		Pantry:      pantry.NewService(db),
		Shopping:    shopping.NewService(db),
		Ratings:     ratings.NewService(db),
		Favorites:   favorites.NewService(db),
	}
	return NewRouter(h, RouterConfig{})
}

// do runs one request and decodes the envelope's data into out when
// non-nil.
func do(t *testing.T, h http.Handler, method, path, token string, body, out interface{}) (int, *models.APIError) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope struct {
		Status string           `json:"status"`
		Data   json.RawMessage  `json:"data"`
		Error  *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: bad envelope %q: %v", method, path, rec.Body.String(), err)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return rec.Code, envelope.Error
}

func register(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	var resp struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	code, apiErr := do(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Ada", "surname": "Lovelace", "email": email, "password": "secret1",
	}, &resp)
	if code != http.StatusCreated {
		t.Fatalf("register = %d (%+v)", code, apiErr)
	}
	return resp.Tokens.AccessToken
}

func TestAuthRequired(t *testing.T) {
	h := newTestServer(t)
	code, apiErr := do(t, h, http.MethodGet, "/api/v1/recipes", "", nil, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list = %d", code)
	}
	if apiErr == nil || apiErr.Code != "UNAUTHORIZED" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	var data map[string]string
	if code, _ := do(t, h, http.MethodGet, "/health", "", nil, &data); code != http.StatusOK {
		t.Fatalf("health = %d", code)
	}
	if data["status"] != "ok" {
		t.Errorf("health data = %v", data)
	}
}

func TestLoginFlow(t *testing.T) {
	h := newTestServer(t)
	register(t, h, "ada@example.com")

	code, _ := do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "secret1",
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("login = %d", code)
	}

	code, apiErr := do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	}, nil)
	if code != http.StatusUnauthorized || apiErr == nil {
		t.Fatalf("bad login = %d (%+v)", code, apiErr)
	}
}

func TestRecipeLifecycleOverHTTP(t *testing.T) {
	h := newTestServer(t)
	token := register(t, h, "ada@example.com")

	var flour, egg models.Ingredient
	for name, out := range map[string]*models.Ingredient{"Flour": &flour, "Egg": &egg} {
		code, apiErr := do(t, h, http.MethodPost, "/api/v1/ingredients", token, map[string]string{
			"name": name, "unit": "g",
		}, out)
		if code != http.StatusCreated {
			t.Fatalf("create ingredient = %d (%+v)", code, apiErr)
		}
	}

	var recipe models.Recipe
	code, apiErr := do(t, h, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"title": "Pancakes",
		"ingredients": []map[string]interface{}{
			{"ingredientId": flour.ID, "amount": 250},
			{"ingredientId": egg.ID, "amount": 2},
		},
		"steps": []map[string]interface{}{
			{"stepNo": 1, "instruction": "Mix"},
		},
	}, &recipe)
	if code != http.StatusCreated {
		t.Fatalf("create recipe = %d (%+v)", code, apiErr)
	}

	// Title search finds it; an unknown title does not.
	var found []models.RecipeSummary
	if code, _ := do(t, h, http.MethodGet, "/api/v1/recipes/search?q=pan", token, nil, &found); code != http.StatusOK {
		t.Fatalf("search = %d", code)
	}
	if len(found) != 1 || found[0].Title != "Pancakes" {
		t.Fatalf("search items = %+v", found)
	}

	// Rate it and check the average lands on the aggregate.
	if code, apiErr := do(t, h, http.MethodPost,
		fmt.Sprintf("/api/v1/recipes/%d/ratings", recipe.ID), token,
		map[string]interface{}{"stars": 4}, nil); code != http.StatusOK {
		t.Fatalf("rate = %d (%+v)", code, apiErr)
	}
	var reloaded models.Recipe
	if code, _ := do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), token, nil, &reloaded); code != http.StatusOK {
		t.Fatalf("get = %d", code)
	}
	if reloaded.AvgRating == nil || *reloaded.AvgRating != 4 {
		t.Errorf("avgRating = %v, want 4", reloaded.AvgRating)
	}

	// Out-of-range stars are a 400.
	if code, _ := do(t, h, http.MethodPost,
		fmt.Sprintf("/api/v1/recipes/%d/ratings", recipe.ID), token,
		map[string]interface{}{"stars": 6}, nil); code != http.StatusBadRequest {
		t.Errorf("stars=6 code = %d, want 400", code)
	}

	// Delete and confirm it is gone.
	if code, _ := do(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), token, nil, nil); code != http.StatusOK {
		t.Fatalf("delete = %d", code)
	}
	if code, _ := do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), token, nil, nil); code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", code)
	}
}

func TestShoppingFlowOverHTTP(t *testing.T) {
	h := newTestServer(t)
	token := register(t, h, "ada@example.com")

	var flour, egg models.Ingredient
	for name, out := range map[string]*models.Ingredient{"Flour": &flour, "Egg": &egg} {
		if code, _ := do(t, h, http.MethodPost, "/api/v1/ingredients", token, map[string]string{
			"name": name, "unit": "g",
		}, out); code != http.StatusCreated {
			t.Fatalf("create ingredient %s failed", name)
		}
	}

	var recipe models.Recipe
	if code, _ := do(t, h, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"title": "Pancakes",
		"ingredients": []map[string]interface{}{
			{"ingredientId": flour.ID, "amount": 250},
			{"ingredientId": egg.ID, "amount": 2},
		},
	}, &recipe); code != http.StatusCreated {
		t.Fatalf("create recipe failed: %d", code)
	}

	// Stock flour so the default fill mode only needs eggs.
	if code, _ := do(t, h, http.MethodPut, "/api/v1/pantry", token, map[string]interface{}{
		"ingredientId": flour.ID, "amount": 1000,
	}, nil); code != http.StatusOK {
		t.Fatalf("pantry put failed: %d", code)
	}

	var list models.ShoppingList
	if code, _ := do(t, h, http.MethodPost,
		fmt.Sprintf("/api/v1/recipes/%d/shopping-list", recipe.ID), token,
		map[string]interface{}{}, &list); code != http.StatusOK {
		t.Fatalf("add from recipe failed: %d", code)
	}
	if list.Name != "List: Pancakes" || len(list.Items) != 1 {
		t.Fatalf("list = %+v", list)
	}

	// Finalize into the pantry; eggs appear as new stock.
	if code, _ := do(t, h, http.MethodPost,
		fmt.Sprintf("/api/v1/shopping-lists/%d/finalize?addToPantry=true", list.ID),
		token, nil, nil); code != http.StatusOK {
		t.Fatalf("finalize failed: %d", code)
	}
	var items []models.PantryItem
	if code, _ := do(t, h, http.MethodGet, "/api/v1/pantry", token, nil, &items); code != http.StatusOK {
		t.Fatalf("pantry list failed: %d", code)
	}
	if len(items) != 2 {
		t.Errorf("pantry items = %+v, want flour and egg", items)
	}
	if code, _ := do(t, h, http.MethodGet,
		fmt.Sprintf("/api/v1/shopping-lists/%d", list.ID), token, nil, nil); code != http.StatusNotFound {
		t.Errorf("finalized list still present: %d", code)
	}
}

func TestFavoritesOverHTTP(t *testing.T) {
	h := newTestServer(t)
	token := register(t, h, "ada@example.com")

	var ing models.Ingredient
	if code, _ := do(t, h, http.MethodPost, "/api/v1/ingredients", token, map[string]string{
		"name": "Egg", "unit": "pcs",
	}, &ing); code != http.StatusCreated {
		t.Fatal("create ingredient failed")
	}
	var recipe models.Recipe
	if code, _ := do(t, h, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"title":       "Omelette",
		"ingredients": []map[string]interface{}{{"ingredientId": ing.ID, "amount": 3}},
	}, &recipe); code != http.StatusCreated {
		t.Fatal("create recipe failed")
	}

	if code, _ := do(t, h, http.MethodPost, fmt.Sprintf("/api/v1/favorites/%d", recipe.ID), token, nil, nil); code != http.StatusCreated {
		t.Fatalf("favorite failed: %d", code)
	}
	var ids []int64
	if code, _ := do(t, h, http.MethodGet, "/api/v1/favorites/ids", token, nil, &ids); code != http.StatusOK {
		t.Fatalf("favorite ids failed: %d", code)
	}
	if len(ids) != 1 || ids[0] != recipe.ID {
		t.Errorf("ids = %v", ids)
	}
	if code, _ := do(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/%d", recipe.ID), token, nil, nil); code != http.StatusOK {
		t.Fatalf("unfavorite failed: %d", code)
	}
}
