// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package api

import (
	"net/http"

	"github.com/opencookbook/cookbook/internal/shopping"
)

func (h *Handlers) handleListShoppingLists(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	lists, err := h.Shopping.List(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, lists)
}

type createListRequest struct {
	Name string `json:"name" validate:"max=120"`
}

func (h *Handlers) handleCreateShoppingList(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in createListRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	list, err := h.Shopping.Create(r.Context(), user.ID, in.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

func (h *Handlers) handleGetShoppingList(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := idParam(r, "listID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	list, err := h.Shopping.Get(r.Context(), user.ID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

type renameListRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (h *Handlers) handleRenameShoppingList(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := idParam(r, "listID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in renameListRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	list, err := h.Shopping.Rename(r.Context(), user.ID, id, in.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handlers) handleFinalizeShoppingList(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := idParam(r, "listID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	addToPantry := r.URL.Query().Get("addToPantry") == "true"
	if err := h.Shopping.Finalize(r.Context(), user.ID, id, addToPantry); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "finalized"})
}

func (h *Handlers) handleAddShoppingListItem(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := idParam(r, "listID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in shopping.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.Shopping.AddItem(r.Context(), user.ID, id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handlers) handleUpdateShoppingListItem(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	listID, err := idParam(r, "listID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	itemID, err := idParam(r, "itemID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in shopping.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.Shopping.UpdateItem(r.Context(), user.ID, listID, itemID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) handleDeleteShoppingListItem(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	listID, err := idParam(r, "listID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	itemID, err := idParam(r, "itemID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.Shopping.DeleteItem(r.Context(), user.ID, listID, itemID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handlers) handleAddRecipeToShoppingList(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	recipeID, err := idParam(r, "recipeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in shopping.AddFromRecipeInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	list, err := h.Shopping.AddFromRecipe(r.Context(), user.ID, recipeID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
