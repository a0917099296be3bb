// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package users manages account profiles.
package users

import (
	"context"
	"strings"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/models"
)

// Service exposes profile operations.
type Service struct {
	db *database.DB
}

// NewService creates a user service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Get loads a user by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.db.GetUser(ctx, id)
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Name    string `json:"name" validate:"max=100"`
	Surname string `json:"surname" validate:"max=100"`
	Email   string `json:"email" validate:"required,email"`
}

// UpdateProfile changes the user's name and email. Moving to an email
// already registered to another account is KindConflict.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperr.New(apperr.KindValidation, "email must not be blank")
	}
	var out *models.User
	err := s.db.WithTx(ctx, func(st *database.Store) error {
		u, err := st.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(u.Email), email) {
			taken, err := st.EmailExists(ctx, email)
			if err != nil {
				return err
			}
			if taken {
				return apperr.New(apperr.KindConflict, "email is already taken")
			}
		}
		u.Name = strings.TrimSpace(in.Name)
		u.Surname = strings.TrimSpace(in.Surname)
		u.Email = email
		if err := st.UpdateUser(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
