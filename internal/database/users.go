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

// CreateUser inserts an account. A duplicate email (case-insensitive)
// fails with KindConflict.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO users (name, surname, email, email_norm, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		u.Name, u.Surname, u.Email, norm(u.Email), u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if apperr.KindOf(mapError(err, "")) == apperr.KindConflict {
			return apperr.New(apperr.KindConflict, "email is already taken")
		}
		return mapError(err, "create user")
	}
	return nil
}

// GetUser loads one account by id.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	err := s.q.QueryRowContext(ctx,
		`SELECT id, name, surname, email, password_hash, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	if err != nil {
		return nil, mapError(err, "get user")
	}
	return u, nil
}

// GetUserByEmail loads one account by email, compared
// case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	err := s.q.QueryRowContext(ctx,
		`SELECT id, name, surname, email, password_hash, created_at
		 FROM users WHERE email_norm = ?`, norm(email),
	).Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	if err != nil {
		return nil, mapError(err, "get user by email")
	}
	return u, nil
}

// EmailExists reports whether an account with this email exists.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.q.QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE email_norm = ?`, norm(email)).Scan(&n); err != nil {
		return false, mapError(err, "check email")
	}
	return n > 0, nil
}

// UpdateUser persists profile fields and the password hash.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE users SET name = ?, surname = ?, email = ?, email_norm = ?, password_hash = ?
		 WHERE id = ?`,
		u.Name, u.Surname, u.Email, norm(u.Email), u.PasswordHash, u.ID)
	if err != nil {
		if apperr.KindOf(mapError(err, "")) == apperr.KindConflict {
			return apperr.New(apperr.KindConflict, "email is already taken")
		}
		return mapError(err, "update user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	return nil
}
