// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/logging"
	"github.com/opencookbook/cookbook/internal/models"
)

// TokenPair is the result of every successful authentication.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service implements registration, login and token refresh.
type Service struct {
	db         *database.DB
	jwt        *JWTManager
	tokens     *TokenStore
	bcryptCost int
}

// NewService wires the auth service.
func NewService(db *database.DB, jwt *JWTManager, tokens *TokenStore, bcryptCost int) *Service {
	return &Service{db: db, jwt: jwt, tokens: tokens, bcryptCost: bcryptCost}
}

// RegisterInput carries a new account.
type RegisterInput struct {
	Name     string `json:"name" validate:"max=100"`
	Surname  string `json:"surname" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates an account and signs it in. A taken email is
// KindConflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, *TokenPair, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, nil, apperr.New(apperr.KindValidation, "email must not be blank")
	}
	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Surname:      strings.TrimSpace(in.Surname),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.CreateUser(ctx, u); err != nil {
		return nil, nil, err
	}
	logging.Info().Int64("user_id", u.ID).Msg("user registered")

	pair, err := s.issuePair(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Login verifies credentials. Unknown email and wrong password are
// both KindUnauthorized, indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	u, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
		}
		return nil, nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	pair, err := s.issuePair(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Refresh rotates a refresh token: the presented token is spent and a
// fresh pair issued. Presenting the same token twice fails the second
// attempt.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Redeem(claims.ID, userID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return nil, err
	}

	u, err := s.db.GetUser(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.New(apperr.KindUnauthorized, "account no longer exists")
		}
		return nil, err
	}
	return s.issuePair(u)
}

// ChangePassword swaps the user's password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	hash, err := HashPassword(next, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.db.WithTx(ctx, func(st *database.Store) error {
		u, err := st.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if !CheckPassword(u.PasswordHash, current) {
			return apperr.New(apperr.KindUnauthorized, "current password is wrong")
		}
		u.PasswordHash = hash
		return st.UpdateUser(ctx, u)
	})
}

// Authenticate resolves a bearer access token to its user.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	u, err := s.db.GetUser(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.New(apperr.KindUnauthorized, "account no longer exists")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issuePair(u *models.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(u)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
