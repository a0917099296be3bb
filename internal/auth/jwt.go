// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/config"
	"github.com/opencookbook/cookbook/internal/models"
)

// Token types carried in the typ claim.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

const tokenIssuer = "cookbook"

// Claims are the JWT claims of both token types. UserID rides in the
// subject; Email is informational only.
type Claims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUnauthorized, "malformed token subject", err)
	}
	return id, nil
}

// JWTManager signs and validates HS256 tokens.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTManager builds a manager from the security settings. The
// secret length is enforced here as well as at config validation so a
// caller wiring the manager directly cannot skip it.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, apperr.New(apperr.KindInternal, "jwt secret must be at least 32 characters")
	}
	return &JWTManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// AccessTTL returns the access token lifetime.
func (m *JWTManager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL returns the refresh token lifetime.
func (m *JWTManager) RefreshTTL() time.Duration { return m.refreshTTL }

// GenerateAccessToken issues a short-lived access token for u.
func (m *JWTManager) GenerateAccessToken(u *models.User) (string, error) {
	return m.sign(u, tokenTypeAccess, m.accessTTL)
}

// GenerateRefreshToken issues a refresh token for u. Each carries a
// unique jti so redemption can be tracked.
func (m *JWTManager) GenerateRefreshToken(u *models.User) (string, error) {
	return m.sign(u, tokenTypeRefresh, m.refreshTTL)
}

func (m *JWTManager) sign(u *models.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     u.Email,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(u.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "sign token", err)
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies an access token.
func (m *JWTManager) ValidateAccessToken(token string) (*Claims, error) {
	return m.validate(token, tokenTypeAccess)
}

// ValidateRefreshToken parses and verifies a refresh token.
func (m *JWTManager) ValidateRefreshToken(token string) (*Claims, error) {
	return m.validate(token, tokenTypeRefresh)
}

func (m *JWTManager) validate(token, wantType string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid token", err)
	}
	if claims.TokenType != wantType {
		return nil, apperr.Newf(apperr.KindUnauthorized, "token is not a %s token", wantType)
	}
	return claims, nil
}
