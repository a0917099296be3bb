// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package auth

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/config"
	"github.com/opencookbook/cookbook/internal/logging"
	"github.com/opencookbook/cookbook/internal/metrics"
)

var refreshKeyPrefix = []byte("refresh:")

// redeemedToken is the stored record of a spent refresh token.
type redeemedToken struct {
	JTI        string    `json:"jti"`
	UserID     int64     `json:"uid"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

// TokenStore records redeemed refresh-token jtis so each refresh token
// is usable exactly once. Entries expire with the token itself, so the
// store never outgrows the set of live tokens.
type TokenStore struct {
	db *badger.DB
}

// NewTokenStore opens the BadgerDB-backed store described by cfg.
func NewTokenStore(cfg *config.AuthConfig) (*TokenStore, error) {
	var opts badger.Options
	if cfg.TokenStoreInMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.TokenStorePath)
	}
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "open token store", err)
	}
	return &TokenStore{db: db}, nil
}

// Redeem marks jti as spent until ttl elapses. A jti seen before is a
// replay; the caller must reject the refresh attempt.
func (s *TokenStore) Redeem(jti string, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return apperr.New(apperr.KindUnauthorized, "refresh token expired")
	}
	key := append(refreshKeyPrefix, []byte(jti)...)

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return apperr.New(apperr.KindUnauthorized, "refresh token already used")
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return apperr.Wrap(apperr.KindInternal, "read token store", err)
		}
		data, err := json.Marshal(redeemedToken{JTI: jti, UserID: userID, RedeemedAt: time.Now()})
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "encode token record", err)
		}
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(ttl))
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthorized {
			metrics.RefreshReplays.Inc()
			logging.Warn().
				Str("jti", jti).
				Int64("user_id", userID).
				Msg("refresh token replay rejected")
		}
		return err
	}
	metrics.RefreshRotations.Inc()
	return nil
}

// Close flushes and closes the underlying store.
func (s *TokenStore) Close() error {
	return s.db.Close()
}
