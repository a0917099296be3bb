// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package database implements the relational store on DuckDB, reached
// through database/sql. It provides the per-entity query methods the
// service layer consumes and a WithTx helper that scopes every
// read-modify-write to one transaction.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/opencookbook/cookbook/internal/apperr"
	"github.com/opencookbook/cookbook/internal/config"
	"github.com/opencookbook/cookbook/internal/logging"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store bundles the query methods against one executor, either the
// connection pool or an open transaction.
type Store struct {
	q querier
}

// DB wraps the DuckDB connection and provides data access methods.
// The embedded Store runs in auto-commit mode; use WithTx for
// multi-statement operations.
type DB struct {
	*Store
	conn *sql.DB
}

// New opens the database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "512MB"
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// DuckDB is an in-process engine; a single writer connection avoids
	// spurious write-write conflicts between pooled connections.
	conn.SetMaxOpenConns(1)

	db := &DB{
		Store: &Store{q: conn},
		conn:  conn,
	}

	if err := db.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", threads).Msg("Database ready")
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// WithTx runs fn inside a transaction. The transaction is rolled back
// when fn returns an error and committed otherwise. Detected write
// conflicts surface as apperr.KindConflict; callers never retry here.
func (db *DB) WithTx(ctx context.Context, fn func(s *Store) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Internal(fmt.Errorf("begin transaction: %w", err))
	}

	if err := fn(&Store{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Error().Err(rbErr).Msg("Transaction rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, "commit transaction")
	}
	return nil
}

// norm is the canonical form used for all case-insensitive name
// comparisons: trimmed and lower-cased.
func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapError classifies a storage error. Uniqueness violations and
// transaction write conflicts become KindConflict; everything else is
// wrapped as KindInternal without leaking storage detail to callers.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "Duplicate key") ||
		strings.Contains(msg, "Constraint Error") ||
		strings.Contains(msg, "violates unique constraint") ||
		strings.Contains(strings.ToLower(msg), "conflict") {
		return apperr.Wrap(apperr.KindConflict, "conflicting write", err)
	}
	return apperr.Internal(fmt.Errorf("%s: %w", op, err))
}
