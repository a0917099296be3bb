// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package database

import (
	"context"
	"fmt"
)

// schemaStatements is the full DDL, applied in order at startup. All
// statements are idempotent. Case-insensitive uniqueness is enforced
// through *_norm columns maintained by the store.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS seq_user_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_ingredient_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_recipe_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_pantry_item_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_shopping_list_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_shopping_list_item_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_rating_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_favorite_id START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_user_id'),
		name VARCHAR NOT NULL DEFAULT '',
		surname VARCHAR NOT NULL DEFAULT '',
		email VARCHAR NOT NULL,
		email_norm VARCHAR NOT NULL UNIQUE,
		password_hash VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS ingredients (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_ingredient_id'),
		name VARCHAR NOT NULL,
		name_norm VARCHAR NOT NULL UNIQUE,
		unit VARCHAR NOT NULL,
		category VARCHAR NOT NULL DEFAULT 'OTHER'
	)`,

	`CREATE TABLE IF NOT EXISTS recipes (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_recipe_id'),
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		total_time_min INTEGER,
		avg_rating DOUBLE,
		author_id BIGINT
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id BIGINT NOT NULL,
		position INTEGER NOT NULL,
		ingredient_id BIGINT NOT NULL,
		amount DOUBLE NOT NULL DEFAULT 0,
		PRIMARY KEY (recipe_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_steps (
		recipe_id BIGINT NOT NULL,
		step_no INTEGER NOT NULL,
		instruction VARCHAR NOT NULL,
		time_min INTEGER,
		PRIMARY KEY (recipe_id, step_no)
	)`,

	`CREATE TABLE IF NOT EXISTS pantry_items (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_pantry_item_id'),
		user_id BIGINT NOT NULL,
		ingredient_id BIGINT NOT NULL,
		amount DOUBLE NOT NULL DEFAULT 0,
		UNIQUE (user_id, ingredient_id)
	)`,

	`CREATE TABLE IF NOT EXISTS shopping_lists (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_shopping_list_id'),
		user_id BIGINT NOT NULL,
		name VARCHAR NOT NULL,
		name_norm VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		UNIQUE (user_id, name_norm)
	)`,

	`CREATE TABLE IF NOT EXISTS shopping_list_items (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_shopping_list_item_id'),
		list_id BIGINT NOT NULL,
		ingredient_id BIGINT,
		name VARCHAR NOT NULL,
		amount DOUBLE,
		unit VARCHAR
	)`,

	`CREATE TABLE IF NOT EXISTS ratings (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_rating_id'),
		recipe_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		stars INTEGER NOT NULL,
		comment VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		UNIQUE (recipe_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS favorites (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_favorite_id'),
		user_id BIGINT NOT NULL,
		recipe_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		UNIQUE (user_id, recipe_id)
	)`,
}

// initSchema applies the DDL.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
