// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Command server runs the cookbook HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/opencookbook/cookbook/internal/api"
	"github.com/opencookbook/cookbook/internal/auth"
	"github.com/opencookbook/cookbook/internal/config"
	"github.com/opencookbook/cookbook/internal/database"
	"github.com/opencookbook/cookbook/internal/favorites"
	"github.com/opencookbook/cookbook/internal/ingredients"
	"github.com/opencookbook/cookbook/internal/logging"
	"github.com/opencookbook/cookbook/internal/pantry"
	"github.com/opencookbook/cookbook/internal/ratings"
	"github.com/opencookbook/cookbook/internal/recipes"
	"github.com/opencookbook/cookbook/internal/seed"
	"github.com/opencookbook/cookbook/internal/shopping"
	"github.com/opencookbook/cookbook/internal/users"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if cfg.Seed.Enabled {
		if err := seed.Run(context.Background(), db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	jwtMgr, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenStore(&cfg.Auth)
	if err != nil {
		return err
	}
	defer tokens.Close()

	handlers := &api.Handlers{
		Auth:        auth.NewService(db, jwtMgr, tokens, cfg.Security.BcryptCost),
		Users:       users.NewService(db),
		Ingredients: ingredients.NewService(db),
		Recipes:     recipes.NewService(db),
		Pantry:      pantry.NewService(db),
		Shopping:    shopping.NewService(db),
		Ratings:     ratings.NewService(db),
		Favorites:   favorites.NewService(db),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handlers, api.RouterConfig{AuthRateLimit: 30}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
