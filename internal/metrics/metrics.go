// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookbook_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SearchQueriesTotal counts catalog searches by kind
	// (ingredient, title, ingredient_names, pantry, overlap, top_rated).
	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_search_queries_total",
			Help: "Total number of search queries served.",
		},
		[]string{"kind"},
	)

	// ShoppingListsFinalized counts finalized shopping lists by pantry merge outcome.
	ShoppingListsFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_shopping_lists_finalized_total",
			Help: "Total number of shopping lists finalized.",
		},
		[]string{"merged"},
	)

	// RatingsWritten counts rating upserts and deletions.
	RatingsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_ratings_written_total",
			Help: "Total number of rating writes.",
		},
		[]string{"op"},
	)

	// RefreshRotations counts refresh token redemptions.
	RefreshRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cookbook_refresh_rotations_total",
			Help: "Total number of refresh tokens redeemed.",
		},
	)

	// RefreshReplays counts refresh tokens rejected because they were already used.
	RefreshReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cookbook_refresh_replays_total",
			Help: "Total number of replayed refresh tokens rejected.",
		},
	)
)
