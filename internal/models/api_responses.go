// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. Data is nil on error; Error is nil on success.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response bookkeeping, including pagination on list
// endpoints.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Page      *int      `json:"page,omitempty"`
	Size      *int      `json:"size,omitempty"`
	Total     *int64    `json:"total,omitempty"`
}

// APIError is a structured error payload. Code is the stable error kind
// string, Message is safe for display.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageRequest is a normalized pagination request.
type PageRequest struct {
	Page int // zero-based
	Size int
}

// DefaultPageSize applies when no size is requested.
const DefaultPageSize = 20

// MaxPageSize caps requested page sizes.
const MaxPageSize = 100

// NormalizePage clamps a raw page request into valid bounds.
func NormalizePage(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Offset returns the row offset for this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of results with the total row count.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

// EmptyPage returns an empty page for the given request. Used when
// blank search input short-circuits without a store query.
func EmptyPage[T any](req PageRequest) Page[T] {
	return Page[T]{Items: []T{}, Page: req.Page, Size: req.Size, Total: 0}
}
