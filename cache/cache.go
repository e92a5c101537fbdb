// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cache provides a plugin that records successful response
// bodies into a pluggable store. The plugin is record-only: it never
// serves a stored body in place of a live dispatch, so installing it
// does not change what callers observe. Stored entries are for
// out-of-band consumers such as debugging tooling and offline replays.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Store.Get when no entry exists for the key.
var ErrMiss = errors.New("cache: miss")

// Entry is a recorded response.
type Entry struct {
	StatusCode int       `json:"status_code"`
	Body       []byte    `json:"body"`
	StoredAt   time.Time `json:"stored_at"`
}

// Store persists recorded responses. Implementations must be safe for
// concurrent use.
type Store interface {
	// Set records the entry under key, replacing any previous entry.
	Set(ctx context.Context, key string, e Entry) error

	// Get returns the entry stored under key, or ErrMiss.
	Get(ctx context.Context, key string) (Entry, error)
}
