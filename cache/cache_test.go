// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	t.Run("set and get", func(t *testing.T) {
		s := NewMemoryStore(0)
		e := Entry{StatusCode: 200, Body: []byte("hi"), StoredAt: time.Now()}
		require.NoError(t, s.Set(ctx, "k", e))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, e, got)
		assert.Equal(t, 1, s.Len())
	})
	t.Run("miss", func(t *testing.T) {
		s := NewMemoryStore(0)
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrMiss)
	})
	t.Run("replace", func(t *testing.T) {
		s := NewMemoryStore(0)
		require.NoError(t, s.Set(ctx, "k", Entry{StatusCode: 200}))
		require.NoError(t, s.Set(ctx, "k", Entry{StatusCode: 204}))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 204, got.StatusCode)
		assert.Equal(t, 1, s.Len())
	})
	t.Run("ttl expiry", func(t *testing.T) {
		s := NewMemoryStore(time.Minute)
		stale := Entry{StatusCode: 200, StoredAt: time.Now().Add(-2 * time.Minute)}
		require.NoError(t, s.Set(ctx, "k", stale))
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrMiss)
		assert.Equal(t, 0, s.Len())
	})
}
