// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "reqx:", ttl), mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	t.Run("set and get", func(t *testing.T) {
		s, _ := newRedisStore(t, 0)
		stored := time.Now().UTC().Truncate(time.Second)
		e := Entry{StatusCode: 200, Body: []byte(`{"id":1}`), StoredAt: stored}
		require.NoError(t, s.Set(ctx, "GET http://localhost/widgets", e))
		got, err := s.Get(ctx, "GET http://localhost/widgets")
		require.NoError(t, err)
		assert.Equal(t, 200, got.StatusCode)
		assert.Equal(t, []byte(`{"id":1}`), got.Body)
		assert.True(t, got.StoredAt.Equal(stored))
	})
	t.Run("miss", func(t *testing.T) {
		s, _ := newRedisStore(t, 0)
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrMiss)
	})
	t.Run("prefix isolates keys", func(t *testing.T) {
		s, mr := newRedisStore(t, 0)
		require.NoError(t, s.Set(ctx, "k", Entry{StatusCode: 200}))
		assert.True(t, mr.Exists("reqx:k"))
		assert.False(t, mr.Exists("k"))
	})
	t.Run("ttl expiry", func(t *testing.T) {
		s, mr := newRedisStore(t, time.Minute)
		require.NoError(t, s.Set(ctx, "k", Entry{StatusCode: 200}))
		mr.FastForward(2 * time.Minute)
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrMiss)
	})
}
