// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gomera/reqx/codec"
)

// RedisStore persists recorded responses in Redis, one JSON-encoded
// entry per key, expired server-side by TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a store writing under prefix with the given
// TTL. A zero or negative ttl stores entries without expiry.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Set(ctx context.Context, key string, e Entry) error {
	b, err := codec.DefaultEncoder.Encode(e)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if s.ttl > 0 {
		ttl = s.ttl
	}
	return s.client.Set(ctx, s.prefix+key, b, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := codec.DefaultDecoder.Decode(b, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}
