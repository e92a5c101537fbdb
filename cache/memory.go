// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. Entries older than the TTL are
// treated as misses and dropped lazily on read.
type MemoryStore struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore returns an empty in-process store. A zero or negative
// ttl keeps entries forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]Entry)}
}

func (s *MemoryStore) Set(_ context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, ErrMiss
	}
	if s.ttl > 0 && time.Since(e.StoredAt) > s.ttl {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return Entry{}, ErrMiss
	}
	return e, nil
}

// Len reports the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
