// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gomera/reqx"
	"github.com/gomera/reqx/request"
)

// Plugin records successful responses into a Store as they pass
// through DidReceive. It never consults the store on the request path
// and never rewrites an outcome, so a dispatch behaves identically
// with or without the plugin installed.
type Plugin struct {
	reqx.NopPlugin

	store   Store
	log     *zap.Logger
	timeout time.Duration
}

// NewPlugin returns a record-only cache plugin writing to store. Store
// failures are logged and swallowed; a nil log silences them. Each
// write is bounded by a one second timeout so a slow store cannot
// stall result processing.
func NewPlugin(store Store, log *zap.Logger) *Plugin {
	if log == nil {
		log = zap.NewNop()
	}
	return &Plugin{store: store, log: log, timeout: time.Second}
}

// Key returns the store key for an outcome: the request method and
// full URL when the wire request is known, otherwise the descriptor
// method and path.
func Key(raw *reqx.Raw, desc request.Descriptor) string {
	if raw != nil && raw.Request != nil && raw.Request.URL != nil {
		return raw.Request.Method + " " + raw.Request.URL.String()
	}
	return desc.Method() + " " + desc.Path()
}

// DidReceive records successful outcomes.
func (p *Plugin) DidReceive(raw *reqx.Raw, err error, desc request.Descriptor) {
	if err != nil || raw == nil || !raw.IsSuccess() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	e := Entry{StatusCode: raw.StatusCode, Body: raw.Body, StoredAt: time.Now()}
	if serr := p.store.Set(ctx, Key(raw, desc), e); serr != nil {
		p.log.Warn("cache store write failed", zap.String("key", Key(raw, desc)), zap.Error(serr))
	}
}
