// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package requestid provides a plugin that stamps each outgoing
// request with a unique X-Request-Id header for cross-service
// correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gomera/reqx"
	"github.com/gomera/reqx/request"
)

// Header is the header name the plugin writes.
const Header = "X-Request-Id"

// Generator produces request identifiers. The default generator
// returns random UUIDs.
type Generator func() string

// Plugin assigns a fresh identifier to every outgoing request. An
// identifier already present on the draft is preserved, so callers
// propagating an upstream request id keep it.
type Plugin struct {
	reqx.NopPlugin

	gen Generator
}

// NewPlugin returns a request id plugin. A nil generator falls back to
// random UUIDs.
func NewPlugin(gen Generator) *Plugin {
	if gen == nil {
		gen = uuid.NewString
	}
	return &Plugin{gen: gen}
}

// Prepare stamps the draft with a request id unless one is already
// set.
func (p *Plugin) Prepare(d *request.Draft, _ request.Descriptor) *request.Draft {
	if d.Header.Get(Header) == "" {
		if d.Header == nil {
			d.Header = make(http.Header)
		}
		d.Header.Set(Header, p.gen())
	}
	return d
}
