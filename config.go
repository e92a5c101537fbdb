// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gomera/reqx/codec"
	"github.com/gomera/reqx/request"
)

// DefaultBaseURL is the base URL used when neither the descriptor nor
// the global configuration supplies one.
const DefaultBaseURL = "http://localhost"

// A Config is the process-wide configuration consulted by the
// execution engine. Replace it wholesale with Configure; incremental
// mutation of a shared Config is not supported.
//
// Zero-value fields fall back to defaults when the engine snapshots
// the configuration: codec.DefaultDecoder, codec.DefaultEncoder,
// DefaultTransport, and DefaultBaseURL.
type Config struct {
	// BaseURL is the base URL request paths are joined onto, unless
	// the descriptor overrides it.
	BaseURL string

	// Header contains default headers merged into every request.
	// Descriptor headers win on key collision.
	Header http.Header

	// Timeout is the default per-request timeout for descriptors
	// created with a zero timeout.
	Timeout time.Duration

	// Validation is the default status validation policy applied when
	// the descriptor's policy is the none policy.
	Validation request.ValidationPolicy

	// Decoder decodes response bodies, unless the descriptor overrides
	// it.
	Decoder codec.Decoder

	// Encoder encodes Encodable task models, unless the task carries
	// its own encoder.
	Encoder codec.Encoder

	// Plugins is the ordered interceptor chain. Registration order is
	// execution order.
	Plugins []Plugin

	// StubBehavior is the default timing of stubbed responses, unless
	// the descriptor overrides it.
	StubBehavior request.StubBehavior

	// Transport dispatches prepared wire requests.
	Transport Transport
}

// DefaultConfig returns the configuration the process starts with: no
// base URL (DefaultBaseURL applies at resolution), no default headers,
// DefaultTimeout, no validation, the JSON codec, no plugins, immediate
// stubs, and DefaultTransport.
func DefaultConfig() Config {
	return Config{
		Timeout: request.DefaultTimeout,
	}
}

var global atomic.Pointer[Config]

func init() {
	c := DefaultConfig()
	global.Store(&c)
}

// Configure replaces the global configuration wholesale. It is the
// only supported way to change process-wide defaults.
//
// The configuration is shared mutable state with no automatic scoping:
// tests that call Configure must reset it between cases, typically
// with Configure(DefaultConfig()). The execution engine snapshots the
// configuration atomically at invocation start, so a Configure call
// never affects an invocation already in flight.
func Configure(c Config) {
	global.Store(&c)
}

// CurrentConfig returns a copy of the global configuration as last
// set by Configure.
func CurrentConfig() Config {
	return *global.Load()
}

// snapshot is the engine's per-invocation view of the configuration,
// with zero-value fields resolved to defaults.
func snapshot() Config {
	c := *global.Load()
	if c.Decoder == nil {
		c.Decoder = codec.DefaultDecoder
	}
	if c.Encoder == nil {
		c.Encoder = codec.DefaultEncoder
	}
	if c.Transport == nil {
		c.Transport = DefaultTransport
	}
	if c.Timeout == 0 {
		c.Timeout = request.DefaultTimeout
	}
	return c
}
