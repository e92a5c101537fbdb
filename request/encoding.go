// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// A Destination identifies the part of the draft wire request a
// parameter encoding writes to.
type Destination int

const (
	// DestinationQuery indicates the encoding appends to the URL query
	// string.
	DestinationQuery Destination = iota
	// DestinationBody indicates the encoding writes the draft body.
	DestinationBody
)

// A ParameterEncoding encodes a parameter map onto a draft wire
// request. Implementations are pure apart from mutating the draft they
// are given, and must be safe for concurrent use by multiple
// goroutines.
//
// The built-in encodings live in package encoding: Query, URLEncodedBody
// and JSONBody.
type ParameterEncoding interface {
	// Apply encodes params onto the draft, writing either the URL query
	// string or the body bytes depending on Destination.
	Apply(d *Draft, params map[string]interface{}) error
	// Destination reports which part of the draft Apply writes to.
	Destination() Destination
}
