// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package codec defines the pluggable encoder/decoder boundary used to
// serialize request models and deserialize response bodies.
//
// The default codec is JSON, backed by json-iterator for wire
// compatibility with the standard library at lower cost. Replace the
// decoder or encoder globally via reqx.Configure, or per request via
// the descriptor's WithDecoder method.
package codec
