// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package encoding provides the built-in parameter encodings: Query
// (URL query string), URLEncodedBody (form-encoded body) and JSONBody
// (JSON body). All three implement request.ParameterEncoding and share
// deterministic sorted-key flattening, so encoded output is reproducible
// across runs.
package encoding
