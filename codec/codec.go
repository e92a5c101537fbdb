// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	jsoniter "github.com/json-iterator/go"
)

// A Decoder converts response body bytes into a model value. The
// destination v is always a non-nil pointer.
//
// Implementations of Decoder must be safe for concurrent use by
// multiple goroutines.
type Decoder interface {
	Decode(data []byte, v interface{}) error
}

// An Encoder converts a model value into request body bytes.
//
// Implementations of Encoder must be safe for concurrent use by
// multiple goroutines.
type Encoder interface {
	Encode(v interface{}) ([]byte, error)
}

// JSON is a codec for the application/json media type. Its zero value
// is ready to use. It implements both Decoder and Encoder.
type JSON struct{}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode unmarshals JSON data into v.
func (JSON) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// Encode marshals v into JSON bytes.
func (JSON) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// DefaultDecoder is the decoder used when neither the descriptor nor
// the global configuration specifies one.
var DefaultDecoder Decoder = JSON{}

// DefaultEncoder is the encoder used when neither the task nor the
// global configuration specifies one.
var DefaultEncoder Encoder = JSON{}

// The DecoderFunc type is an adapter to allow the use of ordinary
// functions as decoders. If f is a function with the appropriate
// signature, DecoderFunc(f) is a Decoder that calls f.
type DecoderFunc func(data []byte, v interface{}) error

// Decode calls f(data, v).
func (f DecoderFunc) Decode(data []byte, v interface{}) error {
	return f(data, v)
}

// The EncoderFunc type is an adapter to allow the use of ordinary
// functions as encoders. If f is a function with the appropriate
// signature, EncoderFunc(f) is an Encoder that calls f.
type EncoderFunc func(v interface{}) ([]byte, error)

// Encode calls f(v).
func (f EncoderFunc) Encode(v interface{}) ([]byte, error) {
	return f(v)
}
