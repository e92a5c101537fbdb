// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"unicode/utf8"

	"github.com/buger/jsonparser"
	"github.com/itchyny/gojq"
	jsoniter "github.com/json-iterator/go"

	"github.com/gomera/reqx/codec"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MapString converts the body to a string. With no key path the whole
// body is returned, provided it is valid UTF-8. With a key path the
// body is parsed as JSON, the dot-separated path is walked, and the
// scalar found there is stringified.
//
// Failure to convert yields a KindStringMapping error carrying the
// receiver.
func (r *Raw) MapString(keyPath ...string) (string, error) {
	if len(keyPath) == 0 || keyPath[0] == "" {
		if !utf8.Valid(r.Body) {
			return "", &Error{Kind: KindStringMapping, Raw: r}
		}
		return string(r.Body), nil
	}

	value, typ, err := extractKeyPath(r.Body, keyPath[0])
	if err != nil {
		return "", &Error{Kind: KindStringMapping, Raw: r, Err: err}
	}
	switch typ {
	case jsonparser.String:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return "", &Error{Kind: KindStringMapping, Raw: r, Err: err}
		}
		return s, nil
	case jsonparser.Number, jsonparser.Boolean:
		return string(value), nil
	default:
		return "", &Error{Kind: KindStringMapping, Raw: r}
	}
}

// MapJSON parses the body as untyped JSON. When failOnEmpty is false,
// an empty body yields an empty JSON object instead of an error.
//
// Failure to parse yields a KindJSONMapping error carrying the
// receiver.
func (r *Raw) MapJSON(failOnEmpty bool) (interface{}, error) {
	data := r.Body
	if len(data) == 0 {
		if failOnEmpty {
			return nil, &Error{Kind: KindJSONMapping, Raw: r}
		}
		data = []byte("{}")
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &Error{Kind: KindJSONMapping, Raw: r, Err: err}
	}
	return v, nil
}

// MapImage decodes the body as an image (PNG, JPEG or GIF).
//
// Failure to decode yields a KindImageMapping error carrying the
// receiver.
func (r *Raw) MapImage() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(r.Body))
	if err != nil {
		return nil, &Error{Kind: KindImageMapping, Raw: r, Err: err}
	}
	return img, nil
}

// MapJQ parses the body as JSON and runs the given jq expression over
// it, returning all produced outputs in order.
//
// A parse or evaluation failure yields a KindJSONMapping error carrying
// the receiver.
func (r *Raw) MapJQ(expr string) ([]interface{}, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, &Error{Kind: KindJSONMapping, Raw: r, Err: err}
	}
	v, err := r.MapJSON(true)
	if err != nil {
		return nil, err
	}
	var out []interface{}
	iter := query.Run(v)
	for {
		next, ok := iter.Next()
		if !ok {
			break
		}
		if jqErr, ok := next.(error); ok {
			return nil, &Error{Kind: KindJSONMapping, Raw: r, Err: jqErr}
		}
		out = append(out, next)
	}
	return out, nil
}

// A MapOption customizes the behavior of Map.
type MapOption func(*mapConfig)

type mapConfig struct {
	keyPath    string
	decoder    codec.Decoder
	allowEmpty bool
}

// AtKeyPath restricts decoding to the JSON value at the dot-separated
// key path instead of the whole body.
func AtKeyPath(path string) MapOption {
	return func(c *mapConfig) { c.keyPath = path }
}

// WithMapDecoder decodes with dec instead of the default decoder.
func WithMapDecoder(dec codec.Decoder) MapOption {
	return func(c *mapConfig) { c.decoder = dec }
}

// AllowEmpty substitutes an empty JSON object (or array, for slice
// targets) for an empty body, so models with all-optional fields decode
// successfully instead of failing.
func AllowEmpty() MapOption {
	return func(c *mapConfig) { c.allowEmpty = true }
}

// Map decodes the raw result's body into a value of type T.
//
// With AtKeyPath, the dot-separated path is walked into the parsed
// JSON tree first and only the value found there is decoded. When the
// path resolves to a JSON scalar and T requires an object root, the
// scalar is wrapped as {"value": scalar} and decoding is retried, so
// a struct with a "value" field can receive a scalar.
//
// Decode failures yield a KindObjectMapping error carrying the
// receiver; an empty body with the default options yields the decoder's
// error the same way.
func Map[T any](r *Raw, opts ...MapOption) (T, error) {
	var zero T
	cfg := mapConfig{decoder: codec.DefaultDecoder}
	for _, opt := range opts {
		opt(&cfg)
	}

	data := r.Body
	if len(data) == 0 && cfg.allowEmpty {
		return decodeEmpty[T](r, cfg.decoder)
	}

	scalar := false
	if cfg.keyPath != "" {
		value, typ, err := extractKeyPath(data, cfg.keyPath)
		if err != nil {
			return zero, &Error{Kind: KindObjectMapping, Raw: r, Err: err}
		}
		data = value
		scalar = typ == jsonparser.String || typ == jsonparser.Number || typ == jsonparser.Boolean
	}

	var model T
	err := cfg.decoder.Decode(data, &model)
	if err == nil {
		return model, nil
	}
	if scalar {
		// Structured targets want an object root.
		wrapped := append(append([]byte(`{"value":`), data...), '}')
		var retry T
		if retryErr := cfg.decoder.Decode(wrapped, &retry); retryErr == nil {
			return retry, nil
		}
	}
	return zero, &Error{Kind: KindObjectMapping, Raw: r, Err: err}
}

func decodeEmpty[T any](r *Raw, dec codec.Decoder) (T, error) {
	var model T
	if err := dec.Decode([]byte("{}"), &model); err == nil {
		return model, nil
	}
	var fromArray T
	if err := dec.Decode([]byte("[]"), &fromArray); err != nil {
		var zero T
		return zero, &Error{Kind: KindObjectMapping, Raw: r, Err: err}
	}
	return fromArray, nil
}

// extractKeyPath returns the JSON value at the dot-separated key path,
// re-marshaled so that the result is itself valid JSON (jsonparser
// strips quotes from strings).
func extractKeyPath(data []byte, keyPath string) ([]byte, jsonparser.ValueType, error) {
	keys := strings.Split(keyPath, ".")
	value, typ, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return nil, jsonparser.NotExist, err
	}
	switch typ {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, typ, err
		}
		quoted, err := json.Marshal(s)
		if err != nil {
			return nil, typ, err
		}
		return quoted, typ, nil
	case jsonparser.Null:
		return []byte("null"), typ, nil
	default:
		return value, typ, nil
	}
}
