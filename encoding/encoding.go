// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package encoding

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/gomera/reqx/request"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Query is the parameter encoding that appends parameters to the URL
// query string. Output is deterministic: keys are flattened and sorted
// lexicographically before joining, so the same parameter map always
// produces the same query string regardless of map iteration order.
type Query struct{}

// Apply appends the encoded parameters to the draft URL's query
// string, separated from any existing query string by "&".
func (Query) Apply(d *request.Draft, params map[string]interface{}) error {
	q := Encode(params)
	if q == "" {
		return nil
	}
	if d.URL.RawQuery != "" {
		d.URL.RawQuery += "&" + q
	} else {
		d.URL.RawQuery = q
	}
	return nil
}

// Destination reports that Query writes the URL query string.
func (Query) Destination() request.Destination {
	return request.DestinationQuery
}

// URLEncodedBody is the parameter encoding that writes parameters as a
// URL-encoded request body. It uses the same flattening and escaping
// rules as Query.
type URLEncodedBody struct{}

// Apply writes the encoded parameters to the draft body and sets the
// Content-Type header to application/x-www-form-urlencoded if no
// Content-Type is present.
func (URLEncodedBody) Apply(d *request.Draft, params map[string]interface{}) error {
	d.Body = []byte(Encode(params))
	if d.Header.Get("Content-Type") == "" {
		d.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	}
	return nil
}

// Destination reports that URLEncodedBody writes the draft body.
func (URLEncodedBody) Destination() request.Destination {
	return request.DestinationBody
}

// JSONBody is the parameter encoding that serializes the parameter map
// as a JSON request body.
type JSONBody struct{}

// Apply writes the JSON-serialized parameters to the draft body and
// sets the Content-Type header to application/json if no Content-Type
// is present. A serialization failure is returned unchanged; the
// endpoint resolver wraps it.
func (JSONBody) Apply(d *request.Draft, params map[string]interface{}) error {
	b, err := json.Marshal(params)
	if err != nil {
		return err
	}
	d.Body = b
	if d.Header.Get("Content-Type") == "" {
		d.Header.Set("Content-Type", "application/json")
	}
	return nil
}

// Destination reports that JSONBody writes the draft body.
func (JSONBody) Destination() request.Destination {
	return request.DestinationBody
}
