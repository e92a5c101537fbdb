// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"net/http"
)

// A Raw is the undecoded result of a dispatched request: status code,
// buffered body bytes, and optional references to the finalized wire
// request and the transport's response metadata.
//
// Raw is the type threaded through the plugin chain's DidReceive and
// Process stages before decoding, and the type embedded in errors so
// callers can inspect the body of a failed request. Treat a Raw as
// immutable once produced; a Process hook that wants to rewrite a
// result should return a new Raw rather than mutate the one it was
// given.
type Raw struct {
	// StatusCode is the HTTP status code of the response. It is zero
	// when no response was received.
	StatusCode int

	// Body is the complete buffered response body. It may be non-nil
	// even when the request failed, if a read of the body was partially
	// successful.
	Body []byte

	// Request is the finalized wire request that was (or would have
	// been) sent. It may be nil.
	Request *http.Request

	// Response is the transport's response metadata. It may be nil,
	// for example for stubbed results or transport failures. Its body
	// has already been consumed; use Body instead.
	Response *http.Response
}

// Header returns the response headers. If there is no transport
// response metadata, the nil header is returned, which is safe for
// read-only use since http.Header is a map type.
func (r *Raw) Header() http.Header {
	if r.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return r.Response.Header
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Raw) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// IsRedirect reports whether the status code is in the 3xx range.
func (r *Raw) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode <= 399
}

// IsClientError reports whether the status code is in the 4xx range.
func (r *Raw) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode <= 499
}

// IsServerError reports whether the status code is in the 5xx range.
func (r *Raw) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode <= 599
}

// Filter returns the receiver if its status code is one of codes, and
// a KindStatusCode error carrying the receiver otherwise.
func (r *Raw) Filter(codes ...int) (*Raw, error) {
	for _, c := range codes {
		if r.StatusCode == c {
			return r, nil
		}
	}
	return nil, &Error{Kind: KindStatusCode, Raw: r}
}

// FilterRange returns the receiver if lo <= status <= hi, and a
// KindStatusCode error carrying the receiver otherwise.
func (r *Raw) FilterRange(lo, hi int) (*Raw, error) {
	if r.StatusCode >= lo && r.StatusCode <= hi {
		return r, nil
	}
	return nil, &Error{Kind: KindStatusCode, Raw: r}
}

// FilterSuccessful is sugar for FilterRange(200, 299).
func (r *Raw) FilterSuccessful() (*Raw, error) {
	return r.FilterRange(200, 299)
}

// FilterSuccessfulAndRedirects is sugar for FilterRange(200, 399).
func (r *Raw) FilterSuccessfulAndRedirects() (*Raw, error) {
	return r.FilterRange(200, 399)
}

// Empty is the sentinel model type for requests whose response body is
// irrelevant. When the model type of Fire or Fetch is Empty, the
// decoding stage is skipped entirely and a zero value is produced.
type Empty struct{}

// A Response is the typed envelope returned to callers: the raw result
// plus an optionally present decoded model.
//
// Fire guarantees the model is present on success; envelopes derived
// from deferred-decoding entry points may leave it absent. The
// classification and mapping methods of the embedded Raw are pure
// functions of the stored status code and body bytes; none of them
// re-fetch.
type Response[T any] struct {
	*Raw

	model *T
}

// Model returns the decoded model and whether it is present.
func (r *Response[T]) Model() (T, bool) {
	if r.model == nil {
		var zero T
		return zero, false
	}
	return *r.model, true
}

// Unwrap returns the decoded model, or a KindObjectMapping error
// carrying the raw result if the model is absent.
func (r *Response[T]) Unwrap() (T, error) {
	if r.model == nil {
		var zero T
		return zero, &Error{Kind: KindObjectMapping, Raw: r.Raw}
	}
	return *r.model, nil
}

// AsRaw erases the model from the envelope, preserving the status
// code, body bytes and wire references.
func (r *Response[T]) AsRaw() *Raw {
	return r.Raw
}
