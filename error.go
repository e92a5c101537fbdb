// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"errors"
	"fmt"
)

// An ErrorKind identifies the failure stage of an Error.
type ErrorKind int

const (
	// KindRequestMapping indicates the endpoint resolver could not
	// build a wire request, most commonly because the URL is invalid.
	// The Error carries the offending URL string.
	KindRequestMapping ErrorKind = iota
	// KindEncodableMapping indicates an Encodable task's model failed
	// to serialize. The Error wraps the encoder's error.
	KindEncodableMapping
	// KindParameterEncoding indicates a parameter encoding strategy
	// failed, or a task carried a construction-time validation error.
	KindParameterEncoding
	// KindStatusCode indicates the response status code failed the
	// configured validation policy. The Error carries the RawResult so
	// callers can inspect the failed response body.
	KindStatusCode
	// KindUnderlying indicates a transport-level failure (DNS, timeout,
	// connection). The Error wraps the transport error and carries any
	// partial RawResult the transport produced.
	KindUnderlying
	// KindImageMapping indicates the response body could not be decoded
	// as an image.
	KindImageMapping
	// KindJSONMapping indicates the response body could not be parsed
	// as JSON.
	KindJSONMapping
	// KindStringMapping indicates the response body could not be
	// converted to a string.
	KindStringMapping
	// KindObjectMapping indicates a typed decode of the response body
	// failed. The Error wraps the decoder's error and carries the
	// RawResult.
	KindObjectMapping
)

var kindNames = []string{
	"request mapping",
	"encodable mapping",
	"parameter encoding",
	"status code",
	"underlying",
	"image mapping",
	"json mapping",
	"string mapping",
	"object mapping",
}

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[int(k)]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// An Error is the single error type surfaced at the Fire/Fetch/Send
// call site. Callers switch on Kind to diagnose the failure and, where
// applicable, read the embedded Raw result (for example the body of a
// 500 response that failed status validation).
//
// Every failing stage of the execution engine returns a fully populated
// *Error; there are no silent defaults and no logging side effects.
type Error struct {
	// Kind identifies the failure stage.
	Kind ErrorKind
	// URL is the offending URL string for KindRequestMapping.
	URL string
	// Raw is the raw result that produced the error, where one exists.
	Raw *Raw
	// Err is the wrapped underlying cause, where one exists.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "reqx: " + e.Kind.String() + " error"
	switch {
	case e.Kind == KindRequestMapping && e.URL != "":
		msg += fmt.Sprintf(" for url %q", e.URL)
	case e.Kind == KindStatusCode && e.Raw != nil:
		msg += fmt.Sprintf(" (status %d)", e.Raw.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError unwraps err into a *reqx.Error using errors.As. The second
// return value reports whether the conversion succeeded.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
