// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"github.com/gomera/reqx"
	"github.com/gomera/reqx/transient"
)

// A Decider decides whether a retry would be warranted for the outcome
// of a dispatched request. The attempt parameter is the zero-based
// number of the attempt being judged; the advisory Plugin always
// passes zero, since the execution engine makes exactly one attempt
// per invocation.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
//
// Use the built-in constructors Times and StatusCode, and the built-in
// decider TransientErr; or implement your own. Use DeciderFunc to
// convert an ordinary function into a Decider, and to compose deciders
// logically using DeciderFunc.And and DeciderFunc.Or.
type Decider interface {
	Decide(attempt int, raw *reqx.Raw, err error) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It implements the Decider interface,
// and also provides the logical composition methods And and Or.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
//
// Simple DeciderFunc functions can be composed into complex decision
// trees using the logical composition functions DeciderFunc.And and
// DeciderFunc.Or. Because of this composition ability, it will often
// be convenient to work directly with DeciderFunc rather than with
// Decider.
type DeciderFunc func(attempt int, raw *reqx.Raw, err error) bool

// DefaultTimes is the number of retries DefaultPolicy considers
// warranted.
const DefaultTimes = 5

// DefaultDecider is a general-purpose retry decider suitable for
// common use cases. It considers up to DefaultTimes retries warranted
// in the case of a transient error (TransientErr) or if a valid HTTP
// response was received but it contains one of the following status
// codes: 429 (Too Many Requests); 502 (Bad Gateway); 503 (Service
// Unavailable); or 504 (Gateway Timeout).
var DefaultDecider = Times(DefaultTimes).And(StatusCode(429, 502, 503, 504).Or(TransientErr))

// TransientErr is a decider that reports retry eligibility if the
// outcome error is transient according to transient.Categorize.
//
// TransientErr only looks at the error, so it always returns false
// when a valid HTTP response was received. Compose it with other
// deciders, for example a status code decider constructed with
// StatusCode, to get more complex functionality.
var TransientErr DeciderFunc = transientErr

// Decide returns true if a retry would be warranted, and false
// otherwise, after examining the outcome of a dispatched request.
func (f DeciderFunc) Decide(attempt int, raw *reqx.Raw, err error) bool {
	return f(attempt, raw, err)
}

// And composes two retry deciders into a new decider which returns
// true if both sub-deciders return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(attempt int, raw *reqx.Raw, err error) bool {
		return f(attempt, raw, err) && g(attempt, raw, err)
	}
}

// Or composes two retry deciders into a new decider which returns
// true if either of the two sub-deciders returns true, but false if
// they both return false.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(attempt int, raw *reqx.Raw, err error) bool {
		return f(attempt, raw, err) || g(attempt, raw, err)
	}
}

// Times constructs a retry decider which would allow up to n retries.
// The returned decider returns true while attempt is less than n, and
// false otherwise.
func Times(n int) DeciderFunc {
	return func(attempt int, _ *reqx.Raw, _ error) bool {
		return attempt < n
	}
}

// StatusCode constructs a retry decider keyed on the HTTP response
// status code. If the outcome contains a valid raw result whose status
// code is contained in the list ss, the decider returns true.
// Otherwise, it returns false.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(_ int, raw *reqx.Raw, _ error) bool {
		if raw == nil {
			return false
		}
		for _, s := range ss2 {
			if raw.StatusCode == s {
				return true
			}
		}
		return false
	}
}

func transientErr(_ int, _ *reqx.Raw, err error) bool {
	return transient.Categorize(err) != transient.Not
}
