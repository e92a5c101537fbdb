// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gomera/reqx"
)

// A Policy describes if and how a failed request would be retried. In
// particular, given the outcome of a dispatched request, a Policy
// decides whether a retry would be warranted and, if so, how long the
// wait period before retrying would be.
//
// The reqx execution engine never consults a Policy: each invocation
// dispatches exactly once. A Policy is evaluated by the advisory
// Plugin in this package, which reports eligibility without acting on
// it.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
//
// A Policy is composed of the Decider and Waiter interfaces. While you
// can implement Policy yourself, it may be more convenient to use one
// of the built-in policies, DefaultPolicy or Never, or to construct
// your policy with the NewPolicy constructor using existing Decider
// and Waiter implementations.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It is a composition of DefaultDecider for retry decisions
// and DefaultWaiter for wait time calculations.
var DefaultPolicy Policy = policy{DefaultDecider, DefaultWaiter}

// Never is a policy that never considers a retry warranted.
var Never Policy = policy{Times(0), DefaultWaiter}

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a retry Policy.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("reqx/retry: nil decider")
	}
	if w == nil {
		panic("reqx/retry: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(attempt int, raw *reqx.Raw, err error) bool {
	return p.decider.Decide(attempt, raw, err)
}

func (p policy) Wait(attempt int) time.Duration {
	return p.waiter.Wait(attempt)
}
