// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides flexible policies describing when a failed
// request would be retried and how long the wait before retrying would
// be, together with an advisory plugin that evaluates a policy against
// each outcome.
//
// The interface Policy defines a retry Policy. A Policy instance can
// be constructed using NewPolicy by providing a decision-maker,
// Decider, and a wait time calculator, Waiter. Both Decider and Waiter
// have constructors for common use cases, so that a useful policy can
// be quickly assembled:
//
//	decider := retry.Times(3).
//	               And(retry.StatusCode(500).Or(retry.TransientErr))
//	waiter := retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now())
//	policy := retry.NewPolicy(decider, waiter)
//
// The reqx execution engine runs each invocation exactly once and
// never consults a Policy itself. Install retry.NewPlugin(policy,
// logger) to have eligibility evaluated and logged during result
// processing; actual re-dispatch is deliberately out of scope.
package retry
