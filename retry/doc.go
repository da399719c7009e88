// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides policies deciding whether a failed attempt of
// an HTTP request plan execution is retried, how long to wait before
// retrying, and how large a retry count a plan may ask for.
//
// A Policy returns a Decision, either Stop or After(wait), whether the
// attempt ended in a transport error or in a response whose status is
// worth retrying. A Policy can be assembled with NewPolicy from a
// decision-maker, Decider, and a wait time calculator, Waiter:
//
//	decider := retry.StatusCode(502, 503).
//	               Or(retry.TransientErr).
//	               And(retry.Before(5 * time.Second))
//	waiter := retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, 0.5)
//	policy := retry.NewPolicy(3, decider, waiter)
//
// The policy owns the wait: Sleep blocks the calling goroutine, and
// returns early if the plan's context is cancelled.
package retry
