// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/gogama/restx/request"
)

// DefaultMaxRetries is the largest retry count DefaultPolicy permits a
// request plan to ask for.
const DefaultMaxRetries = 2

// A Decision is the outcome of a retry policy consulted after a failed
// or unsuccessful attempt: either Stop, or retry after a wait.
//
// The same Decision type is returned whether the attempt ended in a
// transport error or in an HTTP response whose status is worth
// retrying.
type Decision struct {
	retry bool
	wait  time.Duration
}

// Stop is the Decision not to retry.
var Stop = Decision{}

// After returns the Decision to retry after waiting for d. A
// non-positive d means retry immediately.
func After(d time.Duration) Decision {
	if d < 0 {
		d = 0
	}
	return Decision{retry: true, wait: d}
}

// Retry reports whether the decision is to retry.
func (d Decision) Retry() bool {
	return d.retry
}

// Wait returns the time to wait before retrying. It is zero for Stop.
func (d Decision) Wait() time.Duration {
	return d.wait
}

func (d Decision) String() string {
	if !d.retry {
		return "Stop"
	}
	return fmt.Sprintf("After(%s)", d.wait)
}

// A Policy controls if and how retries are done in an HTTP request
// plan execution. After every attempt which did not succeed, while the
// plan has retries left, the client consults the Policy for a Decision.
// If the decision is to retry and the plan asks for waiting between
// attempts, the client has the Policy Sleep for the decision's wait.
//
// A Policy also caps the retry count any plan may request. A plan whose
// retry count exceeds MaxRetries is rejected before any network I/O.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	Decide(e *request.Execution) Decision
	MaxRetries() int
	Sleep(ctx context.Context, d time.Duration) error
}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It permits up to DefaultMaxRetries retries, decides with
// DefaultDecider, and waits as DefaultWaiter says.
var DefaultPolicy = NewPolicy(DefaultMaxRetries, DefaultDecider, DefaultWaiter)

// Never is a policy that never retries. It is useful if you want to use
// the other features of restx.Client but do not want retries.
var Never = NewPolicy(0, Times(0), DefaultWaiter)

type policy struct {
	max     int
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a retry Policy permitting up to max retries from
// a Decider and a Waiter.
func NewPolicy(max int, d Decider, w Waiter) Policy {
	if max < 0 {
		panic("restx/retry: negative max")
	}
	if d == nil {
		panic("restx/retry: nil decider")
	}
	if w == nil {
		panic("restx/retry: nil waiter")
	}
	return policy{max: max, decider: d, waiter: w}
}

func (p policy) Decide(e *request.Execution) Decision {
	if !p.decider.Decide(e) {
		return Stop
	}
	return After(p.waiter.Wait(e))
}

func (p policy) MaxRetries() int {
	return p.max
}

func (p policy) Sleep(ctx context.Context, d time.Duration) error {
	return Sleep(ctx, d)
}

// Sleep blocks the calling goroutine for d, or until ctx is done,
// whichever happens first. It returns nil if the full duration elapsed
// and ctx.Err() otherwise.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
