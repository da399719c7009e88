// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand/v2"
	"time"

	"github.com/gogama/restx/request"
)

// A Waiter computes how long to wait before retrying the attempt which
// just ended. The client only asks after the Decider said to retry,
// and only waits if the plan asks for exponential waiting.
//
// Implementations must be safe for concurrent use.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// DefaultWaiter doubles the wait after every attempt, starting from one
// second, up to thirty seconds, without jitter: 1s, 2s, 4s, 8s, 16s,
// 30s, 30s, and so on.
var DefaultWaiter = NewExpWaiter(1*time.Second, 30*time.Second, 0)

// NewFixedWaiter returns a Waiter which always waits for d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter returns a Waiter whose wait doubles with each attempt:
// base after the initial attempt, twice base after the first retry,
// and so on, never exceeding max.
//
// Parameter jitter, between 0 and 1, randomizes the wait downward by up
// to that fraction: with jitter 0.5, a computed wait of 4s becomes a
// random wait between 2s and 4s. Jitter 0 disables randomization and
// jitter 1 is the "full jitter" scheme.
//
// NewExpWaiter panics if base is not positive, if max is less than
// base, or if jitter is outside [0, 1].
func NewExpWaiter(base, max time.Duration, jitter float64) Waiter {
	if base <= 0 {
		panic("restx/retry: base must be positive")
	}
	if max < base {
		panic("restx/retry: max must be at least base")
	}
	if jitter < 0 || jitter > 1 {
		panic("restx/retry: jitter must be between 0 and 1")
	}
	return expWaiter{base: base, max: max, jitter: jitter}
}

type expWaiter struct {
	base   time.Duration
	max    time.Duration
	jitter float64
}

func (w expWaiter) Wait(e *request.Execution) time.Duration {
	d := w.base
	for i := 0; i < e.Attempt && d < w.max; i++ {
		if d > w.max/2 {
			d = w.max
			break
		}
		d *= 2
	}
	if w.jitter > 0 {
		d -= time.Duration(w.jitter * rand.Float64() * float64(d))
	}
	return d
}
