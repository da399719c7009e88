// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"time"

	"github.com/gogama/restx/request"
	"github.com/gogama/restx/transient"
)

// A Decider reports whether the attempt which just ended is worth
// retrying. It only judges the attempt: the client has already checked
// that the plan has retries left, and a Waiter picks the wait.
//
// Implementations must be safe for concurrent use.
type Decider interface {
	Decide(e *request.Execution) bool
}

// DeciderFunc adapts a function to the Decider interface. Deciders
// built from functions compose with And, Or and Not.
type DeciderFunc func(e *request.Execution) bool

// Decide returns f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And returns a decider which retries only if both f and g do. The
// decider g is not consulted if f says no.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or returns a decider which retries if either f or g does. The
// decider g is not consulted if f says yes.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Not returns a decider which retries exactly when f does not.
func (f DeciderFunc) Not() DeciderFunc {
	return func(e *request.Execution) bool {
		return !f(e)
	}
}

// DefaultDecider retries a recoverable transport failure and a 503
// (Service Unavailable) response.
var DefaultDecider = StatusCode(http.StatusServiceUnavailable).Or(TransientErr)

// TransientErr retries when the attempt failed with an error which
// transient.Recoverable accepts: a timeout, a refused or reset
// connection, or another network-level failure. Protocol errors and
// attempts which received a response are not retried.
var TransientErr DeciderFunc = func(e *request.Execution) bool {
	return transient.Recoverable(e.Err)
}

// StatusCode returns a decider which retries when the attempt received
// a response whose status code is one of codes.
func StatusCode(codes ...int) DeciderFunc {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return func(e *request.Execution) bool {
		if e.Response == nil {
			return false
		}
		_, ok := set[e.StatusCode()]
		return ok
	}
}

// Times returns a decider which retries while fewer than n retries have
// been made, regardless of the plan's own retry count.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before returns a decider which retries while the execution has been
// running for less than d.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}
