// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gogama/restx/result"
	"github.com/gogama/restx/transient"
)

// An Execution is the running state of one Plan being executed by a
// client. The client creates it, updates it after every attempt, and
// hands it to event handlers and retry policies along the way. When the
// execution ends it is returned to the caller.
//
// Handlers and policies must treat the exported fields as read-only.
// The one exception is Request, which a BeforeAttempt handler may
// alter (for example, to sign it). Per-execution handler state belongs
// in SetValue and Value.
type Execution struct {
	// ID is a time-ordered UUID identifying the execution in logs and
	// metrics. It is empty only if UUID generation failed.
	ID string

	// Plan is the plan being executed. Never nil.
	Plan *Plan

	// Kind is the result kind the caller asked for.
	Kind result.Kind

	// Start and End bracket the execution. End stays zero until the
	// execution is over.
	Start, End time.Time

	// Attempt is zero during the initial attempt, one during the first
	// retry, and so on. After the execution ends, it is the number of
	// the last attempt made.
	Attempt int

	// AttemptTimeouts counts the attempts which ended in a timeout,
	// including an attempt cut short by the plan's own deadline.
	AttemptTimeouts int

	// Request is the HTTP request of the current or last attempt.
	Request *http.Request

	// Response is the HTTP response of the last attempt, or nil if it
	// failed before a response arrived.
	Response *http.Response

	// Err is the error of the last attempt, or after the execution
	// ends, the error the client returns. Network failures are
	// *restx.TransportError values. Err and Response are both set when
	// the response body could not be read or decoded.
	Err error

	// Body holds the raw, decompressed response body of the last
	// attempt. It stays nil for result.Stream.
	Body []byte

	// Result is the body of a 2XX response decoded according to Kind:
	// a string, a []byte, a map[string]interface{} or a []interface{}.
	// It is nil for result.Void and result.Stream.
	Result interface{}

	// ErrorBody is the best-effort decoding of a non-2XX response
	// body: nil when empty, otherwise a parsed JSON value, a string or
	// a []byte.
	ErrorBody interface{}

	// Stream is the decompressed response body when Kind is
	// result.Stream. Once the execution ends the caller owns it and
	// must close it.
	Stream io.ReadCloser

	data context.Context
}

// StatusCode returns the status code of the last response, or 0 if the
// last attempt produced none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Success reports whether the last response had a 2XX status.
func (e *Execution) Success() bool {
	code := e.StatusCode()
	return code >= 200 && code <= 299
}

// Header returns the headers of the last response. The result is nil,
// and safe to read, if there is no response.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Duration returns zero before the execution starts, the time elapsed
// since Start while it runs, and End minus Start once it has ended.
func (e *Execution) Duration() time.Duration {
	switch {
	case !e.Started():
		return 0
	case !e.Ended():
		return time.Since(e.Start)
	default:
		return e.End.Sub(e.Start)
	}
}

// Started reports whether Start is set.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended reports whether End is set. An ended execution no longer
// changes.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout reports whether Err is currently a timeout, whether of the
// attempt or of the whole plan.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue attaches a value to the execution under key. Keys follow
// the rules of context.WithValue: they must be comparable and should be
// of an unexported type to avoid collisions between handlers.
func (e *Execution) SetValue(key, value interface{}) {
	parent := e.data
	if parent == nil {
		parent = context.Background()
	}
	e.data = context.WithValue(parent, key, value)
}

// Value returns the value attached under key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
