// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"fmt"
	"strings"

	"github.com/gogama/restx/request"
	"github.com/gogama/restx/transient"
)

// A TransportError reports a failed request attempt: a network
// failure while connecting, writing the request, or reading the
// response; a connect or read timeout; a cancelled plan context; an
// unsupported response Content-Encoding; or a failure to produce a
// streamed request body.
//
// It is modelled on url.Error. Whether a TransportError is retried is
// up to the retry policy, which by default retries only transient
// network failures (see package transient).
type TransportError struct {
	// Op is the HTTP method, in the style of url.Error, e.g. "Get".
	Op string
	// URL is the target URL of the request.
	URL string
	// Err is the underlying cause.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("restx: %s %q: %s", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the cause is a timeout.
func (e *TransportError) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// A StatusError is returned when a plan demands success and the final
// response status code is not 2XX.
type StatusError struct {
	// StatusCode is the final response status code.
	StatusCode int
	// Message is the final response status text, e.g. "404 Not Found".
	Message string
	// ErrorBody is the decoded response body, as in
	// request.Execution.ErrorBody.
	ErrorBody interface{}
	// Execution is the final execution state, for inspection.
	Execution *request.Execution
}

func (e *StatusError) Error() string {
	return "restx: unsuccessful status " + e.Message
}

func transportErr(p *request.Plan, err error) error {
	if _, ok := err.(*TransportError); ok {
		return err
	}

	return &TransportError{
		Op:  errorOp(p.Method),
		URL: p.Target().String(),
		Err: err,
	}
}

// errorOp is lifted from urlErrorOp in net/http/client.go.
func errorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
