// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gogama/restx/request"
)

// A Response is the typed outcome of a Builder request: the decoded
// body of a successful response, or the best-effort error body of an
// unsuccessful one, plus the headers and status of the final attempt.
type Response[T any] struct {
	// Body is the decoded body if the status is 2XX, and the zero
	// value of T otherwise.
	Body T

	// ErrorBody is the decoded body if the status is not 2XX: nil, a
	// []byte, a string, or a parsed JSON value.
	ErrorBody interface{}

	// Execution is the final execution state.
	Execution *request.Execution
}

func newResponse[T any](e *request.Execution) *Response[T] {
	r := &Response[T]{
		ErrorBody: e.ErrorBody,
		Execution: e,
	}
	if v, ok := e.Result.(T); ok {
		r.Body = v
	} else if e.Stream != nil {
		if v, ok := interface{}(e.Stream).(T); ok {
			r.Body = v
		}
	}
	return r
}

// StatusCode returns the HTTP status code.
func (r *Response[T]) StatusCode() int {
	return r.Execution.StatusCode()
}

// StatusLine returns the status line, for example "HTTP/1.1 200 OK".
func (r *Response[T]) StatusLine() string {
	resp := r.Execution.Response
	proto := resp.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	return proto + " " + statusText(resp)
}

// IsSuccess reports whether the status code is 2XX.
func (r *Response[T]) IsSuccess() bool {
	return r.Execution.Success()
}

// EnsureSuccess returns a *StatusError if the status code is not 2XX,
// and nil otherwise.
func (r *Response[T]) EnsureSuccess() error {
	if r.IsSuccess() {
		return nil
	}
	return &StatusError{
		StatusCode: r.StatusCode(),
		Message:    statusText(r.Execution.Response),
		ErrorBody:  r.ErrorBody,
		Execution:  r.Execution,
	}
}

// Header returns the first value of the named response header field,
// or the empty string.
func (r *Response[T]) Header(name string) string {
	return r.Execution.Header().Get(name)
}

// ContentType returns the Content-Type response header.
func (r *Response[T]) ContentType() string {
	return r.Header("Content-Type")
}

// HeaderInt returns the named header field parsed as an integer, or
// def if the field is absent or not an integer.
func (r *Response[T]) HeaderInt(name string, def int64) int64 {
	v, err := strconv.ParseInt(r.Header(name), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// HeaderDate returns the named header field parsed as an HTTP date,
// or the zero time if the field is absent or not a date.
func (r *Response[T]) HeaderDate(name string) time.Time {
	t, err := http.ParseTime(r.Header(name))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Date returns the Date response header as a time.
func (r *Response[T]) Date() time.Time {
	return r.HeaderDate("Date")
}

// Expiration returns the Expires response header as a time.
func (r *Response[T]) Expiration() time.Time {
	return r.HeaderDate("Expires")
}

// LastModified returns the Last-Modified response header as a time.
func (r *Response[T]) LastModified() time.Time {
	return r.HeaderDate("Last-Modified")
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
