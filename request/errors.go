// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// An ArgumentError reports an invalid request plan: a body on a GET or
// DELETE, a missing target URL, an empty header name or value, or a
// retry count outside the retry policy's limits.
//
// An ArgumentError is always detected before any network I/O and is
// never retried.
type ArgumentError struct {
	// Arg names the offending plan element, for example "url" or
	// "header".
	Arg string
	// Msg describes the problem.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ArgumentError) Error() string {
	s := "restx/request: invalid " + e.Arg + ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func argErr(arg, msg string) *ArgumentError {
	return &ArgumentError{Arg: arg, Msg: msg}
}
