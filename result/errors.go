// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package result

// A DecodeError reports that a response body could not be decoded into
// the kind the caller declared, for example because the body is not
// well-formed JSON.
//
// A DecodeError is never worth retrying: a malformed body does not
// become well-formed on a second attempt.
type DecodeError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "restx/result: " + e.Msg
	}
	return "restx/result: " + e.Msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
