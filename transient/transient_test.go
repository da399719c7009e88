// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct {
	timeout bool
	cause   error
}

func (err timeoutErr) Error() string { return fmt.Sprintf("timeout=%t: %v", err.timeout, err.cause) }
func (err timeoutErr) Timeout() bool  { return err.timeout }
func (err timeoutErr) Unwrap() error  { return err.cause }

func wrap(err error) error {
	return fmt.Errorf("wrapped: %w", err)
}

func TestCategorize(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Category
	}{
		{"nil", nil, Not},
		{"plain", errors.New("malformed header"), Not},
		{"wrapped plain", wrap(errors.New("x")), Not},
		{"host unreachable", syscall.EHOSTUNREACH, Not},
		{"ETIMEDOUT", syscall.ETIMEDOUT, Timeout},
		{"url timeout", &url.Error{Op: "Get", URL: "u", Err: syscall.ETIMEDOUT}, Timeout},
		{"deadline", wrap(context.DeadlineExceeded), Timeout},
		{"timeout beats reset", timeoutErr{true, syscall.ECONNRESET}, Timeout},
		{"dns timeout", &net.DNSError{Err: "timeout", IsTimeout: true}, Timeout},
		{"refused", syscall.ECONNREFUSED, ConnRefused},
		{"dial refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, ConnRefused},
		{"non-timeout wrapper", wrap(timeoutErr{false, syscall.ECONNREFUSED}), ConnRefused},
		{"reset", wrap(syscall.ECONNRESET), ConnReset},
		{"op error", &net.OpError{Op: "read", Err: errors.New("broken")}, Network},
		{"truncated body", &url.Error{Op: "Get", URL: "u", Err: io.ErrUnexpectedEOF}, Network},
		{"closed connection", wrap(net.ErrClosed), Network},
		{"clean EOF", io.EOF, Not},
		{"dns error", &url.Error{Op: "Get", URL: "u", Err: &net.DNSError{Err: "no such host", Name: "x"}}, Network},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Categorize(testCase.err))
			assert.Equal(t, testCase.expected != Not, Recoverable(testCase.err))
		})
	}
}

func TestCategory_String(t *testing.T) {
	names := map[Category]string{
		Not:          "Not",
		Timeout:      "Timeout",
		ConnRefused:  "ConnRefused",
		ConnReset:    "ConnReset",
		Network:      "Network",
		Category(-1): "Unknown",
		Category(99): "Unknown",
	}
	for cat, name := range names {
		assert.Equal(t, name, cat.String())
	}
}
