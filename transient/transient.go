// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// A Category tells whether an attempt error is worth retrying, and if
// so, what kind of failure it was. Every category except Not is
// recoverable.
type Category int

const (
	// Not is the category of nil and of every error a retry is not
	// expected to fix, such as a protocol violation or an unsupported
	// Content-Encoding.
	Not Category = iota

	// Timeout is the category of an error which, itself or through a
	// wrapped cause, has a Timeout method returning true. It covers
	// connect and read timeouts as well as an exceeded context
	// deadline.
	Timeout

	// ConnRefused means the connection was refused (ECONNREFUSED),
	// as happens while the server restarts.
	ConnRefused

	// ConnReset means the peer reset an established connection
	// (ECONNRESET).
	ConnReset

	// Network covers any other *net.OpError or *net.DNSError, and a
	// connection which closed early: io.ErrUnexpectedEOF, returned when
	// a response body is cut short, or net.ErrClosed.
	Network
)

var categoryNames = [...]string{
	Not:         "Not",
	Timeout:     "Timeout",
	ConnRefused: "ConnRefused",
	ConnReset:   "ConnReset",
	Network:     "Network",
}

func (cat Category) String() string {
	if cat < 0 || int(cat) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[cat]
}

// Categorize returns the category of err, looking through wrapped
// causes. Checks run in order: timeout, then connection refused or
// reset, then generic network failure or early close. Temporary methods are ignored.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var t interface{ Timeout() bool }
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ConnRefused
	case errors.Is(err, syscall.ECONNRESET):
		return ConnReset
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return Network
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, net.ErrClosed):
		return Network
	}

	return Not
}

// Recoverable reports whether err is in any category but Not.
func Recoverable(err error) bool {
	return Categorize(err) != Not
}
