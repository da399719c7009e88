// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"fmt"
	"time"

	"github.com/gogama/restx/request"
)

// Timeouts holds the connect and read timeouts of one request attempt.
// A zero value for either field means the timeout is not set, and the
// platform default (no limit) applies.
type Timeouts struct {
	// Connect bounds the time to establish the connection to the
	// remote host.
	Connect time.Duration
	// Read bounds the time the client waits for the server to send
	// data: from the moment the request is written until the response
	// headers arrive, and between any two reads of the response body.
	Read time.Duration
}

func (t Timeouts) String() string {
	return fmt.Sprintf("connect=%s read=%s", t.Connect, t.Read)
}

// A Policy chooses the connect and read timeouts of each attempt of
// a plan execution, the initial one and every retry. A Policy is
// consulted from whichever goroutine runs the execution, so it must be
// safe for concurrent use.
type Policy interface {
	// Timeout returns the timeouts for the attempt about to start. The
	// execution still holds the outcome of the previous attempt, if
	// any.
	Timeout(e *request.Execution) Timeouts
}

// Default connect and read timeouts of DefaultPolicy.
const (
	DefaultConnect = 10 * time.Second
	DefaultRead    = 60 * time.Second
)

// DefaultPolicy is the default timeout policy. It sets a fixed connect
// timeout of 10 seconds and a fixed read timeout of 60 seconds on
// each attempt.
var DefaultPolicy = Fixed(DefaultConnect, DefaultRead)

// Platform is a built-in timeout policy which sets no timeouts, leaving
// the platform defaults in place.
var Platform = Fixed(0, 0)

// Fixed returns a policy giving every attempt the same timeouts.
func Fixed(connect, read time.Duration) Policy {
	return policy{connect: connect, read: []time.Duration{read}}
}

// Adaptive returns a policy which lengthens the read timeout after an
// attempt times out. It suits a service with occasional slow responses
// that a quick timeout and retry cures, and which also goes through
// bursts of general slowness where a quick timeout would fail every
// attempt.
//
// The connect timeout is always connect. An attempt following one that
// did not time out gets the usual read timeout. An attempt following
// the n-th timeout of the execution gets escalate[n-1], or the last
// element of escalate once n exceeds its length. For example
//
//	Adaptive(time.Second, 2*time.Second, 5*time.Second, 30*time.Second)
//
// reads for 2s normally, for 5s right after the first timeout, and for
// 30s after any later one.
func Adaptive(connect, usual time.Duration, escalate ...time.Duration) Policy {
	return policy{connect: connect, read: append([]time.Duration{usual}, escalate...)}
}

type policy struct {
	connect time.Duration
	read    []time.Duration
}

// Timeout indexes read by the number of timeouts so far, but only
// when the previous attempt was itself one of them.
func (p policy) Timeout(e *request.Execution) Timeouts {
	n := 0
	if e.Timeout() {
		n = min(e.AttemptTimeouts, len(p.read)-1)
	}
	return Timeouts{Connect: p.connect, Read: p.read[n]}
}

// Effective returns the timeouts of the next attempt in e: the
// policy's timeouts, overridden by the plan's ConnectTimeout and
// ReadTimeout when those are set. A nil policy means Platform.
func Effective(p Policy, e *request.Execution) Timeouts {
	if p == nil {
		p = Platform
	}
	t := p.Timeout(e)
	if e.Plan != nil {
		if e.Plan.ConnectTimeout != nil {
			t.Connect = *e.Plan.ConnectTimeout
		}
		if e.Plan.ReadTimeout != nil {
			t.Read = *e.Plan.ReadTimeout
		}
	}
	if t.Connect < 0 {
		t.Connect = 0
	}
	if t.Read < 0 {
		t.Read = 0
	}
	return t
}
