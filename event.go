// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import "strconv"

// An Event names a plug-in point in the execution of a request plan.
// Handlers installed for an Event in a Client's HandlerGroup run, in
// installation order, each time the client reaches that point.
type Event int

const (
	// BeforeExecutionStart fires once, after the plan has been
	// validated and its payload encoded, and before the first attempt.
	// The execution has its Plan, Kind and ID set and nothing else.
	BeforeExecutionStart Event = iota

	// BeforeAttempt fires before each attempt, once the HTTP request
	// for it has been built with the merged headers and the encoded
	// body. Handlers may change e.Request, for example to sign it, but
	// should clone its URL and Header first.
	BeforeAttempt

	// BeforeReadBody fires when an attempt produced a response, of any
	// status, before the body is unwrapped from its Content-Encoding
	// and read. It never fires for an attempt which failed to produce
	// a response.
	BeforeReadBody

	// AfterAttemptTimeout fires after an attempt which ended in a
	// connect, read, or plan timeout. The attempt timeout counter has
	// already been incremented.
	AfterAttemptTimeout

	// AfterAttempt fires after every attempt. At least one of
	// e.Response and e.Err is set. Both are set when the response
	// arrived but its body could not be unwrapped, read, or decoded
	// into the requested result kind. For a response, exactly one of
	// e.Result, e.ErrorBody and e.Stream may be set, depending on the
	// status and the result kind.
	AfterAttempt

	// BeforeBackoff fires when the retry policy decided to retry the
	// attempt just ended, before the client waits. The wait is zero
	// unless the plan asks for exponential waiting.
	BeforeBackoff

	// AfterPlanTimeout fires when the deadline of the plan context has
	// passed, either during an attempt or during a backoff wait. No
	// further attempt is made.
	AfterPlanTimeout

	// AfterExecutionEnd fires once, after the last attempt, with End
	// set. If the plan demanded success and did not get it, e.Err is
	// already the *StatusError the caller will receive.
	AfterExecutionEnd

	numEvents = int(AfterExecutionEnd) + 1
)

var eventNames = [numEvents]string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"BeforeBackoff",
	"AfterPlanTimeout",
	"AfterExecutionEnd",
}

// Events returns every Event in the order they can fire during one
// execution.
func Events() []Event {
	evts := make([]Event, numEvents)
	for i := range evts {
		evts[i] = Event(i)
	}
	return evts
}

// Name returns the name of the event, for example "BeforeAttempt".
func (evt Event) Name() string {
	if !evt.valid() {
		return "Event(" + strconv.Itoa(int(evt)) + ")"
	}
	return eventNames[evt]
}

func (evt Event) String() string {
	return evt.Name()
}

func (evt Event) valid() bool {
	return evt >= 0 && int(evt) < numEvents
}
