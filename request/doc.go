// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes an HTTP request
plan) and Execution (describes a Plan execution).

A Plan describes how to make a logical HTTP request, potentially
involving repeated HTTP request attempts if retry is necessary after a
failure. It holds the method (GET, POST, PUT or DELETE), the target URL,
ordered parameters, header overrides, a payload, and the per-request
settings: compression, caching, timeout overrides, conditional request
time, redirect override, retry count and success requirement.

Create a plan and execute it:

	p, err := request.NewPlan("POST", "https://example.com/items")
	...
	p.Payload = payload.JSON(item)
	p.Retries = 2
	e, err := client.Do(p, result.JSONObject)
	...

A plan is validated before any network I/O: a body on GET or DELETE, an
invalid header, or a retry count the retry policy does not permit gives
an *ArgumentError.

A plan may be assigned a context to allow a deadline to be set on the
entire plan execution, and to allow the plan execution to be cancelled:

	p, err := request.NewPlanWithContext(ctx, "GET", "https://example.com")

If a deadline is set on the plan context, it is separate from the
timeouts set on individual request attempts, which are dictated by the
client's timeout.Policy. An individual request attempt may therefore
fail due either to an attempt timeout or to a plan timeout. The former
is potentially retryable, the latter is not.

The second core type is Execution, which represents the state of the
execution of an HTTP request plan. Execution is both the output type of
restx.Client.Do, and the input type for callbacks invoked during plan
execution: timeout policies, retry policies, and event handlers.
*/
package request
