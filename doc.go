// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package restx provides an HTTP client for REST endpoints with typed
results, sequential retries and per-attempt timeouts, within a fluent
and familiar interface.

Create a Client to begin making requests, then build each request with
one of its Get, Post, Put or Delete methods and execute it with an As
method naming the result you expect:

	client := &restx.Client{BaseURI: "https://api.example.com"}
	resp, err := client.Get("/items").Param("page", 2).AsJSONArray()
	...
	resp, err := client.Post("/items").
		BodyJSON(item).
		Retry(2, true).
		EnsureSuccess().
		AsJSONObject()

A successful (2XX) response body is decoded according to the declared
result kind, ignoring the response Content-Type. An unsuccessful
response is not an error unless EnsureSuccess is requested; its body is
kept as Response.ErrorBody in the most specific representation that
works: raw bytes, parsed JSON, or text.

Shared defaults live in a Config: global headers, a base URI, and the
timeout and retry policies. Client fields override the Config, and
request fields override the client:

	cfg := restx.DefaultConfig()
	cfg.Header.Set("User-Agent", "inventory/1.0")
	cfg.RetryPolicy = retry.NewPolicy(3, retry.DefaultDecider,
		retry.NewExpWaiter(250*time.Millisecond, 5*time.Second, 0.5))
	cfg.TimeoutPolicy = timeout.Fixed(5*time.Second, 30*time.Second)
	cfg.Logger = slog.Default()
	client := &restx.Client{Config: cfg}

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. Connect timeouts and redirect
settings are only honored by clients built with package transport:

	doer, err := transport.NewClient(transport.Options{FollowRedirects: true})
	...
	client := &restx.Client{HTTPDoer: doer}

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain:

	handlers := &restx.HandlerGroup{}
	handlers.PushBack(restx.BeforeAttempt, restx.HandlerFunc(
		func(_ restx.Event, e *request.Execution) {
			log.Printf("Attempt %d to %s", e.Attempt, e.Request.URL)
		}),
	)
	client := &restx.Client{Handlers: handlers}

Package metrics uses this mechanism to export Prometheus metrics.

Package restx also provides the basic interfaces Doer and IdleCloser, a
combined interface Executor, and utility functions for working with a
Doer (Get, Delete, Post, Put and PostForm).
*/
package restx
