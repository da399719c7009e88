// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"net/url"

	"github.com/gogama/restx/payload"
	"github.com/gogama/restx/request"
	"github.com/gogama/restx/result"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes an HTTP request plan, decoding a successful response body
// as result kind k, and returns the final execution state (and error,
// if any). Client implements the Doer interface, and any other Doer
// implementation must behave substantially the same as Client.Do.
type Doer interface {
	Do(p *request.Plan, k result.Kind) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any idle which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do and
// CloseIdleConnections methods. Client implements Executor.
type Executor interface {
	Doer
	IdleCloser
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// d.Do, or a Client's Builder.
func Get(d Doer, url string, k result.Kind) (*request.Execution, error) {
	return send(d, "GET", url, payload.None(), k)
}

// Delete uses the specified Doer to issue a DELETE to the specified
// URL, using the same policies as d.Do.
func Delete(d Doer, url string, k result.Kind) (*request.Execution, error) {
	return send(d, "DELETE", url, payload.None(), k)
}

// Post uses the specified Doer to issue a POST of body to the specified
// URL, using the same policies as d.Do. The Content-Type header is
// inferred from the payload kind.
func Post(d Doer, url string, body payload.Payload, k result.Kind) (*request.Execution, error) {
	return send(d, "POST", url, body, k)
}

// Put uses the specified Doer to issue a PUT of body to the specified
// URL, using the same policies as d.Do.
func Put(d Doer, url string, body payload.Payload, k result.Kind) (*request.Execution, error) {
	return send(d, "PUT", url, body, k)
}

// PostForm uses the specified Doer to issue a POST to the specified URL,
// with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
func PostForm(d Doer, url string, data url.Values, k result.Kind) (*request.Execution, error) {
	return send(d, "POST", url, payload.Form(data.Encode()), k)
}

func send(d Doer, method, url string, body payload.Payload, k result.Kind) (*request.Execution, error) {
	p, err := request.NewPlan(method, url)
	if err != nil {
		return nil, err
	}
	p.Payload = body
	return d.Do(p, k)
}
