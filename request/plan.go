// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"time"

	"github.com/gogama/restx/payload"
)

const nilCtxMsg = "restx/request: nil context"

// A Plan describes a logical HTTP request for a client to execute:
// everything the caller wants from one request/response cycle,
// including how to retry it.
//
// A Plan is built once, typically by the restx.Builder, and then
// treated as immutable. The same Plan is reused unchanged by every
// request attempt of an execution, so nothing in the execution logic
// writes to it.
//
// Cancelling the plan's context stops the execution wherever it is,
// including during a wait between attempts.
type Plan struct {
	// Method specifies the HTTP method: GET, POST, PUT, or DELETE.
	Method string

	// URL specifies the target URL.
	URL *urlpkg.URL

	// Params holds the request parameters. For GET and DELETE they
	// are appended to the URL as a query string, unless the URL
	// already has a query component. For POST and PUT they are sent
	// as a URL-encoded form body, and take precedence over Payload.
	Params Params

	// Header contains the per-request header fields. They override
	// same-named global and client default headers.
	Header http.Header

	// Payload is the request body. It must be empty for GET and
	// DELETE.
	Payload payload.Payload

	// Compress requests gzip compression of the request body.
	Compress bool

	// UseCaches allows a caching layer below the client to answer the
	// request from its cache.
	UseCaches bool

	// ConnectTimeout overrides the timeout policy's connect timeout
	// if non-nil.
	ConnectTimeout *time.Duration

	// ReadTimeout overrides the timeout policy's read timeout if
	// non-nil.
	ReadTimeout *time.Duration

	// IfModifiedSince, if non-zero, is sent as the If-Modified-Since
	// header to make a conditional request.
	IfModifiedSince time.Time

	// FollowRedirects overrides the client's redirect setting if
	// non-nil.
	FollowRedirects *bool

	// Retries is the maximum number of retries after the initial
	// attempt. It may not exceed the retry policy's maximum.
	Retries int

	// WaitExponential makes the execution wait between attempts,
	// for as long as the retry policy says. If false, retries are
	// made immediately.
	WaitExponential bool

	// EnsureSuccess makes the execution fail with an error if the
	// final response status is not 2XX.
	EnsureSuccess bool

	// ctx is only ever replaced by WithContext, on a copy.
	ctx context.Context
}

// NewPlan is NewPlanWithContext with the background context.
func NewPlan(method, url string) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url)
}

// NewPlanWithContext returns a new Plan given a method and a target
// URL. An empty method means GET. The returned error, if any, is an
// *ArgumentError.
func NewPlanWithContext(ctx context.Context, method, url string) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, argErr("method", fmt.Sprintf("%q is not one of GET, POST, PUT, DELETE", method))
	}
	if url == "" {
		return nil, argErr("url", "target URL must not be empty")
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, &ArgumentError{Arg: "url", Msg: "cannot parse target", Err: err}
	}
	u.Host = trimEmptyPort(u.Host)
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
	}, nil
}

// Context returns the plan's context, or the background context if
// none was set. Use WithContext to change it.
func (p *Plan) Context() context.Context {
	if p.ctx == nil {
		return context.Background()
	}
	return p.ctx
}

// WithContext returns a shallow copy of p whose context is ctx. The
// context bounds the whole execution: every attempt, every event
// handler, and every wait between attempts. It panics if ctx is nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	clone := *p
	clone.ctx = ctx
	return &clone
}

// Validate checks the plan for construction errors which must be
// reported before any network I/O. Parameter maxRetries is the largest
// retry count the retry policy permits.
//
// The returned error, if any, is an *ArgumentError.
func (p *Plan) Validate(maxRetries int) error {
	if !validMethod(p.Method) {
		return argErr("method", fmt.Sprintf("%q is not one of GET, POST, PUT, DELETE", p.Method))
	}
	if p.URL == nil || p.URL.String() == "" {
		return argErr("url", "target URL must not be empty")
	}
	if hasBodylessMethod(p.Method) && !p.Payload.Empty() {
		return argErr("body", "body not allowed for "+p.Method+" requests")
	}
	if p.Retries < 0 {
		return argErr("retries", fmt.Sprintf("retry count %d is negative", p.Retries))
	}
	if p.Retries > maxRetries {
		return argErr("retries", fmt.Sprintf("retry count %d exceeds maximum of %d", p.Retries, maxRetries))
	}
	for name, values := range p.Header {
		for _, value := range values {
			if _, err := HeaderValue(name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Content returns the payload the plan sends: a form built from the
// parameters if the method carries a body and there are parameters,
// otherwise the plan's Payload. GET and DELETE never send content.
func (p *Plan) Content() payload.Payload {
	if hasBodylessMethod(p.Method) {
		return payload.None()
	}
	if p.Params.Len() > 0 {
		return payload.Form(p.Params.Encode())
	}
	return p.Payload
}

// Target returns the URL to request. For GET and DELETE plans with
// parameters whose URL has no query component, it is the URL with the
// encoded parameters appended as the query. Otherwise it is URL
// itself.
func (p *Plan) Target() *urlpkg.URL {
	if !hasBodylessMethod(p.Method) || p.Params.Len() == 0 || p.URL.RawQuery != "" || p.URL.ForceQuery {
		return p.URL
	}
	u := *p.URL
	u.RawQuery = p.Params.Encode()
	return &u
}

// AddCookie appends the name and value of c to the plan's single
// Cookie header, creating it if needed. Other cookie attributes are
// dropped since they have no meaning in a request.
func (p *Plan) AddCookie(c *http.Cookie) {
	pair := (&http.Cookie{Name: c.Name, Value: c.Value}).String()
	if prior := p.Header.Get("Cookie"); prior != "" {
		pair = prior + "; " + pair
	}
	p.Header.Set("Cookie", pair)
}

// SetBasicAuth sets the Authorization header for HTTP Basic
// authentication (RFC 7617). The credentials are only encoded, not
// encrypted.
func (p *Plan) SetBasicAuth(username, password string) {
	creds := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	p.Header.Set("Authorization", "Basic "+creds)
}

// ToRequest creates the HTTP request for one attempt of the plan.
//
// Parameter header is the fully merged header to send; ToRequest
// takes ownership of it and adds the Content-Type (only if absent),
// Content-Encoding and If-Modified-Since fields. Parameter body is the
// encoded Content of the plan. If body is streaming, it is opened here
// and the request owns the opened stream.
func (p *Plan) ToRequest(ctx context.Context, header http.Header, body *payload.Body) (*http.Request, error) {
	target := p.Target()
	r := (&http.Request{
		Method:     p.Method,
		URL:        target,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     header,
		Host:       target.Host,
	}).WithContext(ctx)
	if !body.Empty() && !hasBodylessMethod(p.Method) {
		if header.Get("Content-Type") == "" && body.ContentType != "" {
			header.Set("Content-Type", body.ContentType)
		}
		if body.ContentEncoding != "" {
			header.Set("Content-Encoding", body.ContentEncoding)
		}
		if body.Streaming() {
			rc, err := body.Open()
			if err != nil {
				return nil, err
			}
			r.Body = rc
			r.ContentLength = body.Length
		} else if data := body.Bytes(); len(data) > 0 {
			r.Body = io.NopCloser(bytes.NewReader(data))
			r.GetBody = func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(data)), nil
			}
			r.ContentLength = int64(len(data))
		} else {
			r.Body = http.NoBody
			r.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
		}
	}
	if !p.IfModifiedSince.IsZero() {
		header.Set("If-Modified-Since", FormatValue(p.IfModifiedSince))
	}
	return r, nil
}

// trimEmptyPort turns "host:" into "host", as RFC 3986 section 6.2.3
// asks. A host ending in a colon always has an empty port, bracketed
// IPv6 literals included.
func trimEmptyPort(host string) string {
	return strings.TrimSuffix(host, ":")
}
