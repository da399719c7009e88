// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gogama/restx/payload"
	"github.com/gogama/restx/request"
	"github.com/gogama/restx/result"
)

// A Builder assembles one request with a fluent interface and executes
// it with one of the As methods, which name the expected result kind:
//
//	resp, err := client.Post("/items").
//		Header("X-Trace", traceID).
//		BodyJSON(item).
//		Retry(2, true).
//		EnsureSuccess().
//		AsJSONObject()
//
// The first invalid argument given to a Builder method is remembered
// and returned, as a *request.ArgumentError, by Plan and every As
// method, before any network I/O. A Builder is not safe for concurrent
// use and should not be reused after an As method.
type Builder struct {
	client *Client
	method string
	target string
	ctx    context.Context
	err    error

	params          request.Params
	header          http.Header
	cookies         []*http.Cookie
	user, password  *string
	payload         payload.Payload
	compress        bool
	useCaches       bool
	ifModifiedSince time.Time
	connectTimeout  *time.Duration
	readTimeout     *time.Duration
	followRedirects *bool
	retries         int
	waitExponential bool
	ensureSuccess   bool
}

func newBuilder(c *Client, method, pathOrURI string) *Builder {
	return &Builder{
		client: c,
		method: method,
		target: c.resolve(pathOrURI),
		ctx:    context.Background(),
		header: make(http.Header),
	}
}

// resolve prefixes pathOrURI with the client's base URI, or else the
// Config's, unless pathOrURI is already an absolute URI.
func (c *Client) resolve(pathOrURI string) string {
	if u, err := url.Parse(pathOrURI); err == nil && u.IsAbs() {
		return pathOrURI
	}
	base := c.BaseURI
	if base == "" {
		base = c.config().BaseURI
	}
	return base + pathOrURI
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Param sets a request parameter. Values are rendered with
// request.FormatValue. For GET and DELETE, parameters form the query
// string; for POST and PUT they form a URL-encoded body, replacing any
// other body.
func (b *Builder) Param(name string, value interface{}) *Builder {
	b.params.Set(name, value)
	return b
}

// Header sets a request header field, replacing any default of the
// same name. A time.Time value is formatted as an HTTP date. An empty
// name or a nil value is an argument error.
func (b *Builder) Header(name string, value interface{}) *Builder {
	s, err := request.HeaderValue(name, value)
	if err != nil {
		return b.fail(err)
	}
	b.header.Set(name, s)
	return b
}

// Cookie adds a cookie to the request's Cookie header.
func (b *Builder) Cookie(c *http.Cookie) *Builder {
	if c == nil || c.Name == "" {
		return b.fail(&request.ArgumentError{Arg: "cookie", Msg: "cookie must have a name"})
	}
	b.cookies = append(b.cookies, c)
	return b
}

// BasicAuth authenticates the request with HTTP Basic credentials,
// replacing any Authorization header.
func (b *Builder) BasicAuth(user, password string) *Builder {
	b.user, b.password = &user, &password
	return b
}

// Body sets the request payload.
func (b *Builder) Body(p payload.Payload) *Builder {
	b.payload = p
	return b
}

// BodyJSON sets a JSON payload. The value must marshal to a JSON
// object or array.
func (b *Builder) BodyJSON(v interface{}) *Builder {
	return b.Body(payload.JSON(v))
}

// BodyBytes sets a binary payload.
func (b *Builder) BodyBytes(data []byte) *Builder {
	return b.Body(payload.Bytes(data))
}

// BodyText sets a text payload.
func (b *Builder) BodyText(s string) *Builder {
	return b.Body(payload.Text(s))
}

// BodyValue sets a text payload holding the string form of v.
func (b *Builder) BodyValue(v interface{}) *Builder {
	return b.Body(payload.Value(v))
}

// BodyFile sets a payload streamed from the named file.
func (b *Builder) BodyFile(path string) *Builder {
	return b.Body(payload.File(path))
}

// BodyStream sets a payload streamed from r.
func (b *Builder) BodyStream(r io.Reader) *Builder {
	return b.Body(payload.Stream(r))
}

// Compress asks for the request body to be gzip compressed.
func (b *Builder) Compress() *Builder {
	b.compress = true
	return b
}

// UseCaches allows a caching layer below the client to answer the
// request.
func (b *Builder) UseCaches(use bool) *Builder {
	b.useCaches = use
	return b
}

// IfModifiedSince makes the request conditional on the resource having
// changed since t.
func (b *Builder) IfModifiedSince(t time.Time) *Builder {
	b.ifModifiedSince = t
	return b
}

// ConnectTimeout overrides the connect timeout of the timeout policy.
func (b *Builder) ConnectTimeout(d time.Duration) *Builder {
	b.connectTimeout = &d
	return b
}

// ReadTimeout overrides the read timeout of the timeout policy.
func (b *Builder) ReadTimeout(d time.Duration) *Builder {
	b.readTimeout = &d
	return b
}

// FollowRedirects overrides the client's redirect setting.
func (b *Builder) FollowRedirects(follow bool) *Builder {
	b.followRedirects = &follow
	return b
}

// Retry allows up to n retries. If waitExponential is true, the client
// waits between attempts as long as the retry policy says; otherwise it
// retries immediately. The retry count may not exceed the retry
// policy's maximum.
func (b *Builder) Retry(n int, waitExponential bool) *Builder {
	b.retries = n
	b.waitExponential = waitExponential
	return b
}

// EnsureSuccess makes the request fail with a *StatusError if the
// final response status is not 2XX.
func (b *Builder) EnsureSuccess() *Builder {
	b.ensureSuccess = true
	return b
}

// WithContext sets the context controlling the whole execution,
// including backoff waits.
func (b *Builder) WithContext(ctx context.Context) *Builder {
	if ctx == nil {
		return b.fail(&request.ArgumentError{Arg: "context", Msg: "nil context"})
	}
	b.ctx = ctx
	return b
}

// Plan returns the request plan assembled so far, validated against the
// client's retry policy.
func (b *Builder) Plan() (*request.Plan, error) {
	if b.err != nil {
		return nil, b.err
	}
	p, err := request.NewPlanWithContext(b.ctx, b.method, b.target)
	if err != nil {
		return nil, err
	}
	p.Params = b.params.Clone()
	for name, values := range b.header {
		p.Header[name] = append([]string(nil), values...)
	}
	for _, c := range b.cookies {
		p.AddCookie(c)
	}
	if b.user != nil {
		p.SetBasicAuth(*b.user, *b.password)
	}
	p.Payload = b.payload
	p.Compress = b.compress
	p.UseCaches = b.useCaches
	p.IfModifiedSince = b.ifModifiedSince
	p.ConnectTimeout = b.connectTimeout
	p.ReadTimeout = b.readTimeout
	p.FollowRedirects = b.followRedirects
	p.Retries = b.retries
	p.WaitExponential = b.waitExponential
	p.EnsureSuccess = b.ensureSuccess
	if err = p.Validate(b.client.config().retryPolicy().MaxRetries()); err != nil {
		return nil, err
	}
	return p, nil
}

// AsString executes the request and decodes a successful response body
// as text.
func (b *Builder) AsString() (*Response[string], error) {
	return execute[string](b, result.String)
}

// AsBytes executes the request and returns a successful response body
// unchanged.
func (b *Builder) AsBytes() (*Response[[]byte], error) {
	return execute[[]byte](b, result.Bytes)
}

// AsJSONObject executes the request and parses a successful response
// body as a JSON object.
func (b *Builder) AsJSONObject() (*Response[map[string]interface{}], error) {
	return execute[map[string]interface{}](b, result.JSONObject)
}

// AsJSONArray executes the request and parses a successful response
// body as a JSON array.
func (b *Builder) AsJSONArray() (*Response[[]interface{}], error) {
	return execute[[]interface{}](b, result.JSONArray)
}

// AsStream executes the request and returns a successful response body
// as an unbuffered stream, already unwrapped from any gzip or deflate
// Content-Encoding. The caller must close the stream, which releases
// the connection.
func (b *Builder) AsStream() (*Response[io.ReadCloser], error) {
	return execute[io.ReadCloser](b, result.Stream)
}

// AsVoid executes the request and discards a successful response body.
func (b *Builder) AsVoid() (*Response[struct{}], error) {
	return execute[struct{}](b, result.Void)
}

func execute[T any](b *Builder, k result.Kind) (*Response[T], error) {
	p, err := b.Plan()
	if err != nil {
		return nil, err
	}
	e, err := b.client.Do(p, k)
	if e.Response == nil {
		return nil, err
	}
	return newResponse[T](e), err
}
