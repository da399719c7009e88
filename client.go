// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gogama/restx/payload"
	"github.com/gogama/restx/request"
	"github.com/gogama/restx/result"
	"github.com/gogama/restx/timeout"
	"github.com/gogama/restx/transport"
	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/time/rate"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client is an HTTP client for REST endpoints with retry support.
// Its zero value is a valid configuration.
//
// The zero value client uses the package default Config (see
// DefaultConfig), an *http.Client built by transport.NewClient as the
// HTTPDoer, and an empty handler group (no event handlers/plug-ins).
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines,
// but must not be copied after first use.
//
// Start a request with Get, Post, Put or Delete, which return a
// Builder:
//
//	resp, err := client.Get("/items").Param("page", 2).AsJSONArray()
//
// On top of the features of the HTTPDoer, Client adds the following:
//
// • Client encodes the request payload, compressing it on request;
//
// • Client reads, decodes and classifies the response body according
// to the result kind the caller asks for;
//
// • Client retries failed request attempts using the retry policy of
// its Config, up to the retry count of each request plan;
//
// • Client sets connect and read timeouts on individual request
// attempts using the timeout policy of its Config; and
//
// • Client invokes user-provided handler functions at designated plug-in
// points within the attempt/retry loop, allowing new features to be
// mixed in from outside libraries.
type Client struct {
	// Config holds the shared defaults. If nil, a package default
	// Config as returned by DefaultConfig is used.
	Config *Config

	// BaseURI is prefixed to the path of Builder requests whose path
	// is not an absolute URI. It overrides Config.BaseURI.
	BaseURI string

	// Header holds default header fields for this client's requests.
	// They override same-named Config headers, and are overridden by
	// plan headers.
	Header http.Header

	// FollowRedirects is the redirect default for requests which do
	// not set their own. If nil, redirects are followed.
	//
	// It only takes effect if HTTPDoer is nil, or is an *http.Client
	// whose CheckRedirect is transport.CheckRedirect.
	FollowRedirects *bool

	// TLSClientConfig is the TLS configuration of the default
	// HTTPDoer. It is ignored if HTTPDoer is not nil.
	TLSClientConfig *tls.Config

	// VerifyConnection, if not nil, is called after the normal TLS
	// certificate verification by the default HTTPDoer. It is ignored
	// if HTTPDoer is not nil.
	VerifyConnection func(tls.ConnectionState) error

	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, an *http.Client built by transport.NewClient
	// from the fields above is used.
	HTTPDoer HTTPDoer

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	// Limiter, if not nil, rate limits request attempts. Every
	// attempt, including every retry, waits for the limiter first.
	Limiter *rate.Limiter

	once        sync.Once
	defaultDoer HTTPDoer
	doerErr     error
}

// Get starts a GET request to pathOrURI.
func (c *Client) Get(pathOrURI string) *Builder {
	return newBuilder(c, http.MethodGet, pathOrURI)
}

// Post starts a POST request to pathOrURI.
func (c *Client) Post(pathOrURI string) *Builder {
	return newBuilder(c, http.MethodPost, pathOrURI)
}

// Put starts a PUT request to pathOrURI.
func (c *Client) Put(pathOrURI string) *Builder {
	return newBuilder(c, http.MethodPut, pathOrURI)
}

// Delete starts a DELETE request to pathOrURI.
func (c *Client) Delete(pathOrURI string) *Builder {
	return newBuilder(c, http.MethodDelete, pathOrURI)
}

// Do executes an HTTP request plan and returns the results, following
// the timeout and retry policies of the client's Config, and low-level
// policy set on the underlying HTTPDoer. Parameter k is the result kind
// the caller expects, which decides how a successful response body is
// decoded.
//
// The plan is validated before anything is sent. A plan which asks for
// a body on GET or DELETE, for more retries than the retry policy
// permits, or carries an invalid header, fails with an
// *request.ArgumentError and no network I/O.
//
// The result returned is the result after the final HTTP request
// attempt made during the plan execution, as determined by the plan's
// retry count and the retry policy. An attempt which fails with a
// transport error, or receives a response whose status the policy
// considers worth retrying, is retried while retries remain and the
// policy does not say Stop.
//
// An error is returned if the final attempt resulted in an error: a
// *TransportError for a network failure, timeout, or unsupported
// response encoding; or a *result.DecodeError for a 2XX body that
// does not match k. A DecodeError is never retried. A non-2XX status
// code in the final attempt does not result in an error unless the
// plan's EnsureSuccess is set, in which case the error is a
// *StatusError.
//
// The returned Execution is never nil. If the returned error is nil,
// it holds a non-nil Response, and for 2XX responses the decoded
// Result (or, for result.Stream, the Stream which the caller must
// close).
func (c *Client) Do(p *request.Plan, k result.Kind) (*request.Execution, error) {
	e := &request.Execution{
		Plan: p,
		Kind: k,
	}

	cfg := c.config()
	retryPolicy := cfg.retryPolicy()
	timeoutPolicy := cfg.timeoutPolicy()
	logger := cfg.logger()

	if err := p.Validate(retryPolicy.MaxRetries()); err != nil {
		e.Err = err
		return e, err
	}
	enc, err := cfg.encoding()
	if err != nil {
		e.Err = err
		return e, err
	}
	body, err := cfg.encoder(p, enc).Encode(p.Content())
	if err != nil {
		e.Err = &request.ArgumentError{Arg: "body", Msg: "cannot encode payload", Err: err}
		return e, e.Err
	}
	defer func() {
		_ = body.Close()
	}()
	doer, err := c.doer()
	if err != nil {
		e.Err = err
		return e, err
	}

	if id, err := uuid.NewV7(); err == nil {
		e.ID = id.String()
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	for {
		c.sendAndReceive(e, doer, handlers, timeoutPolicy, body, enc)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, e)
		}
		handlers.run(AfterAttempt, e)
		logger.Debug("restx attempt",
			slog.String("id", e.ID),
			slog.Int("attempt", e.Attempt),
			slog.Int("status", e.StatusCode()),
			slog.Any("err", e.Err))

		planCtxErr := p.Context().Err()
		if planCtxErr == context.DeadlineExceeded {
			handlers.run(AfterPlanTimeout, e)
			break
		} else if planCtxErr != nil {
			closeStream(e)
			e.Err = transportErr(p, planCtxErr)
			break
		}

		if !retryable(e) {
			break
		}
		d := retryPolicy.Decide(e)
		if !d.Retry() {
			break
		}
		wait := time.Duration(0)
		if p.WaitExponential {
			wait = d.Wait()
		}
		handlers.run(BeforeBackoff, e)
		logger.Debug("restx backoff",
			slog.String("id", e.ID),
			slog.Int("attempt", e.Attempt),
			slog.Duration("wait", wait))
		if err := retryPolicy.Sleep(p.Context(), wait); err != nil {
			closeStream(e)
			e.Err = transportErr(p, err)
			if err == context.DeadlineExceeded {
				handlers.run(AfterPlanTimeout, e)
			}
			break
		}
		closeStream(e)
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Result = nil
		e.ErrorBody = nil
		e.Attempt++
	}

	if e.Err == nil && p.EnsureSuccess && !e.Success() {
		e.Err = &StatusError{
			StatusCode: e.StatusCode(),
			Message:    statusText(e.Response),
			ErrorBody:  e.ErrorBody,
			Execution:  e,
		}
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, e)
	logger.Info("restx execution",
		slog.String("id", e.ID),
		slog.String("method", p.Method),
		slog.String("url", p.Target().String()),
		slog.Int("attempts", e.Attempt+1),
		slog.Int("status", e.StatusCode()),
		slog.Duration("duration", e.Duration()),
		slog.Any("err", e.Err))
	return e, e.Err
}

// retryable reports whether the attempt just ended may be retried at
// all: the plan has retries left, and the attempt did not fail in a way
// no retry can fix, namely a successful response which failed to
// decode, or a response with an unsupported Content-Encoding.
func retryable(e *request.Execution) bool {
	if e.Attempt >= e.Plan.Retries {
		return false
	}
	var decodeErr *result.DecodeError
	var encodingErr *transport.UnsupportedEncodingError
	return !errors.As(e.Err, &decodeErr) && !errors.As(e.Err, &encodingErr)
}

func closeStream(e *request.Execution) {
	if e.Stream != nil {
		_ = e.Stream.Close()
		e.Stream = nil
	}
}

func (c *Client) sendAndReceive(e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy, body *payload.Body, enc encoding.Encoding) {
	p := e.Plan
	if c.Limiter != nil {
		if err := c.Limiter.Wait(p.Context()); err != nil {
			e.Err = transportErr(p, err)
			return
		}
	}

	to := timeout.Effective(timeoutPolicy, e)
	ctx := transport.WithConnectTimeout(p.Context(), to.Connect)
	ctx = transport.WithUseCaches(ctx, p.UseCaches)
	if follow := c.followRedirects(p); follow != nil {
		ctx = transport.WithFollowRedirects(ctx, *follow)
	}
	ctx, wd := transport.NewWatchdog(ctx, to.Read)

	r, err := p.ToRequest(ctx, c.header(p, e.Kind), body)
	if err != nil {
		wd.Stop()
		e.Err = transportErr(p, err)
		return
	}
	e.Request = r
	handlers.run(BeforeAttempt, e)
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		wd.Stop()
		e.Err = transportErr(p, wd.Err(err))
		return
	}
	readBody(e, handlers, wd, enc)
}

func readBody(e *request.Execution, handlers *HandlerGroup, wd *transport.Watchdog, enc encoding.Encoding) {
	p := e.Plan
	handlers.run(BeforeReadBody, e)
	rc, err := transport.Decode(e.Response.Header.Get("Content-Encoding"), wd.Body(e.Response.Body))
	if err != nil {
		_ = e.Response.Body.Close()
		wd.Stop()
		e.Err = transportErr(p, err)
		return
	}
	if e.Kind == result.Stream && e.Success() {
		e.Stream = rc
		return
	}
	defer func() {
		_ = rc.Close()
	}()
	e.Body, err = io.ReadAll(rc)
	if err != nil {
		e.Body = nil
		e.Err = transportErr(p, err)
		return
	}
	if !e.Success() {
		e.ErrorBody = result.Failure(e.Kind, e.Response.Header.Get("Content-Type"), e.Body)
		return
	}
	e.Result, e.Err = result.Success(e.Kind, e.Body, enc)
}

// header merges the Config, Client and plan headers, in increasing
// order of precedence. JSON result kinds ask for JSON unless an Accept
// field is already present.
func (c *Client) header(p *request.Plan, k result.Kind) http.Header {
	h := make(http.Header)
	for _, src := range []http.Header{c.config().Header, c.Header, p.Header} {
		for name, values := range src {
			h[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
		}
	}
	if k.IsJSON() && h.Get("Accept") == "" {
		h.Set("Accept", payload.ContentTypeJSON)
	}
	return h
}

func (c *Client) followRedirects(p *request.Plan) *bool {
	if p.FollowRedirects != nil {
		return p.FollowRedirects
	}
	return c.FollowRedirects
}

func (c *Client) config() *Config {
	if c.Config == nil {
		return defaultConfig
	}
	return c.Config
}

func (c *Client) doer() (HTTPDoer, error) {
	if c.HTTPDoer != nil {
		return c.HTTPDoer, nil
	}

	c.once.Do(func() {
		follow := true
		if c.FollowRedirects != nil {
			follow = *c.FollowRedirects
		}
		c.defaultDoer, c.doerErr = transport.NewClient(transport.Options{
			TLSClientConfig:  c.TLSClientConfig,
			VerifyConnection: c.VerifyConnection,
			FollowRedirects:  follow,
		})
	})
	return c.defaultDoer, c.doerErr
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer, err := c.doer()
	if err != nil {
		return
	}
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
