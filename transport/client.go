// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// Options configures the *http.Client built by NewClient.
type Options struct {
	// TLSClientConfig, if not nil, is the TLS configuration used for
	// HTTPS connections, for example to trust a private certificate
	// authority or to present a client certificate.
	TLSClientConfig *tls.Config

	// VerifyConnection, if not nil, is called after the normal TLS
	// certificate verification of every HTTPS connection. A non-nil
	// return value aborts the handshake.
	VerifyConnection func(tls.ConnectionState) error

	// FollowRedirects is the redirect default for requests whose
	// context carries no setting of its own (see WithFollowRedirects).
	FollowRedirects bool

	// Jar, if not nil, stores and sends cookies.
	Jar http.CookieJar
}

// DialContext returns a dial function which bounds the time to
// connect by the connect timeout carried in the context (see
// WithConnectTimeout). Without one, base alone governs. A nil base
// means a zero net.Dialer with keep-alives.
func DialContext(base *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if base == nil {
		base = &net.Dialer{KeepAlive: 30 * time.Second}
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if d := ConnectTimeout(ctx); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return base.DialContext(ctx, network, addr)
	}
}

// CheckRedirect is an http.Client redirect policy which consults the
// request context (see WithFollowRedirects), falling back to follow
// when the context carries no setting. When following, it stops after
// 10 redirects like the standard library default.
func CheckRedirect(follow bool) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		f, ok := FollowRedirects(req.Context())
		if !ok {
			f = follow
		}
		if !f {
			return http.ErrUseLastResponse
		}
		if len(via) >= 10 {
			return errTooManyRedirects
		}
		return nil
	}
}

type redirectError string

func (e redirectError) Error() string { return string(e) }

const errTooManyRedirects = redirectError("stopped after 10 redirects")

// NewClient builds the default *http.Client of restx: a clone of the
// standard library's default transport, dialing through DialContext,
// with HTTP/2 enabled and its connection health checks configured, and
// the redirect policy CheckRedirect.
//
// The client sets no overall timeout. Connect and read timeouts are
// set per request attempt, through the dialer and a Watchdog.
func NewClient(o Options) (*http.Client, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = DialContext(nil)
	if o.TLSClientConfig != nil || o.VerifyConnection != nil {
		var cfg *tls.Config
		if o.TLSClientConfig != nil {
			cfg = o.TLSClientConfig.Clone()
		} else {
			cfg = &tls.Config{}
		}
		if o.VerifyConnection != nil {
			cfg.VerifyConnection = chainVerify(cfg.VerifyConnection, o.VerifyConnection)
		}
		t.TLSClientConfig = cfg
	}
	h2, err := http2.ConfigureTransports(t)
	if err != nil {
		return nil, err
	}
	h2.ReadIdleTimeout = 30 * time.Second
	h2.PingTimeout = 15 * time.Second
	return &http.Client{
		Transport:     t,
		CheckRedirect: CheckRedirect(o.FollowRedirects),
		Jar:           o.Jar,
	}, nil
}

func chainVerify(first, second func(tls.ConnectionState) error) func(tls.ConnectionState) error {
	if first == nil {
		return second
	}
	return func(cs tls.ConnectionState) error {
		if err := first(cs); err != nil {
			return err
		}
		return second(cs)
	}
}
