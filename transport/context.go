// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"time"
)

type connectTimeoutKey struct{}

type followRedirectsKey struct{}

type useCachesKey struct{}

// WithConnectTimeout returns a copy of ctx carrying the connect timeout
// d for the dialer returned by DialContext. A non-positive d means no
// connect timeout.
func WithConnectTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, connectTimeoutKey{}, d)
}

// ConnectTimeout returns the connect timeout carried by ctx, or zero.
func ConnectTimeout(ctx context.Context) time.Duration {
	d, _ := ctx.Value(connectTimeoutKey{}).(time.Duration)
	return d
}

// WithFollowRedirects returns a copy of ctx telling the redirect
// policy installed by NewClient whether to follow redirects.
func WithFollowRedirects(ctx context.Context, follow bool) context.Context {
	return context.WithValue(ctx, followRedirectsKey{}, follow)
}

// FollowRedirects returns the redirect setting carried by ctx, and
// whether ctx carries one at all.
func FollowRedirects(ctx context.Context) (follow bool, ok bool) {
	follow, ok = ctx.Value(followRedirectsKey{}).(bool)
	return
}

// WithUseCaches returns a copy of ctx carrying the request's cache-use
// flag. The standard library transport has no cache, so the flag only
// matters to a caching http.RoundTripper or HTTPDoer installed by the
// caller, which reads it with UseCaches.
func WithUseCaches(ctx context.Context, use bool) context.Context {
	return context.WithValue(ctx, useCachesKey{}, use)
}

// UseCaches reports whether the request carrying ctx may be answered
// from a cache. It is false unless WithUseCaches set it.
func UseCaches(ctx context.Context) bool {
	use, _ := ctx.Value(useCachesKey{}).(bool)
	return use
}
