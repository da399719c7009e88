// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport holds the network plumbing under restx.Client:
// an *http.Client factory with per-request connect timeouts and
// redirect control, a read timeout Watchdog, and Decode, which unwraps
// a gzip or deflate Content-Encoding.
//
// Per-request settings travel in the request context, so one
// *http.Client serves every request of a restx.Client.
package transport
