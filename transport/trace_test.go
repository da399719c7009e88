// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"net/http/httptrace"
)

// httptraceOf returns the WroteRequest hook installed in ctx, or nil.
func httptraceOf(ctx context.Context) func() {
	trace := httptrace.ContextClientTrace(ctx)
	if trace == nil || trace.WroteRequest == nil {
		return nil
	}
	return func() {
		trace.WroteRequest(httptrace.WroteRequestInfo{})
	}
}
