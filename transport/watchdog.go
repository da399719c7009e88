// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"fmt"
	"io"
	"net/http/httptrace"
	"sync"
	"sync/atomic"
	"time"
)

type readTimeoutError struct{}

func (readTimeoutError) Error() string   { return "read timeout" }
func (readTimeoutError) Timeout() bool   { return true }
func (readTimeoutError) Temporary() bool { return true }

// ErrReadTimeout is the cause of a request attempt cancelled by its
// Watchdog. Its Timeout method reports true.
var ErrReadTimeout error = readTimeoutError{}

// A Watchdog enforces the read timeout of one request attempt. It is
// armed once the request has been written, and from then on cancels
// the attempt's context with cause ErrReadTimeout if the server stays
// silent for longer than the read timeout: while the client waits for
// the response headers, or between two reads of the response body.
type Watchdog struct {
	d      time.Duration
	cancel context.CancelCauseFunc
	lock   sync.Mutex
	timer  *time.Timer
	done   bool
	fired  atomic.Bool
}

// NewWatchdog returns a context derived from parent for one request
// attempt, and the Watchdog which cancels it. A non-positive d means no
// read timeout, but the returned context is still cancelled by Stop.
func NewWatchdog(parent context.Context, d time.Duration) (context.Context, *Watchdog) {
	ctx, cancel := context.WithCancelCause(parent)
	w := &Watchdog{d: d, cancel: cancel}
	if d > 0 {
		ctx = httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
			WroteRequest: func(_ httptrace.WroteRequestInfo) {
				w.Kick()
			},
		})
	}
	return ctx, w
}

// Kick restarts the read timeout. It is a no-op once the watchdog is
// stopped or has no timeout.
func (w *Watchdog) Kick() {
	if w.d <= 0 {
		return
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.done {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.d, w.fire)
		return
	}
	w.timer.Reset(w.d)
}

func (w *Watchdog) fire() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.done {
		return
	}
	w.fired.Store(true)
	w.cancel(ErrReadTimeout)
}

// Fired reports whether the watchdog cancelled the attempt.
func (w *Watchdog) Fired() bool {
	return w.fired.Load()
}

// Stop disarms the watchdog and cancels the attempt context, releasing
// its resources. Stop must be called once the attempt is over,
// including after its response body has been consumed.
func (w *Watchdog) Stop() {
	w.lock.Lock()
	w.done = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.lock.Unlock()
	w.cancel(nil)
}

// Err translates an error produced while the watchdog was active. If
// the watchdog fired, the returned error wraps ErrReadTimeout ahead of
// err; otherwise err is returned unchanged.
func (w *Watchdog) Err(err error) error {
	if err == nil || !w.Fired() {
		return err
	}
	return fmt.Errorf("%w: %w", ErrReadTimeout, err)
}

// Body wraps rc so that every read kicks the watchdog, and closing rc
// stops it.
func (w *Watchdog) Body(rc io.ReadCloser) io.ReadCloser {
	return &watchedBody{rc: rc, w: w}
}

type watchedBody struct {
	rc io.ReadCloser
	w  *Watchdog
}

func (b *watchedBody) Read(p []byte) (int, error) {
	n, err := b.rc.Read(p)
	if n > 0 {
		b.w.Kick()
	}
	if err != nil && err != io.EOF {
		err = b.w.Err(err)
	}
	return n, err
}

func (b *watchedBody) Close() error {
	err := b.rc.Close()
	b.w.Stop()
	return err
}
