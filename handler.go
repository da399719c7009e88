// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"github.com/gogama/restx/request"
)

// A Handler is called by Client when an Event occurs. Handlers run on
// the goroutine executing the plan, so a slow handler delays the
// request.
type Handler interface {
	Handle(Event, *request.Execution)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}

// A HandlerGroup holds one chain of handlers per Event. The zero value
// is an empty group ready to use.
//
// Install handlers before the group is used by a Client; a group is
// not safe for concurrent modification while requests are running.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack appends h to the chain for evt. It panics if h is nil or
// evt is not a known Event.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	g.check(evt, h)
	g.chains[evt] = append(g.chains[evt], h)
}

// PushFront prepends h to the chain for evt, so it runs before every
// handler already installed. It panics if h is nil or evt is not a
// known Event.
func (g *HandlerGroup) PushFront(evt Event, h Handler) {
	g.check(evt, h)
	g.chains[evt] = append([]Handler{h}, g.chains[evt]...)
}

// Len returns the number of handlers installed for evt.
func (g *HandlerGroup) Len(evt Event) int {
	if !evt.valid() {
		return 0
	}
	return len(g.chains[evt])
}

func (g *HandlerGroup) check(evt Event, h Handler) {
	if h == nil {
		panic("restx: nil handler")
	}
	if !evt.valid() {
		panic("restx: unknown event " + evt.Name())
	}
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}
