// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package payload

import (
	"fmt"
	"io"
	"sync"
)

// A Kind identifies which variant of Payload is held.
type Kind int

const (
	// KindNone is the kind of the empty payload. The zero Payload has
	// this kind.
	KindNone Kind = iota
	// KindForm is the kind of a URL-encoded form body built from the
	// request parameters.
	KindForm
	// KindJSON is the kind of a JSON object or array payload.
	KindJSON
	// KindBytes is the kind of a raw binary payload.
	KindBytes
	// KindText is the kind of a textual payload, either a string or
	// the string form of an arbitrary value.
	KindText
	// KindFile is the kind of a payload streamed from a file.
	KindFile
	// KindStream is the kind of a payload streamed from an io.Reader.
	KindStream
)

var kindNames = []string{
	"None",
	"Form",
	"JSON",
	"Bytes",
	"Text",
	"File",
	"Stream",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// A Payload is the request body a caller intends to send. It is a
// tagged variant: exactly one constructor was used to create it, and
// Kind reports which one.
//
// The zero value is the empty payload.
type Payload struct {
	kind  Kind
	text  string
	data  []byte
	value interface{}
	path  string
	src   *source
}

// None returns the empty payload.
func None() Payload {
	return Payload{}
}

// Form returns a form payload holding an already URL-encoded form
// body, such as the output of request.Params.Encode.
func Form(encoded string) Payload {
	return Payload{kind: KindForm, text: encoded}
}

// JSON returns a payload which is serialized as JSON when encoded.
// The value v must marshal to a JSON object or a JSON array; maps,
// structs, slices and json.RawMessage values are all suitable.
func JSON(v interface{}) Payload {
	return Payload{kind: KindJSON, value: v}
}

// Bytes returns a binary payload which is sent unchanged.
func Bytes(b []byte) Payload {
	return Payload{kind: KindBytes, data: b}
}

// Text returns a text payload.
func Text(s string) Payload {
	return Payload{kind: KindText, text: s}
}

// Value returns a text payload holding the string form of v, as
// produced by fmt.Sprint.
func Value(v interface{}) Payload {
	return Text(fmt.Sprint(v))
}

// File returns a payload streamed from the named file. The file is
// opened afresh on every request attempt, so file payloads can be
// retried.
func File(path string) Payload {
	return Payload{kind: KindFile, path: path}
}

// Stream returns a payload streamed from r.
//
// Unless r also implements io.Seeker, it can only be read once, so a
// retried request attempt fails once the first attempt has consumed
// it. A seekable r, such as an *os.File, is rewound for every attempt.
//
// If r implements io.Closer, the client closes it: a seekable r once
// the execution ends, any other r once the attempt which sent it is
// over.
func Stream(r io.Reader) Payload {
	return Payload{kind: KindStream, src: &source{r: r}}
}

// Kind returns the variant held by p.
func (p Payload) Kind() Kind {
	return p.kind
}

// Empty reports whether p is the empty payload.
func (p Payload) Empty() bool {
	return p.kind == KindNone
}

// Streaming reports whether p is sent as a stream rather than as a
// pre-buffered byte slice.
func (p Payload) Streaming() bool {
	return p.kind == KindFile || p.kind == KindStream
}

// Path returns the file name of a KindFile payload, and the empty
// string for any other kind.
func (p Payload) Path() string {
	return p.path
}

type source struct {
	lock   sync.Mutex
	r      io.Reader
	used   bool
	closed bool
}

// open hands out the stream for one attempt. A seekable stream is
// rewound on every call after the first and handed out without its
// Close method, so that the HTTP transport closing the request body
// does not prevent a retry. Any other stream can only be opened once.
func (s *source) open() (io.ReadCloser, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	seeker, seekable := s.r.(io.Seeker)
	if s.used {
		if !seekable {
			return nil, ErrStreamConsumed
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}
	s.used = true
	if rc, ok := s.r.(io.ReadCloser); ok && !seekable {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}

// close closes the stream if it is an io.Closer still owned by the
// source: a seekable stream, or one no attempt has opened. A stream
// handed to an attempt as is belongs to that attempt's transport.
func (s *source) close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	c, ok := s.r.(io.Closer)
	if !ok || s.closed {
		return nil
	}
	if _, seekable := s.r.(io.Seeker); s.used && !seekable {
		return nil
	}
	s.closed = true
	return c.Close()
}
