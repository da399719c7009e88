// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"strings"
)

// An UnsupportedEncodingError is returned by Decode for a response
// Content-Encoding other than identity, gzip, or deflate. It is a
// protocol violation and never recoverable.
type UnsupportedEncodingError struct {
	Encoding string
}

func (e *UnsupportedEncodingError) Error() string {
	return "unsupported content-encoding: " + e.Encoding
}

// Decode wraps body so that reads yield the decoded content, according
// to the response Content-Encoding value encoding. The match is case
// insensitive. An empty encoding or "identity" returns body itself.
// For "gzip" the gzip header is read before Decode returns, so a
// corrupt header is reported here rather than on the first Read.
//
// Closing the returned reader closes body.
func Decode(encoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return &decoder{Reader: zr, decoder: zr, body: body}, nil
	case "deflate":
		return inflate(body)
	default:
		return nil, &UnsupportedEncodingError{Encoding: encoding}
	}
}

// inflate decodes "deflate" content. Per RFC 9110 that is zlib
// wrapped, but some servers send raw deflate, so the zlib header is
// sniffed first.
func inflate(body io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(body)
	if hdr, err := br.Peek(2); err == nil && isZlibHeader(hdr) {
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &decoder{Reader: zr, decoder: zr, body: body}, nil
	}
	fr := flate.NewReader(br)
	return &decoder{Reader: fr, decoder: fr, body: body}, nil
}

func isZlibHeader(b []byte) bool {
	return b[0]&0x0f == 8 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0
}

type decoder struct {
	io.Reader
	decoder io.Closer
	body    io.Closer
}

func (d *decoder) Close() error {
	_ = d.decoder.Close()
	return d.body.Close()
}
