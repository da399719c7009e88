// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package payload

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogama/restx/charset"
	"golang.org/x/text/encoding"
)

// Content types inferred from the payload kind.
const (
	ContentTypeForm   = "application/x-www-form-urlencoded"
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
	ContentTypeText   = "text/plain"
)

// MinCompressedAdvantage is the compression threshold in bytes. A
// buffered body is only compressed if it is longer than this, and the
// compressed form is only kept if it is shorter than the original by
// more than this.
const MinCompressedAdvantage = 80

// ErrStreamConsumed is returned when a non-seekable stream payload is
// opened for a second request attempt.
var ErrStreamConsumed = errors.New("restx/payload: stream already consumed by a previous attempt")

// An Encoder turns a Payload into a Body ready to be written to the
// wire. Its zero value encodes text as UTF-8, compact JSON, and never
// compresses.
type Encoder struct {
	// Compress requests gzip compression of the body. Buffered bodies
	// are only compressed when it pays off (see MinCompressedAdvantage);
	// streamed bodies are always compressed when Compress is set.
	Compress bool

	// Charset is the encoding of KindText payloads. A nil Charset means
	// UTF-8.
	Charset encoding.Encoding

	// Indent, if not empty, is used to indent JSON payloads as by
	// json.MarshalIndent.
	Indent string
}

// A Body is an encoded payload.
type Body struct {
	// ContentType is the media type inferred from the payload kind. It
	// should only be sent if the caller did not set a Content-Type
	// header explicitly. It is empty for an empty body.
	ContentType string

	// ContentEncoding is "gzip" if the body was compressed, and empty
	// otherwise.
	ContentEncoding string

	// Length is the number of bytes the body will produce, or -1 if
	// the length is not known in advance and the body must be sent
	// with chunked transfer encoding.
	Length int64

	data  []byte
	open  func() (io.ReadCloser, error)
	close func() error
}

// Empty reports whether there is no body to send.
func (b *Body) Empty() bool {
	return b == nil || (b.data == nil && b.open == nil)
}

// Streaming reports whether the body is produced by a stream instead
// of a buffer.
func (b *Body) Streaming() bool {
	return b != nil && b.open != nil
}

// Bytes returns the buffered body, or nil for an empty or streaming
// body.
func (b *Body) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Open returns a reader producing the body. The caller must close the
// reader once the body has been written.
func (b *Body) Open() (io.ReadCloser, error) {
	if b.Streaming() {
		return b.open()
	}
	return io.NopCloser(bytes.NewReader(b.Bytes())), nil
}

// Close releases the stream a KindStream body was built from, if the
// stream is a Closer which no attempt took ownership of. It is safe to
// call on any body, and more than once.
func (b *Body) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Encode encodes p. The payload kind decides the inferred content type,
// as follows: form bodies are application/x-www-form-urlencoded, JSON
// is application/json, bytes, files and streams are
// application/octet-stream, and text is text/plain.
func (enc Encoder) Encode(p Payload) (*Body, error) {
	var data []byte
	var contentType string
	switch p.kind {
	case KindNone:
		return &Body{}, nil
	case KindForm:
		data, contentType = []byte(p.text), ContentTypeForm
	case KindJSON:
		b, err := enc.marshalJSON(p.value)
		if err != nil {
			return nil, err
		}
		data, contentType = b, ContentTypeJSON
	case KindBytes:
		data, contentType = p.data, ContentTypeBinary
	case KindText:
		b, err := charset.Encode(enc.Charset, p.text)
		if err != nil {
			return nil, fmt.Errorf("restx/payload: encoding text: %w", err)
		}
		data, contentType = b, ContentTypeText
	case KindFile:
		return enc.encodeFile(p.path)
	case KindStream:
		return enc.encodeStream(p.src), nil
	default:
		return nil, fmt.Errorf("restx/payload: unknown payload kind %v", p.kind)
	}

	if data == nil {
		data = []byte{}
	}
	body := &Body{
		ContentType: contentType,
		Length:      int64(len(data)),
		data:        data,
	}
	if enc.Compress {
		compressIfSmaller(body)
	}
	return body, nil
}

func (enc Encoder) marshalJSON(v interface{}) ([]byte, error) {
	var b []byte
	var err error
	if enc.Indent != "" {
		b, err = json.MarshalIndent(v, "", enc.Indent)
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("restx/payload: encoding JSON: %w", err)
	}
	if !isJSONContainer(b) {
		return nil, errors.New("restx/payload: JSON payload must be an object or an array")
	}
	return b, nil
}

func (enc Encoder) encodeFile(path string) (*Body, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("restx/payload: %s is a directory", path)
	}
	open := func() (io.ReadCloser, error) {
		return os.Open(path)
	}
	if enc.Compress {
		return gzipStream(open), nil
	}
	return &Body{
		ContentType: ContentTypeBinary,
		Length:      fi.Size(),
		open:        open,
	}, nil
}

func (enc Encoder) encodeStream(src *source) *Body {
	var body *Body
	if enc.Compress {
		body = gzipStream(src.open)
	} else {
		body = &Body{
			ContentType: ContentTypeBinary,
			Length:      -1,
			open:        src.open,
		}
	}
	body.close = src.close
	return body
}

func gzipStream(open func() (io.ReadCloser, error)) *Body {
	return &Body{
		ContentType:     ContentTypeBinary,
		ContentEncoding: "gzip",
		Length:          -1,
		open: func() (io.ReadCloser, error) {
			rc, err := open()
			if err != nil {
				return nil, err
			}
			return newGzipReader(rc), nil
		},
	}
}

// compressIfSmaller replaces the body with its gzip form when the body
// is longer than MinCompressedAdvantage and compression saves more than
// MinCompressedAdvantage bytes. Otherwise the body is left unchanged.
func compressIfSmaller(body *Body) {
	if len(body.data) <= MinCompressedAdvantage {
		return
	}
	compressed, err := Gzip(body.data)
	if err != nil {
		return
	}
	if len(body.data)-len(compressed) > MinCompressedAdvantage {
		body.data = compressed
		body.Length = int64(len(compressed))
		body.ContentEncoding = "gzip"
	}
}

// Gzip returns the gzip compressed form of b.
func Gzip(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isJSONContainer(b []byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n")
	return len(b) > 0 && (b[0] == '{' || b[0] == '[')
}
