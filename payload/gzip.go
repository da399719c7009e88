// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package payload

import (
	"bytes"
	"compress/gzip"
	"io"
)

const gzipChunkSize = 32 * 1024

// gzipReader compresses a source stream on the fly. Compression happens
// inside Read, so no goroutine or pipe is needed.
type gzipReader struct {
	src   io.ReadCloser
	buf   bytes.Buffer
	zw    *gzip.Writer
	chunk []byte
	eof   bool
}

func newGzipReader(src io.ReadCloser) *gzipReader {
	g := &gzipReader{
		src:   src,
		chunk: make([]byte, gzipChunkSize),
	}
	g.zw = gzip.NewWriter(&g.buf)
	return g
}

func (g *gzipReader) Read(p []byte) (int, error) {
	for g.buf.Len() == 0 && !g.eof {
		n, err := g.src.Read(g.chunk)
		if n > 0 {
			if _, werr := g.zw.Write(g.chunk[:n]); werr != nil {
				return 0, werr
			}
		}
		if err == io.EOF {
			if cerr := g.zw.Close(); cerr != nil {
				return 0, cerr
			}
			g.eof = true
		} else if err != nil {
			return 0, err
		}
	}
	if g.buf.Len() == 0 {
		return 0, io.EOF
	}
	return g.buf.Read(p)
}

func (g *gzipReader) Close() error {
	return g.src.Close()
}
