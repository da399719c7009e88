// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package charset resolves character set names used to encode text
// request payloads and decode text response bodies.
//
// Names are looked up in the IANA MIME registry, so "utf-8",
// "ISO-8859-1", "windows-1252" and their registered aliases are all
// accepted. UTF-8 is the default everywhere and is handled without any
// transcoding.
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// UTF8 is the canonical name of the default character set.
const UTF8 = "utf-8"

// Lookup returns the encoding registered for name.
//
// An empty name, or any spelling of UTF-8, yields a nil encoding and no
// error: a nil encoding means the text is already UTF-8 and needs no
// transcoding. An unknown or unsupported name yields an error.
func Lookup(name string) (encoding.Encoding, error) {
	if isUTF8(name) {
		return nil, nil
	}
	enc, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("restx/charset: unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("restx/charset: unsupported charset %q", name)
	}
	return enc, nil
}

// Encode converts UTF-8 text s into bytes of encoding enc. If enc is
// nil, the bytes of s are returned unchanged.
func Encode(enc encoding.Encoding, s string) ([]byte, error) {
	if enc == nil {
		return []byte(s), nil
	}
	return enc.NewEncoder().Bytes([]byte(s))
}

// Decode converts bytes of encoding enc into UTF-8 text. If enc is nil,
// b is converted to a string unchanged.
func Decode(enc encoding.Encoding, b []byte) (string, error) {
	if enc == nil {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}
