// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package result

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/gogama/restx/charset"
	"golang.org/x/text/encoding"
)

// Media type prefixes consulted when classifying error bodies.
const (
	mediaBinary = "application/octet-stream"
	mediaJSON   = "application/json"
)

// Success decodes a successful (2XX) response body according to the
// kind the caller declared. Response headers describing the content are
// deliberately ignored: the caller's expectation is authoritative.
//
// The return value has dynamic type string for String, []byte for
// Bytes, map[string]interface{} for JSONObject and []interface{} for
// JSONArray. For Void, and for Stream (whose body is never buffered),
// the return value is nil.
//
// Text is decoded from enc, or treated as UTF-8 if enc is nil.
func Success(k Kind, raw []byte, enc encoding.Encoding) (interface{}, error) {
	switch k {
	case Void, Stream:
		return nil, nil
	case String:
		s, err := charset.Decode(enc, raw)
		if err != nil {
			return nil, &DecodeError{Kind: k, Msg: "payload is not valid text", Err: err}
		}
		return s, nil
	case Bytes:
		if raw == nil {
			raw = []byte{}
		}
		return raw, nil
	case JSONObject:
		return ParseObject(raw)
	case JSONArray:
		return ParseArray(raw)
	default:
		return nil, &DecodeError{Kind: k, Msg: "unknown result kind " + k.String()}
	}
}

// Failure picks the most specific usable representation of a non-2XX
// response body. It never fails; each step below falls through to the
// next when it does not apply:
//
// • no body at all gives nil;
//
// • a missing content type, a content type starting with
// application/octet-stream, or a declared Bytes kind gives the raw
// bytes;
//
// • a content type starting with application/json and a declared
// JSONObject kind gives the parsed object, if the body is one;
//
// • a body which is valid UTF-8 gives a string;
//
// • anything else gives the raw bytes.
func Failure(k Kind, contentType string, raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}

	if contentType == "" || strings.HasPrefix(contentType, mediaBinary) || k == Bytes {
		return raw
	}

	if strings.HasPrefix(contentType, mediaJSON) && k == JSONObject {
		if v, err := ParseObject(raw); err == nil {
			return v
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	return raw
}

// ParseObject parses raw as a JSON object.
func ParseObject(raw []byte) (map[string]interface{}, error) {
	if first(raw) != '{' {
		return nil, &DecodeError{Kind: JSONObject, Msg: "payload is not a valid JSON object"}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &DecodeError{Kind: JSONObject, Msg: "payload is not a valid JSON object", Err: err}
	}
	return m, nil
}

// ParseArray parses raw as a JSON array.
func ParseArray(raw []byte) ([]interface{}, error) {
	if first(raw) != '[' {
		return nil, &DecodeError{Kind: JSONArray, Msg: "payload is not a valid JSON array"}
	}
	var a []interface{}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, &DecodeError{Kind: JSONArray, Msg: "payload is not a valid JSON array", Err: err}
	}
	return a, nil
}

func first(raw []byte) byte {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
