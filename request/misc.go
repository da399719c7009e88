// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http/httpguts"
)

// FormatValue renders a header or parameter value as a string.
//
// The conversion logic is:
//
// • nil gives the empty string;
//
// • a string is returned unchanged;
//
// • a time.Time (or non-nil *time.Time) is formatted as an RFC 1123
// date in GMT, the format HTTP uses for date-valued headers, for
// example "Sun, 24 Nov 2013 23:59:33 GMT";
//
// • any other value is formatted with fmt.Sprint.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.UTC().Format(http.TimeFormat)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.UTC().Format(http.TimeFormat)
	default:
		return fmt.Sprint(v)
	}
}

// HeaderValue validates a header field and renders its value with
// FormatValue. The name must be a valid non-empty header field name
// and the value must be non-nil and render to a valid, non-empty field
// value.
func HeaderValue(name string, value interface{}) (string, error) {
	if name == "" || value == nil {
		return "", argErr("header", "name and value must not be empty")
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return "", argErr("header", fmt.Sprintf("invalid field name %q", name))
	}
	s := FormatValue(value)
	if s == "" {
		return "", argErr("header", fmt.Sprintf("empty value for field %q", name))
	}
	if !httpguts.ValidHeaderFieldValue(s) {
		return "", argErr("header", fmt.Sprintf("invalid value for field %q", name))
	}
	return s, nil
}

// hasBodylessMethod reports whether method is GET or DELETE, the two
// methods a plan may not carry a body for.
func hasBodylessMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodDelete
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}
