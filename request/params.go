// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/url"
	"strings"
)

// Params is an insertion-ordered map of request parameters. Setting a
// key that is already present replaces its value but keeps its
// original position. The zero value is an empty map ready to use.
//
// Parameter values may have any type and are rendered with FormatValue,
// so a nil value becomes the empty string.
type Params struct {
	keys   []string
	values map[string]interface{}
}

// Set sets the value of key, replacing any previous value.
func (ps *Params) Set(key string, value interface{}) {
	if ps.values == nil {
		ps.values = make(map[string]interface{})
	}
	if _, ok := ps.values[key]; !ok {
		ps.keys = append(ps.keys, key)
	}
	ps.values[key] = value
}

// Get returns the value of key and whether key is present.
func (ps *Params) Get(key string) (interface{}, bool) {
	v, ok := ps.values[key]
	return v, ok
}

// Len returns the number of parameters.
func (ps *Params) Len() int {
	return len(ps.keys)
}

// Keys returns the parameter keys in insertion order.
func (ps *Params) Keys() []string {
	keys := make([]string, len(ps.keys))
	copy(keys, ps.keys)
	return keys
}

// Clone returns a deep copy of the key order and a shallow copy of the
// values.
func (ps *Params) Clone() Params {
	c := Params{keys: ps.Keys()}
	if ps.values != nil {
		c.values = make(map[string]interface{}, len(ps.values))
		for k, v := range ps.values {
			c.values[k] = v
		}
	}
	return c
}

// Encode renders the parameters in "URL encoded" form, as key=value
// pairs joined by '&' in insertion order. Both keys and values are
// escaped with url.QueryEscape, so a space becomes '+'.
func (ps *Params) Encode() string {
	var sb strings.Builder
	for i, k := range ps.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(FormatValue(ps.values[k])))
	}
	return sb.String()
}
