// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2013, time.November, 25, 0, 59, 33, 0, time.FixedZone("CET", 3600))
	testCases := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"string", "München", "München"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"time", ts, "Sun, 24 Nov 2013 23:59:33 GMT"},
		{"time pointer", &ts, "Sun, 24 Nov 2013 23:59:33 GMT"},
		{"nil time pointer", (*time.Time)(nil), ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, FormatValue(testCase.value))
		})
	}
}

func TestHeaderValue(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := HeaderValue("X-Count", 3)
		require.NoError(t, err)
		assert.Equal(t, "3", s)
	})
	t.Run("invalid", func(t *testing.T) {
		testCases := []struct {
			name  string
			field string
			value interface{}
		}{
			{"empty name", "", "x"},
			{"nil value", "X-Foo", nil},
			{"empty value", "X-Foo", ""},
			{"empty stringer", "X-Foo", emptyStringer{}},
			{"bad name", "X Foo", "x"},
			{"bad value", "X-Foo", "line\nbreak"},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := HeaderValue(testCase.field, testCase.value)
				var argErr *ArgumentError
				require.True(t, errors.As(err, &argErr))
				assert.Equal(t, "header", argErr.Arg)
			})
		}
	})
}

type emptyStringer struct{}

func (emptyStringer) String() string { return "" }

func TestParams(t *testing.T) {
	var ps Params
	assert.Equal(t, 0, ps.Len())
	assert.Equal(t, "", ps.Encode())

	ps.Set("b", "two words")
	ps.Set("a&b", 1)
	ps.Set("b", "x=y")
	ps.Set("empty", nil)

	assert.Equal(t, 3, ps.Len())
	assert.Equal(t, []string{"b", "a&b", "empty"}, ps.Keys())
	v, ok := ps.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "x=y", v)
	_, ok = ps.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "b=x%3Dy&a%26b=1&empty=", ps.Encode())

	c := ps.Clone()
	c.Set("c", "new")
	assert.Equal(t, 3, ps.Len())
	assert.Equal(t, 4, c.Len())
}

func TestArgumentError(t *testing.T) {
	cause := errors.New("cause")
	err := &ArgumentError{Arg: "url", Msg: "cannot parse target", Err: cause}
	assert.EqualError(t, err, "restx/request: invalid url: cannot parse target: cause")
	assert.Same(t, cause, errors.Unwrap(err))
	assert.EqualError(t, argErr("body", "nope"), "restx/request: invalid body: nope")
}
