// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package result

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gogama/restx/charset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	obj := []byte(`{"int":1,"bool":true,"str":"a string","nested":[1,2]}`)
	arr := []byte(` ["a", {"b": null}, 3.5]`)

	t.Run("Void", func(t *testing.T) {
		v, err := Success(Void, obj, nil)
		assert.NoError(t, err)
		assert.Nil(t, v)
	})
	t.Run("Stream", func(t *testing.T) {
		v, err := Success(Stream, obj, nil)
		assert.NoError(t, err)
		assert.Nil(t, v)
	})
	t.Run("String", func(t *testing.T) {
		v, err := Success(String, []byte("München 1 Maß 10 €"), nil)
		require.NoError(t, err)
		assert.Equal(t, "München 1 Maß 10 €", v)
	})
	t.Run("String empty", func(t *testing.T) {
		v, err := Success(String, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})
	t.Run("String latin-1", func(t *testing.T) {
		enc, err := charset.Lookup("ISO-8859-1")
		require.NoError(t, err)
		v, err := Success(String, []byte{'M', 'a', 0xDF}, enc)
		require.NoError(t, err)
		assert.Equal(t, "Maß", v)
	})
	t.Run("Bytes", func(t *testing.T) {
		v, err := Success(Bytes, []byte{0xff, 0x00}, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xff, 0x00}, v)
		v, err = Success(Bytes, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte{}, v)
	})
	t.Run("JSONObject", func(t *testing.T) {
		v, err := Success(JSONObject, obj, nil)
		require.NoError(t, err)
		var expected map[string]interface{}
		require.NoError(t, json.Unmarshal(obj, &expected))
		assert.Equal(t, expected, v)
	})
	t.Run("JSONArray", func(t *testing.T) {
		v, err := Success(JSONArray, arr, nil)
		require.NoError(t, err)
		var expected []interface{}
		require.NoError(t, json.Unmarshal(arr, &expected))
		assert.Equal(t, expected, v)
	})
	t.Run("JSONObject malformed", func(t *testing.T) {
		for _, raw := range []string{`{"a":`, `[1]`, `null`, ``, `   `} {
			v, err := Success(JSONObject, []byte(raw), nil)
			assert.Nil(t, v)
			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "raw=%q", raw)
			assert.Equal(t, JSONObject, decodeErr.Kind)
			assert.Contains(t, err.Error(), "not a valid JSON object")
		}
	})
	t.Run("JSONArray malformed", func(t *testing.T) {
		for _, raw := range []string{`[1,`, `{}`, `"s"`} {
			v, err := Success(JSONArray, []byte(raw), nil)
			assert.Nil(t, v)
			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "raw=%q", raw)
			assert.Equal(t, JSONArray, decodeErr.Kind)
		}
	})
	t.Run("unknown kind", func(t *testing.T) {
		_, err := Success(Kind(99), obj, nil)
		assert.EqualError(t, err, "restx/result: unknown result kind Kind(99)")
	})
}

func TestFailure(t *testing.T) {
	jsonBody := []byte(`{"msg":"an error has occurred"}`)
	invalidUTF8 := []byte{0xff, 0xfe, 0xfd}

	testCases := []struct {
		name        string
		kind        Kind
		contentType string
		raw         []byte
		expected    interface{}
	}{
		{"no body", JSONObject, "application/json", nil, nil},
		{"empty body", String, "text/plain", []byte{}, nil},
		{"binary content type", String, "application/octet-stream", []byte("x"), []byte("x")},
		{"binary declared", Bytes, "application/json", jsonBody, jsonBody},
		{"missing content type", String, "", []byte("x"), []byte("x")},
		{"json object", JSONObject, "application/json; charset=utf-8", jsonBody, map[string]interface{}{"msg": "an error has occurred"}},
		{"json array kind stays text", JSONArray, "application/json", []byte(`[1]`), "[1]"},
		{"json array body for object kind", JSONObject, "application/json", []byte(`[1]`), "[1]"},
		{"json not declared", String, "application/json", jsonBody, string(jsonBody)},
		{"json malformed", JSONObject, "application/json", []byte(`{"msg":`), `{"msg":`},
		{"text for json kind", JSONObject, "text/plain", []byte("Bad Request"), "Bad Request"},
		{"html", Void, "text/html", []byte("<p>Not Found</p>"), "<p>Not Found</p>"},
		{"invalid utf-8", String, "text/plain", invalidUTF8, invalidUTF8},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Failure(testCase.kind, testCase.contentType, testCase.raw))
		})
	}
}

func TestKind(t *testing.T) {
	assert.True(t, JSONObject.IsJSON())
	assert.True(t, JSONArray.IsJSON())
	assert.False(t, String.IsJSON())
	assert.Equal(t, "JSONArray", JSONArray.String())
	assert.Equal(t, "Void", Void.String())
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("cause")
	err := &DecodeError{Kind: JSONObject, Msg: "bad", Err: cause}
	assert.EqualError(t, err, "restx/result: bad: cause")
	assert.Same(t, cause, errors.Unwrap(err))
	assert.EqualError(t, &DecodeError{Msg: "bad"}, "restx/result: bad")
}
