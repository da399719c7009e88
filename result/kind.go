// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package result

import "fmt"

// A Kind is the representation a caller expects a successful response
// body to be decoded into.
type Kind int

const (
	// Void discards the response body.
	Void Kind = iota
	// String decodes the body as text.
	String
	// Bytes keeps the body as raw bytes.
	Bytes
	// Stream hands the decoded body reader to the caller unbuffered.
	Stream
	// JSONObject parses the body as a JSON object into a
	// map[string]interface{}.
	JSONObject
	// JSONArray parses the body as a JSON array into a []interface{}.
	JSONArray
)

var kindNames = []string{
	"Void",
	"String",
	"Bytes",
	"Stream",
	"JSONObject",
	"JSONArray",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsJSON reports whether k is JSONObject or JSONArray.
func (k Kind) IsJSON() bool {
	return k == JSONObject || k == JSONArray
}
