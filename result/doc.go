// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package result classifies response bodies. Success decodes the body
// of a 2XX response into the Kind the caller asked for, and Failure
// picks a best-effort representation for the body of any other
// response.
package result
