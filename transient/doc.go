// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts the errors of an HTTP request attempt into
// those a retry might fix and those it will not. The retry package's
// TransientErr decider and the client's timeout bookkeeping are built
// on it.
//
// The package depends only on the standard library.
package transient
