// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the connect and read
// timeouts of each HTTP request attempt during a plan execution,
// including on retries. A plan may override either timeout; Effective
// combines the policy and the plan's overrides.
package timeout
