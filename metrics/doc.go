// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package metrics exports Prometheus metrics about restx request plan
executions. It plugs into a client as a set of event handlers:

	reg := prometheus.NewRegistry()
	handlers := &restx.HandlerGroup{}
	metrics.NewCollector(reg).Install(handlers)
	client := &restx.Client{Handlers: handlers}

The collector counts executions, attempts, retries, attempt timeouts
and errors, tracks executions in flight, and observes execution
duration.
*/
package metrics
