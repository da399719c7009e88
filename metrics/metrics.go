// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"strconv"

	"github.com/gogama/restx"
	"github.com/gogama/restx/request"
	"github.com/gogama/restx/result"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "restx"

// A Collector records Prometheus metrics about request plan executions.
// Install it into a client's HandlerGroup to start recording.
//
// Metrics are labelled with the request method and the target host,
// never the full URL, to keep label cardinality bounded.
//
// A Collector is safe for concurrent use.
type Collector struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	inFlight       *prometheus.GaugeVec
	attempts       *prometheus.CounterVec
	retries        *prometheus.CounterVec
	attemptTimeout *prometheus.CounterVec
	errors         *prometheus.CounterVec
}

// NewCollector creates a Collector whose metrics are registered with
// reg. It panics if any metric is already registered with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "requests_total",
				Help:      "Total number of request plan executions, by final status code.",
			},
			[]string{"method", "host", "status_code"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of request plan executions, including retries and backoff.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "host"},
		),
		inFlight: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "requests_in_flight",
				Help:      "Number of request plan executions in progress.",
			},
			[]string{"method", "host"},
		),
		attempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "attempts_total",
				Help:      "Total number of individual request attempts.",
			},
			[]string{"method", "host"},
		),
		retries: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "retries_total",
				Help:      "Total number of retries, by the attempt being retried.",
			},
			[]string{"method", "host", "attempt"},
		),
		attemptTimeout: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "attempt_timeouts_total",
				Help:      "Total number of request attempts which timed out.",
			},
			[]string{"method", "host"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Total number of failed request plan executions, by error type.",
			},
			[]string{"method", "host", "type"},
		),
	}
}

// Install adds the collector's handlers to g.
func (c *Collector) Install(g *restx.HandlerGroup) {
	g.PushBack(restx.BeforeExecutionStart, restx.HandlerFunc(c.start))
	g.PushBack(restx.AfterAttempt, restx.HandlerFunc(c.attempt))
	g.PushBack(restx.AfterAttemptTimeout, restx.HandlerFunc(c.timeout))
	g.PushBack(restx.BeforeBackoff, restx.HandlerFunc(c.backoff))
	g.PushBack(restx.AfterExecutionEnd, restx.HandlerFunc(c.end))
}

func (c *Collector) start(_ restx.Event, e *request.Execution) {
	c.inFlight.WithLabelValues(labels(e)...).Inc()
}

func (c *Collector) attempt(_ restx.Event, e *request.Execution) {
	c.attempts.WithLabelValues(labels(e)...).Inc()
}

func (c *Collector) timeout(_ restx.Event, e *request.Execution) {
	c.attemptTimeout.WithLabelValues(labels(e)...).Inc()
}

func (c *Collector) backoff(_ restx.Event, e *request.Execution) {
	method, host := e.Plan.Method, e.Plan.URL.Host
	c.retries.WithLabelValues(method, host, strconv.Itoa(e.Attempt)).Inc()
}

func (c *Collector) end(_ restx.Event, e *request.Execution) {
	method, host := e.Plan.Method, e.Plan.URL.Host
	c.inFlight.WithLabelValues(method, host).Dec()
	c.requests.WithLabelValues(method, host, strconv.Itoa(e.StatusCode())).Inc()
	c.duration.WithLabelValues(method, host).Observe(e.Duration().Seconds())
	if e.Err != nil {
		c.errors.WithLabelValues(method, host, ErrorType(e.Err)).Inc()
	}
}

func labels(e *request.Execution) []string {
	return []string{e.Plan.Method, e.Plan.URL.Host}
}

// ErrorType names the class of a client error for the "type" label:
// "transport", "decode", "status" or "other". Argument errors are not
// counted because they end a request before its execution starts.
func ErrorType(err error) string {
	var transportErr *restx.TransportError
	var decodeErr *result.DecodeError
	var statusErr *restx.StatusError
	switch {
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "other"
	}
}
