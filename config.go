// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"net/http"

	"github.com/gogama/restx/charset"
	"github.com/gogama/restx/payload"
	"github.com/gogama/restx/request"
	"github.com/gogama/restx/retry"
	"github.com/gogama/restx/timeout"
	"golang.org/x/text/encoding"
)

// A Config holds the settings shared by every Client that references
// it: global default headers, a global base URI, and the timeout and
// retry policies. Client fields and per-request plan fields override
// them.
//
// A Config is read, never written, by request executions. Changing a
// Config while requests using it are in flight has no defined
// ordering.
type Config struct {
	// Header holds default header fields sent with every request.
	// Client and plan headers of the same name override them.
	Header http.Header

	// BaseURI is prefixed to the path of every Builder request whose
	// path is not an absolute URI, unless the Client has a BaseURI of
	// its own.
	BaseURI string

	// TimeoutPolicy sets the connect and read timeouts of each
	// attempt. If nil, timeout.Platform is used and no timeouts are
	// set.
	TimeoutPolicy timeout.Policy

	// RetryPolicy decides whether to retry and how long to wait. If
	// nil, retry.Never is used.
	RetryPolicy retry.Policy

	// Charset names the character encoding of text payloads and
	// string results. Empty means UTF-8.
	Charset string

	// JSONIndent, if not empty, indents JSON payloads.
	JSONIndent string

	// Logger receives the client's structured log records. If nil,
	// records are discarded.
	Logger SLogger
}

// DefaultConfig returns a new Config with the package defaults: a
// connect timeout of 10 seconds, a read timeout of 60 seconds, the
// default retry policy allowing up to 2 retries, UTF-8 text, and no
// logging.
func DefaultConfig() *Config {
	return &Config{
		Header:        make(http.Header),
		TimeoutPolicy: timeout.DefaultPolicy,
		RetryPolicy:   retry.DefaultPolicy,
		Charset:       charset.UTF8,
		Logger:        DefaultSLogger(),
	}
}

var defaultConfig = DefaultConfig()

func (cfg *Config) timeoutPolicy() timeout.Policy {
	if cfg.TimeoutPolicy == nil {
		return timeout.Platform
	}
	return cfg.TimeoutPolicy
}

func (cfg *Config) retryPolicy() retry.Policy {
	if cfg.RetryPolicy == nil {
		return retry.Never
	}
	return cfg.RetryPolicy
}

func (cfg *Config) logger() SLogger {
	if cfg.Logger == nil {
		return DefaultSLogger()
	}
	return cfg.Logger
}

func (cfg *Config) encoding() (encoding.Encoding, error) {
	enc, err := charset.Lookup(cfg.Charset)
	if err != nil {
		return nil, &request.ArgumentError{Arg: "charset", Msg: "unknown charset " + cfg.Charset, Err: err}
	}
	return enc, nil
}

func (cfg *Config) encoder(p *request.Plan, enc encoding.Encoding) payload.Encoder {
	return payload.Encoder{
		Compress: p.Compress,
		Charset:  enc,
		Indent:   cfg.JSONIndent,
	}
}
