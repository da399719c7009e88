// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

// SLogger abstracts the *slog.Logger behavior.
//
// Client logs at two levels: Info once per execution, when it ends,
// and Debug for each attempt and each backoff wait. Every record
// carries the execution ID.
//
// The *slog.Logger type satisfies this interface.
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// DefaultSLogger returns the default SLogger, which discards all
// output.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

func (discardSLogger) Debug(msg string, args ...any) {
	// nothing
}

func (discardSLogger) Info(msg string, args ...any) {
	// nothing
}
