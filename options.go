// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"io"
	"log/slog"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxDeltas is the default limit on the number of delta cycles per
// simulated instant.
//
const DefaultMaxDeltas = 1000

// An Option configures a Kernel.
//
type Option func(k *Kernel)

// WithLogger sets the kernel's logger. By default, the kernel does not log.
//
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.log = l
		}
	}
}

// WithClock sets the wall clock used to measure run times (see Stats).
//
func WithClock(clk clock.Clock) Option {
	return func(k *Kernel) {
		if clk != nil {
			k.clk = clk
		}
	}
}

// WithMaxDeltas sets the maximum number of delta cycles allowed in a single
// simulated instant before Run fails with ErrCombinationalLoop. Values less
// than 1 are ignored.
//
func WithMaxDeltas(n int) Option {
	return func(k *Kernel) {
		if n > 0 {
			k.maxDeltas = n
		}
	}
}

// WithTracer sets the OpenTelemetry tracer used to trace kernel runs. It
// defaults to the global tracer provider's.
//
func WithTracer(t trace.Tracer) Option {
	return func(k *Kernel) {
		if t != nil {
			k.tracer = t
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
