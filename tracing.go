// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/db47h/evsim"

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func (k *Kernel) startSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return k.tracer.Start(ctx, "evsim."+name, opts...)
}
