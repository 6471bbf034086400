// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package contract

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// instrumentationName identifies spans created by this package.
const instrumentationName = "rivaas.dev/contract"

// Span names.
const (
	spanRequest  = "contract.request"
	spanResponse = "contract.response"
)

func newTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	return tp.Tracer(instrumentationName)
}

// startStage starts the span of a validation stage.
func (v *Validator) startStage(ctx context.Context, name string) (context.Context, trace.Span) {
	return v.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

// endStage records the outcome of a stage and ends its span.
func endStage(span trace.Span, err error) {
	defer span.End()

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	var cerr *Error
	if errors.As(err, &cerr) {
		span.SetAttributes(
			attribute.String("contract.kind", string(cerr.Kind)),
			attribute.String("contract.location", string(cerr.Location)),
			attribute.Int("contract.status", cerr.Status),
		)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
