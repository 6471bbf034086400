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
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/contract/schema"
)

// noopLogger is used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Validator builds validation middleware and validates individual locations.
// It is immutable after [New] and safe for concurrent use.
type Validator struct {
	cfg     *config
	metrics *metrics
	tracer  trace.Tracer
}

// New creates a [Validator] with the given options.
//
// Example:
//
//	v, err := contract.New(
//	    contract.WithRequestFailureStatus(http.StatusUnprocessableEntity),
//	    contract.WithLogger(slog.Default()),
//	)
func New(opts ...Option) (*Validator, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m, err := newMetrics(cfg.registerer)
	if err != nil {
		return nil, err
	}

	return &Validator{cfg: cfg, metrics: m, tracer: newTracer(cfg.tracerProvider)}, nil
}

// MustNew creates a [Validator] with the given options.
// Panics if configuration is invalid.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("contract.MustNew: %v", err))
	}

	return v
}

// RequestFailureStatus returns the status used for request validation errors.
func (v *Validator) RequestFailureStatus() int {
	return v.cfg.requestFailureStatus
}

// ResponseFailureStatus returns the status used for response validation errors.
func (v *Validator) ResponseFailureStatus() int {
	return v.cfg.responseFailureStatus
}

// Logger returns the configured logger.
func (v *Validator) Logger() *slog.Logger {
	return v.cfg.logger
}

// ValidateLocation validates one inbound location of c against s and writes
// the normalized value back. A nil schema validates nothing.
//
// On failure it returns a request [*Error] and leaves c untouched.
func (v *Validator) ValidateLocation(ctx context.Context, loc Location, c *Context, s schema.Schema) error {
	if s == nil {
		return nil
	}

	out, err := s.Validate(ctx, extract(c.Request, loc), v.cfg.schemaOptions)
	if err != nil {
		return v.fail(ctx, KindRequest, loc, err)
	}

	writeBack(c.Request, loc, out)
	return nil
}

// fail builds the error for a failed validation and records it.
func (v *Validator) fail(ctx context.Context, kind Kind, loc Location, err error) *Error {
	status := v.cfg.requestFailureStatus
	if kind == KindResponse {
		status = v.cfg.responseFailureStatus
	}

	v.cfg.logger.DebugContext(ctx, "contract violated",
		"kind", kind,
		"location", loc,
		"status", status,
		"error", err,
	)
	v.metrics.recordFailure(kind, loc)

	return &Error{Err: err, Status: status, Kind: kind, Location: loc}
}
