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
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/contract/schema"
)

// config holds the configuration of a [Validator].
type config struct {
	requestFailureStatus  int
	responseFailureStatus int
	ignoreResponses       bool
	schemaOptions         schema.Options
	logger                *slog.Logger
	registerer            prometheus.Registerer
	tracerProvider        trace.TracerProvider
}

func newConfig() *config {
	return &config{
		requestFailureStatus:  http.StatusBadRequest,
		responseFailureStatus: http.StatusInternalServerError,
		schemaOptions:         schema.DefaultOptions(),
		logger:                noopLogger,
	}
}

// validate checks the configuration for errors.
func (c *config) validate() error {
	if !validStatus(c.requestFailureStatus) {
		return fmt.Errorf("%w: request failure status %d", ErrInvalidStatus, c.requestFailureStatus)
	}
	if !validStatus(c.responseFailureStatus) {
		return fmt.Errorf("%w: response failure status %d", ErrInvalidStatus, c.responseFailureStatus)
	}

	return nil
}

func validStatus(status int) bool {
	return status >= 100 && status <= 599
}

// Option configures a [Validator].
type Option func(*config)

// WithRequestFailureStatus sets the status of request validation errors.
// Zero keeps the default, 400.
//
// Example:
//
//	v := contract.MustNew(contract.WithRequestFailureStatus(http.StatusUnprocessableEntity))
func WithRequestFailureStatus(status int) Option {
	return func(c *config) {
		if status != 0 {
			c.requestFailureStatus = status
		}
	}
}

// WithResponseFailureStatus sets the status of response validation errors.
// Zero keeps the default, 500.
func WithResponseFailureStatus(status int) Option {
	return func(c *config) {
		if status != 0 {
			c.responseFailureStatus = status
		}
	}
}

// WithIgnoreResponseValidation turns the response stage off. Response rules
// stay declared but are never evaluated.
func WithIgnoreResponseValidation(ignore bool) Option {
	return func(c *config) {
		c.ignoreResponses = ignore
	}
}

// WithSchemaOptions sets the options passed to every schema.
// The default allows unknown keys and converts types.
//
// Example:
//
//	v := contract.MustNew(contract.WithSchemaOptions(schema.Options{StripUnknown: true}))
func WithSchemaOptions(opts schema.Options) Option {
	return func(c *config) {
		c.schemaOptions = opts
	}
}

// WithLogger sets the logger for route registration and validation failures.
// Everything is logged at debug level. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = noopLogger
		}
		c.logger = logger
	}
}

// WithMetrics registers the contract_validation_failures_total counter on reg.
// Validators sharing a registerer share the counter.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithTracerProvider records a span per validation stage, named
// contract.request and contract.response. The default is a no-op provider.
//
// Example:
//
//	tp := sdktrace.NewTracerProvider()
//	v := contract.MustNew(contract.WithTracerProvider(tp))
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}
