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

package router

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"rivaas.dev/contract"
	apierrors "rivaas.dev/contract/errors"
)

// DefaultMaxBodyBytes is the request body limit used unless [WithMaxBodyBytes] is given.
const DefaultMaxBodyBytes int64 = 10 << 20

// Option configures a [Router].
type Option func(*Router)

// WithValidator sets the validator used for every route.
// [WithValidatorOptions] is ignored when a validator is given.
func WithValidator(v *contract.Validator) Option {
	return func(r *Router) {
		r.validator = v
	}
}

// WithValidatorOptions configures the validator the router builds for itself.
//
// Example:
//
//	r := router.MustNew(router.WithValidatorOptions(
//	    contract.WithRequestFailureStatus(http.StatusUnprocessableEntity),
//	))
func WithValidatorOptions(opts ...contract.Option) Option {
	return func(r *Router) {
		r.validatorOpts = append(r.validatorOpts, opts...)
	}
}

// WithFormatter sets how errors are rendered. The default is RFC 9457
// problem details without a base URL.
func WithFormatter(f apierrors.Formatter) Option {
	return func(r *Router) {
		r.formatter = f
	}
}

// WithLogger sets the logger. It is also handed to the validator the router
// builds, unless [WithValidatorOptions] sets another one.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMaxBodyBytes limits the size of request bodies. Larger bodies are
// answered with 413.
func WithMaxBodyBytes(n int64) Option {
	return func(r *Router) {
		r.maxBodyBytes = n
	}
}

// WithMux hosts routes on an existing chi router, for example a sub-router
// that already carries middleware.
func WithMux(mux chi.Router) Option {
	return func(r *Router) {
		r.mux = mux
	}
}

// WithH2C enables HTTP/2 Cleartext support in [Router.Serve].
//
// Only use in development or behind a trusted load balancer.
func WithH2C(enable bool) Option {
	return func(r *Router) {
		r.enableH2C = enable
	}
}

// WithServerTimeouts configures the timeouts of the server started by [Router.Serve].
//
// Defaults (if not set):
//
//	ReadHeaderTimeout: 5s  - Time to read request headers
//	ReadTimeout:       15s - Time to read entire request
//	WriteTimeout:      30s - Time to write response
//	IdleTimeout:       60s - Keep-alive idle time
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(r *Router) {
		r.serverTimeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

func (t *serverTimeouts) validate() error {
	if t.readHeader <= 0 || t.read <= 0 || t.write <= 0 || t.idle <= 0 {
		return ErrServerTimeoutInvalid
	}

	return nil
}
