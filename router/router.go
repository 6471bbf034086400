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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"rivaas.dev/contract"
	apierrors "rivaas.dev/contract/errors"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Router serves contract-validated routes.
// Register routes before serving; registration is not safe for concurrent use.
type Router struct {
	mux            chi.Router
	validator      *contract.Validator
	validatorOpts  []contract.Option
	formatter      apierrors.Formatter
	logger         *slog.Logger
	maxBodyBytes   int64
	enableH2C      bool
	serverTimeouts *serverTimeouts

	serverMu sync.Mutex
	server   *http.Server
}

// New creates a [Router].
//
// Example:
//
//	r, err := router.New(
//	    router.WithLogger(slog.Default()),
//	    router.WithMaxBodyBytes(1 << 20),
//	)
func New(opts ...Option) (*Router, error) {
	r := &Router{maxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(r)
	}

	if r.maxBodyBytes <= 0 {
		return nil, ErrInvalidMaxBodyBytes
	}
	if r.serverTimeouts != nil {
		if err := r.serverTimeouts.validate(); err != nil {
			return nil, err
		}
	}
	if r.logger == nil {
		r.logger = noopLogger
	}
	if r.formatter == nil {
		r.formatter = apierrors.NewRFC9457("")
	}
	if r.mux == nil {
		r.mux = chi.NewRouter()
	}
	if r.validator == nil {
		vopts := append([]contract.Option{contract.WithLogger(r.logger)}, r.validatorOpts...)
		v, err := contract.New(vopts...)
		if err != nil {
			return nil, fmt.Errorf("create validator: %w", err)
		}
		r.validator = v
	}

	return r, nil
}

// MustNew creates a [Router] and panics if configuration is invalid.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}

	return r
}

// Validator returns the validator routes are wrapped with.
func (r *Router) Validator() *contract.Validator {
	return r.validator
}

// Mux returns the underlying chi router.
func (r *Router) Mux() chi.Router {
	return r.mux
}

// Use appends net/http middleware to the mux, such as chi's middleware package.
// chi requires Use to be called before any route is registered.
func (r *Router) Use(middlewares ...func(http.Handler) http.Handler) {
	r.mux.Use(middlewares...)
}

// AddRoute registers a route with its contract. See [contract.Validator.AddRoute].
func (r *Router) AddRoute(route contract.Route, h contract.HandlerFunc) error {
	return r.validator.AddRoute(r, route, h)
}

// MustAddRoute is like [Router.AddRoute] but panics on error.
func (r *Router) MustAddRoute(route contract.Route, h contract.HandlerFunc) {
	if err := r.AddRoute(route, h); err != nil {
		panic(fmt.Sprintf("router.MustAddRoute: %v", err))
	}
}

// Handle registers h for method and pattern without adding validation.
// It implements [contract.Registrar].
func (r *Router) Handle(method, pattern string, h contract.HandlerFunc) (err error) {
	defer func() {
		// chi panics on methods and patterns it cannot route.
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrRouteRejected, rec)
		}
	}()

	r.mux.Method(method, pattern, r.adapt(h))
	return nil
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// adapt runs h for a net/http request.
func (r *Router) adapt(h contract.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		c := contract.NewContext(req)

		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				c.Request.Params[key] = rctx.URLParams.Values[i]
			}
		}

		body, err := r.decodeBody(w, req)
		if err != nil {
			r.writeError(w, req, err)
			return
		}
		c.Request.Body = body

		if err := h(c); err != nil {
			r.writeError(w, req, err)
			return
		}

		r.writeResponse(w, req, c.Response)
	}
}

// writeError renders err with the configured formatter.
func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	resp := r.formatter.Format(req, err)

	var cerr *contract.Error
	switch {
	case errors.As(err, &cerr):
		r.logger.DebugContext(req.Context(), "contract violated",
			"method", req.Method,
			"path", req.URL.Path,
			"kind", cerr.Kind,
			"location", cerr.Location,
			"status", resp.Status,
		)
	case resp.Status >= http.StatusInternalServerError:
		r.logger.ErrorContext(req.Context(), "handler failed",
			"method", req.Method,
			"path", req.URL.Path,
			"status", resp.Status,
			"error", err,
		)
	}

	if werr := resp.Write(w); werr != nil {
		r.logger.WarnContext(req.Context(), "failed to write error response", "error", werr)
	}
}
