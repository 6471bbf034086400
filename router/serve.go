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
	"context"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Serve starts an HTTP server on addr and blocks until it exits.
// Use [Router.Shutdown] from another goroutine for graceful shutdown.
//
// Example:
//
//	go func() {
//	    if err := r.Serve(":8080"); err != nil && !errors.Is(err, http.ErrServerClosed) {
//	        log.Fatal(err)
//	    }
//	}()
func (r *Router) Serve(addr string) error {
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return r.ServeListener(ln)
}

// ServeListener is like [Router.Serve] but accepts connections on ln.
// ln is closed when the server exits.
func (r *Router) ServeListener(ln net.Listener) error {
	h := http.Handler(r)
	if r.enableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
		r.logger.Warn("h2c enabled; use only in development or behind a trusted load balancer")
	}

	srv := r.newServer(ln.Addr().String(), h)
	r.logger.Info("server starting", "addr", ln.Addr().String())

	return srv.Serve(ln)
}

// ServeTLS starts an HTTPS server on addr and blocks until it exits.
func (r *Router) ServeTLS(addr, certFile, keyFile string) error {
	if addr == "" {
		addr = ":https"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return r.ServeTLSListener(ln, certFile, keyFile)
}

// ServeTLSListener is like [Router.ServeTLS] but accepts connections on ln.
func (r *Router) ServeTLSListener(ln net.Listener, certFile, keyFile string) error {
	srv := r.newServer(ln.Addr().String(), r)
	r.logger.Info("server starting", "addr", ln.Addr().String(), "tls", true)

	return srv.ServeTLS(ln, certFile, keyFile)
}

func (r *Router) newServer(addr string, h http.Handler) *http.Server {
	timeouts := r.serverTimeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}

	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	return srv
}

// Shutdown gracefully shuts the running server down. It returns nil when
// no server is running.
func (r *Router) Shutdown(ctx context.Context) error {
	r.serverMu.Lock()
	srv := r.server
	r.server = nil
	r.serverMu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}
