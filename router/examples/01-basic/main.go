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

// Package main serves two routes whose requests and responses are checked
// against JSON Schemas.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"rivaas.dev/contract"
	"rivaas.dev/contract/router"
	"rivaas.dev/contract/schema"
)

var articleQuery = schema.MustJSON(`{
	"type": "object",
	"properties": {"id": {"type": "number", "description": "article id"}},
	"required": ["id"]
}`)

var articleBody = schema.MustJSON(`{
	"type": "object",
	"properties": {"code": {"type": "number"}, "msg": {"type": "string"}}
}`)

type signup struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := router.MustNew(router.WithLogger(logger))
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.MustAddRoute(contract.Route{
		Path:   "/test",
		Method: "GET",
		Validate: &contract.Spec{
			Query: articleQuery,
			Responses: []contract.StatusRule{
				contract.Respond("200", contract.ResponseRule{Body: articleBody}),
			},
		},
	}, func(c *contract.Context) error {
		c.Response.JSON(http.StatusOK, map[string]any{"code": 0, "msg": "ok"})
		return nil
	})

	r.MustAddRoute(contract.Route{
		Path:   "/signup",
		Method: "POST",
		Validate: &contract.Spec{
			FormData: schema.Struct[signup](),
		},
	}, func(c *contract.Context) error {
		form, _ := c.Request.Body.(map[string]any)
		c.Response.JSON(http.StatusCreated, map[string]any{"welcome": form["username"]})
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("try: curl 'http://localhost:8080/test?id=1'")
		if err := r.Serve(":8080"); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
