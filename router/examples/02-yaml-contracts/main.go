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

// Package main binds route contracts declared in YAML to Go handlers.
package main

import (
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"rivaas.dev/contract"
	"rivaas.dev/contract/router"
	"rivaas.dev/contract/specfile"
)

//go:embed routes.yaml
var routes []byte

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	doc, err := specfile.Parse(routes)
	if err != nil {
		logger.Error("invalid contracts", "error", err)
		os.Exit(1)
	}

	r := router.MustNew(
		router.WithLogger(logger),
		router.WithValidatorOptions(doc.ValidatorOptions()...),
	)

	err = doc.Register(r, map[string]contract.HandlerFunc{
		"login": func(c *contract.Context) error {
			c.Response.SetBody([]int{1, 2, 3})
			return nil
		},
		// Echoes the form back, which breaks its own response contract.
		"demo": func(c *contract.Context) error {
			c.Response.SetBody(c.Request.Body)
			return nil
		},
	})
	if err != nil {
		logger.Error("register routes", "error", err)
		os.Exit(1)
	}

	logger.Info("server starting", "addr", ":8080")
	if err := r.Serve(":8080"); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
