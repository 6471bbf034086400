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

// Package router hosts contract-validated routes on a go-chi mux.
//
// The router turns each *http.Request into a [contract.Context]: headers and
// query string are copied, chi path parameters fill Params, and the body is
// decoded by content type (JSON, url-encoded and multipart forms, text).
// Routes run behind the validation middleware of a [contract.Validator]; the
// resulting response is encoded back onto the wire and errors are rendered
// through an [errors.Formatter] (RFC 9457 problem details by default).
//
// # Quick Start
//
//	r := router.MustNew()
//
//	r.MustAddRoute(contract.Route{
//	    Path:   "/test",
//	    Method: "GET",
//	    Validate: &contract.Spec{
//	        Query: schema.MustJSON(`{"type": "object", "properties": {"id": {"type": "number"}}, "required": ["id"]}`),
//	    },
//	}, func(c *contract.Context) error {
//	    c.Response.JSON(http.StatusOK, map[string]any{"code": 0, "msg": "ok"})
//	    return nil
//	})
//
//	http.ListenAndServe(":8080", r)
//
// # Response encoding
//
//   - string: text/plain
//   - []byte: application/octet-stream
//   - nil: status line only
//   - anything else: JSON
//
// A Content-Type set by the handler is kept.
//
// # Constructor Pattern
//
// [New] returns an error because it builds a [contract.Validator] and may
// register Prometheus collectors; [MustNew] panics instead. All options use
// the "With" prefix.
package router
