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

// Package contract validates HTTP requests and responses against per-route
// contracts.
//
// A route declares a [Spec]: optional schemas for the inbound header, body,
// query, path params and form data, plus an ordered list of response rules
// keyed by status expressions ("200", "200,201", "400-499"). The middleware
// built by [Validator.Middleware] validates each declared inbound location
// before the handler runs, writes the normalized values back into the request,
// and after the handler returns validates the response against the first rule
// whose status expression matches.
//
// # Quick Start
//
//	v := contract.MustNew()
//
//	spec := &contract.Spec{
//		Query: schema.MustJSON(`{
//			"type": "object",
//			"properties": {"id": {"type": "number"}},
//			"required": ["id"]
//		}`),
//		Responses: []contract.StatusRule{
//			contract.Respond("200", contract.ResponseRule{
//				Body: schema.MustJSON(`{"type": "object", "required": ["code"]}`),
//			}),
//		},
//	}
//
//	h := v.Middleware(spec)(func(c *contract.Context) error {
//		id := c.Request.Query["id"].(float64) // coerced from "123"
//		c.Response.JSON(http.StatusOK, map[string]any{"code": 0, "id": id})
//		return nil
//	})
//
// Handlers and middleware operate on a [Context], independent of any HTTP
// framework. The rivaas.dev/contract/router package hosts validated routes on
// a go-chi mux and takes care of decoding bodies and writing responses.
//
// # Write-back
//
// Normalized values replace what the handler sees:
//
//   - header: validated only, never written back
//   - query, params: merged key by key into the store
//   - body, formData: merged key by key when both sides are objects, replaced otherwise
//
// Struct results, such as those of schema.Struct, count as objects: they are
// converted to maps keyed by their json tags before merging.
//   - any other location name: replaces Request.Fields[name]
//   - response body: replaced
//   - response headers: every normalized header is set on the response
//
// # Errors
//
// Validation failures are returned as [*Error]. Request failures carry the
// request failure status (400 by default), response failures the response
// failure status (500 by default). Only the first failure is reported.
//
//	var cerr *contract.Error
//	if errors.As(err, &cerr) {
//		log.Printf("%s in %s: %v", cerr.Kind, cerr.Location, cerr.Err)
//	}
//
// # Observability
//
// [WithLogger] logs registrations and failures at debug level, [WithMetrics]
// counts failures per kind and location, and [WithTracerProvider] wraps each
// validation stage in an OpenTelemetry span.
package contract
