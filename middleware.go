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

// HandlerFunc handles one exchange. A returned error is reported by the HTTP layer.
type HandlerFunc func(c *Context) error

// Middleware wraps a [HandlerFunc].
type Middleware func(next HandlerFunc) HandlerFunc

// Middleware returns the validation middleware for spec.
//
// The request stage runs before next; if it fails next is not called. When
// next returns an error that error is returned as is and the response stage
// does not run. Otherwise the response stage runs unless response validation
// is disabled. A nil spec yields a middleware that returns next unchanged.
func (v *Validator) Middleware(spec *Spec) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		if spec == nil {
			return next
		}

		return func(c *Context) error {
			ctx := c.Context()

			rctx, span := v.startStage(ctx, spanRequest)
			err := v.validateRequest(rctx, spec, c)
			endStage(span, err)
			if err != nil {
				return err
			}

			if err := next(c); err != nil {
				return err
			}

			if v.cfg.ignoreResponses || len(spec.Responses) == 0 {
				return nil
			}

			rctx, span = v.startStage(ctx, spanResponse)
			err = v.validateResponse(rctx, spec, c)
			endStage(span, err)

			return err
		}
	}
}

// Chain wraps h with mws. The first middleware is the outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}
