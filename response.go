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
	"net/http"

	"github.com/spf13/cast"
)

// validateResponse applies the first response rule whose status expression
// matches the response status. Headers are checked before the body; a header
// failure skips the body.
func (v *Validator) validateResponse(ctx context.Context, spec *Spec, c *Context) error {
	if v.cfg.ignoreResponses || len(spec.Responses) == 0 {
		return nil
	}

	status := c.Response.StatusCode()
	for _, rule := range spec.Responses {
		if !MatchStatus(status, rule.Status) {
			continue
		}

		if rule.Headers != nil {
			out, err := rule.Headers.Validate(ctx, HeaderMap(c.Response.Header), v.cfg.schemaOptions)
			if err != nil {
				return v.fail(ctx, KindResponse, LocationResponseHeaders, err)
			}
			setHeaders(c.Response.Header, out)
		}

		if rule.Body != nil {
			out, err := rule.Body.Validate(ctx, c.Response.Body, v.cfg.schemaOptions)
			if err != nil {
				return v.fail(ctx, KindResponse, LocationResponseBody, err)
			}
			c.Response.Body = out
		}

		return nil
	}

	return nil
}

// setHeaders sets every key of a normalized header object on h.
// Arrays become repeated headers.
func setHeaders(h http.Header, out any) {
	m, ok := out.(map[string]any)
	if !ok {
		return
	}

	for k, val := range m {
		switch vals := val.(type) {
		case []any:
			h.Del(k)
			for _, e := range vals {
				h.Add(k, cast.ToString(e))
			}
		case []string:
			h.Del(k)
			for _, e := range vals {
				h.Add(k, e)
			}
		default:
			h.Set(k, cast.ToString(val))
		}
	}
}
