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
	"net/url"
	"strings"
)

// Request is the inbound side of a [Context]. Validation writes normalized
// values back into these stores.
type Request struct {
	// Header holds the request headers. It is never modified by validation.
	Header http.Header

	// Query holds the query parameters. Repeated keys are []any.
	Query map[string]any

	// Params holds the path parameters.
	Params map[string]any

	// Body is the decoded request body; form submissions decode to a map.
	Body any

	// Fields holds values for custom locations.
	Fields map[string]any

	raw *http.Request
}

// Raw returns the underlying *http.Request, or nil for contexts built without one.
func (r *Request) Raw() *http.Request {
	return r.raw
}

// Response is the outbound side of a [Context].
type Response struct {
	// Status is the explicit status code; zero means unset. See [Response.StatusCode].
	Status int

	// Header holds the response headers.
	Header http.Header

	// Body is the response payload, encoded by the HTTP layer.
	Body any

	bodySet bool
}

// StatusCode returns the effective status: the explicit status if one was
// set, 204 after SetBody(nil), 200 after any other SetBody, and 404 when the
// handler produced nothing.
func (r *Response) StatusCode() int {
	switch {
	case r.Status != 0:
		return r.Status
	case r.bodySet && r.Body == nil:
		return http.StatusNoContent
	case r.bodySet:
		return http.StatusOK
	default:
		return http.StatusNotFound
	}
}

// SetStatus sets the explicit status code.
func (r *Response) SetStatus(status int) {
	r.Status = status
}

// SetBody sets the response payload.
func (r *Response) SetBody(body any) {
	r.Body = body
	r.bodySet = true
}

// JSON sets status and body in one call.
func (r *Response) JSON(status int, body any) {
	r.Status = status
	r.SetBody(body)
}

// HasBody reports whether the handler set a body.
func (r *Response) HasBody() bool {
	return r.bodySet
}

// Context carries one request/response exchange through the middleware chain.
// It is owned by a single request and must not be shared.
type Context struct {
	Request  *Request
	Response *Response

	ctx context.Context //nolint:containedctx // carried with the exchange like http.Request does
}

// NewContext builds a [Context] for r. Headers (including Host) and the
// query string are copied into the request stores; Params, Body and Fields
// start empty and are filled by the HTTP layer.
func NewContext(r *http.Request) *Context {
	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	if r.Host != "" && header.Get("Host") == "" {
		header.Set("Host", r.Host)
	}

	var query url.Values
	if r.URL != nil {
		query = r.URL.Query()
	}

	return &Context{
		Request: &Request{
			Header: header,
			Query:  QueryMap(query),
			Params: make(map[string]any),
			Fields: make(map[string]any),
			raw:    r,
		},
		Response: &Response{Header: make(http.Header)},
		ctx:      r.Context(),
	}
}

// NewEmptyContext returns a [Context] with empty stores and no underlying request.
func NewEmptyContext(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Context{
		Request: &Request{
			Header: make(http.Header),
			Query:  make(map[string]any),
			Params: make(map[string]any),
			Fields: make(map[string]any),
		},
		Response: &Response{Header: make(http.Header)},
		ctx:      ctx,
	}
}

// Context returns the context.Context of the exchange.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}

	return c.ctx
}

// WithContext replaces the context.Context of the exchange.
func (c *Context) WithContext(ctx context.Context) {
	c.ctx = ctx
}

// QueryMap renders query values the way schemas see them: a key with one
// value maps to a string, a repeated key to a []any of strings.
func QueryMap(values url.Values) map[string]any {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		m[k] = flattenValues(vals)
	}

	return m
}

// HeaderMap renders headers the way schemas see them: lower-cased names,
// a single value as a string and repeated values as a []any of strings.
func HeaderMap(h http.Header) map[string]any {
	m := make(map[string]any, len(h))
	for k, vals := range h {
		if len(vals) == 0 {
			continue
		}
		m[strings.ToLower(k)] = flattenValues(vals)
	}

	return m
}

func flattenValues(vals []string) any {
	if len(vals) == 1 {
		return vals[0]
	}

	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}

	return out
}
