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

//go:build !integration

package specfile

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/contract"
	"rivaas.dev/contract/router"
	"rivaas.dev/contract/schema"
)

func testHandlers() map[string]contract.HandlerFunc {
	return map[string]contract.HandlerFunc{
		"getTest": func(c *contract.Context) error {
			c.Response.JSON(http.StatusOK, map[string]any{"code": 0, "msg": "ok"})
			return nil
		},
		"postTest": func(c *contract.Context) error {
			c.Response.SetBody([]any{1, 2, 3})
			return nil
		},
		"demo": func(c *contract.Context) error {
			c.Response.SetBody(c.Request.Body)
			return nil
		},
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	doc, err := Load(filepath.Join("testdata", "routes.yaml"))
	require.NoError(t, err)

	require.Len(t, doc.Routes, 3)
	assert.Equal(t, 422, doc.Options.RequestFailureStatus)

	get := doc.Routes[0]
	assert.Equal(t, "getTest", get.Handler)
	assert.Equal(t, "/test", get.Path)
	require.NotNil(t, get.Validate)
	assert.NotNil(t, get.Validate.Query)
	assert.Nil(t, get.Validate.Body)

	post := doc.Routes[1]
	require.Len(t, post.Validate.Responses, 2)
	assert.Equal(t, "200-299", post.Validate.Responses[0].Status)
	assert.Equal(t, "200", post.Validate.Responses[1].Status)

	demo := doc.Routes[2]
	methods, err := demo.ParseMethods()
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPost, http.MethodPut}, methods)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read contract document")
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "unknown top-level key",
			doc:     "routez: []",
			wantMsg: "routez",
		},
		{
			name:    "missing path",
			doc:     "routes:\n  - method: GET\n    handler: h\n",
			wantMsg: "route path is required",
		},
		{
			name:    "missing handler",
			doc:     "routes:\n  - path: /x\n    method: GET\n",
			wantMsg: "handler is required",
		},
		{
			name:    "bad method",
			doc:     "routes:\n  - path: /x\n    method: FETCH\n    handler: h\n",
			wantMsg: "invalid route method",
		},
		{
			name:    "bad schema",
			doc:     "routes:\n  - path: /x\n    method: GET\n    handler: h\n    validate:\n      query: {type: 12}\n",
			wantMsg: "query",
		},
		{
			name:    "bad response rule",
			doc:     "routes:\n  - path: /x\n    method: GET\n    handler: h\n    validate:\n      responses:\n        200:\n          bodyy: {}\n",
			wantMsg: "unknown key",
		},
		{
			name:    "response rule not a mapping",
			doc:     "routes:\n  - path: /x\n    method: GET\n    handler: h\n    validate:\n      responses:\n        200: [1]\n",
			wantMsg: "expected a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidDocument)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_InlineJSONSchema(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`
routes:
  - path: /x
    method: GET
    handler: h
    validate:
      query: '{"type": "object", "required": ["q"]}'
`))
	require.NoError(t, err)

	_, err = doc.Routes[0].Validate.Query.Validate(t.Context(), map[string]any{}, schema.DefaultOptions())
	require.ErrorIs(t, err, schema.ErrValidation)
}

func TestDocument_ValidatorOptions(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte("options:\n  responseFailureStatus: 502\n  allowUnknown: false\nroutes: []\n"))
	require.NoError(t, err)

	v, err := contract.New(doc.ValidatorOptions()...)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, v.RequestFailureStatus())
	assert.Equal(t, http.StatusBadGateway, v.ResponseFailureStatus())

	doc.Options.RequestFailureStatus = 99
	_, err = contract.New(doc.ValidatorOptions()...)
	require.ErrorIs(t, err, contract.ErrInvalidStatus)
}

func TestDocument_Register(t *testing.T) {
	t.Parallel()

	doc, err := Load(filepath.Join("testdata", "routes.yaml"))
	require.NoError(t, err)

	r := router.MustNew(router.WithValidatorOptions(doc.ValidatorOptions()...))
	require.NoError(t, doc.Register(r, testHandlers()))

	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		wantStatus  int
	}{
		{name: "valid query", method: http.MethodGet, target: "/test?id=123", wantStatus: http.StatusOK},
		{name: "missing query", method: http.MethodGet, target: "/test", wantStatus: http.StatusUnprocessableEntity},
		{
			name:        "first matching response rule wins",
			method:      http.MethodPost,
			target:      "/test",
			contentType: "application/json",
			body:        `{"username": "bob", "password": "secret"}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "response contract violated",
			method:      http.MethodPut,
			target:      "/demo",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"username": {"bob"}, "email": {"bob@example.com"}}.Encode(),
			wantStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestDocument_RegisterUnknownHandler(t *testing.T) {
	t.Parallel()

	doc, err := Load(filepath.Join("testdata", "routes.yaml"))
	require.NoError(t, err)

	handlers := testHandlers()
	delete(handlers, "demo")

	var added []string
	adder := routeAdderFunc(func(route contract.Route, _ contract.HandlerFunc) error {
		added = append(added, route.Path)
		return nil
	})

	err = doc.Register(adder, handlers)
	require.ErrorIs(t, err, ErrUnknownHandler)
	assert.Contains(t, err.Error(), `"demo"`)
	assert.Empty(t, added)
}

type routeAdderFunc func(route contract.Route, h contract.HandlerFunc) error

func (f routeAdderFunc) AddRoute(route contract.Route, h contract.HandlerFunc) error {
	return f(route, h)
}
