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

package contract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponse_StatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r *Response)
		want  int
	}{
		{name: "nothing set", setup: func(*Response) {}, want: http.StatusNotFound},
		{name: "body set", setup: func(r *Response) { r.SetBody("x") }, want: http.StatusOK},
		{name: "nil body set", setup: func(r *Response) { r.SetBody(nil) }, want: http.StatusNoContent},
		{name: "explicit status", setup: func(r *Response) { r.SetStatus(http.StatusAccepted) }, want: http.StatusAccepted},
		{name: "json", setup: func(r *Response) { r.JSON(http.StatusCreated, map[string]any{}) }, want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &Response{Header: make(http.Header)}
			tt.setup(r)
			assert.Equal(t, tt.want, r.StatusCode())
		})
	}
}

func TestNewContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "http://api.test/items?a=1&b=2&b=3", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	req.Header.Set("X-One", "1")

	c := NewContext(req)

	assert.Same(t, req, c.Request.Raw())
	assert.Equal(t, "v", c.Context().Value(key{}))
	assert.Equal(t, map[string]any{"a": "1", "b": []any{"2", "3"}}, c.Request.Query)
	assert.Equal(t, "api.test", c.Request.Header.Get("Host"))
	assert.Empty(t, req.Header.Get("Host"), "the request headers are copied")
	assert.NotNil(t, c.Request.Params)
	assert.NotNil(t, c.Request.Fields)
	assert.Nil(t, c.Request.Body)
	assert.False(t, c.Response.HasBody())
}

func TestHeaderMap(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Add("X-Tag", "a")
	h.Add("X-Tag", "b")
	h["X-Empty"] = nil

	assert.Equal(t, map[string]any{
		"content-type": "application/json",
		"x-tag":        []any{"a", "b"},
	}, HeaderMap(h))
}

func TestQueryMap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]any{}, QueryMap(nil))
	assert.Equal(t, map[string]any{"q": "go"}, QueryMap(url.Values{"q": {"go"}}))
}

func TestNewEmptyContext(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // a nil context falls back to Background
	c := NewEmptyContext(nil)
	assert.Equal(t, context.Background(), c.Context())
	assert.Nil(t, c.Request.Raw())
}
