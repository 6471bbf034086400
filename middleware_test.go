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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/contract/schema"
)

func TestMiddleware_NilSpec(t *testing.T) {
	t.Parallel()

	calls := 0
	h := MustNew().Middleware(nil)(func(*Context) error {
		calls++
		return nil
	})

	require.NoError(t, h(NewEmptyContext(context.Background())))
	assert.Equal(t, 1, calls)
}

func TestMiddleware_Flow(t *testing.T) {
	t.Parallel()

	v := MustNew()

	t.Run("request failure short-circuits the handler", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		called := false
		h := v.Middleware(&Spec{
			Query:     rec.failing("query"),
			Responses: []StatusRule{Respond("400", ResponseRule{Body: rec.passing("response")})},
		})(func(*Context) error {
			called = true
			return nil
		})

		err := h(NewEmptyContext(context.Background()))
		require.ErrorIs(t, err, ErrRequestValidation)
		assert.False(t, called)
		assert.Equal(t, []string{"query"}, rec.seen())
	})

	t.Run("handler sees normalized values", func(t *testing.T) {
		t.Parallel()

		var got any
		h := v.Middleware(&Spec{
			Query: schema.MustJSON(`{"type": "object", "properties": {"id": {"type": "number"}}, "required": ["id"]}`),
		})(func(c *Context) error {
			got = c.Request.Query["id"]
			return nil
		})

		c := NewEmptyContext(context.Background())
		c.Request.Query["id"] = "123"

		require.NoError(t, h(c))
		assert.Equal(t, 123.0, got)
	})

	t.Run("handler error skips the response stage", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		h := v.Middleware(&Spec{
			Responses: []StatusRule{Respond("100-599", ResponseRule{Body: rec.failing("response")})},
		})(func(*Context) error {
			return errBoom
		})

		err := h(NewEmptyContext(context.Background()))
		assert.Same(t, errBoom, err)
		assert.Empty(t, rec.seen())
	})

	t.Run("response failure is returned after the handler ran", func(t *testing.T) {
		t.Parallel()

		called := false
		h := v.Middleware(&Spec{
			Responses: []StatusRule{
				Respond("200", ResponseRule{Body: schema.MustJSON(`{"type": "string"}`)}),
			},
		})(func(c *Context) error {
			called = true
			c.Response.JSON(http.StatusOK, map[string]any{"username": "bob"})
			return nil
		})

		err := h(NewEmptyContext(context.Background()))
		require.ErrorIs(t, err, ErrResponseValidation)
		assert.True(t, called)
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(c *Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	h := Chain(func(*Context) error {
		order = append(order, "handler")
		return nil
	}, mw("outer"), mw("inner"))

	require.NoError(t, h(NewEmptyContext(context.Background())))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
