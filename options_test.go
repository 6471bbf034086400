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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/contract/schema"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, v.RequestFailureStatus())
	assert.Equal(t, http.StatusInternalServerError, v.ResponseFailureStatus())
	assert.False(t, v.cfg.ignoreResponses)
	assert.Equal(t, schema.Options{AllowUnknown: true}, v.cfg.schemaOptions)
	assert.NotNil(t, v.Logger())
	assert.Nil(t, v.metrics)
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []Option
		wantRequest  int
		wantResponse int
		wantErr      error
	}{
		{
			name:         "custom statuses",
			opts:         []Option{WithRequestFailureStatus(422), WithResponseFailureStatus(502)},
			wantRequest:  422,
			wantResponse: 502,
		},
		{
			name:         "zero keeps defaults",
			opts:         []Option{WithRequestFailureStatus(0), WithResponseFailureStatus(0)},
			wantRequest:  400,
			wantResponse: 500,
		},
		{name: "request status too low", opts: []Option{WithRequestFailureStatus(99)}, wantErr: ErrInvalidStatus},
		{name: "response status too high", opts: []Option{WithResponseFailureStatus(600)}, wantErr: ErrInvalidStatus},
		{name: "negative status", opts: []Option{WithRequestFailureStatus(-1)}, wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := New(tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRequest, v.RequestFailureStatus())
			assert.Equal(t, tt.wantResponse, v.ResponseFailureStatus())
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNew(WithResponseFailureStatus(1000)) })
	assert.NotPanics(t, func() { MustNew(WithLogger(nil)) })
}

func TestSchemaOptions_ArePassed(t *testing.T) {
	t.Parallel()

	opts := schema.Options{StripUnknown: true, NoConvert: true}
	var got schema.Options
	s := schema.Func(func(_ context.Context, v any, o schema.Options) (any, error) {
		got = o
		return v, nil
	})

	v := MustNew(WithSchemaOptions(opts))
	require.NoError(t, v.ValidateLocation(context.Background(), LocationQuery, NewEmptyContext(context.Background()), s))
	assert.Equal(t, opts, got)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	v := MustNew(WithMetrics(reg))
	rec := &recorder{}

	h := v.Middleware(&Spec{Query: rec.failing("query")})(func(*Context) error { return nil })
	for range 2 {
		require.Error(t, h(NewEmptyContext(context.Background())))
	}

	failures := v.metrics.failures
	assert.InDelta(t, 2.0, testutil.ToFloat64(failures.WithLabelValues(string(KindRequest), string(LocationQuery))), 0)

	// A second validator on the same registry shares the counter.
	other := MustNew(WithMetrics(reg))
	h = other.Middleware(&Spec{
		Responses: []StatusRule{Respond("404", ResponseRule{Body: rec.failing("body")})},
	})(func(*Context) error { return nil })
	require.Error(t, h(NewEmptyContext(context.Background())))

	assert.Same(t, failures, other.metrics.failures)
	assert.InDelta(t, 1.0, testutil.ToFloat64(failures.WithLabelValues(string(KindResponse), string(LocationResponseBody))), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(failures, "contract_validation_failures_total"))
}
