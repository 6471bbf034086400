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

package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFC9457_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		formatter  *RFC9457
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "plain error",
			formatter:  NewRFC9457("https://api.example.com/problems"),
			err:        &testError{message: "boom"},
			wantStatus: http.StatusInternalServerError,
			wantType:   "about:blank",
		},
		{
			name:       "coded error",
			formatter:  NewRFC9457("https://api.example.com/problems"),
			err:        codedError{&testError{message: "bad", code: "request_validation_error"}},
			wantStatus: http.StatusInternalServerError,
			wantType:   "https://api.example.com/problems/request_validation_error",
		},
		{
			name:       "coded error without base url",
			formatter:  NewRFC9457(""),
			err:        codedError{&testError{message: "bad", code: "response_validation_error"}},
			wantStatus: http.StatusInternalServerError,
			wantType:   "response_validation_error",
		},
		{
			name:       "status and code",
			formatter:  NewRFC9457("https://api.example.com/problems"),
			err:        statusCodedError{&testError{message: "bad", code: "request_validation_error", status: http.StatusUnprocessableEntity}},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   "https://api.example.com/problems/request_validation_error",
		},
		{
			name: "resolvers win",
			formatter: &RFC9457{
				TypeResolver:   func(error) string { return "urn:problem:custom" },
				StatusResolver: func(error) int { return http.StatusTeapot },
			},
			err:        statusCodedError{&testError{message: "bad", code: "x", status: http.StatusBadRequest}},
			wantStatus: http.StatusTeapot,
			wantType:   "urn:problem:custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/test?id=1", nil)
			resp := tt.formatter.Format(req, tt.err)

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, ContentTypeProblem, resp.ContentType)

			p, ok := resp.Body.(ProblemDetail)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, http.StatusText(tt.wantStatus), p.Title)
			assert.Equal(t, "/test", p.Instance)
			assert.Equal(t, tt.err.Error(), p.Detail)
		})
	}
}

func TestRFC9457_ErrorID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	p := NewRFC9457("").Format(req, &testError{message: "x"}).Body.(ProblemDetail)
	id, ok := p.Extensions["error_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	fixed := &RFC9457{ErrorIDGenerator: func() string { return "err-1" }}
	p = fixed.Format(req, &testError{message: "x"}).Body.(ProblemDetail)
	assert.Equal(t, "err-1", p.Extensions["error_id"])

	disabled := &RFC9457{DisableErrorID: true}
	p = disabled.Format(req, &testError{message: "x"}).Body.(ProblemDetail)
	assert.NotContains(t, p.Extensions, "error_id")
}

func TestRFC9457_Details(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/demo", nil)
	f := &RFC9457{DisableErrorID: true}

	t.Run("map details are inlined", func(t *testing.T) {
		t.Parallel()

		err := detailedError{&testError{message: "bad", details: map[string]any{
			"location": "body",
			"status":   999,
		}}}
		resp := f.Format(req, err)

		raw, mErr := json.Marshal(resp.Body)
		require.NoError(t, mErr)
		assert.JSONEq(t, `{
			"type": "about:blank",
			"title": "Internal Server Error",
			"status": 500,
			"detail": "bad",
			"instance": "/demo",
			"location": "body"
		}`, string(raw))
	})

	t.Run("other details go under errors", func(t *testing.T) {
		t.Parallel()

		err := detailedError{&testError{message: "bad", details: []string{"a", "b"}}}
		p := f.Format(req, err).Body.(ProblemDetail)
		assert.Equal(t, []string{"a", "b"}, p.Extensions["errors"])
	})
}
