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

package errors

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/google/uuid"
)

// ContentTypeProblem is the media type of RFC 9457 responses.
const ContentTypeProblem = "application/problem+json; charset=utf-8"

// RFC9457 formats errors as RFC 9457 Problem Details.
//
// The problem type is BaseURL + "/" + the error's code, so a failed request
// contract becomes "https://api.example.com/problems/request_validation_error".
// Field level failures end up in the "errors" extension.
type RFC9457 struct {
	// BaseURL is prepended to error codes to build problem type URIs.
	BaseURL string

	// TypeResolver overrides the problem type URI.
	TypeResolver func(err error) string

	// StatusResolver overrides the status code. The default is the status
	// declared through [ErrorType], else 500.
	StatusResolver func(err error) int

	// ErrorIDGenerator generates the "error_id" extension. Defaults to a random UUID.
	ErrorIDGenerator func() string

	// DisableErrorID omits the "error_id" extension.
	DisableErrorID bool
}

// NewRFC9457 returns an RFC 9457 formatter using baseURL for problem types.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// ProblemDetail is an RFC 9457 problem detail object.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"` // Marshaled inline
}

var reservedProblemFields = map[string]bool{
	"type": true, "title": true, "status": true, "detail": true, "instance": true,
}

// MarshalJSON inlines the extensions. Extensions never override the
// standard members.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extensions)+5)
	for k, v := range p.Extensions {
		if !reservedProblemFields[k] {
			m[k] = v
		}
	}

	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}

	return json.Marshal(m)
}

// Format converts err into a problem detail response.
func (f *RFC9457) Format(req *http.Request, err error) Response {
	status := f.status(err)

	p := ProblemDetail{
		Type:       f.problemType(err),
		Title:      http.StatusText(status),
		Status:     status,
		Detail:     err.Error(),
		Extensions: make(map[string]any),
	}
	if req != nil && req.URL != nil {
		p.Instance = req.URL.Path
	}

	if !f.DisableErrorID {
		gen := f.ErrorIDGenerator
		if gen == nil {
			gen = uuid.NewString
		}
		p.Extensions["error_id"] = gen()
	}

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		switch d := detailed.Details().(type) {
		case map[string]any:
			maps.Copy(p.Extensions, d)
		case nil:
		default:
			p.Extensions["errors"] = d
		}
	}

	var coded ErrorCode
	if errors.As(err, &coded) {
		p.Extensions["code"] = coded.Code()
	}

	return Response{
		Status:      status,
		ContentType: ContentTypeProblem,
		Body:        p,
	}
}

func (f *RFC9457) status(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}

	return StatusOf(err, http.StatusInternalServerError)
}

func (f *RFC9457) problemType(err error) string {
	if f.TypeResolver != nil {
		return f.TypeResolver(err)
	}

	var coded ErrorCode
	if !errors.As(err, &coded) {
		return "about:blank"
	}
	if f.BaseURL == "" {
		return coded.Code()
	}

	return f.BaseURL + "/" + coded.Code()
}
