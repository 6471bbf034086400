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
	"net/http"
)

// Formatter turns an error into the pieces of an HTTP error response.
//
// Example:
//
//	response := errors.NewRFC9457("https://api.example.com/problems").Format(req, err)
//	_ = response.Write(w)
type Formatter interface {
	// Format converts err into status code, content type and body.
	// req is used for request-scoped fields such as the problem instance.
	Format(req *http.Request, err error) Response
}

// Response is a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is marshaled to JSON by [Response.Write].
	Body any

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// Write sends the response: headers, status line and the JSON body.
func (r Response) Write(w http.ResponseWriter) error {
	for k, vals := range r.Headers {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", r.ContentType)
	w.WriteHeader(r.Status)

	if r.Body == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(r.Body)
}

// ErrorType is implemented by errors that carry their own HTTP status code.
// Contract validation errors implement it with the configured failure status.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorDetails is implemented by errors that expose structured details,
// typically the failing fields of a validation.
type ErrorDetails interface {
	error
	Details() any
}

// ErrorCode is implemented by errors that expose a machine-readable code
// such as "request_validation_error".
type ErrorCode interface {
	error
	Code() string
}

// StatusOf returns the status declared by err through [ErrorType],
// or fallback when no error in the chain declares one.
func StatusOf(err error, fallback int) int {
	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return fallback
}

// WithStatus wraps err with an explicit HTTP status code.
// If err is nil, the status text is used as the error message.
//
// Example:
//
//	return errors.WithStatus(err, http.StatusNotFound)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}

	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}
