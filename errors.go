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
	"errors"

	"rivaas.dev/contract/schema"
)

// Sentinel errors matched by [Error.Is].
var (
	// ErrRequestValidation matches every request-side [*Error].
	ErrRequestValidation = errors.New("request validation failed")

	// ErrResponseValidation matches every response-side [*Error].
	ErrResponseValidation = errors.New("response validation failed")
)

// Configuration and registration errors.
var (
	// ErrInvalidStatus is returned by [New] for a failure status outside 100-599.
	ErrInvalidStatus = errors.New("invalid failure status")

	// ErrMissingMethod is returned when a route declares no method.
	ErrMissingMethod = errors.New("route method is required")

	// ErrInvalidMethod is returned for an empty or unknown method name.
	ErrInvalidMethod = errors.New("invalid route method")

	// ErrMissingPath is returned when a route has no path.
	ErrMissingPath = errors.New("route path is required")

	// ErrNilHandler is returned when a route has no handler.
	ErrNilHandler = errors.New("route handler is nil")

	// ErrNilRegistrar is returned when AddRoute is given no registrar.
	ErrNilRegistrar = errors.New("registrar is nil")
)

// Kind tells request failures from response failures.
type Kind string

const (
	// KindRequest marks failures of the request stage.
	KindRequest Kind = "RequestValidationError"

	// KindResponse marks failures of the response stage.
	KindResponse Kind = "ResponseValidationError"
)

// Error is a contract violation. It wraps the schema error unchanged.
//
// Error implements the HTTPStatus, Code and Details hooks used by the
// rivaas.dev/contract/errors formatters.
type Error struct {
	// Err is the error returned by the schema.
	Err error

	// Status is the HTTP status to answer with.
	Status int

	Kind     Kind
	Location Location
}

// Error returns the schema error message unchanged.
func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}

	return e.Err.Error()
}

// Unwrap returns the schema error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches [ErrRequestValidation] and [ErrResponseValidation] by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRequestValidation:
		return e.Kind == KindRequest
	case ErrResponseValidation:
		return e.Kind == KindResponse
	default:
		return false
	}
}

// HTTPStatus returns the configured failure status.
func (e *Error) HTTPStatus() int {
	return e.Status
}

// Code returns "request_validation_error" or "response_validation_error".
func (e *Error) Code() string {
	if e.Kind == KindResponse {
		return "response_validation_error"
	}

	return "request_validation_error"
}

// Details returns the kind, the location and, for schema failures, the
// failing fields.
func (e *Error) Details() any {
	d := map[string]any{
		"kind":     string(e.Kind),
		"location": string(e.Location),
	}

	var serr *schema.Error
	if errors.As(e.Err, &serr) && serr.HasErrors() {
		d["errors"] = serr.Fields
	}

	return d
}
