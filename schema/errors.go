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

package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is a sentinel error for schema validation failures.
// Use errors.Is(err, ErrValidation) to check if an error came from a [Schema].
var ErrValidation = errors.New("validation")

// Predefined compile errors.
var (
	// ErrEmptySchema is returned when compiling an empty schema document.
	ErrEmptySchema = errors.New("empty schema document")

	// ErrInvalidSchema is returned when a schema document cannot be compiled.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Stable error codes shared by all schema implementations.
const (
	CodeUnknownField = "unknown_field"
	CodeDecode       = "decode"
	CodeEncode       = "encode"
)

// FieldError describes a single failing value.
//
// Example:
//
//	err := FieldError{
//	    Path:    "id",
//	    Code:    "schema.required",
//	    Message: "missing property 'id'",
//	}
type FieldError struct {
	Path    string         `json:"path"`           // Dotted path (e.g., "items.2.price")
	Code    string         `json:"code"`           // Stable code (e.g., "tag.required", "schema.type")
	Message string         `json:"message"`        // Human-readable message
	Meta    map[string]any `json:"meta,omitempty"` // Additional metadata (tag, param, kind, ...)
}

// Error returns "path: message", or just the message when path is empty.
func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns [ErrValidation] for errors.Is compatibility.
func (e FieldError) Unwrap() error {
	return ErrValidation
}

// Error collects the [FieldError] values produced by one validation.
//
// Example:
//
//	var err *schema.Error
//	if errors.As(verr, &err) {
//	    for _, f := range err.Fields {
//	        fmt.Printf("%s: %s\n", f.Path, f.Message)
//	    }
//	}
//
//nolint:recvcheck // Error must use value receiver for error interface compatibility, mutating methods use pointer
type Error struct {
	Fields []FieldError `json:"errors"`
}

// NewError returns an [*Error] holding a single field error.
func NewError(path, code, message string) *Error {
	var e Error
	e.Add(path, code, message, nil)

	return &e
}

// Error returns a formatted error message.
func (v Error) Error() string {
	if len(v.Fields) == 0 {
		return ""
	}
	if len(v.Fields) == 1 {
		return v.Fields[0].Error()
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, err := range v.Fields {
		msgs = append(msgs, err.Error())
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap returns [ErrValidation] for errors.Is compatibility.
func (v Error) Unwrap() error {
	return ErrValidation
}

// Details exposes the field errors to rivaas.dev/contract/errors formatters.
func (v Error) Details() any {
	return v.Fields
}

// Add appends a new [FieldError].
func (v *Error) Add(path, code, message string, meta map[string]any) {
	v.Fields = append(v.Fields, FieldError{
		Path:    path,
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// HasErrors reports whether any field error was recorded.
func (v Error) HasErrors() bool {
	return len(v.Fields) > 0
}

// HasCode reports whether any field error has the given code.
func (v Error) HasCode(code string) bool {
	for _, e := range v.Fields {
		if e.Code == code {
			return true
		}
	}

	return false
}

// Has reports whether the given path has an error.
func (v Error) Has(path string) bool {
	for _, f := range v.Fields {
		if f.Path == path {
			return true
		}
	}

	return false
}

// Sort orders errors by path, then by code.
func (v *Error) Sort() {
	sort.SliceStable(v.Fields, func(i, j int) bool {
		if v.Fields[i].Path != v.Fields[j].Path {
			return v.Fields[i].Path < v.Fields[j].Path
		}

		return v.Fields[i].Code < v.Fields[j].Code
	})
}

// joinPath appends a segment to a dotted path.
func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}

	return prefix + "." + segment
}
