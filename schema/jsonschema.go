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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// JSON Schema constants.
const (
	// maxRecursionDepth limits recursion depth to prevent stack overflow from deeply nested values.
	maxRecursionDepth = 100

	// resourceURL is the location each schema document is registered under.
	// Every document gets its own compiler, so the name never collides.
	resourceURL = "schema.json"
)

var printer = message.NewPrinter(language.English)

// JSONSchema is a compiled JSON Schema document.
// It is safe for concurrent use.
type JSONSchema struct {
	compiled *jsonschema.Schema
	source   []byte
}

// CompileJSON compiles a JSON Schema document from its JSON encoding.
// Format assertions ("email", "uuid", ...) are enabled.
func CompileJSON(src []byte) (*JSONSchema, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, ErrEmptySchema
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	compiler.AssertContent()

	if err := compiler.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("%w: add resource: %w", ErrInvalidSchema, err)
	}

	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	return &JSONSchema{compiled: compiled, source: src}, nil
}

// JSON compiles a JSON Schema document given as a Go value.
//
// doc may be a string or []byte holding JSON, or any value that encoding/json
// can marshal (typically a map decoded from YAML).
func JSON(doc any) (*JSONSchema, error) {
	switch d := doc.(type) {
	case nil:
		return nil, ErrEmptySchema
	case string:
		return CompileJSON([]byte(d))
	case []byte:
		return CompileJSON(d)
	case json.RawMessage:
		return CompileJSON(d)
	}

	src, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal document: %w", ErrInvalidSchema, err)
	}

	return CompileJSON(src)
}

// MustJSON compiles a JSON Schema document and panics if it is invalid.
// Use it for schemas declared in package variables or at startup.
func MustJSON(src string) *JSONSchema {
	s, err := CompileJSON([]byte(src))
	if err != nil {
		panic(fmt.Sprintf("schema.MustJSON: %v", err))
	}

	return s
}

// Source returns the JSON document the schema was compiled from.
func (s *JSONSchema) Source() []byte {
	return s.source
}

// Validate normalizes value against the schema and then validates the result.
// The returned value is a fresh copy; value itself is never modified.
func (s *JSONSchema) Validate(_ context.Context, value any, opts Options) (any, error) {
	data, err := toJSONValue(value)
	if err != nil {
		return nil, NewError("", CodeEncode, err.Error())
	}

	n := normalizer{opts: opts}
	data = n.walk(s.compiled, data, "", 0)
	if n.errs.HasErrors() {
		n.errs.Sort()
		return nil, &n.errs
	}

	if err := s.compiled.Validate(data); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, formatSchemaErrors(verr)
		}

		return nil, NewError("", "schema", err.Error())
	}

	return data, nil
}

// formatSchemaErrors flattens the ValidationError tree into an [*Error].
func formatSchemaErrors(verr *jsonschema.ValidationError) error {
	var result Error
	collectSchemaErrors(verr, &result, 0)

	if !result.HasErrors() {
		result.Add("", "schema", verr.Error(), nil)
	}

	result.Sort()
	return &result
}

// collectSchemaErrors recursively collects leaf validation errors.
func collectSchemaErrors(verr *jsonschema.ValidationError, result *Error, depth int) {
	if verr == nil || depth > maxRecursionDepth {
		return
	}

	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			collectSchemaErrors(cause, result, depth+1)
		}
		return
	}

	field := strings.Join(verr.InstanceLocation, ".")
	code := "schema"
	if kw := verr.ErrorKind.KeywordPath(); len(kw) > 0 {
		code = "schema." + kw[0]
	}
	meta := map[string]any{"schema_url": verr.SchemaURL}

	// One entry per missing property reads better than one for the parent object.
	if req, ok := verr.ErrorKind.(*kind.Required); ok {
		for _, name := range req.Missing {
			result.Add(joinPath(field, name), code, fmt.Sprintf("missing property '%s'", name), meta)
		}
		return
	}

	result.Add(field, code, verr.ErrorKind.LocalizedString(printer), meta)
}

// toJSONValue returns v in the shape the JSON Schema engine understands.
// Values that are already plain JSON (maps, slices, scalars) pass through;
// anything else (structs, typed slices) goes through encoding/json.
func toJSONValue(v any) (any, error) {
	if isJSONValue(v, 0) {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func isJSONValue(v any, depth int) bool {
	if depth > maxRecursionDepth {
		return false
	}

	switch t := v.(type) {
	case nil, bool, string, json.Number,
		float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case []any:
		for _, e := range t {
			if !isJSONValue(e, depth+1) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, e := range t {
			if !isJSONValue(e, depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
