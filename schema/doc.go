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

// Package schema provides the value validators consumed by rivaas.dev/contract.
//
// A [Schema] takes an arbitrary decoded value (a query map, a JSON body, a
// header map) and returns either a normalized copy of it or an error. Normalized
// values are what the contract layer writes back into requests and responses,
// so every implementation must be a fixed point: validating an already
// normalized value returns it unchanged.
//
// # JSON Schema
//
// [JSON], [CompileJSON] and [MustJSON] compile a JSON Schema document. Before
// the document is evaluated the value goes through a normalization pass that
// mirrors what HTTP inputs need:
//
//   - strings are converted to numbers, integers and booleans when the schema
//     asks for those types ("123" becomes 123 for {"type": "number"})
//   - a scalar is wrapped in an array when the schema expects an array, which
//     is how a single ?id=1 query value meets {"type": "array"}
//   - missing properties with a "default" are filled in
//   - unknown object keys are kept, rejected or stripped per [Options]
//
//	s := schema.MustJSON(`{
//		"type": "object",
//		"properties": {"id": {"type": "number"}},
//		"required": ["id"]
//	}`)
//
//	v, err := s.Validate(ctx, map[string]any{"id": "123"}, schema.DefaultOptions())
//	// v == map[string]any{"id": 123.0}
//
// # Struct tags
//
// [Struct] decodes the value into a Go type with weak typing and validates it
// with go-playground/validator tags. The normalized value is the decoded T, so
// handlers can type-assert it:
//
//	type Login struct {
//		Username string `json:"username" validate:"required"`
//		Email    string `json:"email" validate:"required,email"`
//	}
//
//	s := schema.Struct[Login]()
//
// # Custom validators
//
// [Func] adapts a plain function.
//
// # Errors
//
// Every implementation in this package reports failures as [*Error], a list of
// [FieldError] values with stable codes ("schema.required", "tag.email",
// "unknown_field"). Use errors.Is(err, [ErrValidation]) to detect them.
package schema
