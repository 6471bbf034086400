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

import "context"

// Schema validates a value and returns its normalized form.
//
// Implementations must not modify value; they return a new value instead.
// Implementations must be safe for concurrent use.
type Schema interface {
	Validate(ctx context.Context, value any, opts Options) (any, error)
}

// Options controls how a [Schema] treats its input.
type Options struct {
	// AllowUnknown permits object keys the schema does not declare.
	AllowUnknown bool

	// StripUnknown removes undeclared object keys from the normalized value.
	// It takes precedence over AllowUnknown.
	StripUnknown bool

	// NoConvert disables type coercion (numeric strings stay strings).
	NoConvert bool
}

// DefaultOptions returns the options used when none are configured:
// unknown keys are allowed and conversion is enabled.
func DefaultOptions() Options {
	return Options{AllowUnknown: true}
}

// Func adapts an ordinary function to the [Schema] interface.
//
// Example:
//
//	nonEmpty := schema.Func(func(_ context.Context, v any, _ schema.Options) (any, error) {
//		if s, _ := v.(string); s == "" {
//			return nil, schema.NewError("", "required", "is required")
//		}
//		return v, nil
//	})
type Func func(ctx context.Context, value any, opts Options) (any, error)

// Validate calls f(ctx, value, opts).
func (f Func) Validate(ctx context.Context, value any, opts Options) (any, error) {
	return f(ctx, value, opts)
}
