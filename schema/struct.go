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
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var (
	tagValidator     *validator.Validate
	tagValidatorOnce sync.Once
)

// structValidator returns the shared go-playground/validator instance.
// Field names in errors use json tags.
func structValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New(validator.WithRequiredStructEnabled())
		tagValidator.RegisterTagNameFunc(jsonFieldName)
	})

	return tagValidator
}

func jsonFieldName(fld reflect.StructField) string {
	name := fld.Tag.Get("json")
	if name == "-" {
		return ""
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return fld.Name
	}

	return name
}

// StructSchema decodes values into T and validates them with `validate` tags.
// The normalized value is a T.
type StructSchema[T any] struct{}

// Struct returns a [Schema] backed by the Go type T.
//
// Input maps are decoded with weak typing ("123" fills an int field) unless
// [Options].NoConvert is set. Keys that T does not declare are rejected only
// when neither AllowUnknown nor StripUnknown is set.
func Struct[T any]() StructSchema[T] {
	return StructSchema[T]{}
}

// Validate decodes value into a fresh T and runs the struct's tag rules.
func (StructSchema[T]) Validate(ctx context.Context, value any, opts Options) (any, error) {
	var out T

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "json",
		WeaklyTypedInput: !opts.NoConvert,
		ErrorUnused:      !opts.AllowUnknown && !opts.StripUnknown,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := dec.Decode(value); err != nil {
		var result Error
		collectDecodeErrors(err, &result, 0)
		result.Sort()
		return nil, &result
	}

	rv := reflect.ValueOf(out)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return out, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return out, nil
	}

	if err := structValidator().StructCtx(ctx, rv.Interface()); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, formatTagErrors(verrs)
		}

		return nil, fmt.Errorf("validate struct: %w", err)
	}

	return out, nil
}

// collectDecodeErrors flattens the joined errors mapstructure returns.
func collectDecodeErrors(err error, result *Error, depth int) {
	if err == nil || depth > maxRecursionDepth {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectDecodeErrors(e, result, depth+1)
		}
		return
	}

	derr, ok := err.(*mapstructure.DecodeError)
	if !ok {
		if inner := errors.Unwrap(err); inner != nil {
			collectDecodeErrors(inner, result, depth+1)
			return
		}
		result.Add("", CodeDecode, err.Error(), nil)
		return
	}

	inner := derr.Unwrap()
	switch inner.(type) {
	case interface{ Unwrap() []error }, *mapstructure.DecodeError:
		collectDecodeErrors(inner, result, depth+1)
		return
	}

	msg := inner.Error()
	code := CodeDecode
	if strings.HasPrefix(msg, "has invalid keys") {
		code = CodeUnknownField
	}
	result.Add(derr.Name(), code, msg, nil)
}

// formatTagErrors converts go-playground/validator errors into an [*Error] with stable codes.
func formatTagErrors(errs validator.ValidationErrors) error {
	var result Error

	for _, e := range errs {
		path := e.Namespace()
		if idx := strings.Index(path, "."); idx != -1 {
			path = path[idx+1:]
		}

		result.Add(path, "tag."+e.Tag(), tagErrorMessage(e), map[string]any{
			"tag":   e.Tag(),
			"param": e.Param(),
		})
	}

	result.Sort()
	return &result
}

// tagErrorMessage returns a human-readable error message for a tag error.
func tagErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "len":
		return fmt.Sprintf("must have length %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("must be %s %s", e.Tag(), e.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}
