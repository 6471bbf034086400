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
	"errors"
	"sync"

	"rivaas.dev/contract/schema"
)

var errBoom = errors.New("boom")

// recorder collects the names of schemas as they run.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// passing returns a schema that records name and returns its input.
func (r *recorder) passing(name string) schema.Schema {
	return schema.Func(func(_ context.Context, v any, _ schema.Options) (any, error) {
		r.add(name)
		return v, nil
	})
}

// failing returns a schema that records name and fails.
func (r *recorder) failing(name string) schema.Schema {
	return schema.Func(func(_ context.Context, _ any, _ schema.Options) (any, error) {
		r.add(name)
		return nil, schema.NewError("", "custom", name+" failed")
	})
}

// returning returns a schema that always normalizes to out.
func returning(out any) schema.Schema {
	return schema.Func(func(context.Context, any, schema.Options) (any, error) {
		return out, nil
	})
}

// capturing returns a schema that stores the value it sees in *dst.
func capturing(dst *any) schema.Schema {
	return schema.Func(func(_ context.Context, v any, _ schema.Options) (any, error) {
		*dst = v
		return v, nil
	})
}
