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
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"
)

// normalizer rewrites a decoded value so that it matches what the schema
// declares: coerced scalars, wrapped arrays, defaults, unknown-key policy.
// It never mutates its input.
type normalizer struct {
	opts Options
	errs Error
}

func (n *normalizer) walk(sch *jsonschema.Schema, v any, path string, depth int) any {
	if depth > maxRecursionDepth {
		return v
	}

	ps := flatten(sch, 0, nil)
	if len(ps) == 0 {
		return v
	}

	v = n.coerce(typesOf(ps), v)

	switch t := v.(type) {
	case map[string]any:
		return n.object(ps, t, path, depth)
	case []any:
		return n.array(ps, t, path, depth)
	default:
		return v
	}
}

// flatten collects the schemas that all apply to the same value: the schema
// itself, its $ref target and its allOf branches. anyOf/oneOf are left alone,
// there is no single branch to normalize against.
func flatten(sch *jsonschema.Schema, depth int, out []*jsonschema.Schema) []*jsonschema.Schema {
	if sch == nil || depth > maxRecursionDepth {
		return out
	}

	out = append(out, sch)
	out = flatten(sch.Ref, depth+1, out)
	for _, sub := range sch.AllOf {
		out = flatten(sub, depth+1, out)
	}

	return out
}

func typesOf(ps []*jsonschema.Schema) []string {
	var types []string
	for _, p := range ps {
		if p.Types == nil {
			continue
		}
		for _, t := range p.Types.ToStrings() {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}

	return types
}

func (n *normalizer) coerce(types []string, v any) any {
	if n.opts.NoConvert || len(types) == 0 || v == nil {
		return v
	}

	switch t := v.(type) {
	case string:
		if slices.Contains(types, "string") {
			return v
		}
		for _, typ := range types {
			if out, ok := coerceString(typ, t); ok {
				return out
			}
		}
	case []any, map[string]any:
		return v
	default:
		if slices.Contains(types, "array") {
			return []any{v}
		}
	}

	return v
}

// coerceString converts s to the JSON type typ. It reports false when s does
// not look like a value of that type; the schema then rejects the original.
func coerceString(typ, s string) (any, bool) {
	trimmed := strings.TrimSpace(s)

	switch typ {
	case "number":
		if trimmed == "" {
			return nil, false
		}
		f, err := cast.ToFloat64E(trimmed)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return f, true

	case "integer":
		if trimmed == "" {
			return nil, false
		}
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return i, true
		}
		// Only decimal and exponent forms ("3.0", "1e3") go through float64.
		if !strings.ContainsAny(trimmed, ".eE") {
			return nil, false
		}
		f, err := cast.ToFloat64E(trimmed)
		if err != nil || f != math.Trunc(f) || f >= 0x1p63 || f < -0x1p63 {
			return nil, false
		}
		return int64(f), true

	case "boolean":
		if trimmed == "" {
			return nil, false
		}
		b, err := cast.ToBoolE(trimmed)
		if err != nil {
			return nil, false
		}
		return b, true

	case "array":
		if strings.HasPrefix(trimmed, "[") {
			var arr []any
			if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
				return arr, true
			}
		}
		return []any{s}, true

	case "object":
		if strings.HasPrefix(trimmed, "{") {
			var obj map[string]any
			if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
				return obj, true
			}
		}
	}

	return nil, false
}

func (n *normalizer) object(ps []*jsonschema.Schema, m map[string]any, path string, depth int) map[string]any {
	declared, open := false, false
	for _, p := range ps {
		if len(p.Properties) > 0 || len(p.PatternProperties) > 0 {
			declared = true
		}
		if b, ok := p.AdditionalProperties.(bool); ok && b {
			open = true
		}
	}

	out := make(map[string]any, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		val := m[key]
		sub, found := lookupProperty(ps, key)
		switch {
		case found:
			out[key] = n.walk(sub, val, joinPath(path, key), depth+1)
		case !declared || open:
			out[key] = val
		case n.opts.StripUnknown:
		case !n.opts.AllowUnknown:
			n.errs.Add(joinPath(path, key), CodeUnknownField, fmt.Sprintf("property '%s' is not allowed", key), nil)
		default:
			out[key] = val
		}
	}

	for _, p := range ps {
		for name, prop := range p.Properties {
			if _, ok := out[name]; ok || prop.Default == nil {
				continue
			}
			out[name] = plainJSON(*prop.Default, 0)
		}
	}

	return out
}

// lookupProperty finds the schema that governs key: declared properties win
// over patternProperties, which win over a schema-valued additionalProperties.
func lookupProperty(ps []*jsonschema.Schema, key string) (*jsonschema.Schema, bool) {
	for _, p := range ps {
		if sub, ok := p.Properties[key]; ok {
			return sub, true
		}
	}
	for _, p := range ps {
		for re, sub := range p.PatternProperties {
			if re.MatchString(key) {
				return sub, true
			}
		}
	}
	for _, p := range ps {
		if sub, ok := p.AdditionalProperties.(*jsonschema.Schema); ok {
			return sub, true
		}
	}

	return nil, false
}

func (n *normalizer) array(ps []*jsonschema.Schema, arr []any, path string, depth int) []any {
	var (
		items  *jsonschema.Schema
		prefix []*jsonschema.Schema
	)
	for _, p := range ps {
		if prefix == nil && len(p.PrefixItems) > 0 {
			prefix = p.PrefixItems
		}
		if items != nil {
			continue
		}
		switch it := p.Items.(type) {
		case *jsonschema.Schema:
			items = it
		case []*jsonschema.Schema:
			if prefix == nil {
				prefix = it
			}
		}
		if p.Items2020 != nil {
			items = p.Items2020
		}
	}

	out := make([]any, len(arr))
	for i, e := range arr {
		sub := items
		if i < len(prefix) {
			sub = prefix[i]
		}
		if sub == nil {
			out[i] = e
			continue
		}
		out[i] = n.walk(sub, e, joinPath(path, strconv.Itoa(i)), depth+1)
	}

	return out
}

// plainJSON deep-copies a value decoded by the schema compiler, turning
// json.Number into float64 so defaults look like any other decoded number.
func plainJSON(v any, depth int) any {
	if depth > maxRecursionDepth {
		return v
	}

	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainJSON(e, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainJSON(e, depth+1)
		}
		return out
	default:
		return v
	}
}
