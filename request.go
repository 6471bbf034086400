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
	"context"
	"maps"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// validateRequest runs every declared inbound schema in request order and
// stops at the first failure.
func (v *Validator) validateRequest(ctx context.Context, spec *Spec, c *Context) error {
	for _, loc := range requestOrder {
		if err := v.ValidateLocation(ctx, loc, c, spec.schemaFor(loc)); err != nil {
			return err
		}
	}

	return nil
}

// extract returns the raw value a schema sees for loc.
func extract(r *Request, loc Location) any {
	switch loc {
	case LocationHeader:
		return HeaderMap(r.Header)
	case LocationQuery:
		return r.Query
	case LocationParams:
		return r.Params
	case LocationBody, LocationFormData:
		return r.Body
	default:
		return r.Fields[string(loc)]
	}
}

// writeBack stores a normalized value for loc.
func writeBack(r *Request, loc Location, out any) {
	switch loc {
	case LocationHeader:
	case LocationQuery:
		r.Query = mergeInto(r.Query, out)
	case LocationParams:
		r.Params = mergeInto(r.Params, out)
	case LocationBody, LocationFormData:
		r.Body = mergeBody(r.Body, out)
	default:
		if r.Fields == nil {
			r.Fields = make(map[string]any)
		}
		r.Fields[string(loc)] = out
	}
}

// mergeInto copies the keys of a normalized object into store.
// Non-object values are not written.
func mergeInto(store map[string]any, out any) map[string]any {
	m, ok := objectOf(out)
	if !ok {
		return store
	}
	if store == nil {
		store = make(map[string]any, len(m))
	}
	maps.Copy(store, m)

	return store
}

// mergeBody merges objects key by key and otherwise replaces the body.
// Struct values count as objects, see [objectOf]. A nil value leaves the
// body alone.
func mergeBody(body, out any) any {
	if out == nil {
		return body
	}

	src, okSrc := objectOf(out)
	if !okSrc {
		return out
	}

	dst, okDst := body.(map[string]any)
	if !okDst || dst == nil {
		return src
	}
	maps.Copy(dst, src)

	return dst
}

// objectOf returns out as a map keyed like its JSON encoding. Structs (such
// as the values of schema.Struct) and string-keyed maps are converted with
// mapstructure using their json tags; field values keep their Go types.
func objectOf(out any) (map[string]any, bool) {
	if m, ok := out.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(out)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch {
	case rv.Kind() == reflect.Struct:
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
	default:
		return nil, false
	}

	var m map[string]any
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &m,
	})
	if err != nil {
		return nil, false
	}
	if err := dec.Decode(rv.Interface()); err != nil {
		return nil, false
	}

	return m, true
}
