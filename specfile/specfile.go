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

package specfile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"rivaas.dev/contract"
	"rivaas.dev/contract/schema"
)

// Errors returned while loading or binding a document.
var (
	// ErrInvalidDocument is returned for documents that do not describe routes.
	ErrInvalidDocument = errors.New("invalid contract document")

	// ErrUnknownHandler is returned by [Document.Register] for a handler name
	// missing from the handler table.
	ErrUnknownHandler = errors.New("unknown handler")
)

// RouteAdder registers a route with its contract. *router.Router implements it.
type RouteAdder interface {
	AddRoute(route contract.Route, h contract.HandlerFunc) error
}

// Options mirrors the validator options a document can set.
// Unset fields keep the validator defaults.
type Options struct {
	RequestFailureStatus    int   `yaml:"requestFailureStatus"`
	ResponseFailureStatus   int   `yaml:"responseFailureStatus"`
	IgnoreValidateResponses bool  `yaml:"ignoreValidateResponses"`
	AllowUnknown            *bool `yaml:"allowUnknown"`
	StripUnknown            bool  `yaml:"stripUnknown"`
	NoConvert               bool  `yaml:"noConvert"`
}

// Route is a route of a document with its compiled contract.
type Route struct {
	contract.Route

	// Handler names the handler in the table given to [Document.Register].
	Handler string
}

// Document is a parsed contract document.
type Document struct {
	Options Options
	Routes  []Route
}

type rawDocument struct {
	Options Options    `yaml:"options"`
	Routes  []rawRoute `yaml:"routes"`
}

type rawRoute struct {
	Path     string       `yaml:"path"`
	Method   string       `yaml:"method"`
	Methods  []string     `yaml:"methods"`
	Handler  string       `yaml:"handler"`
	Validate *rawValidate `yaml:"validate"`
}

type rawValidate struct {
	Header    any           `yaml:"header"`
	Body      any           `yaml:"body"`
	Query     any           `yaml:"query"`
	Params    any           `yaml:"params"`
	FormData  any           `yaml:"formData"`
	Responses yaml.MapSlice `yaml:"responses"`
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse parses a YAML document and compiles every schema in it.
// Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, yaml.FormatError(err, false, true))
	}

	doc := &Document{Options: raw.Options, Routes: make([]Route, 0, len(raw.Routes))}
	for i, rr := range raw.Routes {
		route, err := rr.compile()
		if err != nil {
			return nil, fmt.Errorf("%w: routes[%d] %s %s: %w", ErrInvalidDocument, i, rr.Method, rr.Path, err)
		}
		doc.Routes = append(doc.Routes, route)
	}

	return doc, nil
}

func (rr rawRoute) compile() (Route, error) {
	route := Route{
		Route: contract.Route{
			Path:    rr.Path,
			Method:  rr.Method,
			Methods: rr.Methods,
		},
		Handler: rr.Handler,
	}

	if rr.Path == "" {
		return route, contract.ErrMissingPath
	}
	if rr.Handler == "" {
		return route, errors.New("handler is required")
	}
	if _, err := route.ParseMethods(); err != nil {
		return route, err
	}
	if rr.Validate == nil {
		return route, nil
	}

	spec, err := rr.Validate.compile()
	if err != nil {
		return route, err
	}
	route.Validate = spec

	return route, nil
}

func (rv *rawValidate) compile() (*contract.Spec, error) {
	var (
		spec contract.Spec
		err  error
	)

	inbound := []struct {
		loc contract.Location
		doc any
		dst *schema.Schema
	}{
		{contract.LocationHeader, rv.Header, &spec.Header},
		{contract.LocationBody, rv.Body, &spec.Body},
		{contract.LocationQuery, rv.Query, &spec.Query},
		{contract.LocationParams, rv.Params, &spec.Params},
		{contract.LocationFormData, rv.FormData, &spec.FormData},
	}
	for _, in := range inbound {
		if *in.dst, err = compileSchema(in.doc); err != nil {
			return nil, fmt.Errorf("%s: %w", in.loc, err)
		}
	}

	for _, item := range rv.Responses {
		status := fmt.Sprint(item.Key)
		rule, err := compileResponse(item.Value)
		if err != nil {
			return nil, fmt.Errorf("responses[%s]: %w", status, err)
		}
		spec.Responses = append(spec.Responses, contract.Respond(status, rule))
	}

	return &spec, nil
}

// responseKeys are the keys a response rule may hold.
var responseKeys = []string{"headers", "body"}

func compileResponse(v any) (contract.ResponseRule, error) {
	var rule contract.ResponseRule
	if v == nil {
		return rule, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return rule, fmt.Errorf("expected a mapping with %v, got %T", responseKeys, v)
	}
	for k := range m {
		if !slices.Contains(responseKeys, k) {
			return rule, fmt.Errorf("unknown key %q", k)
		}
	}

	var err error
	if rule.Headers, err = compileSchema(m["headers"]); err != nil {
		return rule, fmt.Errorf("headers: %w", err)
	}
	if rule.Body, err = compileSchema(m["body"]); err != nil {
		return rule, fmt.Errorf("body: %w", err)
	}

	return rule, nil
}

// compileSchema compiles a schema document decoded from YAML.
// A missing document yields a nil schema.
func compileSchema(doc any) (schema.Schema, error) {
	if doc == nil {
		return nil, nil
	}

	s, err := schema.JSON(doc)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// ValidatorOptions returns the validator options set by the document.
func (d *Document) ValidatorOptions() []contract.Option {
	opts := []contract.Option{
		contract.WithRequestFailureStatus(d.Options.RequestFailureStatus),
		contract.WithResponseFailureStatus(d.Options.ResponseFailureStatus),
		contract.WithIgnoreResponseValidation(d.Options.IgnoreValidateResponses),
	}

	so := schema.DefaultOptions()
	if d.Options.AllowUnknown != nil {
		so.AllowUnknown = *d.Options.AllowUnknown
	}
	so.StripUnknown = d.Options.StripUnknown
	so.NoConvert = d.Options.NoConvert

	return append(opts, contract.WithSchemaOptions(so))
}

// Register adds every route of the document to r, binding each to the
// handler of the same name. Nothing is registered when a handler is missing.
func (d *Document) Register(r RouteAdder, handlers map[string]contract.HandlerFunc) error {
	for _, route := range d.Routes {
		if handlers[route.Handler] == nil {
			return fmt.Errorf("%w: %q (%s %s)", ErrUnknownHandler, route.Handler, route.Method, route.Path)
		}
	}

	for _, route := range d.Routes {
		if err := r.AddRoute(route.Route, handlers[route.Handler]); err != nil {
			return err
		}
	}

	return nil
}
