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
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// standardMethods is what "ALL" expands to.
var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// Registrar is the router a route is registered on.
type Registrar interface {
	Handle(method, pattern string, h HandlerFunc) error
}

// RegistrarFunc adapts a function to [Registrar].
type RegistrarFunc func(method, pattern string, h HandlerFunc) error

// Handle calls f(method, pattern, h).
func (f RegistrarFunc) Handle(method, pattern string, h HandlerFunc) error {
	return f(method, pattern, h)
}

// Route describes a route to register with [Validator.AddRoute].
type Route struct {
	// Path is the route pattern, in the syntax of the registrar.
	Path string

	// Method holds one or more whitespace separated method names ("GET POST").
	Method string

	// Methods lists further method names.
	Methods []string

	// Validate is the route contract. Nil registers the handler unvalidated.
	Validate *Spec
}

// ParseMethods returns the upper-cased, de-duplicated methods of the route.
// "DEL" is accepted for DELETE and "ALL" expands to every standard method.
func (r Route) ParseMethods() ([]string, error) {
	tokens := strings.Fields(r.Method)
	tokens = append(tokens, r.Methods...)
	if len(tokens) == 0 {
		return nil, ErrMissingMethod
	}

	methods := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		name := strings.ToUpper(strings.TrimSpace(tok))
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: empty method name", ErrInvalidMethod)
		case name == "ALL":
			for _, m := range standardMethods {
				if !slices.Contains(methods, m) {
					methods = append(methods, m)
				}
			}
			continue
		case name == "DEL":
			name = http.MethodDelete
		case !slices.Contains(standardMethods, name):
			return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, tok)
		}

		if !slices.Contains(methods, name) {
			methods = append(methods, name)
		}
	}

	return methods, nil
}

// AddRoute registers h on reg for every method of route, wrapped in the
// validation middleware for route.Validate.
//
// Example:
//
//	err := v.AddRoute(r, contract.Route{
//		Path:     "/users/{id}",
//		Method:   "GET",
//		Validate: &contract.Spec{Params: idSchema},
//	}, getUser)
func (v *Validator) AddRoute(reg Registrar, route Route, h HandlerFunc) error {
	if reg == nil {
		return ErrNilRegistrar
	}
	if route.Path == "" {
		return ErrMissingPath
	}
	if h == nil {
		return ErrNilHandler
	}

	methods, err := route.ParseMethods()
	if err != nil {
		return err
	}

	handler := v.Middleware(route.Validate)(h)
	for _, m := range methods {
		v.cfg.logger.Debug("add route", "method", m, "path", route.Path)
		if err := reg.Handle(m, route.Path, handler); err != nil {
			return fmt.Errorf("register %s %s: %w", m, route.Path, err)
		}
	}

	return nil
}
