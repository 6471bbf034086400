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

package router

import "errors"

var (
	// ErrMalformedBody indicates that the request body could not be decoded.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrBodyTooLarge indicates that the request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrRouteRejected indicates that the mux refused a method or pattern.
	ErrRouteRejected = errors.New("route rejected by mux")

	// ErrInvalidMaxBodyBytes indicates a non-positive body limit.
	ErrInvalidMaxBodyBytes = errors.New("max body bytes must be positive")

	// ErrServerTimeoutInvalid indicates that a server timeout value is not positive.
	ErrServerTimeoutInvalid = errors.New("server timeout must be positive")
)
