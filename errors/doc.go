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

// Package errors formats errors as HTTP responses.
//
// A [Formatter] turns an error into a [Response]. Two formats are provided:
//
//   - [RFC9457]: RFC 9457 Problem Details (application/problem+json)
//   - [Simple]: a flat JSON object (application/json)
//
// Errors steer the output through optional interfaces: [ErrorType] declares
// the status code, [ErrorCode] a machine-readable code and [ErrorDetails]
// structured details. The validation errors of rivaas.dev/contract implement
// all three, so a failed request contract renders as
//
//	{
//	  "type": "https://api.example.com/problems/request_validation_error",
//	  "title": "Bad Request",
//	  "status": 400,
//	  "detail": "id: missing property 'id'",
//	  "instance": "/test",
//	  "code": "request_validation_error",
//	  "kind": "RequestValidationError",
//	  "location": "query",
//	  "errors": [{"path": "id", "code": "schema.required", "message": "missing property 'id'"}],
//	  "error_id": "5f0c..."
//	}
//
// Writing a response:
//
//	response := errors.NewRFC9457("https://api.example.com/problems").Format(r, err)
//	_ = response.Write(w)
package errors
