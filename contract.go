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

import "rivaas.dev/contract/schema"

// Location names a place a value is validated at.
type Location string

// Inbound locations understood by [Validator.ValidateLocation].
// Any other name addresses Request.Fields[name].
const (
	LocationHeader   Location = "header"
	LocationBody     Location = "body"
	LocationQuery    Location = "query"
	LocationParams   Location = "params"
	LocationFormData Location = "formData"
)

// Outbound locations reported in response validation errors.
const (
	LocationResponseHeaders Location = "response.headers"
	LocationResponseBody    Location = "response.body"
)

// requestOrder is the order the request stage visits inbound locations in.
var requestOrder = [...]Location{
	LocationHeader,
	LocationBody,
	LocationQuery,
	LocationParams,
	LocationFormData,
}

// Spec is the validation contract of a single route.
// A nil schema means the location is not validated.
// A Spec must not be modified once it is in use.
type Spec struct {
	Header   schema.Schema
	Body     schema.Schema
	Query    schema.Schema
	Params   schema.Schema
	FormData schema.Schema

	// Responses is evaluated in order; the first rule whose status expression
	// matches the response status is applied.
	Responses []StatusRule
}

// schemaFor returns the schema declared for an inbound location.
func (s *Spec) schemaFor(loc Location) schema.Schema {
	switch loc {
	case LocationHeader:
		return s.Header
	case LocationBody:
		return s.Body
	case LocationQuery:
		return s.Query
	case LocationParams:
		return s.Params
	case LocationFormData:
		return s.FormData
	default:
		return nil
	}
}

// StatusRule pairs a status expression with the rule for matching responses.
// See [MatchStatus] for the expression syntax.
type StatusRule struct {
	Status string
	ResponseRule
}

// ResponseRule holds the schemas for a response. Either may be nil.
type ResponseRule struct {
	Headers schema.Schema
	Body    schema.Schema
}

// Respond returns a [StatusRule] for the status expression.
//
// Example:
//
//	Responses: []contract.StatusRule{
//		contract.Respond("200,201", contract.ResponseRule{Body: userSchema}),
//		contract.Respond("400-499", contract.ResponseRule{Body: problemSchema}),
//	}
func Respond(status string, rule ResponseRule) StatusRule {
	return StatusRule{Status: status, ResponseRule: rule}
}
