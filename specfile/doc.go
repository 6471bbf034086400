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

// Package specfile loads route contracts from YAML documents.
//
// A document lists routes with their JSON Schemas and names the handler each
// route is bound to. Handlers stay in Go; the document only references them:
//
//	options:
//	  requestFailureStatus: 422
//	routes:
//	  - path: /test
//	    method: GET
//	    handler: getTest
//	    validate:
//	      query:
//	        type: object
//	        properties:
//	          id: {type: number}
//	        required: [id]
//	      responses:
//	        200:
//	          body:
//	            type: object
//	            required: [code, msg]
//
// Response rules keep the order they are written in; the first rule whose
// status expression matches is applied.
//
// Bind a document to a router:
//
//	doc, err := specfile.Load("routes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := router.MustNew(router.WithValidatorOptions(doc.ValidatorOptions()...))
//	if err := doc.Register(r, map[string]contract.HandlerFunc{"getTest": getTest}); err != nil {
//	    log.Fatal(err)
//	}
package specfile
