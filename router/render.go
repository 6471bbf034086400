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

import (
	"encoding/json"
	"net/http"

	"rivaas.dev/contract"
)

// writeResponse encodes the final response of a route.
func (r *Router) writeResponse(w http.ResponseWriter, req *http.Request, resp *contract.Response) {
	for k, vals := range resp.Header {
		w.Header()[k] = vals
	}
	status := resp.StatusCode()

	var payload []byte
	switch body := resp.Body.(type) {
	case nil:
		w.WriteHeader(status)
		return
	case string:
		setDefaultContentType(w, "text/plain; charset=utf-8")
		payload = []byte(body)
	case []byte:
		setDefaultContentType(w, "application/octet-stream")
		payload = body
	default:
		data, err := json.Marshal(body)
		if err != nil {
			r.logger.WarnContext(req.Context(), "failed to encode response", "path", req.URL.Path, "error", err)
			r.writeError(w, req, err)
			return
		}
		setDefaultContentType(w, "application/json; charset=utf-8")
		payload = data
	}

	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		r.logger.DebugContext(req.Context(), "failed to write response", "error", err)
	}
}

func setDefaultContentType(w http.ResponseWriter, ct string) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", ct)
	}
}
