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
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"rivaas.dev/contract"
	apierrors "rivaas.dev/contract/errors"
)

// decodeBody reads the request body and decodes it by content type:
// JSON to any, forms to a map like [contract.QueryMap], text/* to a string
// and everything else to []byte. An empty body decodes to nil.
func (r *Router) decodeBody(w http.ResponseWriter, req *http.Request) (any, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	req.Body = http.MaxBytesReader(w, req.Body, r.maxBodyBytes)

	mediaType := ""
	if ct := req.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, malformed(fmt.Errorf("content type: %w", err))
		}
		mediaType = mt
	}

	if mediaType == "multipart/form-data" {
		if err := req.ParseMultipartForm(r.maxBodyBytes); err != nil {
			return nil, bodyError(err)
		}
		if req.MultipartForm == nil {
			return map[string]any{}, nil
		}
		return contract.QueryMap(req.MultipartForm.Value), nil
	}

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, bodyError(err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, malformed(err)
		}
		return v, nil

	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, malformed(err)
		}
		return contract.QueryMap(values), nil

	case strings.HasPrefix(mediaType, "text/"):
		return string(raw), nil

	default:
		return raw, nil
	}
}

func malformed(err error) error {
	return apierrors.WithStatus(fmt.Errorf("%w: %w", ErrMalformedBody, err), http.StatusBadRequest)
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apierrors.WithStatus(
			fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit),
			http.StatusRequestEntityTooLarge,
		)
	}

	return malformed(err)
}
