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
	"strconv"
	"strings"
)

// MatchStatus reports whether status satisfies the status expression key.
//
// key is a comma separated list of tokens. A token is either a single code
// ("200") or an inclusive range ("200-299"). Whitespace around tokens and
// range ends is ignored, empty tokens are skipped. A token that does not parse
// as a number or range never matches, so an empty key matches nothing.
//
//	MatchStatus(201, "200,201")      // true
//	MatchStatus(404, "400-499")      // true
//	MatchStatus(500, "200, 400-499") // false
func MatchStatus(status int, key string) bool {
	for token := range strings.SplitSeq(key, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if lo, hi, isRange := strings.Cut(token, "-"); isRange {
			low, errLo := strconv.Atoi(strings.TrimSpace(lo))
			high, errHi := strconv.Atoi(strings.TrimSpace(hi))
			if errLo == nil && errHi == nil && status >= low && status <= high {
				return true
			}
			continue
		}

		if code, err := strconv.Atoi(token); err == nil && code == status {
			return true
		}
	}

	return false
}
