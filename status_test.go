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

//go:build !integration

package contract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		key    string
		want   bool
	}{
		{200, "200", true},
		{201, "200", false},
		{201, "200,201", true},
		{201, " 200 , 201 ", true},
		{404, "400-499", true},
		{400, "400-499", true},
		{499, "400-499", true},
		{500, "400-499", false},
		{200, " 200 - 299 ", true},
		{300, "100-200,300", true},
		{204, "204-200", false},
		{200, "", false},
		{200, ",,", false},
		{200, "abc", false},
		{200, "2xx", false},
		{250, "200-", false},
		{250, "-300", false},
		{250, "200-299-300", false},
		{250, "abc,200-299", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d in %q", tt.status, tt.key), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MatchStatus(tt.status, tt.key))
		})
	}
}
