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
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics counts validation failures. A nil *metrics records nothing.
type metrics struct {
	failures *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil //nolint:nilnil // metrics are optional
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contract",
		Name:      "validation_failures_total",
		Help:      "Number of requests and responses that violated their route contract.",
	}, []string{"kind", "location"})

	if err := reg.Register(failures); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register failure counter: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("register failure counter: %w", err)
		}
		failures = existing
	}

	return &metrics{failures: failures}, nil
}

func (m *metrics) recordFailure(kind Kind, loc Location) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(string(kind), string(loc)).Inc()
}
