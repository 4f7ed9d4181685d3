// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wlsctl_server_operations_total",
			Help: "Total number of server lifecycle operations",
		},
		[]string{"operation", "result"}, // result is "success" or an error code
	)

	shutdownPolls = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wlsctl_restart_shutdown_polls",
			Help:    "Status polls issued while waiting for shutdown during restart",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
	)
)

func observeOperation(op string, err error) {
	result := "success"
	if err != nil {
		result = string(apperrors.CodeOf(err))
	}
	operationsTotal.WithLabelValues(op, result).Inc()
}

func observeShutdownPolls(n int) {
	shutdownPolls.Observe(float64(n))
}
