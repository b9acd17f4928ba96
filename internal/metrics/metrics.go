// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

// Package metrics defines the Prometheus metrics recorded while observing
// ECR Public state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

// API call results.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecrpublic_e2e_api_calls_total",
			Help: "Total number of ECR Public API calls made to observe repository state.",
		},
		[]string{"operation", "result"},
	)

	// repositoryExists is 1 while the last check found the repository.
	repositoryExists = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ecrpublic_e2e_repository_exists",
			Help: "Whether the repository existed at the last check.",
		},
		[]string{"repository"},
	)
)

func init() {
	ctrlmetrics.Registry.MustRegister(
		apiCallsTotal,
		repositoryExists,
	)
}

// Registry returns the registry the metrics are registered in.
func Registry() prometheus.Gatherer {
	return ctrlmetrics.Registry
}

// RecordAPICall increments the API call counter for operation. result
// should be one of ResultSuccess, ResultNotFound or ResultError.
func RecordAPICall(operation, result string) {
	apiCallsTotal.WithLabelValues(operation, result).Inc()
}

// RecordRepositoryExists sets the existence gauge for a repository.
func RecordRepositoryExists(repository string, exists bool) {
	v := 0.0
	if exists {
		v = 1
	}
	repositoryExists.WithLabelValues(repository).Set(v)
}
