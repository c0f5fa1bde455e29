// Package metrics declares the Prometheus collectors of the dataset cache
// and the query engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoadsTotal counts source loads by kind (records, translations), dataset and status.
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iso3166_dataset_loads_total",
			Help: "Total number of dataset loads from the record source",
		},
		[]string{"kind", "dataset", "status"},
	)
	// MaterializationsTotal counts query results by dataset and status.
	MaterializationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iso3166_materializations_total",
			Help: "Total number of materialized query results",
		},
		[]string{"dataset", "status"},
	)
	// FallbacksTotal counts translated values served from the default language.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iso3166_translation_fallbacks_total",
			Help: "Total number of translated values resolved from the default language",
		},
		[]string{"dataset", "language"},
	)
)

// Status returns the status label for err.
func Status(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
