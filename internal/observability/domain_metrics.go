package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	pipelineQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askdb_pipeline_queries_total",
			Help: "Translation pipeline runs by terminal outcome.",
		},
		[]string{"outcome"},
	)

	pipelineFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askdb_pipeline_failures_total",
			Help: "Pipeline failures by stage and error kind.",
		},
		[]string{"stage", "kind"},
	)

	validationDenialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askdb_validation_denials_total",
			Help: "Statements denied by the validator, by reason kind.",
		},
		[]string{"kind"},
	)

	generationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "askdb_generation_duration_seconds",
			Help:    "Latency of inference-endpoint calls.",
			Buckets: prometheus.DefBuckets,
		},
	)

	executionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "askdb_execution_duration_seconds",
			Help:    "Latency of database statement execution.",
			Buckets: prometheus.DefBuckets,
		},
	)

	resultRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "askdb_result_rows",
			Help:    "Rows returned per completed query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		},
	)
)

func init() {
	prometheus.MustRegister(
		pipelineQueriesTotal,
		pipelineFailuresTotal,
		validationDenialsTotal,
		generationDurationSeconds,
		executionDurationSeconds,
		resultRows,
	)
}

func ObservePipelineOutcome(outcome string) {
	pipelineQueriesTotal.WithLabelValues(outcome).Inc()
}

func ObservePipelineFailure(stage, kind string) {
	pipelineFailuresTotal.WithLabelValues(stage, kind).Inc()
}

func ObserveValidationDenial(kind string) {
	validationDenialsTotal.WithLabelValues(kind).Inc()
}

func ObserveGenerationDuration(d time.Duration) {
	generationDurationSeconds.Observe(d.Seconds())
}

func ObserveExecutionDuration(d time.Duration) {
	executionDurationSeconds.Observe(d.Seconds())
}

func ObserveResultRows(count int) {
	resultRows.Observe(float64(count))
}
