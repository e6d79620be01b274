package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AntennasIngested counts the merged, validated points fed to the engine.
	AntennasIngested = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_antennas_ingested",
		Help: "Number of antenna points after merging, validation and deduplication",
	})

	// RowsDropped tracks what the ingest boundary threw away, by reason.
	RowsDropped = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coverage_ingest_rows_dropped",
		Help: "Number of rows dropped during ingest (reason = unmatched, invalid_coordinates, duplicate)",
	}, []string{"reason"})
)

var (
	OperatorsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coverage_operators_by_status",
		Help: "Number of operators per analysis outcome (status = computed, skipped, failed)",
	}, []string{"status"})

	OperatorPointCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coverage_operator_point_count",
		Help: "Number of antenna points per operator",
	}, []string{"operator"})

	OperatorMeanDistanceKm = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coverage_operator_mean_nn_distance_km",
		Help: "Mean nearest-neighbor distance between an operator's antennas, in kilometers",
	}, []string{"operator"})

	OperatorMedianDistanceKm = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coverage_operator_median_nn_distance_km",
		Help: "Median nearest-neighbor distance between an operator's antennas, in kilometers",
	}, []string{"operator"})

	LowCoverageCells = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coverage_operator_low_coverage_cells",
		Help: "Number of grid cells at or below the low-coverage threshold per operator",
	}, []string{"operator"})
)

var (
	AnalysisDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_analysis_duration_seconds",
		Help: "Wall-clock duration of the last full nearest-neighbor analysis",
	})
)

var (
	// OutgoingLatency observes outbound HTTP requests, currently only the
	// Nominatim geocoder in locate mode.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coverage_outgoing_request_latency_seconds",
		Help:    "Latency of outgoing HTTP requests, labeled by URL, method and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)
