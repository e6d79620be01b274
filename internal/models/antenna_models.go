package models

// Point is one antenna support location after the ANFR antenna and support
// tables have been merged. Coordinates are decimal degrees, already parsed
// and bounds-checked by the ingest layer; the analysis core never re-validates
// them.
type Point struct {
	SupportID string  `json:"support_id"`
	Operator  string  `json:"operator"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// OperatorPointSet is the ordered set of points belonging to one operator.
// Order follows the merged input, so repeated runs over the same files
// produce identical results.
type OperatorPointSet struct {
	Operator string
	Points   []Point
}

// OperatorStatistics summarizes the nearest-neighbor distances of one
// operator. All distances are kilometers. StdDev is the population standard
// deviation.
type OperatorStatistics struct {
	Mean   float64 `json:"mean_km"`
	Median float64 `json:"median_km"`
	StdDev float64 `json:"stddev_km"`
	Min    float64 `json:"min_km"`
	Max    float64 `json:"max_km"`
	Count  int     `json:"count"`
}

// OperatorStatus tells consumers what happened to one operator's computation.
type OperatorStatus string

const (
	// StatusComputed means statistics are present and complete.
	StatusComputed OperatorStatus = "computed"
	// StatusSkipped means the operator had fewer than two points, so no
	// nearest-neighbor distance is defined. This is not an error.
	StatusSkipped OperatorStatus = "skipped"
	// StatusFailed means the computation produced no usable values, e.g.
	// every distance came back non-finite from malformed coordinates.
	StatusFailed OperatorStatus = "failed"
)

// OperatorReport is the per-operator result handed to reporting. Distances
// holds the raw per-point nearest-neighbor values so exporters can chart the
// distribution; Stats is nil unless Status is StatusComputed.
type OperatorReport struct {
	Operator   string              `json:"operator"`
	PointCount int                 `json:"point_count"`
	Status     OperatorStatus      `json:"status"`
	Distances  []float64           `json:"-"`
	Stats      *OperatorStatistics `json:"stats,omitempty"`
	Err        string              `json:"error,omitempty"`
}

// AnalysisResult is the full outcome of one run: one report per operator plus
// the merged point set the reports were computed from.
type AnalysisResult struct {
	Points  []Point          `json:"-"`
	Reports []OperatorReport `json:"reports"`
}

// Report returns the report for one operator, or nil when the operator is
// absent from the result.
func (r *AnalysisResult) Report(operator string) *OperatorReport {
	for i := range r.Reports {
		if r.Reports[i].Operator == operator {
			return &r.Reports[i]
		}
	}
	return nil
}
