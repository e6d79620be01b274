package ingest

import (
	"log/slog"

	"coverage.antennemap.fr/internal/geo"
	"coverage.antennemap.fr/internal/models"
)

// MergeStats counts what happened during the join, for logging and metrics.
type MergeStats struct {
	AntennaRows       int
	SupportRows       int
	Merged            int
	DroppedUnmatched  int
	DroppedInvalid    int
	DroppedDuplicates int
}

// Merge joins antenna rows with support locations on the support number and
// returns the deduplicated, coordinate-validated point set. Output order
// follows the antenna table, so the whole pipeline stays reproducible.
//
// Dropped rows: antennas whose support has no location row, locations outside
// plausible geographic bounds (including the (0,0) placeholder), and repeat
// (operator, latitude, longitude) triples. A support hosting several
// operators legitimately yields one point per operator.
func Merge(antennas []AntennaRecord, supports []SupportRecord) ([]models.Point, MergeStats) {
	stats := MergeStats{
		AntennaRows: len(antennas),
		SupportRows: len(supports),
	}

	locations := make(map[string]SupportRecord, len(supports))
	for _, s := range supports {
		locations[s.SupportID] = s
	}

	type triple struct {
		operator string
		lat, lon float64
	}
	seen := make(map[triple]struct{}, len(antennas))

	var points []models.Point
	for _, a := range antennas {
		loc, ok := locations[a.SupportID]
		if !ok {
			stats.DroppedUnmatched++
			continue
		}
		if !geo.IsValidLatLon(loc.Latitude, loc.Longitude) {
			stats.DroppedInvalid++
			continue
		}
		key := triple{operator: a.Operator, lat: loc.Latitude, lon: loc.Longitude}
		if _, dup := seen[key]; dup {
			stats.DroppedDuplicates++
			continue
		}
		seen[key] = struct{}{}
		points = append(points, models.Point{
			SupportID: a.SupportID,
			Operator:  a.Operator,
			Longitude: loc.Longitude,
			Latitude:  loc.Latitude,
		})
	}
	stats.Merged = len(points)
	return points, stats
}

// Load runs the full ingest: both files, the join, and a summary log line.
func Load(antennasPath, supportsPath string, logger *slog.Logger) ([]models.Point, MergeStats, error) {
	antennas, err := LoadAntennas(antennasPath)
	if err != nil {
		return nil, MergeStats{}, err
	}
	supports, droppedRows, err := LoadSupports(supportsPath)
	if err != nil {
		return nil, MergeStats{}, err
	}

	points, stats := Merge(antennas, supports)
	logger.Info("merged antenna and support tables",
		"antenna_rows", stats.AntennaRows,
		"support_rows", stats.SupportRows,
		"unparsable_support_rows", droppedRows,
		"merged_points", stats.Merged,
		"dropped_unmatched", stats.DroppedUnmatched,
		"dropped_invalid", stats.DroppedInvalid,
		"dropped_duplicates", stats.DroppedDuplicates,
	)
	return points, stats, nil
}
