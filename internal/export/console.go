// Package export renders finished analysis results: console tables, GeoJSON
// files and the interactive coverage map. Nothing here computes; the engine
// stays silent and this layer does all the talking.
package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"coverage.antennemap.fr/internal/models"
)

// WriteSummaryTable prints one line per operator, in the order the reports
// were sorted (ascending mean distance, then skipped/failed).
func WriteSummaryTable(w io.Writer, result models.AnalysisResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "OPERATOR\tANTENNAS\tMEAN (km)\tMEDIAN (km)\tSTDDEV (km)\tMIN (km)\tMAX (km)\tSTATUS")
	for _, rep := range result.Reports {
		switch rep.Status {
		case models.StatusComputed:
			s := rep.Stats
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
				rep.Operator, rep.PointCount, s.Mean, s.Median, s.StdDev, s.Min, s.Max, rep.Status)
		case models.StatusSkipped:
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\t-\tskipped (fewer than 2 points)\n",
				rep.Operator, rep.PointCount)
		case models.StatusFailed:
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\t-\tfailed: %s\n",
				rep.Operator, rep.PointCount, rep.Err)
		}
	}
	return tw.Flush()
}

// WriteNearestAntenna prints the locate-mode answer.
func WriteNearestAntenna(w io.Writer, operator string, antenna models.Point, distanceKm float64) {
	fmt.Fprintf(w, "Closest %s antenna: support %s at (%.4f, %.4f), %.2f km away\n",
		operator, antenna.SupportID, antenna.Latitude, antenna.Longitude, distanceKm)
}
