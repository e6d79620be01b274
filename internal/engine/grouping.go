package engine

import "coverage.antennemap.fr/internal/models"

// GroupByOperator partitions the merged point set by operator label.
// Operators appear in order of first appearance and points keep their input
// order, so the whole pipeline is reproducible run to run. Labels are opaque
// and case-sensitive here; any normalization happened at ingest.
func GroupByOperator(points []models.Point) []models.OperatorPointSet {
	index := make(map[string]int)
	var sets []models.OperatorPointSet

	for _, p := range points {
		i, ok := index[p.Operator]
		if !ok {
			i = len(sets)
			index[p.Operator] = i
			sets = append(sets, models.OperatorPointSet{Operator: p.Operator})
		}
		sets[i].Points = append(sets[i].Points, p)
	}
	return sets
}
