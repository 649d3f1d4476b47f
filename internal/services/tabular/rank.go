package tabular

import (
	"math"
	"sort"

	"MacroGold/internal/domain/models"
)

// BuildRankedRows pairs entity labels with per-row deltas (cur − prev).
// Rows where either period value is missing are dropped here, before any
// ranking, so a missing cell never ranks as a zero change.
func BuildRankedRows(labels []string, prev, cur []models.Value) []models.RankedRow {
	n := len(labels)
	if len(prev) < n {
		n = len(prev)
	}
	if len(cur) < n {
		n = len(cur)
	}
	rows := make([]models.RankedRow, 0, n)
	for i := 0; i < n; i++ {
		if !prev[i].Valid || !cur[i].Valid {
			continue
		}
		d := cur[i].Float64 - prev[i].Float64
		rows = append(rows, models.RankedRow{Label: labels[i], Delta: d, Abs: math.Abs(d)})
	}
	return rows
}

// RankTopK returns at most k rows in descending absolute-delta order,
// preserving sign. Ties break stably on input order so output is
// deterministic across runs with identical payloads.
func RankTopK(rows []models.RankedRow, k int) []models.RankedRow {
	out := make([]models.RankedRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Abs > out[j].Abs })
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
