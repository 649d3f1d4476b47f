package tabular

import (
	"MacroGold/internal/domain/models"
	"MacroGold/pkg/util"
)

// BuildSeries extracts (date, value) pairs from the resolved date and value
// columns, dropping rows whose date or value does not parse, and returns the
// series sorted ascending by date. Dropped rows are a per-cell condition;
// whether anything usable remains is the caller's call.
func BuildSeries(t *models.Table, dateCol, valueCol int) []models.TimePoint {
	rows := t.NumRows()
	series := make([]models.TimePoint, 0, rows)
	for r := 0; r < rows; r++ {
		d, ok := util.ParseDate(t.Cell(dateCol, r))
		if !ok {
			continue
		}
		v := Normalize(t.Cell(valueCol, r))
		if !v.Valid {
			continue
		}
		series = append(series, models.TimePoint{Date: d, Value: v.Float64})
	}
	SortAscending(series)
	return series
}
