package tabular

import (
	"math"
	"strconv"
	"strings"

	"MacroGold/internal/domain/models"
)

// Sign variants seen across the upstream tables: Unicode minus, en dash and
// em dash all stand in for ASCII '-' depending on who exported the file.
var signVariants = strings.NewReplacer(
	"−", "-", // minus sign
	"–", "-", // en dash
	"—", "-", // em dash
)

// Normalize converts locale-quirky numeric text into a Value. Comma thousands
// separators are stripped and sign variants canonicalized before parsing.
// Placeholders (bare dashes, empty cells) and unparseable text return the
// missing marker; Normalize never panics and never yields a silent zero.
func Normalize(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Missing()
	}
	s = strings.ReplaceAll(s, ",", "")
	s = signVariants.Replace(s)
	if s == "-" {
		// a lone dash is "no data", not a number
		return models.Missing()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return models.Missing()
	}
	return models.Num(f)
}

// NormalizeColumn applies Normalize to every cell of column i, padding ragged
// columns with missing values up to the table's row count.
func NormalizeColumn(t *models.Table, i int) []models.Value {
	rows := t.NumRows()
	out := make([]models.Value, rows)
	for r := 0; r < rows; r++ {
		out[r] = Normalize(t.Cell(i, r))
	}
	return out
}

// Support counts the non-missing values in a normalized column.
func Support(vals []models.Value) int {
	n := 0
	for _, v := range vals {
		if v.Valid {
			n++
		}
	}
	return n
}

// MinSupport returns the effective support threshold for a table of `rows`
// rows: the configured floor, or 10% of the rows when that is larger.
func MinSupport(rows, floor int) int {
	if floor < 1 {
		floor = 1
	}
	if tenth := rows / 10; tenth > floor {
		return tenth
	}
	return floor
}
