package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MacroGold/internal/domain/models"
)

func TestNormalizeThousandsSeparators(t *testing.T) {
	v := Normalize("1,234")
	assert.True(t, v.Valid)
	assert.Equal(t, 1234.0, v.Float64)

	v = Normalize("12,345,678.9")
	assert.True(t, v.Valid)
	assert.Equal(t, 12345678.9, v.Float64)
}

func TestNormalizeSignVariants(t *testing.T) {
	// Unicode minus, en dash and em dash must all parse like ASCII '-'.
	for _, raw := range []string{"-1,234", "−1,234", "–1,234", "—1,234"} {
		v := Normalize(raw)
		assert.True(t, v.Valid, "input %q", raw)
		assert.Equal(t, -1234.0, v.Float64, "input %q", raw)
	}
}

func TestNormalizeDashPlaceholderIsMissing(t *testing.T) {
	for _, raw := range []string{"—", "–", "-", "", "  "} {
		v := Normalize(raw)
		assert.False(t, v.Valid, "input %q", raw)
	}
}

func TestNormalizeGarbageIsMissingNotZero(t *testing.T) {
	for _, raw := range []string{"n/a", "abc", "12a4", "NaN", "+Inf"} {
		v := Normalize(raw)
		assert.False(t, v.Valid, "input %q", raw)
		assert.Zero(t, v.Float64)
	}
}

func TestNormalizeColumnPadsRaggedColumns(t *testing.T) {
	tb := &models.Table{Columns: []models.Column{
		{Name: "Country", Cells: []string{"A", "B", "C"}},
		{Name: "Tonnes", Cells: []string{"1", "2"}},
	}}
	vals := NormalizeColumn(tb, 1)
	assert.Len(t, vals, 3)
	assert.True(t, vals[0].Valid)
	assert.False(t, vals[2].Valid)
}

func TestMinSupport(t *testing.T) {
	assert.Equal(t, 5, MinSupport(30, 5))
	// 10% of rows wins over the floor on large tables
	assert.Equal(t, 20, MinSupport(200, 5))
	assert.Equal(t, 1, MinSupport(10, 0))
}
