package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"MacroGold/internal/domain/models"
)

// DecodeCSV parses CSV bytes into a Table. The first record is the header;
// short records are padded with empty cells because the upstream files are
// not strictly rectangular.
func DecodeCSV(b []byte) (*models.Table, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv parse: empty document")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	t := &models.Table{Columns: make([]models.Column, len(header))}
	for i, name := range header {
		t.Columns[i] = models.Column{Name: strings.TrimSpace(name)}
	}
	for _, rec := range records[1:] {
		for i := range t.Columns {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			t.Columns[i].Cells = append(t.Columns[i].Cells, cell)
		}
	}
	return t, nil
}
