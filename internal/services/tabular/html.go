package tabular

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"MacroGold/internal/domain/models"
)

// ExtractTables parses an HTML document and returns every <table> as a
// Table. The header row is the thead when present, otherwise the first row;
// remaining rows become cells, padded so every column stays addressable.
func ExtractTables(b []byte) ([]*models.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("html parse: %w", err)
	}

	var tables []*models.Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		if t := tableFromSelection(sel); t != nil && len(t.Columns) > 0 {
			tables = append(tables, t)
		}
	})
	return tables, nil
}

func tableFromSelection(sel *goquery.Selection) *models.Table {
	rows := sel.Find("tr")
	if rows.Length() == 0 {
		return nil
	}

	headerRow := sel.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = rows.First()
	}

	t := &models.Table{}
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		t.Columns = append(t.Columns, models.Column{Name: cleanText(cell.Text())})
	})
	if len(t.Columns) == 0 {
		return nil
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		if row.Get(0) == headerRow.Get(0) {
			return
		}
		cells := row.Find("th, td")
		if cells.Length() == 0 {
			return
		}
		for i := range t.Columns {
			cell := ""
			if i < cells.Length() {
				cell = cleanText(cells.Eq(i).Text())
			}
			t.Columns[i].Cells = append(t.Columns[i].Cells, cell)
		}
	})
	return t
}

// FindTableWithHeader returns the first table whose header names contain the
// token, case-insensitive, or nil. Used to pick the data table out of a page
// that carries navigation and layout tables too.
func FindTableWithHeader(tables []*models.Table, token string) *models.Table {
	lower := strings.ToLower(token)
	for _, t := range tables {
		for _, name := range t.ColumnNames() {
			if strings.Contains(strings.ToLower(name), lower) {
				return t
			}
		}
	}
	return nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
