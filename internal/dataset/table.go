package dataset

import (
	"fmt"
	"strings"

	"github.com/TinaMuuto/powerpoint-EY/internal/util"
)

// Table is a loaded workbook sheet with normalized column names. Row
// order is the sheet order; all key comparisons downstream rely on it.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Row maps a normalized column name to the raw cell value.
type Row struct {
	Index  int
	Values map[string]string
}

func (r Row) Get(column string) string {
	return r.Values[util.Normalize(column)]
}

// ColumnError is the configuration-fatal signal for a table missing
// required columns. It carries both the missing set and what was
// actually found so the caller can surface a precise message.
type ColumnError struct {
	Table   string
	Missing []string
	Found   []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s is missing columns (after normalization): %s; found: %s",
		e.Table, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// RequireColumns checks that every required column is present after
// normalization. Required names may be given in any spelling.
func (t *Table) RequireColumns(required []string) error {
	have := map[string]bool{}
	for _, c := range t.Columns {
		have[c] = true
	}

	missing := []string{}
	for _, req := range required {
		if !have[util.Normalize(req)] {
			missing = append(missing, util.Normalize(req))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ColumnError{Table: t.Name, Missing: missing, Found: append([]string{}, t.Columns...)}
}
