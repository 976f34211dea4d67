package dataset

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/TinaMuuto/powerpoint-EY/internal/util"
)

// LoadTable reads the first sheet of an xlsx workbook into a Table,
// treating the first row as the header. Column names are normalized;
// a later duplicate of an already-seen normalized name is ignored.
func LoadTable(name, path string) (*Table, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return ParseTable(name, blob)
}

func ParseTable(name string, blob []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", name)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s rows: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}

	t := &Table{Name: name}
	seen := map[string]bool{}
	colIdx := []int{}
	for i, header := range rows[0] {
		norm := util.Normalize(header)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		t.Columns = append(t.Columns, norm)
		colIdx = append(colIdx, i)
	}

	for rowNo, cells := range rows[1:] {
		values := map[string]string{}
		empty := true
		for j, col := range t.Columns {
			v := ""
			// GetRows returns ragged rows; absent trailing cells are empty.
			if colIdx[j] < len(cells) {
				v = cells[colIdx[j]]
			}
			values[col] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		t.Rows = append(t.Rows, Row{Index: rowNo + 1, Values: values})
	}

	return t, nil
}
