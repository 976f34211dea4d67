package dataset

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func TestParseTableNormalizesColumns(t *testing.T) {
	blob := mkXLSX([][]any{
		{"{{Product code}}", "Product Key", "VariantName"},
		{"AB12", "key-1", "Oak"},
		{"", "", ""},
		{"CD34", "key-2", "Walnut"},
	})
	tbl, err := ParseTable("mapping file", blob)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"{{productcode}}", "productkey", "variantname"}
	if len(tbl.Columns) != len(want) {
		t.Fatalf("columns=%v", tbl.Columns)
	}
	for i, c := range want {
		if tbl.Columns[i] != c {
			t.Fatalf("column %d: got %q want %q", i, tbl.Columns[i], c)
		}
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows=%d, blank row should be dropped", len(tbl.Rows))
	}
	if got := tbl.Rows[1].Get("Product Key"); got != "key-2" {
		t.Fatalf("Get: %q", got)
	}
}

func TestRequireColumns(t *testing.T) {
	blob := mkXLSX([][]any{
		{"productkey", "variantname"},
		{"key-1", "Oak"},
	})
	tbl, err := ParseTable("stock file", blob)
	if err != nil {
		t.Fatal(err)
	}

	if err := tbl.RequireColumns([]string{"ProductKey", "VariantName"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = tbl.RequireColumns([]string{"productkey", "variantname", "rts", "mto"})
	var colErr *ColumnError
	if !errors.As(err, &colErr) {
		t.Fatalf("want ColumnError, got %v", err)
	}
	if len(colErr.Missing) != 2 || colErr.Missing[0] != "rts" || colErr.Missing[1] != "mto" {
		t.Fatalf("missing=%v", colErr.Missing)
	}
	if len(colErr.Found) != 2 {
		t.Fatalf("found=%v", colErr.Found)
	}
}
