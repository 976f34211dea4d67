package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TinaMuuto/powerpoint-EY/internal"
)

// ExportReportToXLSX writes a stored run report as a workbook, one row
// per input item.
func ExportReportToXLSX(rows []internal.RunReportRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"line_no", "item_no", "source", "status", "slide_index",
		"texts_replaced", "links_attached", "images_inserted", "warnings",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.LineNo)
		set(2, row.ItemNo)
		set(3, row.Source)
		set(4, row.Status)
		set(5, derefInt(row.SlideIndex))
		set(6, row.Texts)
		set(7, row.Links)
		set(8, row.Images)
		set(9, strings.Join(row.Warnings, "; "))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
