package dataset

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pdf "github.com/ledongthuc/pdf"

	"github.com/TinaMuuto/powerpoint-EY/internal"
	"github.com/TinaMuuto/powerpoint-EY/internal/util"
)

// ItemsFromInput loads the user item list. The primary format is an
// xlsx workbook with "Item no" and "Product name" columns; an HTML
// table export or a plain PDF list are accepted as alternates.
func ItemsFromInput(inputType, path string) ([]internal.InputItem, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item file: %w", err)
	}
	switch inputType {
	case "xlsx":
		return ParseItemsXLSX(blob)
	case "html":
		return ParseItemsHTML(blob)
	case "pdf":
		return ParseItemsPDF(blob)
	default:
		return nil, fmt.Errorf("unsupported item input type: %s", inputType)
	}
}

func ParseItemsXLSX(blob []byte) ([]internal.InputItem, error) {
	t, err := ParseTable("user file", blob)
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns([]string{internal.UserItemNoColumn, internal.UserProductNameColumn}); err != nil {
		return nil, err
	}

	out := make([]internal.InputItem, 0, len(t.Rows))
	for _, row := range t.Rows {
		itemNo := strings.TrimSpace(row.Get(internal.UserItemNoColumn))
		if itemNo == "" {
			continue
		}
		out = append(out, internal.InputItem{
			LineNo:      len(out) + 1,
			Source:      internal.SourceXLSX,
			ItemNo:      itemNo,
			ProductName: strings.TrimSpace(row.Get(internal.UserProductNameColumn)),
		})
	}
	return out, nil
}

func ParseItemsHTML(blob []byte) ([]internal.InputItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}

	out := []internal.InputItem{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, util.Normalize(cell.Text()))
		})
		itemIdx := findHeaderIndex(headers, []string{"itemno", "itemnumber", "articleno"})
		nameIdx := findHeaderIndex(headers, []string{"productname", "name"})
		if itemIdx < 0 {
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			itemNo := pickCell(cells, itemIdx)
			if itemNo == "" {
				return
			}
			out = append(out, internal.InputItem{
				LineNo:      len(out) + 1,
				Source:      internal.SourceHTMLTable,
				ItemNo:      itemNo,
				ProductName: pickCell(cells, nameIdx),
			})
		})
	})

	return out, nil
}

// reItemLine matches a leading code-like token on a PDF line: letters
// and digits with optional hyphenated suffixes.
var reItemLine = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9\-/.]{2,})(?:\s+(.*))?$`)

func ParseItemsPDF(blob []byte) ([]internal.InputItem, error) {
	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, err
	}

	out := []internal.InputItem{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range splitLines(text) {
			m := reItemLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			out = append(out, internal.InputItem{
				LineNo:      len(out) + 1,
				Source:      internal.SourcePDF,
				ItemNo:      m[1],
				ProductName: strings.TrimSpace(m[2]),
			})
		}
	}
	return out, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	return ""
}
