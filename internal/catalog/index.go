package catalog

import (
	"strings"

	"github.com/TinaMuuto/powerpoint-EY/internal/dataset"
	"github.com/TinaMuuto/powerpoint-EY/internal/util"
)

// Index resolves item numbers against the mapping table. Exact lookups
// go through a normalized-code map built once per run; the hyphen
// prefix fallback scans codes in table order so that "first row in the
// table wins" holds for both passes.
type Index struct {
	keyColumn string
	rows      []dataset.Row
	byCode    map[string]int // normalized code -> first row position
	codes     []codeEntry    // table order, for the prefix pass
}

type codeEntry struct {
	code string
	pos  int
}

func BuildIndex(t *dataset.Table, keyColumn string) *Index {
	idx := &Index{
		keyColumn: keyColumn,
		rows:      t.Rows,
		byCode:    map[string]int{},
	}
	for pos, row := range t.Rows {
		code := util.Normalize(row.Get(keyColumn))
		if code == "" {
			continue
		}
		if _, ok := idx.byCode[code]; !ok {
			idx.byCode[code] = pos
		}
		idx.codes = append(idx.codes, codeEntry{code: code, pos: pos})
	}
	return idx
}

// Resolve finds the mapping row for an item number. The exact pass
// compares normalized codes; if it misses and the raw item number
// contains a hyphen, the part before the first hyphen is retried as a
// code prefix. Item numbers commonly carry a variant suffix after the
// hyphen, so the fallback lets a variant-specific number reach its
// base record.
func (idx *Index) Resolve(itemNo string) (dataset.Row, bool) {
	norm := util.Normalize(itemNo)
	if pos, ok := idx.byCode[norm]; ok {
		return idx.rows[pos], true
	}

	if i := strings.Index(itemNo, "-"); i >= 0 {
		partial := util.Normalize(itemNo[:i])
		if partial != "" {
			for _, e := range idx.codes {
				if strings.HasPrefix(e.code, partial) {
					return idx.rows[e.pos], true
				}
			}
		}
	}

	return dataset.Row{}, false
}
