package render

import (
	"strings"

	"github.com/TinaMuuto/powerpoint-EY/internal"
	"github.com/TinaMuuto/powerpoint-EY/internal/dataset"
	"github.com/TinaMuuto/powerpoint-EY/internal/stock"
)

// Link is a hyperlink token value: the display label that replaces the
// token and the address attached to its run.
type Link struct {
	Label string
	URL   string
}

// Fields is the resolved value set for one input item, keyed by bare
// token name. Built fresh per item and consumed once.
type Fields struct {
	Texts  map[string]string
	Links  map[string]Link
	Images map[string]string
}

// BuildFields projects a resolved mapping row plus the stock table
// into the full token vocabulary. Identity-like fields join label and
// value on one line; dimension fields break the line; certificate and
// consumption notes leave a blank line before the value. The two
// availability tokens are synthesized from the stock table.
func BuildFields(row dataset.Row, stockTbl *dataset.Table, cfg stock.Config, layout stock.Layout) Fields {
	f := Fields{
		Texts:  map[string]string{},
		Links:  map[string]Link{},
		Images: map[string]string{},
	}

	for tok, label := range internal.TextTokenLabels {
		value := strings.TrimSpace(row.Get("{{" + tok + "}}"))
		f.Texts[tok] = label + textSeparator(tok) + value
	}

	productKey := row.Get(internal.MappingProductKeyColumn)
	rts := stock.DisplayText(stockTbl, cfg, productKey, internal.StockRTSColumn, layout)
	mto := stock.DisplayText(stockTbl, cfg, productKey, internal.StockMTOColumn, layout)
	f.Texts[internal.TokenRTS] = internal.LabelRTS + "\n" + rts
	f.Texts[internal.TokenMTO] = internal.LabelMTO + "\n" + mto

	for tok, label := range internal.HyperlinkTokenLabels {
		f.Links[tok] = Link{Label: label, URL: strings.TrimSpace(row.Get("{{" + tok + "}}"))}
	}
	for _, tok := range internal.ImageTokens {
		f.Images[tok] = strings.TrimSpace(row.Get("{{" + tok + "}}"))
	}

	return f
}

func textSeparator(token string) string {
	switch {
	case internal.SameLineTokens[token]:
		return " "
	case internal.DoubleBreakTokens[token]:
		return "\n\n"
	default:
		return "\n"
	}
}
