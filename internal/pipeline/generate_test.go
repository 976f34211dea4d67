package pipeline

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/TinaMuuto/powerpoint-EY/internal"
	"github.com/TinaMuuto/powerpoint-EY/internal/config"
	"github.com/TinaMuuto/powerpoint-EY/internal/dataset"
	"github.com/TinaMuuto/powerpoint-EY/internal/deck"
	"github.com/TinaMuuto/powerpoint-EY/internal/media"
)

type stubFetcher struct {
	img *media.Image
}

func (s *stubFetcher) Fetch(context.Context, string) (*media.Image, error) {
	return s.img, nil
}

func testMapping(t *testing.T) *dataset.Table {
	t.Helper()
	header := []any{}
	for _, c := range internal.RequiredMappingColumns() {
		header = append(header, c)
	}
	values := map[string]any{
		"{{Product name}}":              "Fiber Chair",
		"{{Product code}}":              "AB12",
		"{{Product country of origin}}": "Denmark",
		"{{Product height}}":            "82 cm",
		"{{Product Fact Sheet link}}":   "https://example.com/fs.pdf",
		"{{Product configurator link}}": "https://example.com/cfg",
		"{{Product Packshot1}}":         "https://example.com/p.png",
		"ProductKey":                    "key-1",
	}
	row := []any{}
	for _, c := range internal.RequiredMappingColumns() {
		row = append(row, values[c])
	}
	tbl, err := dataset.ParseTable("mapping file", mkXLSX([][]any{header, row}))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func testStock(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.ParseTable("stock file", mkXLSX([][]any{
		{"productkey", "variantname", "rts", "mto"},
		{"key-1", "Oak", "x", ""},
		{"key-1", "Oak", "x", ""},
		{"key-1", "Walnut", "", "x"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func testTemplate() *deck.Deck {
	text := func(frame deck.Rect, runs ...string) *deck.Shape {
		p := &deck.Paragraph{}
		for _, r := range runs {
			p.Runs = append(p.Runs, &deck.Run{Text: r})
		}
		return &deck.Shape{Frame: frame, Paragraphs: []*deck.Paragraph{p}}
	}
	frame := deck.Rect{Width: 300, Height: 300}
	return &deck.Deck{Slides: []*deck.Slide{{
		Name: "authoring",
		Shapes: []*deck.Shape{
			text(frame, "{{Prod", "uct name}}"),
			text(frame, "{{  Product code  }}"),
			text(frame, "{{Product height}}"),
			text(frame, "{{Product RTS}}"),
			text(frame, "{{Product MTO}}"),
			text(frame, "{{Product Fact Sheet link}}"),
			text(frame, "{{Product Packshot1}}"),
		},
	}}}
}

func testInputs(t *testing.T, items ...internal.InputItem) *Inputs {
	return &Inputs{
		Mapping: testMapping(t),
		Stock:   testStock(t),
		Deck:    testTemplate(),
		Items:   items,
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg, _ := config.Load()
	gen := NewGenerator(cfg, zap.NewNop(), &stubFetcher{img: &media.Image{Data: []byte{1}, Width: 800, Height: 400}})

	in := testInputs(t, internal.InputItem{LineNo: 1, Source: internal.SourceXLSX, ItemNo: "AB12-X"})
	summary, outcomes, err := gen.Run(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Rendered != 1 || summary.Skipped != 0 {
		t.Fatalf("summary: %+v", summary)
	}
	// Authoring slide removed, exactly one rendered unit left.
	if len(in.Deck.Slides) != 1 {
		t.Fatalf("slides=%d", len(in.Deck.Slides))
	}

	slide := in.Deck.Slides[0]
	allText := []string{}
	for _, sh := range slide.Shapes {
		allText = append(allText, sh.Text())
	}
	joined := strings.Join(allText, "\n")
	if strings.Contains(joined, "{{") || strings.Contains(joined, "}}") {
		t.Fatalf("residual token markup:\n%s", joined)
	}
	if !strings.Contains(joined, "Product Name: Fiber Chair") {
		t.Fatalf("title not substituted:\n%s", joined)
	}
	if !strings.Contains(joined, "Product in stock versions:\nOak") {
		t.Fatalf("rts not substituted:\n%s", joined)
	}
	if !strings.Contains(joined, "Available for made to order:\nWalnut") {
		t.Fatalf("mto not substituted:\n%s", joined)
	}

	// The packshot: a picture fitted 300x150 was appended and the
	// placeholder text cleared.
	pic := slide.Shapes[len(slide.Shapes)-1]
	if pic.Picture == nil || pic.Frame.Width != 300 || pic.Frame.Height != 150 {
		t.Fatalf("picture: %+v", pic)
	}

	if outcomes[0].Status != internal.ItemRendered || outcomes[0].SlideIndex != 0 {
		t.Fatalf("outcome: %+v", outcomes[0])
	}
}

func TestRunSkipsUnresolvedItems(t *testing.T) {
	cfg, _ := config.Load()
	gen := NewGenerator(cfg, zap.NewNop(), nil)

	in := testInputs(t,
		internal.InputItem{LineNo: 1, Source: internal.SourceXLSX, ItemNo: "AB12"},
		internal.InputItem{LineNo: 2, Source: internal.SourceXLSX, ItemNo: "ZZ99"},
		internal.InputItem{LineNo: 3, Source: internal.SourceXLSX, ItemNo: "AB12-OAK"},
	)
	summary, outcomes, err := gen.Run(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Rendered != 2 || summary.Skipped != 1 {
		t.Fatalf("summary: %+v", summary)
	}
	if len(in.Deck.Slides) != 2 {
		t.Fatalf("slides=%d", len(in.Deck.Slides))
	}
	if outcomes[1].Status != internal.ItemSkipped || len(outcomes[1].Warnings) != 1 {
		t.Fatalf("skipped outcome: %+v", outcomes[1])
	}
}

func TestRunEmptyTemplate(t *testing.T) {
	cfg, _ := config.Load()
	gen := NewGenerator(cfg, zap.NewNop(), nil)
	in := testInputs(t)
	in.Deck = &deck.Deck{}
	if _, _, err := gen.Run(context.Background(), in); err == nil {
		t.Fatal("expected error for empty template deck")
	}
}

func TestValidateTables(t *testing.T) {
	mapping := testMapping(t)
	stockTbl := testStock(t)
	if err := ValidateTables(mapping, stockTbl); err != nil {
		t.Fatalf("valid tables rejected: %v", err)
	}

	broken, err := dataset.ParseTable("stock file", mkXLSX([][]any{
		{"productkey", "variantname"},
		{"key-1", "Oak"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateTables(mapping, broken); err == nil {
		t.Fatal("expected missing-column error")
	}
}
