package render

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/TinaMuuto/powerpoint-EY/internal"
	"github.com/TinaMuuto/powerpoint-EY/internal/deck"
	"github.com/TinaMuuto/powerpoint-EY/internal/media"
)

func textSlide(runs ...string) *deck.Slide {
	p := &deck.Paragraph{}
	for _, r := range runs {
		p.Runs = append(p.Runs, &deck.Run{Text: r})
	}
	return &deck.Slide{Shapes: []*deck.Shape{{
		Frame:      deck.Rect{Width: 300, Height: 300},
		Paragraphs: []*deck.Paragraph{p},
	}}}
}

type stubFetcher struct {
	img   *media.Image
	err   error
	calls []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (*media.Image, error) {
	s.calls = append(s.calls, url)
	return s.img, s.err
}

func TestReplaceTextWhitespaceTolerant(t *testing.T) {
	slide := textSlide("{{  Product name  }}")
	e := NewEngine(nil)
	st := e.Apply(t.Context(), slide, Fields{Texts: map[string]string{
		internal.TokenProductName: "Product Name: Fiber Chair",
	}})
	if st.Texts != 1 {
		t.Fatalf("texts=%d", st.Texts)
	}
	got := slide.Shapes[0].Text()
	if got != "Product Name: Fiber Chair" {
		t.Fatalf("got %q", got)
	}
}

func TestReplaceTextAcrossRuns(t *testing.T) {
	slide := textSlide("{{Prod", "uct name}}")
	e := NewEngine(nil)
	st := e.Apply(t.Context(), slide, Fields{Texts: map[string]string{
		internal.TokenProductName: "Product Name: Fiber Chair",
	}})
	if st.Texts != 1 {
		t.Fatalf("split token not reconstructed: %+v", st)
	}
	p := slide.Shapes[0].Paragraphs[0]
	if p.Runs[0].Text != "Product Name: Fiber Chair" || p.Runs[1].Text != "" {
		t.Fatalf("runs: %q / %q", p.Runs[0].Text, p.Runs[1].Text)
	}
}

func TestReplaceTextLeavesOtherParagraphs(t *testing.T) {
	slide := textSlide("no tokens here")
	slide.Shapes[0].Paragraphs[0].Runs[0].Bold = true
	e := NewEngine(nil)
	_ = e.Apply(t.Context(), slide, Fields{Texts: map[string]string{
		internal.TokenProductName: "Product Name: Fiber Chair",
	}})
	run := slide.Shapes[0].Paragraphs[0].Runs[0]
	if run.Text != "no tokens here" || !run.Bold {
		t.Fatalf("untouched paragraph changed: %+v", run)
	}
}

func TestReplaceHyperlink(t *testing.T) {
	slide := textSlide("{{Product Fact Sheet link}}")
	e := NewEngine(nil)
	st := e.Apply(t.Context(), slide, Fields{Links: map[string]Link{
		internal.TokenFactSheetLink: {Label: "Download Product Fact Sheet", URL: "https://example.com/fs.pdf"},
	}})
	run := slide.Shapes[0].Paragraphs[0].Runs[0]
	if run.Text != "Download Product Fact Sheet" {
		t.Fatalf("text: %q", run.Text)
	}
	if run.Hyperlink != "https://example.com/fs.pdf" || st.Links != 1 {
		t.Fatalf("hyperlink not attached: %+v %+v", run, st)
	}
}

func TestReplaceHyperlinkBadTarget(t *testing.T) {
	slide := textSlide("{{Product configurator link}}")
	e := NewEngine(nil)
	st := e.Apply(t.Context(), slide, Fields{Links: map[string]Link{
		internal.TokenConfiguratorURL: {Label: "Click to configure product", URL: "   "},
	}})
	run := slide.Shapes[0].Paragraphs[0].Runs[0]
	// Label replacement still happens; only the address is dropped.
	if run.Text != "Click to configure product" || run.Hyperlink != "" {
		t.Fatalf("run: %+v", run)
	}
	if st.Links != 0 || len(st.Warnings) != 1 {
		t.Fatalf("stats: %+v", st)
	}
}

func TestReplaceImageScalesToFit(t *testing.T) {
	slide := textSlide("{{Product Packshot1}}")
	fetcher := &stubFetcher{img: &media.Image{Data: []byte{1}, Width: 800, Height: 400}}
	e := NewEngine(fetcher)
	st := e.Apply(t.Context(), slide, Fields{Images: map[string]string{
		internal.TokenPackshot1: "https://example.com/p.png",
	}})
	if st.Images != 1 {
		t.Fatalf("stats: %+v", st)
	}
	if len(slide.Shapes) != 2 {
		t.Fatalf("shapes=%d", len(slide.Shapes))
	}
	pic := slide.Shapes[1]
	if pic.Frame.Width != 300 || pic.Frame.Height != 150 {
		t.Fatalf("picture frame %dx%d, want 300x150", pic.Frame.Width, pic.Frame.Height)
	}
	if slide.Shapes[0].Text() != "" {
		t.Fatal("placeholder text not cleared")
	}
}

func TestReplaceImageFetchFailure(t *testing.T) {
	slide := textSlide("{{Product Lifestyle1}}")
	fetcher := &stubFetcher{err: fmt.Errorf("timeout")}
	e := NewEngine(fetcher)
	st := e.Apply(t.Context(), slide, Fields{Images: map[string]string{
		internal.TokenLifestyle1: "https://example.com/l.png",
	}})
	if st.Images != 0 || len(st.Warnings) != 1 {
		t.Fatalf("stats: %+v", st)
	}
	// Token stays put when nothing was inserted.
	if !strings.Contains(slide.Shapes[0].Text(), "{{Product Lifestyle1}}") {
		t.Fatalf("text: %q", slide.Shapes[0].Text())
	}
	if len(slide.Shapes) != 1 {
		t.Fatal("no picture should have been added")
	}
}

func TestReplaceImageNoSource(t *testing.T) {
	slide := textSlide("{{Product Lifestyle2}}")
	fetcher := &stubFetcher{img: &media.Image{Data: []byte{1}, Width: 10, Height: 10}}
	e := NewEngine(fetcher)
	st := e.Apply(t.Context(), slide, Fields{Images: map[string]string{}})
	if st.Images != 0 || len(fetcher.calls) != 0 {
		t.Fatalf("empty source must not fetch: %+v calls=%v", st, fetcher.calls)
	}
}
