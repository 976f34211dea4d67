// Package deck models the output presentation as a plain tree of
// slides, shapes, paragraphs and runs, with a JSON codec for the
// authoring template and the rendered result. Geometry is kept in
// EMU (914400 per inch), matching the authoring tool's units.
package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const EMUPerInch = 914400

type Deck struct {
	Slides []*Slide `json:"slides"`
}

type Slide struct {
	Name   string   `json:"name,omitempty"`
	Shapes []*Shape `json:"shapes"`
}

type Rect struct {
	Left   int64 `json:"left"`
	Top    int64 `json:"top"`
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// Shape is either a text frame (Paragraphs set) or a picture. A shape
// with neither is legal and left untouched by rendering.
type Shape struct {
	Name       string       `json:"name,omitempty"`
	Frame      Rect         `json:"frame"`
	Paragraphs []*Paragraph `json:"paragraphs,omitempty"`
	Picture    *Picture     `json:"picture,omitempty"`
}

type Paragraph struct {
	Runs []*Run `json:"runs"`
}

// Run is a span of uniformly formatted text. Hyperlink, when set, is
// the address attached to the whole run.
type Run struct {
	Text      string `json:"text"`
	Font      string `json:"font,omitempty"`
	Size      int    `json:"size,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Color     string `json:"color,omitempty"`
	Hyperlink string `json:"hyperlink,omitempty"`
}

// Picture carries re-encoded image bytes; JSON serializes them base64.
type Picture struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

func Load(path string) (*Deck, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	var d Deck
	if err := json.Unmarshal(blob, &d); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &d, nil
}

func (d *Deck) Save(path string) error {
	blob, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

// RemoveSlide drops the slide at the given position. Used exactly once
// per run to take the authoring slide out of the output.
func (d *Deck) RemoveSlide(i int) {
	if i < 0 || i >= len(d.Slides) {
		return
	}
	d.Slides = append(d.Slides[:i], d.Slides[i+1:]...)
}

func (d *Deck) AddSlide(s *Slide) {
	d.Slides = append(d.Slides, s)
}

// Clone deep-copies a slide so the authoring slide can be stamped once
// per input item and mutated independently.
func (s *Slide) Clone() *Slide {
	out := &Slide{Name: s.Name, Shapes: make([]*Shape, 0, len(s.Shapes))}
	for _, sh := range s.Shapes {
		out.Shapes = append(out.Shapes, sh.clone())
	}
	return out
}

func (sh *Shape) clone() *Shape {
	out := &Shape{Name: sh.Name, Frame: sh.Frame}
	for _, p := range sh.Paragraphs {
		cp := &Paragraph{Runs: make([]*Run, 0, len(p.Runs))}
		for _, r := range p.Runs {
			run := *r
			cp.Runs = append(cp.Runs, &run)
		}
		out.Paragraphs = append(out.Paragraphs, cp)
	}
	if sh.Picture != nil {
		out.Picture = &Picture{
			Format: sh.Picture.Format,
			Data:   append([]byte{}, sh.Picture.Data...),
		}
	}
	return out
}

func (sh *Shape) HasTextFrame() bool {
	return len(sh.Paragraphs) > 0
}

// Text joins the shape's full text, runs concatenated within a
// paragraph and paragraphs separated by newlines.
func (sh *Shape) Text() string {
	parts := make([]string, 0, len(sh.Paragraphs))
	for _, p := range sh.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// ClearText empties every run while keeping the shape and its runs in
// place, so run-level formatting survives for later edits.
func (sh *Shape) ClearText() {
	for _, p := range sh.Paragraphs {
		for _, r := range p.Runs {
			r.Text = ""
		}
	}
}

func (p *Paragraph) Text() string {
	out := strings.Builder{}
	for _, r := range p.Runs {
		out.WriteString(r.Text)
	}
	return out.String()
}

// AddPicture appends a picture shape at the given frame.
func (s *Slide) AddPicture(pic *Picture, frame Rect) {
	s.Shapes = append(s.Shapes, &Shape{Frame: frame, Picture: pic})
}
