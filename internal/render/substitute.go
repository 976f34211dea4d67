package render

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/TinaMuuto/powerpoint-EY/internal"
	"github.com/TinaMuuto/powerpoint-EY/internal/deck"
	"github.com/TinaMuuto/powerpoint-EY/internal/media"
	"github.com/TinaMuuto/powerpoint-EY/internal/util"
)

// ImageFetcher retrieves and normalizes an image for an image token.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*media.Image, error)
}

// Stats counts substitutions applied to one slide. Warnings hold the
// per-field recoverable conditions; none of them abort the slide.
type Stats struct {
	Texts    int
	Links    int
	Images   int
	Warnings []string
}

// Engine rewrites a cloned slide in place from a resolved field set.
type Engine struct {
	fetcher  ImageFetcher
	patterns map[string]*regexp.Regexp
}

func NewEngine(fetcher ImageFetcher) *Engine {
	return &Engine{fetcher: fetcher, patterns: map[string]*regexp.Regexp{}}
}

func (e *Engine) Apply(ctx context.Context, slide *deck.Slide, f Fields) Stats {
	st := Stats{}
	e.replaceText(slide, f.Texts, &st)
	e.replaceLinks(slide, f.Links, &st)
	e.replaceImages(ctx, slide, f.Images, &st)
	return st
}

// pattern matches one literal token, tolerating incidental whitespace
// between the braces and the name. Authoring tools pad tokens when
// they are typed into the document, so "{{ Product name }}" and
// "{{Product name}}" must behave identically.
func (e *Engine) pattern(token string) *regexp.Regexp {
	if re, ok := e.patterns[token]; ok {
		return re
	}
	re := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(token) + `\s*\}\}`)
	e.patterns[token] = re
	return re
}

// replaceText works per paragraph, not per run: a token typed into the
// authoring tool is routinely split across runs by formatting
// boundaries, so the runs are joined into one logical string before
// matching. The result is written back into the first run and the
// remaining runs are emptied, which flattens run-level formatting in
// paragraphs that contained a token.
func (e *Engine) replaceText(slide *deck.Slide, texts map[string]string, st *Stats) {
	for _, sh := range slide.Shapes {
		if !sh.HasTextFrame() {
			continue
		}
		for _, p := range sh.Paragraphs {
			if len(p.Runs) == 0 {
				continue
			}
			full := p.Text()
			replaced := full
			for tok, value := range texts {
				re := e.pattern(tok)
				if n := len(re.FindAllStringIndex(replaced, -1)); n > 0 {
					st.Texts += n
					replaced = re.ReplaceAllLiteralString(replaced, value)
				}
			}
			if replaced == full {
				continue
			}
			p.Runs[0].Text = replaced
			for _, r := range p.Runs[1:] {
				r.Text = ""
			}
		}
	}
}

// replaceLinks works per run because the address attaches to the run
// that carries the label. A token split across runs cannot take a
// hyperlink anyway, so the coarser paragraph join is not used here.
func (e *Engine) replaceLinks(slide *deck.Slide, links map[string]Link, st *Stats) {
	for _, sh := range slide.Shapes {
		for _, p := range sh.Paragraphs {
			for _, run := range p.Runs {
				for tok, link := range links {
					re := e.pattern(tok)
					if !re.MatchString(run.Text) {
						continue
					}
					run.Text = re.ReplaceAllLiteralString(run.Text, link.Label)
					if err := validLinkTarget(link.URL); err != nil {
						// The label is already in place; a bad target
						// degrades to plain text.
						st.Warnings = append(st.Warnings,
							fmt.Sprintf("hyperlink for {{%s}} could not be attached: %v", tok, err))
						continue
					}
					run.Hyperlink = link.URL
					st.Links++
				}
			}
		}
	}
}

// replaceImages detects image tokens by normalized substring over the
// whole shape text, coarser than the regex used for text tokens. On a
// hit the fetched image is fitted into the placeholder frame with its
// aspect ratio preserved and the placeholder text is cleared so the
// two do not overlap. Only the first matching token per shape counts.
func (e *Engine) replaceImages(ctx context.Context, slide *deck.Slide, images map[string]string, st *Stats) {
	shapes := slide.Shapes
	for _, sh := range shapes {
		if !sh.HasTextFrame() {
			continue
		}
		normText := util.Normalize(sh.Text())
		for _, tok := range internal.ImageTokens {
			if !strings.Contains(normText, util.Normalize("{{"+tok+"}}")) {
				continue
			}
			srcURL := images[tok]
			if srcURL == "" {
				break
			}
			if e.fetcher == nil {
				st.Warnings = append(st.Warnings,
					fmt.Sprintf("image for {{%s}} skipped: no fetcher configured", tok))
				break
			}
			img, err := e.fetcher.Fetch(ctx, srcURL)
			if err != nil {
				st.Warnings = append(st.Warnings,
					fmt.Sprintf("image for {{%s}} from %s: %v", tok, srcURL, err))
				break
			}

			scale := fitScale(sh.Frame, img.Width, img.Height)
			slide.AddPicture(&deck.Picture{Format: "jpeg", Data: img.Data}, deck.Rect{
				Left:   sh.Frame.Left,
				Top:    sh.Frame.Top,
				Width:  int64(float64(img.Width) * scale),
				Height: int64(float64(img.Height) * scale),
			})
			sh.ClearText()
			st.Images++
			break
		}
	}
}

func fitScale(frame deck.Rect, w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	sw := float64(frame.Width) / float64(w)
	sh := float64(frame.Height) / float64(h)
	if sw < sh {
		return sw
	}
	return sh
}

func validLinkTarget(target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("empty target")
	}
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return fmt.Errorf("target %q has no scheme", target)
	}
	return nil
}
