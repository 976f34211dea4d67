package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// Image is a normalized, opaque, bounded JPEG ready for placement.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Fetcher retrieves and normalizes placeholder images. One blocking
// request per token, no retries; any failure means "no image".
type Fetcher struct {
	client  *http.Client
	maxDim  int
	quality int
}

func NewFetcher(timeout time.Duration, maxDim, quality int) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		maxDim:  maxDim,
		quality: quality,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch %s: status %d", url, resp.StatusCode)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return f.Normalize(blob)
}

// Normalize decodes raw image bytes, flattens transparency and TIFF
// sources onto a white background, bounds both dimensions to maxDim
// with Lanczos resampling and re-encodes as JPEG.
func (f *Fetcher) Normalize(blob []byte) (*Image, error) {
	img, format, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// JPEG output cannot carry transparency, so anything that might
	// (alpha channels, paletted images with a transparent entry) is
	// composited onto white. TIFF goes through the same path to shed
	// its encoding quirks.
	if format == "tiff" || !isOpaque(img) {
		flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		img = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
	}

	bounds := img.Bounds()
	if bounds.Dx() > f.maxDim || bounds.Dy() > f.maxDim {
		img = imaging.Fit(img, f.maxDim, f.maxDim, imaging.Lanczos)
		bounds = img.Bounds()
	}

	buf := bytes.Buffer{}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: f.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return &Image{Data: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}
