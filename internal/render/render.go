// Package render rasterizes PDF pages for on-screen preview.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
)

// DefaultScale is the preview zoom factor relative to 72 DPI.
const DefaultScale = 1.5

// ErrPageOutOfRange is returned for page numbers outside the document.
var ErrPageOutOfRange = errors.New("page number out of range")

// Frame is one rendered page.
type Frame struct {
	PageNum int    `json:"page_num"` // 1-based
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	PNG     []byte `json:"-"`
}

// Rasterizer opens documents for rendering.
type Rasterizer interface {
	// Open prepares data for rendering. The returned Source must be closed.
	Open(ctx context.Context, data []byte) (Source, error)
}

// Source is a document opened by a Rasterizer.
type Source interface {
	// PageCount returns the number of pages.
	PageCount() int

	// RenderPage renders page pageNum (1-based) at the given scale.
	// Canceling ctx aborts the render and returns ctx's error.
	RenderPage(ctx context.Context, pageNum int, scale float64) (*Frame, error)

	// Close releases resources held by the source.
	Close() error
}

// FrameFromPNG builds a Frame from encoded PNG bytes.
func FrameFromPNG(pageNum int, data []byte) (*Frame, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rendered page is not a PNG: %w", err)
	}
	return &Frame{PageNum: pageNum, Width: cfg.Width, Height: cfg.Height, PNG: data}, nil
}

// DPI converts a scale factor to the resolution passed to renderers.
func DPI(scale float64) int {
	if scale <= 0 {
		scale = DefaultScale
	}
	return int(72*scale + 0.5)
}
