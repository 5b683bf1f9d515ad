// Package document applies label plans to PDF documents.
//
// The document model itself is external: Loader and Document describe the
// operations the numbering pipeline needs, and PDFLoader implements them on
// top of pdfcpu.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackzampolin/pagenum/internal/label"
)

// ErrPageOutOfRange is returned for page indexes outside the document.
var ErrPageOutOfRange = errors.New("page index out of range")

// Style is the appearance of drawn labels.
type Style struct {
	FontSize int
	Color    label.RGB
	Opacity  float64
}

// StyleFrom extracts the drawing style from numbering options.
func StyleFrom(o label.Options) Style {
	return Style{FontSize: o.FontSize, Color: o.Color, Opacity: o.Opacity}
}

// Document is a mutable page collection loaded from bytes.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageGeometry returns the size of page i (0-based).
	PageGeometry(i int) (label.PageGeometry, error)

	// DrawLabel draws text on page i with its lower-left corner at (x, y).
	DrawLabel(i int, text string, x, y float64, style Style) error

	// Save serializes the document including every drawn label.
	Save(ctx context.Context) ([]byte, error)
}

// Loader parses documents from raw bytes. Every call returns an independent
// document; mutating one never affects another loaded from the same bytes.
type Loader interface {
	Load(ctx context.Context, data []byte) (Document, error)
}

// Stage names the step of a mutation that failed.
type Stage string

const (
	StageLoad Stage = "load"
	StageDraw Stage = "draw"
	StageSave Stage = "save"
)

// StageError reports which stage of a mutation failed.
type StageError struct {
	Stage Stage
	Page  int // 0-based page index, draw stage only
	Err   error
}

func (e *StageError) Error() string {
	if e.Stage == StageDraw {
		return fmt.Sprintf("document %s failed on page %d: %v", e.Stage, e.Page+1, e.Err)
	}
	return fmt.Sprintf("document %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the failed stage recorded in err, or "".
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
