// Package export produces the final labeled document.
//
// Every export loads its own copy of the source bytes, so it never observes
// or disturbs a preview being built at the same time.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/label"
)

// Result is a finished export.
type Result struct {
	Data      []byte     `json:"-"`
	FileName  string     `json:"file_name"`
	PageCount int        `json:"page_count"`
	Plan      label.Plan `json:"plan"`
	Message   string     `json:"message"`
}

// Exporter stamps page numbers onto source documents.
type Exporter struct {
	loader document.Loader
	logger *slog.Logger
}

// New creates an Exporter.
func New(loader document.Loader, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{loader: loader, logger: logger.With("component", "export")}
}

// Run labels a copy of source with opts. progress, if non-nil, is called once
// per page. Failures are returned as apperr errors; cancellation is returned
// unwrapped so callers can drop it silently.
func (e *Exporter) Run(ctx context.Context, name string, source []byte, opts label.Options, progress document.ProgressFunc) (*Result, error) {
	if len(source) == 0 {
		return nil, apperr.InputErr("export", apperr.ErrNoDocument)
	}

	start := time.Now()
	logger := e.logger.With("file", name)
	logger.Info("export started", "bytes", len(source), "format", opts.Format, "position", opts.Position.Anchor)

	data, plan, err := document.Stamp(ctx, e.loader, source, opts, progress)
	if err != nil {
		if apperr.IsCanceled(err) {
			logger.Info("export canceled")
			return nil, err
		}
		logger.Error("export failed", "stage", document.StageOf(err), "error", err)
		return nil, apperr.ProcessingErr("export", err)
	}

	res := &Result{
		Data:      data,
		FileName:  FileName(name),
		PageCount: plan.PageCount,
		Plan:      plan,
		Message:   SuccessMessage(plan.PageCount),
	}
	logger.Info("export complete",
		"output", res.FileName,
		"pages", res.PageCount,
		"labels", plan.Len(),
		"bytes", len(data),
		"duration", time.Since(start))
	return res, nil
}

// SuccessMessage is the confirmation shown after an export.
func SuccessMessage(pageCount int) string {
	return fmt.Sprintf("Page numbers added successfully: %d pages processed.", pageCount)
}
