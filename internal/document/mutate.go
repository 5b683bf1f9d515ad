package document

import (
	"context"
	"fmt"

	"github.com/jackzampolin/pagenum/internal/label"
)

// ProgressFunc is called after each page is processed. done counts pages,
// not labels, so pages without a label still advance it.
type ProgressFunc func(done, total int)

// Load parses data with loader, tagging failures as StageLoad.
func Load(ctx context.Context, loader Loader, data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, &StageError{Stage: StageLoad, Err: fmt.Errorf("empty document")}
	}
	doc, err := loader.Load(ctx, data)
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Err: err}
	}
	return doc, nil
}

// Geometries reads the size of every page.
func Geometries(doc Document) ([]label.PageGeometry, error) {
	geoms := make([]label.PageGeometry, doc.PageCount())
	for i := range geoms {
		g, err := doc.PageGeometry(i)
		if err != nil {
			return nil, &StageError{Stage: StageLoad, Err: fmt.Errorf("page %d geometry: %w", i+1, err)}
		}
		geoms[i] = g
	}
	return geoms, nil
}

// Apply draws every instruction of plan onto doc in plan order. It stops at
// the first failure; the caller must then discard doc.
func Apply(ctx context.Context, doc Document, plan label.Plan, style Style, progress ProgressFunc) error {
	total := doc.PageCount()
	next := 0
	for page := 0; page < total; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for next < len(plan.Instructions) && plan.Instructions[next].PageIndex == page {
			in := plan.Instructions[next]
			if err := doc.DrawLabel(in.PageIndex, in.Text, in.X, in.Y, style); err != nil {
				return &StageError{Stage: StageDraw, Page: in.PageIndex, Err: err}
			}
			next++
		}
		if progress != nil {
			progress(page+1, total)
		}
	}
	if next < len(plan.Instructions) {
		in := plan.Instructions[next]
		return &StageError{Stage: StageDraw, Page: in.PageIndex, Err: ErrPageOutOfRange}
	}
	return nil
}

// Serialize saves doc, tagging failures as StageSave.
func Serialize(ctx context.Context, doc Document) ([]byte, error) {
	data, err := doc.Save(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageSave, Err: err}
	}
	return data, nil
}

// Stamp runs the whole pipeline on a fresh copy of source: load, plan, draw
// and save. It returns the labeled bytes and the plan that was applied.
func Stamp(ctx context.Context, loader Loader, source []byte, opts label.Options, progress ProgressFunc) ([]byte, label.Plan, error) {
	doc, err := Load(ctx, loader, source)
	if err != nil {
		return nil, label.Plan{}, err
	}
	geoms, err := Geometries(doc)
	if err != nil {
		return nil, label.Plan{}, err
	}
	plan := label.Build(geoms, opts)
	if err := Apply(ctx, doc, plan, StyleFrom(opts), progress); err != nil {
		return nil, label.Plan{}, err
	}
	out, err := Serialize(ctx, doc)
	if err != nil {
		return nil, label.Plan{}, err
	}
	return out, plan, nil
}
