package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackzampolin/pagenum/internal/label"
)

type drawCall struct {
	page int
	text string
	x, y float64
	style Style
}

type fakeDocument struct {
	geoms    []label.PageGeometry
	draws    []drawCall
	failPage int // -1 disables
	saveErr  error
}

func newFakeDocument(n int) *fakeDocument {
	g := make([]label.PageGeometry, n)
	for i := range g {
		g[i] = label.PageGeometry{Width: 600, Height: 800}
	}
	return &fakeDocument{geoms: g, failPage: -1}
}

func (d *fakeDocument) PageCount() int { return len(d.geoms) }

func (d *fakeDocument) PageGeometry(i int) (label.PageGeometry, error) {
	if i < 0 || i >= len(d.geoms) {
		return label.PageGeometry{}, ErrPageOutOfRange
	}
	return d.geoms[i], nil
}

func (d *fakeDocument) DrawLabel(i int, text string, x, y float64, style Style) error {
	if i == d.failPage {
		return errors.New("draw failed")
	}
	if i < 0 || i >= len(d.geoms) {
		return ErrPageOutOfRange
	}
	d.draws = append(d.draws, drawCall{page: i, text: text, x: x, y: y, style: style})
	return nil
}

func (d *fakeDocument) Save(ctx context.Context) ([]byte, error) {
	if d.saveErr != nil {
		return nil, d.saveErr
	}
	return []byte(fmt.Sprintf("%d draws", len(d.draws))), nil
}

type fakeLoader struct {
	doc *fakeDocument
	err error
}

func (l *fakeLoader) Load(ctx context.Context, data []byte) (Document, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.doc, nil
}
