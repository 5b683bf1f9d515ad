package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jackzampolin/pagenum/internal/label"
)

// FontName is the standard font labels are drawn with.
const FontName = "Helvetica"

// PDFLoader loads documents with pdfcpu.
type PDFLoader struct {
	logger *slog.Logger
}

// NewPDFLoader creates a pdfcpu-backed loader.
func NewPDFLoader(logger *slog.Logger) *PDFLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFLoader{logger: logger.With("component", "pdf")}
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Load parses and validates data, and reads the geometry of every page.
func (l *PDFLoader) Load(ctx context.Context, data []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conf := newConfiguration()
	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := api.ValidateContext(pctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	dims, err := pctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page sizes: %w", err)
	}
	if len(dims) != pctx.PageCount {
		return nil, fmt.Errorf("page size count %d does not match page count %d", len(dims), pctx.PageCount)
	}

	geoms := make([]label.PageGeometry, len(dims))
	for i, d := range dims {
		geoms[i] = label.PageGeometry{Width: d.Width, Height: d.Height}
	}

	src := make([]byte, len(data))
	copy(src, data)

	l.logger.Debug("loaded PDF", "pages", len(geoms), "bytes", len(data))

	return &pdfDocument{
		src:    src,
		conf:   conf,
		geoms:  geoms,
		stamps: make(map[int]*model.Watermark),
		logger: l.logger,
	}, nil
}

// pdfDocument records labels as pdfcpu text stamps and writes them all on
// Save. One label per page: drawing twice on a page keeps the last one.
type pdfDocument struct {
	mu     sync.Mutex
	src    []byte
	conf   *model.Configuration
	geoms  []label.PageGeometry
	stamps map[int]*model.Watermark // keyed by 1-based page number
	logger *slog.Logger
}

func (d *pdfDocument) PageCount() int {
	return len(d.geoms)
}

func (d *pdfDocument) PageGeometry(i int) (label.PageGeometry, error) {
	if i < 0 || i >= len(d.geoms) {
		return label.PageGeometry{}, fmt.Errorf("%w: %d", ErrPageOutOfRange, i)
	}
	return d.geoms[i], nil
}

func (d *pdfDocument) DrawLabel(i int, text string, x, y float64, style Style) error {
	if i < 0 || i >= len(d.geoms) {
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, i)
	}
	if style.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", style.FontSize)
	}

	safe := FontSafe(text)
	if safe == "" {
		d.logger.Debug("label has no drawable glyphs, skipping", "page", i+1, "text", text)
		return nil
	}

	wm, err := api.TextWatermark(safe, stampDescription(x, y, style), true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to build text stamp: %w", err)
	}

	d.mu.Lock()
	d.stamps[i+1] = wm
	d.mu.Unlock()
	return nil
}

func (d *pdfDocument) Save(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	stamps := make(map[int]*model.Watermark, len(d.stamps))
	for k, v := range d.stamps {
		stamps[k] = v
	}
	d.mu.Unlock()

	if len(stamps) == 0 {
		out := make([]byte, len(d.src))
		copy(out, d.src)
		return out, nil
	}

	var buf bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(d.src), &buf, stamps, d.conf); err != nil {
		return nil, fmt.Errorf("failed to write stamped PDF: %w", err)
	}
	d.logger.Debug("saved stamped PDF", "labels", len(stamps), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// stampDescription builds a pdfcpu stamp description placing the text box's
// lower-left corner at (x, y) in points, unscaled and unrotated.
func stampDescription(x, y float64, s Style) string {
	return fmt.Sprintf(
		"fontname:%s, points:%d, position:bl, offset:%.2f %.2f, scalefactor:1 abs, rotation:0, fillcolor:%.4f %.4f %.4f, opacity:%.2f",
		FontName, s.FontSize, x, y, s.Color.R, s.Color.G, s.Color.B, s.Opacity,
	)
}
