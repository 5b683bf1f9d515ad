package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Pdftoppm renders pages with poppler's pdftoppm binary.
type Pdftoppm struct {
	binary     string
	scratchDir string
	logger     *slog.Logger
}

// PdftoppmConfig configures a Pdftoppm rasterizer.
type PdftoppmConfig struct {
	Binary     string // default: pdftoppm
	ScratchDir string // default: os.TempDir()
	Logger     *slog.Logger
}

// NewPdftoppm creates a pdftoppm-backed rasterizer.
func NewPdftoppm(cfg PdftoppmConfig) *Pdftoppm {
	if cfg.Binary == "" {
		cfg.Binary = "pdftoppm"
	}
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = os.TempDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pdftoppm{
		binary:     cfg.Binary,
		scratchDir: cfg.ScratchDir,
		logger:     cfg.Logger.With("component", "pdftoppm"),
	}
}

// Available reports whether the pdftoppm binary can be found.
func (p *Pdftoppm) Available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

// Open writes data to a scratch file that pdftoppm renders from.
func (p *Pdftoppm) Open(ctx context.Context, data []byte) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.scratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}

	path := filepath.Join(p.scratchDir, "preview-"+uuid.New().String()+".pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write preview file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to open preview file: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	return &pdftoppmSource{p: p, path: path, pageCount: pageCount}, nil
}

type pdftoppmSource struct {
	p         *Pdftoppm
	path      string
	pageCount int
}

func (s *pdftoppmSource) PageCount() int {
	return s.pageCount
}

// RenderPage runs pdftoppm for a single page. The process is killed when ctx
// is canceled.
func (s *pdftoppmSource) RenderPage(ctx context.Context, pageNum int, scale float64) (*Frame, error) {
	if pageNum < 1 || pageNum > s.pageCount {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, pageNum, s.pageCount)
	}

	tmpDir, err := os.MkdirTemp(s.p.scratchDir, "page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// -singlefile writes <prefix>.png without a page-number suffix
	outputPrefix := filepath.Join(tmpDir, "page")
	pageStr := strconv.Itoa(pageNum)
	cmd := exec.CommandContext(ctx, s.p.binary,
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(DPI(scale)),
		"-singlefile",
		s.path,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	data, err := os.ReadFile(outputPrefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}

	s.p.logger.Debug("rendered page", "page", pageNum, "bytes", len(data))
	return FrameFromPNG(pageNum, data)
}

func (s *pdftoppmSource) Close() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove preview file: %w", err)
	}
	return nil
}
