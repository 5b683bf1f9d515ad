// Package preview keeps a navigable, regenerable preview of a labeled
// document.
//
// A Session rebuilds its preview from the original source bytes whenever the
// numbering options change and rasterizes one page at a time. Every render
// request carries a generation number; issuing a request cancels the one
// before it of the same kind, and a completion whose generation is no longer
// the latest is dropped. Navigation never discards an option change: a
// rebuild in flight renders whichever page was requested last.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/render"
)

// DefaultDebounce is the quiet period before a scheduled rebuild runs.
const DefaultDebounce = 300 * time.Millisecond

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("preview session closed")

var placeholder = sync.OnceValue(render.Placeholder)

// Config configures a Session.
type Config struct {
	// Source is the original document. It is never modified.
	Source     []byte
	Loader     document.Loader
	Rasterizer render.Rasterizer

	Scale    float64       // default render.DefaultScale
	Debounce time.Duration // default DefaultDebounce
	Logger   *slog.Logger
}

// Session owns the preview state of one document.
type Session struct {
	source     []byte
	loader     document.Loader
	rasterizer render.Rasterizer
	scale      float64
	logger     *slog.Logger
	debounce   *debouncer

	mu     sync.Mutex
	state  State
	src    render.Source // labeled copy currently shown
	plan   label.Plan
	page   int // requested page, 0-based
	frame  *render.Frame
	closed bool

	// gen numbers every request. Rebuilds and navigation renders are
	// superseded independently: a rebuild only by a newer rebuild, a render
	// only by a newer render.
	gen         uint64
	build       uint64
	buildCancel context.CancelFunc
	phase       State // stage of the in-flight rebuild
	view        uint64
	viewCancel  context.CancelFunc
}

// New creates a session in StateEmpty.
func New(cfg Config) (*Session, error) {
	if len(cfg.Source) == 0 {
		return nil, apperr.InputErr("preview", apperr.ErrNoDocument)
	}
	if cfg.Loader == nil || cfg.Rasterizer == nil {
		return nil, fmt.Errorf("preview session needs a loader and a rasterizer")
	}
	if cfg.Scale <= 0 {
		cfg.Scale = render.DefaultScale
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Session{
		source:     cfg.Source,
		loader:     cfg.Loader,
		rasterizer: cfg.Rasterizer,
		scale:      cfg.Scale,
		logger:     cfg.Logger.With("component", "preview"),
		debounce:   newDebouncer(cfg.Debounce),
		state:      StateEmpty,
	}, nil
}

// begin issues a new request generation, canceling the previous request
// tracked by cancel. Must be called with mu held.
func (s *Session) begin(ctx context.Context, cancel *context.CancelFunc) (uint64, context.Context) {
	if *cancel != nil {
		(*cancel)()
	}
	s.gen++
	rctx, c := context.WithCancel(ctx)
	*cancel = c
	return s.gen, rctx
}

// finishBuild releases the context of rebuild gen. Must be called with mu
// held.
func (s *Session) finishBuild(gen uint64) {
	if gen == s.build && s.buildCancel != nil {
		s.buildCancel()
		s.buildCancel = nil
	}
}

// finishView releases the context of navigation gen. Must be called with mu
// held.
func (s *Session) finishView(gen uint64) {
	if gen == s.view && s.viewCancel != nil {
		s.viewCancel()
		s.viewCancel = nil
	}
}

// settle returns the session to the state matching what it shows and what
// is still in flight. Must be called with mu held.
func (s *Session) settle() {
	switch {
	case s.buildCancel != nil:
		s.state = s.phase
	case s.viewCancel != nil:
		s.state = StateRendering
	case s.frame != nil:
		s.state = StateReady
	default:
		s.state = StateEmpty
	}
}

// staleBuild reports whether rebuild gen has been superseded by a newer
// rebuild. Must be called with mu held.
func (s *Session) staleBuild(gen uint64) bool {
	if gen == s.build && !s.closed {
		return false
	}
	s.logger.Debug("dropping superseded preview rebuild", "generation", gen, "latest", s.build)
	return true
}

// failed converts err into the error returned to the caller. Cancellation is
// absorbed. Must be called with mu held after the request was finished.
func (s *Session) failed(gen uint64, op string, err error) error {
	s.settle()
	if apperr.IsCanceled(err) {
		s.logger.Debug("preview request canceled", "op", op, "generation", gen)
		return nil
	}
	s.logger.Error("preview failed", "op", op, "generation", gen, "error", err)
	return apperr.ProcessingErr("preview", err)
}

// Rebuild labels a fresh copy of the source with opts and renders the current
// page of it. On failure the previous preview stays in place. Only a newer
// Rebuild supersedes it; pages requested by navigation while it runs are
// rendered from the new copy before it is installed.
func (s *Session) Rebuild(ctx context.Context, opts label.Options) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	gen, rctx := s.begin(ctx, &s.buildCancel)
	s.build = gen
	s.phase = StatePlanning
	s.settle()
	s.mu.Unlock()

	start := time.Now()
	labeled, plan, err := document.Stamp(rctx, s.loader, s.source, opts, nil)
	if err == nil {
		err = rctx.Err()
	}
	var src render.Source
	if err == nil {
		src, err = s.rasterizer.Open(rctx, labeled)
	}
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.staleBuild(gen) {
			return nil
		}
		s.finishBuild(gen)
		return s.failed(gen, "rebuild", err)
	}

	var (
		page  int
		frame *render.Frame
	)
	for {
		s.mu.Lock()
		if s.staleBuild(gen) {
			s.mu.Unlock()
			s.closeSource(src)
			return nil
		}
		page = clamp(s.page, src.PageCount())
		s.phase = StateRendering
		s.settle()
		s.mu.Unlock()

		frame, err = src.RenderPage(rctx, page+1, s.scale)

		s.mu.Lock()
		if s.staleBuild(gen) {
			s.mu.Unlock()
			s.closeSource(src)
			return nil
		}
		if err != nil {
			s.finishBuild(gen)
			ferr := s.failed(gen, "rebuild", err)
			s.mu.Unlock()
			s.closeSource(src)
			return ferr
		}
		// navigation moved while rendering
		if clamp(s.page, src.PageCount()) != page {
			s.mu.Unlock()
			continue
		}
		break
	}

	old := s.src
	s.src = src
	s.plan = plan
	s.page = page
	s.frame = frame
	s.finishBuild(gen)
	s.settle()
	s.mu.Unlock()

	if old != nil {
		s.closeSource(old)
	}
	s.logger.Debug("preview rebuilt",
		"generation", gen,
		"pages", src.PageCount(),
		"labels", plan.Len(),
		"page", page+1,
		"duration", time.Since(start))
	return nil
}

// Schedule runs Rebuild with opts once calls have been quiet for the
// debounce interval. Errors are logged.
func (s *Session) Schedule(opts label.Options) {
	s.debounce.Trigger(func() {
		if err := s.Rebuild(context.Background(), opts); err != nil && !errors.Is(err, ErrClosed) {
			s.logger.Warn("scheduled preview rebuild failed", "error", err)
		}
	})
}

// Next renders the following page. It is a no-op on the last page.
func (s *Session) Next(ctx context.Context) error {
	return s.move(ctx, 1)
}

// Previous renders the preceding page. It is a no-op on the first page.
func (s *Session) Previous(ctx context.Context) error {
	return s.move(ctx, -1)
}

// GoTo renders page index (0-based). Unlike Next and Previous it reports
// an input error for pages outside the document.
func (s *Session) GoTo(ctx context.Context, index int) error {
	return s.seek(ctx, func(int) int { return index }, true)
}

func (s *Session) move(ctx context.Context, delta int) error {
	return s.seek(ctx, func(cur int) int { return cur + delta }, false)
}

func (s *Session) seek(ctx context.Context, to func(cur int) int, strict bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.src == nil {
		s.mu.Unlock()
		if strict {
			return apperr.InputErr("navigate", apperr.ErrNoDocument)
		}
		return nil
	}
	target := to(s.page)
	if count := s.src.PageCount(); target < 0 || target >= count {
		s.mu.Unlock()
		if strict {
			return apperr.InputErr("navigate", fmt.Errorf("%w: page %d of %d", render.ErrPageOutOfRange, target+1, count))
		}
		return nil
	}
	gen, rctx := s.begin(ctx, &s.viewCancel)
	s.view = gen
	s.page = target
	s.settle()
	src := s.src
	s.mu.Unlock()

	frame, err := src.RenderPage(rctx, target+1, s.scale)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.view || s.closed {
		s.logger.Debug("dropping superseded preview render", "generation", gen, "latest", s.view)
		return nil
	}
	s.finishView(gen)
	if src != s.src {
		// a rebuild installed a new copy; it renders s.page itself
		s.settle()
		return nil
	}
	if err != nil {
		if s.frame != nil {
			s.page = s.frame.PageNum - 1
		}
		return s.failed(gen, "navigate", err)
	}
	s.frame = frame
	s.settle()
	return nil
}

// HasNext reports whether Next would move.
func (s *Session) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasNext()
}

func (s *Session) hasNext() bool {
	return s.src != nil && s.page < s.src.PageCount()-1
}

// HasPrevious reports whether Previous would move.
func (s *Session) HasPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPrevious()
}

func (s *Session) hasPrevious() bool {
	return s.src != nil && s.page > 0
}

// Frame returns the latest rendered frame, or the placeholder canvas if no
// preview has been built.
func (s *Session) Frame() *render.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return placeholder()
	}
	return s.frame
}

// Plan returns the plan behind the current preview.
func (s *Session) Plan() label.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:       s.state,
		PageIndex:   s.page,
		PlanLength:  s.plan.Len(),
		HasNext:     s.hasNext(),
		HasPrevious: s.hasPrevious(),
		Generation:  s.gen,
	}
	if s.src != nil {
		snap.PageCount = s.src.PageCount()
	}
	if s.frame != nil {
		snap.RenderedPage = s.frame.PageNum
	}
	return snap
}

// Close cancels in-flight work and releases the rendered copy.
func (s *Session) Close() error {
	s.debounce.Stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, cancel := range []*context.CancelFunc{&s.buildCancel, &s.viewCancel} {
		if *cancel != nil {
			(*cancel)()
			*cancel = nil
		}
	}
	src := s.src
	s.src = nil
	s.mu.Unlock()

	if src != nil {
		return src.Close()
	}
	return nil
}

func (s *Session) closeSource(src render.Source) {
	if err := src.Close(); err != nil {
		s.logger.Warn("failed to release preview copy", "error", err)
	}
}

func clamp(page, count int) int {
	if page >= count {
		page = count - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}
