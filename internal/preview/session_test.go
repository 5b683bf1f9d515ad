package preview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/render"
)

type fakeDoc struct {
	pages int
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) PageGeometry(i int) (label.PageGeometry, error) {
	return label.PageGeometry{Width: 600, Height: 800}, nil
}

func (d *fakeDoc) DrawLabel(i int, text string, x, y float64, style document.Style) error {
	return nil
}

func (d *fakeDoc) Save(ctx context.Context) ([]byte, error) {
	return []byte("labeled"), nil
}

type fakeLoader struct {
	pages int
	loads atomic.Int32
	fail  atomic.Bool
}

func (l *fakeLoader) Load(ctx context.Context, data []byte) (document.Document, error) {
	l.loads.Add(1)
	if l.fail.Load() {
		return nil, errors.New("broken xref")
	}
	return &fakeDoc{pages: l.pages}, nil
}

// fakeRasterizer renders instantly unless a page is gated. Gated renders
// wait for their gate regardless of cancellation, like a renderer that
// finishes late.
type fakeRasterizer struct {
	mu      sync.Mutex
	pages   int
	gates   map[int]chan struct{}
	started chan int
	closed  atomic.Int32
}

func newFakeRasterizer(pages int) *fakeRasterizer {
	return &fakeRasterizer{pages: pages, gates: map[int]chan struct{}{}, started: make(chan int, 16)}
}

func (r *fakeRasterizer) gate(page int) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan struct{})
	r.gates[page] = ch
	return ch
}

func (r *fakeRasterizer) setPages(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = n
}

func (r *fakeRasterizer) Open(ctx context.Context, data []byte) (render.Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &fakeSource{r: r, pages: r.pages}, nil
}

type fakeSource struct {
	r     *fakeRasterizer
	pages int
}

func (s *fakeSource) PageCount() int { return s.pages }

func (s *fakeSource) RenderPage(ctx context.Context, pageNum int, scale float64) (*render.Frame, error) {
	s.r.mu.Lock()
	gate := s.r.gates[pageNum]
	s.r.mu.Unlock()

	s.r.started <- pageNum
	if gate != nil {
		<-gate
	}
	return &render.Frame{PageNum: pageNum, Width: 900, Height: 1200}, nil
}

func (s *fakeSource) Close() error {
	s.r.closed.Add(1)
	return nil
}

func newTestSession(t *testing.T, pages int) (*Session, *fakeLoader, *fakeRasterizer) {
	t.Helper()
	loader := &fakeLoader{pages: pages}
	rast := newFakeRasterizer(pages)
	s, err := New(Config{
		Source:     []byte("%PDF-1.4"),
		Loader:     loader,
		Rasterizer: rast,
		Debounce:   20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, loader, rast
}

func testOptions() label.Options {
	return label.Options{StartValue: 1, IncludeFirstPage: true, FontSize: 12, Opacity: 0.9}
}

func drain(r *fakeRasterizer) {
	for {
		select {
		case <-r.started:
		default:
			return
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(Config{Loader: &fakeLoader{}, Rasterizer: newFakeRasterizer(1)})
	if !apperr.IsInput(err) {
		t.Errorf("expected input error, got %v", err)
	}
	if !errors.Is(err, apperr.ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
}

func TestSession_EmptyShowsPlaceholder(t *testing.T) {
	s, _, _ := newTestSession(t, 3)

	snap := s.Snapshot()
	if snap.State != StateEmpty {
		t.Errorf("expected empty state, got %s", snap.State)
	}
	if s.HasNext() || s.HasPrevious() {
		t.Error("navigation should be unavailable before the first preview")
	}

	f := s.Frame()
	if f.PageNum != 0 || f.Width != render.PlaceholderWidth {
		t.Errorf("expected placeholder frame, got page %d width %d", f.PageNum, f.Width)
	}
	if err := s.Next(context.Background()); err != nil {
		t.Errorf("Next() on empty session should be a no-op, got %v", err)
	}
}

func TestSession_Rebuild(t *testing.T) {
	s, _, _ := newTestSession(t, 3)

	if err := s.Rebuild(context.Background(), testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.State != StateReady {
		t.Errorf("expected ready, got %s", snap.State)
	}
	if snap.PageCount != 3 || snap.PlanLength != 3 {
		t.Errorf("expected 3 pages and 3 labels, got %d and %d", snap.PageCount, snap.PlanLength)
	}
	if snap.RenderedPage != 1 {
		t.Errorf("expected page 1 rendered, got %d", snap.RenderedPage)
	}
	if !snap.HasNext || snap.HasPrevious {
		t.Errorf("expected next only, got next=%v previous=%v", snap.HasNext, snap.HasPrevious)
	}
	if got := s.Plan().Instructions[2].Text; got != "3" {
		t.Errorf("expected third label 3, got %q", got)
	}
}

func TestSession_NavigationBounds(t *testing.T) {
	s, loader, _ := newTestSession(t, 3)
	ctx := context.Background()
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	gen := s.Snapshot().Generation
	if err := s.Previous(ctx); err != nil {
		t.Fatalf("Previous() error = %v", err)
	}
	if s.Snapshot().Generation != gen {
		t.Error("Previous() on the first page should not issue a request")
	}

	for i := 0; i < 2; i++ {
		if err := s.Next(ctx); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}
	snap := s.Snapshot()
	if snap.RenderedPage != 3 || snap.PageIndex != 2 {
		t.Errorf("expected last page, got rendered %d index %d", snap.RenderedPage, snap.PageIndex)
	}
	if snap.HasNext || !snap.HasPrevious {
		t.Errorf("expected previous only, got next=%v previous=%v", snap.HasNext, snap.HasPrevious)
	}

	gen = snap.Generation
	if err := s.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if s.Snapshot().Generation != gen {
		t.Error("Next() on the last page should not issue a request")
	}

	if got := loader.loads.Load(); got != 1 {
		t.Errorf("navigation must not reload the document, got %d loads", got)
	}
}

func TestSession_GoTo(t *testing.T) {
	s, _, _ := newTestSession(t, 3)
	ctx := context.Background()

	if err := s.GoTo(ctx, 1); !apperr.IsInput(err) {
		t.Errorf("expected input error before the first preview, got %v", err)
	}
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	if err := s.GoTo(ctx, 2); err != nil {
		t.Fatalf("GoTo() error = %v", err)
	}
	if got := s.Snapshot().RenderedPage; got != 3 {
		t.Errorf("expected page 3 rendered, got %d", got)
	}

	for _, idx := range []int{-1, 3} {
		err := s.GoTo(ctx, idx)
		if !apperr.IsInput(err) || !errors.Is(err, render.ErrPageOutOfRange) {
			t.Errorf("GoTo(%d): expected out of range input error, got %v", idx, err)
		}
	}
	if got := s.Snapshot().PageIndex; got != 2 {
		t.Errorf("failed GoTo must not move the page, got index %d", got)
	}
}

func TestSession_LastRequestWins(t *testing.T) {
	s, _, rast := newTestSession(t, 3)
	ctx := context.Background()
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	drain(rast)

	gate := rast.gate(2)
	done := make(chan error, 1)
	go func() { done <- s.Next(ctx) }()
	if page := <-rast.started; page != 2 {
		t.Fatalf("expected page 2 render to start, got %d", page)
	}

	// second request completes first
	if err := s.Previous(ctx); err != nil {
		t.Fatalf("Previous() error = %v", err)
	}
	if got := s.Frame().PageNum; got != 1 {
		t.Fatalf("expected page 1 frame, got %d", got)
	}

	// the superseded render finishes late and must be ignored
	close(gate)
	if err := <-done; err != nil {
		t.Errorf("superseded request should not report an error, got %v", err)
	}

	snap := s.Snapshot()
	if snap.RenderedPage != 1 || snap.PageIndex != 0 {
		t.Errorf("expected page 1 to stay, got rendered %d index %d", snap.RenderedPage, snap.PageIndex)
	}
	if snap.State != StateReady {
		t.Errorf("expected ready, got %s", snap.State)
	}
}

func TestSession_RebuildSupersededByRebuild(t *testing.T) {
	s, _, rast := newTestSession(t, 3)
	ctx := context.Background()

	gate := rast.gate(1)
	done := make(chan error, 1)
	go func() { done <- s.Rebuild(ctx, testOptions()) }()
	<-rast.started

	// release the gate before the second rebuild renders the same page
	rast.mu.Lock()
	delete(rast.gates, 1)
	rast.mu.Unlock()

	opts := testOptions()
	opts.StartValue = 10
	if err := s.Rebuild(ctx, opts); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	close(gate)
	if err := <-done; err != nil {
		t.Errorf("superseded rebuild should not report an error, got %v", err)
	}

	if got := s.Plan().Instructions[0].Text; got != "10" {
		t.Errorf("expected newest plan, got first label %q", got)
	}
	// the late copy is released, the current one is kept
	waitFor(t, func() bool { return rast.closed.Load() == 1 })
}

func TestSession_NavigationDuringRebuildKeepsOptions(t *testing.T) {
	s, _, rast := newTestSession(t, 3)
	ctx := context.Background()
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	drain(rast)

	gate := rast.gate(1)
	opts := testOptions()
	opts.StartValue = 100
	done := make(chan error, 1)
	go func() { done <- s.Rebuild(ctx, opts) }()
	if page := <-rast.started; page != 1 {
		t.Fatalf("expected page 1 render to start, got %d", page)
	}

	if err := s.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got := s.Snapshot().State; got != StateRendering {
		t.Errorf("expected rendering while the rebuild is in flight, got %s", got)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	if got := s.Plan().Instructions[0].Text; got != "100" {
		t.Errorf("expected the rebuilt plan, got first label %q", got)
	}
	snap := s.Snapshot()
	if snap.State != StateReady || snap.RenderedPage != 2 || snap.PageIndex != 1 {
		t.Errorf("expected page 2 of the new copy, got %+v", snap)
	}
	// the copy shown before the rebuild is released
	waitFor(t, func() bool { return rast.closed.Load() == 1 })
}

func TestSession_FailedRebuildKeepsPreview(t *testing.T) {
	s, loader, _ := newTestSession(t, 3)
	ctx := context.Background()
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if err := s.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	loader.fail.Store(true)
	err := s.Rebuild(ctx, testOptions())
	if !apperr.IsProcessing(err) {
		t.Fatalf("expected processing error, got %v", err)
	}
	if document.StageOf(err) != document.StageLoad {
		t.Errorf("expected load stage, got %q", document.StageOf(err))
	}

	snap := s.Snapshot()
	if snap.State != StateReady || snap.RenderedPage != 2 || snap.PlanLength != 3 {
		t.Errorf("previous preview lost: %+v", snap)
	}
}

func TestSession_RebuildClampsPage(t *testing.T) {
	s, loader, rast := newTestSession(t, 3)
	ctx := context.Background()
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	s.Next(ctx)
	s.Next(ctx)

	loader.pages = 2
	rast.setPages(2)
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if got := s.Snapshot().RenderedPage; got != 2 {
		t.Errorf("expected page clamped to 2, got %d", got)
	}
}

func TestSession_CanceledRebuildIsAbsorbed(t *testing.T) {
	s, _, _ := newTestSession(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Errorf("expected cancellation to be absorbed, got %v", err)
	}
	if got := s.Snapshot().State; got != StateEmpty {
		t.Errorf("expected empty, got %s", got)
	}
}

func TestSession_ScheduleCollapsesBursts(t *testing.T) {
	s, loader, _ := newTestSession(t, 3)

	for i := 1; i <= 5; i++ {
		opts := testOptions()
		opts.StartValue = i
		s.Schedule(opts)
	}

	waitFor(t, func() bool { return s.Snapshot().State == StateReady })
	time.Sleep(60 * time.Millisecond)

	if got := loader.loads.Load(); got != 1 {
		t.Errorf("expected one rebuild, got %d", got)
	}
	if got := s.Plan().Instructions[0].Text; got != "5" {
		t.Errorf("expected the last scheduled options, got first label %q", got)
	}
}

func TestSession_Close(t *testing.T) {
	s, _, rast := newTestSession(t, 3)
	ctx := context.Background()
	if err := s.Rebuild(ctx, testOptions()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if rast.closed.Load() != 1 {
		t.Errorf("expected rendered copy released")
	}
	if err := s.Rebuild(ctx, testOptions()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{
		StateEmpty:     "empty",
		StatePlanning:  "planning",
		StateRendering: "rendering",
		StateReady:     "ready",
		State(42):      "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
