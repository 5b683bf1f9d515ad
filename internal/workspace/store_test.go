package workspace

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/render"
)

type nopRasterizer struct{}

func (nopRasterizer) Open(ctx context.Context, data []byte) (render.Source, error) {
	return nil, errors.New("not used")
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(Config{
		Loader:     document.NewPDFLoader(nil),
		Rasterizer: nopRasterizer{},
		TTL:        time.Minute,
	})
	t.Cleanup(s.Close)
	return s
}

func readSample(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("failed to read sample: %v", err)
	}
	return data
}

func TestStore_CreateGetDelete(t *testing.T) {
	s := newTestStore(t)

	w, err := s.Create(context.Background(), "sample.pdf", readSample(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if w.PageCount != 3 || len(w.Geometries) != 3 {
		t.Errorf("expected 3 pages, got %d (%d geometries)", w.PageCount, len(w.Geometries))
	}
	if w.ID == "" {
		t.Error("expected an id")
	}

	got, err := s.Get(w.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != w {
		t.Error("Get() returned a different workspace")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 workspace, got %d", s.Len())
	}

	if err := s.Delete(w.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_CreateRejects(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(context.Background(), "empty.pdf", nil)
	if !apperr.IsInput(err) {
		t.Errorf("expected input error for empty upload, got %v", err)
	}

	_, err = s.Create(context.Background(), "broken.pdf", []byte("not a pdf"))
	if !apperr.IsProcessing(err) {
		t.Errorf("expected processing error for unparsable upload, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("failed uploads must not be stored, got %d", s.Len())
	}
}

func TestStore_Sweep(t *testing.T) {
	s := newTestStore(t)
	data := readSample(t)

	old, err := s.Create(context.Background(), "old.pdf", data)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	fresh, err := s.Create(context.Background(), "fresh.pdf", data)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	old.mu.Lock()
	old.lastUsed = time.Now().Add(-2 * time.Minute)
	old.mu.Unlock()

	if n := s.Sweep(time.Now()); n != 1 {
		t.Errorf("expected 1 expired workspace, got %d", n)
	}
	if _, err := s.Get(old.ID); !errors.Is(err, ErrNotFound) {
		t.Error("expired workspace still present")
	}
	if _, err := s.Get(fresh.ID); err != nil {
		t.Errorf("fresh workspace removed: %v", err)
	}
}

func TestStore_ListOrdered(t *testing.T) {
	s := newTestStore(t)
	data := readSample(t)

	first, _ := s.Create(context.Background(), "a.pdf", data)
	second, _ := s.Create(context.Background(), "b.pdf", data)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	list := s.List()
	if len(list) != 2 || list[0] != first || list[1] != second {
		t.Errorf("unexpected order")
	}
}

func TestWorkspace_Info(t *testing.T) {
	s := newTestStore(t)
	w, err := s.Create(context.Background(), "sample.pdf", readSample(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	info := w.Info(false)
	if info.FileName != "sample.pdf" || info.PageCount != 3 {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Geometries != nil {
		t.Error("summary info should omit geometry")
	}
	if got := w.Info(true).Geometries; len(got) != 3 {
		t.Errorf("expected 3 geometries, got %d", len(got))
	}
}

func TestFormatSize(t *testing.T) {
	if got := FormatSize(1536); got != "1.5 KB" {
		t.Errorf("expected 1.5 KB, got %q", got)
	}
	if got := FormatSize(0); got != "0.0 KB" {
		t.Errorf("expected 0.0 KB, got %q", got)
	}
}
