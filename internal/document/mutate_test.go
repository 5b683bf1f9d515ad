package document

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jackzampolin/pagenum/internal/label"
)

func TestApply_ProgressCountsPages(t *testing.T) {
	doc := newFakeDocument(5)
	opts := label.Options{StartValue: 1, FontSize: 10, Opacity: 0.9}
	plan := label.Build(mustGeoms(t, doc), opts)

	var progress [][2]int
	err := Apply(context.Background(), doc, plan, StyleFrom(opts), func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(doc.draws) != 4 {
		t.Errorf("expected 4 draws, got %d", len(doc.draws))
	}
	want := [][2]int{{1, 5}, {2, 5}, {3, 5}, {4, 5}, {5, 5}}
	if diff := cmp.Diff(want, progress); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_DrawsInPlanOrderWithStyle(t *testing.T) {
	doc := newFakeDocument(3)
	opts := label.Options{StartValue: 1, IncludeFirstPage: true, FontSize: 14, Color: label.RGB{R: 1}, Opacity: 0.5}
	plan := label.Build(mustGeoms(t, doc), opts)

	if err := Apply(context.Background(), doc, plan, StyleFrom(opts), nil); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	want := []drawCall{
		{page: 0, text: "1", x: 540, y: 40, style: Style{FontSize: 14, Color: label.RGB{R: 1}, Opacity: 0.5}},
		{page: 1, text: "2", x: 540, y: 40, style: Style{FontSize: 14, Color: label.RGB{R: 1}, Opacity: 0.5}},
		{page: 2, text: "3", x: 540, y: 40, style: Style{FontSize: 14, Color: label.RGB{R: 1}, Opacity: 0.5}},
	}
	if diff := cmp.Diff(want, doc.draws, cmp.AllowUnexported(drawCall{})); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_DrawFailureIsTagged(t *testing.T) {
	doc := newFakeDocument(3)
	doc.failPage = 1
	plan := label.Build(mustGeoms(t, doc), label.Options{IncludeFirstPage: true, FontSize: 10})

	err := Apply(context.Background(), doc, plan, Style{FontSize: 10}, nil)
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Stage != StageDraw || se.Page != 1 {
		t.Errorf("expected draw failure on page index 1, got %s on %d", se.Stage, se.Page)
	}
}

func TestApply_InstructionBeyondDocument(t *testing.T) {
	doc := newFakeDocument(2)
	plan := label.Plan{PageCount: 3, Instructions: []label.Instruction{{PageIndex: 2, Text: "3"}}}

	err := Apply(context.Background(), doc, plan, Style{FontSize: 10}, nil)
	if StageOf(err) != StageDraw || !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("expected out-of-range draw failure, got %v", err)
	}
}

func TestApply_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := newFakeDocument(2)
	err := Apply(ctx, doc, label.Plan{}, Style{FontSize: 10}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStamp_StageErrors(t *testing.T) {
	opts := label.Options{IncludeFirstPage: true, FontSize: 10}

	t.Run("load", func(t *testing.T) {
		_, _, err := Stamp(context.Background(), &fakeLoader{err: errors.New("not a pdf")}, []byte("x"), opts, nil)
		if StageOf(err) != StageLoad {
			t.Errorf("expected load stage, got %v", err)
		}
	})

	t.Run("empty source", func(t *testing.T) {
		_, _, err := Stamp(context.Background(), &fakeLoader{doc: newFakeDocument(1)}, nil, opts, nil)
		if StageOf(err) != StageLoad {
			t.Errorf("expected load stage, got %v", err)
		}
	})

	t.Run("save", func(t *testing.T) {
		doc := newFakeDocument(1)
		doc.saveErr = errors.New("disk full")
		_, _, err := Stamp(context.Background(), &fakeLoader{doc: doc}, []byte("x"), opts, nil)
		if StageOf(err) != StageSave {
			t.Errorf("expected save stage, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		out, plan, err := Stamp(context.Background(), &fakeLoader{doc: newFakeDocument(2)}, []byte("x"), opts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "2 draws" || plan.Len() != 2 {
			t.Errorf("unexpected result %q, plan %d", out, plan.Len())
		}
	})
}

func mustGeoms(t *testing.T, doc Document) []label.PageGeometry {
	t.Helper()
	g, err := Geometries(doc)
	if err != nil {
		t.Fatalf("Geometries() error = %v", err)
	}
	return g
}
