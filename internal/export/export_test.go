package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/label"
)

func readSample(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("failed to read sample: %v", err)
	}
	return data
}

func defaultOptions(t *testing.T) label.Options {
	t.Helper()
	opts, err := label.DefaultRawOptions().Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return opts
}

func TestRun(t *testing.T) {
	source := readSample(t)
	original := bytes.Clone(source)
	e := New(document.NewPDFLoader(nil), nil)

	opts := defaultOptions(t)
	opts.IncludeFirstPage = false

	var calls [][2]int
	res, err := e.Run(context.Background(), "sample.pdf", source, opts, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.FileName != "sample_with_pagenums.pdf" {
		t.Errorf("unexpected file name %q", res.FileName)
	}
	if res.PageCount != 3 || res.Plan.Len() != 2 {
		t.Errorf("expected 3 pages and 2 labels, got %d and %d", res.PageCount, res.Plan.Len())
	}
	if !strings.Contains(res.Message, "3 pages") {
		t.Errorf("message should mention the page count: %q", res.Message)
	}
	// progress counts pages, including the unlabeled first page
	if len(calls) != 3 || calls[2] != [2]int{3, 3} {
		t.Errorf("unexpected progress calls %v", calls)
	}
	if !bytes.HasPrefix(res.Data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
	if !bytes.Equal(source, original) {
		t.Error("source bytes were modified")
	}

	doc, err := document.NewPDFLoader(nil).Load(context.Background(), res.Data)
	if err != nil {
		t.Fatalf("exported document does not load: %v", err)
	}
	if doc.PageCount() != 3 {
		t.Errorf("expected 3 pages after export, got %d", doc.PageCount())
	}
}

func TestRun_NoDocument(t *testing.T) {
	e := New(document.NewPDFLoader(nil), nil)
	_, err := e.Run(context.Background(), "x.pdf", nil, defaultOptions(t), nil)
	if !apperr.IsInput(err) || !errors.Is(err, apperr.ErrNoDocument) {
		t.Errorf("expected input error for missing document, got %v", err)
	}
}

func TestRun_CorruptDocument(t *testing.T) {
	e := New(document.NewPDFLoader(nil), nil)
	_, err := e.Run(context.Background(), "x.pdf", []byte("%PDF-1.4 garbage"), defaultOptions(t), nil)
	if !apperr.IsProcessing(err) {
		t.Fatalf("expected processing error, got %v", err)
	}
	if document.StageOf(err) != document.StageLoad {
		t.Errorf("expected load stage, got %q", document.StageOf(err))
	}
	if apperr.UserMessage(err) != apperr.GenericProcessingMessage {
		t.Errorf("processing errors should show the generic message")
	}
}

func TestRun_Canceled(t *testing.T) {
	e := New(document.NewPDFLoader(nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, "sample.pdf", readSample(t), defaultOptions(t), nil)
	if !apperr.IsCanceled(err) {
		t.Errorf("expected cancellation, got %v", err)
	}
	if apperr.IsProcessing(err) {
		t.Error("cancellation must not be reported as a processing error")
	}
}
