package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	base := errors.New("boom")

	in := InputErr("upload", base)
	if !IsInput(in) || IsProcessing(in) {
		t.Errorf("expected input error, got kind %s", KindOf(in))
	}

	wrapped := fmt.Errorf("outer: %w", ProcessingErr("export", base))
	if !IsProcessing(wrapped) {
		t.Errorf("expected wrapped processing error, got kind %s", KindOf(wrapped))
	}
	if !errors.Is(wrapped, base) {
		t.Error("expected errors.Is to reach the base error")
	}

	if KindOf(base) != 0 {
		t.Errorf("expected no kind for plain error, got %s", KindOf(base))
	}
}

func TestUserMessage(t *testing.T) {
	t.Run("input errors are verbatim", func(t *testing.T) {
		msg := UserMessage(InputErr("upload", errors.New("file is not a PDF")))
		if msg != "file is not a PDF" {
			t.Errorf("expected verbatim message, got %q", msg)
		}
	})

	t.Run("processing errors are generic", func(t *testing.T) {
		msg := UserMessage(ProcessingErr("export", errors.New("xref table broken")))
		if msg != GenericProcessingMessage {
			t.Errorf("expected generic message, got %q", msg)
		}
	})

	t.Run("untyped errors are generic", func(t *testing.T) {
		if msg := UserMessage(errors.New("x")); msg != GenericProcessingMessage {
			t.Errorf("expected generic message, got %q", msg)
		}
	})

	t.Run("nil", func(t *testing.T) {
		if msg := UserMessage(nil); msg != "" {
			t.Errorf("expected empty message, got %q", msg)
		}
	})
}

func TestIsCanceled(t *testing.T) {
	err := fmt.Errorf("render page 3: %w", context.Canceled)
	if !IsCanceled(err) {
		t.Error("expected wrapped context.Canceled to count as canceled")
	}
	if IsCanceled(context.DeadlineExceeded) {
		t.Error("deadline exceeded is not a cancellation")
	}
}
