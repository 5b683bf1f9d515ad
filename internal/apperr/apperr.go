// Package apperr defines the two error kinds surfaced to users: input errors,
// which the user can fix, and processing errors, which are reported with a
// generic message while the detail goes to the log.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// Input covers wrong file types, invalid options and operations
	// requested before a document is loaded.
	Input Kind = iota + 1
	// Processing covers parse, draw, save and rasterization failures.
	Processing
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Processing:
		return "processing"
	default:
		return "unknown"
	}
}

// ErrNoDocument is returned when an operation needs a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// GenericProcessingMessage is shown to users for every processing error.
const GenericProcessingMessage = "failed to process the document; see the server log for details"

// Error is an operation failure tagged with its kind.
type Error struct {
	Kind Kind
	Op   string // operation name, e.g. "export", "preview"
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InputErr wraps err as an input error.
func InputErr(op string, err error) *Error {
	return &Error{Kind: Input, Op: op, Err: err}
}

// ProcessingErr wraps err as a processing error.
func ProcessingErr(op string, err error) *Error {
	return &Error{Kind: Processing, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsInput reports whether err is an input error.
func IsInput(err error) bool { return KindOf(err) == Input }

// IsProcessing reports whether err is a processing error.
func IsProcessing(err error) bool { return KindOf(err) == Processing }

// IsCanceled reports whether err stems from a canceled or superseded request.
// Cancellation is never reported to users.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// UserMessage returns the text to show for err. Input errors are shown
// verbatim since the user can act on them; everything else is generic.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Kind == Input {
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Error()
	}
	return GenericProcessingMessage
}
