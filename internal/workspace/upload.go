package workspace

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"github.com/jackzampolin/pagenum/internal/apperr"
)

// ErrNotPDF is returned for uploads that are neither typed nor named as PDF.
var ErrNotPDF = errors.New("please select a PDF file")

// ValidateUpload accepts files sent as application/pdf or named *.pdf.
func ValidateUpload(filename, contentType string) error {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt == "application/pdf" {
		return nil
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil
	}
	return apperr.InputErr("upload", ErrNotPDF)
}
