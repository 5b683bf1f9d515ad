package export

import "testing"

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report_with_pagenums.pdf"},
		{"Report.PDF", "Report_with_pagenums.pdf"},
		{"archive.tar.pdf", "archive.tar_with_pagenums.pdf"},
		{"notes", "notes_with_pagenums.pdf"},
		{".pdf", "_with_pagenums.pdf"},
		{"", "document_with_pagenums.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FileName(tt.in); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
