package export

import "strings"

// Suffix is appended to the base name of exported files.
const Suffix = "_with_pagenums.pdf"

// FileName derives the download name from the uploaded file name: the last
// extension is stripped and Suffix appended. Names without a dot keep their
// full text.
func FileName(original string) string {
	if original == "" {
		original = "document"
	}
	if i := strings.LastIndex(original, "."); i >= 0 {
		original = original[:i]
	}
	return original + Suffix
}
