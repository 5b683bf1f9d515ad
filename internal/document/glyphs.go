package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// FontSafe returns text unchanged when the standard Helvetica font (WinAnsi
// encoded) can show it. Otherwise "第N页" becomes "Page N" and any other
// text is reduced to its ASCII digits, which may leave it empty.
func FontSafe(text string) string {
	if _, err := charmap.Windows1252.NewEncoder().String(text); err == nil {
		return text
	}
	if strings.HasPrefix(text, "第") && strings.HasSuffix(text, "页") {
		inner := strings.TrimSuffix(strings.TrimPrefix(text, "第"), "页")
		return FontSafe("Page " + inner)
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, text)
}
