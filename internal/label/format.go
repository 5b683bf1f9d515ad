// Package label computes page-number labels: the text drawn on each page and
// where it goes. Everything here is pure; nothing touches a document.
package label

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Format selects how a page number is rendered.
type Format string

const (
	FormatArabic     Format = "1,2,3"
	FormatRomanLower Format = "i,ii,iii"
	FormatRomanUpper Format = "I,II,III"
	FormatAlphaLower Format = "a,b,c"
	FormatAlphaUpper Format = "A,B,C"
	FormatDashed     Format = "-1-"
	FormatOfTotal    Format = "1/100"
	FormatPagePrefix Format = "Page 1"
)

// Formats lists every recognized format token.
var Formats = []Format{
	FormatArabic,
	FormatRomanLower,
	FormatRomanUpper,
	FormatAlphaLower,
	FormatAlphaUpper,
	FormatDashed,
	FormatOfTotal,
	FormatPagePrefix,
}

// Known reports whether f is one of the recognized tokens.
func (f Format) Known() bool {
	for _, k := range Formats {
		if f == k {
			return true
		}
	}
	return false
}

// FormatNumber renders page number n according to f. total is the document's
// page count and is only used by FormatOfTotal. Unknown formats render as
// plain Arabic numerals.
func FormatNumber(n int, f Format, total int) string {
	switch f {
	case FormatRomanLower:
		return toLowerASCII(ToRoman(n))
	case FormatRomanUpper:
		return ToRoman(n)
	case FormatAlphaLower:
		return string(rune('a' + letterOffset(n)))
	case FormatAlphaUpper:
		return string(rune('A' + letterOffset(n)))
	case FormatDashed:
		return "-" + strconv.Itoa(n) + "-"
	case FormatOfTotal:
		return strconv.Itoa(n) + "/" + strconv.Itoa(total)
	case FormatPagePrefix:
		return "Page " + strconv.Itoa(n)
	default:
		return strconv.Itoa(n)
	}
}

// FormatValue is the lenient form of FormatNumber for values that did not
// come from the plan builder. Integers and finite floats (truncated toward
// zero) are formatted, as are strings starting with an integer ("12abc" is
// 12); anything else is returned in its string form.
func FormatValue(v any, f Format, total int) string {
	switch n := v.(type) {
	case int:
		return FormatNumber(n, f, total)
	case int64:
		return FormatNumber(int(n), f, total)
	case int32:
		return FormatNumber(int(n), f, total)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Sprint(v)
		}
		return FormatNumber(int(n), f, total)
	case float32:
		return FormatValue(float64(n), f, total)
	case string:
		i, ok := leadingInt(n)
		if !ok {
			return n
		}
		return FormatNumber(i, f, total)
	default:
		return fmt.Sprint(v)
	}
}

// leadingInt parses the integer prefix of s after leading white space.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// letterOffset maps n onto 0..25, wrapping every 26 pages.
func letterOffset(n int) int {
	off := (n - 1) % 26
	if off < 0 {
		off += 26
	}
	return off
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
