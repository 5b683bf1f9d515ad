package label

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidRoman is returned by ParseRoman for malformed numerals.
var ErrInvalidRoman = errors.New("invalid roman numeral")

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// ToRoman converts n to an uppercase Roman numeral.
// Values outside [1, 3999] come back as plain decimal.
func ToRoman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

// ParseRoman converts a canonical Roman numeral (either case) back to an
// integer. Non-canonical spellings such as "IIII" or "VX" are rejected.
func ParseRoman(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidRoman
	}
	upper := strings.ToUpper(s)
	rest := upper
	n := 0
	for _, r := range romanTable {
		for strings.HasPrefix(rest, r.symbol) {
			n += r.value
			rest = rest[len(r.symbol):]
		}
	}
	if rest != "" || n > 3999 || ToRoman(n) != upper {
		return 0, ErrInvalidRoman
	}
	return n, nil
}
