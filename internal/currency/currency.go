// Package currency converts between typed amounts like "1.000.000" and integers.
package currency

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// Separator is the thousands separator used for display and accepted on input.
const Separator = "."

// Format renders n with "." between thousands, e.g. 1000000 -> "1.000.000".
func Format(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", Separator)
}

// FormatText formats raw numeric text. Empty or non-numeric text renders as "".
// A fractional part written with a decimal point is truncated. Only plain
// decimal digits are accepted, so exponents, NaN, Inf and values outside the
// int64 range also render as "".
func FormatText(s string) string {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	digits := strings.TrimPrefix(whole, "-")
	if !isDigits(digits) || (frac != "" && !isDigits(frac)) {
		return ""
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return ""
	}
	return Format(n)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Parse reads a typed amount. Separators and whitespace are ignored; empty,
// non-numeric, negative or overflowing input yields 0.
func Parse(s string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0
	}

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Rupiah renders n with the currency prefix, e.g. "Rp 1.500.000".
func Rupiah(n int64) string {
	return "Rp " + Format(n)
}
