package plan

import (
	"strings"

	"golang.org/x/text/width"
)

// NormalizePartNumber canonicalizes a raw part identifier: full-width
// characters are narrowed, hyphens and whitespace are stripped, and the
// result is uppercased. Returns "" for inputs with no usable characters.
func NormalizePartNumber(raw string) PartNumber {
	s := width.Narrow.String(raw)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '\t', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	return PartNumber(strings.ToUpper(s))
}

// NormalizeLineID canonicalizes a raw line identifier. Beyond width
// narrowing and trimming, two shop-floor conventions are repaired: a
// leading "M" prefix is dropped, and bare 3-digit codes gain the "4"
// plant prefix.
func NormalizeLineID(raw string) LineID {
	s := width.Narrow.String(raw)
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	if strings.HasPrefix(s, "M") && len(s) > 1 {
		s = s[1:]
	}
	if len(s) == 3 && allDigits(s) {
		s = "4" + s
	}
	return LineID(s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
