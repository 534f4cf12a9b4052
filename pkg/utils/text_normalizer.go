package utils

import (
	"strings"
)

// diacriticFold maps the accented characters that appear in the catalog's
// Spanish product names to their ASCII base forms. Applied after lowercasing,
// so only lowercase entries are needed.
var diacriticFold = map[rune]rune{
	'á': 'a', 'à': 'a',
	'é': 'e', 'è': 'e',
	'í': 'i', 'ì': 'i',
	'ó': 'o', 'ò': 'o',
	'ú': 'u', 'ù': 'u',
	'ü': 'u',
	'ñ': 'n',
}

// Normalize lowercases the input, folds accented characters to their ASCII
// base, replaces anything that is not a letter, digit or whitespace with a
// space, and collapses whitespace runs. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))

	for _, ch := range lowered {
		if folded, ok := diacriticFold[ch]; ok {
			ch = folded
		}
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == ' ', ch == '\t', ch == '\n', ch == '\r':
			b.WriteByte(' ')
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// TokenizeQuery normalizes a query and splits it into tokens.
func TokenizeQuery(query string) []string {
	normalized := Normalize(query)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
