package util

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize strips every whitespace character, including non-breaking
// spaces, and lower-cases the rest. It is the single comparison form
// used for column names, product codes and placeholder names alike.
func Normalize(input string) string {
	out := strings.Builder{}
	out.Grow(len(input))
	for _, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		out.WriteRune(unicode.ToLower(r))
	}
	return out.String()
}

// NormalizeAny folds a cell value of any type through its string
// representation before normalizing. Nil becomes the empty string.
func NormalizeAny(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return Normalize(s)
	}
	return Normalize(fmt.Sprint(v))
}
