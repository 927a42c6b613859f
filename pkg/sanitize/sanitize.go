// Package sanitize strips markup from user-entered text before it is stored
// in a field list.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Text removes every HTML element from s and returns the remaining text with
// entities decoded, so "a & b" survives unchanged and "<b>x</b>" becomes "x".
func Text(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return html.UnescapeString(policy().Sanitize(s))
}

// Strings applies Text to every element, returning a new slice.
func Strings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Text(v)
	}
	return out
}
