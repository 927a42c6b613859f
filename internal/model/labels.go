package model

import (
	"regexp"
	"strings"
	"unicode"
)

var nameSeparators = regexp.MustCompile(`[_\-.\s]+`)

// LabelFromName derives a display label from a submission key. It is used
// when a field file omits the label: "first_name" and "firstName" both become
// "First name".
func LabelFromName(name string) string {
	var words []string
	for _, part := range nameSeparators.Split(strings.TrimSpace(name), -1) {
		words = append(words, splitCamel(part)...)
	}
	if len(words) == 0 {
		return ""
	}
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}

func splitCamel(word string) []string {
	if word == "" {
		return nil
	}
	var (
		out   []string
		start int
		runes = []rune(word)
	)
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}
