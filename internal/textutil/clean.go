package textutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\w\s.,!?;:\-()\[\]{}]`)
)

// Normalize reduces raw fetched or loaded text to canonical plain text:
// line breaks become spaces, characters outside word characters and basic
// punctuation are dropped, and whitespace runs collapse to a single space.
// Stripping happens before the collapse so the result is idempotent.
// Empty input yields empty output.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = disallowed.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
