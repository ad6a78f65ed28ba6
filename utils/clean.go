package utils

import (
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanFileName makes a book title safe to use as a file name. The result is
// never empty: a title with nothing usable in it falls back to "book", so
// callers can join it onto a directory without the path collapsing onto the
// directory itself.
func CleanFileName(input string) string {
	cleaned := unsafeFileChars.ReplaceAllString(input, "_")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	if cleaned == "" {
		return "book"
	}
	return cleaned
}
