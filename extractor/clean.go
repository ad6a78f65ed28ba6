package extractor

import (
	"regexp"
	"strings"
)

// Teletype litters block markup with anchor placeholders, comments and
// data-* attributes that mean nothing outside its own reader.
var (
	anchorRe   = regexp.MustCompile(`<a\s+name="[^"]*"\s*>\s*</a\s*>`)
	commentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	dataAttrRe = regexp.MustCompile(`\s+data-[\w-]+="[^"]*"`)
	spacesRe   = regexp.MustCompile(`\s{2,}`)
)

// CleanFragment normalizes the inner markup of a content block.
func CleanFragment(html string) string {
	html = anchorRe.ReplaceAllString(html, "")
	html = commentRe.ReplaceAllString(html, "")
	html = dataAttrRe.ReplaceAllString(html, "")
	html = spacesRe.ReplaceAllString(html, " ")
	return strings.TrimSpace(html)
}
