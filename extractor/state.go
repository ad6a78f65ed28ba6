package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Kurumilog/teletype-to-epub/model"
)

// The state payload sits between the marker and the next `};` statement
// boundary inside a script tag.
var stateRe = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\});`)

var errNoStatePayload = errors.New("no state payload in response")

// fromStatePayload extracts the chapter from the embedded application state.
// The payload's body markup is a small HTML fragment that uses the
// platform's own <tt-image> element instead of <img>.
func (e *Extractor) fromStatePayload(ctx context.Context, body []byte, includeImages bool) (*model.Chapter, error) {
	m := stateRe.FindSubmatch(body)
	if m == nil {
		return nil, errNoStatePayload
	}

	var state any
	if err := json.Unmarshal(m[1], &state); err != nil {
		return nil, fmt.Errorf("failed to parse state payload: %w", err)
	}

	article, ok := findArticle(state)
	if !ok {
		return nil, errors.New("no article record in state payload")
	}

	title, _ := article["title"].(string)
	text, _ := article["text"].(string)

	chapter := &model.Chapter{Title: strings.TrimSpace(title)}
	if err := e.walkFragment(ctx, chapter, text, includeImages); err != nil {
		return nil, err
	}
	return chapter, nil
}

// findArticle walks the decoded payload depth-first and returns the first
// record carrying both a title and non-empty body markup. Map keys are
// visited in sorted order so the probe is deterministic.
func findArticle(v any) (map[string]any, bool) {
	switch node := v.(type) {
	case map[string]any:
		_, hasTitle := node["title"].(string)
		text, hasText := node["text"].(string)
		if hasTitle && hasText && strings.TrimSpace(text) != "" {
			return node, true
		}
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found, ok := findArticle(node[k]); ok {
				return found, true
			}
		}
	case []any:
		for _, item := range node {
			if found, ok := findArticle(item); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// walkFragment parses the body markup and appends its block elements to the
// chapter in document order.
func (e *Extractor) walkFragment(ctx context.Context, chapter *model.Chapter, fragment string, includeImages bool) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fmt.Errorf("failed to parse body markup: %w", err)
	}

	doc.Find("body").Children().Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)

		if tag == "tt-image" {
			if !includeImages {
				return
			}
			e.appendImage(ctx, chapter, s.AttrOr("data-src", ""))
			return
		}

		if !blockTags[tag] {
			return
		}
		inner, err := s.Html()
		if err != nil {
			return
		}
		inner = CleanFragment(inner)
		if inner == "" {
			return
		}
		style := ""
		if s.AttrOr("align", "") == "center" {
			style = ` style="text-align:center;"`
		}
		chapter.Blocks = append(chapter.Blocks, fmt.Sprintf("<%s%s>%s</%s>", tag, style, inner, tag))
	})

	return nil
}
