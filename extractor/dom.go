package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Kurumilog/teletype-to-epub/model"
)

// fromDOM extracts the chapter from the server-rendered page. Used when the
// state payload is absent, truncated, or fails to parse.
func (e *Extractor) fromDOM(ctx context.Context, body []byte, includeImages bool) (*model.Chapter, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	content := doc.Find("article.article__content").First()
	if content.Length() == 0 {
		return nil, errors.New("missing article content container")
	}

	chapter := &model.Chapter{
		Title: strings.TrimSpace(doc.Find("h1.article__header_title").First().Text()),
	}

	content.Children().Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)

		if tag == "figure" {
			if !includeImages {
				return
			}
			e.appendImage(ctx, chapter, figureImageURL(s))
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
		if s.AttrOr("data-align", "") == "center" {
			style = ` style="text-align:center;"`
		}
		chapter.Blocks = append(chapter.Blocks, fmt.Sprintf("<%s%s>%s</%s>", tag, style, inner, tag))
	})

	return chapter, nil
}

// figureImageURL resolves the image source of a figure element: a plain img,
// a lazy-loaded img carrying data-src, or the noscript variant whose markup
// the parser keeps as text.
func figureImageURL(fig *goquery.Selection) string {
	img := fig.Find("img").First()
	if src := img.AttrOr("src", ""); src != "" {
		return src
	}
	if src := img.AttrOr("data-src", ""); src != "" {
		return src
	}

	ns := fig.Find("noscript").First()
	if ns.Length() == 0 {
		return ""
	}
	inner, err := goquery.NewDocumentFromReader(strings.NewReader(ns.Text()))
	if err != nil {
		return ""
	}
	return inner.Find("img").First().AttrOr("src", "")
}
