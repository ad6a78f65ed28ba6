// Package extractor turns a teletype.in chapter page into structured content.
//
// Teletype serves chapter pages in two observably different ways depending on
// its render path: most responses embed a serialized application state
// payload inline, the rest only carry the server-rendered DOM. Extraction
// tries the state payload first and falls back to walking the DOM, so a
// change in the render path degrades gracefully instead of failing the run.
package extractor

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Kurumilog/teletype-to-epub/model"
)

// Block-level tags accepted as chapter content.
var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "blockquote": true, "ol": true, "ul": true,
	"div": true,
}

type Extractor struct {
	client *resty.Client
}

func New(client *resty.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract fetches the chapter page and produces its structured content.
// Any error it returns is retryable: network failure, non-2xx status, or a
// page missing the expected structure on both render paths.
func (e *Extractor) Extract(ctx context.Context, url string, includeImages bool) (*model.Chapter, error) {
	resp, err := e.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter page: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to get chapter page: %v", resp.Status())
	}

	body := resp.Body()

	chapter, err := e.fromStatePayload(ctx, body, includeImages)
	if err == nil {
		return chapter, nil
	}
	log.Printf("State payload unusable for %v (%v), falling back to DOM", url, err)

	return e.fromDOM(ctx, body, includeImages)
}

// Filename derives the deterministic image file name for a source URL: a hash
// of the URL string plus an extension inferred from it. Addressing is
// URL-keyed, not content-keyed.
func Filename(url string) string {
	ext := "png"
	if strings.Contains(url, "jpeg") || strings.Contains(url, "jpg") {
		ext = "jpg"
	}
	return fmt.Sprintf("img_%x.%s", md5.Sum([]byte(url)), ext)
}

// fetchImage downloads image bytes. The caller skips the image on error; a
// broken illustration never fails the chapter.
func (e *Extractor) fetchImage(ctx context.Context, url string) (model.Image, error) {
	resp, err := e.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return model.Image{}, err
	}
	if resp.StatusCode() != http.StatusOK {
		return model.Image{}, fmt.Errorf("unexpected status %v", resp.Status())
	}
	return model.Image{Filename: Filename(url), Data: resp.Body()}, nil
}

// appendImage downloads the image and appends both the image and its centered
// wrapper block to the chapter. Failures are logged and swallowed.
func (e *Extractor) appendImage(ctx context.Context, chapter *model.Chapter, url string) {
	if url == "" {
		return
	}
	img, err := e.fetchImage(ctx, url)
	if err != nil {
		log.Printf("Failed to get image %v: %v", url, err)
		return
	}
	chapter.Images = append(chapter.Images, img)
	chapter.Blocks = append(chapter.Blocks,
		fmt.Sprintf(`<p style="text-align:center;"><img src="images/%s" alt=""/></p>`, img.Filename))
}
