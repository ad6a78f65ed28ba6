package model

import (
	"fmt"
	"strings"
)

// Image is a downloaded chapter illustration. Filename is derived from the
// source URL, so the same URL always maps to the same name.
type Image struct {
	Filename string
	Data     []byte
}

// Chapter is one extracted chapter: an ordered list of block-level HTML
// fragments plus the images referenced by them.
type Chapter struct {
	Number int
	Title  string
	Blocks []string
	Images []Image
}

// DisplayTitle returns the chapter title, or a synthesized label when the
// page carried none.
func (c *Chapter) DisplayTitle() string {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Sprintf("Глава %d", c.Number)
	}
	return c.Title
}

// HTML joins the content blocks into the chapter body markup.
func (c *Chapter) HTML() string {
	return strings.Join(c.Blocks, "\n")
}

// Book holds the book-level metadata handed to the EPUB assembler.
type Book struct {
	Title    string
	Author   string
	Language string
	Cover    []byte
	CoverExt string
}
