// Package cache persists extracted chapters on disk, one JSON record per
// chapter number. A record is written wholesale on every put and never
// expires; delete the file to force a re-fetch.
package cache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Kurumilog/teletype-to-epub/model"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// record is the on-disk projection of a chapter. Image bytes are base64 so
// the file stays a plain JSON object.
type record struct {
	Number    int           `json:"chapter_num"`
	Title     string        `json:"title"`
	HTML      string        `json:"html"`
	Images    []recordImage `json:"images"`
	HasImages bool          `json:"has_images"`
}

type recordImage struct {
	Filename string `json:"filename"`
	Data     string `json:"data_b64"`
}

func (s *Store) path(number int) string {
	return filepath.Join(s.dir, fmt.Sprintf("chapter_%d.json", number))
}

// Get returns the cached chapter, or (nil, nil) when there is no usable
// record. A corrupt record counts as absent rather than an error.
func (s *Store) Get(number int) (*model.Chapter, error) {
	data, err := os.ReadFile(s.path(number))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache record: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}

	chapter := &model.Chapter{
		Number: rec.Number,
		Title:  rec.Title,
	}
	// The record stores the joined block markup; keeping it as a single
	// block preserves the bytes exactly through HTML().
	if rec.HTML != "" {
		chapter.Blocks = []string{rec.HTML}
	}
	for _, img := range rec.Images {
		raw, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return nil, nil
		}
		chapter.Images = append(chapter.Images, model.Image{
			Filename: img.Filename,
			Data:     raw,
		})
	}

	return chapter, nil
}

// Put overwrites the record for the chapter's number.
func (s *Store) Put(chapter *model.Chapter) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	rec := record{
		Number:    chapter.Number,
		Title:     chapter.Title,
		HTML:      chapter.HTML(),
		Images:    make([]recordImage, 0, len(chapter.Images)),
		HasImages: len(chapter.Images) > 0,
	}
	for _, img := range chapter.Images {
		rec.Images = append(rec.Images, recordImage{
			Filename: img.Filename,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		})
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal cache record: %w", err)
	}
	if err := os.WriteFile(s.path(chapter.Number), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache record: %w", err)
	}
	return nil
}
