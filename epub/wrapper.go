// Package epub assembles the ordered chapter list into a packaged EPUB file.
package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/Kurumilog/teletype-to-epub/model"
	"github.com/Kurumilog/teletype-to-epub/template"
	"github.com/Kurumilog/teletype-to-epub/utils"
)

// BuildBook writes the staging tree for the book under outputPath, packs it
// into <title>.epub next to it and returns the epub path. Chapters are
// expected in final reading order.
func BuildBook(book *model.Book, chapters []*model.Chapter, outputPath string) (string, error) {
	workDir := filepath.Join(outputPath, utils.CleanFileName(book.Title))
	if err := os.RemoveAll(workDir); err != nil {
		return "", fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	// Images are deduplicated across the whole book by filename; the name is
	// a hash of the source URL, so one URL lands on disk exactly once.
	written := make(map[string]bool)
	for _, chapter := range chapters {
		for _, img := range chapter.Images {
			if written[img.Filename] {
				continue
			}
			written[img.Filename] = true
			imgPath := filepath.Join(workDir, "OEBPS/Images", img.Filename)
			if err := os.MkdirAll(filepath.Dir(imgPath), 0755); err != nil {
				return "", fmt.Errorf("failed to create image directory: %w", err)
			}
			if err := os.WriteFile(imgPath, img.Data, 0644); err != nil {
				return "", fmt.Errorf("failed to write image: %w", err)
			}
		}
	}

	for _, chapter := range chapters {
		if err := writeChapterXHTML(workDir, chapter); err != nil {
			return "", err
		}
	}

	if book.Cover != nil {
		if err := writeCover(workDir, book); err != nil {
			return "", err
		}
	}

	if err := writeContents(workDir, chapters); err != nil {
		return "", err
	}

	containerPath := filepath.Join(workDir, "META-INF/container.xml")
	if err := os.MkdirAll(filepath.Dir(containerPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create container directory: %w", err)
	}
	if err := renderToFile(containerPath, template.ContainerXML()); err != nil {
		return "", fmt.Errorf("failed to render container: %w", err)
	}

	if err := os.WriteFile(filepath.Join(workDir, "style.css"), []byte(template.StyleCSS), 0644); err != nil {
		return "", fmt.Errorf("failed to write css: %w", err)
	}

	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	if err := createContentOPF(workDir, u.String(), book, chapters); err != nil {
		return "", err
	}
	if err := createTocNCX(workDir, u.String(), book, chapters); err != nil {
		return "", err
	}

	epubPath := workDir + ".epub"
	if err := packEpub(workDir, epubPath); err != nil {
		return "", fmt.Errorf("failed to pack epub: %w", err)
	}
	return epubPath, nil
}

func chapterFileName(number int) string {
	return fmt.Sprintf("chapter-%03d.xhtml", number)
}

func writeChapterXHTML(workDir string, chapter *model.Chapter) error {
	title := chapter.DisplayTitle()
	body := fmt.Sprintf("<h1>%s</h1>\n%s", html.EscapeString(title), chapter.HTML())
	// Blocks reference images as images/<name>; inside OEBPS/Text the
	// actual location is ../Images/<name>.
	body = strings.ReplaceAll(body, `src="images/`, `src="../Images/`)

	path := filepath.Join(workDir, "OEBPS/Text", chapterFileName(chapter.Number))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create text directory: %w", err)
	}
	if err := renderToFile(path, template.ContentXHTML(title, body)); err != nil {
		return fmt.Errorf("failed to render chapter %v: %w", chapter.Number, err)
	}
	return nil
}

func writeCover(workDir string, book *model.Book) error {
	ext := book.CoverExt
	if ext == "" {
		ext = ".jpg"
	}
	if err := os.WriteFile(filepath.Join(workDir, "cover"+ext), book.Cover, 0644); err != nil {
		return fmt.Errorf("failed to write cover: %w", err)
	}

	coverXHTMLPath := filepath.Join(workDir, "OEBPS/Text/cover.xhtml")
	if err := os.MkdirAll(filepath.Dir(coverXHTMLPath), 0755); err != nil {
		return fmt.Errorf("failed to create text directory: %w", err)
	}
	if err := renderToFile(coverXHTMLPath, template.CoverXHTML("../../cover"+ext)); err != nil {
		return fmt.Errorf("failed to render cover: %w", err)
	}
	return nil
}

func writeContents(workDir string, chapters []*model.Chapter) error {
	contents := strings.Builder{}
	contents.WriteString(`<nav epub:type="toc" id="toc">`)
	contents.WriteString(`<ol>`)
	for _, chapter := range chapters {
		contents.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`, chapterFileName(chapter.Number), html.EscapeString(chapter.DisplayTitle())))
	}
	contents.WriteString(`</ol>`)
	contents.WriteString(`</nav>`)

	path := filepath.Join(workDir, "OEBPS/Text/contents.xhtml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create text directory: %w", err)
	}
	if err := renderToFile(path, template.ContentXHTML("Оглавление", contents.String())); err != nil {
		return fmt.Errorf("failed to render contents: %w", err)
	}
	return nil
}

func imageMediaType(filename string) string {
	if strings.HasSuffix(filename, ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

func createContentOPF(workDir string, bookUUID string, book *model.Book, chapters []*model.Chapter) error {
	dc := &model.DublinCoreMetadata{
		Titles:      []model.DCTitle{{Value: book.Title}},
		Identifiers: []model.DCIdentifier{{Value: fmt.Sprintf("urn:uuid:%s", bookUUID), ID: "book-id"}},
		Languages:   []model.DCLanguage{{Value: book.Language}},
		Creators:    []model.DCCreator{{Value: book.Author}},
		Metas: []model.DublinCoreMeta{
			{Property: "dcterms:modified", Value: time.Now().UTC().Format("2006-01-02T15:04:05Z")},
		},
	}

	manifest := &model.Manifest{Items: make([]model.ManifestItem, 0)}
	manifest.Items = append(manifest.Items, model.ManifestItem{
		ID:    "ncx",
		Link:  "toc.ncx",
		Media: "application/x-dtbncx+xml",
	})
	if book.Cover != nil {
		ext := book.CoverExt
		if ext == "" {
			ext = ".jpg"
		}
		dc.Metas = append(dc.Metas, model.DublinCoreMeta{Name: "cover", Content: "cover-img"})
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:         "cover-img",
			Link:       "cover" + ext,
			Media:      imageMediaType("cover" + ext),
			Properties: "cover-image",
		})
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    "cover.xhtml",
			Link:  "OEBPS/Text/cover.xhtml",
			Media: "application/xhtml+xml",
		})
	}
	manifest.Items = append(manifest.Items, model.ManifestItem{
		ID:         "contents.xhtml",
		Link:       "OEBPS/Text/contents.xhtml",
		Media:      "application/xhtml+xml",
		Properties: "nav",
	})

	seen := make(map[string]bool)
	for _, chapter := range chapters {
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    chapterFileName(chapter.Number),
			Link:  "OEBPS/Text/" + chapterFileName(chapter.Number),
			Media: "application/xhtml+xml",
		})
		for _, img := range chapter.Images {
			if seen[img.Filename] {
				continue
			}
			seen[img.Filename] = true
			manifest.Items = append(manifest.Items, model.ManifestItem{
				ID:    img.Filename,
				Link:  "OEBPS/Images/" + img.Filename,
				Media: imageMediaType(img.Filename),
			})
		}
	}
	manifest.Items = append(manifest.Items, model.ManifestItem{
		ID:    "style",
		Link:  "style.css",
		Media: "text/css",
	})

	spine := &model.Spine{Toc: "ncx", Items: make([]model.SpineItem, 0)}
	for _, item := range manifest.Items {
		if filepath.Ext(item.Link) == ".xhtml" {
			spine.Items = append(spine.Items, model.SpineItem{IDref: item.ID})
		}
	}

	if err := renderToFile(filepath.Join(workDir, "content.opf"), template.ContentOPF("book-id", dc, manifest, spine)); err != nil {
		return fmt.Errorf("failed to render content opf: %w", err)
	}
	return nil
}

func createTocNCX(workDir string, bookUUID string, book *model.Book, chapters []*model.Chapter) error {
	navMap := &model.NavMap{Points: make([]*model.NavPoint, 0)}
	navMap.Points = append(navMap.Points, &model.NavPoint{
		Id:        "contents",
		PlayOrder: 1,
		Label:     "Оглавление",
		Content:   model.NavPointContent{Src: "OEBPS/Text/contents.xhtml"},
	})
	for _, chapter := range chapters {
		navMap.Points = append(navMap.Points, &model.NavPoint{
			Id:        fmt.Sprintf("chapter-%03d", chapter.Number),
			PlayOrder: len(navMap.Points) + 1,
			Label:     chapter.DisplayTitle(),
			Content:   model.NavPointContent{Src: "OEBPS/Text/" + chapterFileName(chapter.Number)},
		})
	}

	head := &model.TocNCXHead{
		Meta: []model.TocNCXHeadMeta{
			{Name: "dtb:uid", Content: fmt.Sprintf("urn:uuid:%s", bookUUID)},
		},
	}

	if err := renderToFile(filepath.Join(workDir, "toc.ncx"), template.TocNCX(book.Title, head, navMap)); err != nil {
		return fmt.Errorf("failed to render toc ncx: %w", err)
	}
	return nil
}

func renderToFile(path string, component templ.Component) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return component.Render(context.Background(), file)
}

func packEpub(dirPath, savePath string) error {
	zipFile, err := os.Create(savePath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	// The mimetype entry must come first and stay uncompressed.
	if err := addStringToZip(zipWriter, "mimetype", "application/epub+zip", zip.Store); err != nil {
		return err
	}

	return addDirContentToZip(zipWriter, dirPath, zip.Deflate)
}

func addStringToZip(zipWriter *zip.Writer, relPath, content string, method uint16) error {
	header := &zip.FileHeader{
		Name:   relPath,
		Method: method,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = writer.Write([]byte(content))
	return err
}

func addDirContentToZip(zipWriter *zip.Writer, dirPath string, method uint16) error {
	return filepath.Walk(dirPath, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dirPath, filePath)
		if err != nil {
			return err
		}

		file, err := os.Open(filePath)
		if err != nil {
			return err
		}
		defer file.Close()

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)
		header.Method = method

		writer, err := zipWriter.CreateHeader(header)
		if err != nil {
			return err
		}

		_, err = io.Copy(writer, file)
		return err
	})
}
