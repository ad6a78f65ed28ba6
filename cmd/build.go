package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kurumilog/teletype-to-epub/cache"
	"github.com/Kurumilog/teletype-to-epub/config"
	"github.com/Kurumilog/teletype-to-epub/epub"
	"github.com/Kurumilog/teletype-to-epub/extractor"
	"github.com/Kurumilog/teletype-to-epub/fetch"
	"github.com/Kurumilog/teletype-to-epub/links"
	"github.com/Kurumilog/teletype-to-epub/model"
	"github.com/Kurumilog/teletype-to-epub/utils"
)

type buildArgs struct {
	linksFile  string
	title      string
	author     string
	priority   []string
	from       int
	to         int
	noImages   bool
	coverPath  string
	configPath string
}

var bArgs buildArgs

func init() {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the EPUB non-interactively from flags",
		RunE:  runBuild,
	}

	buildCmd.Flags().StringVarP(&bArgs.linksFile, "links", "l", "", "path to the text file with chapter links")
	buildCmd.Flags().StringVarP(&bArgs.title, "title", "t", "My Web Novel", "book title")
	buildCmd.Flags().StringVarP(&bArgs.author, "author", "a", "Unknown Author", "book author")
	buildCmd.Flags().StringSliceVarP(&bArgs.priority, "priority", "p", nil, "source handles in priority order (e.g. @cult,@grape)")
	buildCmd.Flags().IntVar(&bArgs.from, "from", 0, "first chapter (default: smallest in the listing)")
	buildCmd.Flags().IntVar(&bArgs.to, "to", 0, "last chapter (default: largest in the listing)")
	buildCmd.Flags().BoolVar(&bArgs.noImages, "no-images", false, "skip chapter images")
	buildCmd.Flags().StringVar(&bArgs.coverPath, "cover", "", "path to a cover image")
	buildCmd.Flags().StringVarP(&bArgs.configPath, "config", "c", "", "path to a YAML config file")

	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if bArgs.linksFile == "" {
		return fmt.Errorf("links file is required")
	}

	cfg, err := config.Load(bArgs.configPath)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(bArgs.linksFile)
	if err != nil {
		return fmt.Errorf("failed to read links file: %w", err)
	}
	index, handles, err := links.Parse(string(text))
	if err != nil {
		return err
	}

	priority, err := resolvePriority(bArgs.priority, handles)
	if err != nil {
		return err
	}

	from, to := bArgs.from, bArgs.to
	min, max := index.Bounds()
	if from == 0 {
		from = min
	}
	if to == 0 {
		to = max
	}
	if from > to {
		return fmt.Errorf("start chapter %v is after end chapter %v", from, to)
	}

	book := &model.Book{
		Title:    bArgs.title,
		Author:   bArgs.author,
		Language: cfg.Language,
	}
	if bArgs.coverPath != "" {
		if err := loadCover(book, bArgs.coverPath); err != nil {
			return err
		}
	}

	return executeBuild(cfg, index, priority, from, to, !bArgs.noImages, book)
}

// resolvePriority validates the chosen handles and appends the unchosen ones
// in their sorted order, so every source stays reachable as a fallback.
func resolvePriority(chosen, all []string) ([]string, error) {
	if len(chosen) == 0 {
		return all, nil
	}

	known := make(map[string]bool, len(all))
	for _, h := range all {
		known[h] = true
	}

	priority := make([]string, 0, len(all))
	used := make(map[string]bool)
	for _, h := range chosen {
		h = strings.TrimSpace(h)
		if !strings.HasPrefix(h, "@") {
			h = "@" + h
		}
		if !known[h] {
			return nil, fmt.Errorf("unknown source handle %v", h)
		}
		if used[h] {
			continue
		}
		used[h] = true
		priority = append(priority, h)
	}
	for _, h := range all {
		if !used[h] {
			priority = append(priority, h)
		}
	}
	return priority, nil
}

func loadCover(book *model.Book, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read cover: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpeg":
		ext = ".jpg"
	case ".jpg", ".png":
	default:
		ext = ".jpg"
	}
	book.Cover = data
	book.CoverExt = ext
	return nil
}

// executeBuild runs the shared pipeline: plan, fetch, assemble.
func executeBuild(cfg *config.Config, index links.Index, priority []string, from, to int, includeImages bool, book *model.Book) error {
	plan, err := fetch.BuildPlan(index, priority, from, to)
	if err != nil {
		var missing *fetch.MissingChaptersError
		if errors.As(err, &missing) {
			return fmt.Errorf("no links for chapters %v under the chosen priority; widen the priority list or narrow the range", missing.Chapters)
		}
		return err
	}
	fmt.Printf("Planned %v chapters (%v..%v), priority: %v\n", len(plan), from, to, strings.Join(priority, " -> "))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := utils.NewClient(cfg.Timeout(), cfg.UserAgent)
	orch := fetch.New(extractor.New(client), cache.New(cfg.CacheDir), fetch.Options{
		Retries:   cfg.RetryCount,
		RetryWait: cfg.RetryWait(),
		DelayMin:  cfg.DelayMin(),
		DelayMax:  cfg.DelayMax(),
	})

	chapters, err := orch.Run(ctx, plan, includeImages)
	if err != nil {
		return err
	}

	path, err := epub.BuildBook(book, chapters, cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to build epub: %w", err)
	}
	fmt.Printf("EPUB created: %s\n", path)
	return nil
}
