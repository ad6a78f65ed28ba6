package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Kurumilog/teletype-to-epub/config"
	"github.com/Kurumilog/teletype-to-epub/links"
	"github.com/Kurumilog/teletype-to-epub/model"
)

// Files probed for the chapter listing when the user doesn't name one.
var defaultLinksFiles = []string{"example.txt", "links.txt"}

func init() {
	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Build the EPUB through an interactive setup flow",
		RunE:  runInteractive,
	}
	interactiveCmd.Flags().StringVarP(&bArgs.configPath, "config", "c", "", "path to a YAML config file")
	RootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(bArgs.configPath)
	if err != nil {
		return err
	}

	title, err := promptString("Book title", "My Web Novel")
	if err != nil {
		return err
	}
	author, err := promptString("Book author", "Unknown Author")
	if err != nil {
		return err
	}

	linksFile, err := promptLinksFile()
	if err != nil {
		return err
	}
	text, err := os.ReadFile(linksFile)
	if err != nil {
		return fmt.Errorf("failed to read links file: %w", err)
	}
	index, handles, err := links.Parse(string(text))
	if err != nil {
		return err
	}

	min, max := index.Bounds()
	fmt.Printf("Found %v chapters (%v..%v)\n", len(index), min, max)
	for i, h := range handles {
		fmt.Printf("  %v. %v (%v chapters)\n", i+1, h, index.CountFor(h))
	}

	priority, err := promptPriority(handles)
	if err != nil {
		return err
	}
	fmt.Printf("Priority: %v\n", strings.Join(priority, " -> "))

	from, err := promptInt("First chapter", min)
	if err != nil {
		return err
	}
	to, err := promptInt("Last chapter", max)
	if err != nil {
		return err
	}
	if from > to {
		return fmt.Errorf("start chapter %v is after end chapter %v", from, to)
	}

	includeImages, err := promptConfirm("Download images")
	if err != nil {
		return err
	}

	book := &model.Book{Title: title, Author: author, Language: cfg.Language}
	coverPath, err := promptString("Cover image path (empty for none)", "")
	if err != nil {
		return err
	}
	if coverPath = strings.Trim(coverPath, `"'`); coverPath != "" {
		if err := loadCover(book, coverPath); err != nil {
			fmt.Printf("Cover skipped: %v\n", err)
		}
	}

	return executeBuild(cfg, index, priority, from, to, includeImages, book)
}

func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{Label: label, IsConfirm: true, Default: "y"}
	_, err := prompt.Run()
	return confirmChoice(err)
}

// confirmChoice maps an explicit "n" to false; any other prompt error,
// Ctrl-C included, cancels the setup.
func confirmChoice(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	return false, err
}

func promptString(label, def string) (string, error) {
	prompt := promptui.Prompt{Label: label, Default: def}
	return prompt.Run()
}

func promptInt(label string, def int) (int, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: strconv.Itoa(def),
		Validate: func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("enter a number")
			}
			return nil
		},
	}
	res, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(res))
}

func promptLinksFile() (string, error) {
	def := ""
	for _, name := range defaultLinksFiles {
		if _, err := os.Stat(name); err == nil {
			def = name
			break
		}
	}
	prompt := promptui.Prompt{
		Label:   "Links file",
		Default: def,
		Validate: func(s string) error {
			if _, err := os.Stat(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("file not found")
			}
			return nil
		},
	}
	res, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res), nil
}

// promptPriority asks for a comma-separated list of the numbers shown next
// to the handles; the unchosen handles are appended automatically.
func promptPriority(handles []string) ([]string, error) {
	prompt := promptui.Prompt{
		Label: "Source priority (numbers, e.g. 1,2)",
		Validate: func(s string) error {
			for _, part := range strings.Split(s, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				n, err := strconv.Atoi(part)
				if err != nil || n < 1 || n > len(handles) {
					return fmt.Errorf("numbers must be between 1 and %v", len(handles))
				}
			}
			return nil
		},
	}
	res, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	priority := make([]string, 0, len(handles))
	used := make(map[string]bool)
	for _, part := range strings.Split(res, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, _ := strconv.Atoi(part)
		h := handles[n-1]
		if !used[h] {
			used[h] = true
			priority = append(priority, h)
		}
	}
	for _, h := range handles {
		if !used[h] {
			priority = append(priority, h)
		}
	}
	return priority, nil
}
