package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Kurumilog/teletype-to-epub/model"
)

func TestResolvePriority(t *testing.T) {
	all := []string{"@cult", "@grape", "@zeta"}

	got, err := resolvePriority([]string{"grape", "@cult"}, all)
	if err != nil {
		t.Fatalf("resolvePriority() error: %v", err)
	}
	want := []string{"@grape", "@cult", "@zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("priority = %v, want %v", got, want)
	}
}

func TestResolvePriorityDefaultsToAll(t *testing.T) {
	all := []string{"@a", "@b"}
	got, err := resolvePriority(nil, all)
	if err != nil {
		t.Fatalf("resolvePriority() error: %v", err)
	}
	if !reflect.DeepEqual(got, all) {
		t.Errorf("priority = %v, want %v", got, all)
	}
}

func TestResolvePriorityUnknownHandle(t *testing.T) {
	if _, err := resolvePriority([]string{"@nobody"}, []string{"@a"}); err == nil {
		t.Fatal("resolvePriority() accepted an unknown handle")
	}
}

func TestLoadCover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.JPEG")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8}, 0644); err != nil {
		t.Fatal(err)
	}

	book := &model.Book{}
	if err := loadCover(book, path); err != nil {
		t.Fatalf("loadCover() error: %v", err)
	}
	if book.CoverExt != ".jpg" {
		t.Errorf("CoverExt = %q, want .jpg", book.CoverExt)
	}
	if len(book.Cover) != 2 {
		t.Errorf("Cover = %v bytes", len(book.Cover))
	}

	if err := loadCover(book, filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("loadCover() succeeded on a missing file")
	}
}
