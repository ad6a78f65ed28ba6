package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kurumilog/teletype-to-epub/model"
)

func TestRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	in := &model.Chapter{
		Number: 42,
		Title:  "Глава о кэше",
		Blocks: []string{"<p>первый блок</p>", `<p style="text-align:center;"><img src="images/img_ab.png" alt=""/></p>`},
		Images: []model.Image{
			{Filename: "img_ab.png", Data: []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0x01}},
		},
	}
	if err := store.Put(in); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	out, err := store.Get(42)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out == nil {
		t.Fatal("Get() returned nil for a stored chapter")
	}

	if out.Number != in.Number || out.Title != in.Title {
		t.Errorf("Get() = #%d %q, want #%d %q", out.Number, out.Title, in.Number, in.Title)
	}
	if out.HTML() != in.HTML() {
		t.Errorf("block markup changed across round trip:\n got %q\nwant %q", out.HTML(), in.HTML())
	}
	if len(out.Images) != 1 {
		t.Fatalf("Get() images = %d, want 1", len(out.Images))
	}
	if out.Images[0].Filename != "img_ab.png" {
		t.Errorf("image filename = %q", out.Images[0].Filename)
	}
	if !bytes.Equal(out.Images[0].Data, in.Images[0].Data) {
		t.Errorf("image bytes changed across round trip")
	}
}

func TestGetAbsent(t *testing.T) {
	store := New(t.TempDir())

	chapter, err := store.Get(7)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if chapter != nil {
		t.Fatalf("Get() = %+v, want nil for absent record", chapter)
	}
}

func TestGetCorruptRecordIsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	if err := os.WriteFile(filepath.Join(dir, "chapter_9.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	chapter, err := store.Get(9)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if chapter != nil {
		t.Fatalf("Get() = %+v, want nil for corrupt record", chapter)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Put(&model.Chapter{Number: 3, Title: "old", Blocks: []string{"<p>old</p>"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(&model.Chapter{Number: 3, Title: "new", Blocks: []string{"<p>new</p>"}}); err != nil {
		t.Fatal(err)
	}

	out, err := store.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Title != "new" || out.HTML() != "<p>new</p>" {
		t.Errorf("Get() after second Put = %q %q, want the overwritten record", out.Title, out.HTML())
	}
}
