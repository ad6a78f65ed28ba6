package links

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	text := "Глава 5 (https://teletype.in/@a/x)\nГлава 6 (https://teletype.in/@b/y)"

	index, handles, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := index[5]["@a"]; got != "https://teletype.in/@a/x" {
		t.Errorf("chapter 5 @a url = %q", got)
	}
	if got := index[6]["@b"]; got != "https://teletype.in/@b/y" {
		t.Errorf("chapter 6 @b url = %q", got)
	}
	if want := []string{"@a", "@b"}; !reflect.DeepEqual(handles, want) {
		t.Errorf("handles = %v, want %v", handles, want)
	}
}

func TestParseNoise(t *testing.T) {
	text := `Оглавление тома 3

глава 310 - перевод готов (https://teletype.in/@cult/ch-310)
Глава 311 https://teletype.in/@grape/ch-311-final
случайная строка без ссылки
Глава abc (https://teletype.in/@cult/broken)
`
	index, handles, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(index) != 2 {
		t.Fatalf("indexed %d chapters, want 2", len(index))
	}
	if got := index[310]["@cult"]; got != "https://teletype.in/@cult/ch-310" {
		t.Errorf("chapter 310 url = %q", got)
	}
	if got := index[311]["@grape"]; got != "https://teletype.in/@grape/ch-311-final" {
		t.Errorf("chapter 311 url = %q", got)
	}
	if want := []string{"@cult", "@grape"}; !reflect.DeepEqual(handles, want) {
		t.Errorf("handles = %v, want %v", handles, want)
	}
}

func TestParseDuplicateLastWins(t *testing.T) {
	text := "Глава 7 (https://teletype.in/@a/old)\nГлава 7 (https://teletype.in/@a/new)"

	index, _, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := index[7]["@a"]; got != "https://teletype.in/@a/new" {
		t.Errorf("duplicate pair url = %q, want the later occurrence", got)
	}
}

func TestParseHandlesSortedNotDiscoveryOrder(t *testing.T) {
	text := "Глава 1 (https://teletype.in/@zeta/one)\nГлава 2 (https://teletype.in/@alpha/two)"

	_, handles, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := []string{"@alpha", "@zeta"}; !reflect.DeepEqual(handles, want) {
		t.Errorf("handles = %v, want lexicographic %v", handles, want)
	}
}

func TestParseEmpty(t *testing.T) {
	_, _, err := Parse("nothing useful here")
	if !errors.Is(err, ErrNoLinks) {
		t.Fatalf("Parse() error = %v, want ErrNoLinks", err)
	}
}

func TestBoundsAndCount(t *testing.T) {
	text := "Глава 3 (https://teletype.in/@a/c3)\nГлава 9 (https://teletype.in/@a/c9)\nГлава 9 (https://teletype.in/@b/alt)"

	index, _, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	min, max := index.Bounds()
	if min != 3 || max != 9 {
		t.Errorf("Bounds() = (%d, %d), want (3, 9)", min, max)
	}
	if got := index.CountFor("@a"); got != 2 {
		t.Errorf("CountFor(@a) = %d, want 2", got)
	}
	if got := index.CountFor("@b"); got != 1 {
		t.Errorf("CountFor(@b) = %d, want 1", got)
	}
}
