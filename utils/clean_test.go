package utils

import "testing"

func TestCleanFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Моя книга", "Моя_книга"},
		{"unsafe chars replaced", `Книга: "том 1"?`, "Книга___том_1__"},
		{"only unsafe chars", "???", "___"},
		{"empty", "", "book"},
		{"whitespace only", "   ", "book"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CleanFileName(c.in); got != c.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
