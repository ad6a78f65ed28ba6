// Package links builds the chapter link index from a free-form text listing.
//
// The listing is whatever the uploaders paste into a channel: lines like
// "Глава 312 (https://teletype.in/@handle/slug)" mixed with arbitrary noise.
// Only lines matching the chapter pattern are indexed, everything else is
// ignored.
package links

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
)

// Index maps chapter number -> source handle -> chapter URL.
type Index map[int]map[string]string

// ErrNoLinks is returned when the listing contains no teletype chapter links
// at all.
var ErrNoLinks = errors.New("no teletype.in chapter links found")

// Matches "Глава <num> ... (https://teletype.in/@handle/slug)".
// Group 1 is the chapter number, group 2 the URL, group 3 the handle.
var linkRe = regexp.MustCompile(`(?im)глава\s+(\d+).*?\(?(https?://teletype\.in/(@[\w-]+)/[^\s)?]+)`)

// Parse scans the raw listing text and returns the populated index together
// with the lexicographically sorted set of all source handles seen. A later
// occurrence of the same (chapter, handle) pair overwrites the earlier one.
func Parse(text string) (Index, []string, error) {
	index := make(Index)
	handles := make(map[string]struct{})

	for _, m := range linkRe.FindAllStringSubmatch(text, -1) {
		num, err := strconv.Atoi(m[1])
		if err != nil || num <= 0 {
			continue
		}
		url := m[2]
		handle := m[3]

		if index[num] == nil {
			index[num] = make(map[string]string)
		}
		index[num][handle] = url
		handles[handle] = struct{}{}
	}

	if len(index) == 0 {
		return nil, nil, ErrNoLinks
	}

	sorted := make([]string, 0, len(handles))
	for h := range handles {
		sorted = append(sorted, h)
	}
	sort.Strings(sorted)

	return index, sorted, nil
}

// Bounds returns the smallest and largest chapter number in the index.
func (idx Index) Bounds() (min, max int) {
	first := true
	for num := range idx {
		if first {
			min, max = num, num
			first = false
			continue
		}
		if num < min {
			min = num
		}
		if num > max {
			max = num
		}
	}
	return min, max
}

// CountFor returns how many chapters the given handle has a link for.
func (idx Index) CountFor(handle string) int {
	n := 0
	for _, sources := range idx {
		if _, ok := sources[handle]; ok {
			n++
		}
	}
	return n
}
