// Package fetch resolves the chapter link index into a concrete fetch plan
// and executes it sequentially against the cache and the content extractor.
package fetch

import (
	"fmt"
	"sort"

	"github.com/Kurumilog/teletype-to-epub/links"
)

// PlanEntry is one chapter to fetch and the URL chosen for it.
type PlanEntry struct {
	Number int
	URL    string
}

// MissingChaptersError reports the chapters in the requested range that no
// prioritized source has a link for. Planning fails as a whole; the caller
// has to widen the priority list or narrow the range.
type MissingChaptersError struct {
	Chapters []int
}

func (e *MissingChaptersError) Error() string {
	return fmt.Sprintf("no links for chapters %v under the chosen source priority", e.Chapters)
}

// BuildPlan resolves every chapter in the closed range [start, end] to the
// URL of the first prioritized source present in its source map. A non-empty
// missing set fails planning before any network activity.
func BuildPlan(index links.Index, priority []string, start, end int) ([]PlanEntry, error) {
	plan := make([]PlanEntry, 0, end-start+1)
	var missing []int

	for num := start; num <= end; num++ {
		sources, ok := index[num]
		if !ok {
			missing = append(missing, num)
			continue
		}

		url := ""
		for _, handle := range priority {
			if u, ok := sources[handle]; ok {
				url = u
				break
			}
		}
		if url == "" {
			missing = append(missing, num)
			continue
		}
		plan = append(plan, PlanEntry{Number: num, URL: url})
	}

	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, &MissingChaptersError{Chapters: missing}
	}
	return plan, nil
}
