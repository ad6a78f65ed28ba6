package fetch

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/Kurumilog/teletype-to-epub/model"
)

// Extractor produces structured chapter content from a URL.
type Extractor interface {
	Extract(ctx context.Context, url string, includeImages bool) (*model.Chapter, error)
}

// Cache stores extracted chapters between runs. Get returns (nil, nil) when
// no record exists.
type Cache interface {
	Get(number int) (*model.Chapter, error)
	Put(chapter *model.Chapter) error
}

// Options carries the politeness and retry knobs. Delay bounds apply between
// distinct network fetches, not cache hits.
type Options struct {
	Retries   int
	RetryWait time.Duration
	DelayMin  time.Duration
	DelayMax  time.Duration
}

type Orchestrator struct {
	extractor Extractor
	cache     Cache
	opts      Options
}

func New(extractor Extractor, cache Cache, opts Options) *Orchestrator {
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	return &Orchestrator{extractor: extractor, cache: cache, opts: opts}
}

// Run executes the plan sequentially. Cache hits are used unmodified; misses
// go through the extractor with a bounded retry loop. Exhausting the retries
// for any single entry aborts the whole run, so the resulting chapter list is
// either complete or not produced at all.
func (o *Orchestrator) Run(ctx context.Context, plan []PlanEntry, includeImages bool) ([]*model.Chapter, error) {
	chapters := make([]*model.Chapter, 0, len(plan))
	fetched := false

	for _, entry := range plan {
		cached, err := o.cache.Get(entry.Number)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			// A cached record is authoritative even when the image
			// preference changed since it was written.
			if includeImages && len(cached.Images) == 0 {
				log.Printf("Chapter %v cached without images, keeping the cached copy", entry.Number)
			}
			log.Printf("Chapter %v taken from cache", entry.Number)
			chapters = append(chapters, cached)
			continue
		}

		if fetched {
			if err := o.politenessDelay(ctx); err != nil {
				return nil, err
			}
		}

		chapter, err := o.fetchWithRetry(ctx, entry, includeImages)
		if err != nil {
			return nil, err
		}
		fetched = true

		if err := o.cache.Put(chapter); err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}

	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].Number < chapters[j].Number
	})
	return chapters, nil
}

func (o *Orchestrator) fetchWithRetry(ctx context.Context, entry PlanEntry, includeImages bool) (*model.Chapter, error) {
	log.Printf("Fetching chapter %v: %v", entry.Number, entry.URL)

	var lastErr error
	for attempt := 1; attempt <= o.opts.Retries; attempt++ {
		chapter, err := o.extractor.Extract(ctx, entry.URL, includeImages)
		if err == nil {
			chapter.Number = entry.Number
			log.Printf("Chapter %v: %v blocks, %v images", entry.Number, len(chapter.Blocks), len(chapter.Images))
			return chapter, nil
		}
		lastErr = err
		log.Printf("Chapter %v attempt %v/%v failed: %v", entry.Number, attempt, o.opts.Retries, err)

		if attempt < o.opts.Retries {
			if err := sleepCtx(ctx, o.opts.RetryWait); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("failed to fetch chapter %v after %v attempts: %w", entry.Number, o.opts.Retries, lastErr)
}

// politenessDelay pauses for a uniformly random duration inside the
// configured bounds to stay under the host's informal rate limits.
func (o *Orchestrator) politenessDelay(ctx context.Context) error {
	if o.opts.DelayMax <= 0 {
		return nil
	}
	delay := o.opts.DelayMin
	if span := o.opts.DelayMax - o.opts.DelayMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	return sleepCtx(ctx, delay)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
