// internal/service/aggregate/aggregator.go

package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"trendpulse/internal/domain/trend"
)

// Limits carries per-source fetch limits; zero lets the source apply its
// own default.
type Limits struct {
	Social int
	News   int
	Crypto int
}

// For returns the limit configured for tag
func (l Limits) For(tag trend.SourceTag) int {
	switch tag {
	case trend.SourceSocial:
		return l.Social
	case trend.SourceNews:
		return l.News
	case trend.SourceCrypto:
		return l.Crypto
	}
	return 0
}

// Aggregator fans requested sources out concurrently and merges their
// results into a single point-in-time snapshot.
type Aggregator struct {
	sources map[trend.SourceTag]trend.Source
}

// New creates an aggregator over the given sources
func New(sources ...trend.Source) *Aggregator {
	m := make(map[trend.SourceTag]trend.Source, len(sources))
	for _, src := range sources {
		m[src.Tag()] = src
	}
	return &Aggregator{sources: m}
}

// Aggregate runs every requested source concurrently and waits for all of
// them to settle before returning. The social adapter degrades in place and
// never surfaces a failure; the first news or crypto failure fails the whole
// aggregation with an AggregationError. In-flight siblings are not cancelled,
// they run to completion and their results are discarded. There is no retry
// and no timeout layer here: a slow source blocks the whole aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, tags []trend.SourceTag, limits Limits) (*trend.Snapshot, error) {
	type result struct {
		tag   trend.SourceTag
		items []trend.TrendItem
		err   error
	}

	requested := make([]trend.Source, 0, len(tags))
	for _, tag := range tags {
		src, ok := a.sources[tag]
		if !ok {
			return nil, fmt.Errorf("no source registered for %q", tag)
		}
		requested = append(requested, src)
	}

	results := make(chan result, len(requested))
	var wg sync.WaitGroup
	for _, src := range requested {
		wg.Add(1)
		go func(src trend.Source) {
			defer wg.Done()
			items, err := src.Fetch(ctx, limits.For(src.Tag()))
			results <- result{tag: src.Tag(), items: items, err: err}
		}(src)
	}
	wg.Wait()
	close(results)

	items := make(map[trend.SourceTag][]trend.TrendItem, len(requested))
	var failure *trend.AggregationError
	for res := range results {
		if res.err != nil {
			if failure == nil {
				failure = &trend.AggregationError{Source: res.tag, Err: res.err}
			}
			continue
		}
		items[res.tag] = res.items
	}
	if failure != nil {
		return nil, failure
	}

	return &trend.Snapshot{
		ID:         uuid.NewString(),
		CapturedAt: time.Now().UTC(),
		Items:      items,
	}, nil
}
