// internal/adapter/source/hackernews.go

package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"trendpulse/internal/domain/trend"
)

const defaultNewsLimit = 20

// HackerNewsConfig contains configuration for the news-ranking adapter
type HackerNewsConfig struct {
	BaseURL string
	// FanOutLimit caps concurrent detail fetches; 0 means unbounded.
	// The fan-out width is caller-bounded at 50 either way.
	FanOutLimit int
}

// HackerNews ranks stories through the public Firebase API: one request for
// the ranked id list, then one request per story for its detail.
//
// Any failure, top list or single detail, propagates: a partial or corrupt
// ranked list is unusable, so there is no degraded result for this source.
type HackerNews struct {
	cfg    HackerNewsConfig
	client *http.Client
	log    zerolog.Logger
}

// NewHackerNews creates the news-ranking adapter
func NewHackerNews(cfg HackerNewsConfig, client *http.Client, log zerolog.Logger) *HackerNews {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hacker-news.firebaseio.com/v0"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HackerNews{cfg: cfg, client: client, log: log}
}

// Tag implements trend.Source
func (s *HackerNews) Tag() trend.SourceTag { return trend.SourceNews }

type hnItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// Fetch implements trend.Source. Detail fetches run through a task group
// with the configured ceiling; result order follows the ranked id list
// regardless of completion order. On failure the group does not cancel
// in-flight siblings, they finish and their results are discarded.
func (s *HackerNews) Fetch(ctx context.Context, limit int) ([]trend.TrendItem, error) {
	if limit <= 0 {
		limit = defaultNewsLimit
	}

	var ids []int
	if err := fetchJSON(ctx, s.client, s.cfg.BaseURL+"/topstories.json", &ids); err != nil {
		return nil, trend.NewSourceError(trend.SourceNews, err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	items := make([]trend.TrendItem, len(ids))
	var g errgroup.Group
	if s.cfg.FanOutLimit > 0 {
		g.SetLimit(s.cfg.FanOutLimit)
	}
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			var story hnItem
			url := fmt.Sprintf("%s/item/%d.json", s.cfg.BaseURL, id)
			if err := fetchJSON(ctx, s.client, url, &story); err != nil {
				return err
			}
			items[i] = trend.TrendItem{
				Rank:   i + 1,
				Label:  story.Title,
				Source: trend.SourceNews,
				Metadata: map[string]any{
					"score": story.Score,
					"url":   story.URL,
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, trend.NewSourceError(trend.SourceNews, err)
	}

	// Deleted and dead stories come back without a title; drop them but
	// keep the surviving stories' original ranks.
	kept := items[:0]
	for _, it := range items {
		if strings.TrimSpace(it.Label) != "" {
			kept = append(kept, it)
		}
	}
	return kept, nil
}

var _ trend.Source = (*HackerNews)(nil)
