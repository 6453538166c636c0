// internal/adapter/source/trends24.go

package source

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"trendpulse/internal/domain/trend"
)

// Degradation labels returned in place of real topics when the page is
// unusable. They double as the placeholder item's Label, so they read like
// a topic a client can display as-is.
const (
	reasonUnavailable = "twitter trends unavailable"
	reasonAuth        = "twitter trends require authentication"
)

// Trends24Config contains configuration for the social-trends adapter
type Trends24Config struct {
	BaseURL   string
	UserAgent string
	MaxTopics int
}

// Trends24 scrapes trending topics from the trends24.in page.
//
// This adapter never fails. Its upstream is an unauthenticated HTML page
// that drifts and blocks bots, so transient unavailability is expected:
// every failure mode (network error, non-2xx, unparsable markup, zero
// topics extracted) collapses into a single degraded placeholder item so
// aggregate responses stay whole.
type Trends24 struct {
	cfg     Trends24Config
	client  *http.Client
	parsers []TopicParser
	log     zerolog.Logger
}

// NewTrends24 creates the social-trends adapter. Parsers are tried in order
// until one extracts topics; nil selects the card strategy with the pattern
// strategy as fallback.
func NewTrends24(cfg Trends24Config, client *http.Client, parsers []TopicParser, log zerolog.Logger) *Trends24 {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://trends24.in"
	}
	if cfg.MaxTopics <= 0 {
		cfg.MaxTopics = 20
	}
	if client == nil {
		client = http.DefaultClient
	}
	if len(parsers) == 0 {
		parsers = []TopicParser{CardParser{}, PatternParser{}}
	}
	return &Trends24{cfg: cfg, client: client, parsers: parsers, log: log}
}

// Tag implements trend.Source
func (s *Trends24) Tag() trend.SourceTag { return trend.SourceSocial }

// Fetch implements trend.Source. It returns at most limit topics (capped at
// the configured maximum) and never returns an error.
func (s *Trends24) Fetch(ctx context.Context, limit int) ([]trend.TrendItem, error) {
	topics, reason := s.scrape(ctx)
	if reason != "" {
		s.log.Warn().Str("reason", reason).Msg("social trends degraded")
		return []trend.TrendItem{{
			Rank:     1,
			Label:    reason,
			Source:   trend.SourceSocial,
			Degraded: true,
		}}, nil
	}

	max := s.cfg.MaxTopics
	if limit > 0 && limit < max {
		max = limit
	}
	if len(topics) > max {
		topics = topics[:max]
	}

	items := make([]trend.TrendItem, 0, len(topics))
	for i, topic := range topics {
		items = append(items, trend.TrendItem{
			Rank:   i + 1,
			Label:  topic,
			Source: trend.SourceSocial,
		})
	}
	return items, nil
}

// scrape fetches the page and runs the parser strategies over it. The second
// return value is a non-empty degradation reason when no topics are usable.
func (s *Trends24) scrape(ctx context.Context) ([]string, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL, nil)
	if err != nil {
		return nil, reasonUnavailable
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Msg("social trends request failed")
		return nil, reasonUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, reasonAuth
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		s.log.Debug().Int("status", resp.StatusCode).Msg("social trends bad status")
		return nil, reasonUnavailable
	}

	markup, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, reasonUnavailable
	}

	for _, parser := range s.parsers {
		if topics := cleanTopics(parser.Topics(markup)); len(topics) > 0 {
			return topics, ""
		}
	}
	return nil, reasonUnavailable
}

// cleanTopics drops labels that are empty after trimming
func cleanTopics(topics []string) []string {
	kept := topics[:0]
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	return kept
}

var _ trend.Source = (*Trends24)(nil)
