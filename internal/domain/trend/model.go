// internal/domain/trend/model.go

package trend

import (
	"time"
)

// SourceTag identifies one of the upstream trend providers
type SourceTag string

const (
	SourceSocial SourceTag = "social"
	SourceNews   SourceTag = "news"
	SourceCrypto SourceTag = "crypto"
)

// SourceOrder is the canonical ordering of sources in a snapshot.
// Consumers rely on it for display only, never for correctness.
var SourceOrder = []SourceTag{SourceSocial, SourceNews, SourceCrypto}

// Provenance returns the static human-readable origin label for the tag
func (t SourceTag) Provenance() string {
	switch t {
	case SourceSocial:
		return "trends24.in"
	case SourceNews:
		return "Hacker News"
	case SourceCrypto:
		return "CoinGecko"
	}
	return string(t)
}

// TrendItem is one normalized signal from a source. Label is the only field
// keyword extraction reads; Metadata is provider-specific and passed through
// untouched. Degraded marks the placeholder the social adapter substitutes
// when its upstream is unusable.
type TrendItem struct {
	Rank     int            `json:"rank,omitempty"`
	Label    string         `json:"label"`
	Source   SourceTag      `json:"source"`
	Degraded bool           `json:"degraded,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Snapshot is one aggregation's point-in-time result set across the
// requested sources. It is immutable once produced and request-scoped:
// every request gets a fresh snapshot, nothing is cached or shared.
type Snapshot struct {
	ID         string                    `json:"id"`
	CapturedAt time.Time                 `json:"captured_at"`
	Items      map[SourceTag][]TrendItem `json:"items"`
}

// Get returns the items captured for tag, nil when the source was not requested
func (s *Snapshot) Get(tag SourceTag) []TrendItem {
	return s.Items[tag]
}

// Sources returns the tags present in the snapshot in canonical order
func (s *Snapshot) Sources() []SourceTag {
	tags := make([]SourceTag, 0, len(s.Items))
	for _, tag := range SourceOrder {
		if _, ok := s.Items[tag]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// KeywordRecord is one cross-platform keyword detected by correlation.
// Occurrences counts every label-token match including duplicates within a
// source; Sources holds the distinct sources the keyword appeared in.
type KeywordRecord struct {
	Keyword     string      `json:"keyword"`
	Occurrences int         `json:"occurrences"`
	Sources     []SourceTag `json:"sources"`
}
