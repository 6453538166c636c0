// internal/service/analyze/filter.go

package analyze

import (
	"strings"

	"trendpulse/internal/domain/trend"
)

// KeywordPresence reports, for one user-supplied keyword, which sources
// mention it.
type KeywordPresence struct {
	Keyword string `json:"keyword"`
	Social  bool   `json:"social"`
	News    bool   `json:"news"`
	Crypto  bool   `json:"crypto"`
}

// FilterByKeywords tests each keyword for case-insensitive substring
// presence against social labels, news titles, and crypto name-or-symbol.
// It is independent of Correlate's tokenization on purpose: a multi-word
// keyword can match here without ever being a correlation keyword. Returns
// nil when keywords is empty; otherwise one entry per keyword, order
// preserved.
func FilterByKeywords(snap *trend.Snapshot, keywords []string) []KeywordPresence {
	if len(keywords) == 0 {
		return nil
	}

	out := make([]KeywordPresence, 0, len(keywords))
	for _, kw := range keywords {
		needle := strings.ToLower(strings.TrimSpace(kw))
		p := KeywordPresence{Keyword: kw}
		if needle != "" {
			p.Social = labelsContain(snap.Get(trend.SourceSocial), needle, false)
			p.News = labelsContain(snap.Get(trend.SourceNews), needle, false)
			p.Crypto = labelsContain(snap.Get(trend.SourceCrypto), needle, true)
		}
		out = append(out, p)
	}
	return out
}

func labelsContain(items []trend.TrendItem, needle string, matchSymbol bool) bool {
	for _, it := range items {
		if it.Degraded {
			continue
		}
		if strings.Contains(strings.ToLower(it.Label), needle) {
			return true
		}
		if matchSymbol {
			if sym, ok := it.Metadata["symbol"].(string); ok {
				if strings.Contains(strings.ToLower(sym), needle) {
					return true
				}
			}
		}
	}
	return false
}

// TopPerSource projects the first n labels per source, no tokenization.
// This is a display projection, not an analytical result.
func TopPerSource(snap *trend.Snapshot, n int) map[trend.SourceTag][]string {
	out := make(map[trend.SourceTag][]string, len(snap.Items))
	for _, tag := range trend.SourceOrder {
		items, ok := snap.Items[tag]
		if !ok {
			continue
		}
		labels := make([]string, 0, n)
		for _, it := range items {
			if len(labels) == n {
				break
			}
			labels = append(labels, it.Label)
		}
		out[tag] = labels
	}
	return out
}
