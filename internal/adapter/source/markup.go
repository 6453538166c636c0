// internal/adapter/source/markup.go

package source

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TopicParser extracts trending topic labels from a provider's raw markup.
//
// The social-trends page is unauthenticated scraping territory: its structure
// drifts and occasionally blocks bots. Keeping extraction behind this seam
// means a markup change touches one strategy, never the adapter or anything
// downstream of it. Strategies return labels in page order, deduplicated;
// an empty result means the strategy could not make sense of the markup.
type TopicParser interface {
	Topics(markup []byte) []string
}

const defaultCardSelector = "ol.trend-card__list li a"

// CardParser walks the rendered trend-card lists with a CSS selector
type CardParser struct {
	// Selector overrides the default trend-card anchor selector
	Selector string
}

func (p CardParser) Topics(markup []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil
	}

	sel := p.Selector
	if sel == "" {
		sel = defaultCardSelector
	}

	var topics []string
	seen := make(map[string]bool)
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		topics = append(topics, label)
	})
	return topics
}

var defaultTopicPattern = regexp.MustCompile(`<a[^>]*class="[^"]*trend-link[^"]*"[^>]*>([^<]+)</a>`)

// PatternParser matches topic anchors with a regular expression instead of a
// DOM pass. It survives truncated or malformed pages a tree parser rejects,
// which makes it the fallback strategy.
type PatternParser struct {
	// Pattern overrides the default anchor pattern; group 1 is the label
	Pattern *regexp.Regexp
}

func (p PatternParser) Topics(markup []byte) []string {
	pat := p.Pattern
	if pat == nil {
		pat = defaultTopicPattern
	}

	var topics []string
	seen := make(map[string]bool)
	for _, m := range pat.FindAllSubmatch(markup, -1) {
		label := strings.TrimSpace(html.UnescapeString(string(m[1])))
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		topics = append(topics, label)
	}
	return topics
}
