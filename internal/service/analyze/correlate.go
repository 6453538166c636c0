// internal/service/analyze/correlate.go

package analyze

import (
	"sort"
	"strings"
	"unicode/utf8"

	"trendpulse/internal/domain/trend"
)

const (
	minKeywordLen = 3
	maxKeywords   = 10
)

// token is one label token with its originating source
type token struct {
	text string
	tag  trend.SourceTag
}

// Correlate detects topics that surface on more than one platform.
//
// Tokenization is deliberately asymmetric per source: social topics and
// crypto names are short phrases kept whole, news titles are split on
// whitespace into word tokens. A phrase token like "bitcoin rally" therefore
// never matches the coin token "bitcoin"; that asymmetry is part of the
// contract, not an oversight. Tokens shorter than three characters are too
// noisy to be topics and are dropped. A keyword qualifies when its distinct
// source set spans at least two platforms; within one source, repeats raise
// the occurrence count but never the source count. Output is sorted by
// source count then occurrences, stable on first appearance, capped at ten.
func Correlate(snap *trend.Snapshot) []trend.KeywordRecord {
	type entry struct {
		record trend.KeywordRecord
		seen   map[trend.SourceTag]bool
	}

	var order []string
	byKeyword := make(map[string]*entry)

	for _, tok := range tokenize(snap) {
		if utf8.RuneCountInString(tok.text) < minKeywordLen {
			continue
		}
		e, ok := byKeyword[tok.text]
		if !ok {
			e = &entry{
				record: trend.KeywordRecord{Keyword: tok.text},
				seen:   make(map[trend.SourceTag]bool),
			}
			byKeyword[tok.text] = e
			order = append(order, tok.text)
		}
		e.record.Occurrences++
		if !e.seen[tok.tag] {
			e.seen[tok.tag] = true
			e.record.Sources = append(e.record.Sources, tok.tag)
		}
	}

	records := make([]trend.KeywordRecord, 0, len(order))
	for _, kw := range order {
		if rec := byKeyword[kw].record; len(rec.Sources) > 1 {
			records = append(records, rec)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if len(records[i].Sources) != len(records[j].Sources) {
			return len(records[i].Sources) > len(records[j].Sources)
		}
		return records[i].Occurrences > records[j].Occurrences
	})

	if len(records) > maxKeywords {
		records = records[:maxKeywords]
	}
	return records
}

// tokenize builds the working token list from the snapshot's labels,
// preserving source provenance per token. Degraded placeholders are not
// topics and contribute nothing.
func tokenize(snap *trend.Snapshot) []token {
	var tokens []token

	for _, it := range snap.Get(trend.SourceSocial) {
		if it.Degraded {
			continue
		}
		tokens = append(tokens, token{text: normalize(it.Label), tag: trend.SourceSocial})
	}
	for _, it := range snap.Get(trend.SourceNews) {
		for _, word := range strings.Fields(strings.ToLower(it.Label)) {
			tokens = append(tokens, token{text: word, tag: trend.SourceNews})
		}
	}
	for _, it := range snap.Get(trend.SourceCrypto) {
		tokens = append(tokens, token{text: normalize(it.Label), tag: trend.SourceCrypto})
	}
	return tokens
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
