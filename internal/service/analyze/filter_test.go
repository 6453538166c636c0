package analyze

import (
	"testing"
	"time"

	"trendpulse/internal/domain/trend"
)

func TestFilterByKeywords_NilOnEmptyInput(t *testing.T) {
	snap := snapshotOf([]string{"bitcoin"}, []string{"Bitcoin news"}, []string{"Bitcoin"})

	if got := FilterByKeywords(snap, nil); got != nil {
		t.Fatalf("nil keywords should return nil, got %v", got)
	}
	if got := FilterByKeywords(snap, []string{}); got != nil {
		t.Fatalf("empty keywords should return nil, got %v", got)
	}
}

func TestFilterByKeywords_Table(t *testing.T) {
	snap := snapshotOf(
		[]string{"AI safety", "Bitcoin rally"},
		[]string{"Ethereum merge complete", "Markets calm"},
		nil,
	)
	snap.Items[trend.SourceCrypto] = []trend.TrendItem{
		{Rank: 1, Label: "Shiba Inu", Source: trend.SourceCrypto, Metadata: map[string]any{"symbol": "shib"}},
	}

	tests := []struct {
		name    string
		keyword string
		social  bool
		news    bool
		crypto  bool
	}{
		{
			// substring match is case-insensitive per source
			name:    "case insensitive substring",
			keyword: "BITCOIN",
			social:  true,
		},
		{
			// multi-word keywords match here even though the correlator's
			// tokenization could never produce them
			name:    "multi word keyword",
			keyword: "ai safety",
			social:  true,
		},
		{
			name:    "news title substring",
			keyword: "ethereum",
			news:    true,
		},
		{
			name:    "crypto matches by symbol",
			keyword: "shib",
			crypto:  true,
		},
		{
			name:    "no source mentions it",
			keyword: "zebra",
		},
		{
			name:    "blank keyword matches nothing",
			keyword: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByKeywords(snap, []string{tt.keyword})
			if len(got) != 1 {
				t.Fatalf("got %d entries, want 1", len(got))
			}
			p := got[0]
			if p.Keyword != tt.keyword {
				t.Errorf("keyword echoed as %q, want %q", p.Keyword, tt.keyword)
			}
			if p.Social != tt.social || p.News != tt.news || p.Crypto != tt.crypto {
				t.Errorf("presence = %+v, want social=%v news=%v crypto=%v", p, tt.social, tt.news, tt.crypto)
			}
		})
	}
}

func TestFilterByKeywords_PreservesOrderAndLength(t *testing.T) {
	snap := snapshotOf([]string{"bitcoin"}, nil, nil)
	keywords := []string{"zebra", "bitcoin", "Apple"}

	got := FilterByKeywords(snap, keywords)
	if len(got) != len(keywords) {
		t.Fatalf("got %d entries, want %d", len(got), len(keywords))
	}
	for i, kw := range keywords {
		if got[i].Keyword != kw {
			t.Errorf("entry %d keyword = %q, want %q", i, got[i].Keyword, kw)
		}
	}
}

func TestFilterByKeywords_SkipsDegradedItems(t *testing.T) {
	snap := &trend.Snapshot{
		CapturedAt: time.Now().UTC(),
		Items: map[trend.SourceTag][]trend.TrendItem{
			trend.SourceSocial: {
				{Rank: 1, Label: "twitter trends unavailable", Source: trend.SourceSocial, Degraded: true},
			},
		},
	}

	got := FilterByKeywords(snap, []string{"unavailable"})
	if len(got) != 1 || got[0].Social {
		t.Fatalf("degraded placeholder should not match, got %v", got)
	}
}

func TestTopPerSource(t *testing.T) {
	snap := snapshotOf(
		[]string{"one", "two", "three", "four", "five", "six"},
		[]string{"story"},
		nil,
	)

	got := TopPerSource(snap, 5)

	if len(got[trend.SourceSocial]) != 5 {
		t.Fatalf("social top = %v, want 5 labels", got[trend.SourceSocial])
	}
	if got[trend.SourceSocial][0] != "one" || got[trend.SourceSocial][4] != "five" {
		t.Fatalf("social top should keep order, got %v", got[trend.SourceSocial])
	}
	if len(got[trend.SourceNews]) != 1 {
		t.Fatalf("news top = %v, want the single label", got[trend.SourceNews])
	}
	if _, ok := got[trend.SourceCrypto]; ok {
		t.Fatal("absent source should not appear in the projection")
	}
}
