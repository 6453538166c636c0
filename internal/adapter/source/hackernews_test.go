package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"trendpulse/internal/domain/trend"
)

// newsUpstream doubles the ranked-list API: /topstories.json plus one
// detail route per story.
func newsUpstream(t *testing.T, ids []int, overrides map[int]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "[")
		for i, id := range ids {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprint(w, id)
		}
		fmt.Fprint(w, "]")
	})
	for _, id := range ids {
		id := id
		handler := overrides[id]
		if handler == nil {
			handler = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprintf(w, `{"id":%d,"title":"Story %d","score":%d,"url":"https://example.com/%d"}`, id, id, id*10, id)
			}
		}
		mux.HandleFunc(fmt.Sprintf("/item/%d.json", id), handler)
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newNews(ts *httptest.Server, fanOut int) *HackerNews {
	return NewHackerNews(HackerNewsConfig{BaseURL: ts.URL, FanOutLimit: fanOut}, ts.Client(), zerolog.Nop())
}

func TestHackerNews_FetchRankedStories(t *testing.T) {
	ts := newsUpstream(t, []int{101, 102, 103, 104}, nil)

	items, err := newNews(ts, 0).Fetch(context.Background(), 3)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, it := range items {
		if it.Rank != i+1 {
			t.Errorf("item %d rank = %d, want list position", i, it.Rank)
		}
		if it.Source != trend.SourceNews {
			t.Errorf("item %d source = %q", i, it.Source)
		}
	}
	if items[0].Label != "Story 101" {
		t.Errorf("first label = %q, want the top story", items[0].Label)
	}
	if items[0].Metadata["score"] != 1010 || items[0].Metadata["url"] != "https://example.com/101" {
		t.Errorf("metadata = %v, want score and url passed through", items[0].Metadata)
	}
}

func TestHackerNews_OrderSurvivesFanOut(t *testing.T) {
	// The top story answers last; rank order must still follow the list.
	overrides := map[int]http.HandlerFunc{
		201: func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(40 * time.Millisecond)
			fmt.Fprint(w, `{"id":201,"title":"Story 201","score":1,"url":""}`)
		},
	}
	ts := newsUpstream(t, []int{201, 202, 203}, overrides)

	items, err := newNews(ts, 0).Fetch(context.Background(), 3)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if items[0].Label != "Story 201" || items[2].Label != "Story 203" {
		t.Fatalf("order not preserved: %v", items)
	}
}

func TestHackerNews_BoundedFanOut(t *testing.T) {
	ts := newsUpstream(t, []int{1, 2, 3, 4, 5}, nil)

	items, err := newNews(ts, 2).Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("got %d items, want all 5 through the bounded group", len(items))
	}
}

func TestHackerNews_DetailFailurePropagates(t *testing.T) {
	overrides := map[int]http.HandlerFunc{
		302: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	}
	ts := newsUpstream(t, []int{301, 302, 303}, overrides)

	_, err := newNews(ts, 0).Fetch(context.Background(), 3)
	if !errors.Is(err, trend.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}

	var srcErr *trend.SourceError
	if !errors.As(err, &srcErr) || srcErr.Source != trend.SourceNews {
		t.Fatalf("error should name the news source, got %v", err)
	}
}

func TestHackerNews_TopListFailurePropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	_, err := newNews(ts, 0).Fetch(context.Background(), 3)
	if !errors.Is(err, trend.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestHackerNews_DropsDeadStoriesKeepsRanks(t *testing.T) {
	overrides := map[int]http.HandlerFunc{
		402: func(w http.ResponseWriter, r *http.Request) {
			// deleted stories come back without a title
			fmt.Fprint(w, `{"id":402}`)
		},
	}
	ts := newsUpstream(t, []int{401, 402, 403}, overrides)

	items, err := newNews(ts, 0).Fetch(context.Background(), 3)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want the dead story dropped", len(items))
	}
	if items[0].Rank != 1 || items[1].Rank != 3 {
		t.Fatalf("surviving ranks = %d,%d, want 1,3", items[0].Rank, items[1].Rank)
	}
}
