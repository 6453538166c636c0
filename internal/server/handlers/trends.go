// internal/server/handlers/trends.go

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"trendpulse/internal/adapter/events"
	"trendpulse/internal/domain/trend"
	"trendpulse/internal/service/aggregate"
	"trendpulse/internal/service/analyze"
)

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	aggregator *aggregate.Aggregator
	publisher  *events.Publisher
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(aggregator *aggregate.Aggregator, publisher *events.Publisher, log zerolog.Logger) *TrendHandler {
	return &TrendHandler{
		aggregator: aggregator,
		publisher:  publisher,
		validate:   validator.New(),
		log:        log,
	}
}

type listParams struct {
	Limit int `validate:"min=1,max=50"`
}

type allParams struct {
	Limit int `validate:"min=1,max=30"`
}

type analyzeRequest struct {
	Keywords []string `json:"keywords" validate:"omitempty,max=25,dive,min=1,max=64"`
}

type summaryBlock struct {
	Source string   `json:"source"`
	Top    []string `json:"top"`
}

type sourceBlock struct {
	Source string            `json:"source"`
	Count  int               `json:"count"`
	Trends []trend.TrendItem `json:"trends"`
}

// Overview returns the top three trends from every source
func (h *TrendHandler) Overview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.aggregator.Aggregate(r.Context(), trend.SourceOrder, aggregate.Limits{News: 3})
	if err != nil {
		h.respondAggregationError(w, err)
		return
	}

	top := analyze.TopPerSource(snap, 3)
	blocks := make([]summaryBlock, 0, len(trend.SourceOrder))
	for _, tag := range trend.SourceOrder {
		blocks = append(blocks, summaryBlock{Source: tag.Provenance(), Top: top[tag]})
	}

	respondWithJSON(w, http.StatusOK, struct {
		Timestamp string         `json:"timestamp"`
		Sources   []summaryBlock `json:"sources"`
	}{
		Timestamp: snap.CapturedAt.Format(time.RFC3339),
		Sources:   blocks,
	})
}

// HackerNews returns the current ranked stories
func (h *TrendHandler) HackerNews(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseLimit(w, r, 20)
	if !ok {
		return
	}

	snap, err := h.aggregator.Aggregate(r.Context(), []trend.SourceTag{trend.SourceNews}, aggregate.Limits{News: limit})
	if err != nil {
		h.respondAggregationError(w, err)
		return
	}

	items := snap.Get(trend.SourceNews)
	respondWithJSON(w, http.StatusOK, sourceResponse(snap, trend.SourceNews, items))
}

// Crypto returns the trending coins and NFTs
func (h *TrendHandler) Crypto(w http.ResponseWriter, r *http.Request) {
	snap, err := h.aggregator.Aggregate(r.Context(), []trend.SourceTag{trend.SourceCrypto}, aggregate.Limits{})
	if err != nil {
		h.respondAggregationError(w, err)
		return
	}

	items := snap.Get(trend.SourceCrypto)
	respondWithJSON(w, http.StatusOK, sourceResponse(snap, trend.SourceCrypto, items))
}

// Twitter returns the current social trends, possibly a degraded placeholder
func (h *TrendHandler) Twitter(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseLimit(w, r, 20)
	if !ok {
		return
	}

	snap, err := h.aggregator.Aggregate(r.Context(), []trend.SourceTag{trend.SourceSocial}, aggregate.Limits{Social: limit})
	if err != nil {
		h.respondAggregationError(w, err)
		return
	}

	items := snap.Get(trend.SourceSocial)
	respondWithJSON(w, http.StatusOK, sourceResponse(snap, trend.SourceSocial, items))
}

// All returns every source's trends in one response. The limit drives the
// news fetch and truncates the social list for display.
func (h *TrendHandler) All(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseAllLimit(w, r, 20)
	if !ok {
		return
	}

	snap, err := h.aggregator.Aggregate(r.Context(), trend.SourceOrder, aggregate.Limits{News: limit})
	if err != nil {
		h.respondAggregationError(w, err)
		return
	}

	blocks := make([]sourceBlock, 0, len(trend.SourceOrder))
	for _, tag := range trend.SourceOrder {
		items := snap.Get(tag)
		if tag == trend.SourceSocial && len(items) > limit {
			items = items[:limit]
		}
		blocks = append(blocks, sourceBlock{
			Source: tag.Provenance(),
			Count:  len(items),
			Trends: items,
		})
	}

	respondWithJSON(w, http.StatusOK, struct {
		Timestamp string        `json:"timestamp"`
		Sources   []sourceBlock `json:"sources"`
	}{
		Timestamp: snap.CapturedAt.Format(time.RFC3339),
		Sources:   blocks,
	})
}

// Analyze aggregates every source and reports cross-platform keywords, a
// top-five projection per source, and per-keyword source presence for any
// user-supplied keywords.
func (h *TrendHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid keywords")
		return
	}

	snap, err := h.aggregator.Aggregate(r.Context(), trend.SourceOrder, aggregate.Limits{News: 30})
	if err != nil {
		h.respondAggregationError(w, err)
		return
	}

	records := analyze.Correlate(snap)
	h.publisher.PublishKeywords(snap.ID, records)

	top := analyze.TopPerSource(snap, 5)
	bySource := make([]summaryBlock, 0, len(trend.SourceOrder))
	for _, tag := range trend.SourceOrder {
		bySource = append(bySource, summaryBlock{Source: tag.Provenance(), Top: top[tag]})
	}

	respondWithJSON(w, http.StatusOK, struct {
		Timestamp      string                    `json:"timestamp"`
		SnapshotID     string                    `json:"snapshot_id"`
		CrossPlatform  []trend.KeywordRecord     `json:"cross_platform"`
		TopBySource    []summaryBlock            `json:"top_by_source"`
		KeywordMatches []analyze.KeywordPresence `json:"keyword_matches"`
	}{
		Timestamp:      snap.CapturedAt.Format(time.RFC3339),
		SnapshotID:     snap.ID,
		CrossPlatform:  records,
		TopBySource:    bySource,
		KeywordMatches: analyze.FilterByKeywords(snap, req.Keywords),
	})
}

// sourceResponse is the single-source response shape
func sourceResponse(snap *trend.Snapshot, tag trend.SourceTag, items []trend.TrendItem) any {
	return struct {
		Timestamp string            `json:"timestamp"`
		Source    string            `json:"source"`
		Count     int               `json:"count"`
		Trends    []trend.TrendItem `json:"trends"`
	}{
		Timestamp: snap.CapturedAt.Format(time.RFC3339),
		Source:    tag.Provenance(),
		Count:     len(items),
		Trends:    items,
	}
}

// parseLimit reads the limit query parameter with a 1..50 bound
func (h *TrendHandler) parseLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	limit, err := limitParam(r, def)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid limit")
		return 0, false
	}
	if err := h.validate.Struct(listParams{Limit: limit}); err != nil {
		respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 50")
		return 0, false
	}
	return limit, true
}

// parseAllLimit reads the limit query parameter with the tighter 1..30 bound
func (h *TrendHandler) parseAllLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	limit, err := limitParam(r, def)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid limit")
		return 0, false
	}
	if err := h.validate.Struct(allParams{Limit: limit}); err != nil {
		respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 30")
		return 0, false
	}
	return limit, true
}

func limitParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// decodeBody decodes an optional JSON body; an empty body is a valid
// zero-value request
func decodeBody(r *http.Request, out any) error {
	err := json.NewDecoder(r.Body).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *TrendHandler) respondAggregationError(w http.ResponseWriter, err error) {
	var aggErr *trend.AggregationError
	if errors.As(err, &aggErr) {
		h.log.Error().Err(err).Str("source", string(aggErr.Source)).Msg("aggregation failed")
		respondWithError(w, http.StatusBadGateway, fmt.Sprintf("%s is unavailable", aggErr.Source.Provenance()))
		return
	}
	h.log.Error().Err(err).Msg("aggregation failed")
	respondWithError(w, http.StatusInternalServerError, "failed to aggregate trends")
}
