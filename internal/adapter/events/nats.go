// internal/adapter/events/nats.go

package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"trendpulse/internal/config"
	"trendpulse/internal/domain/trend"
)

// Publisher emits analysis results onto the event bus for downstream
// consumers. A nil *Publisher is a no-op, so the API runs unchanged when
// no broker is configured.
type Publisher struct {
	conn    *nats.Conn
	subject string
	log     zerolog.Logger
}

// Connect establishes the NATS connection when publishing is enabled and
// returns nil otherwise.
func Connect(cfg config.EventsConfig, log zerolog.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info().Msg("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return &Publisher{conn: nc, subject: cfg.Subject, log: log}, nil
}

type keywordsEvent struct {
	SnapshotID string               `json:"snapshot_id"`
	Keywords   []trend.KeywordRecord `json:"keywords"`
}

// PublishKeywords publishes one analysis run's cross-platform keywords.
// Publish failures are logged, never surfaced to the request.
func (p *Publisher) PublishKeywords(snapshotID string, records []trend.KeywordRecord) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(keywordsEvent{SnapshotID: snapshotID, Keywords: records})
	if err != nil {
		p.log.Error().Err(err).Msg("marshal keywords event")
		return
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.log.Warn().Err(err).Str("subject", p.subject).Msg("publish keywords event")
	}
}

// Close drains the connection
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
