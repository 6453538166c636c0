// internal/server/handlers/live.go

package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/service/aggregate"
	"trendpulse/internal/service/analyze"
)

// LiveConfig contains configuration for the live trend stream
type LiveConfig struct {
	// Interval between snapshots pushed to the client
	Interval time.Duration

	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration
}

func (c LiveConfig) withDefaults() LiveConfig {
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingPeriod <= 0 {
		c.PingPeriod = (c.PongWait * 9) / 10
	}
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

type liveFrame struct {
	Timestamp string                       `json:"timestamp"`
	Top       map[trend.SourceTag][]string `json:"top"`
}

// LiveTrendsHandler streams a fresh overview aggregation on every tick.
// Each tick is an ordinary request-scoped aggregation; nothing is cached
// between writes. A tick whose aggregation fails is skipped, not fatal.
func LiveTrendsHandler(aggregator *aggregate.Aggregator, cfg LiveConfig, log zerolog.Logger) http.HandlerFunc {
	cfg = cfg.withDefaults()

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		})

		// Drain control frames and detect the peer going away
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		send := func() error {
			snap, err := aggregator.Aggregate(r.Context(), trend.SourceOrder, aggregate.Limits{News: 3})
			if err != nil {
				log.Warn().Err(err).Msg("live snapshot failed")
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			return conn.WriteJSON(liveFrame{
				Timestamp: snap.CapturedAt.Format(time.RFC3339),
				Top:       analyze.TopPerSource(snap, 3),
			})
		}

		if err := send(); err != nil {
			return
		}

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		pinger := time.NewTicker(cfg.PingPeriod)
		defer pinger.Stop()

		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case <-ticker.C:
				if err := send(); err != nil {
					return
				}
			case <-pinger.C:
				conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
