// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trendpulse/internal/adapter/events"
	"trendpulse/internal/adapter/source"
	"trendpulse/internal/config"
	"trendpulse/internal/logger"
	"trendpulse/internal/server"
	"trendpulse/internal/service/aggregate"
)

func main() {
	// .env is optional; deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// One shared upstream client. It deliberately carries no timeout: a
	// hung provider hangs its request rather than surfacing a partial
	// aggregation.
	httpClient := &http.Client{}

	// Initialize source adapters
	social := source.NewTrends24(source.Trends24Config{
		BaseURL:   cfg.Sources.SocialURL,
		UserAgent: cfg.Sources.SocialUserAgent,
		MaxTopics: cfg.Sources.SocialMaxTopics,
	}, httpClient, nil, log)

	news := source.NewHackerNews(source.HackerNewsConfig{
		BaseURL:     cfg.Sources.NewsURL,
		FanOutLimit: cfg.Sources.NewsFanOut,
	}, httpClient, log)

	crypto := source.NewCoinGecko(source.CoinGeckoConfig{
		BaseURL: cfg.Sources.CryptoURL,
		MaxNFTs: cfg.Sources.CryptoMaxNFTs,
	}, httpClient, log)

	aggregator := aggregate.New(social, news, crypto)

	// Optional event publishing
	publisher, err := events.Connect(cfg.Events, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to NATS")
	}
	defer publisher.Close()

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, aggregator, publisher, log)

	// Start HTTP server
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("environment", cfg.Environment).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
