package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Sources.SocialMaxTopics != 20 {
		t.Errorf("default social max topics = %d, want 20", cfg.Sources.SocialMaxTopics)
	}
	if cfg.Sources.CryptoMaxNFTs != 5 {
		t.Errorf("default crypto max NFTs = %d, want 5", cfg.Sources.CryptoMaxNFTs)
	}
	if cfg.Events.Enabled {
		t.Error("event publishing should be disabled by default")
	}
	if cfg.Server.LiveInterval != time.Minute {
		t.Errorf("default live interval = %v, want 1m", cfg.Server.LiveInterval)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SOURCE_NEWS_FAN_OUT", "8")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if len(cfg.Server.CorsOrigins) != 2 || cfg.Server.CorsOrigins[0] != "https://a.example" {
		t.Errorf("cors origins = %v", cfg.Server.CorsOrigins)
	}
	if cfg.Sources.NewsFanOut != 8 {
		t.Errorf("news fan-out = %d, want 8", cfg.Sources.NewsFanOut)
	}
	if !cfg.Events.Enabled {
		t.Error("events should be enabled")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("malformed port should fall back to default, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("malformed duration should fall back to default, got %v", cfg.Server.ReadTimeout)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("out-of-range port should fail validation")
	}
}
