package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Empty values fall through to the defaults
	t.Setenv("PORT", "")
	t.Setenv("HISTORY_CAP", "")
	t.Setenv("BROKER_HOST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.Server.Port)
	}
	if cfg.History.Cap != 100 {
		t.Fatalf("expected default history cap 100, got %d", cfg.History.Cap)
	}
	if cfg.BridgeEnabled() {
		t.Fatalf("bridge must be disabled without BROKER_HOST")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("expected all origins allowed by default, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Fatalf("expected default read timeout 30s, got %v", cfg.Server.ReadTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("HISTORY_CAP", "10")
	t.Setenv("BROKER_HOST", "broker.local")
	t.Setenv("BROKER_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8088" {
		t.Fatalf("expected port override, got %q", cfg.Server.Port)
	}
	if cfg.History.Cap != 10 {
		t.Fatalf("expected cap override, got %d", cfg.History.Cap)
	}
	if !cfg.BridgeEnabled() {
		t.Fatalf("expected bridge enabled with BROKER_HOST set")
	}
	if got := cfg.GetMQTTBrokerURL(); got != "tcps://broker.local:1883" {
		t.Fatalf("expected TLS broker URL, got %q", got)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected trimmed origin list, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestValidateRejectsBadCap(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: "3000"},
		History: HistoryConfig{Cap: 0},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for zero cap")
	}
}
