package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RoleCorpusPath != "data/career_roles.csv" {
		t.Fatalf("unexpected corpus path %q", cfg.RoleCorpusPath)
	}
	if cfg.ClassifierTimeout != 10*time.Second || cfg.RecommendationCacheTTL != 15*time.Minute {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if cfg.CorpusRefreshInterval != 0 {
		t.Fatalf("refresh must be disabled by default, got %v", cfg.CorpusRefreshInterval)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("CORPUS_REFRESH_INTERVAL", "30s")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.RateLimitMax != 5 || cfg.CorpusRefreshInterval != 30*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("CLASSIFIER_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}
