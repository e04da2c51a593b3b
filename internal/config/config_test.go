package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("SESSION_TTL_MINUTES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.SessionTTLMinutes != 30 {
		t.Errorf("expected default session TTL 30, got %d", cfg.SessionTTLMinutes)
	}
	if cfg.SessionMax != 100 {
		t.Errorf("expected default session max 100, got %d", cfg.SessionMax)
	}
	if cfg.RateLimitRPS != 100 {
		t.Errorf("expected default rate limit 100 rps, got %v", cfg.RateLimitRPS)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("PORT", "9999")
	os.Setenv("SESSION_TTL_MINUTES", "5")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("SESSION_TTL_MINUTES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.SessionTTL() != 5*time.Minute {
		t.Errorf("expected session TTL 5m, got %v", cfg.SessionTTL())
	}
}

func TestConfig_Validate(t *testing.T) {
	c := &Config{Port: "8000", RateLimitRPS: 100, RateLimitBurst: 200, SessionTTLMinutes: 30}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	c.RateLimitRPS = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero rate limit")
	}

	c.RateLimitRPS = 100
	c.SessionTTLMinutes = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero session TTL")
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
