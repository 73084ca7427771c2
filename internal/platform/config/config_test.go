package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr default = %q", cfg.Addr)
	}
	if cfg.DBMaxConns != 10 || cfg.DBMinConns != 2 {
		t.Fatalf("pool defaults = %d/%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Fatalf("session ttl default = %v", cfg.SessionTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadPoolOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")

	cfg := Load()
	if cfg.DBMaxConns != 25 || cfg.DBMinConns != 5 {
		t.Fatalf("pool overrides = %d/%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("DB_MAX_CONNS", "lots")

	cfg := Load()
	if cfg.DBMaxConns != 10 {
		t.Fatalf("expected fallback 10, got %d", cfg.DBMaxConns)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	base := Load()
	base.DatabaseURL = "postgres://localhost/test"

	if err := base.Validate(); err != nil {
		t.Fatalf("base config must validate: %v", err)
	}

	missing := base
	missing.DatabaseURL = ""
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}

	inverted := base
	inverted.DBMinConns = 20
	if err := inverted.Validate(); err == nil {
		t.Fatal("expected error for min conns above max")
	}

	zero := base
	zero.DBMaxConns = 0
	if err := zero.Validate(); err == nil {
		t.Fatal("expected error for zero max conns")
	}
}
