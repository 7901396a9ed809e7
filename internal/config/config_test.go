package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.HTTP.Port)
	}
	if cfg.Mongo.Database != "Cakeries_bd" {
		t.Errorf("expected default database Cakeries_bd, got %s", cfg.Mongo.Database)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Payment.Currency != "usd" {
		t.Errorf("expected usd currency, got %s", cfg.Payment.Currency)
	}
	if cfg.Redis.Addr != "" || cfg.Rabbit.URL != "" {
		t.Error("expected redis and rabbit to be disabled by default")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when ACCESS_TOKEN_SECRET is empty")
	}
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero TOKEN_TTL")
	}
}
