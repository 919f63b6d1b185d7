package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "user-secret")
	t.Setenv("ADMIN_JWT_SECRET", "admin-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTSecret != "user-secret" || cfg.AdminJWTSecret != "admin-secret" {
		t.Fatalf("secrets not carried: %q / %q", cfg.JWTSecret, cfg.AdminJWTSecret)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default token TTL 24h, got %v", cfg.TokenTTL)
	}
	if cfg.Abuse.RateThreshold != 50 {
		t.Fatalf("expected default rate threshold 50, got %d", cfg.Abuse.RateThreshold)
	}
}

// The user and admin token domains are only independent if their signing
// secrets differ. A shared secret must fail startup.
func TestLoad_SharedSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "shared")
	t.Setenv("ADMIN_JWT_SECRET", "shared")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error for identical signing secrets")
	}
}
