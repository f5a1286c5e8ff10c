package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DatabaseURL:        "postgres://localhost/hrms",
		JWTSecret:          "test-secret",
		Environment:        "development",
		Timezone:           "UTC",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
		SessionTTL:         8 * time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing database", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = " " }, wantErr: true},
		{name: "short secret in production", mutate: func(c *Config) { c.Environment = "production" }, wantErr: true},
		{name: "unknown timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "tiny body limit", mutate: func(c *Config) { c.MaxBodyBytes = 10 }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = 0 }, wantErr: true},
		{name: "short session", mutate: func(c *Config) { c.SessionTTL = time.Second }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Local"
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected local zone, got %v (%v)", loc, err)
	}

	cfg.Timezone = "Asia/Kolkata"
	loc, err = cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "Asia/Kolkata" {
		t.Fatalf("unexpected zone %s", loc)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "15")
	t.Setenv("SESSION_TTL", "2h")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr override, got %s", cfg.Addr)
	}
	if cfg.RateLimitPerMinute != 15 {
		t.Fatalf("expected rate limit 15, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %s", cfg.SessionTTL)
	}
	if !cfg.AllowSelfSignup {
		t.Fatal("expected self signup enabled by default")
	}
	if cfg.TrustProxyHeaders {
		t.Fatal("expected proxy headers to be untrusted by default")
	}

	t.Setenv("TRUST_PROXY_HEADERS", "true")
	if !Load().TrustProxyHeaders {
		t.Fatal("expected TRUST_PROXY_HEADERS to enable forwarded addresses")
	}
}
