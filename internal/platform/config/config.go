package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	FrontendDir        string
	Environment        string
	Timezone           string
	LogLevel           string
	SeedHRName         string
	SeedHREmail        string
	SeedHRPassword     string
	AllowSelfSignup    bool
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	SessionTTL         time.Duration
	MetricsEnabled     bool
	TrustProxyHeaders  bool
}

var defaults = map[string]any{
	"APP_ADDR":              ":8080",
	"DATABASE_URL":          "",
	"REDIS_URL":             "",
	"JWT_SECRET":            "",
	"FRONTEND_DIR":          "",
	"APP_ENV":               "development",
	"APP_TIMEZONE":          "Local",
	"LOG_LEVEL":             "info",
	"SEED_HR_NAME":          "HR Admin",
	"SEED_HR_EMAIL":         "",
	"SEED_HR_PASSWORD":      "",
	"ALLOW_SELF_SIGNUP":     true,
	"RUN_MIGRATIONS":        true,
	"RUN_SEED":              true,
	"MAX_BODY_BYTES":        1048576,
	"RATE_LIMIT_PER_MINUTE": 60,
	"SESSION_TTL":           "8h",
	"METRICS_ENABLED":       true,
	"TRUST_PROXY_HEADERS":   false,
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return Config{
		Addr:               v.GetString("APP_ADDR"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisURL:           v.GetString("REDIS_URL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		FrontendDir:        v.GetString("FRONTEND_DIR"),
		Environment:        v.GetString("APP_ENV"),
		Timezone:           v.GetString("APP_TIMEZONE"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		SeedHRName:         v.GetString("SEED_HR_NAME"),
		SeedHREmail:        v.GetString("SEED_HR_EMAIL"),
		SeedHRPassword:     v.GetString("SEED_HR_PASSWORD"),
		AllowSelfSignup:    v.GetBool("ALLOW_SELF_SIGNUP"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		RunSeed:            v.GetBool("RUN_SEED"),
		MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		MetricsEnabled:     v.GetBool("METRICS_ENABLED"),
		TrustProxyHeaders:  v.GetBool("TRUST_PROXY_HEADERS"),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
		if c.RunSeed && c.SeedHREmail != "" && strings.TrimSpace(c.SeedHRPassword) == "" {
			return fmt.Errorf("SEED_HR_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least one minute")
	}
	return nil
}

// Location resolves the zone used to decide which calendar day "today" is.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
