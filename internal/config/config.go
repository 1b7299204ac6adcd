package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Re-homologation policies for incidents that are already resolved.
const (
	RehomologarAllow      = "allow"
	RehomologarReject     = "reject"
	RehomologarIdempotent = "idempotent"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NatsURL           string
	JWTSecret         string
	TokenTTL          time.Duration
	DashboardCacheTTL time.Duration
	SeedEnabled       bool
	SeedToken         string
	RehomologarPolicy string
	LoginRateLimit    int
	LoginRateWindow   time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GVC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GV Classroom API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "168h")
	v.SetDefault("dashboard.cache_ttl", "1m")
	v.SetDefault("homologation.repeat_policy", RehomologarAllow)
	v.SetDefault("login.rate_limit", 10)
	v.SetDefault("login.rate_window", "1m")

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("login.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid login rate window: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NatsURL:           v.GetString("nats.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		TokenTTL:          tokenTTL,
		DashboardCacheTTL: cacheTTL,
		SeedEnabled:       v.GetBool("seed.enabled"),
		SeedToken:         v.GetString("seed.token"),
		RehomologarPolicy: strings.ToLower(v.GetString("homologation.repeat_policy")),
		LoginRateLimit:    v.GetInt("login.rate_limit"),
		LoginRateWindow:   rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.RehomologarPolicy {
	case RehomologarAllow, RehomologarReject, RehomologarIdempotent:
	default:
		return Config{}, fmt.Errorf("invalid homologation repeat policy %q", cfg.RehomologarPolicy)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 168 * time.Hour
	}

	return cfg, nil
}
