package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

type Config struct {
	Port       string
	APIURL     string
	APITimeout time.Duration
	Env        string
	LogLevel   string
	Location   *time.Location

	SessionStore         string
	DatabaseURL          string
	RedisURL             string
	SessionTTL           time.Duration
	SessionSweepSchedule string

	LivePollInterval time.Duration

	SendGrid SendGridConfig
	Twilio   TwilioConfig
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

func (c SendGridConfig) Enabled() bool {
	return c.APIKey != "" && c.FromEmail != ""
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:                 get("PORT", "3000"),
		APIURL:               strings.TrimRight(get("API_URL", "http://localhost:5000"), "/"),
		Env:                  get("APP_ENV", "development"),
		LogLevel:             get("LOG_LEVEL", "info"),
		SessionStore:         strings.ToLower(get("SESSION_STORE", SessionStoreMemory)),
		DatabaseURL:          get("DATABASE_URL", ""),
		RedisURL:             get("REDIS_URL", "redis://localhost:6379/0"),
		SessionSweepSchedule: get("SESSION_SWEEP_SCHEDULE", "@every 5m"),
		SendGrid: SendGridConfig{
			APIKey:    get("SENDGRID_API_KEY", ""),
			FromEmail: get("SENDGRID_FROM_EMAIL", ""),
			FromName:  get("SENDGRID_FROM_NAME", "Smart Parking"),
		},
		Twilio: TwilioConfig{
			AccountSID: get("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  get("TWILIO_AUTH_TOKEN", ""),
			FromNumber: get("TWILIO_FROM_NUMBER", ""),
		},
	}

	var err error
	if cfg.APITimeout, err = parseDuration("API_TIMEOUT", get("API_TIMEOUT", "15s")); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", get("SESSION_TTL", "30m")); err != nil {
		return nil, err
	}
	if cfg.LivePollInterval, err = parseDuration("LIVE_POLL_INTERVAL", get("LIVE_POLL_INTERVAL", "5s")); err != nil {
		return nil, err
	}

	tz := get("TIMEZONE", "Asia/Kolkata")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		// tzdata may be missing in slim images
		cfg.Location = time.FixedZone("IST", 5*60*60+30*60)
	}

	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	case SessionStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL not set (required by SESSION_STORE=postgres)")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}
