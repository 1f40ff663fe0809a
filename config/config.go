package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all process-wide settings. It is loaded once at startup from
// the environment and treated as immutable afterwards; components receive it
// explicitly instead of reading env vars themselves.
type Config struct {
	// LINE Messaging API
	LineChannelAccessToken string
	LineChannelSecret      string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// Store
	DBPath string

	// Bot
	CommandPrefix    string
	DispatchInterval time.Duration

	// Ops API (disabled when AdminPassword is empty)
	AdminPassword string
	JWTSecret     string

	// Webhook rate limit, per sender
	WebhookRatePerMin int
	WebhookBurst      int

	// Server
	Port string
}

// Load reads the Config from the environment. Missing required variables are
// collected and reported together.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.LineChannelAccessToken = os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")
	if cfg.LineChannelAccessToken == "" {
		missing = append(missing, "LINE_CHANNEL_ACCESS_TOKEN")
	}

	cfg.LineChannelSecret = os.Getenv("LINE_CHANNEL_SECRET")
	if cfg.LineChannelSecret == "" {
		missing = append(missing, "LINE_CHANNEL_SECRET")
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.OpenAIModel = getEnvString("OPENAI_MODEL", "gpt-4o-mini")
	cfg.DBPath = getEnvString("DB_PATH", "./reminders.db")
	cfg.CommandPrefix = getEnvString("COMMAND_PREFIX", "!提醒")
	cfg.DispatchInterval = getEnvDuration("DISPATCH_INTERVAL", time.Minute)
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.WebhookRatePerMin = getEnvInt("WEBHOOK_RATE_PER_MIN", 60)
	cfg.WebhookBurst = getEnvInt("WEBHOOK_BURST", 20)
	cfg.Port = getEnvString("PORT", "8080")

	if cfg.AdminPassword != "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set when ADMIN_PASSWORD is set")
	}

	return cfg, nil
}

// AdminEnabled reports whether the ops API (scan trigger, admin listing,
// event feed) should be served.
func (c *Config) AdminEnabled() bool {
	return c.AdminPassword != ""
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
