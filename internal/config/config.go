package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// ErrMissingSecret is returned when no token signing secret is configured.
var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string // Empty means the in-memory store
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	LogLevel       string
	CatalogPath    string // Optional YAML catalog; built-in catalog when empty

	TTSCommand      string
	STTCommand      string
	STTListenWindow time.Duration

	DigestSchedule string // Cron spec for the analytics digest
	StatsInterval  time.Duration
}

// Load reads an optional .env file, then environment variables, then command-line flags.
// Flags take precedence over the environment.
func Load(args []string) (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	window, err := time.ParseDuration(getEnv("STT_LISTEN_WINDOW", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STT_LISTEN_WINDOW: %w", err)
	}
	statsInterval, err := time.ParseDuration(getEnv("STATS_INTERVAL", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_INTERVAL: %w", err)
	}

	cfg := &Config{}
	fs := pflag.NewFlagSet("lexilearn", pflag.ContinueOnError)
	fs.IntVar(&cfg.ServerPort, "port", port, "HTTP listen port")
	fs.StringVar(&cfg.DatabasePath, "db", getEnv("DATABASE_PATH", ""), "SQLite database path (in-memory store when empty)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", getEnv("JWT_SECRET", ""), "session token signing secret")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", ttl, "session token lifetime")
	fs.StringSliceVar(&cfg.AllowedOrigins, "cors-origins", splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")), "allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "log level")
	fs.StringVar(&cfg.CatalogPath, "catalog", getEnv("CATALOG_PATH", ""), "YAML content catalog path")
	fs.StringVar(&cfg.TTSCommand, "tts-command", getEnv("TTS_COMMAND", "espeak"), "text-to-speech command")
	fs.StringVar(&cfg.STTCommand, "stt-command", getEnv("STT_COMMAND", ""), "speech-to-text capture command")
	fs.DurationVar(&cfg.STTListenWindow, "stt-window", window, "maximum speech capture window")
	fs.StringVar(&cfg.DigestSchedule, "digest-schedule", getEnv("ANALYTICS_DIGEST_SCHEDULE", "@hourly"), "cron spec for the analytics digest")
	fs.DurationVar(&cfg.StatsInterval, "stats-interval", statsInterval, "host stats sampling interval")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
