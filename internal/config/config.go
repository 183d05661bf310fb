package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"valorant-notifier/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	HDevAPIKey    string
	DiscordToken  string
	DBPath        string
	DefaultRegion string
	PollInterval  time.Duration
	StatusPort    string
	LogLevel      string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		HDevAPIKey:    getEnv("HDEV_API_KEY", ""),
		DiscordToken:  getEnv("DISCORD_BOT_TOKEN", ""),
		DBPath:        getEnv("DB_PATH", "valorant.db"),
		DefaultRegion: getEnv("REGION", "na"),
		PollInterval:  pollInterval(logger),
		StatusPort:    getEnv("STATUS_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.HDevAPIKey == "" {
		return nil, fmt.Errorf("HDEV_API_KEY is required")
	}
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("region", cfg.DefaultRegion).
		Dur("poll_interval", cfg.PollInterval).
		Str("status_port", cfg.StatusPort).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func pollInterval(logger zerolog.Logger) time.Duration {
	raw := getEnv("POLL_INTERVAL_MINUTES", "")
	if raw == "" {
		return constants.DefaultPollInterval
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn().Str("value", raw).Msg("invalid POLL_INTERVAL_MINUTES, using default")
		return constants.DefaultPollInterval
	}

	interval := time.Duration(minutes) * time.Minute
	if interval < constants.MinPollInterval {
		logger.Warn().Int("minutes", minutes).Msg("POLL_INTERVAL_MINUTES below minimum, clamping")
		return constants.MinPollInterval
	}
	return interval
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
