package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds server configuration loaded from environment variables.
type Config struct {
	Port                string
	AllowOrigins        string
	MatchmakingInterval time.Duration
	WSBufferSize        int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:                envOrDefault("PORT", "3000"),
		AllowOrigins:        envOrDefault("ALLOW_ORIGINS", "http://localhost:5173"),
		MatchmakingInterval: durationOrDefault("MATCHMAKING_INTERVAL", time.Second),
		WSBufferSize:        intOrDefault("WS_BUFFER_SIZE", 1024),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func intOrDefault(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
