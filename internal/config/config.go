package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr                   string
	RedisURL               string
	SessionCheckInterval   time.Duration
	SessionDurationMinutes int
	RepositoryLatency      time.Duration
}

func Load() Config {
	return Config{
		Addr:                   getenv("POLLVIEW_ADDR", "0.0.0.0:8080"),
		RedisURL:               getenv("REDIS_URL", ""),
		SessionCheckInterval:   time.Duration(getenvInt("SESSION_CHECK_INTERVAL_SECONDS", 30)) * time.Second,
		SessionDurationMinutes: getenvInt("SESSION_DURATION_MINUTES", 5),
		RepositoryLatency:      time.Duration(getenvInt("REPOSITORY_LATENCY_MS", 0)) * time.Millisecond,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
