// Package config assembles server configuration from the environment,
// the way kolabpad's cmd/server/main.go does (a typed Config struct
// filled by getEnv/getEnvInt helpers) — generalized to load a .env
// file first via github.com/joho/godotenv, the env-loading convention
// shared by segfal-realtime_whiteboard, apex-build-platform,
// yousefabdallah171-POSS, and zfogg-sidechain.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds server-wide settings.
type Config struct {
	Addr     string // HTTP listen address, e.g. ":8080"
	LogLevel string // "debug", "info", or "error"
}

// Load reads .env (if present) then the process environment.
func Load() Config {
	_ = godotenv.Load() // no .env file is not an error

	return Config{
		Addr:     getEnv("ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

