package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override flag defaults.
const (
	EnvConfig    = "GALAXY_CONFIG"
	EnvSeed      = "GALAXY_SEED"
	EnvOutputDir = "GALAXY_OUTPUT_DIR"
)

// LoadEnv reads a .env file from the working directory into the process
// environment. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment variables")
	}
}

// GetEnv returns the value of key, or fallback if unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt64 returns key parsed as an integer, or fallback if unset or
// malformed.
func GetEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("ignoring malformed environment variable", "key", key, "value", v)
		return fallback
	}
	return n
}
