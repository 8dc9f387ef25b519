// Package config loads server configuration from the environment, with a
// .env file as an optional local override.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything cmd/server needs to start.
type Config struct {
	Addr         string // HTTP listen address
	SnapshotPath string // JSON snapshot file; empty disables file persistence
	SQLitePath   string // SQLite snapshot database; empty disables it
	Scenario     string // seed scenario when no snapshot source is configured
	SaveOnExit   bool   // write the snapshot back on graceful shutdown
}

// Load reads the environment (after godotenv fills it from .env, if present).
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	return Config{
		Addr:         getEnv("BANK_ADDR", ":8080"),
		SnapshotPath: getEnv("BANK_SNAPSHOT", ""),
		SQLitePath:   getEnv("BANK_SQLITE", ""),
		Scenario:     getEnv("BANK_SCENARIO", "retail"),
		SaveOnExit:   getBoolEnv("BANK_SAVE_ON_EXIT", true),
	}
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
