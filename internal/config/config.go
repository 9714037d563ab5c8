package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds everything the client reads from the environment.
// The .env file itself is loaded by the caller (godotenv in cmd) before
// Load runs, so this package only ever looks at os.Getenv.
type Config struct {
	AppEnv   string
	LogLevel string

	// Base URL of the pharmacy REST backend, e.g. http://localhost:8080/api.
	APIBaseURL string

	// Path of the local state file (session token, user record, cart).
	StateFile string

	HTTPTimeout time.Duration
}

func Load() Config {
	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		APIBaseURL:  getEnv("PHARMACY_API_URL", "http://localhost:8080/api"),
		StateFile:   getEnv("PHARMACY_STATE_FILE", defaultStateFile()),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

// defaultStateFile places the state alongside the user's other dotfiles.
// Falls back to the working directory when the home dir is unknown.
func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pharmacli.db"
	}
	return filepath.Join(home, ".pharmacli.db")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
