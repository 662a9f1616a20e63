package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       string
	LogToFile      bool
	SessionTTL     time.Duration
	MaxUploadBytes int64
	CORSOrigins    []string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env variables: %w", err)
	}

	cfg := Config{
		Port:        getenv("APP_PORT", "8080"),
		Env:         strings.ToLower(getenv("APP_ENV", "development")),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "debug")),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "*"), ","),
	}

	logToFile, err := strconv.ParseBool(getenv("LOG_TO_FILE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_TO_FILE: %w", err)
	}
	cfg.LogToFile = logToFile

	ttlHours, err := strconv.Atoi(getenv("SESSION_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TTL_HOURS: %q", os.Getenv("SESSION_TTL_HOURS"))
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	maxUploadMB, err := strconv.Atoi(getenv("MAX_UPLOAD_MB", "10"))
	if err != nil || maxUploadMB <= 0 {
		return Config{}, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) << 20

	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
