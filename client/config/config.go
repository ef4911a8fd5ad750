// Package config loads the terminal client's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingEnv = errors.New("missing required environment variable")

type Config struct {
	APIURL      string
	APIKey      string
	SessionFile string
	ReportDir   string
	LogFile     string
	LogLevel    string
}

// Load reads .env (if present) and the ASSETTRACK_* variables. The API URL
// and anonymous key are required.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	dir = filepath.Join(dir, "assettrack")

	cfg := &Config{
		APIURL:      strings.TrimRight(os.Getenv("ASSETTRACK_API_URL"), "/"),
		APIKey:      os.Getenv("ASSETTRACK_API_KEY"),
		SessionFile: getenv("ASSETTRACK_SESSION_FILE", filepath.Join(dir, "session.yaml")),
		ReportDir:   getenv("ASSETTRACK_REPORT_DIR", "."),
		LogFile:     getenv("ASSETTRACK_LOG_FILE", filepath.Join(dir, "assettrack.log")),
		LogLevel:    getenv("ASSETTRACK_LOG_LEVEL", "info"),
	}

	var missing []string
	if cfg.APIURL == "" {
		missing = append(missing, "ASSETTRACK_API_URL")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "ASSETTRACK_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
