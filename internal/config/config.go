package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingToken = errors.New("PIPEDRIVE_API_TOKEN is not set")

type Config struct {
	ApiToken       string
	Domain         string
	BaseUrl        string
	RequestTimeout time.Duration
	LogDir         string
	DBPath         string
	HTTPAddr       string
}

// Load reads envFile (if it exists) into the process environment and builds
// the config from it. Variables already set in the environment win over the
// file, as godotenv.Load does.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	timeout, err := durationEnv("PIPEDRIVE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ApiToken:       os.Getenv("PIPEDRIVE_API_TOKEN"),
		Domain:         stringEnv("PIPEDRIVE_DOMAIN", "nettbureaucase"),
		BaseUrl:        os.Getenv("PIPEDRIVE_BASE_URL"),
		RequestTimeout: timeout,
		LogDir:         stringEnv("LOG_DIR", "logs"),
		DBPath:         stringEnv("DB_PATH", "./leads.db"),
		HTTPAddr:       stringEnv("HTTP_ADDR", ":8080"),
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ApiToken == "" {
		return ErrMissingToken
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
