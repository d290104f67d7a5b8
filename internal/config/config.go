// Package config loads the client configuration from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Every field has a workable
// default, so running without a config file is fine.
type Config struct {
	APIURL            string   `yaml:"apiURL"`
	LogLevel          string   `yaml:"logLevel"`
	RequestTimeout    string   `yaml:"requestTimeout"`
	PageLimit         int      `yaml:"pageLimit"`
	BulkConcurrency   int      `yaml:"bulkConcurrency"`
	TokenStore        string   `yaml:"tokenStore"` // file, redis or memory
	TokenPath         string   `yaml:"tokenPath"`
	RedisAddr         string   `yaml:"redisAddr"`
	RedisPassword     string   `yaml:"redisPassword"`
	DownloadDir       string   `yaml:"downloadDir"`
	MaxUploadBytes    int64    `yaml:"maxUploadBytes"`
	AllowedExtensions []string `yaml:"allowedExtensions"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "erepo", "config.yaml")
}

// Load reads config from path. A missing file at the default location
// yields the defaults; an explicitly requested file must exist.
func Load(path string) (Config, error) {
	cfg := defaults()
	requested := path != ""
	if !requested {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !requested {
			applyEnv(&cfg)
			return cfg, validate(cfg)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	return cfg, validate(cfg)
}

func defaults() Config {
	return Config{
		APIURL:            "http://localhost:8080",
		LogLevel:          "info",
		RequestTimeout:    "10s",
		PageLimit:         12,
		BulkConcurrency:   1,
		TokenStore:        "file",
		DownloadDir:       ".",
		MaxUploadBytes:    32 << 20,
		AllowedExtensions: []string{".pdf", ".doc", ".docx"},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("EREPO_API_URL"); v != "" {
		cfg.APIURL = strings.TrimSpace(v)
	}
	// Kept for parity with the web front end's environment contract.
	if v := os.Getenv("NEXT_PUBLIC_API_URL"); v != "" && os.Getenv("EREPO_API_URL") == "" {
		cfg.APIURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("EREPO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("EREPO_TOKEN_STORE"); v != "" {
		cfg.TokenStore = strings.TrimSpace(v)
	}
	if v := os.Getenv("EREPO_TOKEN_PATH"); v != "" {
		cfg.TokenPath = strings.TrimSpace(v)
	}
	if v := os.Getenv("EREPO_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("EREPO_PAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.PageLimit = n
		}
	}
	if v := os.Getenv("EREPO_BULK_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.BulkConcurrency = n
		}
	}
	if v := os.Getenv("EREPO_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.APIURL) == "" {
		return errors.New("config: apiURL is required")
	}
	switch cfg.TokenStore {
	case "file", "memory":
	case "redis":
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return errors.New("config: redisAddr is required for the redis token store")
		}
	default:
		return fmt.Errorf("config: unknown token store %q (want file, redis or memory)", cfg.TokenStore)
	}
	if cfg.PageLimit < 1 {
		return errors.New("config: pageLimit must be >= 1")
	}
	if cfg.BulkConcurrency < 1 {
		return errors.New("config: bulkConcurrency must be >= 1")
	}
	if _, err := cfg.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses the request timeout duration.
func (c Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid requestTimeout: %w", err)
	}
	return d, nil
}
