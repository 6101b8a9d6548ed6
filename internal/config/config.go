// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Data    DataConfig
	Server  ServerConfig
	Catalog CatalogConfig
	Images  ImagesConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds local storage configuration.
type DataConfig struct {
	// BasePath is the directory holding the sqlite database and the image cache.
	BasePath string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// CatalogConfig holds remote genre catalog configuration.
type CatalogConfig struct {
	// BaseURL is the root of the remote genre collection API.
	BaseURL string
	// SyncInterval is how often the background job triggers reconciliation (default: 6h).
	SyncInterval time.Duration
	// MinUpdateInterval is the soft rate limit between actual remote fetches (default: 24h).
	MinUpdateInterval time.Duration
}

// ImagesConfig holds image cache configuration.
type ImagesConfig struct {
	// CachePath is the blob directory (default: {data}/images).
	CachePath string
	// MemoryCapacity is the in-memory LRU tier size in entries (default: 100).
	MemoryCapacity int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for local data storage")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	catalogURL := flag.String("catalog-url", "", "Base URL of the remote genre catalog")
	syncInterval := flag.String("genre-sync-interval", "", "Background genre sync trigger interval (default: 6h)")
	minUpdateInterval := flag.String("genre-min-update-interval", "", "Minimum interval between remote genre fetches (default: 24h)")

	imageCachePath := flag.String("image-cache-path", "", "Path for the image blob cache")
	imageMemCapacity := flag.String("image-memory-capacity", "", "In-memory image cache capacity in entries (default: 100)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Catalog: CatalogConfig{
			BaseURL: getConfigValue(*catalogURL, "CATALOG_URL", ""),
		},
		Images: ImagesConfig{
			CachePath:      getConfigValue(*imageCachePath, "IMAGE_CACHE_PATH", ""),
			MemoryCapacity: getIntConfigValue(*imageMemCapacity, "IMAGE_MEMORY_CAPACITY", 100),
		},
	}

	// Parse durations.
	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid read timeout: %w", err)
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid write timeout: %w", err)
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid idle timeout: %w", err)
	}
	if cfg.Catalog.SyncInterval, err = parseDurationValue(*syncInterval, "GENRE_SYNC_INTERVAL", "6h"); err != nil {
		return nil, fmt.Errorf("invalid genre sync interval: %w", err)
	}
	if cfg.Catalog.MinUpdateInterval, err = parseDurationValue(*minUpdateInterval, "GENRE_MIN_UPDATE_INTERVAL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid genre min update interval: %w", err)
	}

	// Expand and validate the data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Expand the image cache path (defaults to {data}/images).
	if err := cfg.expandImageCachePath(); err != nil {
		return nil, fmt.Errorf("invalid image cache path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Images.MemoryCapacity <= 0 {
		return fmt.Errorf("image memory capacity must be positive, got %d", c.Images.MemoryCapacity)
	}

	if c.Catalog.MinUpdateInterval <= 0 {
		return errors.New("genre min update interval must be positive")
	}

	// CatalogURL can be empty - the sync engine then runs without a remote
	// source, every reconciliation is a skipped no-op, and the diary works
	// against the already-mirrored genre table.

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "BookDiary", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandImageCachePath expands ~ and makes the path absolute.
// Defaults to {data}/images if not specified.
func (c *Config) expandImageCachePath() error {
	defaultPath := filepath.Join(c.Data.BasePath, "images")

	expanded, err := expandPath(c.Images.CachePath, defaultPath)
	if err != nil {
		return err
	}
	c.Images.CachePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// parseDurationValue resolves a duration with the usual flag/env/default precedence.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
