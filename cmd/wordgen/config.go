package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// Config holds the defaults used by every command. Command-line flags that
// are set explicitly take precedence over these values.
type Config struct {
	LogLevel     string `json:"log_level"`
	DictFile     string `json:"dict_file"`
	Depth        int    `json:"depth"`
	Count        int    `json:"count"`
	DatabasePath string `json:"database_path"`
	ModelName    string `json:"model_name"`
	Format       string `json:"format"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DictFile:     "default.dict",
		Depth:        2,
		Count:        1,
		DatabasePath: "",
		ModelName:    "default",
		Format:       "word: {{.Word}}",
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// Values missing from the file keep their defaults, and a missing file
// yields the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveConfig writes config to path, replacing any existing file atomically.
func SaveConfig(path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// parseLogLevel maps a config log level to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
