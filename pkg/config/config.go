// Package config loads dayslot settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string `yaml:"app_env"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Scheduling
	WorkStart      string `yaml:"work_start"`
	WorkEnd        string `yaml:"work_end"`
	SlotStep       int    `yaml:"slot_step"`
	MaxSuggestions int    `yaml:"max_suggestions"`
	Detection      string `yaml:"detection"`

	// Metrics
	MetricsAddr     string        `yaml:"metrics_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AppEnv:          "development",
		LogLevel:        "warn",
		LogFormat:       "text",
		WorkStart:       "08:00",
		WorkEnd:         "18:00",
		SlotStep:        30,
		MaxSuggestions:  3,
		Detection:       "adjacent",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from the YAML file at path, then applies
// environment overrides. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	c.WorkStart = getEnv("DAYSLOT_WORK_START", c.WorkStart)
	c.WorkEnd = getEnv("DAYSLOT_WORK_END", c.WorkEnd)
	c.SlotStep = getIntEnv("DAYSLOT_SLOT_STEP", c.SlotStep)
	c.MaxSuggestions = getIntEnv("DAYSLOT_MAX_SUGGESTIONS", c.MaxSuggestions)
	c.Detection = getEnv("DAYSLOT_DETECTION", c.Detection)

	c.MetricsAddr = getEnv("METRICS_ADDR", c.MetricsAddr)
	c.ShutdownTimeout = getDurationEnv("DAYSLOT_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
