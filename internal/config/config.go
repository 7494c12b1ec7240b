// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatterm.
//
// Configuration file location:
//   - ~/.chatterm/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatterm/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatterm configuration.
type Config struct {
	// Backend connection
	API APIConfig `toml:"api" json:"api"`

	// Terminal UI
	UI UIConfig `toml:"ui" json:"ui"`

	// Logging
	Log LogConfig `toml:"log" json:"log"`

	// Development backend (chatterm serve)
	Server ServerConfig `toml:"server" json:"server"`
}

// APIConfig holds settings for talking to the chat backend.
type APIConfig struct {
	BaseURL        string   `toml:"base_url" json:"base_url" env:"CHATTERM_API_URL"`
	RequestTimeout Duration `toml:"request_timeout" json:"request_timeout" env:"CHATTERM_REQUEST_TIMEOUT"`
	HealthInterval Duration `toml:"health_interval" json:"health_interval" env:"CHATTERM_HEALTH_INTERVAL"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	MaxInput       int  `toml:"max_input" json:"max_input" env:"CHATTERM_MAX_INPUT"`
	Markdown       bool `toml:"markdown" json:"markdown" env:"CHATTERM_MARKDOWN"`
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps" env:"CHATTERM_SHOW_TIMESTAMPS"`

	// NotificationTTL auto-dismisses error notifications. Zero keeps them
	// until the user dismisses them.
	NotificationTTL Duration `toml:"notification_ttl" json:"notification_ttl" env:"CHATTERM_NOTIFICATION_TTL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level" env:"CHATTERM_LOG_LEVEL"`

	// File is the log destination for the TUI. Empty selects
	// ~/.chatterm/chatterm.log.
	File string `toml:"file" json:"file" env:"CHATTERM_LOG_FILE"`
}

// ServerConfig holds settings for the development backend.
type ServerConfig struct {
	Addr           string   `toml:"addr" json:"addr" env:"CHATTERM_SERVER_ADDR"`
	Responder      string   `toml:"responder" json:"responder" env:"CHATTERM_RESPONDER"`
	OllamaURL      string   `toml:"ollama_url" json:"ollama_url" env:"CHATTERM_OLLAMA_URL"`
	OllamaModel    string   `toml:"ollama_model" json:"ollama_model" env:"CHATTERM_OLLAMA_MODEL"`
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins" env:"CHATTERM_ALLOWED_ORIGINS" envSeparator:","`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultBaseURL         = "http://localhost:8000"
	DefaultRequestTimeout  = 60 * time.Second
	DefaultHealthInterval  = 30 * time.Second
	DefaultMaxInput        = 2000
	DefaultLogLevel        = "info"
	DefaultServerAddr      = "127.0.0.1:8000"
	DefaultResponder       = "echo"
	DefaultOllamaURL       = "http://127.0.0.1:11434"
	DefaultOllamaModel     = "llama3.2"
	DefaultNotificationTTL = 0
)

// Responders available to the development backend.
var validResponders = map[string]bool{"echo": true, "ollama": true}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: Duration(DefaultRequestTimeout),
			HealthInterval: Duration(DefaultHealthInterval),
		},
		UI: UIConfig{
			MaxInput:        DefaultMaxInput,
			Markdown:        true,
			ShowTimestamps:  true,
			NotificationTTL: DefaultNotificationTTL,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			Responder:      DefaultResponder,
			OllamaURL:      DefaultOllamaURL,
			OllamaModel:    DefaultOllamaModel,
			AllowedOrigins: []string{"*"},
		},
	}
}

// SetDefaults fills any zero values left after loading.
func (c *Config) SetDefaults() {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.RequestTimeout == 0 {
		c.API.RequestTimeout = d.API.RequestTimeout
	}
	if c.API.HealthInterval == 0 {
		c.API.HealthInterval = d.API.HealthInterval
	}
	if c.UI.MaxInput == 0 {
		c.UI.MaxInput = d.UI.MaxInput
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.Responder == "" {
		c.Server.Responder = d.Server.Responder
	}
	if c.Server.OllamaURL == "" {
		c.Server.OllamaURL = d.Server.OllamaURL
	}
	if c.Server.OllamaModel == "" {
		c.Server.OllamaModel = d.Server.OllamaModel
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chatterm configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatterm"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}


// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads KEY=VALUE pairs from .env files into the process
// environment. Missing files are ignored. Variables already set in the
// environment win over the file.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load loads configuration from ~/.chatterm/config.toml.
// Falls back to defaults when the file does not exist.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		path = ""
	}
	return LoadFromPath(path)
}

// LoadTOML decodes a TOML file on top of cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides overlays CHATTERM_* environment variables.
// Variables that are not set leave the current value alone.
func (c *Config) ApplyEnvOverrides() error {
	return env.Parse(c)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatterm configuration file\n")
	buf.WriteString("# Durations use Go syntax: 30s, 1m, 1h30m\n")
	buf.WriteString("\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.WriteFileAtomic(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err.Error()
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if msg := validateHTTPURL(c.API.BaseURL); msg != "" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: msg})
	}
	if c.API.RequestTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "api.request_timeout", Message: "must be positive"})
	}
	if c.API.HealthInterval.Std() < time.Second {
		errs = append(errs, ValidationError{Field: "api.health_interval", Message: "must be at least 1s"})
	}

	if c.UI.MaxInput < 1 || c.UI.MaxInput > 100000 {
		errs = append(errs, ValidationError{
			Field:   "ui.max_input",
			Message: fmt.Sprintf("must be between 1 and 100000, got %d", c.UI.MaxInput),
		})
	}
	if c.UI.NotificationTTL < 0 {
		errs = append(errs, ValidationError{Field: "ui.notification_ttl", Message: "cannot be negative"})
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}

	if !validResponders[strings.ToLower(c.Server.Responder)] {
		errs = append(errs, ValidationError{
			Field:   "server.responder",
			Message: fmt.Sprintf("invalid responder '%s', must be one of: echo, ollama", c.Server.Responder),
		})
	}
	if msg := validateHTTPURL(c.Server.OllamaURL); msg != "" {
		errs = append(errs, ValidationError{Field: "server.ollama_url", Message: msg})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return "missing host"
	}
	return ""
}

// =============================================================================
// GET / SET
// =============================================================================

// Keys lists the settable configuration keys in dot notation.
func Keys() []string {
	return []string{
		"api.base_url",
		"api.request_timeout",
		"api.health_interval",
		"ui.max_input",
		"ui.markdown",
		"ui.show_timestamps",
		"ui.notification_ttl",
		"log.level",
		"log.file",
		"server.addr",
		"server.responder",
		"server.ollama_url",
		"server.ollama_model",
	}
}

// Set assigns a value given as a string to the key in dot notation.
// The result is not validated; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.request_timeout":
		return c.API.RequestTimeout.UnmarshalText([]byte(value))
	case "api.health_interval":
		return c.API.HealthInterval.UnmarshalText([]byte(value))
	case "ui.max_input":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %v", err)
		}
		c.UI.MaxInput = n
	case "ui.markdown":
		return setBool(&c.UI.Markdown, value)
	case "ui.show_timestamps":
		return setBool(&c.UI.ShowTimestamps, value)
	case "ui.notification_ttl":
		return c.UI.NotificationTTL.UnmarshalText([]byte(value))
	case "log.level":
		c.Log.Level = value
	case "log.file":
		c.Log.File = value
	case "server.addr":
		c.Server.Addr = value
	case "server.responder":
		c.Server.Responder = value
	case "server.ollama_url":
		c.Server.OllamaURL = value
	case "server.ollama_model":
		c.Server.OllamaModel = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func setBool(dst *bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean value: %v", err)
	}
	*dst = b
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
