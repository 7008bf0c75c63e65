package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// Config holds all runtime configuration for AdBrain.
type Config struct {
	Provider    string `yaml:"provider"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	DefaultMode string `yaml:"default_mode"`

	Verbose   bool   `yaml:"verbose"`
	LogFormat string `yaml:"log_format"`
	Plain     bool   `yaml:"plain"`
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderOpenAI,
		LogFormat: LogFormatText,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.DefaultMode = strings.TrimSpace(cfg.DefaultMode)
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatText
	}
	if cfg.Model == "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.Model = DefaultOpenAIModel
		case ProviderGemini:
			cfg.Model = DefaultGeminiModel
		}
	}
	return cfg
}

// Validate reports settings that can never work. A missing API key is not
// reported here; it surfaces on the first completion call.
func Validate(cfg Config) error {
	switch cfg.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", cfg.Provider, ProviderOpenAI, ProviderGemini)
	}
	switch cfg.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (want %s or %s)", cfg.LogFormat, LogFormatText, LogFormatJSON)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto base. Keys absent from the file
// keep their base values. A missing file is not an error when optional is set.
func LoadFile(base Config, path string, optional bool) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Env is the subset of the process environment AdBrain reads.
type Env func(key string) string

// ApplyEnv overlays environment variables onto cfg. The API key variable is
// chosen by the provider in effect after ADBRAIN_PROVIDER is applied.
func ApplyEnv(cfg Config, getenv Env) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "ADBRAIN_PROVIDER")
	set(&cfg.DefaultMode, "ADBRAIN_MODE")

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini:
		set(&cfg.APIKey, "GEMINI_API_KEY")
		set(&cfg.Model, "GEMINI_MODEL")
	default:
		set(&cfg.APIKey, "OPENAI_API_KEY")
		set(&cfg.BaseURL, "OPENAI_BASE_URL")
		set(&cfg.Model, "OPENAI_MODEL")
	}
	return cfg
}
