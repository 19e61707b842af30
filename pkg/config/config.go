// Package config loads and validates DraftShield configuration from a YAML
// file merged over builtin defaults, with environment expansion.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the YAML file expected inside the config directory.
const ConfigFileName = "draftshield.yaml"

// Config is the fully merged, validated runtime configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Redaction  RedactionConfig  `yaml:"redaction"`
	Ingest     IngestConfig     `yaml:"ingest"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string `yaml:"port"`
	ShutdownTimeout string `yaml:"shutdown_timeout"` // Parsed to time.Duration
}

// GenerationConfig holds settings for the external generation service.
// The API key itself is never placed in YAML; APIKeyEnv names the
// environment variable that carries it.
type GenerationConfig struct {
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url,omitempty"` // OpenAI-compatible gateway override
	APIKeyEnv      string  `yaml:"api_key_env"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float32 `yaml:"temperature"`
	RequestTimeout string  `yaml:"request_timeout"` // Parsed to time.Duration
}

// OutputLeakPolicy controls what DraftService does when the defense-in-depth
// scan finds a mapped value in generation-service output.
type OutputLeakPolicy string

const (
	// OutputLeakLog records the hit count on the draft and continues.
	OutputLeakLog OutputLeakPolicy = "log"
	// OutputLeakReject fails the draft instead of returning the content.
	OutputLeakReject OutputLeakPolicy = "reject"
)

// RedactionConfig holds leak-gate policy. The egress gate is always
// fail-closed; only the output-scan policy is configurable.
type RedactionConfig struct {
	OutputLeakPolicy OutputLeakPolicy `yaml:"output_leak_policy"`
}

// IngestConfig holds document intake limits.
type IngestConfig struct {
	MaxDocumentBytes int `yaml:"max_document_bytes"`
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
// Validation guarantees the value parses.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// RequestTimeoutDuration returns the parsed generation request timeout.
func (c *GenerationConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Initialize loads, merges, validates, and returns ready-to-use
// configuration. A missing config file is not an error: builtin defaults
// apply, with only the API key expected from the environment.
func Initialize(configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("Configuration initialized",
		"model", cfg.Generation.Model,
		"output_leak_policy", cfg.Redaction.OutputLeakPolicy,
		"max_document_bytes", cfg.Ingest.MaxDocumentBytes)

	return cfg, nil
}

func load(configDir string) (*Config, error) {
	cfg := Defaults()

	path := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Config file not found, using builtin defaults", "path", path)
			return cfg, nil
		}
		return nil, NewLoadError(ConfigFileName, err)
	}

	expanded := ExpandEnv(data)

	var user Config
	if err := yaml.Unmarshal(expanded, &user); err != nil {
		return nil, NewLoadError(ConfigFileName, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
	}

	// User values override builtin defaults; zero-valued user fields keep
	// the default.
	if err := mergo.Merge(cfg, user, mergo.WithOverride); err != nil {
		return nil, NewLoadError(ConfigFileName, err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return NewValidationError("server", "port", ErrMissingRequiredField)
	}
	if _, err := time.ParseDuration(cfg.Server.ShutdownTimeout); err != nil {
		return NewValidationError("server", "shutdown_timeout", ErrInvalidValue)
	}
	if cfg.Generation.Model == "" {
		return NewValidationError("generation", "model", ErrMissingRequiredField)
	}
	if cfg.Generation.APIKeyEnv == "" {
		return NewValidationError("generation", "api_key_env", ErrMissingRequiredField)
	}
	if cfg.Generation.MaxTokens <= 0 {
		return NewValidationError("generation", "max_tokens", ErrInvalidValue)
	}
	if _, err := time.ParseDuration(cfg.Generation.RequestTimeout); err != nil {
		return NewValidationError("generation", "request_timeout", ErrInvalidValue)
	}
	switch cfg.Redaction.OutputLeakPolicy {
	case OutputLeakLog, OutputLeakReject:
	default:
		return NewValidationError("redaction", "output_leak_policy", ErrInvalidValue)
	}
	if cfg.Ingest.MaxDocumentBytes <= 0 {
		return NewValidationError("ingest", "max_document_bytes", ErrInvalidValue)
	}
	return nil
}
