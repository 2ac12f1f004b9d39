// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// MalformedInputPolicy decides what happens after a line that is not a JSON
// object: keep reading or abort the whole session.
type MalformedInputPolicy string

const (
	// ReportAndContinue emits an error response and keeps reading. Default.
	ReportAndContinue MalformedInputPolicy = "reportAndContinue"
	// Terminate emits an error response, then aborts with a nonzero exit.
	Terminate MalformedInputPolicy = "terminate"
)

// CleanupPolicy decides whether cache entries staged for a run are removed
// once the case completes.
type CleanupPolicy string

const (
	// CleanupAlways removes staged entries on every exit path. Default.
	CleanupAlways CleanupPolicy = "always"
	// CleanupNever leaves staged entries behind. Safe only because cache
	// filenames are deterministic functions of the URI, so a stale entry
	// is either rewritten identically or ignored.
	CleanupNever CleanupPolicy = "never"
)

// SeqFallback selects the correlation identifier used when a request
// carries no seq of its own.
type SeqFallback string

const (
	// SeqFallbackLine derives the fallback from the input line number.
	// Deterministic, so orchestrator logs line up across reruns. Default.
	SeqFallbackLine SeqFallback = "line"
	// SeqFallbackSynthetic generates a fresh UUID per fallback.
	SeqFallbackSynthetic SeqFallback = "synthetic"
)

// Config represents the harness configuration.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// HARNESS_CONFIG_FILE environment variable, with defaults applied for any
// missing values and HARNESS_* environment variables overriding file
// values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Engine selects the compiling engine: "santhosh" or "xeipuuv".
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty" env:"HARNESS_ENGINE"`
	// CacheDir is where registry documents are staged for the engine.
	CacheDir string `json:"cacheDir,omitempty" yaml:"cacheDir,omitempty" env:"HARNESS_CACHE_DIR"`
	// OnMalformedInput is the policy for lines that fail to parse.
	OnMalformedInput MalformedInputPolicy `json:"onMalformedInput,omitempty" yaml:"onMalformedInput,omitempty" env:"HARNESS_ON_MALFORMED_INPUT"`
	// CacheCleanup is the staged-entry lifecycle policy.
	CacheCleanup CleanupPolicy `json:"cacheCleanup,omitempty" yaml:"cacheCleanup,omitempty" env:"HARNESS_CACHE_CLEANUP"`
	// StrictProtocol makes start reject protocol versions other than 1.
	StrictProtocol bool `json:"strictProtocol" yaml:"strictProtocol" env:"HARNESS_STRICT_PROTOCOL"`
	// SeqFallback selects the correlation fallback: "line" or "synthetic".
	SeqFallback SeqFallback `json:"seqFallback,omitempty" yaml:"seqFallback,omitempty" env:"HARNESS_SEQ_FALLBACK"`
}

// DefaultConfig returns the configuration used when nothing is overridden:
// the santhosh engine, report-and-continue on malformed input, and cache
// cleanup after every case.
func DefaultConfig() Config {
	return Config{
		Engine:           "santhosh",
		CacheDir:         "schema-cache-by-hashed-urls",
		OnMalformedInput: ReportAndContinue,
		CacheCleanup:     CleanupAlways,
		StrictProtocol:   true,
		SeqFallback:      SeqFallbackLine,
	}
}

// detectConfigFormat determines the configuration file format based on file
// extension, using case-insensitive matching for cross-platform behavior.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified
// format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// LoadConfig builds the effective configuration: defaults, overlaid by the
// config file at configPath (or $HARNESS_CONFIG_FILE when empty), overlaid
// by HARNESS_* environment variables. The result is validated.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = os.Getenv("HARNESS_CONFIG_FILE")
	}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return config, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := unmarshalConfig(data, &config, detectConfigFormat(configPath)); err != nil {
			return config, err
		}
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate rejects unknown enum values and empty required fields.
func (c *Config) Validate() error {
	switch c.OnMalformedInput {
	case ReportAndContinue, Terminate:
	default:
		return fmt.Errorf("invalid onMalformedInput policy %q (want %q or %q)",
			c.OnMalformedInput, ReportAndContinue, Terminate)
	}

	switch c.CacheCleanup {
	case CleanupAlways, CleanupNever:
	default:
		return fmt.Errorf("invalid cacheCleanup policy %q (want %q or %q)",
			c.CacheCleanup, CleanupAlways, CleanupNever)
	}

	switch c.SeqFallback {
	case SeqFallbackLine, SeqFallbackSynthetic:
	default:
		return fmt.Errorf("invalid seqFallback %q (want %q or %q)",
			c.SeqFallback, SeqFallbackLine, SeqFallbackSynthetic)
	}

	if c.CacheDir == "" {
		return fmt.Errorf("cacheDir must not be empty")
	}
	return nil
}
