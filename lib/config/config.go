// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/pvzportable/pvzp-save/lib/document"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "PVZP_SAVE_CONFIG"

// Config holds the defaults the CLI applies before its flags.
type Config struct {
	// Export configures the export command.
	Export ExportConfig `yaml:"export"`

	// Import configures the import command.
	Import ImportConfig `yaml:"import"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// ExportConfig configures document output.
type ExportConfig struct {
	// Format is the serialization: yaml or cbor.
	// Default: yaml
	Format string `yaml:"format"`

	// Compression wraps the serialized document: none, zstd, or lz4.
	// Default: none
	Compression string `yaml:"compression"`

	// ExpandWaves writes the wave roster as lists of zombie names.
	ExpandWaves bool `yaml:"expand_waves"`
}

// ImportConfig configures save output.
type ImportConfig struct {
	// DropUnmappable drops document keys that map to no field, with a
	// warning, instead of failing.
	DropUnmappable bool `yaml:"drop_unmappable"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Format:      document.FormatYAML.String(),
			Compression: document.CompressionNone.String(),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load loads the file named by flagPath, or by PVZP_SAVE_CONFIG when
// flagPath is empty. With neither set it returns [Default]. No other
// location is searched.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. Keys the
// file omits keep their defaults. Files ending in .json or .jsonc may
// carry comments and trailing commas.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every enumerated value and reports all problems.
func (c *Config) Validate() error {
	var errs []error
	if _, err := document.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	if _, err := document.ParseCompression(c.Export.Compression); err != nil {
		errs = append(errs, fmt.Errorf("export.compression: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
