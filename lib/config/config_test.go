// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Export.Format != "yaml" || cfg.Export.Compression != "none" || cfg.Export.ExpandWaves {
		t.Errorf("export defaults = %+v", cfg.Export)
	}
	if cfg.Import.DropUnmappable {
		t.Error("drop_unmappable should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate(): %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load with nothing set = %+v, want defaults", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeConfig(t, "pvzp-save.yaml", "export:\n  format: cbor\n")
	t.Setenv(EnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Format != "cbor" {
		t.Errorf("export.format = %q, want cbor", cfg.Export.Format)
	}
	if cfg.Export.Compression != "none" {
		t.Errorf("unset export.compression = %q, want the default", cfg.Export.Compression)
	}
}

func TestFlagPathWinsOverEnvironment(t *testing.T) {
	t.Setenv(EnvVar, writeConfig(t, "env.yaml", "log:\n  level: error\n"))
	flagPath := writeConfig(t, "flag.yaml", "log:\n  level: debug\n")

	cfg, err := Load(flagPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel: %v", err)
	}
	if level != slog.LevelDebug {
		t.Errorf("level = %v, want debug from the flag's file", level)
	}
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "c.yaml", `
export:
  compression: zstd
  expand_waves: true
import:
  drop_unmappable: true
`},
		{"jsonc", "c.jsonc", `{
  // Compressed exports with expanded waves.
  "export": {"compression": "zstd", "expand_waves": true,},
  "import": {"drop_unmappable": true},
}`},
		{"json", "c.json", `{"export": {"compression": "zstd", "expand_waves": true}, "import": {"drop_unmappable": true}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, test.file, test.content))
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if cfg.Export.Compression != "zstd" || !cfg.Export.ExpandWaves || !cfg.Import.DropUnmappable {
				t.Errorf("config = %+v", cfg)
			}
			if cfg.Export.Format != "yaml" {
				t.Errorf("export.format = %q, want the default", cfg.Export.Format)
			}
		})
	}
}

func TestLoadFileEmpty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("LoadFile(empty): %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty file = %+v, want defaults", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "export:\n  fromat: cbor\n", "fromat"},
		{"bad format", "export:\n  format: toml\n", "export.format"},
		{"bad compression", "export:\n  compression: gzip\n", "export.compression"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"not yaml", "export: [\n", "parsing config"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, "bad.yaml", test.content))
			if err == nil {
				t.Fatal("LoadFile should fail")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %q", err, test.want)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Export.Format = "xml"
	cfg.Log.Level = "chatty"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	for _, want := range []string{"export.format", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadFile should fail for a missing file")
	}
}
