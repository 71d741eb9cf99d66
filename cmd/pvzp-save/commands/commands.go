// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the pvzp-save command tree.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pvzportable/pvzp-save/cmd/pvzp-save/cli"
	"github.com/pvzportable/pvzp-save/lib/config"
	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/version"
)

// Root returns the pvzp-save command tree. Reports go to stdout; help,
// logs, and diagnostics go to stderr.
func Root(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name: "pvzp-save",
		Description: `Convert PvZ-Portable save files to editable documents and back.

A save file decodes to a document tree that re-encodes to the same
bytes. Sections the converter cannot reproduce exactly are kept as
opaque bytes and reported as diagnostics on stderr.

Documents are YAML or CBOR, optionally compressed with zstd or lz4.
The import command detects the format from the file content.

Defaults for every command can be set in a YAML or JSONC file named by
--config or the ` + config.EnvVar + ` environment variable.`,
		HelpOutput: stderr,
		Subcommands: []*cli.Command{
			infoCommand(stdout, stderr),
			exportCommand(stdout, stderr),
			importCommand(stdout, stderr),
			verifyCommand(stdout, stderr),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					if err := cli.ExactArgs(args); err != nil {
						return err
					}
					fmt.Fprintf(stdout, "pvzp-save %s\n", version.Full())
					fmt.Fprintf(stdout, "save format %s version %d\n", savefile.FormatName, savefile.FormatVersion)
					return nil
				},
			},
		},
	}
}

// GlobalParams are the flags every command accepts.
type GlobalParams struct {
	Config  string `flag:"config" desc:"configuration file (YAML or JSONC)"`
	Verbose bool   `flag:"verbose,v" desc:"log at debug level"`
}

// setup loads the configuration and builds the command logger.
func (p *GlobalParams) setup(name string, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(p.Config)
	if err != nil {
		return nil, nil, cli.Validation("%v", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, cli.Validation("%v", err)
	}
	if p.Verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(stderr, level).With("command", name)
	logger.Debug("starting", version.LogAttr())
	return cfg, logger, nil
}

// readInput reads a file named on the command line.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("%s does not exist", path)
	}
	if err != nil {
		return nil, cli.Internal("reading %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return cli.Internal("writing output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cli.Internal("writing %s: %w", path, err)
	}
	return nil
}

// decodeError categorizes a fatal decode error. Every such error is a
// container the converter refuses to read.
func decodeError(path string, err error) error {
	return cli.Validation("%s: %w", path, err)
}
