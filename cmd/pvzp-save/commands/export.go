// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/pvzportable/pvzp-save/cmd/pvzp-save/cli"
	"github.com/pvzportable/pvzp-save/lib/binhash"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/save"
)

type exportParams struct {
	GlobalParams
	ExpandWaves bool   `flag:"expand-waves" desc:"write the wave roster as lists of zombie names; a roster with non-sentinel filler after a row's -1 terminator stays as bytes (wave_roster_opaque warning)"`
	Format      string `flag:"format,f" desc:"document format: yaml or cbor (default from config, else yaml)"`
	Compress    string `flag:"compress,c" desc:"compression: none, zstd, or lz4 (default from config, else none)"`
}

func exportCommand(stdout, stderr io.Writer) *cli.Command {
	var params exportParams
	return &cli.Command{
		Name:    "export",
		Summary: "Convert a save file to a document",
		Description: `Decode a save file and write it as a YAML or CBOR document. The
document re-imports to the same save bytes, including any sections
kept as opaque bytes.

With --expand-waves the wave roster becomes lists of zombie names. A
roster row whose slots after the -1 terminator are not all -1 cannot be
expanded without loss; that roster stays as bytes and a
wave_roster_opaque warning is logged.

Write "-" as the document path to print the document on stdout.`,
		Usage: "pvzp-save export [flags] <save> <document>",
		Examples: []cli.Example{
			{Description: "Export to YAML", Command: "pvzp-save export game1_13.v4 game1_13.yaml"},
			{Description: "Export compressed CBOR", Command: "pvzp-save export -f cbor -c zstd game1_13.v4 game1_13.cbor.zst"},
			{Description: "Export with readable waves", Command: "pvzp-save export --expand-waves game1_13.v4 -"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("export", &params)
		},
		Run: func(args []string) error {
			if err := cli.ExactArgs(args, "save", "document"); err != nil {
				return err
			}
			savePath, documentPath := args[0], args[1]
			cfg, logger, err := params.setup("export", stderr)
			if err != nil {
				return err
			}
			logger = logger.With("save", savePath)

			formatName := firstNonEmpty(params.Format, cfg.Export.Format)
			format, err := document.ParseFormat(formatName)
			if err != nil {
				return cli.Validation("--format: %v", err)
			}
			compression, err := document.ParseCompression(firstNonEmpty(params.Compress, cfg.Export.Compression))
			if err != nil {
				return cli.Validation("--compress: %v", err)
			}

			data, err := readInput(savePath)
			if err != nil {
				return err
			}
			logger.Debug("read save", "size", len(data), "blake3", binhash.Sum(data).String())

			tree, diagnostics, err := save.Export(data, save.DecodeOptions{
				ExpandWaves: params.ExpandWaves || cfg.Export.ExpandWaves,
				Logger:      logger,
			})
			if err != nil {
				return decodeError(savePath, err)
			}
			encoded, err := document.Marshal(tree, format, compression)
			if err != nil {
				return cli.Internal("serializing document: %w", err)
			}
			if err := writeOutput(documentPath, encoded, stdout); err != nil {
				return err
			}

			logger.Info("exported",
				"document", documentPath,
				"format", format.String(),
				"compression", compression.String(),
				"diagnostics", len(diagnostics),
			)
			if documentPath != "-" {
				fmt.Fprintf(stdout, "Exported to: %s\n", documentPath)
			}
			return nil
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
