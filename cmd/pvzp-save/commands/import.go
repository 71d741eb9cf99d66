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

type importParams struct {
	GlobalParams
	DropUnmappable bool `flag:"drop-unmappable" desc:"drop keys that map to no field instead of failing"`
	Check          bool `flag:"check" desc:"report every problem in the document without writing a save"`
}

func importCommand(stdout, stderr io.Writer) *cli.Command {
	var params importParams
	return &cli.Command{
		Name:    "import",
		Summary: "Convert a document to a save file",
		Description: `Read a document written by export, possibly edited, and write it as a
save file with a fresh checksum. The document format and compression
are detected from the file content.

Keys that map to no field are an error unless --drop-unmappable is
given. With --check, every problem in the document is listed and no
save is written; the command exits 1 if there are any.`,
		Usage: "pvzp-save import [flags] <document> <save>\n  pvzp-save import --check <document>",
		Examples: []cli.Example{
			{Description: "Write an edited document back", Command: "pvzp-save import game1_13.yaml game1_13.v4"},
			{Description: "Check a document before importing", Command: "pvzp-save import --check game1_13.yaml"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("import", &params)
		},
		Run: func(args []string) error {
			if params.Check {
				if err := cli.ExactArgs(args, "document"); err != nil {
					return err
				}
			} else if err := cli.ExactArgs(args, "document", "save"); err != nil {
				return err
			}
			documentPath := args[0]
			cfg, logger, err := params.setup("import", stderr)
			if err != nil {
				return err
			}
			logger = logger.With("document", documentPath)

			data, err := readInput(documentPath)
			if err != nil {
				return err
			}
			tree, format, compression, err := document.Unmarshal(data)
			if err != nil {
				return cli.Validation("%s: %w", documentPath, err)
			}
			logger.Debug("read document", "format", format.String(), "compression", compression.String())

			if params.Check {
				problems := save.Validate(tree)
				for _, problem := range problems {
					fmt.Fprintf(stdout, "%s: %v\n", documentPath, problem)
				}
				if len(problems) > 0 {
					fmt.Fprintf(stdout, "%d problem(s)\n", len(problems))
					return &cli.ExitError{Code: 1}
				}
				fmt.Fprintf(stdout, "%s: OK\n", documentPath)
				return nil
			}

			savePath := args[1]
			encoded, diagnostics, err := save.Import(tree, save.EncodeOptions{
				DropUnmappable: params.DropUnmappable || cfg.Import.DropUnmappable,
				Logger:         logger,
			})
			if err != nil {
				return cli.Validation("%s: %w", documentPath, err)
			}
			if err := writeOutput(savePath, encoded, stdout); err != nil {
				return err
			}

			logger.Info("imported",
				"save", savePath,
				"size", len(encoded),
				"blake3", binhash.Sum(encoded).Short(),
				"diagnostics", len(diagnostics),
			)
			if savePath != "-" {
				fmt.Fprintf(stdout, "Imported to: %s\n", savePath)
			}
			return nil
		},
	}
}
