// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/pvzportable/pvzp-save/cmd/pvzp-save/cli"
	"github.com/pvzportable/pvzp-save/lib/save"
	"github.com/pvzportable/pvzp-save/lib/summary"
)

type infoParams struct {
	GlobalParams
	Plain bool `flag:"plain" desc:"never style the report, even on a terminal"`
}

func infoCommand(stdout, stderr io.Writer) *cli.Command {
	var params infoParams
	return &cli.Command{
		Name:    "info",
		Summary: "Summarize a save file",
		Description: `Decode a save file and print a summary: the level and sun, seed slots,
the plants, zombies, and lawn mowers on the field, and player
statistics. Objects the game has freed are not listed.

The file section shows the BLAKE3 fingerprint of the save and how many
chunks were kept as opaque bytes.`,
		Usage: "pvzp-save info [flags] <save>",
		Examples: []cli.Example{
			{Description: "Summarize the current game", Command: "pvzp-save info game1_13.v4"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Run: func(args []string) error {
			if err := cli.ExactArgs(args, "save"); err != nil {
				return err
			}
			path := args[0]
			_, logger, err := params.setup("info", stderr)
			if err != nil {
				return err
			}
			logger = logger.With("save", path)

			data, err := readInput(path)
			if err != nil {
				return err
			}
			doc, diagnostics, err := save.Decode(data, save.DecodeOptions{Logger: logger})
			if err != nil {
				return decodeError(path, err)
			}
			report := summary.Build(doc, summary.Source{Name: path, Data: data, Diagnostics: diagnostics})

			profile := termenv.Ascii
			if !params.Plain && cli.IsTerminal(stdout) {
				profile = termenv.EnvColorProfile()
			}
			if err := report.Render(stdout, profile); err != nil {
				return cli.Internal("writing report: %w", err)
			}
			return nil
		},
	}
}
