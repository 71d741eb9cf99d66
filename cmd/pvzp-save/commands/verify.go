// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/pvzportable/pvzp-save/cmd/pvzp-save/cli"
	"github.com/pvzportable/pvzp-save/lib/binhash"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/save"
)

type verifyParams struct {
	GlobalParams
	Jobs            int  `flag:"jobs,j" desc:"files verified at once (0 means one per CPU)"`
	ExpandWaves     bool `flag:"expand-waves" desc:"decode with the wave roster expanded; rosters with non-sentinel filler stay as bytes (wave_roster_opaque)"`
	ThroughDocument bool `flag:"through-document" desc:"also serialize the tree as YAML and read it back before encoding"`
}

type verifyStatus int

const (
	verifyOK verifyStatus = iota
	verifyDiff
	verifyFail
)

// verifyResult is the outcome for one file.
type verifyResult struct {
	path        string
	status      verifyStatus
	original    binhash.Digest
	encoded     binhash.Digest
	opaque      int
	diagnostics int
	err         error
}

func verifyCommand(stdout, stderr io.Writer) *cli.Command {
	var params verifyParams
	return &cli.Command{
		Name:    "verify",
		Summary: "Check that save files convert without loss",
		Description: `Decode each save file and encode it again, and report whether the
result is byte-identical to the input. Files are checked concurrently.

Each file gets one line: OK, DIFF with the BLAKE3 fingerprints of the
input and the re-encoded bytes, or FAIL with the decode error. The
command exits 1 unless every file is OK.`,
		Usage: "pvzp-save verify [flags] <save>...",
		Examples: []cli.Example{
			{Description: "Verify every save in a directory", Command: "pvzp-save verify saves/*.v4"},
			{Description: "Include the YAML round trip", Command: "pvzp-save verify --through-document --expand-waves game1_13.v4"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("expected at least one <save>")
			}
			if params.Jobs < 0 {
				return cli.Validation("--jobs must not be negative, got %d", params.Jobs)
			}
			_, logger, err := params.setup("verify", stderr)
			if err != nil {
				return err
			}

			jobs := params.Jobs
			if jobs == 0 {
				jobs = runtime.GOMAXPROCS(0)
			}
			results := make([]verifyResult, len(args))
			var group errgroup.Group
			group.SetLimit(jobs)
			for index, path := range args {
				group.Go(func() error {
					results[index] = verifyFile(path, params, logger.With("save", path))
					return nil
				})
			}
			group.Wait()

			var ok, differ, failed int
			for _, result := range results {
				switch result.status {
				case verifyOK:
					ok++
					fmt.Fprintf(stdout, "OK    %s  blake3:%s  opaque=%d diagnostics=%d\n",
						result.path, result.original.Short(), result.opaque, result.diagnostics)
				case verifyDiff:
					differ++
					fmt.Fprintf(stdout, "DIFF  %s  blake3:%s -> blake3:%s\n",
						result.path, result.original.Short(), result.encoded.Short())
				case verifyFail:
					failed++
					fmt.Fprintf(stdout, "FAIL  %s: %v\n", result.path, result.err)
				}
			}
			fmt.Fprintf(stdout, "%d file(s): %d ok, %d differ, %d failed\n", len(results), ok, differ, failed)
			if ok != len(results) {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// verifyFile converts one save and compares the re-encoded bytes.
func verifyFile(path string, params verifyParams, logger *slog.Logger) verifyResult {
	result := verifyResult{path: path, status: verifyFail}
	data, err := readInput(path)
	if err != nil {
		result.err = err
		return result
	}
	result.original = binhash.Sum(data)

	doc, diagnostics, err := save.Decode(data, save.DecodeOptions{ExpandWaves: params.ExpandWaves, Logger: logger})
	if err != nil {
		result.err = err
		return result
	}
	result.opaque = len(doc.BinaryChunks)
	result.diagnostics = len(diagnostics)

	if params.ThroughDocument {
		serialized, err := document.Marshal(doc.Tree(), document.FormatYAML, document.CompressionNone)
		if err != nil {
			result.err = fmt.Errorf("serializing document: %w", err)
			return result
		}
		tree, _, _, err := document.Unmarshal(serialized)
		if err != nil {
			result.err = fmt.Errorf("reading document back: %w", err)
			return result
		}
		doc, _, err = save.FromTree(tree, save.EncodeOptions{Logger: logger})
		if err != nil {
			result.err = err
			return result
		}
	}

	encoded, _, err := save.Encode(doc, save.EncodeOptions{Logger: logger})
	if err != nil {
		result.err = err
		return result
	}
	result.encoded = binhash.Sum(encoded)
	if bytes.Equal(encoded, data) {
		result.status = verifyOK
	} else {
		result.status = verifyDiff
		logger.Warn("re-encoded save differs", "size", len(data), "encoded_size", len(encoded))
	}
	return result
}
