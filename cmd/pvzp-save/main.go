// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// pvzp-save converts PvZ-Portable save files to editable YAML or CBOR
// documents and back without losing a byte.
package main

import (
	"os"

	"github.com/pvzportable/pvzp-save/cmd/pvzp-save/commands"
	"github.com/pvzportable/pvzp-save/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Exit(err)
	}
}

func run() error {
	return commands.Root(os.Stdout, os.Stderr).Execute(os.Args[1:])
}
