// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint error handling for
// pvzp-save. It is the one place that writes to stderr before (or
// without) a structured logger and the one place that calls os.Exit.
//
// Commands that print their own report, such as verify, return an error
// carrying an ExitCode method. Those exit with that code and no extra
// message. Every other error prints as "error: ..." and exits 1.
package process
