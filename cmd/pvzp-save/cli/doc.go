// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework of the pvzp-save tool.
//
// A [Command] is a node in the command tree: it either dispatches to
// subcommands by the first positional argument or runs itself after
// parsing its flags with pflag. Flags are usually declared as tagged
// struct fields and bound with [FlagsFromParams]; embedded structs
// such as the global --config and --verbose parameters are bound
// recursively.
//
// Errors returned by commands are categorized with [ToolError]
// ([Validation], [NotFound], [Internal]) and a command that has
// already printed its own failure report returns an [ExitError].
// [NewCommandLogger] builds the slog logger every command uses.
package cli
