// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package summary builds the human-readable info report of a decoded
// save: the file's identity, then game state, seed slots, plants,
// zombies, lawn mowers and statistics. Plant and zombie types are shown
// by display name ("Buckethead Zombie"), other enums by symbol.
//
// [Build] collects the report from a [save.Document]; [Report.Render]
// writes it, styling section headings when given a color profile other
// than termenv.Ascii.
package summary
