// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema holds the static tables that give meaning to the
// numeric ids in a PvZ-Portable v4 save: chunk types, enumerations
// (zombie, seed, background, grid item, mower, scary pot), and the
// per-kind field registries that map a TLV field id to a name and a
// scalar type.
//
// The tables are fixed for the single supported format generation.
// Nothing here is inferred from data; ids that are not registered are
// surfaced through synthesized names instead:
//
//   - "_unknown_<id>" for board fields ([UnknownFieldName])
//   - "_field_<id>" for object fields other than the base and tail
//     ([ExtraFieldName])
//   - "UNKNOWN_<n>" for enumeration values and chunk types
//
// Both directions are exact: every synthesized name parses back to the
// id it was built from, so unknown data survives a trip through an
// edited document.
package schema
