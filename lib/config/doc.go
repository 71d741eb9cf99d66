// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional pvzp-save configuration file.
//
// The file is named by the --config flag or, failing that, the
// PVZP_SAVE_CONFIG environment variable. There is no ~/.config
// discovery and no automatic file search: without either, [Load]
// returns [Default]. Command-line flags override whatever the file
// sets.
//
// The file is YAML. Files ending in .json or .jsonc are read as JSON
// with comments and trailing commas allowed. Unknown keys are errors,
// so a misspelled option does not silently do nothing.
//
//	export:
//	  format: cbor        # yaml | cbor
//	  compression: zstd   # none | zstd | lz4
//	  expand_waves: true
//	import:
//	  drop_unmappable: false
//	log:
//	  level: debug
package config
