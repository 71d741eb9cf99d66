// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the project's standard CBOR encoding
// configuration.
//
// Save documents are exported in two serialization formats: YAML for
// editing by hand and CBOR for compact machine interchange. This
// package holds the shared CBOR modes so every encoder produces the
// same bytes. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Deterministic encoding sorts map keys, which loses the insertion
// order of a document map. Types that must keep their order frame the
// container themselves with [AppendHead] and decode it element by
// element with [ReadHead] and [UnmarshalFirst].
package codec
