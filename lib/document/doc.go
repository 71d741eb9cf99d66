// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package document is the editable tree form of a decoded save.
//
// A [Value] is one of null, bool, integer, float, text, byte string,
// sequence, or [Map]. Maps keep insertion order so an exported document
// reads in the same order the decoder produced it. Byte strings stay
// distinct from text in every serialization: YAML tags them !!binary
// and CBOR encodes them as major type 2.
//
// Serialized documents may be wrapped in a compression envelope
// (zstd or LZ4 frame). [Unmarshal] detects the envelope and the
// serialization from the leading bytes, so callers never pass the
// format of data they read back.
package document
