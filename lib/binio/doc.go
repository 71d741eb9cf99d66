// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binio provides the fixed-width little-endian primitives every
// save-file structure is built from.
//
// [Reader] is a cursor over an immutable byte slice. Every read is
// bounds-checked: a read past the end returns an error wrapping
// [ErrShortBuffer] and does not advance the cursor, so callers can fall
// back to preserving the unread bytes verbatim.
//
// [Writer] appends the same primitives to a growing buffer. Booleans are
// one byte (0 or 1), floats are IEEE-754 binary32, and all integers are
// little-endian regardless of host byte order.
//
// This package has no dependencies outside the standard library.
package binio
