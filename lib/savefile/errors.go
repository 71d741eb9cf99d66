// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package savefile

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by [StructuralError].
var (
	ErrTruncated        = errors.New("data truncated")
	ErrInvalidSignature = errors.New("invalid signature")
)

// ErrDuplicateChunk reports a chunk order that lists a type twice. A
// parsed file never fails with it; see [File.Repeated].
var ErrDuplicateChunk = errors.New("duplicate chunk type")

// StructuralError reports a container that cannot be read at all.
type StructuralError struct {
	// Offset is the byte offset in the file where the problem was found.
	Offset int
	Detail string
	Err    error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("save file structure at offset %d: %s: %s", e.Offset, e.Err, e.Detail)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// FormatMismatchError reports a valid signature for a save generation
// other than 4.
type FormatMismatchError struct {
	Generation int
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("save generation %d is not supported: only PVZP_SAVE%c files can be read (found PVZP_SAVE%d)",
		e.Generation, Generation, e.Generation)
}

// IntegrityError reports a payload whose CRC-32 differs from the header.
type IntegrityError struct {
	Stored   uint32
	Computed uint32
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("payload checksum mismatch: header says %08x, payload hashes to %08x", e.Stored, e.Computed)
}
