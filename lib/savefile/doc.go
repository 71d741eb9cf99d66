// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package savefile reads and writes the outer PVZP_SAVE4 container:
// the 24-byte header, the CRC-protected payload, and the chunk framing
// inside it.
//
// Header layout (all integers little-endian):
//
//	offset  size  field
//	0       12    signature "PVZP_SAVE" + generation digit + 2 padding bytes
//	12      4     format version (1)
//	16      4     payload length
//	20      4     CRC-32 (IEEE) of the payload
//	24      n     payload: chunks of {u32 type, u32 size, data}
//
// Signature, length, and checksum problems are fatal and reported as
// [*StructuralError], [*FormatMismatchError], or [*IntegrityError]. An
// unexpected format version is not fatal; callers inspect
// [File.Version]. Bytes that do not form a complete chunk, and bytes
// after the declared payload, are kept so the file re-encodes exactly.
package savefile
