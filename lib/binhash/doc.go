// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash fingerprints save files with BLAKE3.
//
// The info report prints a fingerprint of the file it read, and the
// verify command compares the fingerprint of the original bytes with
// that of the re-encoded bytes. Fingerprints are for telling files
// apart in output and logs; the container's own CRC-32 remains the
// integrity check.
//
//   - [Sum] -- hashes an in-memory buffer
//   - [HashFile] -- streams a file through the hasher
//   - [Digest.String] and [ParseDigest] -- the canonical hex form
//   - [Digest.Short] -- a prefix for compact output
package binhash
