// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// DigestSize is the length of a fingerprint in bytes.
const DigestSize = 32

// shortLength is the number of hex characters in [Digest.Short].
const shortLength = 12

// Digest is the BLAKE3-256 hash of a save file's bytes.
type Digest [DigestSize]byte

// Sum hashes an in-memory buffer.
func Sum(data []byte) Digest {
	return blake3.Sum256(data)
}

// HashFile hashes the file at path, streaming it through the hasher.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// String returns the full hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns a hex prefix long enough to tell saves apart in logs
// and reports.
func (d Digest) Short() string {
	return d.String()[:shortLength]
}

// ParseDigest parses the hex form produced by [Digest.String].
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing save fingerprint: %w", err)
	}
	if len(decoded) != DigestSize {
		return digest, fmt.Errorf("save fingerprint is %d bytes, want %d", len(decoded), DigestSize)
	}
	copy(digest[:], decoded)
	return digest, nil
}
