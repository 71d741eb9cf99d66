// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package savefile

import (
	"fmt"

	"github.com/pvzportable/pvzp-save/lib/binio"
)

// Chunk body framing.
const (
	// ChunkInnerVersion is the version word at the start of chunk data.
	ChunkInnerVersion uint32 = 1
	// ChunkFieldID is the single field id wrapping a chunk body.
	ChunkFieldID uint32 = 1
	// ChunkFrameSize is the inner version, field id, and field size.
	ChunkFrameSize = 12
)

// UnwrapChunkData returns the field bytes of chunk data framed as
// {inner_version, field_id, field_size, field_bytes}. Data that does not
// match the framing exactly, including bytes after the field, is
// reported as an error so the caller can keep the chunk opaque.
func UnwrapChunkData(data []byte) ([]byte, error) {
	r := binio.NewReader(data)
	version, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("chunk inner version: %w", err)
	}
	if version != ChunkInnerVersion {
		return nil, fmt.Errorf("chunk inner version is %d, want %d", version, ChunkInnerVersion)
	}
	fieldID, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("chunk field id: %w", err)
	}
	if fieldID != ChunkFieldID {
		return nil, fmt.Errorf("chunk field id is %d, want %d", fieldID, ChunkFieldID)
	}
	return sized(r, "chunk field")
}

// WrapChunkData frames field bytes as chunk data.
func WrapChunkData(field []byte) []byte {
	w := binio.NewWriter(ChunkFrameSize + len(field))
	w.Uint32(ChunkInnerVersion)
	w.Uint32(ChunkFieldID)
	w.Uint32(uint32(len(field)))
	w.PutBytes(field)
	return w.Bytes()
}

// UnwrapBlob returns the blob of a {u32 blob_size, blob} body, failing
// on short or trailing bytes.
func UnwrapBlob(data []byte) ([]byte, error) {
	return sized(binio.NewReader(data), "blob")
}

// WrapBlob prefixes blob with its size.
func WrapBlob(blob []byte) []byte {
	w := binio.NewWriter(4 + len(blob))
	w.Uint32(uint32(len(blob)))
	w.PutBytes(blob)
	return w.Bytes()
}

func sized(r *binio.Reader, what string) ([]byte, error) {
	size, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("%s size: %w", what, err)
	}
	if uint64(size) > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%s declares %d bytes, %d remain: %w", what, size, r.Remaining(), binio.ErrShortBuffer)
	}
	body, _ := r.Bytes(int(size))
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%s is followed by %d unexpected bytes", what, r.Remaining())
	}
	return body, nil
}
