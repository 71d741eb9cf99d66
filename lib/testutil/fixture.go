// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/binary"
	"hash/crc32"
	"math"
)

// Chunk type ids used by the fixtures.
const (
	ChunkBoardBase        uint32 = 1
	ChunkZombies          uint32 = 2
	ChunkPlants           uint32 = 3
	ChunkMowers           uint32 = 6
	ChunkGridItems        uint32 = 7
	ChunkParticleEmitters uint32 = 8
	ChunkSeedBank         uint32 = 17
	ChunkSeedPackets      uint32 = 18
	ChunkChallenge        uint32 = 19
)

// Tail sizes of the structured entity kinds.
const (
	ZombieTailSize     = 190
	PlantTailSize      = 104
	MowerTailSize      = 58
	GridItemTailSize   = 70 + 148
	SeedPacketTailSize = 42
	SeedBankTailSize   = 12
)

// I32 encodes little-endian int32 values back to back.
func I32(values ...int32) []byte {
	out := make([]byte, 0, 4*len(values))
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, uint32(v))
	}
	return out
}

// U32 encodes little-endian uint32 values back to back.
func U32(values ...uint32) []byte {
	out := make([]byte, 0, 4*len(values))
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}

// I64 encodes a little-endian int64.
func I64(v int64) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(v))
}

// F32 encodes a little-endian IEEE-754 binary32.
func F32(v float32) []byte {
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))
}

// Field is one TLV record.
type Field struct {
	ID   uint32
	Data []byte
}

// TLV concatenates records in the order given.
func TLV(fields ...Field) []byte {
	var out []byte
	for _, field := range fields {
		out = append(out, U32(field.ID, uint32(len(field.Data)))...)
		out = append(out, field.Data...)
	}
	return out
}

// ChunkData frames field bytes as {inner_version=1, field_id=1, size, bytes}.
func ChunkData(field []byte) []byte {
	return append(U32(1, 1, uint32(len(field))), field...)
}

// Blob prefixes data with its u32 size.
func Blob(data []byte) []byte {
	return append(U32(uint32(len(data))), data...)
}

// Entry is one slotted-array entry.
type Entry struct {
	ID     uint32
	Fields []byte
}

// DataArray encodes a slotted array. The header's max_used_count is the
// number of entries; the other counters are given.
func DataArray(freeListHead, size, nextKey, maxSize uint32, entries ...Entry) []byte {
	out := U32(freeListHead, uint32(len(entries)), size, nextKey, maxSize)
	for _, entry := range entries {
		out = append(out, U32(entry.ID, uint32(len(entry.Fields)))...)
		out = append(out, entry.Fields...)
	}
	return out
}

// Base encodes a 25-byte game object base.
func Base(x, y, width, height int32, visible bool, row, renderOrder int32) []byte {
	out := I32(x, y, width, height)
	if visible {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	return append(out, I32(row, renderOrder)...)
}

// Chunk is one payload chunk.
type Chunk struct {
	Type uint32
	Data []byte
}

// Payload concatenates chunks with their {type, size} prefixes.
func Payload(chunks ...Chunk) []byte {
	var out []byte
	for _, chunk := range chunks {
		out = append(out, U32(chunk.Type, uint32(len(chunk.Data)))...)
		out = append(out, chunk.Data...)
	}
	return out
}

// Container wraps a payload in a header for the given generation digit
// and version, with a correct length and CRC.
func Container(generation byte, version uint32, payload []byte) []byte {
	out := append([]byte("PVZP_SAVE"), generation, 0, 0)
	out = append(out, U32(version, uint32(len(payload)), crc32.ChecksumIEEE(payload))...)
	return append(out, payload...)
}

// SaveFile builds a generation 4, version 1 container of chunks.
func SaveFile(chunks ...Chunk) []byte {
	return Container('4', 1, Payload(chunks...))
}
