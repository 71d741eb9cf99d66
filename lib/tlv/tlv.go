// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tlv implements the id/length/value field sets nested at every
// level of a save file: chunk bodies, board state, and each game object.
//
// A field set is a concatenation of records, each a little-endian
// uint32 field id, a uint32 byte length, and that many payload bytes.
// [Parse] stops (without error) as soon as fewer than eight bytes remain
// or a record claims more bytes than are left; [Encode] writes ids in
// ascending order so output is independent of map iteration order.
package tlv

import (
	"maps"
	"slices"

	"github.com/pvzportable/pvzp-save/lib/binio"
)

// RecordHeaderSize is the size of a record's id and length prefix.
const RecordHeaderSize = 8

// Fields maps field id to payload. Payloads returned by [Parse] alias
// the parsed buffer.
type Fields map[uint32][]byte

// IDs returns the field ids in ascending order.
func (f Fields) IDs() []uint32 {
	return slices.Sorted(maps.Keys(f))
}

// Has reports whether id is present.
func (f Fields) Has(id uint32) bool {
	_, ok := f[id]
	return ok
}

// Parse splits data into its records. A repeated id keeps the last
// payload seen. Trailing bytes that do not form a complete record are
// ignored; callers that need byte-exact round trips compare
// [Encode] of the result against the input.
func Parse(data []byte) Fields {
	fields := make(Fields)
	reader := binio.NewReader(data)
	for reader.Remaining() >= RecordHeaderSize {
		id, _ := reader.Uint32()
		size, _ := reader.Uint32()
		if uint64(size) > uint64(reader.Remaining()) {
			break
		}
		payload, _ := reader.Bytes(int(size))
		fields[id] = payload
	}
	return fields
}

// Encode serializes fields with ids ascending.
func Encode(fields Fields) []byte {
	size := 0
	for _, payload := range fields {
		size += RecordHeaderSize + len(payload)
	}
	writer := binio.NewWriter(size)
	for _, id := range fields.IDs() {
		Append(writer, id, fields[id])
	}
	return writer.Bytes()
}

// Append writes a single record to writer.
func Append(writer *binio.Writer, id uint32, payload []byte) {
	writer.Uint32(id)
	writer.Uint32(uint32(len(payload)))
	writer.PutBytes(payload)
}
