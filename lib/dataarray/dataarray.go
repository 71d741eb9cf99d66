// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataarray implements the slotted collection layout used for
// every game-object list in a save (zombies, plants, mowers, grid items).
//
// The layout is a header of five uint32 counters followed by exactly
// MaxUsedCount entries, each an item id, a uint32 byte length, and that
// many payload bytes. The header counters are the game engine's own
// allocator bookkeeping: they are carried verbatim and never derived
// from the entries.
//
// Whether a slot is occupied is encoded in its id. The low byte is the
// slot index and the upper 24 bits are a generation key that is zero
// for free slots; see [Active].
package dataarray

import (
	"fmt"

	"github.com/pvzportable/pvzp-save/lib/binio"
)

// ActiveMask selects the generation bits of an item id.
const ActiveMask uint32 = 0xFFFFFF00

// HeaderSize is the encoded size of [Header].
const HeaderSize = 5 * 4

// entryHeaderSize is the id and length prefix of each entry.
const entryHeaderSize = 8

// Active reports whether the slot with this id holds a live object.
func Active(id uint32) bool {
	return id&ActiveMask != 0
}

// Header is the allocator state written before the entries.
type Header struct {
	FreeListHead uint32
	MaxUsedCount uint32
	Size         uint32
	NextKey      uint32
	MaxSize      uint32
}

// Entry is one slot: its id and raw payload (a TLV field set for every
// collection in the save format).
type Entry struct {
	ID      uint32
	Payload []byte
}

// Active reports whether the entry's slot is occupied.
func (e Entry) Active() bool { return Active(e.ID) }

// Array is a decoded slotted collection.
type Array struct {
	Header  Header
	Entries []Entry
}

// Parse decodes data as a header followed by Header.MaxUsedCount
// entries. Bytes left over after the last entry are an error: the
// layout has no place to keep them.
func Parse(data []byte) (*Array, error) {
	reader := binio.NewReader(data)
	var header Header
	for _, counter := range []*uint32{
		&header.FreeListHead,
		&header.MaxUsedCount,
		&header.Size,
		&header.NextKey,
		&header.MaxSize,
	} {
		value, err := reader.Uint32()
		if err != nil {
			return nil, fmt.Errorf("reading data array header: %w", err)
		}
		*counter = value
	}

	// MaxUsedCount comes from the file; never preallocate more entries
	// than the remaining bytes could possibly hold.
	capacity := min(int(header.MaxUsedCount), reader.Remaining()/entryHeaderSize)
	entries := make([]Entry, 0, capacity)
	for index := uint32(0); index < header.MaxUsedCount; index++ {
		id, err := reader.Uint32()
		if err != nil {
			return nil, fmt.Errorf("reading entry %d id: %w", index, err)
		}
		size, err := reader.Uint32()
		if err != nil {
			return nil, fmt.Errorf("reading entry %d size: %w", index, err)
		}
		if uint64(size) > uint64(reader.Remaining()) {
			return nil, fmt.Errorf("entry %d declares %d bytes, only %d remain: %w",
				index, size, reader.Remaining(), binio.ErrShortBuffer)
		}
		payload, _ := reader.Bytes(int(size))
		entries = append(entries, Entry{ID: id, Payload: payload})
	}

	if reader.Remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d entries", reader.Remaining(), header.MaxUsedCount)
	}
	return &Array{Header: header, Entries: entries}, nil
}

// Encode writes the header verbatim followed by every entry. The entry
// count must equal Header.MaxUsedCount, otherwise the result could not
// be parsed back.
func Encode(array *Array) ([]byte, error) {
	if uint64(len(array.Entries)) != uint64(array.Header.MaxUsedCount) {
		return nil, fmt.Errorf("data array has %d entries but header max_used_count is %d",
			len(array.Entries), array.Header.MaxUsedCount)
	}
	size := HeaderSize
	for _, entry := range array.Entries {
		size += entryHeaderSize + len(entry.Payload)
	}
	writer := binio.NewWriter(size)
	writer.Uint32(array.Header.FreeListHead)
	writer.Uint32(array.Header.MaxUsedCount)
	writer.Uint32(array.Header.Size)
	writer.Uint32(array.Header.NextKey)
	writer.Uint32(array.Header.MaxSize)
	for _, entry := range array.Entries {
		writer.Uint32(entry.ID)
		writer.Uint32(uint32(len(entry.Payload)))
		writer.PutBytes(entry.Payload)
	}
	return writer.Bytes(), nil
}
