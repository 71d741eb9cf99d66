// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"slices"

	"github.com/pvzportable/pvzp-save/lib/dataarray"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/entity"
	"github.com/pvzportable/pvzp-save/lib/schema"
	"github.com/pvzportable/pvzp-save/lib/tlv"
)

// Document is a decoded save. Sections are nil when their chunk is
// absent or was kept opaque.
type Document struct {
	// Version is the container header version.
	Version uint32
	// Padding holds the two signature padding bytes.
	Padding [2]byte
	// ChunkOrder lists every chunk type of the file once, in file order.
	// Encode writes exactly these chunks in this order.
	ChunkOrder []schema.ChunkType

	// Board maps board field names to typed values, or to byte strings
	// for opaque and fallback fields.
	Board *document.Map

	Zombies   *ObjectArray
	Plants    *ObjectArray
	Mowers    *ObjectArray
	GridItems *ObjectArray

	SeedBank    *entity.Record
	SeedPackets *SeedPacketList
	Challenge   *Challenge

	// BinaryChunks holds the raw data of chunks kept opaque. A chunk
	// present here is written from these bytes even if a structured
	// section exists for it.
	BinaryChunks map[schema.ChunkType][]byte

	// PayloadTrailer holds payload bytes after the last whole chunk.
	PayloadTrailer []byte
	// FileTrailer holds bytes after the declared payload.
	FileTrailer []byte
}

// ObjectArray is a decoded slotted game-object collection.
type ObjectArray struct {
	// Header is carried verbatim; MaxUsedCount must equal len(Objects)
	// when encoding.
	Header  dataarray.Header
	Objects []Object
}

// Object is one slot of an [ObjectArray].
type Object struct {
	ID uint32
	entity.Record
}

// Active reports whether the slot holds a live object.
func (o Object) Active() bool { return dataarray.Active(o.ID) }

// SeedPacketList is the count-prefixed SEEDPACKETS list.
type SeedPacketList struct {
	Packets []entity.Record
}

// Challenge is the CHALLENGE record. Its tail is kept opaque.
type Challenge struct {
	// Data is field 100, nil when absent.
	Data []byte
	// Others holds any other field ids verbatim.
	Others tlv.Fields
}

// objectKind describes one of the slotted collections: its chunk, its
// layout, and its document keys.
type objectKind struct {
	chunk  schema.ChunkType
	kind   schema.Kind
	key    string
	header string
	array  func(*Document) **ObjectArray
}

var objectKinds = []objectKind{
	{schema.ChunkZombies, schema.KindZombie, "zombies", "zombies_header", func(d *Document) **ObjectArray { return &d.Zombies }},
	{schema.ChunkPlants, schema.KindPlant, "plants", "plants_header", func(d *Document) **ObjectArray { return &d.Plants }},
	{schema.ChunkMowers, schema.KindMower, "mowers", "mowers_header", func(d *Document) **ObjectArray { return &d.Mowers }},
	{schema.ChunkGridItems, schema.KindGridItem, "griditems", "griditems_header", func(d *Document) **ObjectArray { return &d.GridItems }},
}

func objectKindFor(chunkType schema.ChunkType) (objectKind, bool) {
	for _, kind := range objectKinds {
		if kind.chunk == chunkType {
			return kind, true
		}
	}
	return objectKind{}, false
}

// hasSection reports whether the document holds a structured section
// for chunkType.
func (d *Document) hasSection(chunkType schema.ChunkType) bool {
	switch chunkType {
	case schema.ChunkBoardBase:
		return d.Board != nil
	case schema.ChunkSeedBank:
		return d.SeedBank != nil
	case schema.ChunkSeedPackets:
		return d.SeedPackets != nil
	case schema.ChunkChallenge:
		return d.Challenge != nil
	}
	if kind, ok := objectKindFor(chunkType); ok {
		return *kind.array(d) != nil
	}
	return false
}

// clearSection drops the structured section for chunkType.
func (d *Document) clearSection(chunkType schema.ChunkType) {
	switch chunkType {
	case schema.ChunkBoardBase:
		d.Board = nil
	case schema.ChunkSeedBank:
		d.SeedBank = nil
	case schema.ChunkSeedPackets:
		d.SeedPackets = nil
	case schema.ChunkChallenge:
		d.Challenge = nil
	default:
		if kind, ok := objectKindFor(chunkType); ok {
			*kind.array(d) = nil
		}
	}
}

// structuredChunks lists the chunk types with structured sections, in
// document tree order.
var structuredChunks = []schema.ChunkType{
	schema.ChunkBoardBase,
	schema.ChunkZombies,
	schema.ChunkPlants,
	schema.ChunkMowers,
	schema.ChunkGridItems,
	schema.ChunkSeedBank,
	schema.ChunkSeedPackets,
	schema.ChunkChallenge,
}

func isStructured(chunkType schema.ChunkType) bool {
	return slices.Contains(structuredChunks, chunkType)
}
