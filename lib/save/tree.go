// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"slices"

	"github.com/pvzportable/pvzp-save/lib/dataarray"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/entity"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

// FormatLabel is the value of the tree's _format key.
const FormatLabel = "PvZ-Portable Save v4"

// Root keys of the document tree.
const (
	formatKey         = "_format"
	versionKey        = "_version"
	paddingKey        = "_header_padding"
	chunkOrderKey     = "_chunk_order"
	binaryChunksKey   = "binary_chunks"
	payloadTrailerKey = "payload_trailer"
	fileTrailerKey    = "file_trailer"
)

// headerKeys names the DataArray header counters in encoding order.
var headerKeys = []string{"free_list_head", "max_used_count", "size", "next_key", "max_size"}

func headerCounters(header *dataarray.Header) []*uint32 {
	return []*uint32{&header.FreeListHead, &header.MaxUsedCount, &header.Size, &header.NextKey, &header.MaxSize}
}

// Tree renders the document as a tree for the YAML and CBOR
// serializers. The tree shares the board map with d.
func (d *Document) Tree() document.Value {
	root := document.NewMap(24)
	root.Set(formatKey, document.String(FormatLabel))
	root.Set(versionKey, document.Int(int64(d.Version)))
	if d.Padding != [2]byte{} {
		root.Set(paddingKey, document.Bytes(d.Padding[:]))
	}
	order := make([]document.Value, 0, len(d.ChunkOrder))
	for _, chunkType := range d.ChunkOrder {
		order = append(order, document.Int(int64(chunkType)))
	}
	root.Set(chunkOrderKey, document.Seq(order...))

	if d.Board != nil {
		root.Set(boardKey, document.MapValue(d.Board))
	}
	for _, kind := range objectKinds {
		layout := entity.LayoutFor(kind.kind)
		array := *kind.array(d)
		if array == nil {
			continue
		}
		header := document.NewMap(len(headerKeys))
		for index, counter := range headerCounters(&array.Header) {
			header.Set(headerKeys[index], document.Int(int64(*counter)))
		}
		root.Set(kind.header, document.MapValue(header))
		objects := make([]document.Value, 0, len(array.Objects))
		for _, object := range array.Objects {
			m := document.NewMap(8)
			m.Set(entity.IDKey, document.Int(int64(object.ID)))
			object.AppendTo(layout, m)
			objects = append(objects, document.MapValue(m))
		}
		root.Set(kind.key, document.Seq(objects...))
	}
	if d.SeedBank != nil {
		m := document.NewMap(8)
		d.SeedBank.AppendTo(entity.SeedBankLayout, m)
		root.Set(seedBankKey, document.MapValue(m))
	}
	if d.SeedPackets != nil {
		packets := make([]document.Value, 0, len(d.SeedPackets.Packets))
		for index, record := range d.SeedPackets.Packets {
			m := document.NewMap(16)
			m.Set(entity.IndexKey, document.Int(int64(index)))
			record.AppendTo(entity.SeedPacketLayout, m)
			packets = append(packets, document.MapValue(m))
		}
		root.Set(seedPacketsKey, document.Seq(packets...))
	}
	if d.Challenge != nil {
		m := document.NewMap(1 + len(d.Challenge.Others))
		if d.Challenge.Data != nil {
			m.Set(challengeData.Name, document.Bytes(d.Challenge.Data))
		}
		for _, id := range d.Challenge.Others.IDs() {
			m.Set(schema.ExtraFieldName(id), document.Bytes(d.Challenge.Others[id]))
		}
		root.Set(challengeKey, document.MapValue(m))
	}
	if len(d.BinaryChunks) > 0 {
		root.Set(binaryChunksKey, document.MapValue(d.binaryChunksTree()))
	}
	if d.PayloadTrailer != nil {
		root.Set(payloadTrailerKey, document.Bytes(d.PayloadTrailer))
	}
	if d.FileTrailer != nil {
		root.Set(fileTrailerKey, document.Bytes(d.FileTrailer))
	}
	return document.MapValue(root)
}

// binaryChunksTree lists opaque chunks in chunk order, then any the
// order does not mention by ascending type.
func (d *Document) binaryChunksTree() *document.Map {
	m := document.NewMap(len(d.BinaryChunks))
	for _, chunkType := range d.ChunkOrder {
		if data, ok := d.BinaryChunks[chunkType]; ok {
			m.Set(chunkType.String(), document.Bytes(data))
		}
	}
	var rest []schema.ChunkType
	for chunkType := range d.BinaryChunks {
		if !slices.Contains(d.ChunkOrder, chunkType) {
			rest = append(rest, chunkType)
		}
	}
	slices.Sort(rest)
	for _, chunkType := range rest {
		m.Set(chunkType.String(), document.Bytes(d.BinaryChunks[chunkType]))
	}
	return m
}
