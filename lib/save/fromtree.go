// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"slices"

	"github.com/pvzportable/pvzp-save/lib/dataarray"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/entity"
	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/schema"
	"github.com/pvzportable/pvzp-save/lib/tlv"
)

// rootPath names the tree root in errors.
const rootPath = "document"

// FromTree reads a document tree produced by [Document.Tree], possibly
// edited. Missing keys take their defaults. Keys that map to no field
// fail with [*UnmappableFieldError] unless options.DropUnmappable is
// set.
func FromTree(tree document.Value, options EncodeOptions) (*Document, []Diagnostic, error) {
	reader := &treeReader{options: options, diagnostics: newCollector(options.Logger)}
	doc, err := reader.document(tree)
	if err != nil {
		return nil, nil, err
	}
	return doc, reader.diagnostics.list, nil
}

// Import reads a document tree and encodes it as a save file.
func Import(tree document.Value, options EncodeOptions) ([]byte, []Diagnostic, error) {
	doc, diagnostics, err := FromTree(tree, options)
	if err != nil {
		return nil, nil, err
	}
	data, encodeDiagnostics, err := Encode(doc, options)
	if err != nil {
		return nil, nil, err
	}
	return data, append(diagnostics, encodeDiagnostics...), nil
}

// Validate checks that tree can be encoded without dropping anything,
// and returns every problem found: unmappable fields, values of the
// wrong type, and chunk order entries without data. Problems in one
// section do not hide problems in another.
func Validate(tree document.Value) []error {
	var problems []error
	reader := &treeReader{diagnostics: &collector{}, problems: &problems}
	doc, err := reader.document(tree)
	if err != nil {
		return append(problems, err)
	}
	// A section that failed to read has already been reported; stand in
	// for it so the encode pass does not report it missing.
	for chunkType := range reader.failed {
		doc.BinaryChunks[chunkType] = []byte{}
	}
	encodeFile(doc, &collector{}, &problems)
	return problems
}

// treeReader converts a tree to a Document. With a non-nil problems
// slice it records errors and keeps going.
type treeReader struct {
	options     EncodeOptions
	diagnostics *collector
	problems    *[]error
	failed      map[schema.ChunkType]bool
}

func (r *treeReader) fail(chunkType schema.ChunkType, err error) error {
	if r.problems == nil {
		return err
	}
	*r.problems = append(*r.problems, err)
	if chunkType != 0 {
		if r.failed == nil {
			r.failed = make(map[schema.ChunkType]bool)
		}
		r.failed[chunkType] = true
	}
	return nil
}

// unmapped reports keys that map to no field.
func (r *treeReader) unmapped(chunk string, paths []string) error {
	for _, path := range paths {
		if r.options.DropUnmappable && r.problems == nil {
			r.diagnostics.addf(CodeUnmappableField, chunk, path, "field dropped: it maps to no field id")
			continue
		}
		if err := r.fail(0, &UnmappableFieldError{Path: path}); err != nil {
			return err
		}
	}
	return nil
}

func (r *treeReader) document(tree document.Value) (*Document, error) {
	root, err := tree.Object(rootPath)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Version:      savefile.FormatVersion,
		BinaryChunks: make(map[schema.ChunkType][]byte),
	}

	var unmapped []string
	for key, value := range root.All() {
		var (
			chunkType schema.ChunkType
			err       error
		)
		switch key {
		case formatKey:
		case versionKey:
			doc.Version, err = value.Uint32(key)
		case paddingKey:
			err = readPadding(value, &doc.Padding)
		case chunkOrderKey:
			doc.ChunkOrder, err = readChunkOrder(value)
		case boardKey:
			chunkType = schema.ChunkBoardBase
			doc.Board, err = r.board(value)
		case seedBankKey:
			chunkType = schema.ChunkSeedBank
			doc.SeedBank, err = r.record(entity.SeedBankLayout, value, key, chunkType)
		case seedPacketsKey:
			chunkType = schema.ChunkSeedPackets
			doc.SeedPackets, err = r.seedPackets(value)
		case challengeKey:
			chunkType = schema.ChunkChallenge
			doc.Challenge, err = r.challenge(value)
		case binaryChunksKey:
			err = r.binaryChunks(value, doc.BinaryChunks)
		case payloadTrailerKey:
			doc.PayloadTrailer, err = value.Raw(key)
		case fileTrailerKey:
			doc.FileTrailer, err = value.Raw(key)
		default:
			if !isObjectKey(key) {
				unmapped = append(unmapped, key)
			}
		}
		if err != nil {
			if err := r.fail(chunkType, err); err != nil {
				return nil, err
			}
		}
	}
	if err := r.unmapped("", unmapped); err != nil {
		return nil, err
	}

	for _, kind := range objectKinds {
		header, hasHeader := root.Get(kind.header)
		list, hasList := root.Get(kind.key)
		if !hasHeader && !hasList {
			continue
		}
		array, err := r.objects(kind, header, hasHeader, list, hasList)
		if err != nil {
			if err := r.fail(kind.chunk, err); err != nil {
				return nil, err
			}
			continue
		}
		*kind.array(doc) = array
	}
	return doc, nil
}

func isObjectKey(key string) bool {
	for _, kind := range objectKinds {
		if key == kind.key || key == kind.header {
			return true
		}
	}
	return false
}

func readPadding(value document.Value, padding *[2]byte) error {
	raw, err := value.Raw(paddingKey)
	if err != nil {
		return err
	}
	if len(raw) != len(padding) {
		return &FieldTypeError{Path: paddingKey, Want: "2 bytes", Got: value.String()}
	}
	copy(padding[:], raw)
	return nil
}

// readChunkOrder accepts chunk type numbers or chunk names.
func readChunkOrder(value document.Value) ([]schema.ChunkType, error) {
	items, err := value.List(chunkOrderKey)
	if err != nil {
		return nil, err
	}
	order := make([]schema.ChunkType, 0, len(items))
	for index, item := range items {
		path := document.Index(chunkOrderKey, index)
		if name, isName := item.AsString(); isName {
			chunkType, err := schema.ParseChunkName(name)
			if err != nil {
				return nil, &FieldTypeError{Path: path, Want: "chunk type", Got: item.String()}
			}
			order = append(order, chunkType)
			continue
		}
		number, err := item.Uint32(path)
		if err != nil {
			return nil, err
		}
		order = append(order, schema.ChunkType(number))
	}
	return order, nil
}

// board keeps every key that resolves to a board field id.
func (r *treeReader) board(value document.Value) (*document.Map, error) {
	m, err := value.Object(boardKey)
	if err != nil {
		return nil, err
	}
	board := document.NewMap(m.Len())
	var unmapped []string
	for name, fieldValue := range m.All() {
		if _, ok := schema.Board.Resolve(name); !ok {
			unmapped = append(unmapped, document.Join(boardKey, name))
			continue
		}
		board.Set(name, fieldValue)
	}
	if err := r.unmapped(schema.ChunkBoardBase.String(), unmapped); err != nil {
		return nil, err
	}
	return board, nil
}

// record reads a record that always carries a tail, such as the seed
// bank or a seed packet.
func (r *treeReader) record(layout *entity.Layout, value document.Value, path string, chunkType schema.ChunkType) (*entity.Record, error) {
	m, err := value.Object(path)
	if err != nil {
		return nil, err
	}
	record, unmapped, err := entity.FromMap(layout, m, path, true)
	if err != nil {
		return nil, err
	}
	if err := r.unmapped(chunkType.String(), unmapped); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *treeReader) seedPackets(value document.Value) (*SeedPacketList, error) {
	items, err := value.List(seedPacketsKey)
	if err != nil {
		return nil, err
	}
	list := &SeedPacketList{Packets: make([]entity.Record, 0, len(items))}
	for index, item := range items {
		record, err := r.record(entity.SeedPacketLayout, item, document.Index(seedPacketsKey, index), schema.ChunkSeedPackets)
		if err != nil {
			return nil, err
		}
		list.Packets = append(list.Packets, *record)
	}
	return list, nil
}

func (r *treeReader) challenge(value document.Value) (*Challenge, error) {
	m, err := value.Object(challengeKey)
	if err != nil {
		return nil, err
	}
	challenge := &Challenge{}
	var unmapped []string
	for key, fieldValue := range m.All() {
		path := document.Join(challengeKey, key)
		if field, registered := schema.Challenge.ByName(key); registered && field.Opaque() {
			if challenge.Data, err = fieldValue.Raw(path); err != nil {
				return nil, err
			}
			continue
		}
		id, ok := schema.ParseExtraFieldName(key)
		if _, registered := schema.Challenge.ByID(id); !ok || registered {
			unmapped = append(unmapped, path)
			continue
		}
		raw, err := fieldValue.Raw(path)
		if err != nil {
			return nil, err
		}
		if challenge.Others == nil {
			challenge.Others = make(tlv.Fields)
		}
		challenge.Others[id] = raw
	}
	if err := r.unmapped(schema.ChunkChallenge.String(), unmapped); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (r *treeReader) binaryChunks(value document.Value, chunks map[schema.ChunkType][]byte) error {
	m, err := value.Object(binaryChunksKey)
	if err != nil {
		return err
	}
	var unmapped []string
	for name, data := range m.All() {
		path := document.Join(binaryChunksKey, name)
		chunkType, err := schema.ParseChunkName(name)
		if err != nil {
			unmapped = append(unmapped, path)
			continue
		}
		raw, err := data.Raw(path)
		if err != nil {
			return err
		}
		chunks[chunkType] = raw
	}
	return r.unmapped("", unmapped)
}

// objects reads a slotted collection. A missing max_used_count defaults
// to the number of objects; other missing counters default to zero.
func (r *treeReader) objects(kind objectKind, headerValue document.Value, hasHeader bool, listValue document.Value, hasList bool) (*ObjectArray, error) {
	var items []document.Value
	if hasList {
		var err error
		if items, err = listValue.List(kind.key); err != nil {
			return nil, err
		}
	}

	header := dataarray.Header{MaxUsedCount: uint32(len(items))}
	var unmapped []string
	if hasHeader {
		m, err := headerValue.Object(kind.header)
		if err != nil {
			return nil, err
		}
		counters := headerCounters(&header)
		for key, value := range m.All() {
			path := document.Join(kind.header, key)
			index := slices.Index(headerKeys, key)
			if index < 0 {
				unmapped = append(unmapped, path)
				continue
			}
			if *counters[index], err = value.Uint32(path); err != nil {
				return nil, err
			}
		}
	}

	layout := entity.LayoutFor(kind.kind)
	array := &ObjectArray{Header: header, Objects: make([]Object, 0, len(items))}
	for index, item := range items {
		path := document.Index(kind.key, index)
		m, err := item.Object(path)
		if err != nil {
			return nil, err
		}
		var id uint32
		if value, ok := m.Get(entity.IDKey); ok {
			if id, err = value.Uint32(document.Join(path, entity.IDKey)); err != nil {
				return nil, err
			}
		}
		record, extra, err := entity.FromMap(layout, m, path, dataarray.Active(id))
		if err != nil {
			return nil, err
		}
		unmapped = append(unmapped, extra...)
		array.Objects = append(array.Objects, Object{ID: id, Record: record})
	}
	if err := r.unmapped(kind.chunk.String(), unmapped); err != nil {
		return nil, err
	}
	return array, nil
}
