// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

// EncodeOptions configures [Encode] and [FromTree].
type EncodeOptions struct {
	// DropUnmappable drops document fields that map to no field id,
	// recording an unmappable_field diagnostic for each, instead of
	// failing with [*UnmappableFieldError].
	DropUnmappable bool

	// Logger receives every diagnostic at Warn. If nil, diagnostics are
	// only returned.
	Logger *slog.Logger
}

var errNotReproduced = errors.New("structured form does not reproduce the chunk bytes")

// Encode writes doc as a save file: its chunks in ChunkOrder, each from
// BinaryChunks if present there, else from its structured section.
func Encode(doc *Document, options EncodeOptions) ([]byte, []Diagnostic, error) {
	diagnostics := newCollector(options.Logger)
	file, err := encodeFile(doc, diagnostics, nil)
	if err != nil {
		return nil, nil, err
	}
	return file.Encode(), diagnostics.list, nil
}

// encodeFile assembles the container. With a non-nil problems slice,
// chunk errors are appended there and encoding continues.
func encodeFile(doc *Document, diagnostics *collector, problems *[]error) (*savefile.File, error) {
	fail := func(err error) error {
		if problems == nil {
			return err
		}
		*problems = append(*problems, err)
		return nil
	}

	file := &savefile.File{
		Version:        doc.Version,
		Padding:        doc.Padding,
		Chunks:         make([]savefile.Chunk, 0, len(doc.ChunkOrder)),
		PayloadTrailer: doc.PayloadTrailer,
		FileTrailer:    doc.FileTrailer,
	}
	listed := make(map[schema.ChunkType]bool, len(doc.ChunkOrder))
	for _, chunkType := range doc.ChunkOrder {
		if listed[chunkType] {
			if err := fail(fmt.Errorf("chunk %s appears twice in the chunk order: %w", chunkType, savefile.ErrDuplicateChunk)); err != nil {
				return nil, err
			}
			continue
		}
		listed[chunkType] = true

		if data, ok := doc.BinaryChunks[chunkType]; ok {
			file.Chunks = append(file.Chunks, savefile.Chunk{Type: chunkType, Data: data})
			continue
		}
		if !doc.hasSection(chunkType) {
			if err := fail(&MissingChunkError{Chunk: chunkType}); err != nil {
				return nil, err
			}
			continue
		}
		body, err := encodeSection(doc, chunkType, diagnostics)
		if err != nil {
			if err := fail(fmt.Errorf("encoding chunk %s: %w", chunkType, err)); err != nil {
				return nil, err
			}
			continue
		}
		file.Chunks = append(file.Chunks, savefile.Chunk{Type: chunkType, Data: savefile.WrapChunkData(body)})
	}

	for _, chunkType := range structuredChunks {
		if doc.hasSection(chunkType) && !listed[chunkType] {
			diagnostics.addf(CodeOrphanSection, chunkType.String(), "",
				"section ignored: chunk %s is not in the chunk order", chunkType)
		}
	}
	for _, chunkType := range slices.Sorted(maps.Keys(doc.BinaryChunks)) {
		if !listed[chunkType] {
			diagnostics.addf(CodeOrphanSection, chunkType.String(), "binary_chunks."+chunkType.String(),
				"opaque chunk ignored: chunk %s is not in the chunk order", chunkType)
		}
	}
	return file, nil
}

// encodeSection writes the field bytes of the structured section for
// chunkType, without the chunk framing.
func encodeSection(doc *Document, chunkType schema.ChunkType, diagnostics *collector) ([]byte, error) {
	switch chunkType {
	case schema.ChunkBoardBase:
		return encodeBoard(doc.Board, diagnostics)
	case schema.ChunkSeedBank:
		return encodeSeedBank(doc.SeedBank, diagnostics)
	case schema.ChunkSeedPackets:
		return encodeSeedPackets(doc.SeedPackets, diagnostics)
	case schema.ChunkChallenge:
		return encodeChallenge(doc.Challenge), nil
	}
	kind, ok := objectKindFor(chunkType)
	if !ok {
		return nil, fmt.Errorf("chunk %s has no structured form", chunkType)
	}
	return encodeObjects(*kind.array(doc), kind, diagnostics)
}
