// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"bytes"
	"log/slog"

	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

// DecodeOptions configures [Decode].
type DecodeOptions struct {
	// ExpandWaves decodes the board's zombies_in_wave field into one
	// list of zombie type names per wave instead of a byte string.
	ExpandWaves bool

	// Logger receives every diagnostic at Warn. If nil, diagnostics are
	// only returned.
	Logger *slog.Logger
}

// Decode parses a save file. Container errors are fatal and returned
// as the savefile package's typed errors; every problem below the
// container degrades to opaque bytes and a diagnostic.
func Decode(data []byte, options DecodeOptions) (*Document, []Diagnostic, error) {
	file, err := savefile.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	diagnostics := newCollector(options.Logger)
	if file.Version != savefile.FormatVersion {
		diagnostics.addf(CodeVersionMismatch, "", "_version",
			"header version is %d, this converter writes %d; continuing", file.Version, savefile.FormatVersion)
	}
	if repeated := file.Repeated; repeated != nil {
		diagnostics.addf(CodeDuplicateChunk, repeated.Type.String(), payloadTrailerKey,
			"chunk %s repeats at offset %d; it and the rest of the payload are kept as trailer bytes",
			repeated.Type, repeated.Offset)
	}

	doc := &Document{
		Version:        file.Version,
		Padding:        file.Padding,
		ChunkOrder:     make([]schema.ChunkType, 0, len(file.Chunks)),
		BinaryChunks:   make(map[schema.ChunkType][]byte),
		PayloadTrailer: bytes.Clone(file.PayloadTrailer),
		FileTrailer:    bytes.Clone(file.FileTrailer),
	}
	for _, chunk := range file.Chunks {
		doc.ChunkOrder = append(doc.ChunkOrder, chunk.Type)
		if !isStructured(chunk.Type) {
			doc.BinaryChunks[chunk.Type] = bytes.Clone(chunk.Data)
			continue
		}
		// Diagnostics from inside a chunk only count if the chunk stays
		// structured.
		local := &collector{}
		if err := decodeChunk(doc, chunk, options, local); err != nil {
			doc.clearSection(chunk.Type)
			doc.BinaryChunks[chunk.Type] = bytes.Clone(chunk.Data)
			diagnostics.addf(CodeChunkFallback, chunk.Type.String(), "binary_chunks."+chunk.Type.String(),
				"chunk kept as opaque bytes: %v", err)
			continue
		}
		diagnostics.merge(local)
	}
	return doc, diagnostics.list, nil
}

// Export decodes a save file and renders it as a document tree.
func Export(data []byte, options DecodeOptions) (document.Value, []Diagnostic, error) {
	doc, diagnostics, err := Decode(data, options)
	if err != nil {
		return document.Value{}, nil, err
	}
	return doc.Tree(), diagnostics, nil
}

// decodeChunk decodes one chunk into its section of doc and checks that
// the section encodes back to the chunk's bytes.
func decodeChunk(doc *Document, chunk savefile.Chunk, options DecodeOptions, diagnostics *collector) error {
	body, err := savefile.UnwrapChunkData(chunk.Data)
	if err != nil {
		return err
	}
	switch chunk.Type {
	case schema.ChunkBoardBase:
		doc.Board, err = decodeBoard(body, options.ExpandWaves, diagnostics)
	case schema.ChunkSeedBank:
		doc.SeedBank, err = decodeSeedBank(body, diagnostics)
	case schema.ChunkSeedPackets:
		doc.SeedPackets, err = decodeSeedPackets(body, diagnostics)
	case schema.ChunkChallenge:
		doc.Challenge, err = decodeChallenge(body)
	default:
		kind, _ := objectKindFor(chunk.Type)
		*kind.array(doc), err = decodeObjects(body, kind, diagnostics)
	}
	if err != nil {
		return err
	}

	reencoded, err := encodeSection(doc, chunk.Type, &collector{})
	if err != nil {
		return err
	}
	if !bytes.Equal(savefile.WrapChunkData(reencoded), chunk.Data) {
		return errNotReproduced
	}
	return nil
}
