// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package savefile

import (
	"bytes"
	"fmt"
	"hash/crc32"

	"github.com/pvzportable/pvzp-save/lib/binio"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

const (
	// SignaturePrefix starts every PvZ-Portable save signature.
	SignaturePrefix = "PVZP_SAVE"
	// Generation is the only save generation this package reads.
	Generation byte = '4'
	// SignatureSize includes the generation digit and two padding bytes.
	SignatureSize = 12
	// HeaderSize is the signature plus version, length, and CRC.
	HeaderSize = SignatureSize + 12
	// FormatVersion is the header version written by the game.
	FormatVersion uint32 = 1
	// ChunkHeaderSize is the size of a chunk's type and size prefix.
	ChunkHeaderSize = 8
)

// FormatName is the display name of the container format.
const FormatName = SignaturePrefix + string(Generation)

// Chunk is one typed section of the payload.
type Chunk struct {
	Type schema.ChunkType
	Data []byte
}

// File is a parsed container.
type File struct {
	Version uint32
	// Padding holds signature bytes 10 and 11, zero in files the game
	// writes.
	Padding [2]byte
	// Chunks appear in file order, each type at most once.
	Chunks []Chunk
	// PayloadTrailer holds payload bytes after the last complete chunk,
	// or from the first repeated chunk on.
	PayloadTrailer []byte
	// Repeated is set when a chunk type occurs a second time. Chunk
	// parsing stops there and that chunk starts PayloadTrailer.
	Repeated *RepeatedChunk
	// FileTrailer holds bytes after the declared payload.
	FileTrailer []byte
}

// RepeatedChunk locates the second occurrence of a chunk type.
type RepeatedChunk struct {
	Type schema.ChunkType
	// Offset is the chunk's byte offset in the file.
	Offset int
}

// Parse reads a container. Chunk data and trailers alias data.
func Parse(data []byte) (*File, error) {
	if len(data) < HeaderSize {
		return nil, &StructuralError{
			Offset: len(data),
			Detail: fmt.Sprintf("file is %d bytes, the header alone is %d", len(data), HeaderSize),
			Err:    ErrTruncated,
		}
	}
	if !bytes.HasPrefix(data, []byte(SignaturePrefix)) {
		return nil, &StructuralError{
			Detail: fmt.Sprintf("signature %q does not start with %q", printable(data[:len(SignaturePrefix)]), SignaturePrefix),
			Err:    ErrInvalidSignature,
		}
	}
	generation := data[len(SignaturePrefix)]
	if generation != Generation {
		if generation >= '0' && generation <= '9' {
			return nil, &FormatMismatchError{Generation: int(generation - '0')}
		}
		return nil, &StructuralError{
			Offset: len(SignaturePrefix),
			Detail: fmt.Sprintf("generation byte %#x is not a digit", generation),
			Err:    ErrInvalidSignature,
		}
	}

	file := &File{Padding: [2]byte{data[10], data[11]}}
	header := binio.NewReader(data[SignatureSize:HeaderSize])
	file.Version, _ = header.Uint32()
	payloadSize, _ := header.Uint32()
	storedCRC, _ := header.Uint32()

	if uint64(payloadSize) > uint64(len(data)-HeaderSize) {
		return nil, &StructuralError{
			Offset: HeaderSize,
			Detail: fmt.Sprintf("header declares a %d-byte payload but only %d bytes follow", payloadSize, len(data)-HeaderSize),
			Err:    ErrTruncated,
		}
	}
	payload := data[HeaderSize : HeaderSize+int(payloadSize)]
	if computed := crc32.ChecksumIEEE(payload); computed != storedCRC {
		return nil, &IntegrityError{Stored: storedCRC, Computed: computed}
	}
	if rest := data[HeaderSize+int(payloadSize):]; len(rest) > 0 {
		file.FileTrailer = rest
	}

	seen := make(map[schema.ChunkType]bool)
	reader := binio.NewReader(payload)
	for reader.Remaining() >= ChunkHeaderSize {
		start := reader.Offset()
		rawType, _ := reader.Uint32()
		size, _ := reader.Uint32()
		if uint64(size) > uint64(reader.Remaining()) {
			reader = binio.NewReader(payload[start:])
			break
		}
		chunkData, _ := reader.Bytes(int(size))
		chunkType := schema.ChunkType(rawType)
		if seen[chunkType] {
			file.Repeated = &RepeatedChunk{Type: chunkType, Offset: HeaderSize + start}
			reader = binio.NewReader(payload[start:])
			break
		}
		seen[chunkType] = true
		file.Chunks = append(file.Chunks, Chunk{Type: chunkType, Data: chunkData})
	}
	if rest := reader.Rest(); len(rest) > 0 {
		file.PayloadTrailer = rest
	}
	return file, nil
}

// Chunk returns the data of the chunk with the given type.
func (f *File) Chunk(chunkType schema.ChunkType) ([]byte, bool) {
	for _, chunk := range f.Chunks {
		if chunk.Type == chunkType {
			return chunk.Data, true
		}
	}
	return nil, false
}

// Payload returns the encoded chunk sequence followed by the payload
// trailer.
func (f *File) Payload() []byte {
	size := len(f.PayloadTrailer)
	for _, chunk := range f.Chunks {
		size += ChunkHeaderSize + len(chunk.Data)
	}
	w := binio.NewWriter(size)
	for _, chunk := range f.Chunks {
		w.Uint32(uint32(chunk.Type))
		w.Uint32(uint32(len(chunk.Data)))
		w.PutBytes(chunk.Data)
	}
	w.PutBytes(f.PayloadTrailer)
	return w.Bytes()
}

// Encode writes the container, computing the payload length and CRC.
func (f *File) Encode() []byte {
	payload := f.Payload()
	w := binio.NewWriter(HeaderSize + len(payload) + len(f.FileTrailer))
	w.PutBytes([]byte(SignaturePrefix))
	w.Uint8(Generation)
	w.PutBytes(f.Padding[:])
	w.Uint32(f.Version)
	w.Uint32(uint32(len(payload)))
	w.Uint32(crc32.ChecksumIEEE(payload))
	w.PutBytes(payload)
	w.PutBytes(f.FileTrailer)
	return w.Bytes()
}

func printable(raw []byte) string {
	return string(bytes.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '.'
		}
		return r
	}, raw))
}
