// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format is a document serialization.
type Format uint8

const (
	FormatYAML Format = iota
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// ParseFormat parses a format from its string representation.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("unknown document format: %q", name)
	}
}

// Compression is the envelope wrapped around a serialized document.
type Compression uint8

const (
	CompressionNone Compression = iota
	// CompressionZstd is a standard zstd frame.
	CompressionZstd
	// CompressionLZ4 is a standard LZ4 frame, not a bare block, so the
	// output is readable by the lz4 command-line tool.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression from its string representation.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// maxDecompressedSize bounds envelope decompression. Exported save
// documents are a few megabytes at most.
const maxDecompressedSize = 256 << 20

// zstdEncoder and zstdDecoder are safe for concurrent use and reused
// across calls.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		panic("document: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressedSize))
	if err != nil {
		panic("document: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress wraps data in the given envelope. CompressionNone returns
// data unchanged.
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if err := writer.Apply(lz4.ChecksumOption(true)); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

// DetectCompression identifies the envelope from the frame magic.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Decompress removes the envelope detected on data and reports which
// one it was.
func Decompress(data []byte) ([]byte, Compression, error) {
	compression := DetectCompression(data)
	switch compression {
	case CompressionZstd:
		plain, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, compression, fmt.Errorf("zstd decompress: %w", err)
		}
		return plain, compression, nil
	case CompressionLZ4:
		reader := io.LimitReader(lz4.NewReader(bytes.NewReader(data)), maxDecompressedSize+1)
		plain, err := io.ReadAll(reader)
		if err != nil {
			return nil, compression, fmt.Errorf("lz4 decompress: %w", err)
		}
		if len(plain) > maxDecompressedSize {
			return nil, compression, fmt.Errorf("lz4 decompress: output exceeds %d bytes", maxDecompressedSize)
		}
		return plain, compression, nil
	default:
		return data, CompressionNone, nil
	}
}

// DetectFormat identifies the serialization of uncompressed document
// bytes. A CBOR document is a map, whose initial byte (major type 5)
// can never start UTF-8 text.
func DetectFormat(data []byte) Format {
	if len(data) > 0 && data[0]>>5 == 5 {
		return FormatCBOR
	}
	return FormatYAML
}

// Marshal serializes v and wraps it in the requested envelope.
func Marshal(v Value, format Format, compression Compression) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = MarshalYAML(v)
	case FormatCBOR:
		data, err = MarshalCBOR(v)
	default:
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return Compress(data, compression)
}

// Unmarshal reverses [Marshal], detecting the envelope and the format.
func Unmarshal(data []byte) (Value, Format, Compression, error) {
	plain, compression, err := Decompress(data)
	if err != nil {
		return Value{}, 0, compression, err
	}
	format := DetectFormat(plain)
	var value Value
	switch format {
	case FormatCBOR:
		value, err = UnmarshalCBOR(plain)
	default:
		value, err = UnmarshalYAML(plain)
	}
	if err != nil {
		return Value{}, format, compression, err
	}
	return value, format, compression, nil
}
