// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is wrapped by every read that needs more bytes than
// remain in the buffer.
var ErrShortBuffer = errors.New("short buffer")

// Reader reads little-endian values from a byte slice.
type Reader struct {
	data   []byte
	offset int
}

// NewReader returns a Reader positioned at the start of data. The
// slice is not copied; slices returned by [Reader.Bytes] alias it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.offset }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.offset }

// Bytes returns the next n bytes. The returned slice has its capacity
// capped at n so that appending to it never overwrites the source.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length %d", n)
	}
	if n > r.Remaining() {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w",
			n, r.offset, r.Remaining(), ErrShortBuffer)
	}
	start := r.offset
	r.offset += n
	return r.data[start:r.offset:r.offset], nil
}

// Rest consumes and returns every unread byte. Returns nil when the
// reader is exhausted.
func (r *Reader) Rest() []byte {
	if r.Remaining() == 0 {
		return nil
	}
	rest, _ := r.Bytes(r.Remaining())
	return rest
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.Bytes(n)
	return err
}

// Uint8 reads one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads one byte and reports whether it is non-zero.
func (r *Reader) Bool() (bool, error) {
	b, err := r.Uint8()
	return b != 0, err
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int32 reads a little-endian two's-complement int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int64 reads a little-endian two's-complement int64.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Float32 reads a little-endian IEEE-754 binary32 value.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}
