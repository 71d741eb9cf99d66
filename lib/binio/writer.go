// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binio

import (
	"encoding/binary"
	"math"
)

// Writer appends little-endian values to an in-memory buffer. The zero
// value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with capacity preallocated.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated buffer. The Writer keeps ownership;
// further writes may reuse the backing array.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Write appends p. It never fails; the error return satisfies io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// PutBytes appends p.
func (w *Writer) PutBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

// Uint8 appends one byte.
func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Bool appends 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

// Uint32 appends v little-endian.
func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Int32 appends v little-endian.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Uint64 appends v little-endian.
func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Int64 appends v little-endian.
func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// Float32 appends the IEEE-754 binary32 bits of v.
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}
