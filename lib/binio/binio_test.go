// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binio

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestWriterLayout(t *testing.T) {
	var w Writer
	w.Uint32(0x04030201)
	w.Int32(-1)
	w.Bool(true)
	w.Bool(false)
	w.Int64(-2)
	w.Float32(1.5)

	want := []byte{
		0x01, 0x02, 0x03, 0x04,
		0xff, 0xff, 0xff, 0xff,
		0x01,
		0x00,
		0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x00, 0x00, 0xc0, 0x3f,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = %x, want %x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", w.Len(), len(want))
	}
}

func TestReaderReadsWhatWriterWrote(t *testing.T) {
	w := NewWriter(32)
	w.Int32(-123456)
	w.Uint32(0xdeadbeef)
	w.Int64(math.MinInt64)
	w.Uint64(math.MaxUint64)
	w.Float32(-0.25)
	w.Bool(true)
	w.Uint8(0x7f)

	r := NewReader(w.Bytes())
	if v, err := r.Int32(); err != nil || v != -123456 {
		t.Fatalf("Int32 = %d, %v", v, err)
	}
	if v, err := r.Uint32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("Uint32 = %#x, %v", v, err)
	}
	if v, err := r.Int64(); err != nil || v != math.MinInt64 {
		t.Fatalf("Int64 = %d, %v", v, err)
	}
	if v, err := r.Uint64(); err != nil || v != math.MaxUint64 {
		t.Fatalf("Uint64 = %d, %v", v, err)
	}
	if v, err := r.Float32(); err != nil || v != -0.25 {
		t.Fatalf("Float32 = %v, %v", v, err)
	}
	if v, err := r.Bool(); err != nil || !v {
		t.Fatalf("Bool = %v, %v", v, err)
	}
	if v, err := r.Uint8(); err != nil || v != 0x7f {
		t.Fatalf("Uint8 = %#x, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d after reading everything", r.Remaining())
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})

	_, err := r.Uint32()
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("Uint32 on 3 bytes: err = %v, want ErrShortBuffer", err)
	}
	if r.Offset() != 0 {
		t.Errorf("failed read advanced the cursor to %d", r.Offset())
	}

	if err := r.Skip(2); err != nil {
		t.Fatalf("Skip(2): %v", err)
	}
	if _, err := r.Bytes(2); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("Bytes(2) with 1 remaining: err = %v, want ErrShortBuffer", err)
	}
	if _, err := r.Bytes(-1); err == nil {
		t.Error("Bytes(-1) should fail")
	}
}

func TestReaderBoolNonZero(t *testing.T) {
	r := NewReader([]byte{0, 1, 2})
	for i, want := range []bool{false, true, true} {
		got, err := r.Bool()
		if err != nil {
			t.Fatalf("Bool #%d: %v", i, err)
		}
		if got != want {
			t.Errorf("Bool #%d = %v, want %v", i, got, want)
		}
	}
}

func TestReaderBytesCapacityIsCapped(t *testing.T) {
	source := []byte{1, 2, 3, 4}
	r := NewReader(source)
	head, err := r.Bytes(2)
	if err != nil {
		t.Fatalf("Bytes(2): %v", err)
	}
	head = append(head, 9)
	if source[2] != 3 {
		t.Errorf("appending to a returned slice overwrote the source: %v", source)
	}
	if got := r.Rest(); !bytes.Equal(got, []byte{3, 4}) {
		t.Errorf("Rest() = %v, want [3 4]", got)
	}
	if got := r.Rest(); got != nil {
		t.Errorf("Rest() on exhausted reader = %v, want nil", got)
	}
}
