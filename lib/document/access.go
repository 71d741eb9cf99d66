// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"math"
	"strconv"
)

// TypeError reports a document value whose kind or range does not fit
// the binary field it maps to.
type TypeError struct {
	// Path locates the value, e.g. "zombies[3].pos_x".
	Path string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", e.Path, e.Want, e.Got)
}

// Join appends a map key to a document path.
func Join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Index appends a sequence index to a document path.
func Index(path string, index int) string {
	return path + "[" + strconv.Itoa(index) + "]"
}

func typeError(path, want string, v Value) *TypeError {
	return &TypeError{Path: path, Want: want, Got: v.String()}
}

// Int32 converts v to an int32, failing on other kinds and out-of-range
// integers.
func (v Value) Int32(path string) (int32, error) {
	i, ok := v.AsInt()
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, typeError(path, "i32", v)
	}
	return int32(i), nil
}

// Uint32 converts v to a uint32.
func (v Value) Uint32(path string) (uint32, error) {
	i, ok := v.AsInt()
	if !ok || i < 0 || i > math.MaxUint32 {
		return 0, typeError(path, "u32", v)
	}
	return uint32(i), nil
}

// Int64 converts v to an int64.
func (v Value) Int64(path string) (int64, error) {
	i, ok := v.AsInt()
	if !ok {
		return 0, typeError(path, "i64", v)
	}
	return i, nil
}

// Float32 converts v to a float32. Integers are accepted.
func (v Value) Float32(path string) (float32, error) {
	f, ok := v.AsFloat()
	if !ok {
		return 0, typeError(path, "f32", v)
	}
	return float32(f), nil
}

// Boolean converts v to a bool.
func (v Value) Boolean(path string) (bool, error) {
	b, ok := v.AsBool()
	if !ok {
		return false, typeError(path, "bool", v)
	}
	return b, nil
}

// Text converts v to a string.
func (v Value) Text(path string) (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", typeError(path, "string", v)
	}
	return s, nil
}

// Raw converts v to a byte string.
func (v Value) Raw(path string) ([]byte, error) {
	b, ok := v.AsBytes()
	if !ok {
		return nil, typeError(path, "bytes", v)
	}
	return b, nil
}

// Object converts v to a map.
func (v Value) Object(path string) (*Map, error) {
	m, ok := v.AsMap()
	if !ok {
		return nil, typeError(path, "map", v)
	}
	return m, nil
}

// List converts v to a sequence.
func (v Value) List(path string) ([]Value, error) {
	items, ok := v.AsSeq()
	if !ok {
		return nil, typeError(path, "seq", v)
	}
	return items, nil
}
