// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"fmt"
	"math"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindSeq
	KindMap
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindBytes:  "bytes",
	KindSeq:    "seq",
	KindMap:    "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is one node of a document tree. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	float   float64
	text    string
	raw     []byte
	seq     []Value
	m       *Map
}

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }
func Int(i int64) Value { return Value{kind: KindInt, integer: i} }
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }
func String(s string) Value { return Value{kind: KindString, text: s} }
func Seq(items ...Value) Value { return Value{kind: KindSeq, seq: items} }

// MapValue wraps m. A nil m becomes an empty map.
func MapValue(m *Map) Value {
	if m == nil {
		m = NewMap(0)
	}
	return Value{kind: KindMap, m: m}
}

// Bytes wraps b without copying.
func Bytes(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{kind: KindBytes, raw: b}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == KindBool }

func (v Value) AsInt() (int64, bool) { return v.integer, v.kind == KindInt }

// AsFloat accepts integers as well as floats, since hand-edited YAML
// often drops the fractional part.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.float, true
	case KindInt:
		return float64(v.integer), true
	default:
		return 0, false
	}
}

func (v Value) AsString() (string, bool) { return v.text, v.kind == KindString }

func (v Value) AsBytes() ([]byte, bool) { return v.raw, v.kind == KindBytes }

func (v Value) AsSeq() ([]Value, bool) { return v.seq, v.kind == KindSeq }

func (v Value) AsMap() (*Map, bool) { return v.m, v.kind == KindMap && v.m != nil }

// Equal reports whether a and b hold the same tree. Floats compare by
// bit pattern, so NaN equals an identical NaN. Map key order is not
// significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindInt:
		return a.integer == b.integer
	case KindFloat:
		return math.Float64bits(a.float) == math.Float64bits(b.float)
	case KindString:
		return a.text == b.text
	case KindBytes:
		return bytes.Equal(a.raw, b.raw)
	case KindSeq:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return a.m.Equal(b.m)
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprint(v.boolean)
	case KindInt:
		return fmt.Sprint(v.integer)
	case KindFloat:
		return formatFloat(v.float)
	case KindString:
		return fmt.Sprintf("%q", v.text)
	case KindBytes:
		return fmt.Sprintf("bytes[%d]", len(v.raw))
	case KindSeq:
		return fmt.Sprintf("seq[%d]", len(v.seq))
	case KindMap:
		return fmt.Sprintf("map[%d]", v.m.Len())
	default:
		return v.kind.String()
	}
}
