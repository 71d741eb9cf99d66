// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"
	"fmt"

	"github.com/pvzportable/pvzp-save/lib/codec"
)

// maxCBORDepth bounds container nesting when decoding. Save documents
// nest a handful of levels; anything deeper is not a document.
const maxCBORDepth = 64

// MarshalCBOR encodes v as one CBOR item. Scalars use the deterministic
// encoder. Maps are framed here so their key order survives, which the
// deterministic encoder would otherwise sort away. NaN floats lose
// their payload bits.
func MarshalCBOR(v Value) ([]byte, error) {
	return appendCBOR(nil, v)
}

func appendCBOR(buf []byte, v Value) ([]byte, error) {
	var err error
	switch v.kind {
	case KindSeq:
		buf = codec.AppendHead(buf, codec.MajorArray, uint64(len(v.seq)))
		for _, item := range v.seq {
			if buf, err = appendCBOR(buf, item); err != nil {
				return nil, err
			}
		}
		return buf, nil
	case KindMap:
		buf = codec.AppendHead(buf, codec.MajorMap, uint64(v.m.Len()))
		for key, value := range v.m.All() {
			if buf, err = appendScalar(buf, key); err != nil {
				return nil, err
			}
			if buf, err = appendCBOR(buf, value); err != nil {
				return nil, err
			}
		}
		return buf, nil
	case KindNull:
		return appendScalar(buf, nil)
	case KindBool:
		return appendScalar(buf, v.boolean)
	case KindInt:
		return appendScalar(buf, v.integer)
	case KindFloat:
		return appendScalar(buf, v.float)
	case KindString:
		return appendScalar(buf, v.text)
	case KindBytes:
		return appendScalar(buf, v.raw)
	default:
		return nil, fmt.Errorf("encoding CBOR: unsupported value kind %s", v.kind)
	}
}

func appendScalar(buf []byte, scalar any) ([]byte, error) {
	encoded, err := codec.Marshal(scalar)
	if err != nil {
		return nil, fmt.Errorf("encoding CBOR: %w", err)
	}
	return append(buf, encoded...), nil
}

// UnmarshalCBOR decodes a single CBOR item into a Value. Trailing bytes
// are an error.
func UnmarshalCBOR(data []byte) (Value, error) {
	value, rest, err := decodeCBOR(data, 0)
	if err != nil {
		return Value{}, fmt.Errorf("decoding CBOR: %w", err)
	}
	if len(rest) != 0 {
		return Value{}, fmt.Errorf("decoding CBOR: %d trailing bytes after the document", len(rest))
	}
	return value, nil
}

var errTooDeep = errors.New("containers nested too deeply")

func decodeCBOR(data []byte, depth int) (Value, []byte, error) {
	if depth > maxCBORDepth {
		return Value{}, nil, errTooDeep
	}
	major, argument, body, err := codec.ReadHead(data)
	if err != nil {
		return Value{}, nil, err
	}

	switch major {
	case codec.MajorArray:
		// Every element takes at least one byte, which bounds the
		// preallocation for a hostile length.
		items := make([]Value, 0, min(argument, uint64(len(body))))
		for range argument {
			var item Value
			if item, body, err = decodeCBOR(body, depth+1); err != nil {
				return Value{}, nil, err
			}
			items = append(items, item)
		}
		return Seq(items...), body, nil

	case codec.MajorMap:
		m := NewMap(int(min(argument, uint64(len(body)/2))))
		for range argument {
			var key string
			if body, err = codec.UnmarshalFirst(body, &key); err != nil {
				return Value{}, nil, fmt.Errorf("map key: %w", err)
			}
			var value Value
			if value, body, err = decodeCBOR(body, depth+1); err != nil {
				return Value{}, nil, fmt.Errorf("%q: %w", key, err)
			}
			m.Set(key, value)
		}
		return MapValue(m), body, nil

	case codec.MajorUnsigned, codec.MajorNegative:
		var integer int64
		rest, err := codec.UnmarshalFirst(data, &integer)
		if err != nil {
			return Value{}, nil, err
		}
		return Int(integer), rest, nil

	case codec.MajorBytes:
		var raw []byte
		rest, err := codec.UnmarshalFirst(data, &raw)
		if err != nil {
			return Value{}, nil, err
		}
		return Bytes(raw), rest, nil

	case codec.MajorText:
		var text string
		rest, err := codec.UnmarshalFirst(data, &text)
		if err != nil {
			return Value{}, nil, err
		}
		return String(text), rest, nil

	case codec.MajorSimple:
		var simple any
		rest, err := codec.UnmarshalFirst(data, &simple)
		if err != nil {
			return Value{}, nil, err
		}
		switch typed := simple.(type) {
		case nil:
			return Null(), rest, nil
		case bool:
			return Bool(typed), rest, nil
		case float64:
			return Float(typed), rest, nil
		default:
			return Value{}, nil, fmt.Errorf("unsupported simple value %v", simple)
		}

	default:
		return Value{}, nil, fmt.Errorf("unsupported CBOR major type %d", major)
	}
}
