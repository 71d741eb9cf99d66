// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"bytes"
	"fmt"
	"math"

	"github.com/pvzportable/pvzp-save/lib/binio"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/entity"
	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/schema"
	"github.com/pvzportable/pvzp-save/lib/tlv"
)

const boardKey = "board"

// decodeBoard decodes a BOARD_BASE body into a map keyed by field name,
// in ascending field id order. Fields whose payload cannot be
// reproduced from a typed value keep their bytes.
func decodeBoard(body []byte, expandWaves bool, diagnostics *collector) (*document.Map, error) {
	blob, err := savefile.UnwrapBlob(body)
	if err != nil {
		return nil, err
	}
	fields := tlv.Parse(blob)
	board := document.NewMap(len(fields))
	chunk := schema.ChunkBoardBase.String()
	for _, id := range fields.IDs() {
		payload := fields[id]
		name := schema.Board.NameFor(id)
		path := document.Join(boardKey, name)
		field, known := schema.Board.ByID(id)
		if !known {
			board.Set(name, document.Bytes(bytes.Clone(payload)))
			continue
		}
		if field.ID == schema.FieldZombiesInWave && expandWaves {
			roster, err := decodeWaves(payload)
			if err != nil {
				diagnostics.addf(CodeWaveRosterOpaque, chunk, path, "wave roster kept as bytes: %v", err)
				board.Set(name, document.Bytes(bytes.Clone(payload)))
				continue
			}
			board.Set(name, roster)
			continue
		}
		if field.Opaque() {
			board.Set(name, document.Bytes(bytes.Clone(payload)))
			continue
		}
		value, err := decodeBoardField(field, payload)
		if err != nil {
			diagnostics.addf(CodeFieldFallback, chunk, path, "%s field kept as bytes: %v", field.Type, err)
			board.Set(name, document.Bytes(bytes.Clone(payload)))
			continue
		}
		board.Set(name, value)
	}
	return board, nil
}

func decodeBoardField(field schema.Field, payload []byte) (document.Value, error) {
	if size := field.Type.Size(); len(payload) != size {
		return document.Value{}, fmt.Errorf("payload is %d bytes, want %d", len(payload), size)
	}
	r := binio.NewReader(payload)
	switch field.Type {
	case schema.TypeBool:
		if payload[0] > 1 {
			return document.Value{}, fmt.Errorf("bool byte is %#x", payload[0])
		}
		v, _ := r.Bool()
		return document.Bool(v), nil
	case schema.TypeInt32:
		v, _ := r.Int32()
		return document.Int(int64(v)), nil
	case schema.TypeInt64:
		v, _ := r.Int64()
		return document.Int(v), nil
	case schema.TypeFloat32:
		v, _ := r.Float32()
		if math.IsNaN(float64(v)) {
			return document.Value{}, fmt.Errorf("NaN payload %x", payload)
		}
		return document.Float(float64(v)), nil
	case schema.TypeEnum:
		v, _ := r.Int32()
		return document.String(field.Enum.Name(v)), nil
	default:
		return document.Value{}, fmt.Errorf("field type %s has no scalar form", field.Type)
	}
}

// encodeBoard writes a BOARD_BASE body. Every key must resolve to a
// field id.
func encodeBoard(board *document.Map, diagnostics *collector) ([]byte, error) {
	fields := make(tlv.Fields, board.Len())
	for name, value := range board.All() {
		path := document.Join(boardKey, name)
		ref, ok := schema.Board.Resolve(name)
		if !ok {
			return nil, &UnmappableFieldError{Path: path}
		}
		if fields.Has(ref.ID) {
			return nil, fmt.Errorf("%s: field id %d is already set by another key", path, ref.ID)
		}
		payload, err := encodeBoardField(ref, value, path, diagnostics)
		if err != nil {
			return nil, err
		}
		fields[ref.ID] = payload
	}
	return savefile.WrapBlob(tlv.Encode(fields)), nil
}

func encodeBoardField(ref schema.Ref, value document.Value, path string, diagnostics *collector) ([]byte, error) {
	// Byte strings are payloads kept opaque on decode, for any field.
	if raw, ok := value.AsBytes(); ok {
		return raw, nil
	}
	if !ref.Known {
		return value.Raw(path)
	}
	field := ref.Field
	if field.ID == schema.FieldZombiesInWave {
		if _, isSeq := value.AsSeq(); isSeq {
			return encodeWaves(value, path, diagnostics)
		}
	}
	if field.Opaque() {
		return value.Raw(path)
	}

	w := binio.NewWriter(8)
	switch field.Type {
	case schema.TypeBool:
		v, err := value.Boolean(path)
		if err != nil {
			return nil, err
		}
		w.Bool(v)
	case schema.TypeInt32:
		v, err := value.Int32(path)
		if err != nil {
			return nil, err
		}
		w.Int32(v)
	case schema.TypeInt64:
		v, err := value.Int64(path)
		if err != nil {
			return nil, err
		}
		w.Int64(v)
	case schema.TypeFloat32:
		v, err := value.Float32(path)
		if err != nil {
			return nil, err
		}
		w.Float32(v)
	case schema.TypeEnum:
		v, warning, err := entity.EnumValue(field.Enum, value, 0, path)
		if err != nil {
			return nil, err
		}
		if warning != nil {
			diagnostics.addf(CodeUnrecognizedEnum, schema.ChunkBoardBase.String(), warning.Path, "%s", warning.Message)
		}
		w.Int32(v)
	default:
		return nil, fmt.Errorf("%s: field type %s cannot be encoded from a scalar", path, field.Type)
	}
	return w.Bytes(), nil
}
