// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/pvzportable/pvzp-save/lib/binio"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

// FieldType is the encoding of one tail field.
type FieldType uint8

const (
	I32 FieldType = iota
	U32
	F32
	Bool
	// Enum is an int32 rendered through the field's [schema.Enum].
	Enum
	// RectField is a [Rect].
	RectField
	// Raw is a fixed run of Size bytes.
	Raw
)

// Field is one entry of a tail layout.
type Field struct {
	Name string
	Type FieldType
	Enum *schema.Enum
	// Size is the byte count of a Raw field.
	Size int
	// Default is written when the document omits the field. A null
	// Default means the type's zero value.
	Default document.Value
}

func (f Field) size() int {
	switch f.Type {
	case Bool:
		return 1
	case RectField:
		return RectSize
	case Raw:
		return f.Size
	default:
		return 4
	}
}

// Layout is the fixed field order of one kind's tail.
type Layout struct {
	Kind   schema.Kind
	Fields []Field
	// Optional fields follow Fields. Decode reads them only when the
	// tail has room for all of them; Encode writes them only when the
	// map carries at least one of them.
	Optional []Field
}

// ExtraKey holds tail bytes left over after the last known field.
const ExtraKey = "_extra"

func groupSize(fields []Field) int {
	total := 0
	for _, field := range fields {
		total += field.size()
	}
	return total
}

// Size returns the tail size without optional fields or extra bytes.
func (l *Layout) Size() int { return groupSize(l.Fields) }

// Has reports whether name is a tail key of this layout.
func (l *Layout) Has(name string) bool {
	if name == ExtraKey {
		return true
	}
	isNamed := func(field Field) bool { return field.Name == name }
	return slices.ContainsFunc(l.Fields, isNamed) || slices.ContainsFunc(l.Optional, isNamed)
}

var errNaN = errors.New("NaN float cannot be carried through a document")

// Decode reads a tail into a document map. Bytes left over are kept
// under [ExtraKey]. Decode does not check that the map reproduces data;
// see [Layout.DecodeVerified].
func (l *Layout) Decode(data []byte) (*document.Map, error) {
	r := binio.NewReader(data)
	m := document.NewMap(len(l.Fields) + len(l.Optional) + 1)
	if err := readFields(r, l.Fields, m); err != nil {
		return nil, fmt.Errorf("%s tail: %w", l.Kind, err)
	}
	if len(l.Optional) > 0 && r.Remaining() >= groupSize(l.Optional) {
		if err := readFields(r, l.Optional, m); err != nil {
			return nil, fmt.Errorf("%s tail: %w", l.Kind, err)
		}
	}
	if rest := r.Rest(); len(rest) > 0 {
		m.Set(ExtraKey, document.Bytes(bytes.Clone(rest)))
	}
	return m, nil
}

// DecodeVerified decodes data and checks that encoding the result
// reproduces data exactly.
func (l *Layout) DecodeVerified(data []byte) (*document.Map, error) {
	m, err := l.Decode(data)
	if err != nil {
		return nil, err
	}
	encoded, _, err := l.Encode(m, "")
	if err != nil {
		return nil, fmt.Errorf("%s tail: re-encoding: %w", l.Kind, err)
	}
	if !bytes.Equal(encoded, data) {
		return nil, fmt.Errorf("%s tail: decoded fields do not reproduce the %d tail bytes", l.Kind, len(data))
	}
	return m, nil
}

func readFields(r *binio.Reader, fields []Field, m *document.Map) error {
	for _, field := range fields {
		value, err := readField(r, field)
		if err != nil {
			return fmt.Errorf("%s: %w", field.Name, err)
		}
		m.Set(field.Name, value)
	}
	return nil
}

func readField(r *binio.Reader, field Field) (document.Value, error) {
	switch field.Type {
	case I32:
		v, err := r.Int32()
		return document.Int(int64(v)), err
	case U32:
		v, err := r.Uint32()
		return document.Int(int64(v)), err
	case F32:
		v, err := r.Float32()
		if err == nil && math.IsNaN(float64(v)) {
			err = errNaN
		}
		return document.Float(float64(v)), err
	case Bool:
		v, err := r.Bool()
		return document.Bool(v), err
	case Enum:
		v, err := r.Int32()
		return document.String(field.Enum.Name(v)), err
	case RectField:
		rect, err := readRect(r)
		if err != nil {
			return document.Value{}, err
		}
		return document.MapValue(rect.ToMap()), nil
	case Raw:
		raw, err := r.Bytes(field.Size)
		return document.Bytes(bytes.Clone(raw)), err
	default:
		return document.Value{}, fmt.Errorf("unsupported field type %d", field.Type)
	}
}

// Warning is a non-fatal substitution made while encoding.
type Warning struct {
	Path    string
	Message string
}

// Encode writes a tail from a document map. Keys the layout does not
// know are ignored; callers check them with [Layout.Has]. Unrecognized
// enum names encode as 0 and are reported as warnings.
func (l *Layout) Encode(m *document.Map, path string) ([]byte, []Warning, error) {
	w := binio.NewWriter(l.Size() + groupSize(l.Optional))
	var warnings []Warning
	groups := [][]Field{l.Fields}
	if l.hasOptional(m) {
		groups = append(groups, l.Optional)
	}
	for _, fields := range groups {
		for _, field := range fields {
			value, ok := m.Get(field.Name)
			if !ok {
				value = field.defaultValue()
			}
			warning, err := writeField(w, field, value, document.Join(path, field.Name))
			if err != nil {
				return nil, nil, err
			}
			if warning != nil {
				warnings = append(warnings, *warning)
			}
		}
	}
	if value, ok := m.Get(ExtraKey); ok {
		extra, err := value.Raw(document.Join(path, ExtraKey))
		if err != nil {
			return nil, nil, err
		}
		w.PutBytes(extra)
	}
	return w.Bytes(), warnings, nil
}

func (l *Layout) hasOptional(m *document.Map) bool {
	for _, field := range l.Optional {
		if m.Has(field.Name) {
			return true
		}
	}
	return false
}

// seedOptional sets the optional fields of m to their defaults, so a
// new object is written with the full tail.
func (l *Layout) seedOptional(m *document.Map) {
	for _, field := range l.Optional {
		m.Set(field.Name, field.defaultValue())
	}
}

func (f Field) defaultValue() document.Value {
	if !f.Default.IsNull() {
		return f.Default
	}
	switch f.Type {
	case F32:
		return document.Float(0)
	case Bool:
		return document.Bool(false)
	case RectField:
		return document.MapValue(nil)
	case Raw:
		return document.Bytes(make([]byte, f.Size))
	default:
		return document.Int(0)
	}
}

func writeField(w *binio.Writer, field Field, value document.Value, path string) (*Warning, error) {
	switch field.Type {
	case I32:
		v, err := value.Int32(path)
		if err != nil {
			return nil, err
		}
		w.Int32(v)
	case U32:
		v, err := value.Uint32(path)
		if err != nil {
			return nil, err
		}
		w.Uint32(v)
	case F32:
		v, err := value.Float32(path)
		if err != nil {
			return nil, err
		}
		w.Float32(v)
	case Bool:
		v, err := value.Boolean(path)
		if err != nil {
			return nil, err
		}
		w.Bool(v)
	case Enum:
		return writeEnum(w, field.Enum, value, path)
	case RectField:
		m, err := value.Object(path)
		if err != nil {
			return nil, err
		}
		rect, _, err := RectFromMap(m, path)
		if err != nil {
			return nil, err
		}
		rect.append(w)
	case Raw:
		raw, err := value.Raw(path)
		if err != nil {
			return nil, err
		}
		if len(raw) != field.Size {
			return nil, &document.TypeError{Path: path, Want: fmt.Sprintf("%d bytes", field.Size), Got: value.String()}
		}
		w.PutBytes(raw)
	default:
		return nil, fmt.Errorf("%s: unsupported field type %d", path, field.Type)
	}
	return nil, nil
}

func writeEnum(w *binio.Writer, enum *schema.Enum, value document.Value, path string) (*Warning, error) {
	v, warning, err := EnumValue(enum, value, 0, path)
	if err != nil {
		return nil, err
	}
	w.Int32(v)
	return warning, nil
}

// EnumValue resolves a document value to an enum integer. It accepts a
// symbol name, an "UNKNOWN_<n>"-style name, or a bare integer. Any other
// name resolves to fallback with a warning.
func EnumValue(enum *schema.Enum, value document.Value, fallback int32, path string) (int32, *Warning, error) {
	if _, isInt := value.AsInt(); isInt {
		v, err := value.Int32(path)
		return v, nil, err
	}
	name, err := value.Text(path)
	if err != nil {
		return 0, nil, err
	}
	if v, ok := enum.Value(name); ok {
		return v, nil, nil
	}
	return fallback, &Warning{
		Path:    path,
		Message: fmt.Sprintf("unrecognized %s %q written as %d", enum.TypeName(), name, fallback),
	}, nil
}

// Unmapped returns the paths of keys in m that the layout cannot place:
// unknown top-level keys and unknown keys inside rect fields. Keys for
// which skip returns true are not reported.
func (l *Layout) Unmapped(m *document.Map, path string, skip func(string) bool) []string {
	var unmapped []string
	for key, value := range m.All() {
		if skip != nil && skip(key) {
			continue
		}
		if !l.Has(key) {
			unmapped = append(unmapped, document.Join(path, key))
			continue
		}
		if field, ok := l.field(key); ok && field.Type == RectField {
			if rectMap, isMap := value.AsMap(); isMap {
				_, extra, _ := RectFromMap(rectMap, document.Join(path, key))
				unmapped = append(unmapped, extra...)
			}
		}
	}
	return unmapped
}

func (l *Layout) field(name string) (Field, bool) {
	for _, fields := range [][]Field{l.Fields, l.Optional} {
		for _, field := range fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}
