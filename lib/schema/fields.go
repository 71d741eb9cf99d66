// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ScalarType is the encoding of one registered field's payload.
type ScalarType uint8

const (
	// TypeRaw payloads are never decomposed.
	TypeRaw ScalarType = iota
	// TypeBool is one byte, 0 or 1.
	TypeBool
	// TypeInt32 is a little-endian int32.
	TypeInt32
	// TypeInt64 is a little-endian int64.
	TypeInt64
	// TypeFloat32 is an IEEE-754 binary32.
	TypeFloat32
	// TypeEnum is an int32 rendered through the field's [Enum].
	TypeEnum
	// TypeGameObject is the fixed placement base shared by game objects.
	TypeGameObject
	// TypeTail is an entity's kind-specific tail layout.
	TypeTail
)

var scalarTypeNames = [...]string{
	TypeRaw:        "raw",
	TypeBool:       "bool",
	TypeInt32:      "i32",
	TypeInt64:      "i64",
	TypeFloat32:    "f32",
	TypeEnum:       "enum",
	TypeGameObject: "game_object",
	TypeTail:       "tail",
}

func (t ScalarType) String() string {
	if int(t) < len(scalarTypeNames) {
		return scalarTypeNames[t]
	}
	return fmt.Sprintf("ScalarType(%d)", t)
}

// Size returns the fixed payload size of scalar types, or -1 for types
// without one.
func (t ScalarType) Size() int {
	switch t {
	case TypeBool:
		return 1
	case TypeInt32, TypeFloat32, TypeEnum:
		return 4
	case TypeInt64:
		return 8
	default:
		return -1
	}
}

// Field is one registered field id.
type Field struct {
	ID    uint32
	Name  string
	Type  ScalarType
	Array bool
	// Enum is set for TypeEnum fields.
	Enum *Enum
}

// Opaque reports whether the field's payload is kept as bytes rather
// than decoded into a scalar.
func (f Field) Opaque() bool {
	return f.Type == TypeRaw || f.Array
}

// Kind identifies which structure a field table describes.
type Kind uint8

const (
	KindBoard Kind = iota
	KindZombie
	KindPlant
	KindMower
	KindGridItem
	KindSeedBank
	KindSeedPacket
	KindChallenge
)

var kindNames = [...]string{
	KindBoard:      "board",
	KindZombie:     "zombie",
	KindPlant:      "plant",
	KindMower:      "mower",
	KindGridItem:   "grid_item",
	KindSeedBank:   "seed_bank",
	KindSeedPacket: "seed_packet",
	KindChallenge:  "challenge",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Table is the field registry for one [Kind].
type Table struct {
	kind   Kind
	byID   map[uint32]Field
	byName map[string]Field
	ids    []uint32
}

func newTable(kind Kind, fields []Field) *Table {
	table := &Table{
		kind:   kind,
		byID:   make(map[uint32]Field, len(fields)),
		byName: make(map[string]Field, len(fields)),
	}
	for _, field := range fields {
		if _, duplicate := table.byID[field.ID]; duplicate {
			panic(fmt.Sprintf("schema: %s field id %d registered twice", kind, field.ID))
		}
		if _, duplicate := table.byName[field.Name]; duplicate {
			panic(fmt.Sprintf("schema: %s field name %q registered twice", kind, field.Name))
		}
		table.byID[field.ID] = field
		table.byName[field.Name] = field
		table.ids = append(table.ids, field.ID)
	}
	slices.Sort(table.ids)
	return table
}

// Kind returns the kind this table describes.
func (t *Table) Kind() Kind { return t.kind }

// ByID looks up a registered field.
func (t *Table) ByID(id uint32) (Field, bool) {
	field, ok := t.byID[id]
	return field, ok
}

// ByName looks up a registered field by its document name.
func (t *Table) ByName(name string) (Field, bool) {
	field, ok := t.byName[name]
	return field, ok
}

// ByType returns the lowest-id field of type typ. Game-object tables
// carry one [TypeGameObject] and one [TypeTail] field; the challenge
// table carries one [TypeRaw] field.
func (t *Table) ByType(typ ScalarType) (Field, bool) {
	for _, id := range t.ids {
		if field := t.byID[id]; field.Type == typ {
			return field, true
		}
	}
	return Field{}, false
}

// Fields returns every registered field in ascending id order.
func (t *Table) Fields() []Field {
	fields := make([]Field, 0, len(t.ids))
	for _, id := range t.ids {
		fields = append(fields, t.byID[id])
	}
	return fields
}

// Ref is the result of resolving a document name against a table:
// either a registered field or an unregistered id carried through its
// synthesized name.
type Ref struct {
	ID uint32
	// Field is valid only when Known is true.
	Field Field
	Known bool
}

// Unknown returns the Ref for an unregistered id.
func Unknown(id uint32) Ref { return Ref{ID: id} }

// Resolve maps a board document name back to a field id: registered
// names first, then "_unknown_<id>". The second result is false when
// the name maps to nothing.
func (t *Table) Resolve(name string) (Ref, bool) {
	if field, ok := t.byName[name]; ok {
		return Ref{ID: field.ID, Field: field, Known: true}, true
	}
	if id, ok := ParseUnknownFieldName(name); ok {
		if field, registered := t.byID[id]; registered {
			return Ref{ID: id, Field: field, Known: true}, true
		}
		return Unknown(id), true
	}
	return Ref{}, false
}

// NameFor returns the document name of id: the registered name, or the
// synthesized unknown-field name.
func (t *Table) NameFor(id uint32) string {
	if field, ok := t.byID[id]; ok {
		return field.Name
	}
	return UnknownFieldName(id)
}

const (
	unknownFieldPrefix = "_unknown_"
	extraFieldPrefix   = "_field_"
)

// UnknownFieldName synthesizes the document name of an unregistered
// board field id.
func UnknownFieldName(id uint32) string {
	return unknownFieldPrefix + strconv.FormatUint(uint64(id), 10)
}

// ParseUnknownFieldName inverts [UnknownFieldName].
func ParseUnknownFieldName(name string) (uint32, bool) {
	return parseSynthesized(name, unknownFieldPrefix)
}

// ExtraFieldName synthesizes the document name of a game-object field
// id that is neither the base (1) nor the tail (100).
func ExtraFieldName(id uint32) string {
	return extraFieldPrefix + strconv.FormatUint(uint64(id), 10)
}

// ParseExtraFieldName inverts [ExtraFieldName].
func ParseExtraFieldName(name string) (uint32, bool) {
	return parseSynthesized(name, extraFieldPrefix)
}

func parseSynthesized(name, prefix string) (uint32, bool) {
	digits, ok := strings.CutPrefix(name, prefix)
	if !ok || digits == "" {
		return 0, false
	}
	value, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(value), true
}
