// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"fmt"
	"maps"
	"strings"

	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/schema"
	"github.com/pvzportable/pvzp-save/lib/tlv"
)

// Document keys of a record. BaseKey is the name the game-object
// tables register for the base field.
const (
	BaseKey    = "_base"
	TailRawKey = "_tail_raw"
	IDKey      = "_id"
	IndexKey   = "_index"
)

// Record is one game object's field set.
type Record struct {
	// Base is the decoded placement base, nil when field 1 is absent or
	// could not be decoded (it is then kept in Others).
	Base *GameObject
	// Tail holds decoded tail fields. Nil when field 100 is absent or
	// kept opaque.
	Tail *document.Map
	// TailRaw is an opaque field 100. Non-nil means present.
	TailRaw []byte
	// Others holds every other field id verbatim.
	Others tlv.Fields
}

// recordTable is the registry a layout's records dispatch on, with its
// base and tail entries.
type recordTable struct {
	*schema.Table
	base schema.Field
	tail schema.Field
}

func (l *Layout) recordTable() (recordTable, error) {
	table := schema.Registry(l.Kind)
	if table == nil {
		return recordTable{}, fmt.Errorf("no field table for %s records", l.Kind)
	}
	base, hasBase := table.ByType(schema.TypeGameObject)
	tail, hasTail := table.ByType(schema.TypeTail)
	if !hasBase || !hasTail {
		return recordTable{}, fmt.Errorf("%s field table has no game object or tail field", l.Kind)
	}
	return recordTable{Table: table, base: base, tail: tail}, nil
}

// mustRecordTable is recordTable for the package's own layouts, whose
// tables are fixed at compile time.
func (l *Layout) mustRecordTable() recordTable {
	table, err := l.recordTable()
	if err != nil {
		panic("entity: " + err.Error())
	}
	return table
}

// Decode splits a record's fields into base, tail, and the rest by
// looking each id up in the layout kind's [schema.Registry]. Tails of
// inactive slots stay opaque. The error is non-nil when an active tail
// had to be kept opaque; the returned Record is complete either way.
func Decode(layout *Layout, fields tlv.Fields, active bool) (Record, error) {
	table := layout.mustRecordTable()
	var (
		record   Record
		fallback error
	)
	for id, payload := range fields {
		field, registered := table.ByID(id)
		if !registered {
			record.setOther(id, payload)
			continue
		}
		switch field.Type {
		case schema.TypeGameObject:
			base, err := ParseGameObject(payload)
			if err != nil {
				record.setOther(id, payload)
				continue
			}
			record.Base = &base
		case schema.TypeTail:
			if !active {
				record.TailRaw = append([]byte{}, payload...)
				continue
			}
			tail, err := layout.DecodeVerified(payload)
			if err != nil {
				record.TailRaw = append([]byte{}, payload...)
				fallback = err
				continue
			}
			record.Tail = tail
		default:
			record.setOther(id, payload)
		}
	}
	return record, fallback
}

func (r *Record) setOther(id uint32, payload []byte) {
	if r.Others == nil {
		r.Others = make(tlv.Fields)
	}
	r.Others[id] = append([]byte{}, payload...)
}

// Encode reassembles the record's field set under the ids of the
// layout kind's registry.
func (r Record) Encode(layout *Layout, path string) (tlv.Fields, []Warning, error) {
	table, err := layout.recordTable()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	fields := make(tlv.Fields, len(r.Others)+2)
	maps.Copy(fields, r.Others)
	if r.Base != nil {
		fields[table.base.ID] = r.Base.Encode()
	}

	var warnings []Warning
	switch {
	case r.TailRaw != nil:
		fields[table.tail.ID] = r.TailRaw
	case r.Tail != nil:
		tail, tailWarnings, err := layout.Encode(r.Tail, path)
		if err != nil {
			return nil, nil, err
		}
		fields[table.tail.ID] = tail
		warnings = tailWarnings
	}
	return fields, warnings, nil
}

// AppendTo writes the record's document keys into m: the base under its
// registered name, the tail fields flattened alongside it, an opaque
// tail, then other ids.
func (r Record) AppendTo(layout *Layout, m *document.Map) {
	table := layout.mustRecordTable()
	if r.Base != nil {
		m.Set(table.base.Name, document.MapValue(r.Base.ToMap()))
	}
	for key, value := range r.Tail.All() {
		m.Set(key, value)
	}
	if r.TailRaw != nil {
		m.Set(TailRawKey, document.Bytes(r.TailRaw))
	}
	for _, id := range r.Others.IDs() {
		m.Set(schema.ExtraFieldName(id), document.Bytes(r.Others[id]))
	}
}

// FromMap reverses [Record.AppendTo]. The slot keys _id and _index are
// skipped. An active record with neither tail fields nor an opaque tail
// gets a tail of defaults, optional groups included. The second result
// lists keys that map to no field.
func FromMap(layout *Layout, m *document.Map, path string, active bool) (Record, []string, error) {
	table, err := layout.recordTable()
	if err != nil {
		return Record{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	var (
		record   Record
		unmapped []string
		tail     = document.NewMap(0)
	)
	for key, value := range m.All() {
		keyPath := document.Join(path, key)
		switch {
		case key == IDKey || key == IndexKey:
		case key == table.base.Name:
			baseMap, err := value.Object(keyPath)
			if err != nil {
				return Record{}, nil, err
			}
			base, extra, err := GameObjectFromMap(baseMap, keyPath)
			if err != nil {
				return Record{}, nil, err
			}
			record.Base = &base
			unmapped = append(unmapped, extra...)
		case key == TailRawKey:
			raw, err := value.Raw(keyPath)
			if err != nil {
				return Record{}, nil, err
			}
			record.TailRaw = raw
		case strings.HasPrefix(key, "_field_"):
			id, ok := schema.ParseExtraFieldName(key)
			if !ok || id == table.tail.ID {
				unmapped = append(unmapped, keyPath)
				continue
			}
			raw, err := value.Raw(keyPath)
			if err != nil {
				return Record{}, nil, err
			}
			record.setOther(id, raw)
		case layout.Has(key):
			tail.Set(key, value)
		default:
			unmapped = append(unmapped, keyPath)
		}
	}

	if record.Base != nil && record.Others.Has(table.base.ID) {
		return Record{}, nil, fmt.Errorf("%s: both %s and %s are set", path, table.base.Name, schema.ExtraFieldName(table.base.ID))
	}
	if record.TailRaw == nil && (active || tail.Len() > 0) {
		if tail.Len() == 0 {
			layout.seedOptional(tail)
		}
		record.Tail = tail
		unmapped = append(unmapped, layout.Unmapped(tail, path, nil)...)
	}
	return record, unmapped, nil
}
