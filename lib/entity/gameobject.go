// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"fmt"

	"github.com/pvzportable/pvzp-save/lib/binio"
	"github.com/pvzportable/pvzp-save/lib/document"
)

// GameObjectSize is the encoded size of a [GameObject].
const GameObjectSize = 25

// GameObject is the placement base every game object shares.
type GameObject struct {
	X, Y          int32
	Width, Height int32
	Visible       bool
	Row           int32
	RenderOrder   int32
}

// ParseGameObject decodes a base. The payload must be exactly
// [GameObjectSize] bytes with a visible byte of 0 or 1; anything else
// cannot be reproduced from the decoded fields.
func ParseGameObject(data []byte) (GameObject, error) {
	if len(data) != GameObjectSize {
		return GameObject{}, fmt.Errorf("game object base is %d bytes, want %d", len(data), GameObjectSize)
	}
	if data[16] > 1 {
		return GameObject{}, fmt.Errorf("game object visible byte is %#x", data[16])
	}
	r := binio.NewReader(data)
	var g GameObject
	g.X, _ = r.Int32()
	g.Y, _ = r.Int32()
	g.Width, _ = r.Int32()
	g.Height, _ = r.Int32()
	g.Visible, _ = r.Bool()
	g.Row, _ = r.Int32()
	g.RenderOrder, _ = r.Int32()
	return g, nil
}

// Encode returns the 25-byte encoding of g.
func (g GameObject) Encode() []byte {
	w := binio.NewWriter(GameObjectSize)
	w.Int32(g.X)
	w.Int32(g.Y)
	w.Int32(g.Width)
	w.Int32(g.Height)
	w.Bool(g.Visible)
	w.Int32(g.Row)
	w.Int32(g.RenderOrder)
	return w.Bytes()
}

// ToMap renders g as a document map.
func (g GameObject) ToMap() *document.Map {
	m := document.NewMap(7)
	m.Set("x", document.Int(int64(g.X)))
	m.Set("y", document.Int(int64(g.Y)))
	m.Set("width", document.Int(int64(g.Width)))
	m.Set("height", document.Int(int64(g.Height)))
	m.Set("visible", document.Bool(g.Visible))
	m.Set("row", document.Int(int64(g.Row)))
	m.Set("render_order", document.Int(int64(g.RenderOrder)))
	return m
}

// GameObjectFromMap reverses [GameObject.ToMap]. Missing keys take
// their defaults: zero, and visible true. The second result lists keys
// that are not base fields.
func GameObjectFromMap(m *document.Map, path string) (GameObject, []string, error) {
	g := GameObject{Visible: true}
	var unmapped []string
	for key, value := range m.All() {
		fieldPath := document.Join(path, key)
		var err error
		switch key {
		case "x":
			g.X, err = value.Int32(fieldPath)
		case "y":
			g.Y, err = value.Int32(fieldPath)
		case "width":
			g.Width, err = value.Int32(fieldPath)
		case "height":
			g.Height, err = value.Int32(fieldPath)
		case "visible":
			g.Visible, err = value.Boolean(fieldPath)
		case "row":
			g.Row, err = value.Int32(fieldPath)
		case "render_order":
			g.RenderOrder, err = value.Int32(fieldPath)
		default:
			unmapped = append(unmapped, fieldPath)
		}
		if err != nil {
			return GameObject{}, nil, err
		}
	}
	return g, unmapped, nil
}

// Rect is an axis-aligned rectangle stored inside tails.
type Rect struct {
	X, Y, Width, Height int32
}

// RectSize is the encoded size of a [Rect].
const RectSize = 16

func readRect(r *binio.Reader) (Rect, error) {
	var rect Rect
	for _, field := range []*int32{&rect.X, &rect.Y, &rect.Width, &rect.Height} {
		value, err := r.Int32()
		if err != nil {
			return Rect{}, err
		}
		*field = value
	}
	return rect, nil
}

func (rect Rect) append(w *binio.Writer) {
	w.Int32(rect.X)
	w.Int32(rect.Y)
	w.Int32(rect.Width)
	w.Int32(rect.Height)
}

// ToMap renders rect as a document map.
func (rect Rect) ToMap() *document.Map {
	m := document.NewMap(4)
	m.Set("x", document.Int(int64(rect.X)))
	m.Set("y", document.Int(int64(rect.Y)))
	m.Set("width", document.Int(int64(rect.Width)))
	m.Set("height", document.Int(int64(rect.Height)))
	return m
}

// RectFromMap reverses [Rect.ToMap]. Missing keys are zero.
func RectFromMap(m *document.Map, path string) (Rect, []string, error) {
	var rect Rect
	var unmapped []string
	for key, value := range m.All() {
		fieldPath := document.Join(path, key)
		var err error
		switch key {
		case "x":
			rect.X, err = value.Int32(fieldPath)
		case "y":
			rect.Y, err = value.Int32(fieldPath)
		case "width":
			rect.Width, err = value.Int32(fieldPath)
		case "height":
			rect.Height, err = value.Int32(fieldPath)
		default:
			unmapped = append(unmapped, fieldPath)
		}
		if err != nil {
			return Rect{}, nil, err
		}
	}
	return rect, unmapped, nil
}
