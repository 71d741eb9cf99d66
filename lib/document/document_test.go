// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

// sample builds a tree exercising every kind, including the values that
// are easy to confuse across serializations.
func sample() Value {
	board := NewMap(8)
	board.Set("paused", Bool(false))
	board.Set("sun_money", Int(150))
	board.Set("fog_offset", Float(1))
	board.Set("game_id", Int(-9007199254740993))
	board.Set("tiny", Float(float64(float32(0.1))))
	board.Set("negative_zero", Float(math.Copysign(0, -1)))
	board.Set("infinite", Float(math.Inf(1)))
	board.Set("zombies_in_wave", Seq(Seq(Int(0), Int(2)), Seq()))
	board.Set("grid_square_type", Bytes([]byte{0, 1, 2, 0xff}))
	board.Set("_unknown_500", Bytes(nil))

	root := NewMap(6)
	root.Set("_format", String("PVZP_SAVE4"))
	root.Set("_version", Int(1))
	root.Set("looks_numeric", String("123"))
	root.Set("looks_bool", String("true"))
	root.Set("empty", String(""))
	root.Set("nothing", Null())
	root.Set("board", MapValue(board))
	return MapValue(root)
}

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := NewMap(0)
	m.Set("b", Int(1))
	m.Set("a", Int(2))
	m.Set("c", Int(3))
	m.Set("a", Int(4))

	if got := m.Keys(); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Fatalf("Keys() = %v", got)
	}
	if value, _ := m.Get("a"); !Equal(value, Int(4)) {
		t.Errorf("a = %v, want 4", value)
	}

	m.Delete("b")
	m.Delete("missing")
	if got := m.Keys(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Keys() after delete = %v", got)
	}

	var nilMap *Map
	if nilMap.Len() != 0 || nilMap.Has("x") {
		t.Error("nil map should read as empty")
	}
}

func TestEqual(t *testing.T) {
	left := NewMap(0)
	left.Set("x", Int(1))
	left.Set("y", Bytes([]byte{1}))
	right := NewMap(0)
	right.Set("y", Bytes([]byte{1}))
	right.Set("x", Int(1))

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"map order ignored", MapValue(left), MapValue(right), true},
		{"int vs float", Int(1), Float(1), false},
		{"bytes vs string", Bytes([]byte("a")), String("a"), false},
		{"nan equals itself", Float(math.NaN()), Float(math.NaN()), true},
		{"signed zero differs", Float(0), Float(math.Copysign(0, -1)), false},
		{"seq length", Seq(Int(1)), Seq(Int(1), Int(2)), false},
		{"null", Null(), Value{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	original := sample()
	data, err := MarshalYAML(original)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	decoded, err := UnmarshalYAML(data)
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v\n%s", err, data)
	}
	if !Equal(original, decoded) {
		t.Fatalf("YAML round trip changed the tree:\n%s", data)
	}

	text := string(data)
	for _, want := range []string{"!!binary", `looks_numeric: "123"`, "fog_offset: 1.0", "infinite: .inf"} {
		if !strings.Contains(text, want) {
			t.Errorf("YAML output lacks %q:\n%s", want, text)
		}
	}
}

func TestYAMLKeepsKeyOrder(t *testing.T) {
	decoded, err := UnmarshalYAML([]byte("zeta: 1\nalpha: 2\nmid: 3\n"))
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	m, _ := decoded.AsMap()
	if got := m.Keys(); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestYAMLHandEdits(t *testing.T) {
	decoded, err := UnmarshalYAML([]byte("a: 0x10\nb: 2.5\nc: !!binary AAEC\nd: anchor\ne: *ref\n"))
	if err == nil {
		t.Fatalf("undefined alias should fail, got %v", decoded)
	}

	decoded, err = UnmarshalYAML([]byte("a: 0x10\nb: 2.5\nc: !!binary |\n  AAEC\nd: &ref x\ne: *ref\n"))
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	m, _ := decoded.AsMap()
	if value, _ := m.Get("a"); !Equal(value, Int(16)) {
		t.Errorf("a = %v, want 16", value)
	}
	if value, _ := m.Get("c"); !Equal(value, Bytes([]byte{0, 1, 2})) {
		t.Errorf("c = %v, want bytes 000102", value)
	}
	if value, _ := m.Get("e"); !Equal(value, String("x")) {
		t.Errorf("e = %v, want alias target", value)
	}
}

func TestYAMLRejectsUnknownTags(t *testing.T) {
	if _, err := UnmarshalYAML([]byte("a: !point 1,2\n")); err == nil {
		t.Error("local tag should be rejected")
	}
	decoded, err := UnmarshalYAML([]byte("a: 2001-12-14\n"))
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	m, _ := decoded.AsMap()
	if value, _ := m.Get("a"); !Equal(value, String("2001-12-14")) {
		t.Errorf("plain date = %v, want its text", value)
	}
}

func TestCBORRoundTripKeepsOrder(t *testing.T) {
	original := sample()
	data, err := MarshalCBOR(original)
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	decoded, err := UnmarshalCBOR(data)
	if err != nil {
		t.Fatalf("UnmarshalCBOR: %v", err)
	}
	if !Equal(original, decoded) {
		t.Fatal("CBOR round trip changed the tree")
	}

	originalMap, _ := original.AsMap()
	decodedMap, _ := decoded.AsMap()
	if !slices.Equal(originalMap.Keys(), decodedMap.Keys()) {
		t.Errorf("key order %v, want %v", decodedMap.Keys(), originalMap.Keys())
	}

	again, err := MarshalCBOR(decoded)
	if err != nil {
		t.Fatalf("MarshalCBOR again: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("CBOR encoding is not stable across a round trip")
	}
}

func TestCBORRejectsMalformed(t *testing.T) {
	for _, data := range [][]byte{
		{0xa1, 0x01, 0x02},       // integer map key
		{0x82, 0x01},             // array missing an element
		{0xc1, 0x01},             // tagged item
		{0x01, 0x02},             // trailing bytes
		{0xbf, 0x61, 0x61, 0xff}, // indefinite map
	} {
		if value, err := UnmarshalCBOR(data); err == nil {
			t.Errorf("UnmarshalCBOR(%x) = %v, want error", data, value)
		}
	}
}

func TestMarshalEnvelopes(t *testing.T) {
	original := sample()
	for _, format := range []Format{FormatYAML, FormatCBOR} {
		for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
			t.Run(format.String()+"/"+compression.String(), func(t *testing.T) {
				data, err := Marshal(original, format, compression)
				if err != nil {
					t.Fatalf("Marshal: %v", err)
				}
				if got := DetectCompression(data); got != compression {
					t.Errorf("DetectCompression = %s", got)
				}
				decoded, gotFormat, gotCompression, err := Unmarshal(data)
				if err != nil {
					t.Fatalf("Unmarshal: %v", err)
				}
				if gotFormat != format || gotCompression != compression {
					t.Errorf("detected %s/%s", gotFormat, gotCompression)
				}
				if !Equal(original, decoded) {
					t.Error("envelope round trip changed the tree")
				}
			})
		}
	}
}

func TestDecompressCorruptFrame(t *testing.T) {
	data, err := Compress([]byte(strings.Repeat("board: 1\n", 100)), CompressionZstd)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if _, _, err := Decompress(data[:len(data)/2]); err == nil {
		t.Error("truncated zstd frame should fail")
	}
}

func TestParseNames(t *testing.T) {
	if format, err := ParseFormat("yml"); err != nil || format != FormatYAML {
		t.Errorf("ParseFormat(yml) = %v, %v", format, err)
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Error("ParseFormat(json) should fail")
	}
	if compression, err := ParseCompression("lz4"); err != nil || compression != CompressionLZ4 {
		t.Errorf("ParseCompression(lz4) = %v, %v", compression, err)
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) should fail")
	}
}

func TestAccessors(t *testing.T) {
	if v, err := Int(-5).Int32("a"); err != nil || v != -5 {
		t.Errorf("Int32 = %d, %v", v, err)
	}
	if v, err := Int(4294967295).Uint32("a"); err != nil || v != 4294967295 {
		t.Errorf("Uint32 = %d, %v", v, err)
	}
	if v, err := Int(3).Float32("a"); err != nil || v != 3 {
		t.Errorf("Float32 from int = %v, %v", v, err)
	}

	failures := []struct {
		name string
		call func() error
	}{
		{"i32 overflow", func() error { _, err := Int(1 << 31).Int32("p"); return err }},
		{"u32 negative", func() error { _, err := Int(-1).Uint32("p"); return err }},
		{"bool from int", func() error { _, err := Int(1).Boolean("p"); return err }},
		{"bytes from string", func() error { _, err := String("AAE=").Raw("p"); return err }},
		{"map from seq", func() error { _, err := Seq().Object("p"); return err }},
	}
	for _, tt := range failures {
		err := tt.call()
		var typeErr *TypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("%s: error = %v, want *TypeError", tt.name, err)
			continue
		}
		if typeErr.Path != "p" {
			t.Errorf("%s: path = %q", tt.name, typeErr.Path)
		}
	}

	if got := Join(Index("zombies", 2), "pos_x"); got != "zombies[2].pos_x" {
		t.Errorf("Join = %q", got)
	}
}
