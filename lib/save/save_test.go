// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/schema"
	"github.com/pvzportable/pvzp-save/lib/testutil"
)

// lookup walks a tree by map keys (strings) and sequence indexes (ints).
func lookup(t *testing.T, v document.Value, steps ...any) document.Value {
	t.Helper()
	for _, step := range steps {
		switch key := step.(type) {
		case string:
			m, ok := v.AsMap()
			if !ok {
				t.Fatalf("lookup %v: %s is not a map", steps, v)
			}
			next, ok := m.Get(key)
			if !ok {
				t.Fatalf("lookup %v: key %q missing", steps, key)
			}
			v = next
		case int:
			items, ok := v.AsSeq()
			if !ok || key >= len(items) {
				t.Fatalf("lookup %v: %s has no index %d", steps, v, key)
			}
			v = items[key]
		}
	}
	return v
}

func mapAt(t *testing.T, v document.Value, steps ...any) *document.Map {
	t.Helper()
	m, ok := lookup(t, v, steps...).AsMap()
	if !ok {
		t.Fatalf("%v is not a map", steps)
	}
	return m
}

func export(t *testing.T, data []byte, options DecodeOptions) (document.Value, []Diagnostic) {
	t.Helper()
	tree, diagnostics, err := Export(data, options)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	return tree, diagnostics
}

func importTree(t *testing.T, tree document.Value, options EncodeOptions) ([]byte, []Diagnostic) {
	t.Helper()
	data, diagnostics, err := Import(tree, options)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return data, diagnostics
}

func codes(diagnostics []Diagnostic) []DiagnosticCode {
	var out []DiagnosticCode
	for _, diagnostic := range diagnostics {
		out = append(out, diagnostic.Code)
	}
	return out
}

func hasCode(diagnostics []Diagnostic, code DiagnosticCode) bool {
	for _, diagnostic := range diagnostics {
		if diagnostic.Code == code {
			return true
		}
	}
	return false
}

func TestDecodeEncodeIdentity(t *testing.T) {
	for _, expand := range []bool{false, true} {
		data := testutil.Sample()
		doc, diagnostics, err := Decode(data, DecodeOptions{ExpandWaves: expand})
		if err != nil {
			t.Fatalf("Decode(expand=%v): %v", expand, err)
		}
		if len(diagnostics) != 0 {
			t.Errorf("Decode(expand=%v) diagnostics: %v", expand, diagnostics)
		}
		encoded, _, err := Encode(doc, EncodeOptions{})
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if !bytes.Equal(encoded, data) {
			t.Errorf("expand=%v: Encode(Decode(x)) differs from x", expand)
		}
	}
}

func TestDecodeSections(t *testing.T) {
	doc, _, err := Decode(testutil.Sample(), DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.ChunkOrder) != len(testutil.SampleChunks()) {
		t.Fatalf("ChunkOrder has %d entries", len(doc.ChunkOrder))
	}
	if doc.Board == nil || doc.Zombies == nil || doc.Plants == nil || doc.Mowers == nil ||
		doc.GridItems == nil || doc.SeedBank == nil || doc.SeedPackets == nil || doc.Challenge == nil {
		t.Fatal("a structured section is missing")
	}
	for _, chunkType := range []schema.ChunkType{schema.ChunkParticleEmitters, testutil.SampleUnknownChunk} {
		if _, ok := doc.BinaryChunks[chunkType]; !ok {
			t.Errorf("chunk %s should be kept opaque", chunkType)
		}
	}
	if len(doc.BinaryChunks) != 2 {
		t.Errorf("BinaryChunks has %d entries, want 2", len(doc.BinaryChunks))
	}
	if got := len(doc.Zombies.Objects); got != testutil.SampleZombieCount {
		t.Errorf("%d zombies, want %d", got, testutil.SampleZombieCount)
	}
	if got := len(doc.SeedPackets.Packets); got != testutil.SampleSeedPackets {
		t.Errorf("%d seed packets, want %d", got, testutil.SampleSeedPackets)
	}
	if got := len(doc.Challenge.Data); got != testutil.SampleChallengeSize {
		t.Errorf("challenge data is %d bytes, want %d", got, testutil.SampleChallengeSize)
	}
}

func TestTreeRoundTrip(t *testing.T) {
	data := testutil.Sample()
	tree, _ := export(t, data, DecodeOptions{ExpandWaves: true})
	encoded, diagnostics := importTree(t, tree, EncodeOptions{})
	if !bytes.Equal(encoded, data) {
		t.Error("Import(Export(x)) differs from x")
	}
	if len(diagnostics) != 0 {
		t.Errorf("diagnostics: %v", diagnostics)
	}
}

func TestSerializedRoundTrip(t *testing.T) {
	data := testutil.Sample()
	tree, _ := export(t, data, DecodeOptions{ExpandWaves: true})
	tests := []struct {
		format      document.Format
		compression document.Compression
	}{
		{document.FormatYAML, document.CompressionNone},
		{document.FormatCBOR, document.CompressionNone},
		{document.FormatYAML, document.CompressionZstd},
		{document.FormatCBOR, document.CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.format.String()+"/"+tt.compression.String(), func(t *testing.T) {
			serialized, err := document.Marshal(tree, tt.format, tt.compression)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			parsed, format, compression, err := document.Unmarshal(serialized)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if format != tt.format || compression != tt.compression {
				t.Errorf("detected %s/%s", format, compression)
			}
			encoded, _ := importTree(t, parsed, EncodeOptions{})
			if !bytes.Equal(encoded, data) {
				t.Error("serialized round trip changed the save")
			}
		})
	}
}

func TestIdempotentRedecode(t *testing.T) {
	first, _ := export(t, testutil.Sample(), DecodeOptions{ExpandWaves: true})
	encoded, _ := importTree(t, first, EncodeOptions{})
	second, _ := export(t, encoded, DecodeOptions{ExpandWaves: true})
	if !document.Equal(first, second) {
		t.Error("re-decoding the re-encoded save gave a different tree")
	}
}

func TestEditedValueAndChecksum(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	mapAt(t, tree, "board").Set("sun_money", document.Int(9990))

	encoded, _ := importTree(t, tree, EncodeOptions{})
	payloadSize := binary.LittleEndian.Uint32(encoded[16:20])
	storedCRC := binary.LittleEndian.Uint32(encoded[20:24])
	payload := encoded[savefile.HeaderSize:]
	if int(payloadSize) != len(payload) {
		t.Errorf("header payload length %d, actual %d", payloadSize, len(payload))
	}
	if storedCRC != crc32.ChecksumIEEE(payload) {
		t.Error("header CRC does not match the payload")
	}

	reread, _ := export(t, encoded, DecodeOptions{})
	if got, _ := lookup(t, reread, "board", "sun_money").AsInt(); got != 9990 {
		t.Errorf("sun_money = %d after edit", got)
	}
}

func TestSlotActivity(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	for index := range testutil.SampleZombieCount {
		zombie := mapAt(t, tree, "zombies", index)
		id, _ := lookup(t, tree, "zombies", index, "_id").AsInt()
		active := uint32(id)&0xFFFFFF00 != 0
		if active != (index != testutil.SampleInactiveSlot) {
			t.Fatalf("zombie %d id %#x has unexpected activity", index, id)
		}
		if zombie.Has("zombie_type") == !active || zombie.Has("_tail_raw") == active {
			t.Errorf("zombie %d (active=%v) keys: %v", index, active, zombie.Keys())
		}
	}
	if got, _ := lookup(t, tree, "zombies", 2, "zombie_type").AsString(); got != "ZOMBIE_PAIL" {
		t.Errorf("zombie_type = %q, want ZOMBIE_PAIL", got)
	}
	if got, _ := lookup(t, tree, "zombies", 2, "body_health").AsInt(); got != testutil.SampleBucketheadHP {
		t.Errorf("body_health = %d", got)
	}
	if _, ok := lookup(t, tree, "zombies", 2, "_field_7").AsBytes(); !ok {
		t.Error("extra field 7 should be kept as _field_7")
	}
}

func TestWaveRoster(t *testing.T) {
	data := testutil.Sample()
	tree, _ := export(t, data, DecodeOptions{ExpandWaves: true})
	rows, ok := lookup(t, tree, "board", "zombies_in_wave").AsSeq()
	if !ok || len(rows) != schema.MaxZombieWaves {
		t.Fatalf("zombies_in_wave has %d rows", len(rows))
	}
	var want []document.Value
	for _, zombieType := range testutil.SampleWaveRow3 {
		want = append(want, document.String(schema.ZombieType.Name(zombieType)))
	}
	if !document.Equal(rows[3], document.Seq(want...)) {
		t.Errorf("row 3 = %s", rows[3])
	}
	if items, _ := rows[5].AsSeq(); len(items) != 0 {
		t.Errorf("row 5 = %s, want empty", rows[5])
	}

	// Without expansion the roster stays a byte string.
	compact, _ := export(t, data, DecodeOptions{})
	if _, ok := lookup(t, compact, "board", "zombies_in_wave").AsBytes(); !ok {
		t.Error("zombies_in_wave should be bytes without expansion")
	}
}

func TestWaveRosterEdits(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{ExpandWaves: true})
	board := mapAt(t, tree, "board")
	board.Set("zombies_in_wave", document.Seq(
		document.Seq(document.String("ZOMBIE_FLAG"), document.String("ZOMBIE_NOPE"), document.Int(4)),
	))
	encoded, diagnostics := importTree(t, tree, EncodeOptions{})
	if !hasCode(diagnostics, CodeUnrecognizedEnum) {
		t.Errorf("diagnostics %v lack %s", codes(diagnostics), CodeUnrecognizedEnum)
	}

	doc, _, err := Decode(encoded, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	value, _ := doc.Board.Get("zombies_in_wave")
	raw, _ := value.AsBytes()
	if len(raw) != rosterSize {
		t.Fatalf("roster is %d bytes", len(raw))
	}
	cell := func(row, slot int) int32 {
		return int32(binary.LittleEndian.Uint32(raw[(row*schema.MaxZombiesInWave+slot)*4:]))
	}
	if cell(0, 0) != 1 || cell(0, 1) != -1 || cell(0, 2) != 4 || cell(0, 3) != -1 {
		t.Errorf("row 0 starts %d %d %d %d", cell(0, 0), cell(0, 1), cell(0, 2), cell(0, 3))
	}
	if cell(99, 49) != -1 || cell(3, 0) != -1 {
		t.Error("missing rows should be filled with ZOMBIE_INVALID")
	}
}

func TestWaveRosterWithFillerIsKeptOpaque(t *testing.T) {
	roster := testutil.WaveRoster(map[int][]int32{0: {0, -1, 5}})
	data := testutil.SaveFile(testutil.Chunk{
		Type: testutil.ChunkBoardBase,
		Data: testutil.ChunkData(testutil.Blob(testutil.TLV(testutil.Field{ID: 18, Data: roster}))),
	})
	tree, diagnostics := export(t, data, DecodeOptions{ExpandWaves: true})
	if !hasCode(diagnostics, CodeWaveRosterOpaque) {
		t.Errorf("diagnostics %v lack %s", codes(diagnostics), CodeWaveRosterOpaque)
	}
	if _, ok := lookup(t, tree, "board", "zombies_in_wave").AsBytes(); !ok {
		t.Error("roster with filler after a terminator should stay bytes")
	}
	if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, data) {
		t.Error("round trip changed the save")
	}
}

func TestUnknownBoardFieldPreserved(t *testing.T) {
	data := testutil.Sample()
	tree, _ := export(t, data, DecodeOptions{})
	name := schema.UnknownFieldName(testutil.SampleUnknownField)
	raw, ok := lookup(t, tree, "board", name).AsBytes()
	if !ok || !bytes.Equal(raw, []byte{9, 8, 7}) {
		t.Fatalf("%s = %v", name, raw)
	}
	if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, data) {
		t.Error("round trip changed the save")
	}
}

func TestBoardValues(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	tests := []struct {
		name string
		want document.Value
	}{
		{"paused", document.Bool(false)},
		{"fog_offset", document.Float(1.5)},
		{"background", document.String("BACKGROUND_3_POOL")},
		{"sun_money", document.Int(testutil.SampleSunMoney)},
		{"game_id", document.Int(testutil.SampleGameID)},
	}
	for _, tt := range tests {
		if got := lookup(t, tree, "board", tt.name); !document.Equal(got, tt.want) {
			t.Errorf("board.%s = %s, want %s", tt.name, got, tt.want)
		}
	}
	keys := mapAt(t, tree, "board").Keys()
	if keys[0] != "paused" || keys[len(keys)-1] != schema.UnknownFieldName(testutil.SampleUnknownField) {
		t.Errorf("board keys not in field id order: %v", keys)
	}
}

func TestFatalErrors(t *testing.T) {
	sample := testutil.Sample()
	flipped := bytes.Clone(sample)
	flipped[len(flipped)-1] ^= 0xff

	if _, _, err := Decode(sample[:10], DecodeOptions{}); !errors.Is(err, savefile.ErrTruncated) {
		t.Errorf("short buffer: err = %v, want ErrTruncated", err)
	}
	var structural *savefile.StructuralError
	if _, _, err := Decode(sample[:10], DecodeOptions{}); !errors.As(err, &structural) {
		t.Errorf("short buffer: err = %v, want *StructuralError", err)
	}
	var integrity *savefile.IntegrityError
	if _, _, err := Decode(flipped, DecodeOptions{}); !errors.As(err, &integrity) {
		t.Errorf("flipped byte: err = %v, want *IntegrityError", err)
	}
	var mismatch *savefile.FormatMismatchError
	_, _, err := Decode(testutil.Container('3', 1, nil), DecodeOptions{})
	if !errors.As(err, &mismatch) || mismatch.Generation != 3 {
		t.Errorf("generation 3: err = %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "3") {
		t.Errorf("error %q does not name the generation", err)
	}
}

func TestVersionMismatchIsDiagnostic(t *testing.T) {
	data := testutil.Container('4', 7, testutil.Payload(testutil.SampleChunks()...))
	doc, diagnostics, err := Decode(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !hasCode(diagnostics, CodeVersionMismatch) {
		t.Errorf("diagnostics %v lack %s", codes(diagnostics), CodeVersionMismatch)
	}
	encoded, _, err := Encode(doc, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, data) {
		t.Error("version 7 file did not round-trip")
	}
}

func TestRepeatedChunkIsKeptAsTrailer(t *testing.T) {
	chunks := testutil.SampleChunks()
	repeat := testutil.Chunk{Type: uint32(schema.ChunkParticleEmitters), Data: []byte{9, 9}}
	chunks = append(chunks, repeat)
	data := testutil.SaveFile(chunks...)

	tree, diagnostics := export(t, data, DecodeOptions{})
	if !hasCode(diagnostics, CodeDuplicateChunk) {
		t.Fatalf("diagnostics %v lack %s", codes(diagnostics), CodeDuplicateChunk)
	}
	for _, diagnostic := range diagnostics {
		if diagnostic.Code == CodeDuplicateChunk && diagnostic.Chunk != schema.ChunkParticleEmitters.String() {
			t.Errorf("duplicate_chunk names chunk %q", diagnostic.Chunk)
		}
	}
	trailer, _ := lookup(t, tree, "payload_trailer").AsBytes()
	if want := testutil.Payload(repeat); !bytes.Equal(trailer, want) {
		t.Errorf("payload_trailer = %x, want %x", trailer, want)
	}
	if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, data) {
		t.Error("file with a repeated chunk did not round-trip")
	}
}

func TestChunkFallback(t *testing.T) {
	goodBoard := testutil.Blob(testutil.TLV(testutil.Field{ID: 30, Data: testutil.I32(5)}))
	tests := []struct {
		name string
		data []byte
	}{
		{"inner version 2", append(testutil.U32(2, 1, uint32(len(goodBoard))), goodBoard...)},
		{"field id 2", append(testutil.U32(1, 2, uint32(len(goodBoard))), goodBoard...)},
		{"bytes after blob", testutil.ChunkData(append(bytes.Clone(goodBoard), 0))},
		{"unsorted field ids", testutil.ChunkData(testutil.Blob(append(
			testutil.TLV(testutil.Field{ID: 30, Data: testutil.I32(5)}),
			testutil.TLV(testutil.Field{ID: 1, Data: []byte{0}})...)))},
		{"tlv padding", testutil.ChunkData(testutil.Blob(append(testutil.TLV(testutil.Field{ID: 30, Data: testutil.I32(5)}), 0, 0)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testutil.SaveFile(testutil.Chunk{Type: testutil.ChunkBoardBase, Data: tt.data})
			doc, diagnostics, err := Decode(data, DecodeOptions{})
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if doc.Board != nil {
				t.Error("board should not be structured")
			}
			if !bytes.Equal(doc.BinaryChunks[schema.ChunkBoardBase], tt.data) {
				t.Error("board chunk bytes not kept")
			}
			if !hasCode(diagnostics, CodeChunkFallback) {
				t.Errorf("diagnostics %v lack %s", codes(diagnostics), CodeChunkFallback)
			}
			tree := doc.Tree()
			if mapAt(t, tree).Has("board") {
				t.Error("tree should have no board section")
			}
			if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, data) {
				t.Error("round trip changed the save")
			}
		})
	}
}

func TestBoardFieldFallback(t *testing.T) {
	data := testutil.SaveFile(testutil.Chunk{
		Type: testutil.ChunkBoardBase,
		Data: testutil.ChunkData(testutil.Blob(testutil.TLV(
			testutil.Field{ID: 1, Data: []byte{2}},
			testutil.Field{ID: 9, Data: testutil.U32(0x7fc00001)},
			testutil.Field{ID: 30, Data: testutil.I32(5)[:3]},
			testutil.Field{ID: 31, Data: testutil.I32(20)},
		))),
	})
	tree, diagnostics := export(t, data, DecodeOptions{})
	for _, name := range []string{"paused", "fog_offset", "sun_money"} {
		if _, ok := lookup(t, tree, "board", name).AsBytes(); !ok {
			t.Errorf("board.%s should fall back to bytes", name)
		}
	}
	if got, _ := lookup(t, tree, "board", "num_waves").AsInt(); got != 20 {
		t.Errorf("num_waves = %d", got)
	}
	fallbacks := 0
	for _, diagnostic := range diagnostics {
		if diagnostic.Code == CodeFieldFallback {
			fallbacks++
		}
	}
	if fallbacks != 3 {
		t.Errorf("%d field fallbacks, want 3: %v", fallbacks, diagnostics)
	}
	if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, data) {
		t.Error("round trip changed the save")
	}
}

func TestEntityFallback(t *testing.T) {
	nanTail := testutil.ZombieTail(0, float32(math.NaN()), 100)
	shortTail := testutil.ZombieTail(0, 10, 100)[:50]
	data := testutil.SaveFile(testutil.Chunk{
		Type: testutil.ChunkZombies,
		Data: testutil.ChunkData(testutil.DataArray(0, 2, 0x20002, 1024,
			testutil.Entry{ID: 0x10000, Fields: testutil.TLV(testutil.Field{ID: 100, Data: nanTail})},
			testutil.Entry{ID: 0x10001, Fields: testutil.TLV(testutil.Field{ID: 100, Data: shortTail})},
		)),
	})
	tree, diagnostics := export(t, data, DecodeOptions{})
	for index := range 2 {
		zombie := mapAt(t, tree, "zombies", index)
		if !zombie.Has("_tail_raw") || zombie.Has("zombie_type") {
			t.Errorf("zombie %d keys %v, want an opaque tail", index, zombie.Keys())
		}
	}
	if len(diagnostics) != 2 || diagnostics[0].Code != CodeEntityFallback || diagnostics[0].Path != "zombies[0]" {
		t.Errorf("diagnostics = %v", diagnostics)
	}
	if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, data) {
		t.Error("round trip changed the save")
	}
}

func TestUnmappableField(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	mapAt(t, tree, "board").Set("sun_bank", document.Int(1))
	mapAt(t, tree, "zombies", 0).Set("speed", document.Int(1))

	_, _, err := Import(tree, EncodeOptions{})
	var unmappable *UnmappableFieldError
	if !errors.As(err, &unmappable) {
		t.Fatalf("Import: err = %v, want *UnmappableFieldError", err)
	}
	if unmappable.Path != "board.sun_bank" {
		t.Errorf("Path = %q", unmappable.Path)
	}

	var logged bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logged, nil))
	encoded, diagnostics, err := Import(tree, EncodeOptions{DropUnmappable: true, Logger: logger})
	if err != nil {
		t.Fatalf("Import with DropUnmappable: %v", err)
	}
	var paths []string
	for _, diagnostic := range diagnostics {
		if diagnostic.Code == CodeUnmappableField {
			paths = append(paths, diagnostic.Path)
		}
	}
	if len(paths) != 2 || paths[0] != "board.sun_bank" || paths[1] != "zombies[0].speed" {
		t.Errorf("unmappable paths = %v", paths)
	}
	if !bytes.Equal(encoded, testutil.Sample()) {
		t.Error("dropping the unmappable fields should leave the save unchanged")
	}
	if !strings.Contains(logged.String(), `"code":"unmappable_field"`) {
		t.Errorf("diagnostic not logged: %s", logged.String())
	}
}

func TestMissingChunk(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	mapAt(t, tree).Delete("board")
	_, _, err := Import(tree, EncodeOptions{})
	var missing *MissingChunkError
	if !errors.As(err, &missing) || missing.Chunk != schema.ChunkBoardBase {
		t.Errorf("err = %v, want MissingChunkError for BOARD_BASE", err)
	}
}

func TestOrphanSection(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	order, _ := lookup(t, tree, "_chunk_order").AsSeq()
	mapAt(t, tree).Set("_chunk_order", document.Seq(order[1:]...))

	encoded, diagnostics := importTree(t, tree, EncodeOptions{})
	if !hasCode(diagnostics, CodeOrphanSection) {
		t.Errorf("diagnostics %v lack %s", codes(diagnostics), CodeOrphanSection)
	}
	doc, _, err := Decode(encoded, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Board != nil || len(doc.ChunkOrder) != len(order)-1 {
		t.Error("board chunk should have been left out")
	}
}

func TestChunkOrderAcceptsNames(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	order, _ := lookup(t, tree, "_chunk_order").AsSeq()
	named := make([]document.Value, 0, len(order))
	for _, item := range order {
		number, _ := item.AsInt()
		named = append(named, document.String(schema.ChunkType(number).String()))
	}
	mapAt(t, tree).Set("_chunk_order", document.Seq(named...))
	if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, testutil.Sample()) {
		t.Error("named chunk order changed the save")
	}
}

func TestDuplicateChunkOrder(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	order, _ := lookup(t, tree, "_chunk_order").AsSeq()
	mapAt(t, tree).Set("_chunk_order", document.Seq(append(order, order[0])...))
	if _, _, err := Import(tree, EncodeOptions{}); !errors.Is(err, savefile.ErrDuplicateChunk) {
		t.Errorf("err = %v, want ErrDuplicateChunk", err)
	}
}

func TestUnrecognizedEnumOnWrite(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	mapAt(t, tree, "zombies", 2).Set("zombie_type", document.String("ZOMBIE_NOPE"))
	mapAt(t, tree, "zombies", 0).Set("zombie_type", document.String("UNKNOWN_57"))

	encoded, diagnostics := importTree(t, tree, EncodeOptions{})
	if len(diagnostics) != 1 || diagnostics[0].Path != "zombies[2].zombie_type" {
		t.Errorf("diagnostics = %v", diagnostics)
	}
	reread, _ := export(t, encoded, DecodeOptions{})
	if got, _ := lookup(t, reread, "zombies", 2, "zombie_type").AsString(); got != "ZOMBIE_NORMAL" {
		t.Errorf("unrecognized name written as %q, want ZOMBIE_NORMAL", got)
	}
	if got, _ := lookup(t, reread, "zombies", 0, "zombie_type").AsString(); got != "UNKNOWN_57" {
		t.Errorf("UNKNOWN_57 became %q", got)
	}
}

func TestAddedObjectUsesDefaults(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	plants, _ := lookup(t, tree, "plants").AsSeq()
	added := document.NewMap(2)
	added.Set("_id", document.Int(0x20001))
	added.Set("seed_type", document.String("SEED_WALLNUT"))
	mapAt(t, tree).Set("plants", document.Seq(append(plants, document.MapValue(added))...))
	mapAt(t, tree, "plants_header").Set("max_used_count", document.Int(2))

	encoded, _ := importTree(t, tree, EncodeOptions{})
	reread, _ := export(t, encoded, DecodeOptions{})
	if got, _ := lookup(t, reread, "plants", 1, "seed_type").AsString(); got != "SEED_WALLNUT" {
		t.Errorf("seed_type = %q", got)
	}
	if got, _ := lookup(t, reread, "plants", 1, "plant_health").AsInt(); got != 300 {
		t.Errorf("plant_health = %d, want default 300", got)
	}

	// A header that disagrees with the object count cannot be written.
	mapAt(t, tree, "plants_header").Set("max_used_count", document.Int(5))
	if _, _, err := Import(tree, EncodeOptions{}); err == nil {
		t.Error("max_used_count mismatch should fail")
	}
}

func TestTrailersAndPadding(t *testing.T) {
	payload := append(testutil.Payload(testutil.SampleChunks()...), 1, 2, 3)
	data := append(testutil.Container('4', 1, payload), 0xaa)
	data[10] = 'z'
	// Padding is outside the CRC, so the header stays valid.
	tree, _ := export(t, data, DecodeOptions{})
	if raw, _ := lookup(t, tree, "payload_trailer").AsBytes(); !bytes.Equal(raw, []byte{1, 2, 3}) {
		t.Errorf("payload_trailer = %x", raw)
	}
	if raw, _ := lookup(t, tree, "file_trailer").AsBytes(); !bytes.Equal(raw, []byte{0xaa}) {
		t.Errorf("file_trailer = %x", raw)
	}
	if raw, _ := lookup(t, tree, "_header_padding").AsBytes(); !bytes.Equal(raw, []byte{'z', 0}) {
		t.Errorf("_header_padding = %x", raw)
	}
	if encoded, _ := importTree(t, tree, EncodeOptions{}); !bytes.Equal(encoded, data) {
		t.Error("trailers or padding did not round-trip")
	}
}

func TestValidate(t *testing.T) {
	tree, _ := export(t, testutil.Sample(), DecodeOptions{})
	if problems := Validate(tree); len(problems) != 0 {
		t.Fatalf("Validate on an unedited tree: %v", problems)
	}

	mapAt(t, tree, "board").Set("sun_bank", document.Int(1))
	mapAt(t, tree, "zombies", 0).Set("pos_x", document.String("fast"))
	mapAt(t, tree, "mowers_header").Set("size", document.Int(-1))
	mapAt(t, tree).Delete("challenge")

	problems := Validate(tree)
	if len(problems) != 4 {
		t.Fatalf("Validate found %d problems, want 4: %v", len(problems), problems)
	}
	var (
		unmappable *UnmappableFieldError
		fieldType  *FieldTypeError
		missing    *MissingChunkError
	)
	found := map[string]bool{}
	for _, problem := range problems {
		switch {
		case errors.As(problem, &unmappable):
			found["unmappable"] = true
		case errors.As(problem, &missing):
			found["missing"] = true
		case errors.As(problem, &fieldType):
			found[fieldType.Path] = true
		}
	}
	for _, want := range []string{"unmappable", "missing", "zombies[0].pos_x", "mowers_header.size"} {
		if !found[want] {
			t.Errorf("Validate did not report %s: %v", want, problems)
		}
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		diagnostic Diagnostic
		want       string
	}{
		{Diagnostic{Code: CodeVersionMismatch, Message: "m"}, "version_mismatch: m"},
		{Diagnostic{Code: CodeChunkFallback, Chunk: "BOARD_BASE", Message: "m"}, "chunk_fallback: BOARD_BASE: m"},
		{Diagnostic{Code: CodeFieldFallback, Chunk: "BOARD_BASE", Path: "board.paused", Message: "m"}, "field_fallback: board.paused: m"},
	}
	for _, tt := range tests {
		if got := tt.diagnostic.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestConcurrentDecode(t *testing.T) {
	data := testutil.Sample()
	results := make(chan error, 8)
	for range 8 {
		go func() {
			doc, _, err := Decode(data, DecodeOptions{ExpandWaves: true})
			if err == nil {
				var encoded []byte
				encoded, _, err = Encode(doc, EncodeOptions{})
				if err == nil && !bytes.Equal(encoded, data) {
					err = errors.New("round trip differs")
				}
			}
			results <- err
		}()
	}
	for range 8 {
		if err := <-results; err != nil {
			t.Error(err)
		}
	}
}
