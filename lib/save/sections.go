// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/pvzportable/pvzp-save/lib/binio"
	"github.com/pvzportable/pvzp-save/lib/dataarray"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/entity"
	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/schema"
	"github.com/pvzportable/pvzp-save/lib/tlv"
)

const (
	seedBankKey    = "seedbank"
	seedPacketsKey = "seedpackets"
	challengeKey   = "challenge"
)

func decodeObjects(body []byte, kind objectKind, diagnostics *collector) (*ObjectArray, error) {
	array, err := dataarray.Parse(body)
	if err != nil {
		return nil, err
	}
	layout := entity.LayoutFor(kind.kind)
	objects := &ObjectArray{Header: array.Header, Objects: make([]Object, 0, len(array.Entries))}
	for index, entry := range array.Entries {
		record, fallback := entity.Decode(layout, tlv.Parse(entry.Payload), entry.Active())
		if fallback != nil {
			diagnostics.addf(CodeEntityFallback, kind.chunk.String(), document.Index(kind.key, index),
				"tail kept as %s: %v", entity.TailRawKey, fallback)
		}
		objects.Objects = append(objects.Objects, Object{ID: entry.ID, Record: record})
	}
	return objects, nil
}

func encodeObjects(objects *ObjectArray, kind objectKind, diagnostics *collector) ([]byte, error) {
	layout := entity.LayoutFor(kind.kind)
	array := &dataarray.Array{Header: objects.Header, Entries: make([]dataarray.Entry, 0, len(objects.Objects))}
	for index, object := range objects.Objects {
		fields, err := encodeRecord(object.Record, layout, kind.chunk, document.Index(kind.key, index), diagnostics)
		if err != nil {
			return nil, err
		}
		array.Entries = append(array.Entries, dataarray.Entry{ID: object.ID, Payload: fields})
	}
	body, err := dataarray.Encode(array)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind.key, err)
	}
	return body, nil
}

// encodeRecord encodes one record's field set, reporting enum
// substitutions as diagnostics.
func encodeRecord(record entity.Record, layout *entity.Layout, chunk schema.ChunkType, path string, diagnostics *collector) ([]byte, error) {
	fields, warnings, err := record.Encode(layout, path)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		diagnostics.addf(CodeUnrecognizedEnum, chunk.String(), warning.Path, "%s", warning.Message)
	}
	return tlv.Encode(fields), nil
}

func decodeSeedBank(body []byte, diagnostics *collector) (*entity.Record, error) {
	blob, err := savefile.UnwrapBlob(body)
	if err != nil {
		return nil, err
	}
	record, fallback := entity.Decode(entity.SeedBankLayout, tlv.Parse(blob), true)
	if fallback != nil {
		diagnostics.addf(CodeEntityFallback, schema.ChunkSeedBank.String(), seedBankKey,
			"tail kept as %s: %v", entity.TailRawKey, fallback)
	}
	return &record, nil
}

func encodeSeedBank(record *entity.Record, diagnostics *collector) ([]byte, error) {
	fields, err := encodeRecord(*record, entity.SeedBankLayout, schema.ChunkSeedBank, seedBankKey, diagnostics)
	if err != nil {
		return nil, err
	}
	return savefile.WrapBlob(fields), nil
}

// decodeSeedPackets reads an i32 count followed by that many
// size-prefixed field sets.
func decodeSeedPackets(body []byte, diagnostics *collector) (*SeedPacketList, error) {
	r := binio.NewReader(body)
	count, err := r.Int32()
	if err != nil {
		return nil, fmt.Errorf("seed packet count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("seed packet count is %d", count)
	}
	list := &SeedPacketList{Packets: make([]entity.Record, 0, min(int(count), r.Remaining()/4))}
	for index := range int(count) {
		size, err := r.Uint32()
		if err != nil {
			return nil, fmt.Errorf("seed packet %d size: %w", index, err)
		}
		if uint64(size) > uint64(r.Remaining()) {
			return nil, fmt.Errorf("seed packet %d declares %d bytes, %d remain: %w", index, size, r.Remaining(), binio.ErrShortBuffer)
		}
		payload, _ := r.Bytes(int(size))
		record, fallback := entity.Decode(entity.SeedPacketLayout, tlv.Parse(payload), true)
		if fallback != nil {
			diagnostics.addf(CodeEntityFallback, schema.ChunkSeedPackets.String(), document.Index(seedPacketsKey, index),
				"tail kept as %s: %v", entity.TailRawKey, fallback)
		}
		list.Packets = append(list.Packets, record)
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%d bytes after %d seed packets", r.Remaining(), count)
	}
	return list, nil
}

func encodeSeedPackets(list *SeedPacketList, diagnostics *collector) ([]byte, error) {
	w := binio.NewWriter(4)
	w.Int32(int32(len(list.Packets)))
	for index, record := range list.Packets {
		fields, err := encodeRecord(record, entity.SeedPacketLayout, schema.ChunkSeedPackets, document.Index(seedPacketsKey, index), diagnostics)
		if err != nil {
			return nil, err
		}
		w.Uint32(uint32(len(fields)))
		w.PutBytes(fields)
	}
	return w.Bytes(), nil
}

// challengeData is the challenge field kept whole as opaque bytes.
var challengeData = func() schema.Field {
	field, ok := schema.Challenge.ByType(schema.TypeRaw)
	if !ok {
		panic("save: challenge field table has no opaque field")
	}
	return field
}()

// decodeChallenge looks each id up in the challenge table; the opaque
// field becomes Data and every other id is carried as is.
func decodeChallenge(body []byte) (*Challenge, error) {
	blob, err := savefile.UnwrapBlob(body)
	if err != nil {
		return nil, err
	}
	challenge := &Challenge{}
	for id, payload := range tlv.Parse(blob) {
		if field, registered := schema.Challenge.ByID(id); registered && field.Opaque() {
			challenge.Data = bytes.Clone(payload)
			continue
		}
		if challenge.Others == nil {
			challenge.Others = make(tlv.Fields)
		}
		challenge.Others[id] = bytes.Clone(payload)
	}
	return challenge, nil
}

func encodeChallenge(challenge *Challenge) []byte {
	fields := make(tlv.Fields, len(challenge.Others)+1)
	maps.Copy(fields, challenge.Others)
	if challenge.Data != nil {
		fields[challengeData.ID] = challenge.Data
	}
	return savefile.WrapBlob(tlv.Encode(fields))
}
