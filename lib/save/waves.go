// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"bytes"
	"fmt"

	"github.com/pvzportable/pvzp-save/lib/binio"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/entity"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

const (
	waveRowSize = schema.MaxZombiesInWave * 4
	rosterSize  = schema.MaxZombieWaves * waveRowSize
)

// decodeWaves expands a zombies_in_wave payload into one list of zombie
// type names per wave. Each row ends at its first ZOMBIE_INVALID. The
// expansion is rejected unless it encodes back to payload, so filler
// after a row's terminator must itself be ZOMBIE_INVALID.
func decodeWaves(payload []byte) (document.Value, error) {
	if len(payload) != rosterSize {
		return document.Value{}, fmt.Errorf("roster is %d bytes, want %d", len(payload), rosterSize)
	}
	r := binio.NewReader(payload)
	rows := make([]document.Value, 0, schema.MaxZombieWaves)
	for range schema.MaxZombieWaves {
		row, _ := r.Bytes(waveRowSize)
		cells := binio.NewReader(row)
		var names []document.Value
		for cells.Remaining() > 0 {
			zombieType, _ := cells.Int32()
			if zombieType == schema.ZombieInvalid {
				break
			}
			names = append(names, document.String(schema.ZombieType.Name(zombieType)))
		}
		rows = append(rows, document.Seq(names...))
	}

	roster := document.Seq(rows...)
	encoded, err := encodeWaves(roster, "", &collector{})
	if err != nil {
		return document.Value{}, err
	}
	if !bytes.Equal(encoded, payload) {
		return document.Value{}, fmt.Errorf("roster has entries after a row terminator")
	}
	return roster, nil
}

// encodeWaves writes a roster of up to 100 rows of up to 50 entries.
// Short rows and missing rows are filled with ZOMBIE_INVALID. Entries
// may be zombie type names or integers; unrecognized names are written
// as ZOMBIE_INVALID.
func encodeWaves(value document.Value, path string, diagnostics *collector) ([]byte, error) {
	rows, err := value.List(path)
	if err != nil {
		return nil, err
	}
	if len(rows) > schema.MaxZombieWaves {
		return nil, fmt.Errorf("%s: %d waves, at most %d fit", path, len(rows), schema.MaxZombieWaves)
	}
	w := binio.NewWriter(rosterSize)
	for index := range schema.MaxZombieWaves {
		var row []document.Value
		rowPath := document.Index(path, index)
		if index < len(rows) {
			row, err = rows[index].List(rowPath)
			if err != nil {
				return nil, err
			}
		}
		if len(row) > schema.MaxZombiesInWave {
			return nil, fmt.Errorf("%s: %d zombies, at most %d fit", rowPath, len(row), schema.MaxZombiesInWave)
		}
		for slot := range schema.MaxZombiesInWave {
			if slot >= len(row) {
				w.Int32(schema.ZombieInvalid)
				continue
			}
			zombieType, warning, err := entity.EnumValue(schema.ZombieType, row[slot], schema.ZombieInvalid, document.Index(rowPath, slot))
			if err != nil {
				return nil, err
			}
			if warning != nil {
				diagnostics.addf(CodeUnrecognizedEnum, schema.ChunkBoardBase.String(), warning.Path, "%s", warning.Message)
			}
			w.Int32(zombieType)
		}
	}
	return w.Bytes(), nil
}
