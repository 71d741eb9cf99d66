// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ChunkType identifies a top-level section of the save payload. Values
// are protocol constants.
type ChunkType uint32

const (
	ChunkBoardBase         ChunkType = 1
	ChunkZombies           ChunkType = 2
	ChunkPlants            ChunkType = 3
	ChunkProjectiles       ChunkType = 4
	ChunkCoins             ChunkType = 5
	ChunkMowers            ChunkType = 6
	ChunkGridItems         ChunkType = 7
	ChunkParticleEmitters  ChunkType = 8
	ChunkParticleParticles ChunkType = 9
	ChunkParticleSystems   ChunkType = 10
	ChunkReanimations      ChunkType = 11
	ChunkTrails            ChunkType = 12
	ChunkAttachments       ChunkType = 13
	ChunkCursor            ChunkType = 14
	ChunkCursorPreview     ChunkType = 15
	ChunkAdvice            ChunkType = 16
	ChunkSeedBank          ChunkType = 17
	ChunkSeedPackets       ChunkType = 18
	ChunkChallenge         ChunkType = 19
	ChunkMusic             ChunkType = 20
)

var chunkNames = map[ChunkType]string{
	ChunkBoardBase:         "BOARD_BASE",
	ChunkZombies:           "ZOMBIES",
	ChunkPlants:            "PLANTS",
	ChunkProjectiles:       "PROJECTILES",
	ChunkCoins:             "COINS",
	ChunkMowers:            "MOWERS",
	ChunkGridItems:         "GRIDITEMS",
	ChunkParticleEmitters:  "PARTICLE_EMITTERS",
	ChunkParticleParticles: "PARTICLE_PARTICLES",
	ChunkParticleSystems:   "PARTICLE_SYSTEMS",
	ChunkReanimations:      "REANIMATIONS",
	ChunkTrails:            "TRAILS",
	ChunkAttachments:       "ATTACHMENTS",
	ChunkCursor:            "CURSOR",
	ChunkCursorPreview:     "CURSOR_PREVIEW",
	ChunkAdvice:            "ADVICE",
	ChunkSeedBank:          "SEEDBANK",
	ChunkSeedPackets:       "SEEDPACKETS",
	ChunkChallenge:         "CHALLENGE",
	ChunkMusic:             "MUSIC",
}

// unknownChunkPrefix names chunk types outside the table.
const unknownChunkPrefix = "UNKNOWN_"

// String returns the chunk's symbolic name, or "UNKNOWN_<n>".
func (t ChunkType) String() string {
	if name, ok := chunkNames[t]; ok {
		return name
	}
	return unknownChunkPrefix + strconv.FormatUint(uint64(t), 10)
}

// Known reports whether t is one of the registered chunk types.
func (t ChunkType) Known() bool {
	_, ok := chunkNames[t]
	return ok
}

// ParseChunkName is the inverse of [ChunkType.String].
func ParseChunkName(name string) (ChunkType, error) {
	for chunkType, chunkName := range chunkNames {
		if chunkName == name {
			return chunkType, nil
		}
	}
	if digits, ok := strings.CutPrefix(name, unknownChunkPrefix); ok {
		value, err := strconv.ParseUint(digits, 10, 32)
		if err == nil {
			return ChunkType(value), nil
		}
	}
	return 0, fmt.Errorf("unknown chunk name %q", name)
}
