// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "encoding/binary"

// Values placed in the sample save, for assertions.
const (
	SampleSunMoney      = 150
	SampleGameID        = 1234567890123
	SampleBackground    = 2 // BACKGROUND_3_POOL
	SampleUnknownField  = 500
	SampleUnknownChunk  = 77
	SampleZombieCount   = 3 // slots, one inactive
	SampleInactiveSlot  = 1 // index of the inactive zombie slot, id 1
	SampleSeedPackets   = 2
	SampleBucketheadHP  = 270
	SampleChallengeSize = 40
)

// SampleWaveRow3 is the roster of wave index 3 in the sample.
var SampleWaveRow3 = []int32{0, 2, 4, 1, 0, 2, 32}

func put32(buf []byte, offset int, v int32) {
	binary.LittleEndian.PutUint32(buf[offset:], uint32(v))
}

// ZombieTail returns a zombie tail with the given type, x position, and
// body health; every other field is zero except has_head, has_arm, and
// has_object.
func ZombieTail(zombieType int32, posX float32, bodyHealth int32) []byte {
	tail := make([]byte, ZombieTailSize)
	put32(tail, 0, zombieType)
	copy(tail[8:], F32(posX))
	tail[139], tail[140], tail[141] = 1, 1, 1
	put32(tail, 153, bodyHealth)
	put32(tail, 157, bodyHealth)
	return tail
}

// PlantTail returns a plant tail with the given seed type, column, and
// health.
func PlantTail(seedType, column, health int32) []byte {
	tail := make([]byte, PlantTailSize)
	put32(tail, 0, seedType)
	put32(tail, 4, column)
	put32(tail, 28, health)
	put32(tail, 32, health)
	return tail
}

// MowerTail returns a ready, visible lawn mower tail for row.
func MowerTail(row int32) []byte {
	tail := make([]byte, MowerTailSize)
	copy(tail[0:], F32(-160))
	put32(tail, 12, row)
	tail[41] = 1
	return tail
}

// ScaryPotTail returns a grid item tail for a scary pot holding a seed.
func ScaryPotTail(gridX, gridY, seedType int32) []byte {
	tail := make([]byte, GridItemTailSize)
	put32(tail, 0, 7) // GRIDITEM_SCARY_POT
	put32(tail, 8, gridX)
	put32(tail, 12, gridY)
	put32(tail, 49, -1) // ZOMBIE_INVALID
	put32(tail, 53, seedType)
	put32(tail, 57, 1) // SCARYPOT_SEED
	return tail
}

// SeedPacketTail returns a seed packet tail for slot index.
func SeedPacketTail(index, packetType int32) []byte {
	tail := make([]byte, SeedPacketTailSize)
	put32(tail, 4, 750)
	put32(tail, 8, index)
	put32(tail, 16, packetType)
	put32(tail, 20, -1)
	put32(tail, 28, -1)
	tail[36] = 1
	return tail
}

// WaveRoster encodes a 100x50 zombies_in_wave grid. Each given row is
// padded with -1; rows not given are all -1.
func WaveRoster(rows map[int][]int32) []byte {
	grid := make([]int32, 100*50)
	for i := range grid {
		grid[i] = -1
	}
	for index, row := range rows {
		copy(grid[index*50:], row)
	}
	return I32(grid...)
}

// SampleBoard returns the TLV blob of the sample BOARD_BASE.
func SampleBoard() []byte {
	gridSquares := make([]byte, 9*6*4)
	for i := range gridSquares {
		gridSquares[i] = byte(i % 3)
	}
	return TLV(
		Field{1, []byte{0}},
		Field{2, gridSquares},
		Field{9, F32(1.5)},
		Field{18, WaveRoster(map[int][]int32{0: {0, 0}, 3: SampleWaveRow3})},
		Field{25, I32(SampleBackground)},
		Field{30, I32(SampleSunMoney)},
		Field{90, I64(SampleGameID)},
		Field{SampleUnknownField, []byte{9, 8, 7}},
	)
}

// SampleChunks returns the chunks of [Sample] in file order.
func SampleChunks() []Chunk {
	inactiveTail := make([]byte, ZombieTailSize)
	for i := range inactiveTail {
		inactiveTail[i] = 0xcd
	}
	zombies := DataArray(1, 2, 0x30003, 1024,
		Entry{0x10000, TLV(
			Field{1, Base(700, 80, 80, 115, true, 0, 300001)},
			Field{100, ZombieTail(0, 700.5, 270)},
		)},
		Entry{1, TLV(
			Field{1, Base(0, 0, 0, 0, false, 0, 0)},
			Field{100, inactiveTail},
		)},
		Entry{0x20002, TLV(
			Field{1, Base(650, 180, 80, 115, true, 1, 300002)},
			Field{7, []byte{1, 2}},
			Field{100, ZombieTail(4, 650.25, SampleBucketheadHP)},
		)},
	)
	plants := DataArray(0, 1, 0x10001, 1024,
		Entry{0x10000, TLV(
			Field{1, Base(40, 80, 80, 80, true, 0, 200000)},
			Field{100, PlantTail(1, 0, 300)},
		)},
	)
	mowers := DataArray(0, 2, 0x20002, 1024,
		Entry{0x10000, TLV(Field{1, Base(-160, 80, 0, 0, true, 0, 0)}, Field{100, MowerTail(0)})},
		Entry{0x10001, TLV(Field{1, Base(-160, 180, 0, 0, true, 1, 0)}, Field{100, MowerTail(1)})},
	)
	gridItems := DataArray(0, 1, 0x10001, 1024,
		Entry{0x10000, TLV(Field{100, ScaryPotTail(4, 2, 3)})},
	)
	seedBank := TLV(
		Field{1, Base(0, 0, 400, 87, true, 0, 100)},
		Field{100, I32(SampleSeedPackets, 0, 0)},
	)
	var seedPackets []byte
	seedPackets = append(seedPackets, I32(SampleSeedPackets)...)
	for index, seed := range []int32{0, 1} {
		item := TLV(
			Field{1, Base(85+50*int32(index), 8, 50, 70, true, 0, 100)},
			Field{100, SeedPacketTail(int32(index), seed)},
		)
		seedPackets = append(seedPackets, U32(uint32(len(item)))...)
		seedPackets = append(seedPackets, item...)
	}
	challenge := make([]byte, SampleChallengeSize)
	for i := range challenge {
		challenge[i] = byte(i)
	}

	return []Chunk{
		{ChunkBoardBase, ChunkData(Blob(SampleBoard()))},
		{ChunkZombies, ChunkData(zombies)},
		{ChunkPlants, ChunkData(plants)},
		{ChunkParticleEmitters, ChunkData(DataArray(0, 0, 1, 1000))},
		{ChunkMowers, ChunkData(mowers)},
		{ChunkGridItems, ChunkData(gridItems)},
		{ChunkSeedBank, ChunkData(Blob(seedBank))},
		{ChunkSeedPackets, ChunkData(seedPackets)},
		{ChunkChallenge, ChunkData(Blob(TLV(Field{100, challenge})))},
		{SampleUnknownChunk, []byte{1, 2, 3, 4, 5}},
	}
}

// Sample returns a complete save file.
func Sample() []byte {
	return SaveFile(SampleChunks()...)
}
