// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Field ids shared by every game-object record.
const (
	// FieldBase holds the placement base (position, size, row, draw order).
	FieldBase uint32 = 1
	// FieldTail holds the kind-specific tail layout.
	FieldTail uint32 = 100
)

// FieldZombiesInWave is the board field holding the per-wave zombie
// rosters, a fixed [MaxZombieWaves][MaxZombiesInWave] grid of int32.
const FieldZombiesInWave uint32 = 18

// Wave roster dimensions.
const (
	MaxZombieWaves   = 100
	MaxZombiesInWave = 50
)

// Board is the registry for the BOARD_BASE chunk body.
var Board = newTable(KindBoard, []Field{
	{ID: 1, Name: "paused", Type: TypeBool},
	{ID: 2, Name: "grid_square_type", Type: TypeRaw, Array: true},
	{ID: 3, Name: "grid_cel_look", Type: TypeRaw, Array: true},
	{ID: 4, Name: "grid_cel_offset", Type: TypeRaw, Array: true},
	{ID: 5, Name: "grid_cel_fog", Type: TypeRaw, Array: true},
	{ID: 6, Name: "enable_gravestones", Type: TypeBool},
	{ID: 7, Name: "special_gravestone_x", Type: TypeInt32},
	{ID: 8, Name: "special_gravestone_y", Type: TypeInt32},
	{ID: 9, Name: "fog_offset", Type: TypeFloat32},
	{ID: 10, Name: "fog_blown_countdown", Type: TypeInt32},
	{ID: 11, Name: "plant_row", Type: TypeRaw, Array: true},
	{ID: 12, Name: "wave_row_got_lawnmowered", Type: TypeRaw, Array: true},
	{ID: 13, Name: "bonus_lawnmowers_remaining", Type: TypeInt32},
	{ID: 14, Name: "ice_min_x", Type: TypeRaw, Array: true},
	{ID: 15, Name: "ice_timer", Type: TypeRaw, Array: true},
	{ID: 16, Name: "ice_particle_id", Type: TypeRaw, Array: true},
	{ID: 17, Name: "row_picking_array", Type: TypeRaw, Array: true},
	{ID: 18, Name: "zombies_in_wave", Type: TypeRaw, Array: true},
	{ID: 19, Name: "zombie_allowed", Type: TypeRaw, Array: true},
	{ID: 20, Name: "sun_countdown", Type: TypeInt32},
	{ID: 21, Name: "num_suns_fallen", Type: TypeInt32},
	{ID: 22, Name: "shake_counter", Type: TypeInt32},
	{ID: 23, Name: "shake_amount_x", Type: TypeInt32},
	{ID: 24, Name: "shake_amount_y", Type: TypeInt32},
	{ID: 25, Name: "background", Type: TypeEnum, Enum: Background},
	{ID: 26, Name: "level", Type: TypeInt32},
	{ID: 27, Name: "sod_position", Type: TypeInt32},
	{ID: 28, Name: "prev_mouse_x", Type: TypeInt32},
	{ID: 29, Name: "prev_mouse_y", Type: TypeInt32},
	{ID: 30, Name: "sun_money", Type: TypeInt32},
	{ID: 31, Name: "num_waves", Type: TypeInt32},
	{ID: 32, Name: "main_counter", Type: TypeInt32},
	{ID: 33, Name: "effect_counter", Type: TypeInt32},
	{ID: 34, Name: "draw_count", Type: TypeInt32},
	{ID: 35, Name: "rise_from_grave_counter", Type: TypeInt32},
	{ID: 36, Name: "out_of_money_counter", Type: TypeInt32},
	{ID: 37, Name: "current_wave", Type: TypeInt32},
	{ID: 38, Name: "total_spawned_waves", Type: TypeInt32},
	{ID: 39, Name: "tutorial_state", Type: TypeInt32},
	{ID: 40, Name: "tutorial_particle_id", Type: TypeRaw},
	{ID: 41, Name: "tutorial_timer", Type: TypeInt32},
	{ID: 42, Name: "last_bungee_wave", Type: TypeInt32},
	{ID: 43, Name: "zombie_health_to_next_wave", Type: TypeInt32},
	{ID: 44, Name: "zombie_health_wave_start", Type: TypeInt32},
	{ID: 45, Name: "zombie_countdown", Type: TypeInt32},
	{ID: 46, Name: "zombie_countdown_start", Type: TypeInt32},
	{ID: 47, Name: "huge_wave_countdown", Type: TypeInt32},
	{ID: 48, Name: "help_displayed", Type: TypeRaw, Array: true},
	{ID: 49, Name: "help_index", Type: TypeInt32},
	{ID: 50, Name: "final_boss_killed", Type: TypeBool},
	{ID: 51, Name: "show_shovel", Type: TypeBool},
	{ID: 52, Name: "coin_bank_fade_count", Type: TypeInt32},
	{ID: 53, Name: "debug_text_mode", Type: TypeInt32},
	{ID: 54, Name: "level_complete", Type: TypeBool},
	{ID: 55, Name: "board_fade_out_counter", Type: TypeInt32},
	{ID: 56, Name: "next_survival_stage_counter", Type: TypeInt32},
	{ID: 57, Name: "score_next_mower_counter", Type: TypeInt32},
	{ID: 58, Name: "level_award_spawned", Type: TypeBool},
	{ID: 59, Name: "progress_meter_width", Type: TypeInt32},
	{ID: 60, Name: "flag_raise_counter", Type: TypeInt32},
	{ID: 61, Name: "ice_trap_counter", Type: TypeInt32},
	{ID: 62, Name: "board_rand_seed", Type: TypeInt32},
	{ID: 63, Name: "pool_sparkly_particle_id", Type: TypeRaw},
	{ID: 64, Name: "fwoosh_id", Type: TypeRaw, Array: true},
	{ID: 65, Name: "fwoosh_countdown", Type: TypeInt32},
	{ID: 66, Name: "time_stop_counter", Type: TypeInt32},
	{ID: 67, Name: "dropped_first_coin", Type: TypeBool},
	{ID: 68, Name: "final_wave_sound_counter", Type: TypeInt32},
	{ID: 69, Name: "cob_cannon_cursor_delay_counter", Type: TypeInt32},
	{ID: 70, Name: "cob_cannon_mouse_x", Type: TypeInt32},
	{ID: 71, Name: "cob_cannon_mouse_y", Type: TypeInt32},
	{ID: 72, Name: "killed_yeti", Type: TypeBool},
	{ID: 73, Name: "mustache_mode", Type: TypeBool},
	{ID: 74, Name: "super_mower_mode", Type: TypeBool},
	{ID: 75, Name: "future_mode", Type: TypeBool},
	{ID: 76, Name: "pinata_mode", Type: TypeBool},
	{ID: 77, Name: "dance_mode", Type: TypeBool},
	{ID: 78, Name: "daisy_mode", Type: TypeBool},
	{ID: 79, Name: "sukhbir_mode", Type: TypeBool},
	{ID: 80, Name: "prev_board_result", Type: TypeInt32},
	{ID: 81, Name: "triggered_lawnmowers", Type: TypeInt32},
	{ID: 82, Name: "play_time_active_level", Type: TypeInt32},
	{ID: 83, Name: "play_time_inactive_level", Type: TypeInt32},
	{ID: 84, Name: "max_sun_plants", Type: TypeInt32},
	{ID: 85, Name: "start_draw_time", Type: TypeInt64},
	{ID: 86, Name: "interval_draw_time", Type: TypeInt64},
	{ID: 87, Name: "interval_draw_count_start", Type: TypeInt32},
	{ID: 88, Name: "min_fps", Type: TypeFloat32},
	{ID: 89, Name: "preload_time", Type: TypeInt32},
	{ID: 90, Name: "game_id", Type: TypeInt64},
	{ID: 91, Name: "graves_cleared", Type: TypeInt32},
	{ID: 92, Name: "plants_eaten", Type: TypeInt32},
	{ID: 93, Name: "plants_shoveled", Type: TypeInt32},
	{ID: 94, Name: "pea_shooter_used", Type: TypeBool},
	{ID: 95, Name: "catapult_plants_used", Type: TypeBool},
	{ID: 96, Name: "mushroom_and_coffee_beans_only", Type: TypeBool},
	{ID: 97, Name: "mushrooms_used", Type: TypeBool},
	{ID: 98, Name: "level_coins_collected", Type: TypeInt32},
	{ID: 99, Name: "gargantuars_kills_by_corn_cob", Type: TypeInt32},
	{ID: 100, Name: "coins_collected", Type: TypeInt32},
	{ID: 101, Name: "diamonds_collected", Type: TypeInt32},
	{ID: 102, Name: "potted_plants_collected", Type: TypeInt32},
	{ID: 103, Name: "chocolate_collected", Type: TypeInt32},
})

// objectTable is the record table shared by game-object kinds: the
// placement base and the kind's tail. Record codecs dispatch on these
// entries; ids outside the table are carried as "_field_<id>".
func objectTable(kind Kind) *Table {
	return newTable(kind, []Field{
		{ID: FieldBase, Name: "_base", Type: TypeGameObject},
		{ID: FieldTail, Name: "tail", Type: TypeTail},
	})
}

// Record tables of the structured chunks.
var (
	Zombie     = objectTable(KindZombie)
	Plant      = objectTable(KindPlant)
	Mower      = objectTable(KindMower)
	GridItem   = objectTable(KindGridItem)
	SeedBank   = objectTable(KindSeedBank)
	SeedPacket = objectTable(KindSeedPacket)

	// Challenge keeps its tail opaque under "_data".
	Challenge = newTable(KindChallenge, []Field{
		{ID: FieldTail, Name: "_data", Type: TypeRaw},
	})
)

// Registry returns the field table for kind.
func Registry(kind Kind) *Table {
	switch kind {
	case KindBoard:
		return Board
	case KindZombie:
		return Zombie
	case KindPlant:
		return Plant
	case KindMower:
		return Mower
	case KindGridItem:
		return GridItem
	case KindSeedBank:
		return SeedBank
	case KindSeedPacket:
		return SeedPacket
	case KindChallenge:
		return Challenge
	default:
		return nil
	}
}
