// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

func i32(name string) Field { return Field{Name: name, Type: I32} }
func u32(name string) Field { return Field{Name: name, Type: U32} }
func f32(name string) Field { return Field{Name: name, Type: F32} }
func flag(name string) Field { return Field{Name: name, Type: Bool} }
func rect(name string) Field { return Field{Name: name, Type: RectField} }
func raw(name string, size int) Field {
	return Field{Name: name, Type: Raw, Size: size}
}

func enum(name string, e *schema.Enum, fallback string) Field {
	return Field{Name: name, Type: Enum, Enum: e, Default: document.String(fallback)}
}

func withDefault(field Field, value document.Value) Field {
	field.Default = value
	return field
}

// motionTrailSize is 12 frames of (x, y, anim time) floats.
const motionTrailSize = 12 * 3 * 4

// ZombieLayout is the tail of a ZOMBIES entry.
var ZombieLayout = &Layout{
	Kind: schema.KindZombie,
	Fields: []Field{
		enum("zombie_type", schema.ZombieType, "ZOMBIE_NORMAL"),
		i32("zombie_phase"),
		f32("pos_x"),
		f32("pos_y"),
		f32("vel_x"),
		i32("anim_counter"),
		i32("groan_counter"),
		i32("anim_ticks_per_frame"),
		i32("anim_frames"),
		i32("frame"),
		i32("prev_frame"),
		flag("variant"),
		flag("is_eating"),
		i32("just_got_shot_counter"),
		i32("shield_just_got_shot_counter"),
		i32("shield_recoil_counter"),
		i32("zombie_age"),
		i32("zombie_height"),
		i32("phase_counter"),
		i32("from_wave"),
		flag("dropped_loot"),
		i32("zombie_fade"),
		flag("flat_tires"),
		i32("use_ladder_col"),
		i32("target_col"),
		f32("altitude"),
		flag("hit_umbrella"),
		rect("zombie_rect"),
		rect("zombie_attack_rect"),
		i32("chilled_counter"),
		i32("buttered_counter"),
		i32("ice_trap_counter"),
		flag("mind_controlled"),
		flag("blowing_away"),
		withDefault(flag("has_head"), document.Bool(true)),
		withDefault(flag("has_arm"), document.Bool(true)),
		withDefault(flag("has_object"), document.Bool(true)),
		flag("in_pool"),
		flag("on_high_ground"),
		flag("yucky_face"),
		i32("yucky_face_counter"),
		i32("helm_type"),
		i32("body_health"),
		i32("body_max_health"),
		i32("helm_health"),
		i32("helm_max_health"),
		i32("shield_type"),
		i32("shield_health"),
		i32("shield_max_health"),
		i32("flying_health"),
		i32("flying_max_health"),
		flag("dead"),
	},
}

// PlantLayout is the tail of a PLANTS entry.
var PlantLayout = &Layout{
	Kind: schema.KindPlant,
	Fields: []Field{
		enum("seed_type", schema.SeedType, "SEED_PEASHOOTER"),
		i32("plant_col"),
		i32("anim_counter"),
		i32("frame"),
		i32("frame_length"),
		i32("num_frames"),
		i32("state"),
		withDefault(i32("plant_health"), document.Int(300)),
		withDefault(i32("plant_max_health"), document.Int(300)),
		i32("subclass"),
		i32("disappear_countdown"),
		i32("do_special_countdown"),
		i32("state_countdown"),
		i32("launch_counter"),
		i32("launch_rate"),
		rect("plant_rect"),
		rect("plant_attack_rect"),
		i32("target_x"),
		i32("target_y"),
		i32("start_row"),
	},
}

// MowerLayout is the tail of a MOWERS entry.
var MowerLayout = &Layout{
	Kind: schema.KindMower,
	Fields: []Field{
		f32("pos_x"),
		f32("pos_y"),
		i32("render_order"),
		i32("row"),
		i32("anim_ticks_per_frame"),
		u32("reanim_id"),
		i32("chomp_counter"),
		i32("rolling_in_counter"),
		i32("squished_counter"),
		enum("mower_state", schema.MowerState, "MOWER_READY"),
		flag("dead"),
		withDefault(flag("visible"), document.Bool(true)),
		enum("mower_type", schema.MowerType, "MOWER_LAWN"),
		f32("altitude"),
		i32("mower_height"),
		i32("last_portal_x"),
	},
}

// GridItemLayout is the tail of a GRIDITEMS entry. The motion trail
// follows the fixed fields when the tail has room for it; tails without
// one decode and encode as the 70 fixed bytes.
var GridItemLayout = &Layout{
	Kind: schema.KindGridItem,
	Fields: []Field{
		enum("grid_item_type", schema.GridItemType, "GRIDITEM_NONE"),
		i32("grid_item_state"),
		i32("grid_x"),
		i32("grid_y"),
		i32("grid_item_counter"),
		i32("render_order"),
		flag("dead"),
		f32("pos_x"),
		f32("pos_y"),
		f32("goal_x"),
		f32("goal_y"),
		u32("grid_item_reanim_id"),
		u32("grid_item_particle_id"),
		enum("zombie_type", schema.ZombieType, "ZOMBIE_INVALID"),
		enum("seed_type", schema.SeedType, "SEED_NONE"),
		enum("scary_pot_type", schema.ScaryPotType, "SCARYPOT_NONE"),
		flag("highlighted"),
		i32("transparent_counter"),
		i32("sun_count"),
	},
	Optional: []Field{
		raw("_motion_trail_data", motionTrailSize),
		i32("motion_trail_count"),
	},
}

// SeedPacketLayout is the tail of a SEEDPACKETS item.
var SeedPacketLayout = &Layout{
	Kind: schema.KindSeedPacket,
	Fields: []Field{
		i32("refresh_counter"),
		i32("refresh_time"),
		i32("index"),
		i32("offset_x"),
		enum("packet_type", schema.SeedType, "SEED_NONE"),
		enum("imitater_type", schema.SeedType, "SEED_NONE"),
		i32("slot_machine_countdown"),
		enum("slot_machining_next_seed", schema.SeedType, "SEED_NONE"),
		f32("slot_machining_position"),
		flag("active"),
		flag("refreshing"),
		i32("times_used"),
	},
}

// SeedBankLayout is the tail of the SEEDBANK blob.
var SeedBankLayout = &Layout{
	Kind: schema.KindSeedBank,
	Fields: []Field{
		i32("num_packets"),
		i32("cutscene_darken"),
		i32("conveyor_belt_counter"),
	},
}

// LayoutFor returns the tail layout of kind, or nil for kinds whose
// tail is kept opaque.
func LayoutFor(kind schema.Kind) *Layout {
	switch kind {
	case schema.KindZombie:
		return ZombieLayout
	case schema.KindPlant:
		return PlantLayout
	case schema.KindMower:
		return MowerLayout
	case schema.KindGridItem:
		return GridItemLayout
	case schema.KindSeedPacket:
		return SeedPacketLayout
	case schema.KindSeedBank:
		return SeedBankLayout
	default:
		return nil
	}
}
