// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strconv"
	"strings"
)

// Enum maps the int32 values of one game enumeration to symbol names.
// Values outside the table render as "UNKNOWN_<n>".
type Enum struct {
	name    string
	byValue map[int32]string
	byName  map[string]int32
	display map[int32]string
}

// Symbol is one named value of an enumeration.
type Symbol struct {
	Value int32
	Name  string
}

func newEnum(name string, symbols ...Symbol) *Enum {
	enum := &Enum{
		name:    name,
		byValue: make(map[int32]string, len(symbols)),
		byName:  make(map[string]int32, len(symbols)),
	}
	for _, symbol := range symbols {
		enum.byValue[symbol.Value] = symbol.Name
		enum.byName[symbol.Name] = symbol.Value
	}
	return enum
}

// withDisplay attaches human-facing names used by the info report.
func (e *Enum) withDisplay(display map[int32]string) *Enum {
	e.display = display
	return e
}

// TypeName returns the enumeration's own name, e.g. "ZombieType".
func (e *Enum) TypeName() string { return e.name }

// Name returns the symbol for value, or "UNKNOWN_<value>".
func (e *Enum) Name(value int32) string {
	if name, ok := e.byValue[value]; ok {
		return name
	}
	return "UNKNOWN_" + strconv.FormatInt(int64(value), 10)
}

// Known reports whether value has a symbol.
func (e *Enum) Known(value int32) bool {
	_, ok := e.byValue[value]
	return ok
}

// Value resolves a name produced by [Enum.Name]. Registered symbols
// resolve directly. Any other name resolves to the integer after its
// last underscore, so "UNKNOWN_57" and "UNKNOWN_-1" round-trip. The
// second result is false when neither applies.
func (e *Enum) Value(name string) (int32, bool) {
	if value, ok := e.byName[name]; ok {
		return value, true
	}
	index := strings.LastIndexByte(name, '_')
	if index < 0 {
		return 0, false
	}
	value, err := strconv.ParseInt(name[index+1:], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(value), true
}

// Display returns a human-facing name for value, falling back to the
// symbol name.
func (e *Enum) Display(value int32) string {
	if name, ok := e.display[value]; ok {
		return name
	}
	return e.Name(value)
}

// ZombieInvalid terminates a wave roster row and marks "no zombie" in
// scary pots.
const ZombieInvalid int32 = -1

// SeedNone marks an empty seed slot.
const SeedNone int32 = -1

var (
	// ZombieType enumerates zombie kinds.
	ZombieType = newEnum("ZombieType",
		Symbol{-1, "ZOMBIE_INVALID"},
		Symbol{0, "ZOMBIE_NORMAL"},
		Symbol{1, "ZOMBIE_FLAG"},
		Symbol{2, "ZOMBIE_TRAFFIC_CONE"},
		Symbol{3, "ZOMBIE_POLEVAULTER"},
		Symbol{4, "ZOMBIE_PAIL"},
		Symbol{5, "ZOMBIE_NEWSPAPER"},
		Symbol{6, "ZOMBIE_DOOR"},
		Symbol{7, "ZOMBIE_FOOTBALL"},
		Symbol{8, "ZOMBIE_DANCER"},
		Symbol{9, "ZOMBIE_BACKUP_DANCER"},
		Symbol{10, "ZOMBIE_DUCKY_TUBE"},
		Symbol{11, "ZOMBIE_SNORKEL"},
		Symbol{12, "ZOMBIE_ZAMBONI"},
		Symbol{13, "ZOMBIE_BOBSLED"},
		Symbol{14, "ZOMBIE_DOLPHIN_RIDER"},
		Symbol{15, "ZOMBIE_JACK_IN_THE_BOX"},
		Symbol{16, "ZOMBIE_BALLOON"},
		Symbol{17, "ZOMBIE_DIGGER"},
		Symbol{18, "ZOMBIE_POGO"},
		Symbol{19, "ZOMBIE_YETI"},
		Symbol{20, "ZOMBIE_BUNGEE"},
		Symbol{21, "ZOMBIE_LADDER"},
		Symbol{22, "ZOMBIE_CATAPULT"},
		Symbol{23, "ZOMBIE_GARGANTUAR"},
		Symbol{24, "ZOMBIE_IMP"},
		Symbol{25, "ZOMBIE_BOSS"},
		Symbol{26, "ZOMBIE_PEA_HEAD"},
		Symbol{27, "ZOMBIE_WALLNUT_HEAD"},
		Symbol{28, "ZOMBIE_JALAPENO_HEAD"},
		Symbol{29, "ZOMBIE_GATLING_HEAD"},
		Symbol{30, "ZOMBIE_SQUASH_HEAD"},
		Symbol{31, "ZOMBIE_TALLNUT_HEAD"},
		Symbol{32, "ZOMBIE_REDEYE_GARGANTUAR"},
	).withDisplay(map[int32]string{
		0:  "Zombie",
		1:  "Flag Zombie",
		2:  "Conehead Zombie",
		3:  "Pole Vaulting Zombie",
		4:  "Buckethead Zombie",
		5:  "Newspaper Zombie",
		6:  "Screen Door Zombie",
		7:  "Football Zombie",
		8:  "Dancing Zombie",
		9:  "Backup Dancer",
		10: "Ducky Tube Zombie",
		11: "Snorkel Zombie",
		12: "Zomboni",
		13: "Zombie Bobsled Team",
		14: "Dolphin Rider Zombie",
		15: "Jack-in-the-Box Zombie",
		16: "Balloon Zombie",
		17: "Digger Zombie",
		18: "Pogo Zombie",
		19: "Zombie Yeti",
		20: "Bungee Zombie",
		21: "Ladder Zombie",
		22: "Catapult Zombie",
		23: "Gargantuar",
		24: "Imp",
		25: "Dr. Zomboss",
		32: "Giga-gargantuar",
	})

	// SeedType enumerates plant kinds (seed packets and planted plants).
	SeedType = newEnum("SeedType",
		Symbol{-1, "SEED_NONE"},
		Symbol{0, "SEED_PEASHOOTER"},
		Symbol{1, "SEED_SUNFLOWER"},
		Symbol{2, "SEED_CHERRYBOMB"},
		Symbol{3, "SEED_WALLNUT"},
		Symbol{4, "SEED_POTATOMINE"},
		Symbol{5, "SEED_SNOWPEA"},
		Symbol{6, "SEED_CHOMPER"},
		Symbol{7, "SEED_REPEATER"},
		Symbol{8, "SEED_PUFFSHROOM"},
		Symbol{9, "SEED_SUNSHROOM"},
		Symbol{10, "SEED_FUMESHROOM"},
		Symbol{11, "SEED_GRAVEBUSTER"},
		Symbol{12, "SEED_HYPNOSHROOM"},
		Symbol{13, "SEED_SCAREDYSHROOM"},
		Symbol{14, "SEED_ICESHROOM"},
		Symbol{15, "SEED_DOOMSHROOM"},
		Symbol{16, "SEED_LILYPAD"},
		Symbol{17, "SEED_SQUASH"},
		Symbol{18, "SEED_THREEPEATER"},
		Symbol{19, "SEED_TANGLEKELP"},
		Symbol{20, "SEED_JALAPENO"},
		Symbol{21, "SEED_SPIKEWEED"},
		Symbol{22, "SEED_TORCHWOOD"},
		Symbol{23, "SEED_TALLNUT"},
		Symbol{24, "SEED_SEASHROOM"},
		Symbol{25, "SEED_PLANTERN"},
		Symbol{26, "SEED_CACTUS"},
		Symbol{27, "SEED_BLOVER"},
		Symbol{28, "SEED_SPLITPEA"},
		Symbol{29, "SEED_STARFRUIT"},
		Symbol{30, "SEED_PUMPKINSHELL"},
		Symbol{31, "SEED_MAGNETSHROOM"},
		Symbol{32, "SEED_CABBAGEPULT"},
		Symbol{33, "SEED_FLOWERPOT"},
		Symbol{34, "SEED_KERNELPULT"},
		Symbol{35, "SEED_INSTANT_COFFEE"},
		Symbol{36, "SEED_GARLIC"},
		Symbol{37, "SEED_UMBRELLA"},
		Symbol{38, "SEED_MARIGOLD"},
		Symbol{39, "SEED_MELONPULT"},
		Symbol{40, "SEED_GATLINGPEA"},
		Symbol{41, "SEED_TWINSUNFLOWER"},
		Symbol{42, "SEED_GLOOMSHROOM"},
		Symbol{43, "SEED_CATTAIL"},
		Symbol{44, "SEED_WINTERMELON"},
		Symbol{45, "SEED_GOLD_MAGNET"},
		Symbol{46, "SEED_SPIKEROCK"},
		Symbol{47, "SEED_COBCANNON"},
		Symbol{48, "SEED_IMITATER"},
	).withDisplay(map[int32]string{
		0:  "Peashooter",
		1:  "Sunflower",
		2:  "Cherry Bomb",
		3:  "Wall-nut",
		4:  "Potato Mine",
		5:  "Snow Pea",
		6:  "Chomper",
		7:  "Repeater",
		8:  "Puff-shroom",
		9:  "Sun-shroom",
		10: "Fume-shroom",
		11: "Grave Buster",
		12: "Hypno-shroom",
		13: "Scaredy-shroom",
		14: "Ice-shroom",
		15: "Doom-shroom",
		16: "Lily Pad",
		17: "Squash",
		18: "Threepeater",
		19: "Tangle Kelp",
		20: "Jalapeno",
		21: "Spikeweed",
		22: "Torchwood",
		23: "Tall-nut",
		24: "Sea-shroom",
		25: "Plantern",
		26: "Cactus",
		27: "Blover",
		28: "Split Pea",
		29: "Starfruit",
		30: "Pumpkin",
		31: "Magnet-shroom",
		32: "Cabbage-pult",
		33: "Flower Pot",
		34: "Kernel-pult",
		35: "Coffee Bean",
		36: "Garlic",
		37: "Umbrella Leaf",
		38: "Marigold",
		39: "Melon-pult",
		40: "Gatling Pea",
		41: "Twin Sunflower",
		42: "Gloom-shroom",
		43: "Cattail",
		44: "Winter Melon",
		45: "Gold Magnet",
		46: "Spikerock",
		47: "Cob Cannon",
		48: "Imitater",
	})

	// Background enumerates level backgrounds.
	Background = newEnum("BackgroundType",
		Symbol{0, "BACKGROUND_1_DAY"},
		Symbol{1, "BACKGROUND_2_NIGHT"},
		Symbol{2, "BACKGROUND_3_POOL"},
		Symbol{3, "BACKGROUND_4_FOG"},
		Symbol{4, "BACKGROUND_5_ROOF"},
		Symbol{5, "BACKGROUND_6_BOSS"},
		Symbol{6, "BACKGROUND_GREENHOUSE"},
		Symbol{7, "BACKGROUND_TREEOFWISDOM"},
		Symbol{8, "BACKGROUND_ZOMBIQUARIUM"},
	)

	// GridItemType enumerates board grid items.
	GridItemType = newEnum("GridItemType",
		Symbol{0, "GRIDITEM_NONE"},
		Symbol{1, "GRIDITEM_GRAVESTONE"},
		Symbol{2, "GRIDITEM_CRATER"},
		Symbol{3, "GRIDITEM_LADDER"},
		Symbol{4, "GRIDITEM_PORTAL_CIRCLE"},
		Symbol{5, "GRIDITEM_PORTAL_SQUARE"},
		Symbol{6, "GRIDITEM_BRAIN"},
		Symbol{7, "GRIDITEM_SCARY_POT"},
		Symbol{8, "GRIDITEM_SQUIRREL"},
		Symbol{9, "GRIDITEM_ZEN_TOOL"},
		Symbol{10, "GRIDITEM_STINKY"},
		Symbol{11, "GRIDITEM_RAKE"},
		Symbol{12, "GRIDITEM_IZOMBIE_BRAIN"},
	)

	// MowerType enumerates lawn mower variants.
	MowerType = newEnum("MowerType",
		Symbol{0, "MOWER_LAWN"},
		Symbol{1, "MOWER_POOL"},
		Symbol{2, "MOWER_ROOF"},
	)

	// MowerState enumerates lawn mower states.
	MowerState = newEnum("MowerState",
		Symbol{0, "MOWER_READY"},
		Symbol{1, "MOWER_TRIGGERED"},
		Symbol{2, "MOWER_SQUISHED"},
	)

	// ScaryPotType enumerates scary pot contents.
	ScaryPotType = newEnum("ScaryPotType",
		Symbol{0, "SCARYPOT_NONE"},
		Symbol{1, "SCARYPOT_SEED"},
		Symbol{2, "SCARYPOT_ZOMBIE"},
		Symbol{3, "SCARYPOT_SUN"},
	)
)
