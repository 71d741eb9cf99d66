// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"fmt"
	"strings"

	"github.com/pvzportable/pvzp-save/lib/binhash"
	"github.com/pvzportable/pvzp-save/lib/dataarray"
	"github.com/pvzportable/pvzp-save/lib/document"
	"github.com/pvzportable/pvzp-save/lib/entity"
	"github.com/pvzportable/pvzp-save/lib/save"
	"github.com/pvzportable/pvzp-save/lib/savefile"
	"github.com/pvzportable/pvzp-save/lib/schema"
)

// Title heads every report.
const Title = "PvZ-Portable Save File (v4 Format)"

// Report is an ordered list of titled sections.
type Report struct {
	Title    string
	Sections []Section
}

// Section is one bracketed block of the report. A section with no
// lines renders as "(None)".
type Section struct {
	Title string
	Lines []string
}

// Source describes where a document came from.
type Source struct {
	// Name is shown as the file name, usually the path given on the
	// command line.
	Name string
	// Data is the file content, for its size and fingerprint.
	Data []byte
	// Diagnostics are those the decode produced.
	Diagnostics []save.Diagnostic
}

// Build collects the report for doc.
func Build(doc *save.Document, source Source) *Report {
	tree, _ := doc.Tree().AsMap()
	root := fields{tree}
	board := root.object("board")
	return &Report{
		Title: Title,
		Sections: []Section{
			fileSection(doc, source),
			gameStateSection(doc, board),
			seedSlotsSection(root),
			plantsSection(root),
			zombiesSection(root),
			mowersSection(root),
			statisticsSection(board),
		},
	}
}

// Section returns the section titled title, or nil.
func (r *Report) Section(title string) *Section {
	for index := range r.Sections {
		if r.Sections[index].Title == title {
			return &r.Sections[index]
		}
	}
	return nil
}

func fileSection(doc *save.Document, source Source) Section {
	opaque := make([]string, 0, len(doc.BinaryChunks))
	for _, chunkType := range doc.ChunkOrder {
		if _, ok := doc.BinaryChunks[chunkType]; ok {
			opaque = append(opaque, chunkType.String())
		}
	}
	lines := []string{
		"File: " + source.Name,
		fmt.Sprintf("Size: %d bytes", len(source.Data)),
		"Fingerprint: blake3:" + binhash.Sum(source.Data).Short(),
		fmt.Sprintf("Format: %s version %d", savefile.FormatName, doc.Version),
		fmt.Sprintf("Chunks: %d (%d opaque)", len(doc.ChunkOrder), len(opaque)),
	}
	if len(opaque) > 0 {
		lines = append(lines, "Opaque: "+strings.Join(opaque, ", "))
	}
	return Section{Title: "Save File", Lines: append(lines, fmt.Sprintf("Diagnostics: %d", len(source.Diagnostics)))}
}

func gameStateSection(doc *save.Document, board fields) Section {
	if doc.Board == nil {
		return Section{Title: "Game State", Lines: []string{"Board chunk kept as opaque bytes"}}
	}
	return Section{Title: "Game State", Lines: []string{
		fmt.Sprintf("Level: %d", board.integer("level")),
		"Background: " + board.text("background", "UNKNOWN"),
		fmt.Sprintf("Sun: %d", board.integer("sun_money")),
		fmt.Sprintf("Current Wave: %d / %d", board.integer("current_wave"), board.integer("num_waves")),
		"Paused: " + yesNo(board.flag("paused")),
		"Level Complete: " + yesNo(board.flag("level_complete")),
	}}
}

func seedSlotsSection(root fields) Section {
	section := Section{Title: "Seed Slots"}
	for _, packet := range root.objects("seedpackets") {
		if !packet.flag("active") {
			continue
		}
		status := "Ready"
		if packet.flag("refreshing") {
			status = "Recharging"
		}
		name := displayName(schema.SeedType, packet.text("packet_type", "UNKNOWN"))
		section.Lines = append(section.Lines, fmt.Sprintf("[%d] %s (%s)", len(section.Lines)+1, name, status))
	}
	return section
}

func plantsSection(root fields) Section {
	section := Section{Title: "Plants on Field"}
	for _, plant := range liveObjects(root, "plants") {
		name := displayName(schema.SeedType, plant.text("seed_type", "UNKNOWN"))
		section.Lines = append(section.Lines, fmt.Sprintf("[%d, %d] %s (HP: %d/%d)",
			plant.object(entity.BaseKey).integerOr("row", -1), plant.integerOr("plant_col", -1), name,
			plant.integer("plant_health"), plant.integer("plant_max_health")))
	}
	return section
}

func zombiesSection(root fields) Section {
	section := Section{Title: "Zombies on Field"}
	for _, zombie := range liveObjects(root, "zombies") {
		name := displayName(schema.ZombieType, zombie.text("zombie_type", "UNKNOWN"))
		section.Lines = append(section.Lines, fmt.Sprintf("[Row %d] %s (HP: %d, X: %.0f)",
			zombie.object(entity.BaseKey).integerOr("row", -1), name, zombie.integer("body_health"), zombie.float("pos_x")))
	}
	return section
}

func mowersSection(root fields) Section {
	section := Section{Title: "Lawn Mowers"}
	for _, mower := range liveObjects(root, "mowers") {
		section.Lines = append(section.Lines, fmt.Sprintf("[Row %d] %s (%s)",
			mower.integerOr("row", -1), mower.text("mower_type", "MOWER_LAWN"), mower.text("mower_state", "MOWER_READY")))
	}
	return section
}

func statisticsSection(board fields) Section {
	return Section{Title: "Statistics", Lines: []string{
		fmt.Sprintf("Coins Collected: %d", board.integer("coins_collected")),
		fmt.Sprintf("Diamonds Collected: %d", board.integer("diamonds_collected")),
		fmt.Sprintf("Plants Eaten: %d", board.integer("plants_eaten")),
		fmt.Sprintf("Graves Cleared: %d", board.integer("graves_cleared")),
	}}
}

// liveObjects returns the active, not dead objects under key.
func liveObjects(root fields, key string) []fields {
	var live []fields
	for _, object := range root.objects(key) {
		if dataarray.Active(uint32(object.integer(entity.IDKey))) && !object.flag("dead") {
			live = append(live, object)
		}
	}
	return live
}

// displayName maps an enum symbol to its display name when it has one.
func displayName(enum *schema.Enum, name string) string {
	if value, ok := enum.Value(name); ok {
		return enum.Display(value)
	}
	return name
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// fields reads report values from a tree map. Missing keys and values
// of another kind, such as a field kept as bytes, read as the zero
// value or the given fallback.
type fields struct {
	m *document.Map
}

func (f fields) get(key string) (document.Value, bool) {
	if f.m == nil {
		return document.Value{}, false
	}
	return f.m.Get(key)
}

func (f fields) integer(key string) int64 {
	return f.integerOr(key, 0)
}

func (f fields) integerOr(key string, fallback int64) int64 {
	value, _ := f.get(key)
	if i, ok := value.AsInt(); ok {
		return i
	}
	return fallback
}

func (f fields) float(key string) float64 {
	value, _ := f.get(key)
	number, _ := value.AsFloat()
	return number
}

func (f fields) text(key, fallback string) string {
	value, _ := f.get(key)
	if s, ok := value.AsString(); ok {
		return s
	}
	return fallback
}

func (f fields) flag(key string) bool {
	value, _ := f.get(key)
	b, _ := value.AsBool()
	return b
}

func (f fields) object(key string) fields {
	value, _ := f.get(key)
	m, _ := value.AsMap()
	return fields{m}
}

func (f fields) objects(key string) []fields {
	value, _ := f.get(key)
	items, _ := value.AsSeq()
	out := make([]fields, 0, len(items))
	for _, item := range items {
		m, _ := item.AsMap()
		out = append(out, fields{m})
	}
	return out
}
