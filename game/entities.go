// Package game declares the record types a running game is made of:
// the world entities content packs provide, the player profile saves
// are made of, and the trigger/reward vocabulary quests and events
// share.
package game

import (
	"fmt"

	"github.com/emberforge/parley/core/record"
)

// Item is something a player can hold.
var Item = record.MustDefinition("item", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "name", Type: record.String()},
})

// Location is a place in the world.
var Location = record.MustDefinition("location", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "name", Type: record.String()},
})

// NPC is a character the player can talk to. The location field holds
// a Location id.
var NPC = record.MustDefinition("npc", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "name", Type: record.String()},
	{Name: "location", Type: record.String()},
	{Name: "greetings", Type: record.SliceOf(record.String())},
	{Name: "dialogs", Type: record.SliceOf(record.String())},
})

// Achievement marks something the player did once.
var Achievement = record.MustDefinition("achievement", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "name", Type: record.String()},
})

// SkillType names a skill players can level.
var SkillType = record.MustDefinition("skill_type", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "name", Type: record.String()},
})

// Quest is a commitment with numbered stages and rewards granted on
// completion.
var Quest = record.MustDefinition("quest", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "name", Type: record.String()},
	{Name: "stages", Type: record.Int(), Validate: atLeastOne},
	{Name: "rewards", Type: record.Any(), Validate: validRewards, Load: loadRewards, Dump: dumpRewards},
})

// Event is a moment: narration, tutorials, unlocking content,
// world-shift moments. It fires when its triggers hold and grants its
// rewards.
var Event = record.MustDefinition("event", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "triggers", Type: record.Any(), Validate: validTriggers, Load: loadTriggers, Dump: dumpTriggers},
	{Name: "rewards", Type: record.Any(), Validate: validRewards, Load: loadRewards, Dump: dumpRewards},
})

// PlayerProfile is one playthrough: identity, settings, progression
// and inventory. Everything past the name has a default so a fresh
// profile needs only an id and a display name.
var PlayerProfile = record.MustDefinition("player_profile", []record.Field{
	{Name: "id", Type: record.String()},
	{Name: "name", Type: record.String()},

	// regular, ironman, permadeath, ...
	{Name: "gamemode", Type: record.String(), Default: "regular"},
	// easy, normal, hard, ...
	{Name: "difficulty", Type: record.String(), Default: "normal"},
	{Name: "gamerules", Type: record.MapOf(record.Any()), DefaultFactory: emptyMap},

	{Name: "character_xp", Type: record.Num(), Default: 0},
	{Name: "skill_xp", Type: record.MapOf(record.Num()), DefaultFactory: emptyMap},
	{Name: "quest_stages", Type: record.MapOf(record.Int()), DefaultFactory: emptyMap},
	{Name: "achievements", Type: record.MapOf(record.Bool()), DefaultFactory: emptyMap},

	{Name: "inventory", Type: record.SliceOf(record.Entity(Item)), DefaultFactory: emptySlice,
		Load: loadInventory, Dump: dumpInventory},

	{Name: "total_playtime", Type: record.Num(), Default: 0},
	{Name: "last_updated", Type: record.Num(), Default: -1},
})

// Kinds maps every declared type tag to its definition.
func Kinds() map[string]*record.Definition {
	defs := []*record.Definition{
		Item, Location, NPC, Achievement, SkillType, Quest, Event, PlayerProfile,
	}
	m := make(map[string]*record.Definition, len(defs))
	for _, def := range defs {
		m[def.ID()] = def
	}
	return m
}

func emptyMap() any   { return map[string]any{} }
func emptySlice() any { return []any{} }

func atLeastOne(v any) bool {
	n, ok := intFrom(v)
	return ok && n >= 1
}

// loadInventory decodes a sequence of dumped items into Item
// instances.
func loadInventory(v any) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of items, got %T", v)
	}
	out := make([]any, 0, len(seq))
	for i, raw := range seq {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected a mapping, got %T", i, raw)
		}
		item, err := Item.Loads(m)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func dumpInventory(v any) any {
	seq, _ := v.([]any)
	out := make([]any, 0, len(seq))
	for _, raw := range seq {
		if item, ok := raw.(*record.Instance); ok {
			out = append(out, item.Dumps())
		}
	}
	return out
}
