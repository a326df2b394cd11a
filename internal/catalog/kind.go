// Package catalog implements the item catalog and cross-reference
// resolver: a registry of (Kind, key) -> Definition populated by per-kind
// loaders before validation begins, frozen thereafter.
package catalog

import (
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
)

// Kind is the closed enumeration of item categories the catalog tracks.
// The full game families register on the order of two hundred kinds; this
// is a representative subset spanning all three variants, each wired to a
// loader (a registration-only generic one where no worked example exists).
// Only some kinds are the target of a validator cross-reference; the rest
// are registered but never looked up by a descriptor. The shape of
// registration is complete even though the per-game content table isn't
// exhaustively reproduced.
type Kind int

const (
	Character Kind = iota
	DynastyItem
	House
	Trait
	Culture
	CultureGroup
	Faith
	Religion
	LandedTitle
	Province
	CasusBelli
	Law
	Building
	SpecialBuilding
	Event
	Decision
	OnAction
	Modifier
	ScriptedTrigger
	ScriptedEffect
	ScriptedValue
	ScriptedList
	Localization
	CoaGfx
	UnitGfx
	ClothingGfx
	BuildingGfx
	Sound
	AccessoryTag
	AccoladeCategory
	MemoryCategory

	// Imperium-specific
	Governorship
	Legion
	PartyType
	Invention

	// Commonwealth-specific
	StateRegion
	Technology
	PopType
	Ideology
	InterestGroup
	JournalEntry
)

// KindMeta is the per-kind metadata the spec's data model calls for: the
// on-disk path prefix the loader looks under, the default confidence and
// severity a missing-reference diagnostic uses, and which variants define
// the kind at all.
type KindMeta struct {
	PathPrefix string
	Confidence diag.Confidence
	Severity   diag.Severity
	Variants   gamevariant.Set
}

const (
	Strong     = diag.Strong
	Reasonable = diag.Reasonable
	Weak       = diag.Weak
	Err        = diag.Error
	Warn       = diag.Warning
)

var kindMeta = map[Kind]KindMeta{
	Character:         {"history/characters/", Strong, Err, gamevariant.SetAll},
	DynastyItem:       {"common/dynasties/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	House:             {"common/dynasty_houses/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	Trait:             {"common/traits/", Strong, Err, gamevariant.SetAll},
	Culture:           {"common/culture/cultures/", Strong, Err, gamevariant.SetAll},
	CultureGroup:      {"common/culture/cultures/", Strong, Err, gamevariant.SetAll},
	Faith:             {"common/religion/religions/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	Religion:          {"common/religion/religions/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	LandedTitle:       {"common/landed_titles/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	Province:          {"map_data/provinces/", Strong, Err, gamevariant.SetAll},
	CasusBelli:        {"common/casus_belli_types/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	Law:               {"common/laws/", Strong, Err, gamevariant.Of(gamevariant.Dynasty, gamevariant.Commonwealth)},
	Building:          {"common/buildings/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	SpecialBuilding:   {"common/buildings/", Reasonable, Err, gamevariant.Of(gamevariant.Dynasty)},
	Event:             {"events/", Strong, Err, gamevariant.SetAll},
	Decision:          {"common/decisions/", Strong, Err, gamevariant.Of(gamevariant.Dynasty)},
	OnAction:          {"common/on_action/", Strong, Err, gamevariant.SetAll},
	Modifier:          {"common/modifiers/", Strong, Err, gamevariant.SetAll},
	ScriptedTrigger:   {"common/scripted_triggers/", Strong, Err, gamevariant.SetAll},
	ScriptedEffect:    {"common/scripted_effects/", Strong, Err, gamevariant.SetAll},
	ScriptedValue:     {"common/scripted_values/", Strong, Err, gamevariant.SetAll},
	ScriptedList:      {"common/scripted_lists/", Strong, Err, gamevariant.SetAll},
	Localization:      {"localization/", Reasonable, Warn, gamevariant.SetAll},
	CoaGfx:            {"gfx/coat_of_arms/", Weak, Warn, gamevariant.Of(gamevariant.Dynasty)},
	UnitGfx:           {"gfx/models/units/", Weak, Warn, gamevariant.SetAll},
	ClothingGfx:       {"gfx/models/clothes/", Weak, Warn, gamevariant.Of(gamevariant.Dynasty)},
	BuildingGfx:       {"gfx/models/buildings/", Weak, Warn, gamevariant.Of(gamevariant.Dynasty)},
	Sound:             {"sound/", Weak, Warn, gamevariant.SetAll},
	AccessoryTag:      {"gfx/portraits/accessories/", Weak, Warn, gamevariant.Of(gamevariant.Dynasty)},
	AccoladeCategory:  {"common/accolade_types/", Weak, Warn, gamevariant.Of(gamevariant.Dynasty)},
	MemoryCategory:    {"common/character_memory_types/", Weak, Warn, gamevariant.Of(gamevariant.Dynasty)},
	Governorship:      {"common/governments/", Strong, Err, gamevariant.Of(gamevariant.Imperium)},
	Legion:             {"common/legions/", Strong, Err, gamevariant.Of(gamevariant.Imperium)},
	PartyType:         {"common/party_types/", Strong, Err, gamevariant.Of(gamevariant.Imperium)},
	Invention:         {"common/inventions/", Strong, Err, gamevariant.Of(gamevariant.Imperium)},
	StateRegion:       {"map_data/state_regions/", Strong, Err, gamevariant.Of(gamevariant.Commonwealth)},
	Technology:        {"common/technology/", Strong, Err, gamevariant.Of(gamevariant.Commonwealth)},
	PopType:           {"common/pop_types/", Strong, Err, gamevariant.Of(gamevariant.Commonwealth)},
	Ideology:          {"common/ideologies/", Strong, Err, gamevariant.Of(gamevariant.Commonwealth)},
	InterestGroup:     {"common/interest_groups/", Strong, Err, gamevariant.Of(gamevariant.Commonwealth)},
	JournalEntry:      {"common/journal_entries/", Strong, Err, gamevariant.Of(gamevariant.Commonwealth)},
}

// MetaFor returns the registered metadata for kind. Every Kind constant has
// an entry; a missing one is a programming error in this table, not a
// runtime condition callers need to handle.
func MetaFor(kind Kind) KindMeta {
	m, ok := kindMeta[kind]
	if !ok {
		panic("catalog: no KindMeta registered for kind")
	}
	return m
}

// KindForPath returns the Kind whose PathPrefix is the longest match for
// relPath among kinds active in variant, or ok=false if none match — the
// driver's dispatch rule for routing a discovered file to a loader.
func KindForPath(relPath string, variant gamevariant.Set) (Kind, bool) {
	best := -1
	var bestKind Kind
	found := false
	for kind, meta := range kindMeta {
		if meta.Variants&variant == 0 {
			continue
		}
		if !hasPrefix(relPath, meta.PathPrefix) {
			continue
		}
		if len(meta.PathPrefix) > best {
			best = len(meta.PathPrefix)
			bestKind = kind
			found = true
		}
	}
	return bestKind, found
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
