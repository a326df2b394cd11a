package catalog

import (
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/token"
)

// Definition is what a catalog lookup resolves to: the block that defines
// the item and the key token used to anchor "defined at" locations.
type Definition struct {
	Key      string
	Block    *script.Block
	KeyToken token.Token
}

// Catalog maps (Kind, key) to Definition across every loaded file, with
// last-wins overlay shadowing. It has no notion of which file format
// produced an entry — loaders translate from script.Block (or an assets
// reader) into Register calls.
type Catalog struct {
	entries map[Kind]map[string]Definition
	flags   map[Kind]map[string]map[string]bool
	frozen  bool
}

// New creates an empty catalog, open for registration.
func New() *Catalog {
	return &Catalog{
		entries: make(map[Kind]map[string]Definition),
		flags:   make(map[Kind]map[string]map[string]bool),
	}
}

// Freeze marks the catalog read-only. The driver calls this once loading
// completes and before any validator runs, matching the "catalog is frozen
// when validation begins" registration protocol.
func (c *Catalog) Freeze() { c.frozen = true }

// Register inserts or shadows a definition. If an entry already exists for
// (kind, key): a strictly higher-overlay new definition shadows the old one
// silently; a same-overlay redefinition is rejected and reported as a
// DuplicateItem diagnostic pointing at both locations; a strictly
// lower-overlay new definition is itself silently shadowed (its Register
// call is a no-op on the map, since the existing higher-overlay entry must
// win regardless of load order within this pass).
func (c *Catalog) Register(kind Kind, key string, keyTok token.Token, block *script.Block, sink diag.Sink) {
	if c.frozen {
		panic("catalog: Register called after Freeze")
	}
	byKey, ok := c.entries[kind]
	if !ok {
		byKey = make(map[string]Definition)
		c.entries[kind] = byKey
	}
	existing, had := byKey[key]
	if !had {
		byKey[key] = Definition{Key: key, Block: block, KeyToken: keyTok}
		return
	}
	switch {
	case keyTok.Loc.Shadows(existing.KeyToken.Loc):
		byKey[key] = Definition{Key: key, Block: block, KeyToken: keyTok}
	case existing.KeyToken.Loc.SameOverlay(keyTok.Loc):
		if sink != nil {
			sink.Report(diag.Diagnostic{
				Severity:   diag.Warning,
				Confidence: diag.Strong,
				Key:        diag.KeyDuplicateItem,
				Loc:        keyTok.Loc,
				Secondary: &diag.SecondaryLocation{
					Loc:     existing.KeyToken.Loc,
					Message: "first defined here",
				},
				Message: "duplicate definition of \"" + key + "\"",
			})
		}
	default:
		// Strictly lower overlay than what's already registered: the
		// existing higher-priority definition wins and this one is
		// silently dropped.
	}
}

// RegisterFlag records a side-declared flag against (kind, key) — used by
// loaders that scan a definition's block for nested flag declarations
// (e.g. a trait's opposite-trait tags) independent of the main definition.
func (c *Catalog) RegisterFlag(kind Kind, key, flag string) {
	byKey, ok := c.flags[kind]
	if !ok {
		byKey = make(map[string]map[string]bool)
		c.flags[kind] = byKey
	}
	flags, ok := byKey[key]
	if !ok {
		flags = make(map[string]bool)
		byKey[key] = flags
	}
	flags[flag] = true
}

// HasFlag reports whether flag was registered against (kind, key).
func (c *Catalog) HasFlag(kind Kind, key, flag string) bool {
	return c.flags[kind] != nil && c.flags[kind][key] != nil && c.flags[kind][key][flag]
}

// Exists reports whether kind has a registered entry for key.
func (c *Catalog) Exists(kind Kind, key string) bool {
	_, ok := c.entries[kind][key]
	return ok
}

// Get returns the definition for (kind, key), if any.
func (c *Catalog) Get(kind Kind, key string) (Definition, bool) {
	d, ok := c.entries[kind][key]
	return d, ok
}

// Keys returns every registered key for kind, in no particular order —
// callers that need a stable order (e.g. the driver's validation pass)
// sort it themselves.
func (c *Catalog) Keys(kind Kind) []string {
	byKey := c.entries[kind]
	out := make([]string, 0, len(byKey))
	for k := range byKey {
		out = append(out, k)
	}
	return out
}

// VerifyExists reports a MissingItem diagnostic at valueTok's location if
// (kind, valueTok.Text) isn't registered, using the kind's default
// confidence and severity.
func (c *Catalog) VerifyExists(kind Kind, valueTok token.Token, sink diag.Sink) bool {
	if c.Exists(kind, valueTok.Text) {
		return true
	}
	if sink != nil {
		meta := MetaFor(kind)
		sink.Report(diag.Diagnostic{
			Severity:   meta.Severity,
			Confidence: meta.Confidence,
			Key:        diag.KeyMissingItem,
			Loc:        valueTok.Loc,
			Message:    kindNoun(kind) + " not defined in " + meta.PathPrefix,
		})
	}
	return false
}

// VerifyExistsImplied is VerifyExists for a key that isn't itself a token
// in the source (e.g. a key synthesized from a format string); anchor
// supplies the location to report against.
func (c *Catalog) VerifyExistsImplied(kind Kind, impliedKey string, anchor token.Token, sink diag.Sink) bool {
	if c.Exists(kind, impliedKey) {
		return true
	}
	if sink != nil {
		meta := MetaFor(kind)
		sink.Report(diag.Diagnostic{
			Severity:   meta.Severity,
			Confidence: meta.Confidence,
			Key:        diag.KeyMissingItem,
			Loc:        anchor.Loc,
			Message:    kindNoun(kind) + " \"" + impliedKey + "\" not defined in " + meta.PathPrefix,
		})
	}
	return false
}

// VerifyExistsGender is VerifyExists specialized for Character, additionally
// checking the referenced character's `female` field against wantFemale.
// This is the general form of the spec's wrong-gender-spouse example:
// relation fields like add_spouse / add_same_sex_spouse / add_concubine
// each imply a specific gender on their target.
func (c *Catalog) VerifyExistsGender(kind Kind, valueTok token.Token, wantFemale bool, sink diag.Sink) bool {
	if !c.VerifyExists(kind, valueTok, sink) {
		return false
	}
	def, _ := c.Get(kind, valueTok.Text)
	isFemale := characterIsFemale(def.Block)
	if isFemale == wantFemale {
		return true
	}
	if sink != nil {
		wantWord := "male"
		if wantFemale {
			wantWord = "female"
		}
		sink.Report(diag.Diagnostic{
			Severity:   diag.Error,
			Confidence: diag.Strong,
			Key:        diag.KeyWrongGender,
			Loc:        valueTok.Loc,
			Message:    "character is not " + wantWord,
		})
	}
	return false
}

func characterIsFemale(block *script.Block) bool {
	field, ok := block.FieldNamed("female")
	if !ok {
		return false
	}
	tok, ok := field.Value.AsToken()
	if !ok {
		return false
	}
	v, _ := tok.BoolValue()
	return v
}

func kindNoun(kind Kind) string {
	switch kind {
	case Character:
		return "character"
	case DynastyItem:
		return "dynasty"
	case House:
		return "house"
	case Trait:
		return "trait"
	case Culture:
		return "culture"
	case CultureGroup:
		return "culture group"
	case Faith:
		return "faith"
	case Religion:
		return "religion"
	case LandedTitle:
		return "title"
	case Province:
		return "province"
	case CasusBelli:
		return "casus belli type"
	case Law:
		return "law"
	case Building, SpecialBuilding:
		return "building"
	case Event:
		return "event"
	case Decision:
		return "decision"
	case OnAction:
		return "on_action"
	case Modifier:
		return "modifier"
	case ScriptedTrigger:
		return "scripted trigger"
	case ScriptedEffect:
		return "scripted effect"
	case ScriptedValue:
		return "scripted value"
	case ScriptedList:
		return "scripted list"
	case Localization:
		return "localization key"
	case CoaGfx, UnitGfx, ClothingGfx, BuildingGfx:
		return "gfx entry"
	case Sound:
		return "sound"
	case AccessoryTag:
		return "accessory"
	case AccoladeCategory:
		return "accolade category"
	case MemoryCategory:
		return "memory category"
	case Governorship:
		return "governorship"
	case Legion:
		return "legion"
	case PartyType:
		return "party type"
	case Invention:
		return "invention"
	case StateRegion:
		return "state region"
	case Technology:
		return "technology"
	case PopType:
		return "pop type"
	case Ideology:
		return "ideology"
	case InterestGroup:
		return "interest group"
	case JournalEntry:
		return "journal entry"
	default:
		return "item"
	}
}
