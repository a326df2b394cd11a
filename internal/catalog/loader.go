package catalog

import (
	"strconv"
	"strings"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/token"
)

// LoadEnv is the run-wide state a loader needs beyond the catalog itself:
// which variant is active (the driver's KindForPath already skips kinds
// the variant does not define, so no loader checks it again), the
// diagnostic sink,
// and the only_born cutoff carried from original_source's config_only_born
// mechanism.
type LoadEnv struct {
	Catalog       *Catalog
	Variant       gamevariant.Variant
	Sink          diag.Sink
	OnlyBornAfter Date
}

// Date is a YYYY.M.D literal comparable by field, matching the dialect's
// date token shape without pulling in time.Time's calendar semantics (the
// in-game calendar doesn't track modern leap rules).
type Date struct {
	Year, Month, Day int
	Set              bool
}

// ParseDate parses a "YYYY.M.D" token text. ok is false for anything else,
// including an empty string (the zero Date, Set: false, means "no cutoff").
func ParseDate(s string) (Date, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Date{}, false
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Set: true}, true
}

// Before reports whether d is strictly earlier than other. An unset cutoff
// never excludes anything.
func (d Date) Before(other Date) bool {
	if !other.Set {
		return false
	}
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Loader registers one top-level item (and whatever it needs from its
// nested blocks) into the catalog. It is handed the field key that named
// the item on disk and the block that is its value.
type Loader func(env *LoadEnv, keyTok token.Token, block *script.Block)

// Registry maps a Kind to the loader that knows its on-disk shape. Kinds
// with no entry fall back to genericLoader, which only registers the
// top-level key — sufficient for kinds the expansion doesn't give a
// worked-example loader to (spec §1 treats full per-kind content as
// out-of-scope data).
var Registry = map[Kind]Loader{
	Character:      loadCharacter,
	Trait:          loadTrait,
	Culture:        genericLoaderFor(Culture),
	CultureGroup:   genericLoaderFor(CultureGroup),
	LandedTitle:    loadLandedTitle,
	Event:          loadEvent,
	Decision:       loadDecision,
	ScriptedTrigger: genericLoaderFor(ScriptedTrigger),
	ScriptedEffect:  genericLoaderFor(ScriptedEffect),
	ScriptedValue:   genericLoaderFor(ScriptedValue),
	ScriptedList:    genericLoaderFor(ScriptedList),
	OnAction:        genericLoaderFor(OnAction),

	// Per-variant worked examples (SPEC_FULL §E.3): mostly registration
	// plus one or two targeted cross-reference checks, the shape
	// original_source's imperator/vic3 per-kind loaders use, without
	// attempting the full per-game kind enumeration.
	Legion:     loadLegion,
	Technology: loadTechnology,
}

// LoaderFor returns the registered loader for kind, or a generic
// registration-only loader if none is registered.
func LoaderFor(kind Kind) Loader {
	if l, ok := Registry[kind]; ok {
		return l
	}
	return genericLoaderFor(kind)
}

func genericLoaderFor(kind Kind) Loader {
	return func(env *LoadEnv, keyTok token.Token, block *script.Block) {
		env.Catalog.Register(kind, keyTok.Text, keyTok, block, env.Sink)
	}
}

// loadCharacter registers a character and, per the gender-checked-relation
// supplement, needs nothing extra at load time — VerifyExistsGender reads
// the `female` field lazily at validation time. What it does do is nothing
// more than register; the only_born cutoff is applied later, when the
// driver decides whether to walk this character's history sub-blocks.
func loadCharacter(env *LoadEnv, keyTok token.Token, block *script.Block) {
	env.Catalog.Register(Character, keyTok.Text, keyTok, block, env.Sink)
}

// loadTrait registers the trait and records its `opposites` list as flags,
// so a later "character has both Brave and Craven" style cross-check (not
// itself part of this pass) could query HasFlag(Trait, key, "opposite:x").
func loadTrait(env *LoadEnv, keyTok token.Token, block *script.Block) {
	env.Catalog.Register(Trait, keyTok.Text, keyTok, block, env.Sink)
	if field, ok := block.FieldNamed("opposites"); ok {
		if nested, ok := field.Value.AsBlock(); ok {
			for _, tok := range nested.BareValues() {
				env.Catalog.RegisterFlag(Trait, keyTok.Text, "opposite:"+tok.Text)
			}
		}
	}
}

// landedTitleTierPrefixes are the on-disk key prefixes for each tier of the
// landed-title hierarchy; a title file nests lower tiers inside higher
// ones, and every nested title is itself a catalog entry other content
// references directly (e.g. `title = k_england`).
var landedTitleTierPrefixes = []string{"e_", "k_", "d_", "c_", "b_"}

func isLandedTitleKey(key string) bool {
	for _, p := range landedTitleTierPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// loadLandedTitle registers the top-level title and recurses into nested
// blocks whose key matches a title-tier prefix, since landed_titles files
// are a single nested tree rather than one item per on-disk key.
func loadLandedTitle(env *LoadEnv, keyTok token.Token, block *script.Block) {
	env.Catalog.Register(LandedTitle, keyTok.Text, keyTok, block, env.Sink)
	for _, field := range block.Fields() {
		if !isLandedTitleKey(field.Key.Text) {
			continue
		}
		nested, ok := field.Value.AsBlock()
		if !ok {
			continue
		}
		loadLandedTitle(env, field.Key, nested)
	}
}

// loadEvent registers the event under its namespace-qualified key exactly
// as written (e.g. "bookmark.0001") — the analyzer doesn't itself enforce
// the namespace/id split beyond the namespace-prefix check a file's
// `namespace = foo` directive implies (see LoadEventInNamespace).
func loadEvent(env *LoadEnv, keyTok token.Token, block *script.Block) {
	env.Catalog.Register(Event, keyTok.Text, keyTok, block, env.Sink)
}

// LoadEventInNamespace is loadEvent plus the file-level namespace check
// (original_source/src/events.rs's "event name should start with
// namespace"): an event key that doesn't begin with the file's declared
// namespace is still registered, so other items' cross-references to it
// still resolve, but with a nil block — validateCatalog skips nil-block
// definitions, so the mismatched event's body is never validated, matching
// the driver's existing "no attempt to validate" convention for data it
// can't safely check (cf. loadProvinceFile, loadLocalizationFile). Exported
// because the driver reads the file's `namespace` field itself (it owns
// the parsed root block) and calls this in place of the plain Event
// loader.
func LoadEventInNamespace(env *LoadEnv, keyTok token.Token, block *script.Block, namespace string) {
	if namespace == "" || strings.HasPrefix(keyTok.Text, namespace) {
		loadEvent(env, keyTok, block)
		return
	}
	if env.Sink != nil {
		env.Sink.Report(diag.Diagnostic{
			Severity: diag.Warning, Confidence: diag.Reasonable, Key: diag.KeyEventNamespace,
			Loc:     keyTok.Loc,
			Message: "Event name should start with namespace",
			Info:    "If the event doesn't match its namespace, the game can't properly find the event when triggering it.",
		})
	}
	env.Catalog.Register(Event, keyTok.Text, keyTok, nil, env.Sink)
}

func loadDecision(env *LoadEnv, keyTok token.Token, block *script.Block) {
	env.Catalog.Register(Decision, keyTok.Text, keyTok, block, env.Sink)
}

// loadLegion is Imperium's worked per-variant loader example: registration
// only at load time. The `home` province cross-check it implies can't run
// until every province is loaded, so the driver runs it as a small
// post-freeze pass (ValidateLegions) rather than here — the same reason
// loadTechnology defers its own cross-reference check.
func loadLegion(env *LoadEnv, keyTok token.Token, block *script.Block) {
	env.Catalog.Register(Legion, keyTok.Text, keyTok, block, env.Sink)
}

// loadTechnology is Commonwealth's worked per-variant loader example:
// registration only. Its `path` prerequisite list commonly references
// technologies defined later in the same file set, so checking it eagerly
// at load time would misreport legitimate forward references; the driver's
// post-freeze ValidateTechnologies pass checks it once the whole catalog
// is populated.
func loadTechnology(env *LoadEnv, keyTok token.Token, block *script.Block) {
	env.Catalog.Register(Technology, keyTok.Text, keyTok, block, env.Sink)
}

// ValidateLegions is the post-freeze half of the Legion worked example:
// for every registered legion, verify its `home` field names a real
// province.
func ValidateLegions(env *LoadEnv) {
	byKey := env.Catalog.entries[Legion]
	for _, def := range byKey {
		field, ok := def.Block.FieldNamed("home")
		if !ok {
			continue
		}
		if tok, ok := field.Value.AsToken(); ok {
			env.Catalog.VerifyExists(Province, tok, env.Sink)
		}
	}
}

// ValidateTechnologies is the post-freeze half of the Technology worked
// example: for every registered technology, verify every entry in its
// `path` prerequisite list names a real technology.
func ValidateTechnologies(env *LoadEnv) {
	byKey := env.Catalog.entries[Technology]
	for _, def := range byKey {
		field, ok := def.Block.FieldNamed("path")
		if !ok {
			continue
		}
		nested, ok := field.Value.AsBlock()
		if !ok {
			continue
		}
		for _, pathTok := range nested.BareValues() {
			env.Catalog.VerifyExists(Technology, pathTok, env.Sink)
		}
	}
}
