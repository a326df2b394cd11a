package tables

import (
	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/scope"
)

// Triggers maps a lowercase keyword to its trigger descriptor. This is a
// representative slice of the real keyword set (the shipped games define
// several thousand), chosen to exercise every variant and every Shape
// except BlockShape and UncheckedShape, which only Effects uses.
var Triggers = map[string]*Descriptor{
	"is_ruler": {
		Name: "is_ruler", Shape: Boolean,
		InScopes: scope.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"female": {
		Name: "female", Shape: Boolean,
		InScopes: scope.Character, Variants: gamevariant.SetAll,
	},
	"age": {
		Name: "age", Shape: CompareValue,
		InScopes: scope.Character, Variants: gamevariant.SetAll,
	},
	"has_trait": {
		Name: "has_trait", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Trait, Variants: gamevariant.SetAll,
	},
	"has_culture": {
		Name: "has_culture", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Culture, Variants: gamevariant.SetAll,
	},
	"has_title_law": {
		Name: "has_title_law", Shape: ItemShape,
		InScopes: scope.LandedTitle, ItemKind: catalog.Law, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"religion": {
		Name: "religion", Shape: ScopeShape,
		InScopes: scope.Character, ExpectedSet: scope.Religion, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"culture": {
		Name: "culture", Shape: ScopeOkThisShape,
		InScopes: scope.Character, ExpectedSet: scope.Culture, Variants: gamevariant.SetAll,
	},
	"exists": {
		Name: "exists", Shape: SpecialShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"has_gene": {
		Name: "has_gene", Shape: SpecialShape,
		InScopes: scope.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"is_at_war": {
		Name: "is_at_war", Shape: Boolean,
		InScopes: scope.Of(scope.Character, scope.Country), Variants: gamevariant.SetAll,
	},
	"government_rank": {
		Name: "government_rank", Shape: CompareValue, WarnIfEq: true,
		InScopes: scope.Character, Variants: gamevariant.Of(gamevariant.Dynasty, gamevariant.Imperium),
	},
	"birthday": {
		Name: "birthday", Shape: CompareDate,
		InScopes: scope.Character, Variants: gamevariant.SetAll,
	},
	"legitimacy": {
		Name: "legitimacy", Shape: CompareValue,
		InScopes: scope.Country, Variants: gamevariant.Of(gamevariant.Imperium),
	},
	"has_pop_type": {
		Name: "has_pop_type", Shape: ItemShape,
		InScopes: scope.State, ItemKind: catalog.PopType, Variants: gamevariant.Of(gamevariant.Commonwealth),
	},
	"has_journal_entry": {
		Name: "has_journal_entry", Shape: ScopeOrItemShape,
		InScopes: scope.Country, ItemKind: catalog.JournalEntry, Variants: gamevariant.Of(gamevariant.Commonwealth),
	},
	"government_type": {
		Name: "government_type", Shape: ChoiceShape,
		InScopes: scope.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
		Choices: []string{"feudal", "tribal", "clan", "republic", "theocracy"},
	},
	"removed_trigger_example": {
		Name: "removed_trigger_example", Shape: RemovedShape,
		Message: "this trigger was removed; see the changelog",
		Variants: gamevariant.SetAll,
	},
	"limit": {
		Name: "limit", Shape: ControlShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"not": {
		Name: "not", Shape: ControlShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
}
