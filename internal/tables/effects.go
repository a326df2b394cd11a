package tables

import (
	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/scope"
)

// Effects maps a lowercase keyword to its effect descriptor.
var Effects = map[string]*Descriptor{
	"add_trait": {
		Name: "add_trait", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Trait, Variants: gamevariant.SetAll,
	},
	"remove_trait": {
		Name: "remove_trait", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Trait, Variants: gamevariant.SetAll,
	},
	"add_gold": {
		Name: "add_gold", Shape: CompareValue,
		InScopes: scope.Of(scope.Character, scope.Country), Variants: gamevariant.SetAll,
	},
	// add_spouse and its siblings imply a specific gender on the target,
	// checked via catalog.VerifyExistsGender rather than plain VerifyExists.
	"add_spouse": {
		Name: "add_spouse", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"add_matrilineal_spouse": {
		Name: "add_matrilineal_spouse", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"add_same_sex_spouse": {
		Name: "add_same_sex_spouse", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"add_concubine": {
		Name: "add_concubine", Shape: ItemShape,
		InScopes: scope.Character, ItemKind: catalog.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"save_scope_as": {
		Name: "save_scope_as", Shape: SpecialShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"save_temporary_scope_as": {
		Name: "save_temporary_scope_as", Shape: ControlShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"add_to_temporary_list": {
		Name: "add_to_temporary_list", Shape: ControlShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"change_government": {
		Name: "change_government", Shape: ItemShape,
		InScopes: scope.Country, ItemKind: catalog.Governorship, Variants: gamevariant.Of(gamevariant.Imperium),
	},
	"set_ideology": {
		Name: "set_ideology", Shape: ItemShape,
		InScopes: scope.Country, ItemKind: catalog.Ideology, Variants: gamevariant.Of(gamevariant.Commonwealth),
	},
	"custom_tooltip": {
		Name: "custom_tooltip", Shape: ControlShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	// trigger_event's real argument grammar (days/months/years delays, saved
	// scope bindings, on_action-style blocks) isn't itself the thing this
	// analyzer's descriptor tables model; it's accepted without deep
	// structural checking rather than given a dedicated shape.
	"trigger_event": {
		Name: "trigger_event", Shape: UncheckedShape,
		InScopes: scope.Character, Variants: gamevariant.SetAll,
	},
	"removed_effect_example": {
		Name: "removed_effect_example", Shape: RemovedShape,
		Message: "this effect was removed; see the changelog",
		Variants: gamevariant.SetAll,
	},
	// create_character is the first BlockShape descriptor with a required
	// sub-field: age must be given exactly once, gender_female and template
	// are optional. Wires FieldRequiredOnce, which otherwise had no real
	// caller anywhere in the tables package.
	"create_character": {
		Name: "create_character", Shape: BlockShape,
		InScopes: scope.Character, Variants: gamevariant.Of(gamevariant.Dynasty),
		Fields: []FieldRule{
			{Name: "age", Mode: FieldRequiredOnce, Descriptor: valueDescriptor},
			{Name: "gender_female", Mode: FieldOptionalOnce},
			{Name: "template", Mode: FieldOptionalOnce},
		},
	},
}
