package tables

import (
	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/scope"
)

// Prefixes maps the `prefix` in a `prefix:arg` chain part to its contract.
// "scope" is special-cased by the validator (its argument is a
// named-scope lookup, not an item-catalog one) but still lives in this
// table so ordering/"forces last" checks can treat it uniformly.
var Prefixes = map[string]*PrefixDescriptor{
	"scope": {
		Name: "scope", InScopes: scope.None, OutScope: scope.None, HasItem: false,
		Variants: gamevariant.SetAll,
	},
	"character": {
		Name: "character", InScopes: scope.None, OutScope: scope.Character,
		ItemKind: catalog.Character, HasItem: true, Variants: gamevariant.SetAll,
	},
	"faith": {
		Name: "faith", InScopes: scope.None, OutScope: scope.Faith,
		ItemKind: catalog.Faith, HasItem: true, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"culture": {
		Name: "culture", InScopes: scope.None, OutScope: scope.Culture,
		ItemKind: catalog.Culture, HasItem: true, Variants: gamevariant.SetAll,
	},
	"title": {
		Name: "title", InScopes: scope.None, OutScope: scope.LandedTitle,
		ItemKind: catalog.LandedTitle, HasItem: true, Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"country": {
		Name: "country", InScopes: scope.None, OutScope: scope.Country,
		ItemKind: catalog.Governorship, HasItem: false, Variants: gamevariant.Of(gamevariant.Imperium, gamevariant.Commonwealth),
	},
	"event_id": {
		Name: "event_id", InScopes: scope.None, OutScope: scope.Flag,
		ItemKind: catalog.Event, HasItem: true, ForcesLast: true, Variants: gamevariant.SetAll,
	},
}
