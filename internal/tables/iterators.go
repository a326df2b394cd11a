package tables

import (
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/scope"
)

// Iterators maps the bare name following an any_/every_/ordered_/random_
// prefix to its (inscopes, outscope) contract.
var Iterators = map[string]*IteratorDescriptor{
	"child": {
		Name: "child", InScopes: scope.Character, OutScope: scope.Character,
		Variants: gamevariant.SetAll,
	},
	"courtier": {
		Name: "courtier", InScopes: scope.Character, OutScope: scope.Character,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"vassal": {
		Name: "vassal", InScopes: scope.LandedTitle, OutScope: scope.LandedTitle,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"county_province": {
		Name: "county_province", InScopes: scope.LandedTitle, OutScope: scope.Province,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"legion": {
		Name: "legion", InScopes: scope.Country, OutScope: scope.Legion,
		Variants: gamevariant.Of(gamevariant.Imperium),
	},
	"state": {
		Name: "state", InScopes: scope.Country, OutScope: scope.State,
		Variants: gamevariant.Of(gamevariant.Commonwealth),
	},
	"pop": {
		Name: "pop", InScopes: scope.State, OutScope: scope.Character,
		Variants: gamevariant.Of(gamevariant.Commonwealth),
	},
}
