package tables

import (
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/scope"
)

// Transitions maps a bare scope-to-scope word (as opposed to a
// `prefix:arg` part) to its (inscopes, outscope) contract.
var Transitions = map[string]*Transition{
	"mother": {
		Name: "mother", InScopes: scope.Character, OutScope: scope.Character,
		Variants: gamevariant.SetAll,
	},
	"father": {
		Name: "father", InScopes: scope.Character, OutScope: scope.Character,
		Variants: gamevariant.SetAll,
	},
	"liege": {
		Name: "liege", InScopes: scope.Character, OutScope: scope.Character,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"capital": {
		Name: "capital", InScopes: scope.Of(scope.Character, scope.Country), OutScope: scope.LandedTitle,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"culture": {
		Name: "culture", InScopes: scope.Character, OutScope: scope.Culture,
		Variants: gamevariant.SetAll,
	},
	"faith": {
		Name: "faith", InScopes: scope.Character, OutScope: scope.Faith,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"dynasty": {
		Name: "dynasty", InScopes: scope.Character, OutScope: scope.Dynasty,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"owner": {
		Name: "owner", InScopes: scope.Province, OutScope: scope.Character,
		Variants: gamevariant.Of(gamevariant.Dynasty),
	},
	"governorship": {
		Name: "governorship", InScopes: scope.Country, OutScope: scope.Governorship,
		Variants: gamevariant.Of(gamevariant.Imperium),
	},
	"home_state": {
		Name: "home_state", InScopes: scope.Character, OutScope: scope.State,
		Variants: gamevariant.Of(gamevariant.Commonwealth),
	},
}
