package tables

import (
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/scope"
)

var valueDescriptor = &Descriptor{
	Name: "value", Shape: CompareValue,
	InScopes: scope.None, Variants: gamevariant.SetAll,
}

// arithmeticFields is the sub-field set accepted inside add/subtract/
// multiply's block form: a bare number, a literal "value", or a nested
// "limit" trigger gating whether the whole adjustment applies. The three
// keywords take this same shape, so they share the slice.
var arithmeticFields = []FieldRule{
	{Name: "value", Mode: FieldOptionalOnce, Descriptor: valueDescriptor},
	{Name: "limit", Mode: FieldOptionalOnce},
}

// ScriptValues maps a lowercase keyword to its script-value descriptor —
// the arithmetic sibling of Triggers/Effects, always producing a number.
var ScriptValues = map[string]*Descriptor{
	"value": valueDescriptor,
	"add": {
		Name: "add", Shape: BlockShape,
		InScopes: scope.None, Variants: gamevariant.SetAll, Fields: arithmeticFields,
	},
	"subtract": {
		Name: "subtract", Shape: BlockShape,
		InScopes: scope.None, Variants: gamevariant.SetAll, Fields: arithmeticFields,
	},
	"multiply": {
		Name: "multiply", Shape: BlockShape,
		InScopes: scope.None, Variants: gamevariant.SetAll, Fields: arithmeticFields,
	},
	"min": {
		Name: "min", Shape: CompareValue,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"max": {
		Name: "max", Shape: CompareValue,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"if": {
		Name: "if", Shape: ControlShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
	"else": {
		Name: "else", Shape: ControlShape,
		InScopes: scope.None, Variants: gamevariant.SetAll,
	},
}
