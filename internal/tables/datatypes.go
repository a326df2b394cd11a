package tables

// Codes maps a function name appearing in a `[GetTitle.GetName]`-shaped
// templated-text chain to its datatype contract, mirroring the original
// implementation's much smaller parallel type system for GUI/tooltip
// expressions (a fixed handful of datatypes rather than the ~40-entry
// scope set the main validator tracks).
var Codes = map[string]*CodeDescriptor{
	"GetTitle": {Name: "GetTitle", InType: DTCharacter, OutType: DTCharacter, Args: 0},
	"GetName": {Name: "GetName", InType: DTCharacter, OutType: DTCString, Args: 0},
	"GetFirstName": {Name: "GetFirstName", InType: DTCharacter, OutType: DTCString, Args: 0},
	"GetAge": {Name: "GetAge", InType: DTCharacter, OutType: DTValue, Args: 0},
	"GetLiege": {Name: "GetLiege", InType: DTCharacter, OutType: DTCharacter, Args: 0},
	"IsFemale": {Name: "IsFemale", InType: DTCharacter, OutType: DTBool, Args: 0},
	"Custom": {Name: "Custom", InType: DTUnknown, OutType: DTCString, Args: 1},
	"GetValue": {Name: "GetValue", InType: DTUnknown, OutType: DTValue, Args: 0},
}
