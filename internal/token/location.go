// Package token holds the lexeme and source-location types shared by every
// downstream package. Tokens and the blocks built from them are read-only
// once the parser produces them and outlive the whole validation pass, so
// this package has no mutable state of its own.
package token

import "fmt"

// OverlayKind distinguishes which layer of the game installation a file
// came from. Diagnostics use it to suppress noise from vanilla content and
// the item catalog uses it to decide whether a redefinition shadows
// silently or is a genuine duplicate.
type OverlayKind int

const (
	// Vanilla is the base game installation.
	Vanilla OverlayKind = iota
	// Mod is a user-authored overlay, numbered by load order: a higher
	// ModLayer value loads later and wins ties.
	Mod
	// Generated marks tokens synthesized by the analyzer itself (macro
	// expansion sites, fallback-parse recovery) rather than read from a file.
	Generated
)

func (k OverlayKind) String() string {
	switch k {
	case Vanilla:
		return "vanilla"
	case Mod:
		return "mod"
	case Generated:
		return "generated"
	default:
		return "unknown"
	}
}

// Location identifies where a token came from: which file, at what line and
// column, from which overlay layer, and — for Mod locations — at what load
// priority. Locations are cheap to compare by value.
type Location struct {
	File     string
	Line     int
	Column   int
	Kind     OverlayKind
	ModLayer int // load order among mod overlays; 0 for Vanilla/Generated
}

// Builtin is the zero Location used for tokens synthesized by the analyzer
// (for example, the implicit root scope reason for an item with no natural
// anchor token).
var Builtin = Location{File: "<builtin>", Kind: Generated}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsVanilla reports whether this location's overlay is the base game.
func (l Location) IsVanilla() bool { return l.Kind == Vanilla }

// Shadows reports whether a definition at location `new` silently shadows
// one at location `old` per the overlay precedence rules: strictly higher
// overlay kind wins, and among two Mod overlays a strictly higher ModLayer
// wins. Equal overlay and layer is not a shadow — it's a duplicate.
func (new_ Location) Shadows(old Location) bool {
	if new_.Kind != old.Kind {
		return new_.Kind > old.Kind
	}
	if new_.Kind == Mod {
		return new_.ModLayer > old.ModLayer
	}
	return false
}

// SameOverlay reports whether two locations come from the same overlay
// layer (used to detect genuine duplicate-within-a-layer diagnostics).
func (l Location) SameOverlay(other Location) bool {
	return l.Kind == other.Kind && l.ModLayer == other.ModLayer
}
