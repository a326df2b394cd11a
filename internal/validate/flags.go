package validate

import "github.com/hallowmark/scriptguard/internal/diag"

// Tooltipped is the three-valued flag riding alongside every validation
// call, tracking whether the construct's text will ever be shown to the
// player.
type Tooltipped int

const (
	TooltippedYes Tooltipped = iota
	TooltippedFailuresOnly
	TooltippedNo
)

// Flags is the per-call mutable context threaded through every recursive
// validate call: negation state, tooltip visibility, the severity cap, and
// the current macro expansion depth. It is small and copied by value at
// each recursion so a child's mutations (e.g. entering `not`) never leak
// back to its caller.
type Flags struct {
	Negated     bool
	Tooltipped  Tooltipped
	SeverityCap diag.Severity
	MacroDepth  int
	// MacroChain records the scripted reference names on the current
	// expansion spine, for the cycle guard in macro.go.
	MacroChain []string
}

// RootFlags is the starting Flags for validating a top-level item: not
// negated, tooltipped, no severity cap (diagnostics keep their own default
// severity), zero macro depth.
func RootFlags() Flags {
	return Flags{Tooltipped: TooltippedYes, SeverityCap: diag.Fatal}
}

// Negate returns a copy with Negated flipped — used when recursing into
// not/nor/all_false/nand.
func (f Flags) Negate() Flags {
	f.Negated = !f.Negated
	return f
}

// WithTooltipped returns a copy with Tooltipped overridden.
func (f Flags) WithTooltipped(t Tooltipped) Flags {
	f.Tooltipped = t
	return f
}

// WithCap returns a copy whose severity cap is the stricter of the current
// cap and max — a cap only ever tightens (demotes further) as validation
// descends, never loosens.
func (f Flags) WithCap(max diag.Severity) Flags {
	if int(max) > int(f.SeverityCap) {
		f.SeverityCap = max
	}
	return f
}

// capSeverity demotes sev down to f.SeverityCap when sev would otherwise
// report as more severe than the cap permits.
func (f Flags) capSeverity(sev diag.Severity) diag.Severity {
	if int(sev) < int(f.SeverityCap) {
		return f.SeverityCap
	}
	return sev
}

// pushMacro returns a copy with depth incremented and name appended to the
// chain, plus whether the push is still within the depth cap and not a
// cycle (name already present on the chain).
func (f Flags) pushMacro(name string, maxDepth int) (next Flags, ok bool, cycle bool) {
	for _, n := range f.MacroChain {
		if n == name {
			return f, false, true
		}
	}
	if f.MacroDepth >= maxDepth {
		return f, false, false
	}
	chain := make([]string, len(f.MacroChain), len(f.MacroChain)+1)
	copy(chain, f.MacroChain)
	chain = append(chain, name)
	f.MacroDepth++
	f.MacroChain = chain
	return f, true, false
}
