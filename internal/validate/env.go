// Package validate implements the recursive trigger/effect/script-value
// validator: the three mutually recursive entry points that share a scope
// context and an item catalog, differing only in which descriptor table
// they consult and which keywords they accept.
package validate

import (
	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
)

// DefaultMaxMacroDepth is the expansion-depth cap used in lieu of precise
// scripted-trigger/effect cycle detection.
const DefaultMaxMacroDepth = 64

// Env is the run-wide, read-only state every validator call shares: the
// frozen catalog, which game variant is active, the diagnostic sink, and
// the macro expansion depth cap. It is passed explicitly rather than held
// as a global so tests can construct independent runs.
type Env struct {
	Catalog       *catalog.Catalog
	Variant       gamevariant.Variant
	Sink          diag.Sink
	MaxMacroDepth int
}

// NewEnv builds an Env with DefaultMaxMacroDepth.
func NewEnv(cat *catalog.Catalog, variant gamevariant.Variant, sink diag.Sink) *Env {
	return &Env{Catalog: cat, Variant: variant, Sink: sink, MaxMacroDepth: DefaultMaxMacroDepth}
}

func (e *Env) report(d diag.Diagnostic) {
	if e.Sink != nil {
		e.Sink.Report(d)
	}
}

// reportCapped demotes d's severity to f's cap before reporting — the
// "max severity" mechanism spec §4.V describes, used by entry points like
// ValidateTriggerCapped that validate triggers inside item definitions
// whose failure doesn't itself warrant Error.
func (e *Env) reportCapped(f Flags, d diag.Diagnostic) {
	d.Severity = f.capSeverity(d.Severity)
	e.report(d)
}
