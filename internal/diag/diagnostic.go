// Package diag defines the analyzer's one structured output type and the
// Sink interface that receives it. Formatting, coloring, severity
// filtering, and suppression configuration are external-collaborator
// concerns (spec §1) — this package only defines the record shape and a
// minimal collecting Sink good enough to drive the core and its tests.
package diag

import "github.com/hallowmark/scriptguard/internal/token"

// Severity ranks how much a diagnostic matters, highest first.
type Severity int

const (
	Fatal Severity = iota
	Error
	Warning
	Untidy
	Advice
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Untidy:
		return "untidy"
	case Advice:
		return "advice"
	default:
		return "unknown"
	}
}

// AtLeast reports whether this severity is at least as severe as min
// (Fatal is the most severe; the zero value sorts first).
func (s Severity) AtLeast(min Severity) bool { return s <= min }

// Confidence describes how sure the analyzer is that a missing-reference
// diagnostic is a real problem, as opposed to a reference resolved by a
// mechanism the analyzer doesn't model.
type Confidence int

const (
	Strong     Confidence = iota
	Reasonable
	Weak
)

func (c Confidence) String() string {
	switch c {
	case Strong:
		return "strong"
	case Reasonable:
		return "reasonable"
	case Weak:
		return "weak"
	default:
		return "unknown"
	}
}

// Key is a stable identifier for a lint, used for suppression config and
// for asserting on specific diagnostics in tests. The set is open enough to
// add new lints but every member here is load-bearing in the validator.
type Key string

const (
	KeyParseError    Key = "ParseError"
	KeyReadError     Key = "ReadError"
	KeyImageFormat   Key = "ImageFormat"
	KeyMissingItem   Key = "MissingItem"
	KeyDuplicateItem Key = "DuplicateItem"
	KeyScopes        Key = "Scopes"
	KeyUnknownField  Key = "UnknownField"
	KeyTooltip       Key = "Tooltip"
	KeyMacro         Key = "Macro"
	KeyEventNamespace Key = "EventNamespace"
	KeyIfElse        Key = "IfElse"
	KeyLogic         Key = "Logic"
	KeyBugs          Key = "Bugs"
	KeyRemoved       Key = "Removed"
	KeyDataFunctions Key = "DataFunctions"
	KeyUseOfThis     Key = "UseOfThis"
	KeyValidation    Key = "Validation"
	KeyWrongGender   Key = "WrongGender"
	// KeyEncoding flags suspicious Unicode in string literals — zero-width,
	// bidi-override, or tag characters that render invisibly or misleadingly.
	// Added during the Go rewrite; not present in the original lint key set.
	KeyEncoding Key = "Encoding"
)

// SecondaryLocation is the optional second anchor of a two-location
// diagnostic — e.g. pairing an unexpected scope-typed trigger with the
// token whose inferred type caused the conflict.
type SecondaryLocation struct {
	Loc     token.Location
	Message string
}

// Diagnostic is the system's only structured output record.
type Diagnostic struct {
	Severity   Severity
	Confidence Confidence
	Key        Key
	Loc        token.Location
	Secondary  *SecondaryLocation
	Message    string
	Info       string
}

// Sink receives diagnostics as they're produced. Implementations own
// filtering, formatting, and output; the validator never inspects what a
// Sink does with a report.
type Sink interface {
	Report(Diagnostic)
}

// Collecting is a Sink that stores every diagnostic it receives, in report
// order. Used directly by tests and as the default Sink for single-pass,
// non-streaming callers.
type Collecting struct {
	Diagnostics []Diagnostic
}

func (c *Collecting) Report(d Diagnostic) { c.Diagnostics = append(c.Diagnostics, d) }

// MaxSeverity returns the most severe diagnostic reported, or a zero value
// with ok=false if nothing was reported.
func (c *Collecting) MaxSeverity() (Severity, bool) {
	if len(c.Diagnostics) == 0 {
		return 0, false
	}
	max := Advice
	for _, d := range c.Diagnostics {
		if d.Severity.AtLeast(max) {
			max = d.Severity
		}
	}
	return max, true
}

// ByKey filters the collected diagnostics by Key, preserving order.
func (c *Collecting) ByKey(k Key) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Key == k {
			out = append(out, d)
		}
	}
	return out
}

