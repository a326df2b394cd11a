// Package codechain validates `[GetTitle.GetName]`-shaped templated-text
// expressions found inside localization and tooltip strings. It mirrors
// the main trigger/effect/script-value validator's "dotted chain of
// promotes ending in a function" shape, but over tables.Datatype instead
// of scope.Set: a much smaller, fixed type system (CString, Value, Bool,
// Character, Unknown) matched against tables.Codes.
package codechain

import (
	"strconv"
	"strings"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/tables"
	"github.com/hallowmark/scriptguard/internal/token"
)

// Call is one dot-separated element of a chain: a function/promote name
// plus whatever arguments appeared in parentheses after it.
type Call struct {
	Name string
	Args []string
}

// Chain is a full `[...]`-bracketed expression split into its dotted Calls.
type Chain struct {
	Calls []Call
}

// ExtractChains scans text for `[...]`-bracketed expressions and returns
// the contents of each, unparsed. Brackets are matched by depth so a
// nested `[` inside an argument doesn't truncate the outer expression.
func ExtractChains(text string) []string {
	var out []string
	depth := 0
	start := -1
	for i, r := range text {
		switch r {
		case '[':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ']':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					out = append(out, text[start:i])
					start = -1
				}
			}
		}
	}
	return out
}

// Parse splits one bracket expression's body into its dotted Calls. Dots
// and commas inside parentheses don't split the chain; everything between
// the parentheses is kept as that call's raw argument list.
func Parse(expr string) Chain {
	var chain Chain
	for _, part := range splitTopLevel(expr, '.') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chain.Calls = append(chain.Calls, parseCall(part))
	}
	return chain
}

func parseCall(s string) Call {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Call{Name: s}
	}
	name := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]
	var args []string
	for _, a := range splitTopLevel(inner, ',') {
		a = strings.TrimSpace(a)
		a = strings.Trim(a, "'\"")
		if a != "" {
			args = append(args, a)
		}
	}
	return Call{Name: name, Args: args}
}

// splitTopLevel splits s on sep, ignoring any sep found inside a
// parenthesized or quoted span — the only nesting this small grammar
// allows.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	var quote byte
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			out = append(out, s[last:i])
			last = i + 1
		}
	}
	out = append(out, s[last:])
	return out
}

// Validate walks chain against tables.Codes, starting from rootType, and
// reports any mismatch to sink at loc. An unrecognized name is treated as
// an opaque passed-in value rather than an error — the table is a small,
// fixed set and the analyzer would rather stay quiet on names it doesn't
// know than false-positive on legitimate engine functions it hasn't
// catalogued.
func Validate(chain Chain, rootType tables.Datatype, loc token.Location, sink diag.Sink) {
	if sink == nil || len(chain.Calls) == 0 {
		return
	}
	cur := rootType
	for i, call := range chain.Calls {
		desc, ok := tables.Codes[call.Name]
		if !ok {
			cur = tables.DTUnknown
			continue
		}

		if desc.InType != tables.DTUnknown && cur != tables.DTUnknown && desc.InType != cur {
			sink.Report(diag.Diagnostic{
				Severity:   diag.Warning,
				Confidence: diag.Reasonable,
				Key:        diag.KeyDataFunctions,
				Loc:        loc,
				Message:    call.Name + " expects " + datatypeName(desc.InType) + " but the chain so far produces " + datatypeName(cur),
			})
		}

		if len(call.Args) != desc.Args {
			sink.Report(diag.Diagnostic{
				Severity:   diag.Warning,
				Confidence: diag.Strong,
				Key:        diag.KeyDataFunctions,
				Loc:        loc,
				Message:    call.Name + " takes " + strconv.Itoa(desc.Args) + " argument(s) but was given " + strconv.Itoa(len(call.Args)) + " here",
			})
		}

		cur = desc.OutType
		if i == len(chain.Calls)-1 && cur != tables.DTUnknown && cur != tables.DTCString {
			sink.Report(diag.Diagnostic{
				Severity:   diag.Untidy,
				Confidence: diag.Weak,
				Key:        diag.KeyDataFunctions,
				Loc:        loc,
				Message:    call.Name + " produces " + datatypeName(cur) + ", not text; the engine will display its default string conversion",
			})
		}
	}
}

// ValidateText extracts every bracketed chain from text and validates it
// against rootType, reporting to sink. This is the entry point loaders
// call for a localization or tooltip string's raw value.
func ValidateText(text string, rootType tables.Datatype, loc token.Location, sink diag.Sink) {
	for _, raw := range ExtractChains(text) {
		Validate(Parse(raw), rootType, loc, sink)
	}
}

func datatypeName(d tables.Datatype) string {
	switch d {
	case tables.DTCString:
		return "CString"
	case tables.DTValue:
		return "Value"
	case tables.DTBool:
		return "Bool"
	case tables.DTCharacter:
		return "Character"
	default:
		return "Unknown"
	}
}

