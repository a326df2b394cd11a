package validate

import (
	"strings"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/script"
)

// extractParams scans a scripted trigger/effect/script-value's definition
// body for `$NAME$` placeholder tokens and returns the distinct parameter
// names, in first-seen order. A scripted reference with no such tokens
// takes no parameters and is called as a plain `= yes` / `= no` boolean.
func extractParams(block *script.Block) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(b *script.Block)
	walk = func(b *script.Block) {
		if b == nil {
			return
		}
		for _, it := range b.Items {
			if it.IsField() {
				if name, ok := paramName(it.Key.Text); ok && !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
				if nested, ok := it.Value.AsBlock(); ok {
					walk(nested)
				} else if tok, ok := it.Value.AsToken(); ok {
					if name, ok := paramName(tok.Text); ok && !seen[name] {
						seen[name] = true
						out = append(out, name)
					}
				}
			} else if name, ok := paramName(it.BareValue.Text); ok && !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	walk(block)
	return out
}

func paramName(s string) (string, bool) {
	if len(s) > 2 && strings.HasPrefix(s, "$") && strings.HasSuffix(s, "$") {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func kindNoun(kind entryKind) string {
	switch kind {
	case triggerEntry:
		return "scripted trigger"
	case effectEntry:
		return "scripted effect"
	default:
		return "scripted value"
	}
}

// handleMacro validates a call to a user-defined scripted trigger/effect/
// script-value as a macro: parameterless references accept `= yes`/`= no`
// and re-validate the body in the current scope with negation flipped for
// `= no`; parameterized references require a block of named arguments
// matching the declared parameter set exactly, or the call is a Fatal
// Macro diagnostic with no recursion into the expansion.
func (w walker) handleMacro(env *Env, ctx *scope.Context, it script.Item, flags Flags, kind entryKind) bool {
	def, ok := env.Catalog.Get(kind.scriptedKind(), it.Key.Text)
	if !ok || def.Block == nil {
		return false
	}
	params := extractParams(def.Block)

	next, pushed, cycle := flags.pushMacro(it.Key.Text, env.MaxMacroDepth)
	if cycle {
		env.reportCapped(flags, diag.Diagnostic{
			Severity: diag.Fatal, Confidence: diag.Strong, Key: diag.KeyMacro,
			Loc: it.Key.Loc, Message: "cyclic " + kindNoun(kind) + " reference through `" + it.Key.Text + "`",
		})
		return false
	}
	if !pushed {
		env.reportCapped(flags, diag.Diagnostic{
			Severity: diag.Fatal, Confidence: diag.Strong, Key: diag.KeyMacro,
			Loc: it.Key.Loc, Message: kindNoun(kind) + " expansion exceeded the maximum depth",
		})
		return false
	}

	if len(params) == 0 {
		tok, isTok := it.Value.AsToken()
		if !isTok {
			env.reportCapped(flags, diag.Diagnostic{
				Severity: diag.Fatal, Confidence: diag.Strong, Key: diag.KeyMacro,
				Loc: it.Key.Loc, Message: "this " + kindNoun(kind) + " takes no parameters",
			})
			return false
		}
		v, isBool := tok.BoolValue()
		callFlags := next
		if isBool && !v {
			callFlags = callFlags.Negate()
		}
		return w.walkBlock(env, ctx, def.Block, callFlags, kind)
	}

	argBlock, isBlock := it.Value.AsBlock()
	if !isBlock {
		env.reportCapped(flags, diag.Diagnostic{
			Severity: diag.Fatal, Confidence: diag.Strong, Key: diag.KeyMacro,
			Loc: it.Key.Loc, Message: "this " + kindNoun(kind) + " needs a block of arguments",
		})
		return false
	}
	given := map[string]bool{}
	for _, arg := range argBlock.Fields() {
		given[arg.Key.Text] = true
	}
	for _, p := range params {
		if !given[p] {
			env.reportCapped(flags, diag.Diagnostic{
				Severity: diag.Fatal, Confidence: diag.Strong, Key: diag.KeyMacro,
				Loc: it.Key.Loc, Message: "this " + kindNoun(kind) + " needs parameter " + p,
			})
			return false
		}
	}
	declared := map[string]bool{}
	for _, p := range params {
		declared[p] = true
	}
	for _, arg := range argBlock.Fields() {
		if !declared[arg.Key.Text] {
			env.reportCapped(flags, diag.Diagnostic{
				Severity: diag.Fatal, Confidence: diag.Strong, Key: diag.KeyMacro,
				Loc: arg.Key.Loc, Message: "this " + kindNoun(kind) + " has no parameter " + arg.Key.Text,
			})
			return false
		}
	}

	return w.walkBlock(env, ctx, def.Block, next, kind)
}
