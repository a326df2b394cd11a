package validate

import (
	"strings"

	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/tables"
)

// entryKind distinguishes the three mutually recursive validators: they
// share every mechanism below and differ only in which descriptor table
// they consult, which scripted-reference catalog kind backs macro calls,
// and which iterator prefixes are legal.
type entryKind int

const (
	triggerEntry entryKind = iota
	effectEntry
	scriptValueEntry
)

func (k entryKind) descriptorTable() map[string]*tables.Descriptor {
	switch k {
	case triggerEntry:
		return tables.Triggers
	case effectEntry:
		return tables.Effects
	default:
		return tables.ScriptValues
	}
}

func (k entryKind) scriptedKind() catalog.Kind {
	switch k {
	case triggerEntry:
		return catalog.ScriptedTrigger
	case effectEntry:
		return catalog.ScriptedEffect
	default:
		return catalog.ScriptedValue
	}
}

// walker holds no state of its own — it exists so the three entry points
// and their shared helpers can be grouped as methods without repeating the
// *Env receiver in every call. A zero-value walker is always valid.
type walker struct{}

// ValidateTrigger, ValidateEffect, and ValidateScriptValue are the package's
// three public entry points. Each returns whether the block had a
// detectable side effect, so a caller (e.g. the control-keyword handler
// for `if` with no `else`) can suppress dead-code advice.
func ValidateTrigger(env *Env, ctx *scope.Context, block *script.Block, flags Flags) bool {
	return (walker{}).walkBlock(env, ctx, block, flags, triggerEntry)
}

// ValidateTriggerCapped validates a trigger block the same way ValidateTrigger
// does, but with every diagnostic demoted to at most cap — for trigger
// fields inside item definitions whose failure doesn't itself warrant Error
// (e.g. a decision's is_shown, which only hides the decision rather than
// producing a crash or a broken reference the player could hit).
func ValidateTriggerCapped(env *Env, ctx *scope.Context, block *script.Block, flags Flags, cap diag.Severity) bool {
	return (walker{}).walkBlock(env, ctx, block, flags.WithCap(cap), triggerEntry)
}

func ValidateEffect(env *Env, ctx *scope.Context, block *script.Block, flags Flags) bool {
	return (walker{}).walkBlock(env, ctx, block, flags, effectEntry)
}

func ValidateScriptValue(env *Env, ctx *scope.Context, block *script.Block, flags Flags) bool {
	return (walker{}).walkBlock(env, ctx, block, flags, scriptValueEntry)
}

// walkBlock is the shared structure every entry point funnels through: it
// classifies each field's key and dispatches to the matching handler.
func (w walker) walkBlock(env *Env, ctx *scope.Context, block *script.Block, flags Flags, kind entryKind) bool {
	sideEffect := false
	if block == nil {
		return false
	}
	for _, item := range block.Items {
		if !item.IsField() {
			continue // bare list elements carry no keyword to validate
		}
		key := item.Key
		name := strings.ToLower(key.Text)

		switch {
		case isControlKeyword(name):
			if w.handleControl(env, ctx, item, flags, kind) {
				sideEffect = true
			}
			continue
		case iteratorPrefix(name) != "":
			if kind != triggerEntry {
				if w.handleIterator(env, ctx, item, flags, kind) {
					sideEffect = true
				}
				continue
			}
			prefix := iteratorPrefix(name)
			if prefix != "any" {
				env.reportCapped(flags, diag.Diagnostic{
					Severity: diag.Error, Confidence: diag.Strong, Key: diag.KeyUnknownField,
					Loc: key.Loc, Message: "only any_ iterators are legal in a trigger, found " + prefix + "_",
				})
				continue
			}
			if w.handleIterator(env, ctx, item, flags, kind) {
				sideEffect = true
			}
			continue
		case env.Catalog.Exists(kind.scriptedKind(), key.Text):
			if w.handleMacro(env, ctx, item, flags, kind) {
				sideEffect = true
			}
			continue
		case isChainLike(key):
			if w.handleChainKey(env, ctx, item, flags, kind) {
				sideEffect = true
			}
			continue
		default:
			if d, ok := kind.descriptorTable()[name]; ok {
				if w.dispatchDescriptor(env, ctx, d, item, flags, kind) {
					sideEffect = true
				}
				continue
			}
			env.reportCapped(flags, diag.Diagnostic{
				Severity: diag.Error, Confidence: diag.Reasonable, Key: diag.KeyUnknownField,
				Loc: key.Loc, Message: "unknown token `" + key.Text + "`",
				Info: suggestPrefix(key.Text),
			})
		}
	}
	return sideEffect
}

// suggestPrefix returns a prefix-suggestion hint when name is also a known
// item kind reachable via a `prefix:` chain, per the spec's "possibly with
// a prefix suggestion if wibble is a known item kind elsewhere" case.
func suggestPrefix(name string) string {
	if _, ok := tables.Prefixes[name]; ok {
		return "did you mean `" + name + ":" + "...`?"
	}
	return ""
}
