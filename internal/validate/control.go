package validate

import (
	"strings"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/script"
)

var controlKeywords = map[string]bool{
	"and": true, "or": true, "not": true, "nand": true, "nor": true, "all_false": true,
	"if": true, "else_if": true, "else": true,
	"trigger_if": true, "trigger_else_if": true, "trigger_else": true,
	"switch": true, "custom_description": true, "custom_tooltip": true,
	"random_list": true, "limit": true,
}

func isControlKeyword(name string) bool { return controlKeywords[name] }

// negatingKeywords toggles Negated exactly once on the recursive call, per
// the negation-propagation rule.
var negatingKeywords = map[string]bool{"not": true, "nor": true, "all_false": true, "nand": true}

// handleControl dispatches one control-keyword field to the shared block
// walker, adjusting negation and tooltip flags as the keyword requires.
// limit's body is always validated as a trigger, even when the enclosing
// construct is an effect — a limit block gates whether the effect runs, it
// never itself mutates state.
func (w walker) handleControl(env *Env, ctx *scope.Context, it script.Item, flags Flags, kind entryKind) bool {
	name := strings.ToLower(it.Key.Text)
	nested, ok := it.Value.AsBlock()
	if !ok {
		env.reportCapped(flags, diag.Diagnostic{
			Severity: diag.Error, Confidence: diag.Strong, Key: diag.KeyValidation,
			Loc: it.Key.Loc, Message: "`" + it.Key.Text + "` requires a block value",
		})
		return false
	}

	next := flags
	if negatingKeywords[name] {
		next = next.Negate()
	}
	switch name {
	case "custom_tooltip":
		next = next.WithTooltipped(TooltippedNo)
	case "custom_description":
		next = next.WithTooltipped(TooltippedFailuresOnly)
	}

	if name == "limit" {
		return ValidateTrigger(env, ctx, nested, next)
	}
	return w.walkBlock(env, ctx, nested, next, kind)
}
