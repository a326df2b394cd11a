package validate

import (
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/token"
)

// ResolveTarget validates a value-as-scope-chain expression: the
// right-hand side of a Scope/ScopeOkThis-typed descriptor. It has the same
// part-by-part structure as the chain walk triggered by a scope-chain key,
// but it can never terminate in a trigger or effect — every part,
// including the last, must be a transition, a prefix:arg, or a
// root/prev/this token. After resolution the final scope set is
// intersected with expected; an empty intersection reports a two-location
// Scopes diagnostic pairing the last part with the reason for its inferred
// type. A literal `this` in terminal position is a usage warning unless
// okThis suppresses it.
func (w *walker) ResolveTarget(env *Env, ctx *scope.Context, valueTok token.Token, expected scope.Set, okThis bool, flags Flags) {
	parts := splitChainParts(valueTok)
	if len(parts) == 0 {
		return
	}

	// Resolving a target value must never leak its intermediate scope
	// transitions into the caller's current entry — wrap the whole walk in
	// its own scope frame, seeded with a copy of the caller's current, so
	// Close restores exactly what was there before this call.
	ctx.OpenScope(ctx.Scopes(), valueTok)
	defer ctx.Close()

	ok := w.walkChainPrefix(env, ctx, parts, flags)
	last := parts[len(parts)-1]
	if ok {
		if !w.applyPart(env, ctx, last, len(parts) == 1, flags) {
			env.reportCapped(flags, diag.Diagnostic{
				Severity: diag.Error, Confidence: diag.Strong, Key: diag.KeyUnknownField,
				Loc: last.tok.Loc, Message: "unknown token `" + last.tok.Text + "`",
			})
		} else if !okThis && last.tok.LowercaseIs("this") {
			env.reportCapped(flags, diag.Diagnostic{
				Severity: diag.Untidy, Confidence: diag.Weak, Key: diag.KeyUseOfThis,
				Loc: last.tok.Loc, Message: "using `this` here is usually a mistake",
			})
		}
		ctx.Expect(expected, last.tok)
	}
}
