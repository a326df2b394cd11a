package validate

import (
	"strings"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/tables"
	"github.com/hallowmark/scriptguard/internal/token"
)

// part is one `.`-separated piece of a scope chain, already split into
// prefix/arg if it used `prefix:arg` syntax.
type part struct {
	tok    token.Token
	prefix string
	arg    string
	hasArg bool
}

// splitChainParts splits a dotted key token into parts, further splitting
// each part on ':' for the `prefix:arg` form.
func splitChainParts(key token.Token) []part {
	dotted := key.SplitDotted()
	out := make([]part, len(dotted))
	for i, tok := range dotted {
		if idx := strings.IndexByte(tok.Text, ':'); idx >= 0 {
			out[i] = part{tok: tok, prefix: tok.Text[:idx], arg: tok.Text[idx+1:], hasArg: true}
		} else {
			out[i] = part{tok: tok}
		}
	}
	return out
}

// isChainLike reports whether key looks like a dotted scope chain, a
// single `prefix:arg` part, or a single bare word that is itself a known
// scope-to-scope transition (e.g. `mother = { ... }` opening a nested
// block in the mother's scope) — as opposed to a bare trigger/effect
// keyword handled directly by the descriptor table.
func isChainLike(key token.Token) bool {
	if strings.ContainsRune(key.Text, '.') {
		return true
	}
	if idx := strings.IndexByte(key.Text, ':'); idx > 0 {
		_, known := tables.Prefixes[key.Text[:idx]]
		return known
	}
	_, isTransition := tables.Transitions[key.Text]
	return isTransition
}

// applyPart advances ctx by one chain part that is known to be a
// transition, a prefix:arg, or root/prev/this — the part types legal in
// any position except the last of a terminal-seeking chain. It reports
// whether the part was recognized at all; the caller decides what an
// unrecognized part means (UnknownField vs "try it as a terminal keyword").
func (w *walker) applyPart(env *Env, ctx *scope.Context, p part, isFirst bool, flags Flags) bool {
	switch {
	case p.hasArg:
		pd, ok := tables.Prefixes[p.prefix]
		if !ok {
			return false
		}
		if pd.Name == "scope" {
			if !ctx.ExistsScope(p.arg) {
				env.reportCapped(flags, diag.Diagnostic{
					Severity: diag.Error, Confidence: diag.Strong, Key: diag.KeyMissingItem,
					Loc: p.tok.Loc, Message: "scope \"" + p.arg + "\" was never saved",
				})
				ctx.Replace(scope.None, p.tok)
				return true
			}
			ctx.Expect(pd.InScopes, p.tok)
			ctx.ReplaceNamedScope(p.arg, p.tok)
			return true
		}
		ctx.Expect(pd.InScopes, p.tok)
		if pd.HasItem {
			argTok := token.New(p.arg, token.Bare, p.tok.Loc)
			env.Catalog.VerifyExists(pd.ItemKind, argTok, env.Sink)
		}
		ctx.Replace(pd.OutScope, p.tok)
		return true
	case isFirst && (p.tok.LowercaseIs("root")):
		ctx.Replace(ctx.Root(), p.tok)
		return true
	case isFirst && p.tok.LowercaseIs("prev"):
		// prev has no direct accessor on Context beyond what OpenScope
		// tracked; conservatively treat it as an unconstrained scope so
		// chains through prev don't cascade false positives.
		ctx.Replace(scope.None, p.tok)
		return true
	case isFirst && p.tok.LowercaseIs("this"):
		ctx.Replace(ctx.Scopes(), p.tok)
		return true
	default:
		tr, ok := tables.Transitions[p.tok.Text]
		if !ok {
			return false
		}
		ctx.Expect(tr.InScopes, p.tok)
		ctx.Replace(tr.OutScope, p.tok)
		return true
	}
}

// walkChainPrefix applies every part except the last inside a builder
// bracket, always finalizing and closing the builder frame before
// returning — whether or not every part resolved. The builder's
// OpenBuilder/Close pair is entirely self-contained here; the caller is
// separately responsible for its own surrounding OpenScope/Close pair, so
// each call site stays balanced at two opens and two closes.
func (w *walker) walkChainPrefix(env *Env, ctx *scope.Context, parts []part, flags Flags) bool {
	ctx.OpenBuilder()
	ok := true
	for i := 0; i < len(parts)-1; i++ {
		if !w.applyPart(env, ctx, parts[i], i == 0, flags) {
			env.reportCapped(flags, diag.Diagnostic{
				Severity: diag.Error, Confidence: diag.Strong, Key: diag.KeyUnknownField,
				Loc: parts[i].tok.Loc, Message: "unknown token `" + parts[i].tok.Text + "`",
			})
			ok = false
			break
		}
	}
	ctx.FinalizeBuilder()
	ctx.Close()
	return ok
}
