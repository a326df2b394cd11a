package validate

import (
	"strings"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/tables"
)

var iteratorPrefixes = []string{"any", "every", "ordered", "random"}

// iteratorPrefix returns the prefix portion of name if it begins with one
// of any_/every_/ordered_/random_ and the rest resolves in tables.Iterators,
// or "" otherwise.
func iteratorPrefix(name string) string {
	for _, p := range iteratorPrefixes {
		rest, ok := strings.CutPrefix(name, p+"_")
		if ok {
			if _, known := tables.Iterators[rest]; known {
				return p
			}
		}
	}
	return ""
}

// iteratorSubFields are the iterator-specific sub-fields pre-scanned
// before the main recursive walk of an iterator's body — they configure
// the loop itself rather than describing a per-object condition.
var iteratorSubFields = map[string]bool{
	"limit": true, "count": true, "order_by": true, "position": true,
	"min": true, "max": true, "percent": true, "filter": true,
}

// handleIterator validates one any_/every_/ordered_/random_ field: expects
// the iterator's declared input scope, opens a new current scope for its
// output type, validates sub-fields and the remaining body, then closes.
func (w walker) handleIterator(env *Env, ctx *scope.Context, it script.Item, flags Flags, kind entryKind) bool {
	name := strings.ToLower(it.Key.Text)
	prefix := iteratorPrefix(name)
	rest := strings.TrimPrefix(name, prefix+"_")
	iter := tables.Iterators[rest]

	nested, ok := it.Value.AsBlock()
	if !ok {
		env.reportCapped(flags, diag.Diagnostic{
			Severity: diag.Error, Confidence: diag.Strong, Key: diag.KeyValidation,
			Loc: it.Key.Loc, Message: "`" + it.Key.Text + "` requires a block value",
		})
		return false
	}

	ctx.Expect(iter.InScopes, it.Key)
	ctx.OpenScope(iter.OutScope, it.Key)
	defer ctx.Close()

	sideEffect := false
	for _, sub := range nested.Items {
		if sub.IsField() && iteratorSubFields[strings.ToLower(sub.Key.Text)] {
			if strings.ToLower(sub.Key.Text) == "limit" {
				if block, ok := sub.Value.AsBlock(); ok {
					if ValidateTrigger(env, ctx, block, flags.WithTooltipped(TooltippedNo)) {
						sideEffect = true
					}
				}
			}
			// count/order_by/position/min/max/percent/filter each have
			// their own small grammar (mostly literals or nested
			// script-value/trigger blocks); representative coverage is
			// limited to limit's recursive trigger body here, since that's
			// the one sub-field that itself contains arbitrary triggers.
		}
	}

	body := &script.Block{Items: make([]script.Item, 0, len(nested.Items))}
	for _, sub := range nested.Items {
		if sub.IsField() && iteratorSubFields[strings.ToLower(sub.Key.Text)] {
			continue
		}
		body.Items = append(body.Items, sub)
	}
	if w.walkBlock(env, ctx, body, flags, kind) {
		sideEffect = true
	}
	return sideEffect
}
