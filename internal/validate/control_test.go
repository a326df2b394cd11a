package validate

import (
	"testing"

	"github.com/hallowmark/scriptguard/internal/diag"
)

func TestHandleControl_RequiresBlockValue(t *testing.T) {
	sink := &diag.Collecting{}
	env := newEnv(t, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `if = yes`), RootFlags())
	found := sink.ByKey(diag.KeyValidation)
	if len(found) != 1 {
		t.Fatalf("got %d Validation diagnostics, want 1 for if with a non-block value: %+v", len(found), sink.Diagnostics)
	}
}

func TestHandleControl_LimitBodyIsAlwaysValidatedAsATrigger(t *testing.T) {
	sink := &diag.Collecting{}
	env := newEnv(t, sink)
	ctx := newCtx(sink)

	// add_trait is an effect keyword, not a trigger one — limit's body
	// should be checked against the trigger table even inside an effect.
	ValidateEffect(env, ctx, block(t, `limit = { add_trait = brave }`), RootFlags())
	found := sink.ByKey(diag.KeyUnknownField)
	if len(found) != 1 {
		t.Fatalf("got %d UnknownField diagnostics, want 1 for an effect keyword inside limit: %+v", len(found), sink.Diagnostics)
	}
}

func TestHandleControl_NegationSuppressesExistsDefinition(t *testing.T) {
	sink := &diag.Collecting{}
	env := newEnv(t, sink)
	ctx := newCtx(sink)

	// Inside `not`, exists never defines the named scope, so the later
	// reference to scope:myscope reports it as never saved (and, in turn,
	// fails is_ruler's own Character-scope requirement once current has
	// collapsed to the unresolved set).
	ValidateTrigger(env, ctx, block(t, `
		not = {
			exists = scope:myscope
		}
		scope:myscope.is_ruler = yes
	`), RootFlags())

	found := sink.ByKey(diag.KeyMissingItem)
	if len(found) != 1 {
		t.Fatalf("got %d MissingItem diagnostics, want 1 for a scope never saved outside negation: %+v", len(found), sink.Diagnostics)
	}
}

func TestHandleControl_UnnegatedExistsDefinesScope(t *testing.T) {
	sink := &diag.Collecting{}
	env := newEnv(t, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `
		exists = scope:myscope
		scope:myscope.is_ruler = yes
	`), RootFlags())

	if len(sink.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics once exists has defined the named scope: %+v", sink.Diagnostics)
	}
}

func TestHandleControl_DoubleNegationCancelsOut(t *testing.T) {
	sink := &diag.Collecting{}
	env := newEnv(t, sink)
	ctx := newCtx(sink)

	// not { not { exists = scope:myscope } } negates twice, landing back at
	// "defines the scope" — same as the unnegated case.
	ValidateTrigger(env, ctx, block(t, `
		not = {
			not = {
				exists = scope:myscope
			}
		}
		scope:myscope.is_ruler = yes
	`), RootFlags())

	if len(sink.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics after double negation: %+v", sink.Diagnostics)
	}
}
