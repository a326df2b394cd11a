package validate

import (
	"testing"

	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/token"
)

// registerScriptedTrigger parses body as a trigger definition and registers
// it in cat under name, returning the parsed body for callers that want it.
func registerScriptedTrigger(t *testing.T, cat *catalog.Catalog, name, body string) *script.Block {
	t.Helper()
	sink := &diag.Collecting{}
	root := script.Parse(name+".txt", name+" = {\n"+body+"\n}", token.Mod, 0, sink)
	field, ok := root.FieldNamed(name)
	if !ok {
		t.Fatalf("setup: failed to parse scripted trigger %q body", name)
	}
	b, _ := field.Value.AsBlock()
	cat.Register(catalog.ScriptedTrigger, name, field.Key, b, nil)
	return b
}

func TestHandleMacro_ParameterizedCallWithMatchingArgsIsSilent(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "old_enough", "age >= $THRESHOLD$")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `old_enough = { THRESHOLD = 16 }`), RootFlags())
	if len(sink.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics for a correctly-called parameterized macro: %+v", sink.Diagnostics)
	}
}

func TestHandleMacro_MissingRequiredParamIsFatal(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "old_enough", "age >= $THRESHOLD$")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `old_enough = { WRONG = 16 }`), RootFlags())
	found := sink.ByKey(diag.KeyMacro)
	if len(found) != 1 {
		t.Fatalf("got %d Macro diagnostics, want 1 for a missing required parameter: %+v", len(found), sink.Diagnostics)
	}
	if found[0].Severity != diag.Fatal {
		t.Errorf("got severity %v, want Fatal", found[0].Severity)
	}
}

func TestHandleMacro_ExtraParamIsFatal(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "old_enough", "age >= $THRESHOLD$")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `old_enough = { THRESHOLD = 16 EXTRA = 1 }`), RootFlags())
	found := sink.ByKey(diag.KeyMacro)
	if len(found) != 1 {
		t.Fatalf("got %d Macro diagnostics, want 1 for an undeclared extra parameter: %+v", len(found), sink.Diagnostics)
	}
}

func TestHandleMacro_BlockArgNeededButTokenGivenIsFatal(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "old_enough", "age >= $THRESHOLD$")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `old_enough = yes`), RootFlags())
	found := sink.ByKey(diag.KeyMacro)
	if len(found) != 1 {
		t.Fatalf("got %d Macro diagnostics, want 1 for a token given where a parameter block was required: %+v", len(found), sink.Diagnostics)
	}
}

func TestHandleMacro_ParameterlessCallAcceptsYesNo(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "is_ruler_alias", "is_ruler = yes")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `is_ruler_alias = no`), RootFlags())
	if len(sink.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics for a parameterless macro called with no: %+v", sink.Diagnostics)
	}
}

func TestHandleMacro_ParameterlessCallRejectsBlockArg(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "is_ruler_alias", "is_ruler = yes")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `is_ruler_alias = { foo = bar }`), RootFlags())
	found := sink.ByKey(diag.KeyMacro)
	if len(found) != 1 {
		t.Fatalf("got %d Macro diagnostics, want 1 for a block given to a parameterless macro: %+v", len(found), sink.Diagnostics)
	}
}

func TestHandleMacro_DirectSelfReferenceIsCyclic(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "cyclic_a", "cyclic_a = yes")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `cyclic_a = yes`), RootFlags())
	found := sink.ByKey(diag.KeyMacro)
	if len(found) != 1 {
		t.Fatalf("got %d Macro diagnostics, want 1 for a cyclic scripted trigger reference: %+v", len(found), sink.Diagnostics)
	}
	if found[0].Severity != diag.Fatal {
		t.Errorf("got severity %v, want Fatal", found[0].Severity)
	}
}

func TestHandleMacro_DepthCapExceededIsFatal(t *testing.T) {
	cat := newFixtureCatalog(t)
	registerScriptedTrigger(t, cat, "chain_a", "chain_b = yes")
	registerScriptedTrigger(t, cat, "chain_b", "chain_c = yes")
	registerScriptedTrigger(t, cat, "chain_c", "is_ruler = yes")
	sink := &diag.Collecting{}
	env := NewEnv(cat, gamevariant.Dynasty, sink)
	env.MaxMacroDepth = 2
	ctx := newCtx(sink)

	ValidateTrigger(env, ctx, block(t, `chain_a = yes`), RootFlags())
	found := sink.ByKey(diag.KeyMacro)
	if len(found) != 1 {
		t.Fatalf("got %d Macro diagnostics, want 1 once the expansion exceeds the depth cap: %+v", len(found), sink.Diagnostics)
	}
}
