package catalog

import (
	"testing"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/token"
)

func parseTestBlock(t *testing.T, src string) *script.Block {
	t.Helper()
	return script.Parse("t.txt", src, token.Vanilla, 0, nil)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"900.1.1", Date{900, 1, 1, true}, true},
		{"1.6.15", Date{1, 6, 15, true}, true},
		{"garbage", Date{}, false},
		{"", Date{}, false},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.in)
		if ok != c.ok {
			t.Fatalf("ParseDate(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ParseDate(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestDateBefore(t *testing.T) {
	cutoff, _ := ParseDate("900.1.1")
	early, _ := ParseDate("800.1.1")
	late, _ := ParseDate("950.6.1")

	if !early.Before(cutoff) {
		t.Error("expected 800.1.1 to be before 900.1.1")
	}
	if late.Before(cutoff) {
		t.Error("expected 950.6.1 to not be before 900.1.1")
	}

	unsetCutoff := Date{}
	if early.Before(unsetCutoff) {
		t.Error("an unset cutoff should never exclude anything")
	}
}

func TestLoadTrait_RegistersOppositeFlags(t *testing.T) {
	root := parseTestBlock(t, `
brave = {
	opposites = { craven }
}
`)
	cat := New()
	env := &LoadEnv{Catalog: cat, Variant: gamevariant.Dynasty, Sink: &diag.Collecting{}}

	field, _ := root.FieldNamed("brave")
	nested, _ := field.Value.AsBlock()
	loadTrait(env, field.Key, nested)

	if !cat.Exists(Trait, "brave") {
		t.Fatal("expected brave to be registered")
	}
	if !cat.HasFlag(Trait, "brave", "opposite:craven") {
		t.Fatal("expected the opposite flag to be recorded")
	}
}

func TestLoadLandedTitle_RecursesNestedTiers(t *testing.T) {
	root := parseTestBlock(t, `
e_empire = {
	k_kingdom = {
		d_duchy = {
			color = { 1 2 3 }
		}
	}
}
`)
	cat := New()
	env := &LoadEnv{Catalog: cat, Variant: gamevariant.Dynasty, Sink: &diag.Collecting{}}

	field, _ := root.FieldNamed("e_empire")
	nested, _ := field.Value.AsBlock()
	loadLandedTitle(env, field.Key, nested)

	for _, key := range []string{"e_empire", "k_kingdom", "d_duchy"} {
		if !cat.Exists(LandedTitle, key) {
			t.Errorf("expected %s to be registered", key)
		}
	}
}

func TestLoadEventInNamespace_MatchingPrefixRegistersWithBody(t *testing.T) {
	root := parseTestBlock(t, `
foo.1 = {
	trigger = { always = yes }
}
`)
	cat := New()
	env := &LoadEnv{Catalog: cat, Variant: gamevariant.Dynasty, Sink: &diag.Collecting{}}

	field, _ := root.FieldNamed("foo.1")
	nested, _ := field.Value.AsBlock()
	LoadEventInNamespace(env, field.Key, nested, "foo")

	def, ok := cat.Get(Event, "foo.1")
	if !ok {
		t.Fatal("expected foo.1 to be registered")
	}
	if def.Block == nil {
		t.Error("a namespace-matching event should keep its block for validation")
	}
}

func TestLoadEventInNamespace_MismatchedPrefixReportsAndSkipsBody(t *testing.T) {
	root := parseTestBlock(t, `
bar.1 = {
	trigger = { always = yes }
}
`)
	cat := New()
	sink := &diag.Collecting{}
	env := &LoadEnv{Catalog: cat, Variant: gamevariant.Dynasty, Sink: sink}

	field, _ := root.FieldNamed("bar.1")
	nested, _ := field.Value.AsBlock()
	LoadEventInNamespace(env, field.Key, nested, "foo")

	found := sink.ByKey(diag.KeyEventNamespace)
	if len(found) != 1 {
		t.Fatalf("got %d EventNamespace diagnostics, want 1: %+v", len(found), sink.Diagnostics)
	}
	if found[0].Message != "Event name should start with namespace" {
		t.Errorf("unexpected message %q", found[0].Message)
	}

	def, ok := cat.Get(Event, "bar.1")
	if !ok {
		t.Fatal("expected bar.1 to still be registered so cross-references resolve")
	}
	if def.Block != nil {
		t.Error("a namespace-mismatched event must not carry a block for validation to walk")
	}
}

func TestValidateTechnologies_FlagsUnknownPrerequisite(t *testing.T) {
	root := parseTestBlock(t, `
steam_engine = {
	path = { nonexistent_tech }
}
`)
	cat := New()
	sink := &diag.Collecting{}
	env := &LoadEnv{Catalog: cat, Variant: gamevariant.Commonwealth, Sink: sink}

	field, _ := root.FieldNamed("steam_engine")
	nested, _ := field.Value.AsBlock()
	loadTechnology(env, field.Key, nested)
	cat.Freeze()

	ValidateTechnologies(env)

	if len(sink.ByKey(diag.KeyMissingItem)) != 1 {
		t.Fatalf("expected one MissingItem diagnostic, got %+v", sink.Diagnostics)
	}
}
