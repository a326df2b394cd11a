package catalog

import (
	"testing"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/token"
)

func loc(kind token.OverlayKind, layer int) token.Location {
	return token.Location{File: "t.txt", Line: 1, Column: 1, Kind: kind, ModLayer: layer}
}

func keyTok(text string, l token.Location) token.Token {
	return token.New(text, token.Bare, l)
}

func TestExistsAfterRegister(t *testing.T) {
	c := New()
	c.Register(Character, "alice", keyTok("alice", loc(token.Vanilla, 0)), &script.Block{}, nil)
	if !c.Exists(Character, "alice") {
		t.Fatal("expected alice to exist after registration")
	}
	if c.Exists(Character, "bob") {
		t.Fatal("expected bob to not exist")
	}
}

func TestHigherOverlayShadowsSilently(t *testing.T) {
	c := New()
	sink := &diag.Collecting{}
	vanillaBlock := &script.Block{}
	modBlock := &script.Block{}
	c.Register(Character, "alice", keyTok("alice", loc(token.Vanilla, 0)), vanillaBlock, sink)
	c.Register(Character, "alice", keyTok("alice", loc(token.Mod, 1)), modBlock, sink)

	if len(sink.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics from shadowing, got %+v", sink.Diagnostics)
	}
	def, _ := c.Get(Character, "alice")
	if def.Block != modBlock {
		t.Error("expected the mod definition to win")
	}
}

func TestSameOverlayDuplicateReportsOneDiagnostic(t *testing.T) {
	c := New()
	sink := &diag.Collecting{}
	c.Register(Character, "alice", keyTok("alice", loc(token.Mod, 1)), &script.Block{}, sink)
	c.Register(Character, "alice", keyTok("alice", loc(token.Mod, 1)), &script.Block{}, sink)

	dups := sink.ByKey(diag.KeyDuplicateItem)
	if len(dups) != 1 {
		t.Fatalf("got %d duplicate diagnostics, want 1", len(dups))
	}
	if dups[0].Secondary == nil {
		t.Error("expected a secondary location pointing at the first definition")
	}
}

func TestLowerOverlayNeverDisplacesHigher(t *testing.T) {
	c := New()
	modBlock := &script.Block{}
	c.Register(Character, "alice", keyTok("alice", loc(token.Mod, 1)), modBlock, nil)
	c.Register(Character, "alice", keyTok("alice", loc(token.Vanilla, 0)), &script.Block{}, nil)

	def, _ := c.Get(Character, "alice")
	if def.Block != modBlock {
		t.Error("expected the earlier mod definition to remain despite a later vanilla Register call")
	}
}

func TestVerifyExistsMissingReportsMissingItem(t *testing.T) {
	c := New()
	sink := &diag.Collecting{}
	bobTok := keyTok("bob", loc(token.Mod, 0))
	if ok := c.VerifyExists(Character, bobTok, sink); ok {
		t.Fatal("expected bob to be missing")
	}
	missing := sink.ByKey(diag.KeyMissingItem)
	if len(missing) != 1 {
		t.Fatalf("got %d MissingItem diagnostics, want 1", len(missing))
	}
	if missing[0].Severity != diag.Error {
		t.Errorf("got severity %v, want Error (Character's default)", missing[0].Severity)
	}
}

func TestVerifyExistsGenderMismatchReportsWrongGender(t *testing.T) {
	c := New()
	sink := &diag.Collecting{}
	carolBlock := &script.Block{Items: []script.Item{
		{Key: token.New("female", token.Bare, loc(token.Mod, 0)), HasKey: true,
			Value: script.TokenValue{Token: token.New("yes", token.Bare, loc(token.Mod, 0))}},
	}}
	c.Register(Character, "carol", keyTok("carol", loc(token.Mod, 0)), carolBlock, sink)

	carolTok := keyTok("carol", loc(token.Mod, 0))
	if ok := c.VerifyExistsGender(Character, carolTok, false, sink); ok {
		t.Fatal("expected a gender mismatch (carol is female, wanted male)")
	}
	wrong := sink.ByKey(diag.KeyWrongGender)
	if len(wrong) != 1 {
		t.Fatalf("got %d WrongGender diagnostics, want 1", len(wrong))
	}
	if wrong[0].Message != "character is not male" {
		t.Errorf("got message %q", wrong[0].Message)
	}
}
