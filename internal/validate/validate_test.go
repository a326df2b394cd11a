package validate

import (
	"testing"

	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/token"
)

// block parses src as the body of a single top-level field and returns that
// field's nested block, so every test can write plain script source instead
// of constructing script.Block/Item values by hand.
func block(t *testing.T, src string) *script.Block {
	t.Helper()
	sink := &diag.Collecting{}
	root := script.Parse("t.txt", "body = {\n"+src+"\n}", token.Mod, 0, sink)
	field, ok := root.FieldNamed("body")
	if !ok {
		t.Fatalf("setup: failed to parse body block from %q", src)
	}
	b, ok := field.Value.AsBlock()
	if !ok {
		t.Fatalf("setup: body value is not a block")
	}
	return b
}

// newFixtureCatalog builds a small catalog with one entry of each kind the
// validate package tests need to resolve cross-references against. It is
// returned unfrozen so the macro tests can register scripted triggers on
// it; newEnv freezes it.
func newFixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	loc := token.Location{File: "fixture.txt", Line: 1, Kind: token.Vanilla, ModLayer: 0}
	keyTok := func(text string) token.Token { return token.New(text, token.Bare, loc) }

	cat.Register(catalog.Trait, "brave", keyTok("brave"), &script.Block{}, nil)
	cat.Register(catalog.Culture, "saxon", keyTok("saxon"), &script.Block{}, nil)
	cat.Register(catalog.Faith, "catholic", keyTok("catholic"), &script.Block{}, nil)
	cat.Register(catalog.LandedTitle, "k_england", keyTok("k_england"), &script.Block{}, nil)
	cat.Register(catalog.Event, "test.1", keyTok("test.1"), &script.Block{}, nil)

	femaleBlock := &script.Block{Items: []script.Item{
		{Key: token.New("female", token.Bare, loc), HasKey: true,
			Value: script.TokenValue{Token: token.New("yes", token.Bare, loc)}},
	}}
	cat.Register(catalog.Character, "alys", keyTok("alys"), femaleBlock, nil)

	maleBlock := &script.Block{Items: []script.Item{
		{Key: token.New("female", token.Bare, loc), HasKey: true,
			Value: script.TokenValue{Token: token.New("no", token.Bare, loc)}},
	}}
	cat.Register(catalog.Character, "cedric", keyTok("cedric"), maleBlock, nil)

	return cat
}

func newEnv(t *testing.T, sink diag.Sink) *Env {
	t.Helper()
	cat := newFixtureCatalog(t)
	cat.Freeze()
	return NewEnv(cat, gamevariant.Dynasty, sink)
}

func newCtx(sink diag.Sink) *scope.Context {
	return scope.New(scope.Character, token.New("root", token.Bare, token.Location{File: "t.txt", Line: 1}), sink)
}
