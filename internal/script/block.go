// Package script implements the lexer and block parser for the modding
// dialect: whitespace-separated tokens, '#' line comments, brace-delimited
// blocks, and KEY COMP VALUE fields. It produces a read-only AST that every
// other package treats as immutable.
package script

import "github.com/hallowmark/scriptguard/internal/token"

// Value is the right-hand side of a field, or a bare list element: either a
// single Token or a nested Block.
type Value interface {
	// Loc returns the location of the value's first token (for a Block,
	// the opening brace).
	Loc() token.Location
	// AsToken returns (token, true) if this value is a plain token.
	AsToken() (token.Token, bool)
	// AsBlock returns (block, true) if this value is a nested block.
	AsBlock() (*Block, bool)
}

// TokenValue wraps a single Token as a Value.
type TokenValue struct{ Token token.Token }

func (v TokenValue) Loc() token.Location               { return v.Token.Loc }
func (v TokenValue) AsToken() (token.Token, bool)       { return v.Token, true }
func (v TokenValue) AsBlock() (*Block, bool)            { return nil, false }

// BlockValue wraps a nested Block as a Value.
type BlockValue struct{ Block *Block }

func (v BlockValue) Loc() token.Location         { return v.Block.Loc }
func (v BlockValue) AsToken() (token.Token, bool) { return token.Token{}, false }
func (v BlockValue) AsBlock() (*Block, bool)      { return v.Block, true }

// Item is one entry in a Block: either a Field (KEY COMP VALUE) or a bare
// value (a token with no key, used as a list element or directive).
type Item struct {
	// Key is set for fields, zero-value for bare items.
	Key       token.Token
	HasKey    bool
	Comp      token.Comparator
	Value     Value
	BareValue token.Token // set when !HasKey
}

// IsField reports whether this item has a key.
func (it Item) IsField() bool { return it.HasKey }

// Block is an ordered sequence of Items, preserving source order and
// permitting duplicate keys — both are load-bearing for this dialect
// (e.g. repeated `trait = x` lines, or `if`/`else_if` chains that rely on
// adjacency).
type Block struct {
	Items []Item
	// Loc is the location of the opening brace (or, for the synthetic root
	// block of a file, the start of the file).
	Loc token.Location
	// DefiningKey is the key Token of the field whose value this block is,
	// if any — used to report "defined at" locations for item catalog
	// entries whose on-disk key is this block's enclosing field.
	DefiningKey token.Token
	HasDefiningKey bool
}

// Fields returns every Field item in the block, in source order.
func (b *Block) Fields() []Item {
	if b == nil {
		return nil
	}
	out := make([]Item, 0, len(b.Items))
	for _, it := range b.Items {
		if it.IsField() {
			out = append(out, it)
		}
	}
	return out
}

// FieldsNamed returns every Field item whose key text matches name, in
// source order. Duplicate keys are permitted by the dialect, so callers
// that expect at most one must check len() themselves.
func (b *Block) FieldsNamed(name string) []Item {
	if b == nil {
		return nil
	}
	var out []Item
	for _, it := range b.Items {
		if it.IsField() && it.Key.Is(name) {
			out = append(out, it)
		}
	}
	return out
}

// FieldNamed returns the first Field item with the given key, if any.
func (b *Block) FieldNamed(name string) (Item, bool) {
	if b == nil {
		return Item{}, false
	}
	for _, it := range b.Items {
		if it.IsField() && it.Key.Is(name) {
			return it, true
		}
	}
	return Item{}, false
}

// BareValues returns the text of every bare (keyless) item in the block, in
// source order — used for simple list blocks like `trait_track = { a b c }`.
func (b *Block) BareValues() []token.Token {
	if b == nil {
		return nil
	}
	var out []token.Token
	for _, it := range b.Items {
		if !it.IsField() {
			out = append(out, it.BareValue)
		}
	}
	return out
}
