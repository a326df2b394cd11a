package scope

import (
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/token"
)

// entry is one stack slot: the inferred set plus the token that caused the
// inference, carried so a later narrowing failure can point at both sites.
type entry struct {
	set    Set
	reason token.Token
}

type namedEntry struct {
	set    Set
	reason token.Token
	depth  int // len(opens) at definition time; purged when that frame closes
}

type openKind int

const (
	openScopeFrame openKind = iota
	openBuilderFrame
)

type frame struct {
	kind         openKind
	savedCurrent entry
}

// Context is the per-validation-stack symbolic type tracker described by
// the scope-context contract: a current/previous/root stack, a named-scope
// table, a named-list table, and builder-mode bracketing for dotted scope
// chains.
type Context struct {
	current entry
	prev    []entry
	root    entry

	named map[string]namedEntry
	lists map[string]int // name -> depth at which it was defined

	opens     []frame
	inBuilder bool

	sink diag.Sink
}

// New creates a fresh context whose current, previous, and root all equal
// the given root set and reason.
func New(rootSet Set, rootReason token.Token, sink diag.Sink) *Context {
	e := entry{set: rootSet, reason: rootReason}
	return &Context{current: e, prev: []entry{e}, root: e, named: map[string]namedEntry{}, lists: map[string]int{}, sink: sink}
}

// Scopes returns the current scope set.
func (c *Context) Scopes() Set { return c.current.set }

// Root returns the root scope set established at New.
func (c *Context) Root() Set { return c.root.set }

// Expect narrows current to current ∩ set. set.IsNone() is a no-op. If the
// intersection is empty, it reports a two-location Scopes diagnostic
// pairing the existing reason with the new one and leaves current
// unchanged (so callers can keep validating without cascading failures).
func (c *Context) Expect(set Set, reason token.Token) {
	if set.IsNone() {
		return
	}
	narrowed := c.current.set.Intersect(set)
	if narrowed != none {
		c.current.set = narrowed
		return
	}
	if c.sink == nil {
		return
	}
	c.sink.Report(diag.Diagnostic{
		Severity:   diag.Error,
		Confidence: diag.Strong,
		Key:        diag.KeyScopes,
		Loc:        reason.Loc,
		Secondary: &diag.SecondaryLocation{
			Loc:     c.current.reason.Loc,
			Message: "scope was set to " + c.current.set.String() + " here",
		},
		Message: "produces " + c.current.set.String() + " but expected " + set.String(),
	})
}

// Replace overwrites current in place — used while building a dotted scope
// chain, where each part transitions the running subject without pushing a
// new stack frame.
func (c *Context) Replace(set Set, reason token.Token) {
	c.current = entry{set: set, reason: reason}
}

// ReplaceRoot overwrites the root entry (used by the handful of constructs
// that redefine what "root" means partway through a chain, e.g. scripted
// value parameter binding against a different anchor).
func (c *Context) ReplaceRoot(set Set, reason token.Token) {
	c.root = entry{set: set, reason: reason}
}

// ReplacePrev overwrites the most recent entry on the previous-chain, or is
// a no-op if the chain is empty (a Context not built by New). With no
// enclosing open_scope, the most recent entry is the one New seeded.
func (c *Context) ReplacePrev(set Set, reason token.Token) {
	if len(c.prev) == 0 {
		return
	}
	c.prev[len(c.prev)-1] = entry{set: set, reason: reason}
}

// ReplaceThis is an alias for Replace: "this" always refers to the current
// entry, so redefining this and redefining current are the same operation.
func (c *Context) ReplaceThis(set Set, reason token.Token) { c.Replace(set, reason) }

// OpenBuilder begins a tentative scope-chain sequence. Replace calls made
// while in builder mode update the same current entry that FinalizeBuilder
// eventually commits; Close after FinalizeBuilder is a pure bookkeeping pop.
func (c *Context) OpenBuilder() {
	c.opens = append(c.opens, frame{kind: openBuilderFrame, savedCurrent: c.current})
	c.inBuilder = true
}

// FinalizeBuilder ends the tentative phase of a builder sequence. It must
// be called before any nested validation begins; calling it twice or
// without a matching OpenBuilder is a programming error.
func (c *Context) FinalizeBuilder() {
	if !c.inBuilder {
		panic("scope: FinalizeBuilder called without a matching OpenBuilder")
	}
	c.inBuilder = false
}

// OpenScope pushes current onto the previous-chain and begins a new current
// with the given set and reason — used when an iterator or control
// construct enters a nested block whose implicit subject differs from its
// parent's.
func (c *Context) OpenScope(set Set, reason token.Token) {
	c.opens = append(c.opens, frame{kind: openScopeFrame, savedCurrent: c.current})
	c.prev = append(c.prev, c.current)
	c.current = entry{set: set, reason: reason}
}

// Close pops the most recently opened frame, whether it came from
// OpenScope or OpenBuilder. For a scope frame it restores current and the
// previous-chain to their state before the matching OpenScope; for a
// builder frame it leaves current as committed by FinalizeBuilder. Calling
// Close with no open frame, or before a builder's FinalizeBuilder, is a
// programming error.
func (c *Context) Close() {
	if len(c.opens) == 0 {
		panic("scope: Close called with no matching open_*")
	}
	top := c.opens[len(c.opens)-1]
	c.opens = c.opens[:len(c.opens)-1]
	newDepth := len(c.opens)

	switch top.kind {
	case openScopeFrame:
		c.current = top.savedCurrent
		if len(c.prev) > 0 {
			c.prev = c.prev[:len(c.prev)-1]
		}
	case openBuilderFrame:
		if c.inBuilder {
			panic("scope: Close called on a builder frame before FinalizeBuilder")
		}
	}

	for name, e := range c.named {
		if e.depth > newDepth {
			delete(c.named, name)
		}
	}
	for name, depth := range c.lists {
		if depth > newDepth {
			delete(c.lists, name)
		}
	}
}

// SaveCurrentScope records the current entry under name, visible to sibling
// fields until the enclosing block (the frame open when this was called)
// closes.
func (c *Context) SaveCurrentScope(name string) {
	c.named[name] = namedEntry{set: c.current.set, reason: c.current.reason, depth: len(c.opens)}
}

// DefineNameToken records an explicit set under name at the given token,
// independent of the current entry (used by effects like
// save_scope_value that compute a set directly rather than from current).
func (c *Context) DefineNameToken(name string, set Set, reason token.Token) {
	c.named[name] = namedEntry{set: set, reason: reason, depth: len(c.opens)}
}

// ExistsScope reports whether name has been saved and is presently visible.
func (c *Context) ExistsScope(name string) bool {
	_, ok := c.named[name]
	return ok
}

// ReplaceNamedScope sets current to the set saved under name, as if the
// scope chain had transitioned into it (`scope:name` usage). It reports
// false and leaves current unchanged if name isn't visible — callers
// should check ExistsScope first to decide whether to emit their own
// MissingItem-shaped diagnostic at the use site.
func (c *Context) ReplaceNamedScope(name string, useTok token.Token) bool {
	e, ok := c.named[name]
	if !ok {
		return false
	}
	c.current = entry{set: e.set, reason: useTok}
	return true
}

// DefineOrExpectList marks name as a defined temporary list, visible until
// the enclosing frame closes.
func (c *Context) DefineOrExpectList(name string) {
	c.lists[name] = len(c.opens)
}

// ExpectList reports whether name has been defined as a temporary list.
func (c *Context) ExpectList(name string) bool {
	_, ok := c.lists[name]
	return ok
}

// MustBe reports whether current is entirely contained in set (every
// possible runtime type satisfies it).
func (c *Context) MustBe(set Set) bool {
	return c.current.set != none && c.current.set&^set == none
}

// CanBe reports whether current and set overlap at all.
func (c *Context) CanBe(set Set) bool {
	return c.current.set.Intersect(set) != none
}

// Reason returns the token that caused the current entry's inference, for
// callers building their own two-location diagnostics outside Expect.
func (c *Context) Reason() token.Token { return c.current.reason }
