package script

import (
	"fmt"

	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/token"
	sgunicode "github.com/hallowmark/scriptguard/internal/unicode"
)

// Parse lexes and parses one file's contents into a synthetic root Block
// whose Items are the file's top-level fields and bare values. Parse errors
// never abort the pass: each one is reported to sink as a KeyParseError
// diagnostic and the parser recovers at the next unmatched '}' or EOF, so a
// single malformed block costs at most its own contents.
func Parse(file, src string, kind token.OverlayKind, modLayer int, sink diag.Sink) *Block {
	lx := newLexer(file, src, kind, modLayer)
	var lexemes []lexeme
	for {
		lm, ok := lx.next()
		if !ok {
			break
		}
		lexemes = append(lexemes, lm)
	}
	p := &parser{lexemes: lexemes, sink: sink}
	root := &Block{Loc: token.Location{File: file, Line: 1, Column: 1, Kind: kind, ModLayer: modLayer}}
	for {
		p.parseItems(root, 0)
		lm, ok := p.peek()
		if !ok {
			return root
		}
		// A '}' at the top level has no opening brace to match; report and
		// discard it, then keep parsing whatever follows.
		p.errf(lm.loc, "unmatched %q at top level", lm.text)
		p.advance()
	}
}

type parser struct {
	lexemes []lexeme
	pos     int
	sink    diag.Sink
}

func (p *parser) atEnd() bool { return p.pos >= len(p.lexemes) }

func (p *parser) peek() (lexeme, bool) {
	if p.atEnd() {
		return lexeme{}, false
	}
	return p.lexemes[p.pos], true
}

func (p *parser) advance() lexeme {
	lm := p.lexemes[p.pos]
	p.pos++
	return lm
}

func (p *parser) errf(loc token.Location, format string, args ...any) {
	if p.sink == nil {
		return
	}
	p.sink.Report(diag.Diagnostic{
		Severity:   diag.Error,
		Confidence: diag.Strong,
		Key:        diag.KeyParseError,
		Loc:        loc,
		Message:    fmt.Sprintf(format, args...),
	})
}

// checkEncoding scans a quoted string literal's text for Unicode that
// renders invisibly or misleadingly and reports one diagnostic per threat
// found. Bare words and numbers are never scanned; the dialect's keys and
// operators are ASCII by construction, so the only place a mod author's
// pasted text lands is inside quotes.
func (p *parser) checkEncoding(tok token.Token) {
	if p.sink == nil || tok.Kind != token.Quoted {
		return
	}
	result := sgunicode.Scan(tok.Text)
	if result.Clean {
		return
	}
	for _, threat := range result.Threats {
		severity := diag.Warning
		if threat.Severity == "audit" {
			severity = diag.Advice
		}
		p.sink.Report(diag.Diagnostic{
			Severity:   severity,
			Confidence: diag.Reasonable,
			Key:        diag.KeyEncoding,
			Loc:        tok.Loc,
			Message:    fmt.Sprintf("%s: %s", threat.Category, threat.Description),
			Info:       threat.Codepoint,
		})
	}
}

// parseItems fills block with fields and bare values until it sees a
// closing brace at this depth or runs out of lexemes. depth is used only to
// produce a clearer recovery message; the recursion itself tracks nesting
// structurally via the call stack.
func (p *parser) parseItems(block *Block, depth int) {
	for {
		lm, ok := p.peek()
		if !ok {
			return // EOF: fine at depth 0, a caller at depth>0 already reported unclosed block
		}
		switch lm.kind {
		case lexCloseBrace:
			return // caller consumes it
		case lexComparator:
			// A comparator with no preceding key: recover by discarding it.
			p.errf(lm.loc, "unexpected %q with no preceding key", lm.text)
			p.advance()
			p.recover(depth)
			continue
		case lexOpenBrace:
			// A bare nested block (no key): parse it as a bare BlockValue.
			nested := p.parseBraceBlock(depth)
			block.Items = append(block.Items, Item{
				Value:     BlockValue{Block: nested},
				BareValue: token.Token{},
			})
			continue
		default:
			p.parseItemStartingWith(block, lm, depth)
		}
	}
}

// parseItemStartingWith consumes one field-or-bare-value item beginning
// with a word/quoted/number/date lexeme already confirmed present at
// p.pos+0 (via peek in the caller).
func (p *parser) parseItemStartingWith(block *Block, first lexeme, depth int) {
	p.advance() // consume first
	firstTok := token.New(first.text, lexKindToTokenKind(first.kind), first.loc)
	p.checkEncoding(firstTok)

	next, ok := p.peek()
	if !ok || next.kind != lexComparator {
		// Bare value: a list element or directive with no key.
		block.Items = append(block.Items, Item{BareValue: firstTok})
		return
	}
	comp, _ := comparatorFromText(next.text)
	p.advance() // consume comparator

	val, ok := p.peek()
	if !ok {
		p.errf(next.loc, "field %q has no value before end of file", first.text)
		return
	}
	if val.kind == lexCloseBrace || val.kind == lexComparator {
		p.errf(val.loc, "field %q has no value", first.text)
		return
	}

	if val.kind == lexOpenBrace {
		nested := p.parseBraceBlock(depth)
		block.Items = append(block.Items, Item{
			Key: firstTok, HasKey: true, Comp: comp,
			Value: BlockValue{Block: nested},
		})
		return
	}

	p.advance()
	valTok := token.New(val.text, lexKindToTokenKind(val.kind), val.loc)
	p.checkEncoding(valTok)
	block.Items = append(block.Items, Item{
		Key: firstTok, HasKey: true, Comp: comp,
		Value: TokenValue{Token: valTok},
	})
}

// parseBraceBlock consumes a '{' already peeked at p.pos, parses its
// contents, and consumes the matching '}' — reporting and recovering if one
// never appears.
func (p *parser) parseBraceBlock(depth int) *Block {
	open := p.advance() // the '{'
	nested := &Block{Loc: open.loc}
	p.parseItems(nested, depth+1)
	if lm, ok := p.peek(); ok && lm.kind == lexCloseBrace {
		p.advance()
	} else {
		p.errf(open.loc, "block opened here is never closed")
	}
	return nested
}

// recover discards lexemes until the next '}' at this depth (left for the
// caller to consume) or EOF, per the "resynchronize at the next brace
// boundary" contract.
func (p *parser) recover(depth int) {
	for {
		lm, ok := p.peek()
		if !ok {
			return
		}
		if lm.kind == lexCloseBrace {
			return
		}
		if lm.kind == lexOpenBrace {
			// Skip a whole nested block while resynchronizing.
			p.advance()
			p.skipBalanced()
			continue
		}
		p.advance()
	}
}

// skipBalanced discards lexemes up to and including the '}' matching a '{'
// already consumed by the caller.
func (p *parser) skipBalanced() {
	depth := 1
	for depth > 0 {
		lm, ok := p.peek()
		if !ok {
			return
		}
		p.advance()
		switch lm.kind {
		case lexOpenBrace:
			depth++
		case lexCloseBrace:
			depth--
		}
	}
}
