// Package parser implements the recursive-descent driver: a layered
// Base/LanguageAware/SymbolAware stack providing token iteration, error
// recovery (resync/skip/skipOver), rule-driven looping, and two-phase
// symbol handling. Concrete grammars are left to client subclasses; this
// package drives none of its own.
package parser

import (
	"github.com/circusmachina/libs-parsing/diagnostics"
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/rule"
	"github.com/circusmachina/libs-parsing/token"
)

// Scanner is the iteration contract both scanner.BinaryScanner and
// scanner.SourceScanner satisfy; the parser driver depends on this
// interface rather than a concrete scanner type.
type Scanner interface {
	Current() token.Token
	LineNumber() int
	SourceName() string
	Continues() bool
	Next() error
	Peek() (token.Token, error)
	ReturnToken(token.Token) error
	Rewind() error
}

// Parseable is implemented by a concrete grammar built atop this package.
// LanguageAware.ParseUntil calls back into it through the Self field,
// since Go has no virtual dispatch from an embedded base struct.
type Parseable interface {
	// Parse consumes one grammar-level unit starting at the current
	// token, returning the number of syntax errors logged during the
	// call and a non-nil error only when a fatal error forced it to
	// return early.
	Parse() (int, error)
}

// Base is the bottom layer: a scanner, the current token pulled from it,
// a lookback token list, and a shared error log. A root Base (no parent)
// owns its scanner and log; a Base built with ForSource borrows both from
// its parent and shares its position in the same token stream.
type Base struct {
	scanner Scanner
	current token.Token
	tokens  *token.List
	log     *diagnostics.Log
	parent  *Base
}

// NewBase creates a root parser reading from s and logging to log.
func NewBase(s Scanner, log *diagnostics.Log) *Base {
	return &Base{
		scanner: s,
		current: s.Current(),
		tokens:  token.NewList(),
		log:     log,
	}
}

// ForSource creates a child parser that borrows parent's scanner and log,
// continuing from parent's current token. The child does not own either
// resource: destroying it releases nothing.
func ForSource(parent *Base) *Base {
	return &Base{
		scanner: parent.scanner,
		current: parent.current,
		tokens:  token.NewList(),
		log:     parent.log,
		parent:  parent,
	}
}

// Current returns the parser's current token.
func (b *Base) Current() token.Token { return b.current }

// Log returns the shared error log.
func (b *Base) Log() *diagnostics.Log { return b.log }

// SourceName implements diagnostics.SourcePos.
func (b *Base) SourceName() string { return b.scanner.SourceName() }

// Line implements diagnostics.SourcePos.
func (b *Base) Line() int { return b.scanner.LineNumber() }

// ReadyToParse reports whether the base preconditions hold: a scanner and
// a log are present. Subclasses extend this check with their own.
func (b *Base) ReadyToParse() bool {
	return b.scanner != nil && b.log != nil
}

// NextToken pushes the current token onto the lookback list, advances the
// underlying scanner, and adopts its new current token.
func (b *Base) NextToken() error {
	if b.current != nil {
		b.tokens.Push(b.current)
	}
	if err := b.scanner.Next(); err != nil {
		return err
	}
	b.current = b.scanner.Current()
	return nil
}

// PreviousToken returns the most recently consumed token, or (nil, false)
// if none has been consumed yet.
func (b *Base) PreviousToken() (token.Token, bool) {
	return b.tokens.Last()
}

// ResyncTo logs a syntax error at the current token's position, then
// advances until the current token is a member of r or the stream ends.
func (b *Base) ResyncTo(r *rule.Rule) error {
	b.log.SyntaxError(diagnostics.FormatPos(b, diagnostics.SyntaxErrors,
		"unexpected token"))
	return b.SkipTo(r, false)
}

// SkipTo advances like ResyncTo but without logging. When
// silenceIntervening is true, every skipped token is marked silenced
// before being dropped.
func (b *Base) SkipTo(r *rule.Rule, silenceIntervening bool) error {
	for b.current != nil && b.current.Opcode() != opcode.EOS && !r.Has(b.current.Opcode()) {
		if silenceIntervening {
			b.current.SetSilenced(true)
		}
		if err := b.NextToken(); err != nil {
			return err
		}
	}
	return nil
}

// SkipOver advances while the current token is a member of r, i.e. skips
// a run of in-rule tokens.
func (b *Base) SkipOver(r *rule.Rule, silenceIntervening bool) error {
	for b.current != nil && r.Has(b.current.Opcode()) {
		if silenceIntervening {
			b.current.SetSilenced(true)
		}
		if err := b.NextToken(); err != nil {
			return err
		}
	}
	return nil
}
