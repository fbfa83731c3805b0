// Package scanner provides the binary scanner (iterating an
// intermediate-code stream.Stream) and the source scanner (tokenizing raw
// text via a langdef.Definition), sharing the same current-token/peek/
// pushback contract so a parser driver can treat either as a Scanner.
package scanner

import (
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/stream"
	"github.com/circusmachina/libs-parsing/token"
)

// Flags control whitespace and line-ending policy. The default is
// NoWhitespace|ConsolidateWhitespace, matching ava12/llx.Lexer's "every
// byte belongs to some lexeme, insignificant ones get dropped" default.
type Flags uint8

const (
	// NoWhitespace discards SPACE-category tokens: the current token is
	// never of category SPACE.
	NoWhitespace Flags = 1 << iota

	// ConsolidateWhitespace combines runs of SPACE tokens into one.
	// Ignored if NoWhitespace is set.
	ConsolidateWhitespace

	// ConsolidateLineEndings combines runs of line endings into one
	// LineEnding token carrying the summed line count.
	ConsolidateLineEndings
)

// DefaultFlags matches the scanner's documented default behavior.
const DefaultFlags = NoWhitespace | ConsolidateWhitespace

// BinaryScanner iterates tokens read from a binary intermediate-code
// stream, applying whitespace/line-ending policy per Flags.
type BinaryScanner struct {
	stream  stream.Stream
	line    int
	current token.Token
	flags   Flags
}

// NewBinaryScanner creates a scanner over s and loads its first token, so
// that immediately after construction Current() already holds a token (or
// the EOS sentinel if s is empty).
func NewBinaryScanner(s stream.Stream, flags Flags) (*BinaryScanner, error) {
	bs := &BinaryScanner{stream: s, line: 1, flags: flags}
	if err := bs.Next(); err != nil {
		return nil, err
	}
	return bs, nil
}

// Current returns the scanner's current token.
func (bs *BinaryScanner) Current() token.Token { return bs.current }

// LineNumber returns the 1-based line the scanner is currently positioned
// at; after scanning input with n line terminators, LineNumber() == 1+n.
func (bs *BinaryScanner) LineNumber() int { return bs.line }

// SourceName identifies the underlying stream for diagnostics.
func (bs *BinaryScanner) SourceName() string { return bs.stream.Name() }

// Continues reports whether there is more to scan: the current token is
// non-nil and not the EOS sentinel.
func (bs *BinaryScanner) Continues() bool {
	return bs.current != nil && bs.current.Opcode() != opcode.EOS
}

func (bs *BinaryScanner) atEnd() bool {
	return bs.current != nil && bs.current.Opcode() == opcode.EOS
}

// Next advances the scanner, applying the configured whitespace and
// line-ending policy. Once EOS is reached it is sticky: Next becomes a
// no-op (see package scanner's binary contract, spec Design Note 9).
func (bs *BinaryScanner) Next() error {
	if bs.atEnd() {
		return nil
	}

	var eolAccum int32
	for {
		tok, err := token.ReadFrom(bs.stream)
		if err != nil {
			return err
		}

		switch tok.Category() {
		case opcode.CategorySpace:
			if bs.flags&NoWhitespace != 0 {
				continue
			}
			if bs.flags&ConsolidateWhitespace != 0 {
				same, perr := bs.peekIsCategory(opcode.CategorySpace)
				if perr != nil {
					return perr
				}
				if same {
					continue
				}
			}
			bs.current = tok
			return nil

		case opcode.CategoryEOL:
			count := int32(1)
			if le, ok := tok.(*token.LineEnding); ok {
				count = le.LineCount
			}
			eolAccum += count
			bs.line += int(count)

			if bs.flags&ConsolidateLineEndings != 0 {
				same, perr := bs.peekIsCategory(opcode.CategoryEOL)
				if perr != nil {
					return perr
				}
				if same {
					continue
				}
			}
			bs.current = token.NewLineEnding(eolAccum)
			return nil

		default:
			bs.current = tok
			return nil
		}
	}
}

// Peek reads the next token without updating the current-token state, then
// returns it to the stream.
func (bs *BinaryScanner) Peek() (token.Token, error) {
	tok, err := token.ReadFrom(bs.stream)
	if err != nil {
		return nil, err
	}
	if err := tok.ReturnTo(bs.stream); err != nil {
		return nil, err
	}
	return tok, nil
}

func (bs *BinaryScanner) peekIsCategory(cat opcode.Opcode) (bool, error) {
	tok, err := bs.Peek()
	if err != nil {
		return false, err
	}
	return tok.Category() == cat, nil
}

// ReturnToken rewinds the stream past tok's payload.
func (bs *BinaryScanner) ReturnToken(tok token.Token) error {
	return tok.ReturnTo(bs.stream)
}

// Rewind returns the current token to the stream and clears it.
func (bs *BinaryScanner) Rewind() error {
	if bs.current == nil {
		return nil
	}
	err := bs.current.ReturnTo(bs.stream)
	bs.current = nil
	return err
}
