package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/circusmachina/libs-parsing/diagnostics"
	"github.com/circusmachina/libs-parsing/langdef"
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/stream"
	"github.com/circusmachina/libs-parsing/symbol"
	"github.com/circusmachina/libs-parsing/token"
)

// SourceScanner tokenizes raw text via a langdef.Definition rather than
// reading prepacked binary tokens, but otherwise honors the same
// current-token/peek/pushback contract as BinaryScanner.
//
// Each call into the underlying fetch reads one maximal run of
// same-class characters (a run of digits, a run of letters, a run of line
// terminators when ConsolidateLineEndings is set, ...), so the text-level "signal consolidation to the token
// before it reads its run" hook described by the scanner contract is
// realized here as reading the whole run up front rather than as a
// separate method call on the token.
type SourceScanner struct {
	stream  stream.Stream
	lang    *langdef.Definition
	line    int
	current token.Token
	flags   Flags
}

// NewSourceScanner creates a scanner tokenizing s according to lang, and
// loads the first token.
func NewSourceScanner(s stream.Stream, lang *langdef.Definition, flags Flags) (*SourceScanner, error) {
	ss := &SourceScanner{stream: s, lang: lang, line: 1, flags: flags}
	if err := ss.Next(); err != nil {
		return nil, err
	}
	return ss, nil
}

func (ss *SourceScanner) Current() token.Token { return ss.current }
func (ss *SourceScanner) LineNumber() int      { return ss.line }
func (ss *SourceScanner) SourceName() string   { return ss.stream.Name() }

func (ss *SourceScanner) Continues() bool {
	return ss.current != nil && ss.current.Opcode() != opcode.EOS
}

func (ss *SourceScanner) atEnd() bool {
	return ss.current != nil && ss.current.Opcode() == opcode.EOS
}

// Next advances the scanner by fetching the next lexeme from text. EOS is
// sticky, as in BinaryScanner.
func (ss *SourceScanner) Next() error {
	if ss.atEnd() {
		return nil
	}

	for {
		tok, err := ss.fetch()
		if err != nil {
			return err
		}

		if tok.Category() == opcode.CategorySpace && ss.flags&NoWhitespace != 0 {
			continue
		}

		if le, ok := tok.(*token.LineEnding); ok {
			ss.line += int(le.LineCount)
		}

		ss.current = tok
		return nil
	}
}

// Peek reads the next lexeme without updating the current-token state.
func (ss *SourceScanner) Peek() (token.Token, error) {
	tok, err := ss.fetch()
	if err != nil {
		return nil, err
	}
	if err := tok.ReturnTo(ss.stream); err != nil {
		return nil, err
	}
	return tok, nil
}

func (ss *SourceScanner) ReturnToken(tok token.Token) error {
	return tok.ReturnTo(ss.stream)
}

func (ss *SourceScanner) Rewind() error {
	if ss.current == nil {
		return nil
	}
	err := ss.current.ReturnTo(ss.stream)
	ss.current = nil
	return err
}

// byte classification helpers.

func isLineEnd(b byte) bool   { return b == '\n' || b == '\r' }
func isSpace(b byte) bool     { return b == ' ' || b == '\t' }
func isDigit(b byte) bool     { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return b == '_' || unicode.IsLetter(rune(b))
}
func isIdentPart(b byte) bool {
	return b == '_' || isDigit(b) || unicode.IsLetter(rune(b))
}

func (ss *SourceScanner) readByte() (byte, bool, error) {
	var buf [1]byte
	n, err := ss.stream.Read(buf[:])
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

func (ss *SourceScanner) unreadByte() error {
	return ss.stream.RewindBy(1)
}

// fetch reads exactly one token-worth of text, returning a StreamEnding
// sentinel once the stream reports HasEnded.
func (ss *SourceScanner) fetch() (token.Token, error) {
	if ss.stream.HasEnded() {
		return token.NewStreamEnding(), nil
	}

	b, ok, err := ss.readByte()
	if err != nil {
		return nil, err
	}
	if !ok {
		return token.NewStreamEnding(), nil
	}

	switch {
	case isLineEnd(b):
		return ss.fetchLineEnding(b)
	case isSpace(b):
		return ss.fetchSpace()
	case isIdentStart(b):
		return ss.fetchIdentifier(b)
	case isDigit(b):
		return ss.fetchNumber(b)
	case b == '"':
		return ss.fetchString()
	default:
		return ss.fetchOperator(b)
	}
}

func (ss *SourceScanner) fetchLineEnding(first byte) (token.Token, error) {
	count := int32(0)
	b := first
	for {
		if b == '\n' {
			count++
		} else if b == '\r' {
			// count a lone '\r' as a line; a following '\n' is treated as
			// part of the same CRLF terminator, not counted again.
			nb, ok, err := ss.readByte()
			if err != nil {
				return nil, err
			}
			if ok && nb != '\n' {
				if err := ss.unreadByte(); err != nil {
					return nil, err
				}
			}
			count++
		}

		if ss.flags&ConsolidateLineEndings == 0 {
			break
		}

		nb, ok, err := ss.readByte()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !isLineEnd(nb) {
			if err := ss.unreadByte(); err != nil {
				return nil, err
			}
			break
		}
		b = nb
	}
	return token.NewLineEnding(count), nil
}

func (ss *SourceScanner) fetchSpace() (token.Token, error) {
	for {
		nb, ok, err := ss.readByte()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !isSpace(nb) {
			if err := ss.unreadByte(); err != nil {
				return nil, err
			}
			break
		}
	}
	return token.NewGeneric(opcode.CategorySpace), nil
}

func (ss *SourceScanner) fetchIdentifier(first byte) (token.Token, error) {
	text := []byte{first}
	for {
		nb, ok, err := ss.readByte()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !isIdentPart(nb) {
			if err := ss.unreadByte(); err != nil {
				return nil, err
			}
			break
		}
		text = append(text, nb)
	}

	if op := ss.lang.Lookup(string(text)); op != 0 {
		return token.NewGeneric(op), nil
	}
	return token.NewSymbolic(opcode.CategoryIdentifier, symbol.NoRef), nil
}

func (ss *SourceScanner) fetchNumber(first byte) (token.Token, error) {
	seenDot := false
	for {
		nb, ok, err := ss.readByte()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if nb == '.' && !seenDot {
			seenDot = true
			continue
		}
		if !isDigit(nb) {
			if err := ss.unreadByte(); err != nil {
				return nil, err
			}
			break
		}
	}
	return token.NewSymbolic(opcode.CategoryNumber, symbol.NoRef), nil
}

func (ss *SourceScanner) fetchString() (token.Token, error) {
	for {
		nb, ok, err := ss.readByte()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, unterminatedStringError(ss)
		}
		if nb == '\\' {
			if _, _, err := ss.readByte(); err != nil {
				return nil, err
			}
			continue
		}
		if nb == '"' {
			break
		}
	}
	return token.NewSymbolic(opcode.CategoryString, symbol.NoRef), nil
}

// maxOperatorLen bounds the greedy longest-match search for multi-byte
// operators (e.g. "==", "<=").
const maxOperatorLen = 3

func (ss *SourceScanner) fetchOperator(first byte) (token.Token, error) {
	rest := make([]byte, 0, maxOperatorLen-1)
	for len(rest) < maxOperatorLen-1 {
		nb, ok, err := ss.readByte()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		rest = append(rest, nb)
	}

	candidate := append([]byte{first}, rest...)
	for l := len(candidate); l >= 1; l-- {
		if op := ss.lang.Lookup(string(candidate[:l])); op != 0 {
			unread := len(candidate) - l
			if unread > 0 {
				if err := ss.stream.RewindBy(unread); err != nil {
					return nil, err
				}
			}
			return token.NewGeneric(op), nil
		}
	}

	if len(rest) > 0 {
		if err := ss.stream.RewindBy(len(rest)); err != nil {
			return nil, err
		}
	}
	return nil, wrongCharError(ss, first)
}

func wrongCharError(ss *SourceScanner, b byte) error {
	r, _ := utf8.DecodeRune([]byte{b})
	return diagnostics.Format(diagnostics.ScanErrors, "unrecognized character %q (u+%x) in %s at line %d", r, r, ss.SourceName(), ss.LineNumber())
}

func unterminatedStringError(ss *SourceScanner) error {
	return diagnostics.Format(diagnostics.ScanErrors, "unterminated string literal in %s at line %d", ss.SourceName(), ss.LineNumber())
}
