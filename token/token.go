// Package token defines the token hierarchy — generic, symbolic,
// line-ending, stream-ending — and its binary streaming format.
//
// The intermediate code format is self-describing by opcode category: a
// reader inspects the category of the next opcode and constructs the
// matching token variant, then lets that variant read its own payload.
package token

import (
	"encoding/binary"

	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/stream"
	"github.com/circusmachina/libs-parsing/symbol"
)

// Token is the common interface satisfied by every token variant. silenced
// is a parser-local annotation, not persisted to the stream: it is used to
// suppress re-emission of consolidated or skipped tokens.
type Token interface {
	// Opcode returns the token's opcode.
	Opcode() opcode.Opcode

	// Category returns Opcode().Category().
	Category() opcode.Opcode

	// Silenced reports the token's current silenced flag.
	Silenced() bool

	// SetSilenced sets the silenced flag and returns its previous value.
	SetSilenced(bool) bool

	// PayloadSize is the token's self-streaming length in bytes: the
	// number of bytes WriteTo writes, opcode header included, same as the
	// number of bytes ReturnTo rewinds by.
	PayloadSize() int

	// WriteTo serializes the token (opcode header plus variant payload) to
	// s. StreamEnding tokens are never written; WriteTo is a no-op for them.
	WriteTo(s stream.Stream) error

	// ReturnTo rewinds s by PayloadSize() bytes so a subsequent ReadFrom
	// reproduces an equivalent token. It is a no-op for StreamEnding
	// tokens, since the underlying stream is already exhausted.
	ReturnTo(s stream.Stream) error
}

// header is the shared {opcode, silenced} prefix embedded by every variant.
type header struct {
	op       opcode.Opcode
	silenced bool
}

func (h *header) Opcode() opcode.Opcode   { return h.op }
func (h *header) Category() opcode.Opcode { return h.op.Category() }
func (h *header) Silenced() bool          { return h.silenced }

func (h *header) SetSilenced(v bool) bool {
	prev := h.silenced
	h.silenced = v
	return prev
}

// Generic is a token carrying only an opcode: punctuation, keywords,
// operators, and any other category not listed below.
type Generic struct {
	header
}

// NewGeneric creates a generic token with opcode op.
func NewGeneric(op opcode.Opcode) *Generic {
	return &Generic{header{op: op}}
}

func (t *Generic) PayloadSize() int { return opcodeSize }

func (t *Generic) WriteTo(s stream.Stream) error {
	return writeOpcode(s, t.op)
}

func (t *Generic) ReturnTo(s stream.Stream) error {
	return s.RewindBy(t.PayloadSize())
}

// Symbolic is a token whose category is IDENTIFIER, NUMBER, or STRING; it
// carries a reference into a symbol vector. The reference starts unset
// (symbol.NoRef) when a scanner first produces the token from source text,
// and is filled in by the parser once the name is placed into scope.
type Symbolic struct {
	header
	ref symbol.Ref
}

// NewSymbolic creates a symbolic token. op's category must be one of
// IDENTIFIER, NUMBER, or STRING.
func NewSymbolic(op opcode.Opcode, ref symbol.Ref) *Symbolic {
	return &Symbolic{header: header{op: op}, ref: ref}
}

// Ref returns the token's symbol reference.
func (t *Symbolic) Ref() symbol.Ref { return t.ref }

// SetRef updates the token's symbol reference, e.g. once the parser has
// placed the corresponding name into a symbol table.
func (t *Symbolic) SetRef(ref symbol.Ref) { t.ref = ref }

func (t *Symbolic) PayloadSize() int { return opcodeSize + refSize }

func (t *Symbolic) WriteTo(s stream.Stream) error {
	if err := writeOpcode(s, t.op); err != nil {
		return err
	}
	return writeRef(s, t.ref)
}

func (t *Symbolic) ReturnTo(s stream.Stream) error {
	return s.RewindBy(t.PayloadSize())
}

// LineEnding carries the count of consecutive line terminators it
// consolidates. Its opcode is always opcode.EOL.
type LineEnding struct {
	header
	LineCount int32
}

// NewLineEnding creates a line-ending token consolidating count
// terminators; count must be >= 1.
func NewLineEnding(count int32) *LineEnding {
	if count < 1 {
		count = 1
	}
	return &LineEnding{header: header{op: opcode.EOL}, LineCount: count}
}

func (t *LineEnding) PayloadSize() int { return opcodeSize + lineCountSize }

func (t *LineEnding) WriteTo(s stream.Stream) error {
	if err := writeOpcode(s, t.op); err != nil {
		return err
	}
	return writeInt32(s, t.LineCount)
}

func (t *LineEnding) ReturnTo(s stream.Stream) error {
	return s.RewindBy(t.PayloadSize())
}

// StreamEnding is the sentinel returned once a stream is exhausted. It is
// never written to the stream; ReadFrom synthesizes it from
// stream.Stream.HasEnded, and ReturnTo is a no-op (the EOS state is
// sticky: once reached, a scanner never leaves it).
type StreamEnding struct {
	header
}

// NewStreamEnding creates the EOS sentinel token.
func NewStreamEnding() *StreamEnding {
	return &StreamEnding{header{op: opcode.EOS}}
}

func (t *StreamEnding) PayloadSize() int { return 0 }

func (t *StreamEnding) WriteTo(s stream.Stream) error { return nil }

func (t *StreamEnding) ReturnTo(s stream.Stream) error { return nil }

// field sizes for the binary layout described in the package doc.
const (
	opcodeSize    = 4
	refSize       = 8
	lineCountSize = 4
)

func writeOpcode(s stream.Stream, op opcode.Opcode) error {
	var buf [opcodeSize]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(op))
	_, err := s.Write(buf[:])
	return err
}

func readOpcode(s stream.Stream) (opcode.Opcode, error) {
	var buf [opcodeSize]byte
	if _, err := readFull(s, buf[:]); err != nil {
		return 0, err
	}
	return opcode.Opcode(binary.NativeEndian.Uint32(buf[:])), nil
}

func writeInt32(s stream.Stream, v int32) error {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(v))
	_, err := s.Write(buf[:])
	return err
}

func readInt32(s stream.Stream) (int32, error) {
	var buf [4]byte
	if _, err := readFull(s, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.NativeEndian.Uint32(buf[:])), nil
}

func writeRef(s stream.Stream, ref symbol.Ref) error {
	if err := writeInt32(s, ref.Scope); err != nil {
		return err
	}
	return writeInt32(s, ref.Index)
}

func readRef(s stream.Stream) (symbol.Ref, error) {
	scope, err := readInt32(s)
	if err != nil {
		return symbol.Ref{}, err
	}
	index, err := readInt32(s)
	if err != nil {
		return symbol.Ref{}, err
	}
	return symbol.Ref{Scope: scope, Index: index}, nil
}

func readFull(s stream.Stream, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := s.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// ReadFrom is the token factory: it inspects the category of the next
// opcode on s and constructs the matching variant, delegating payload
// reading to that variant. If s has already ended, it returns the EOS
// sentinel without touching s (the sticky-EOS invariant).
func ReadFrom(s stream.Stream) (Token, error) {
	if s.HasEnded() {
		return NewStreamEnding(), nil
	}

	op, err := readOpcode(s)
	if err != nil {
		return nil, err
	}

	switch op.Category() {
	case opcode.CategoryIdentifier, opcode.CategoryNumber, opcode.CategoryString:
		ref, err := readRef(s)
		if err != nil {
			return nil, err
		}
		return &Symbolic{header: header{op: op}, ref: ref}, nil

	case opcode.CategoryEOL:
		count, err := readInt32(s)
		if err != nil {
			return nil, err
		}
		return &LineEnding{header: header{op: op}, LineCount: count}, nil

	default:
		return &Generic{header{op: op}}, nil
	}
}
