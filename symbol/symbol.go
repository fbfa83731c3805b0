// Package symbol defines named entities with scope, category, and parent,
// in their two phases: FromSource during parsing, Recalled when
// reconstituted from an intermediate-code stream.
package symbol

// Scope sentinels.
const (
	// None marks a symbol not yet placed into any table.
	None int32 = -1

	// Global is the outermost table's scope index.
	Global int32 = 0
)

// Category classifies what a symbol names.
type Category uint32

const (
	Undefined Category = iota
	Type
	Literal
	Variable
	Subroutine
	StructureMember
	Parameter
)

// User is the first value available to client-defined categories.
const User Category = 0x100

// External flags a symbol defined outside the current translation unit.
const External Category = 0x80000000

// Ref is a symbol's stable identity across streaming: the (scope, index)
// pair naming its position in a symbol table vector or symbol vector.
type Ref struct {
	Scope int32
	Index int32
}

// NoRef is the reference of a symbol with no parent.
var NoRef = Ref{Scope: None, Index: -1}

// base holds the fields common to every symbol phase.
type base struct {
	Name     string
	Scope    int32
	Category Category
	Index    int32
}

// Ref returns the symbol's own stable reference.
func (b *base) Ref() Ref {
	return Ref{Scope: b.Scope, Index: b.Index}
}

// FromSource is a symbol created while reading text. Its parent type (if
// any) is a direct in-memory reference to another FromSource symbol,
// resolvable only for the lifetime of the parse; it additionally records
// (sourceName, sourceLine) for diagnostics.
type FromSource struct {
	base

	SourceName string
	SourceLine int

	// Parent is a weak link in the sense that dropping it does not dangle
	// the streaming format (which only ever stores a Ref, see WriteTo):
	// it is simply a plain Go pointer, collected normally once unused.
	Parent *FromSource
}

// NewFromSource creates an unplaced symbol (Scope == None, Index == -1).
func NewFromSource(name string, cat Category, sourceName string, sourceLine int) *FromSource {
	return &FromSource{
		base:       base{Name: name, Scope: None, Category: cat, Index: -1},
		SourceName: sourceName,
		SourceLine: sourceLine,
	}
}

// Ref returns the symbol's own stable reference.
func (s *FromSource) Ref() Ref { return s.base.Ref() }

// ParentRef resolves Parent to a Ref, returning NoRef if Parent is nil.
func (s *FromSource) ParentRef() Ref {
	if s.Parent == nil {
		return NoRef
	}
	return s.Parent.Ref()
}

// Recalled is a symbol reconstituted from an intermediate-code stream. Its
// parent is stored as a Ref rather than a direct pointer, because direct
// references are not meaningful once a symbol has been serialized.
type Recalled struct {
	base

	ParentRef Ref
}

// Ref returns the symbol's own stable reference.
func (s *Recalled) Ref() Ref { return s.base.Ref() }
