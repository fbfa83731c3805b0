// Package opcode defines the integer opcode space shared by the scanner,
// the token streaming format, and the parser driver, plus the dictionary
// that maps token strings to opcodes.
package opcode

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// Opcode identifies a token kind. The high 16 bits are its category
// (CategoryMask); the low 16 bits disambiguate within the category.
// Zero is reserved: it is never a bound opcode, so Dictionary.Lookup can
// use it as a "not found" sentinel.
type Opcode uint32

// CategoryMask isolates the category bits of an Opcode.
const CategoryMask Opcode = 0xFFFF0000

// Category returns the coarse class of op, derived purely by masking.
func (op Opcode) Category() Opcode {
	return op & CategoryMask
}

// Canonical categories. User-defined categories (keywords, operators,
// special characters) must start at or above CategoryUserBase.
const (
	CategoryDummy Opcode = (iota + 1) << 16
	CategoryIdentifier
	CategoryNumber
	CategoryString
	CategorySpace
	CategoryEOL
	CategoryEOS

	// CategoryUserBase is the first category available to client language
	// definitions for keywords, operators, and special characters.
	CategoryUserBase Opcode = 0x00800000
)

// EOL and EOS are singleton opcodes: every LineEndingToken carries opcode
// EOL and every StreamEndingToken carries opcode EOS (spec invariant).
const (
	EOL = CategoryEOL
	EOS = CategoryEOS
)

// Dictionary maps token strings to opcodes using a balanced tree so that
// binds, lookups, and (for clients that need it) ordered iteration are all
// O(log n). It is immutable after insertion: there is no remove.
type Dictionary struct {
	tree *treemap.Map
}

type entry struct {
	text string
	code Opcode
}

// NewDictionary creates an empty opcode dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{tree: treemap.NewWithStringComparator()}
}

// Bind inserts a unique (str, code) entry. If str is already bound, Bind
// makes no change and returns (nil, false).
func (d *Dictionary) Bind(str string, code Opcode) (*entry, bool) {
	if _, found := d.tree.Get(str); found {
		return nil, false
	}

	e := &entry{text: str, code: code}
	d.tree.Put(str, e)
	return e, true
}

// BindMany bulk-binds strings[i] -> codes[i]. It requires len(strings) ==
// len(codes); on mismatch it binds nothing and returns 0. Otherwise it
// returns the number of distinct entries actually inserted (duplicates
// within strings, or against entries already in the dictionary, are
// skipped rather than erroring).
func (d *Dictionary) BindMany(strings []string, codes []Opcode) int {
	if len(strings) != len(codes) {
		return 0
	}

	count := 0
	for i, s := range strings {
		if _, ok := d.Bind(s, codes[i]); ok {
			count++
		}
	}
	return count
}

// Lookup returns the opcode bound to str, or 0 if str has not been bound.
func (d *Dictionary) Lookup(str string) Opcode {
	v, found := d.tree.Get(str)
	if !found {
		return 0
	}
	return v.(*entry).code
}

// Len returns the number of distinct strings bound in the dictionary.
func (d *Dictionary) Len() int {
	return d.tree.Size()
}
