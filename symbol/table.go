package symbol

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/treemap"
)

// Table is a name-keyed scope, backed by a balanced tree (the same
// collaborator the opcode dictionary uses), with an optional reference to
// an enclosing-scope table. Lookup walks outward: this table first, then
// its parent chain, until found or exhausted.
type Table struct {
	index  int32
	parent *Table
	names  *treemap.Map
}

func newTable(index int32, parent *Table) *Table {
	return &Table{index: index, parent: parent, names: treemap.NewWithStringComparator()}
}

// Index returns the table's own scope index.
func (t *Table) Index() int32 { return t.index }

// Parent returns the enclosing-scope table, or nil for the global table
// and any table explicitly created without a parent.
func (t *Table) Parent() *Table { return t.parent }

// Get looks up name in this table only, not its parent chain.
func (t *Table) Get(name string) (*FromSource, bool) {
	v, found := t.names.Get(name)
	if !found {
		return nil, false
	}
	return v.(*FromSource), true
}

// Lookup walks this table, then its parent chain, returning the first
// symbol named name.
func (t *Table) Lookup(name string) (*FromSource, bool) {
	for tbl := t; tbl != nil; tbl = tbl.parent {
		if sym, found := tbl.Get(name); found {
			return sym, true
		}
	}
	return nil, false
}

// Put inserts sym keyed by sym.Name, stamping its Scope and Index to this
// table's position. It returns false without modifying the table if a
// symbol with the same name already exists in this table. The parent
// chain is not checked, so a name in an enclosing scope may be shadowed
// (parser.SymbolAware.EnterSymbolInto likewise checks only its target
// table).
func (t *Table) Put(sym *FromSource) bool {
	if _, found := t.Get(sym.Name); found {
		return false
	}

	sym.Scope = t.index
	sym.Index = int32(t.names.Size())
	t.names.Put(sym.Name, sym)
	return true
}

// TableVector is an ordered, index-keyed collection of symbol tables.
// Index 0 is always the global scope.
type TableVector struct {
	tables *arraylist.List
}

// NewTableVector creates a table vector containing a single global table.
func NewTableVector() *TableVector {
	tv := &TableVector{tables: arraylist.New()}
	tv.tables.Add(newTable(Global, nil))
	return tv
}

// Len returns the number of tables (scopes) in the vector.
func (tv *TableVector) Len() int32 {
	return int32(tv.tables.Size())
}

// At returns the table at scope, or (nil, false) if scope is out of
// range. "In range" is scope >= 0 && scope < Len() for both lookup and
// insertion (see spec Open Questions: this resolves the source asymmetry
// in favor of one consistent convention).
func (tv *TableVector) At(scope int32) (*Table, bool) {
	if scope < 0 || scope >= tv.Len() {
		return nil, false
	}
	v, found := tv.tables.Get(int(scope))
	if !found {
		return nil, false
	}
	return v.(*Table), true
}

// Global returns the outermost table (scope 0).
func (tv *TableVector) Global() *Table {
	tbl, _ := tv.At(Global)
	return tbl
}

// Push opens a new inner scope whose parent is parent (nil for an
// unparented table), appends it to the vector, and returns its scope
// index.
func (tv *TableVector) Push(parent *Table) int32 {
	index := tv.Len()
	tv.tables.Add(newTable(index, parent))
	return index
}
