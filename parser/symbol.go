package parser

import (
	"github.com/circusmachina/libs-parsing/diagnostics"
	"github.com/circusmachina/libs-parsing/langdef"
	"github.com/circusmachina/libs-parsing/stream"
	"github.com/circusmachina/libs-parsing/symbol"
)

// SymbolAware layers a symbol table vector, a current scope index, and an
// intermediate-code output stream onto LanguageAware. This is the only
// layer that emits a syntax error on its own: the duplicate-identifier
// check in EnterSymbolInto.
type SymbolAware struct {
	LanguageAware

	symbols      *symbol.TableVector
	currentScope int32
	output       stream.Stream
}

// NewSymbolAware creates a root symbol-aware parser. symbols may be nil:
// ReadyToParse constructs a default table vector (a single global table)
// the first time it is called on a parser with no parent to inherit one
// from.
func NewSymbolAware(s Scanner, log *diagnostics.Log, lang *langdef.Definition, out stream.Stream, symbols *symbol.TableVector) *SymbolAware {
	sa := &SymbolAware{
		LanguageAware: *NewLanguageAware(s, log, lang),
		symbols:       symbols,
		output:        out,
		currentScope:  -1,
	}
	if symbols != nil {
		sa.currentScope = symbol.Global
	}
	return sa
}

// ForSourceSymbol creates a child that borrows parent's scanner, log,
// language, symbol table vector, current scope, and output stream.
func ForSourceSymbol(parent *SymbolAware) *SymbolAware {
	return &SymbolAware{
		LanguageAware: *ForSourceLanguage(&parent.LanguageAware),
		symbols:       parent.symbols,
		currentScope:  parent.currentScope,
		output:        parent.output,
	}
}

// ReadyToParse extends LanguageAware's check with "output stream
// present" and "symbol table vector present", constructing a default
// table vector (global scope only) the first time it finds none.
func (sa *SymbolAware) ReadyToParse() bool {
	if !sa.LanguageAware.ReadyToParse() || sa.output == nil {
		return false
	}
	if sa.symbols == nil {
		sa.symbols = symbol.NewTableVector()
		sa.currentScope = symbol.Global
	}
	return true
}

// Symbols returns the symbol table vector in effect.
func (sa *SymbolAware) Symbols() *symbol.TableVector { return sa.symbols }

// Output returns the intermediate-code output stream in effect.
func (sa *SymbolAware) Output() stream.Stream { return sa.output }

// CurrentScope returns the scope index new symbols are entered into by
// EnterSymbol.
func (sa *SymbolAware) CurrentScope() int32 { return sa.currentScope }

// PushScope opens a new scope nested under the current one and makes it
// current, returning its index.
func (sa *SymbolAware) PushScope() int32 {
	parent, _ := sa.symbols.At(sa.currentScope)
	sa.currentScope = sa.symbols.Push(parent)
	return sa.currentScope
}

// PopScope makes the current scope's parent scope current. Popping the
// global scope (or a scope with no parent) leaves the current scope at
// global.
func (sa *SymbolAware) PopScope() int32 {
	tbl, ok := sa.symbols.At(sa.currentScope)
	if !ok || tbl.Parent() == nil {
		sa.currentScope = symbol.Global
		return sa.currentScope
	}
	sa.currentScope = tbl.Parent().Index()
	return sa.currentScope
}

// EnterSymbolInto places sym into the table named by scope, stamping its
// scope and index. If scope is out of range, it falls back to the global
// table. If a symbol of the same name already exists in that table, it
// logs a syntax error naming the existing declaration's source file and
// line and returns nil; sym is left for the caller (and the garbage
// collector) to deal with, since this module has no manual ownership to
// release on failure.
func (sa *SymbolAware) EnterSymbolInto(scope int32, sym *symbol.FromSource) *symbol.FromSource {
	tbl, ok := sa.symbols.At(scope)
	if !ok {
		tbl = sa.symbols.Global()
	}

	if existing, found := tbl.Get(sym.Name); found {
		sa.log.SyntaxError(diagnostics.FormatPos(sa, diagnostics.SymbolErrors,
			"%q already declared in %s at line %d", sym.Name, existing.SourceName, existing.SourceLine))
		return nil
	}

	tbl.Put(sym)
	return sym
}

// EnterSymbol places sym into the current scope.
func (sa *SymbolAware) EnterSymbol(sym *symbol.FromSource) *symbol.FromSource {
	return sa.EnterSymbolInto(sa.currentScope, sym)
}

// EnterGlobalSymbol places sym into the global scope regardless of the
// current scope.
func (sa *SymbolAware) EnterGlobalSymbol(sym *symbol.FromSource) *symbol.FromSource {
	return sa.EnterSymbolInto(symbol.Global, sym)
}

// NamedSymbolIn looks name up starting from the table named by scope,
// walking outward through its parent chain. An out-of-range scope falls
// back to the global table.
func (sa *SymbolAware) NamedSymbolIn(scope int32, name string) (*symbol.FromSource, bool) {
	tbl, ok := sa.symbols.At(scope)
	if !ok {
		tbl = sa.symbols.Global()
	}
	return tbl.Lookup(name)
}

// SymbolNamed looks name up starting from the current scope.
func (sa *SymbolAware) SymbolNamed(name string) (*symbol.FromSource, bool) {
	return sa.NamedSymbolIn(sa.currentScope, name)
}
