package parser

import (
	"testing"

	"github.com/circusmachina/libs-parsing/diagnostics"
	"github.com/circusmachina/libs-parsing/langdef"
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/rule"
	"github.com/circusmachina/libs-parsing/scanner"
	"github.com/circusmachina/libs-parsing/stream"
	"github.com/circusmachina/libs-parsing/symbol"
	"github.com/circusmachina/libs-parsing/token"
)

const identOp = opcode.CategoryIdentifier
const semiOp = opcode.CategoryUserBase + 1

// toyParser is a minimal Parseable: each call consumes exactly one token.
type toyParser struct {
	LanguageAware
}

func (tp *toyParser) Parse() (int, error) {
	if err := tp.NextToken(); err != nil {
		return 0, err
	}
	return 0, nil
}

func newToy(t *testing.T, numIdents int, rules *rule.Set) *toyParser {
	t.Helper()
	mem := stream.NewMemory("mem", nil)
	for i := 0; i < numIdents; i++ {
		if err := token.NewSymbolic(identOp, symbol.NoRef).WriteTo(mem); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	bs, err := scanner.NewBinaryScanner(stream.NewMemory("mem", mem.Bytes()), scanner.DefaultFlags)
	if err != nil {
		t.Fatalf("construct scanner failed: %v", err)
	}

	lang := langdef.New(opcode.NewDictionary(), rules, nil)
	log := diagnostics.NewLog()
	log.Quiet = true

	tp := &toyParser{LanguageAware: *NewLanguageAware(bs, log, lang)}
	tp.Self = tp
	return tp
}

func rulesWithEOS() *rule.Set {
	rs := rule.NewSet()
	rs.Add(rule.New(1, semiOp, opcode.EOS))
	rs.Add(rule.New(2, semiOp))
	return rs
}

func TestParseUntilEOSAllowed(t *testing.T) {
	tp := newToy(t, 3, rulesWithEOS())

	n, err := tp.ParseUntil(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no inner syntax errors, got %d", n)
	}
	if tp.Current().Opcode() != opcode.EOS {
		t.Fatalf("expected to stop at EOS, got %x", tp.Current().Opcode())
	}
}

func TestParseUntilEOSDisallowed(t *testing.T) {
	tp := newToy(t, 3, rulesWithEOS())

	_, err := tp.ParseUntil(2)
	if err == nil {
		t.Fatal("expected a fatal error for unexpected end of stream")
	}
	if tp.Log().Errors() == 0 {
		t.Fatal("expected the fatal error to be counted")
	}
}

func TestParseUntilUnknownRule(t *testing.T) {
	tp := newToy(t, 1, rulesWithEOS())

	n, err := tp.ParseUntil(99)
	if n != -1 || err != nil {
		t.Fatalf("expected (-1, nil) for an unknown rule id, got (%d, %v)", n, err)
	}
}

func TestResyncToLogsAndAdvances(t *testing.T) {
	mem := stream.NewMemory("mem", nil)
	for i := 0; i < 2; i++ {
		token.NewSymbolic(identOp, symbol.NoRef).WriteTo(mem)
	}
	token.NewGeneric(semiOp).WriteTo(mem)

	bs, err := scanner.NewBinaryScanner(stream.NewMemory("mem", mem.Bytes()), scanner.DefaultFlags)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}

	log := diagnostics.NewLog()
	log.Quiet = true
	b := NewBase(bs, log)

	r := rule.New(1, semiOp)
	if err := b.ResyncTo(r); err != nil {
		t.Fatalf("resync failed: %v", err)
	}
	if b.Current().Opcode() != semiOp {
		t.Fatalf("expected to land on SEMI, got %x", b.Current().Opcode())
	}
	if b.Log().Errors() != 1 {
		t.Fatalf("expected exactly one logged error, got %d", b.Log().Errors())
	}
}

func newSymbolAware(t *testing.T) *SymbolAware {
	t.Helper()
	mem := stream.NewMemory("mem", nil)
	bs, err := scanner.NewBinaryScanner(mem, scanner.DefaultFlags)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	lang := langdef.New(opcode.NewDictionary(), rule.NewSet(), nil)
	log := diagnostics.NewLog()
	log.Quiet = true
	out := stream.NewMemory("out", nil)
	return NewSymbolAware(bs, log, lang, out, nil)
}

func TestDuplicateSymbolRejection(t *testing.T) {
	sa := newSymbolAware(t)
	if !sa.ReadyToParse() {
		t.Fatal("expected ReadyToParse to construct a default table vector")
	}

	first := symbol.NewFromSource("x", symbol.Variable, "a.src", 1)
	if sa.EnterSymbol(first) == nil {
		t.Fatal("expected first declaration to succeed")
	}

	second := symbol.NewFromSource("x", symbol.Variable, "a.src", 2)
	if sa.EnterSymbol(second) != nil {
		t.Fatal("expected duplicate declaration to be rejected")
	}
	if sa.Log().Errors() != 1 {
		t.Fatalf("expected exactly one duplicate-identifier error, got %d", sa.Log().Errors())
	}
}

func TestScopeWalkFindsGlobalFromNestedScope(t *testing.T) {
	sa := newSymbolAware(t)
	sa.ReadyToParse()

	sa.EnterGlobalSymbol(symbol.NewFromSource("g", symbol.Variable, "a.src", 1))

	sa.PushScope()
	if _, found := sa.SymbolNamed("g"); !found {
		t.Fatal("expected a global symbol to be reachable from a nested scope")
	}

	sa.PopScope()
	if sa.CurrentScope() != symbol.Global {
		t.Fatalf("expected popping the outermost pushed scope to return to global, got %d", sa.CurrentScope())
	}
}

func TestChildInheritsParentState(t *testing.T) {
	parent := newSymbolAware(t)
	parent.ReadyToParse()
	parent.PushScope()

	child := ForSourceSymbol(parent)

	if child.Language() != parent.Language() {
		t.Fatal("expected child to observe parent's language")
	}
	if child.Symbols() != parent.Symbols() {
		t.Fatal("expected child to observe parent's symbol table vector")
	}
	if child.CurrentScope() != parent.CurrentScope() {
		t.Fatal("expected child to observe parent's current scope")
	}
	if child.Output() != parent.Output() {
		t.Fatal("expected child to observe parent's output stream")
	}
}
