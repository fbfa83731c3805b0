package symbol

import (
	"testing"

	"github.com/circusmachina/libs-parsing/stream"
)

func TestTablePutDuplicateRejected(t *testing.T) {
	tbl := newTable(Global, nil)
	a := NewFromSource("x", Variable, "a.src", 1)
	b := NewFromSource("x", Variable, "a.src", 2)

	if !tbl.Put(a) {
		t.Fatal("expected first put to succeed")
	}
	if tbl.Put(b) {
		t.Fatal("expected duplicate put to fail")
	}

	got, found := tbl.Get("x")
	if !found || got != a {
		t.Fatal("expected original symbol to remain in table")
	}
}

func TestScopeWalk(t *testing.T) {
	global := newTable(Global, nil)
	global.Put(NewFromSource("g", Variable, "s", 1))

	inner := newTable(1, global)
	inner.Put(NewFromSource("i", Variable, "s", 2))

	if _, found := inner.Get("g"); found {
		t.Fatal("Get must not walk the parent chain")
	}

	sym, found := inner.Lookup("g")
	if !found || sym.Name != "g" {
		t.Fatal("Lookup must find a global symbol from a nested scope")
	}
}

func TestTableVectorRange(t *testing.T) {
	tv := NewTableVector()
	if tv.Len() != 1 {
		t.Fatalf("expected a single global table, got %d", tv.Len())
	}

	idx := tv.Push(tv.Global())
	if idx != 1 {
		t.Fatalf("expected new scope index 1, got %d", idx)
	}

	if _, found := tv.At(1); !found {
		t.Fatal("expected scope 1 to be in range")
	}
	if _, found := tv.At(2); found {
		t.Fatal("expected scope 2 to be out of range")
	}
	if _, found := tv.At(-1); found {
		t.Fatal("expected scope -1 to be out of range")
	}
}

func TestSymbolRoundTrip(t *testing.T) {
	tv := NewTableVector()
	parent := NewFromSource("Base", Type, "a.src", 3)
	tv.Global().Put(parent)

	sym := NewFromSource("derived", Type, "a.src", 10)
	sym.Parent = parent
	tv.Global().Put(sym)

	mem := stream.NewMemory("symtab", nil)
	if err := sym.WriteTo(mem); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	mem2 := stream.NewMemory("symtab", mem.Bytes())
	recalled, err := ReadRecalled(mem2)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if recalled.Name != sym.Name {
		t.Fatalf("name mismatch: %q != %q", recalled.Name, sym.Name)
	}
	if recalled.Scope != sym.Scope {
		t.Fatalf("scope mismatch: %d != %d", recalled.Scope, sym.Scope)
	}
	if recalled.ParentRef != parent.Ref() {
		t.Fatalf("parent ref mismatch: %+v != %+v", recalled.ParentRef, parent.Ref())
	}
}

func TestSymbolRoundTripNoParent(t *testing.T) {
	tv := NewTableVector()
	sym := NewFromSource("lonely", Variable, "a.src", 1)
	tv.Global().Put(sym)

	mem := stream.NewMemory("symtab", nil)
	sym.WriteTo(mem)

	mem2 := stream.NewMemory("symtab", mem.Bytes())
	recalled, err := ReadRecalled(mem2)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if recalled.ParentRef != NoRef {
		t.Fatalf("expected NoRef, got %+v", recalled.ParentRef)
	}
}

func TestSymbolIndexMatchesInsertionOrder(t *testing.T) {
	tv := NewTableVector()
	first := NewFromSource("a", Variable, "a.src", 1)
	second := NewFromSource("b", Variable, "a.src", 2)
	tv.Global().Put(first)
	tv.Global().Put(second)

	if first.Index != 0 || second.Index != 1 {
		t.Fatalf("expected indices 0,1 on entry, got %d,%d", first.Index, second.Index)
	}

	mem := stream.NewMemory("symtab", nil)
	if err := first.WriteTo(mem); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := second.WriteTo(mem); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	mem2 := stream.NewMemory("symtab", mem.Bytes())
	vv := NewVectorVector()
	for _, original := range []*FromSource{first, second} {
		recalled, err := ReadRecalled(mem2)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		vec, _ := vv.At(Global)
		vec.Add(recalled)
		if recalled.Index != original.Index {
			t.Fatalf("index mismatch: recalled %d != original %d", recalled.Index, original.Index)
		}
	}
}
