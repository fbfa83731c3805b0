package scanner

import (
	"strings"
	"testing"

	"github.com/circusmachina/libs-parsing/langdef"
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/rule"
	"github.com/circusmachina/libs-parsing/stream"
	"github.com/circusmachina/libs-parsing/token"
)

const ident1 = opcode.CategoryUserBase + 1

func writeAll(t *testing.T, s stream.Stream, toks ...token.Token) {
	t.Helper()
	for _, tok := range toks {
		if err := tok.WriteTo(s); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
}

func TestBinaryScannerWhitespaceDiscard(t *testing.T) {
	mem := stream.NewMemory("mem", nil)
	writeAll(t, mem,
		token.NewGeneric(opcode.CategorySpace),
		token.NewGeneric(ident1),
		token.NewGeneric(opcode.CategorySpace),
	)

	bs, err := NewBinaryScanner(stream.NewMemory("mem", mem.Bytes()), NoWhitespace)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}

	if bs.Current().Opcode() != ident1 {
		t.Fatalf("expected IDENT, got %x", bs.Current().Opcode())
	}
	if err := bs.Next(); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if bs.Current().Opcode() != opcode.EOS {
		t.Fatalf("expected EOS, got %x", bs.Current().Opcode())
	}
	if bs.Continues() {
		t.Fatal("expected Continues() to be false at EOS")
	}
}

func TestBinaryScannerWhitespaceConsolidation(t *testing.T) {
	mem := stream.NewMemory("mem", nil)
	writeAll(t, mem,
		token.NewGeneric(opcode.CategorySpace),
		token.NewGeneric(opcode.CategorySpace),
		token.NewGeneric(opcode.CategorySpace),
	)

	bs, err := NewBinaryScanner(stream.NewMemory("mem", mem.Bytes()), ConsolidateWhitespace)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}

	if bs.Current().Category() != opcode.CategorySpace {
		t.Fatalf("expected one SPACE token, got category %x", bs.Current().Category())
	}
	if err := bs.Next(); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if bs.Current().Opcode() != opcode.EOS {
		t.Fatal("expected EOS after the consolidated run")
	}
}

func TestBinaryScannerEOSSticky(t *testing.T) {
	mem := stream.NewMemory("mem", nil)
	bs, err := NewBinaryScanner(mem, DefaultFlags)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if bs.Current().Opcode() != opcode.EOS {
		t.Fatal("expected EOS on empty stream")
	}
	if err := bs.Next(); err != nil {
		t.Fatalf("next on EOS must not error: %v", err)
	}
	if bs.Current().Opcode() != opcode.EOS {
		t.Fatal("expected EOS to remain sticky")
	}
}

func TestBinaryScannerLineEndingConsolidation(t *testing.T) {
	mem := stream.NewMemory("mem", nil)
	writeAll(t, mem,
		token.NewLineEnding(1),
		token.NewLineEnding(1),
		token.NewLineEnding(1),
	)

	bs, err := NewBinaryScanner(stream.NewMemory("mem", mem.Bytes()), ConsolidateLineEndings)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}

	le, ok := bs.Current().(*token.LineEnding)
	if !ok {
		t.Fatalf("expected *token.LineEnding, got %T", bs.Current())
	}
	if le.LineCount != 3 {
		t.Fatalf("expected consolidated count 3, got %d", le.LineCount)
	}
	if bs.LineNumber() != 4 {
		t.Fatalf("expected line number 1+3=4, got %d", bs.LineNumber())
	}
}

func demoLanguage() *langdef.Definition {
	dict := opcode.NewDictionary()
	dict.Bind("if", opcode.CategoryUserBase+1)
	dict.Bind("==", opcode.CategoryUserBase+2)
	dict.Bind("=", opcode.CategoryUserBase+3)
	return langdef.New(dict, rule.NewSet(), nil)
}

func TestSourceScannerKeywordVsIdentifier(t *testing.T) {
	lang := demoLanguage()
	src := stream.NewMemory("t.src", []byte("if x == 1"))
	ss, err := NewSourceScanner(src, lang, DefaultFlags)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}

	if ss.Current().Opcode() != opcode.CategoryUserBase+1 {
		t.Fatalf("expected 'if' keyword opcode, got %x", ss.Current().Opcode())
	}

	if err := ss.Next(); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if ss.Current().Category() != opcode.CategoryIdentifier {
		t.Fatalf("expected identifier, got category %x", ss.Current().Category())
	}

	if err := ss.Next(); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if ss.Current().Opcode() != opcode.CategoryUserBase+2 {
		t.Fatalf("expected '==' operator opcode, got %x", ss.Current().Opcode())
	}

	if err := ss.Next(); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if ss.Current().Category() != opcode.CategoryNumber {
		t.Fatalf("expected number, got category %x", ss.Current().Category())
	}
}

func TestSourceScannerLineCountAccumulation(t *testing.T) {
	lang := demoLanguage()
	text := "x\ny\nz\n"
	src := stream.NewMemory("t.src", []byte(text))
	ss, err := NewSourceScanner(src, lang, NoWhitespace)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}

	for ss.Continues() {
		if err := ss.Next(); err != nil {
			t.Fatalf("next failed: %v", err)
		}
	}

	wantLines := 1 + strings.Count(text, "\n")
	if ss.LineNumber() != wantLines {
		t.Fatalf("expected line number %d, got %d", wantLines, ss.LineNumber())
	}
}

func TestSourceScannerUnknownCharError(t *testing.T) {
	lang := demoLanguage()
	src := stream.NewMemory("t.src", []byte("@"))
	if _, err := NewSourceScanner(src, lang, DefaultFlags); err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
}
