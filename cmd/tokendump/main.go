// Command tokendump tokenizes a source file with a small demo language
// definition and prints the resulting token stream, one line per token.
// It exists to exercise the langdef and scanner packages end to end, the
// way the teacher's own examples/calc exercises its lexer and parser.
package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/circusmachina/libs-parsing/diagnostics"
	"github.com/circusmachina/libs-parsing/langdef"
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/rule"
	"github.com/circusmachina/libs-parsing/scanner"
	"github.com/circusmachina/libs-parsing/stream"
	"github.com/circusmachina/libs-parsing/token"
)

// demo keyword and operator opcodes, starting at the first category
// reserved for client languages.
const (
	opIf opcode.Opcode = opcode.CategoryUserBase + iota
	opElse
	opWhile
	opReturn
	opPlus
	opMinus
	opStar
	opSlash
	opAssign
	opEquals
	opNotEquals
	opLess
	opLessEq
	opGreater
	opGreaterEq
	opLParen
	opRParen
	opLBrace
	opRBrace
	opSemi
	opComma
)

var demoNames = map[opcode.Opcode]string{
	opIf: "IF", opElse: "ELSE", opWhile: "WHILE", opReturn: "RETURN",
	opPlus: "+", opMinus: "-", opStar: "*", opSlash: "/",
	opAssign: "=", opEquals: "==", opNotEquals: "!=",
	opLess: "<", opLessEq: "<=", opGreater: ">", opGreaterEq: ">=",
	opLParen: "(", opRParen: ")", opLBrace: "{", opRBrace: "}",
	opSemi: ";", opComma: ",",
}

func demoLanguage() *langdef.Definition {
	dict := opcode.NewDictionary()
	dict.BindMany(
		[]string{"if", "else", "while", "return", "+", "-", "*", "/", "=", "==",
			"!=", "<", "<=", ">", ">=", "(", ")", "{", "}", ";", ","},
		[]opcode.Opcode{opIf, opElse, opWhile, opReturn, opPlus, opMinus, opStar,
			opSlash, opAssign, opEquals, opNotEquals, opLess, opLessEq, opGreater,
			opGreaterEq, opLParen, opRParen, opLBrace, opRBrace, opSemi, opComma},
	)
	return langdef.New(dict, rule.NewSet(), nil)
}

func label(tok token.Token) string {
	switch tok.Category() {
	case opcode.CategoryIdentifier:
		return "IDENTIFIER"
	case opcode.CategoryNumber:
		return "NUMBER"
	case opcode.CategoryString:
		return "STRING"
	case opcode.CategorySpace:
		return "SPACE"
	case opcode.CategoryEOL:
		return "EOL"
	case opcode.CategoryEOS:
		return "EOS"
	default:
		if name, ok := demoNames[tok.Opcode()]; ok {
			return name
		}
		return fmt.Sprintf("0x%x", uint32(tok.Opcode()))
	}
}

func run(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lang := demoLanguage()
	src := stream.NewMemory(path, content)
	ss, err := scanner.NewSourceScanner(src, lang, scanner.DefaultFlags)
	if err != nil {
		return err
	}

	log := diagnostics.NewLog()

	for {
		tok := ss.Current()
		pterm.Info.Printf("%4d  %-12s opcode=0x%08x\n", ss.LineNumber(), label(tok), uint32(tok.Opcode()))
		if tok.Opcode() == opcode.EOS || !ss.Continues() {
			break
		}
		if err := ss.Next(); err != nil {
			return log.Fatal(diagnostics.Format(diagnostics.ScanErrors, "%v", err))
		}
	}

	if log.Errors() > 0 {
		return fmt.Errorf("%d error(s) while scanning %s", log.Errors(), path)
	}
	return nil
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: tokendump <source-file>")
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
