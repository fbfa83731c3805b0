// Package diagnostics implements the error log shared across a parser
// tree: syntax errors, fatal errors, hints/warnings, and the named
// counters clients use to decide whether a parse succeeded.
package diagnostics

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Error classes, each reserved for the package that raises it, mirroring
// ava12/llx's LangDefErrors/LexicalErrors/SyntaxErrors/... convention.
const (
	OpcodeErrors = 1 + 100*iota
	LangDefErrors
	ScanErrors
	SyntaxErrors
	SymbolErrors
)

// Error is the error type produced by every package in this module.
type Error struct {
	Code       int
	Message    string
	SourceName string
	Line       int
}

// SourcePos is implemented by anything that can describe its own source
// position for diagnostic purposes.
type SourcePos interface {
	SourceName() string
	Line() int
}

// New builds an Error, appending source/line context to the message when
// both are available.
func New(code int, msg, sourceName string, line int) *Error {
	if sourceName != "" && line != 0 {
		msg += fmt.Sprintf(" in %s at line %d", sourceName, line)
	}
	return &Error{Code: code, Message: msg, SourceName: sourceName, Line: line}
}

func (e *Error) Error() string { return e.Message }

// Format builds an Error with no source position.
func Format(code int, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return New(code, msg, "", 0)
}

// FormatPos builds an Error carrying pos's source position.
func FormatPos(pos SourcePos, code int, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return New(code, msg, pos.SourceName(), pos.Line())
}

// Log accumulates counted syntax errors and warnings for one parser tree.
// Pretty-printing uses pterm's styled Warning/Error prefixes.
type Log struct {
	errors   int
	warnings int
	Quiet    bool // suppress pterm output, e.g. under test
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// SyntaxError records a syntax error: malformed input recognized at the
// current token. The parse continues; callers typically resync afterward.
func (l *Log) SyntaxError(err *Error) {
	l.errors++
	if !l.Quiet {
		pterm.Error.Println(err.Error())
	}
}

// Fatal records a fatal error and returns it as an error value: in this
// module's idiom, "unwinding the current parse" means the caller returns
// the error up the call stack rather than continuing, not a panic.
func (l *Log) Fatal(err *Error) error {
	l.errors++
	if !l.Quiet {
		pterm.Error.Println(err.Error())
	}
	return err
}

// Hint records an advisory warning; the parse always continues.
func (l *Log) Hint(msg string, args ...any) {
	l.warnings++
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if !l.Quiet {
		pterm.Warning.Println(msg)
	}
}

// Errors returns the running error count.
func (l *Log) Errors() int { return l.errors }

// Warnings returns the running warning count.
func (l *Log) Warnings() int { return l.warnings }
