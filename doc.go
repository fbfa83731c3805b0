/*
Package libsparsing is a toolkit for building recursive-descent parsers of
textual source languages.

Consists of subpackages:
  - opcode: token-string-to-integer dictionary and the opcode/category model;
  - rule: named sets of opcodes used for synchronization and termination tests;
  - langdef: aggregates an opcode dictionary and a rule set into a language
    definition, with optional identifier case folding;
  - stream: the seekable byte-stream abstraction consumed by scanners, plus
    a bounded-rewind buffering wrapper;
  - token: the token hierarchy (generic, symbolic, line-ending,
    stream-ending) and its binary streaming format;
  - scanner: binary scanner (reads the intermediate-code format) and source
    scanner (tokenizes raw text via a language definition);
  - symbol: symbol records and the dual symbol-table (parse time) /
    symbol-vector (recall time) representations;
  - parser: the layered parser driver (base, language-aware, symbol-aware)
    with error recovery and scope handling;
  - diagnostics: the error log shared by a parser tree.

Typical usage is:

1. Build a language definition: bind keyword/operator strings to opcodes in
an opcode.Dictionary, group opcodes into rule.Rules, wrap both in a
langdef.Definition.

2. Feed source text to a scanner.SourceScanner built from that definition,
or feed a previously-written intermediate-code stream to a
scanner.BinaryScanner.

3. Subclass parser.Base (or parser.LanguageAware / parser.SymbolAware) to
implement Parse, driving the scanner and consulting rules for
synchronization and termination.
*/
package libsparsing
