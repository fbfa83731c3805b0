// Package langdef aggregates an opcode dictionary and a syntax rule set
// into the language definition consumed by scanners and parsers.
package langdef

import (
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/rule"
)

// Fold normalizes an identifier before dictionary lookup, e.g.
// strings.ToUpper for case-insensitive keywords. A nil Fold means the
// language is case-sensitive.
type Fold func(string) string

// Definition owns an opcode dictionary, a rule set, and an optional
// identifier case-folding policy.
type Definition struct {
	Dictionary *opcode.Dictionary
	Rules      *rule.Set
	CaseFold   Fold
}

// New creates a language definition over dict and rules. fold may be nil.
func New(dict *opcode.Dictionary, rules *rule.Set, fold Fold) *Definition {
	return &Definition{Dictionary: dict, Rules: rules, CaseFold: fold}
}

// SyntaxRule returns the rule registered under id, or (nil, false).
func (d *Definition) SyntaxRule(id int) (*rule.Rule, bool) {
	return d.Rules.Rule(id)
}

// Lookup folds name (if a CaseFold policy is set) and looks it up in the
// dictionary, returning the bound opcode or 0 if name is not a keyword or
// operator known to this language.
func (d *Definition) Lookup(name string) opcode.Opcode {
	if d.CaseFold != nil {
		name = d.CaseFold(name)
	}
	return d.Dictionary.Lookup(name)
}
