package parser

import (
	"github.com/circusmachina/libs-parsing/diagnostics"
	"github.com/circusmachina/libs-parsing/langdef"
	"github.com/circusmachina/libs-parsing/opcode"
	"github.com/circusmachina/libs-parsing/rule"
)

// LanguageAware layers a language.Definition onto Base, letting
// ResyncTo/SkipTo/SkipOver be driven by a rule id looked up on the
// language rather than a *rule.Rule the caller already has in hand, and
// adding ParseUntil.
type LanguageAware struct {
	Base

	language *langdef.Definition

	// Self is the concrete Parseable this LanguageAware is embedded in.
	// A client subclass must set it after construction (embedding alone
	// gives no virtual dispatch back to the subclass's own Parse):
	//
	//	type StatementParser struct { parser.LanguageAware }
	//	p := &StatementParser{...}
	//	p.Self = p
	Self Parseable
}

// NewLanguageAware creates a root language-aware parser.
func NewLanguageAware(s Scanner, log *diagnostics.Log, lang *langdef.Definition) *LanguageAware {
	return &LanguageAware{Base: *NewBase(s, log), language: lang}
}

// ForSourceLanguage creates a child that borrows parent's scanner, log,
// and language definition.
func ForSourceLanguage(parent *LanguageAware) *LanguageAware {
	return &LanguageAware{Base: *ForSource(&parent.Base), language: parent.language}
}

// Language returns the language definition in effect.
func (l *LanguageAware) Language() *langdef.Definition { return l.language }

// SetLanguage overrides the inherited language definition.
func (l *LanguageAware) SetLanguage(lang *langdef.Definition) { l.language = lang }

// ReadyToParse extends Base's check with "language definition present".
func (l *LanguageAware) ReadyToParse() bool {
	return l.Base.ReadyToParse() && l.language != nil
}

func (l *LanguageAware) rule(ruleID int) (*rule.Rule, bool) {
	r, ok := l.language.SyntaxRule(ruleID)
	if !ok {
		return nil, false
	}
	return r, true
}

// ResyncTo looks ruleID up on the language and forwards to Base.ResyncTo.
// An unknown ruleID is a no-op.
func (l *LanguageAware) ResyncTo(ruleID int) error {
	r, ok := l.rule(ruleID)
	if !ok {
		return nil
	}
	return l.Base.ResyncTo(r)
}

// SkipTo looks ruleID up on the language and forwards to Base.SkipTo. An
// unknown ruleID is a no-op.
func (l *LanguageAware) SkipTo(ruleID int, silenceIntervening bool) error {
	r, ok := l.rule(ruleID)
	if !ok {
		return nil
	}
	return l.Base.SkipTo(r, silenceIntervening)
}

// SkipOver looks ruleID up on the language and forwards to
// Base.SkipOver. An unknown ruleID is a no-op.
func (l *LanguageAware) SkipOver(ruleID int, silenceIntervening bool) error {
	r, ok := l.rule(ruleID)
	if !ok {
		return nil
	}
	return l.Base.SkipOver(r, silenceIntervening)
}

// ParseUntil repeatedly calls Self.Parse until the current token belongs
// to ruleID's rule, returning the accumulated error count from the inner
// Parse calls. It returns -1 if ruleID names no rule on the language.
//
// After each inner Parse: if the current token is EOS and the rule
// includes EOS, ParseUntil stops successfully; if the current token is
// EOS and the rule excludes it, ParseUntil fails fatally with "unexpected
// end of stream"; otherwise, if the current token is in the rule it
// stops, else it advances one token and loops.
func (l *LanguageAware) ParseUntil(ruleID int) (int, error) {
	r, ok := l.rule(ruleID)
	if !ok {
		return -1, nil
	}

	total := 0
	for {
		n, err := l.Self.Parse()
		total += n
		if err != nil {
			return total, err
		}

		cur := l.Current()
		if cur.Opcode() == opcode.EOS {
			if r.Has(opcode.EOS) {
				return total, nil
			}
			return total, l.log.Fatal(diagnostics.FormatPos(l, diagnostics.SyntaxErrors,
				"unexpected end of stream"))
		}

		if r.Has(cur.Opcode()) {
			return total, nil
		}

		if err := l.NextToken(); err != nil {
			return total, err
		}
	}
}
