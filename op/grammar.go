package op

import (
	"fmt"
)

// Grammar is a table of named rules. Rule references within expressions are
// resolved against it. Anonymous matching (a bare expression without rule
// references) does not need a grammar at all; the assembler accepts a nil
// grammar in that case.
type Grammar struct {
	name  string
	rules map[string]*Expr
	order []string // definition order, for stable dumps
}

// NewGrammar creates an empty grammar with a (debugging) name.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		name:  name,
		rules: make(map[string]*Expr),
	}
}

// Name returns the grammar's name.
func (g *Grammar) Name() string {
	return g.name
}

// Define adds a named rule. Redefinition of a rule is an error.
func (g *Grammar) Define(name string, e *Expr) error {
	if _, ok := g.rules[name]; ok {
		return fmt.Errorf("grammar %s: rule %q defined twice", g.name, name)
	}
	g.rules[name] = e
	g.order = append(g.order, name)
	return nil
}

// Rule looks up a rule by name; nil if undefined.
func (g *Grammar) Rule(name string) *Expr {
	if g == nil {
		return nil
	}
	return g.rules[name]
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	if g == nil {
		return 0
	}
	return len(g.rules)
}

// EachRule iterates over all rules in definition order.
func (g *Grammar) EachRule(mapper func(name string, e *Expr) interface{}) {
	if g == nil {
		return
	}
	for _, name := range g.order {
		mapper(name, g.rules[name])
	}
}

// CheckComplete walks all rules and reports the first rule reference which
// does not resolve against the rule table. Clients may call this before
// assembly; the assembler performs the same check lazily.
func (g *Grammar) CheckComplete() error {
	var err error
	g.EachRule(func(name string, e *Expr) interface{} {
		if err == nil {
			err = g.checkRefs(e)
		}
		return nil
	})
	return err
}

func (g *Grammar) checkRefs(e *Expr) error {
	if e == nil {
		return nil
	}
	if e.op == RuleReference && g.Rule(e.name) == nil {
		return &UnresolvedReference{Grammar: g.name, Name: e.name}
	}
	for _, c := range e.children {
		if err := g.checkRefs(c); err != nil {
			return err
		}
	}
	return nil
}

// Dump logs all rules of the grammar (visible with trace level Debug).
func (g *Grammar) Dump() {
	tracer().Debugf("=== grammar %s ===========================", g.name)
	g.EachRule(func(name string, e *Expr) interface{} {
		tracer().Debugf("%s ::= %v", name, e)
		return nil
	})
}

// UnresolvedReference is the error reported for a rule reference which the
// grammar's rule table does not resolve. It is fatal for automaton assembly.
type UnresolvedReference struct {
	Grammar string // name of the grammar
	Name    string // name of the unresolved rule
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("grammar %s references undefined rule %q", e.Grammar, e.Name)
}
