package op

import (
	"fmt"
	"strings"

	"github.com/npillmayer/comba"
)

// Opcode is the variant tag of an operator tree node.
type Opcode int8

// The operator variants.
const (
	Literal Opcode = iota
	Sequence
	OrderedChoice
	RegularAlternation
	Optional
	Repetition
	PositiveLookahead
	NegativeLookahead
	RuleReference
	CaptureGroup
)

func (op Opcode) String() string {
	switch op {
	case Literal:
		return "Literal"
	case Sequence:
		return "Sequence"
	case OrderedChoice:
		return "OrderedChoice"
	case RegularAlternation:
		return "RegularAlternation"
	case Optional:
		return "Optional"
	case Repetition:
		return "Repetition"
	case PositiveLookahead:
		return "PositiveLookahead"
	case NegativeLookahead:
		return "NegativeLookahead"
	case RuleReference:
		return "RuleReference"
	case CaptureGroup:
		return "CaptureGroup"
	}
	return "<unknown op>"
}

// Unbounded marks a repetition without an upper bound.
const Unbounded = -1

// Expr is a node of the operator tree: a tagged variant over the operator
// set. Expressions are created through the constructor functions of this
// package and are immutable afterwards. The tree is finite and acyclic,
// except through rule references, which are resolved against a grammar's
// rule table.
type Expr struct {
	op       Opcode
	sym      comba.Predicate // for Literal
	children []*Expr
	min, max int    // for Repetition
	name     string // rule name for RuleReference, label for CaptureGroup
}

// Op returns the variant tag of an expression.
func (e *Expr) Op() Opcode {
	return e.op
}

// Sym returns the symbol predicate of a literal node.
func (e *Expr) Sym() comba.Predicate {
	return e.sym
}

// Children returns the child nodes of an expression. Clients must not
// modify the returned slice.
func (e *Expr) Children() []*Expr {
	return e.children
}

// Child returns the single child of a unary node (Maybe, Repetition,
// lookaheads, CaptureGroup), or nil.
func (e *Expr) Child() *Expr {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// Bounds returns (min, max) of a repetition node; max may be Unbounded.
func (e *Expr) Bounds() (int, int) {
	return e.min, e.max
}

// Name returns the rule name of a reference node, or the label of a
// capture group.
func (e *Expr) Name() string {
	return e.name
}

// --- Constructors -----------------------------------------------------

// Lit creates a literal matching a single rune.
func Lit(r rune) *Expr {
	return &Expr{op: Literal, sym: comba.IsRune(r)}
}

// Pred creates a literal matching a symbol predicate (a set, a complemented
// set, or "any").
func Pred(p comba.Predicate) *Expr {
	return &Expr{op: Literal, sym: p}
}

// OneOf creates a literal matching any rune out of a set.
func OneOf(runes ...rune) *Expr {
	return Pred(comba.OneOf(runes...))
}

// NoneOf creates a literal matching every rune except the given ones.
func NoneOf(runes ...rune) *Expr {
	return Pred(comba.NoneOf(runes...))
}

// Any creates a literal matching every input symbol.
func Any() *Expr {
	return Pred(comba.Any())
}

// Seq creates a sequence of expressions, matched in order. An empty
// sequence matches the empty input.
func Seq(children ...*Expr) *Expr {
	return &Expr{op: Sequence, children: children}
}

// Str is a convenience constructor for a sequence of rune literals.
func Str(s string) *Expr {
	children := make([]*Expr, 0, len(s))
	for _, r := range s {
		children = append(children, Lit(r))
	}
	return Seq(children...)
}

// Choice creates an ordered choice: the leftmost matching alternative wins,
// later alternatives are never considered once an earlier one succeeds.
func Choice(alternatives ...*Expr) *Expr {
	return &Expr{op: OrderedChoice, children: alternatives}
}

// Alt creates a regular alternation: all branches compete simultaneously,
// as in a regular expression.
func Alt(branches ...*Expr) *Expr {
	return &Expr{op: RegularAlternation, children: branches}
}

// Maybe makes an expression optional.
func Maybe(e *Expr) *Expr {
	return &Expr{op: Optional, children: []*Expr{e}}
}

// Repeat creates a repetition of e with the given bounds. Use Unbounded as
// max for an open repetition. Repeat panics on nonsensical bounds, which
// would otherwise silently propagate into automaton assembly.
func Repeat(e *Expr, min, max int) *Expr {
	if min < 0 || (max != Unbounded && max < min) {
		panic(fmt.Sprintf("op.Repeat with invalid bounds (%d,%d)", min, max))
	}
	return &Expr{op: Repetition, children: []*Expr{e}, min: min, max: max}
}

// Star is Repeat(e, 0, Unbounded).
func Star(e *Expr) *Expr {
	return Repeat(e, 0, Unbounded)
}

// Plus is Repeat(e, 1, Unbounded).
func Plus(e *Expr) *Expr {
	return Repeat(e, 1, Unbounded)
}

// And creates a positive lookahead: e must match at the current position,
// but no input is consumed.
func And(e *Expr) *Expr {
	return &Expr{op: PositiveLookahead, children: []*Expr{e}}
}

// Not creates a negative lookahead: e must not match at the current
// position; no input is consumed.
func Not(e *Expr) *Expr {
	return &Expr{op: NegativeLookahead, children: []*Expr{e}}
}

// Ref creates a reference to a named rule of the surrounding grammar.
func Ref(name string) *Expr {
	return &Expr{op: RuleReference, name: name}
}

// Capture labels a sub-expression. A matching run will emit a begin/end
// event pair for the labelled span. Rules referenced via Ref are captured
// under their rule name automatically; Capture is for labelling spans
// without defining a rule.
func Capture(label string, e *Expr) *Expr {
	return &Expr{op: CaptureGroup, children: []*Expr{e}, name: label}
}

// --- Debugging --------------------------------------------------------

func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	switch e.op {
	case Literal:
		b.WriteString(e.sym.String())
	case Sequence:
		b.WriteString("(")
		for i, c := range e.children {
			if i > 0 {
				b.WriteString(" ")
			}
			c.write(b)
		}
		b.WriteString(")")
	case OrderedChoice:
		writeJoined(b, e.children, " / ")
	case RegularAlternation:
		writeJoined(b, e.children, " | ")
	case Optional:
		e.children[0].write(b)
		b.WriteString("?")
	case Repetition:
		e.children[0].write(b)
		if e.min == 0 && e.max == Unbounded {
			b.WriteString("*")
		} else if e.min == 1 && e.max == Unbounded {
			b.WriteString("+")
		} else if e.max == Unbounded {
			fmt.Fprintf(b, "{%d,}", e.min)
		} else {
			fmt.Fprintf(b, "{%d,%d}", e.min, e.max)
		}
	case PositiveLookahead:
		b.WriteString("&")
		e.children[0].write(b)
	case NegativeLookahead:
		b.WriteString("!")
		e.children[0].write(b)
	case RuleReference:
		b.WriteString(e.name)
	case CaptureGroup:
		fmt.Fprintf(b, "<%s:", e.name)
		e.children[0].write(b)
		b.WriteString(">")
	}
}

func writeJoined(b *strings.Builder, children []*Expr, sep string) {
	b.WriteString("(")
	for i, c := range children {
		if i > 0 {
			b.WriteString(sep)
		}
		c.write(b)
	}
	b.WriteString(")")
}
