package nfa

import (
	"fmt"

	"github.com/npillmayer/comba"
	"github.com/npillmayer/comba/op"
)

// Option configures automaton assembly.
type Option func(*assembler)

// UnrollDepth permits recursive rule references to be inlined up to d
// levels deep. Occurrences beyond the limit become dead paths which never
// match. The default depth of 0 rejects recursive grammars with an error,
// since silently cutting recursion off is rarely what a client wants.
func UnrollDepth(d int) Option {
	return func(asm *assembler) {
		asm.unroll = d
	}
}

// Assemble converts an operator tree into an NFA. The grammar g resolves
// rule references and may be nil for expressions without references.
// Assembly is total over the operator variants; it fails only on an
// unresolved rule reference or on recursion beyond the configured unroll
// depth.
func Assemble(g *op.Grammar, root *op.Expr, opts ...Option) (*Automaton, error) {
	asm := newAssembler(g, opts...)
	a, err := asm.assembleAutomaton(root)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("assembled %v into %d NFA states", root, a.Len())
	return a, nil
}

type assembler struct {
	arena      []State
	grammar    *op.Grammar
	lookaheads []Lookahead
	opts       []Option
	rank       int            // rank for newly allocated states
	nextRank   int            // next unused ordered-choice rank
	unroll     int            // permitted recursion depth for rule references
	active     map[string]int // rule name -> current inline nesting
}

func newAssembler(g *op.Grammar, opts ...Option) *assembler {
	asm := &assembler{
		grammar:  g,
		opts:     opts,
		nextRank: 1,
		active:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(asm)
	}
	return asm
}

func (asm *assembler) assembleAutomaton(root *op.Expr) (*Automaton, error) {
	f, err := asm.assemble(root)
	if err != nil {
		return nil, err
	}
	accept := asm.newState()
	asm.arena[accept].Accept = true
	asm.bind(f, accept)
	return &Automaton{
		states:     asm.arena,
		start:      f.Start(),
		accept:     accept,
		lookaheads: asm.lookaheads,
	}, nil
}

// newState allocates a state in the arena, carrying the current rank.
func (asm *assembler) newState() int {
	asm.arena = append(asm.arena, State{Rank: asm.rank})
	return len(asm.arena) - 1
}

// addTransition appends a transition to a state and returns its slot.
// Callers set Look explicitly (NoLookahead for ordinary transitions).
func (asm *assembler) addTransition(state int, t Transition) int {
	asm.arena[state].Transitions = append(asm.arena[state].Transitions, t)
	return len(asm.arena[state].Transitions) - 1
}

func (asm *assembler) eps(target int) Transition {
	return Transition{Eps: true, Target: target, Look: NoLookahead}
}

// bind wires all dangling transitions of f to the given target state,
// consuming the dangling list.
func (asm *assembler) bind(f *Fragment, target int) {
	for _, d := range f.takeDangling() {
		asm.arena[d.state].Transitions[d.slot].Target = target
	}
}

// assemble dispatches over the operator variants. Every case allocates new
// states only; already-returned fragments are mutated solely through bind.
func (asm *assembler) assemble(e *op.Expr) (*Fragment, error) {
	switch e.Op() {
	case op.Literal:
		return asm.literal(e.Sym()), nil
	case op.Sequence:
		return asm.sequence(e.Children())
	case op.OrderedChoice:
		return asm.choice(e.Children(), true)
	case op.RegularAlternation:
		return asm.choice(e.Children(), false)
	case op.Optional:
		return asm.maybe(e.Child())
	case op.Repetition:
		min, max := e.Bounds()
		return asm.repetition(e.Child(), min, max)
	case op.PositiveLookahead:
		return asm.lookahead(e.Child(), false)
	case op.NegativeLookahead:
		return asm.lookahead(e.Child(), true)
	case op.RuleReference:
		return asm.reference(e.Name())
	case op.CaptureGroup:
		return asm.capture(e.Name(), e.Child())
	}
	panic(fmt.Sprintf("nfa: assembler does not cover operator %v", e.Op()))
}

// literal: a single state with one dangling symbol transition.
func (asm *assembler) literal(sym comba.Predicate) *Fragment {
	s := asm.newState()
	slot := asm.addTransition(s, Transition{Sym: sym, Target: Unbound, Look: NoLookahead})
	return &Fragment{start: s, dangling: []dangle{{s, slot}}}
}

// epsilonFragment: a single state with one dangling epsilon transition.
// Used for the empty sequence and zero-length repetitions.
func (asm *assembler) epsilonFragment() *Fragment {
	s := asm.newState()
	slot := asm.addTransition(s, asm.eps(Unbound))
	return &Fragment{start: s, dangling: []dangle{{s, slot}}}
}

// deadFragment: a state with no outgoing transitions. Paths entering it
// never match. Used for recursion unrolled beyond its depth limit.
func (asm *assembler) deadFragment() *Fragment {
	s := asm.newState()
	return &Fragment{start: s}
}

func (asm *assembler) sequence(children []*op.Expr) (*Fragment, error) {
	if len(children) == 0 {
		return asm.epsilonFragment(), nil
	}
	first, err := asm.assemble(children[0])
	if err != nil {
		return nil, err
	}
	last := first
	for _, c := range children[1:] {
		next, err := asm.assemble(c)
		if err != nil {
			return nil, err
		}
		asm.bind(last, next.Start())
		last = next
	}
	return &Fragment{start: first.Start(), dangling: last.takeDangling()}, nil
}

// choice builds the decision structure shared by ordered choice and regular
// alternation: a new start state with an epsilon transition into each
// alternative, dangling lists merged. For the ordered variant, every
// alternative's states are tagged with a fresh, strictly increasing rank,
// so that leftmost preference survives subset construction (earlier
// alternatives rank lower, and a deterministic state inherits the minimum
// rank of its origin set).
func (asm *assembler) choice(alternatives []*op.Expr, ordered bool) (*Fragment, error) {
	if len(alternatives) == 0 {
		return asm.epsilonFragment(), nil
	}
	start := asm.newState()
	f := &Fragment{start: start}
	outer := asm.rank
	for _, alt := range alternatives {
		if ordered {
			asm.rank = asm.nextRank
			asm.nextRank++
		}
		af, err := asm.assemble(alt)
		if err != nil {
			asm.rank = outer
			return nil, err
		}
		asm.addTransition(start, asm.eps(af.Start()))
		f.dangling = append(f.dangling, af.takeDangling()...)
	}
	asm.rank = outer
	return f, nil
}

// maybe: new start state with an epsilon into the operand and a dangling
// bypass epsilon; the operand's dangling list joins the bypass.
func (asm *assembler) maybe(child *op.Expr) (*Fragment, error) {
	cf, err := asm.assemble(child)
	if err != nil {
		return nil, err
	}
	start := asm.newState()
	asm.addTransition(start, asm.eps(cf.Start()))
	bypass := asm.addTransition(start, asm.eps(Unbound))
	f := &Fragment{start: start}
	f.dangling = append(cf.takeDangling(), dangle{start, bypass})
	return f, nil
}

// repetition unrolls finite repetitions into min mandatory plus (max-min)
// optional copies; unbounded repetitions chain min mandatory copies in
// front of an epsilon loop. Copies are re-assembled rather than cloned, so
// each copy owns fresh states.
func (asm *assembler) repetition(child *op.Expr, min, max int) (*Fragment, error) {
	if max == 0 {
		return asm.epsilonFragment(), nil
	}
	var f *Fragment
	chain := func(next *Fragment) {
		if f == nil {
			f = next
			return
		}
		asm.bind(f, next.Start())
		f = &Fragment{start: f.Start(), dangling: next.takeDangling()}
	}
	for i := 0; i < min; i++ {
		cf, err := asm.assemble(child)
		if err != nil {
			return nil, err
		}
		chain(cf)
	}
	if max == op.Unbounded {
		loop, err := asm.star(child)
		if err != nil {
			return nil, err
		}
		chain(loop)
		return f, nil
	}
	// optional tail copies; every bypass stays dangling
	var bypasses []dangle
	for i := min; i < max; i++ {
		cf, err := asm.assemble(child)
		if err != nil {
			return nil, err
		}
		start := asm.newState()
		asm.addTransition(start, asm.eps(cf.Start()))
		bypass := asm.addTransition(start, asm.eps(Unbound))
		opt := &Fragment{start: start, dangling: cf.takeDangling()}
		chain(opt)
		bypasses = append(bypasses, dangle{start, bypass})
	}
	f.dangling = append(f.dangling, bypasses...)
	return f, nil
}

// star: loop-entry state with an epsilon into the operand and a dangling
// bypass; the operand's dangling transitions feed back into the loop entry.
func (asm *assembler) star(child *op.Expr) (*Fragment, error) {
	cf, err := asm.assemble(child)
	if err != nil {
		return nil, err
	}
	entry := asm.newState()
	asm.addTransition(entry, asm.eps(cf.Start()))
	bypass := asm.addTransition(entry, asm.eps(Unbound))
	asm.bind(cf, entry)
	return &Fragment{start: entry, dangling: []dangle{{entry, bypass}}}, nil
}

// lookahead assembles the operand into an isolated sub-automaton and
// exposes a single dangling epsilon transition gated on the sub-automaton
// having matched (positive) or failed (negative). Input consumed while
// evaluating the gate is rolled back by the runtime.
func (asm *assembler) lookahead(child *op.Expr, negative bool) (*Fragment, error) {
	sub := newAssembler(asm.grammar, asm.opts...)
	machine, err := sub.assembleAutomaton(child)
	if err != nil {
		return nil, err
	}
	idx := len(asm.lookaheads)
	asm.lookaheads = append(asm.lookaheads, Lookahead{Machine: machine, Negative: negative})
	s := asm.newState()
	slot := asm.addTransition(s, Transition{Eps: true, Target: Unbound, Look: idx})
	return &Fragment{start: s, dangling: []dangle{{s, slot}}}, nil
}

// reference inlines the named rule, wrapped into capture tags carrying the
// rule name. Recursive references are inlined up to the configured unroll
// depth and turn into dead paths beyond it.
func (asm *assembler) reference(name string) (*Fragment, error) {
	body := asm.grammar.Rule(name)
	if body == nil {
		gname := "<nil>"
		if asm.grammar != nil {
			gname = asm.grammar.Name()
		}
		return nil, &op.UnresolvedReference{Grammar: gname, Name: name}
	}
	if depth := asm.active[name]; depth > 0 {
		if depth > asm.unroll {
			if asm.unroll == 0 {
				return nil, fmt.Errorf("nfa: rule %q is recursive; assemble with UnrollDepth to bound it", name)
			}
			tracer().Debugf("rule %q exceeds unroll depth %d, path goes dead", name, asm.unroll)
			return asm.deadFragment(), nil
		}
	}
	asm.active[name]++
	f, err := asm.capture(name, body)
	asm.active[name]--
	return f, err
}

// capture wraps the operand between a begin-tagged entry epsilon and an
// end-tagged exit epsilon.
func (asm *assembler) capture(label string, child *op.Expr) (*Fragment, error) {
	start := asm.newState()
	cf, err := asm.assemble(child)
	if err != nil {
		return nil, err
	}
	asm.addTransition(start, Transition{
		Eps: true, Target: cf.Start(), Tag: Tag{Kind: TagBegin, Label: label}, Look: NoLookahead,
	})
	exit := asm.newState()
	asm.bind(cf, exit)
	slot := asm.addTransition(exit, Transition{
		Eps: true, Target: Unbound, Tag: Tag{Kind: TagEnd, Label: label}, Look: NoLookahead,
	})
	return &Fragment{start: start, dangling: []dangle{{exit, slot}}}, nil
}
