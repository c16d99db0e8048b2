package nfa

import (
	"fmt"

	"github.com/npillmayer/comba"
)

// Unbound marks the target of a dangling transition which has not been
// wired to a downstream fragment yet. Finished automata contain no unbound
// targets.
const Unbound = -1

// NoLookahead marks transitions without a lookahead gate.
const NoLookahead = -1

// TagKind distinguishes capture tags riding on epsilon transitions.
type TagKind int8

// Tag kinds. TagBegin opens a capture frame when the transition is taken,
// TagEnd closes it provisionally.
const (
	TagNone TagKind = iota
	TagBegin
	TagEnd
)

func (k TagKind) String() string {
	switch k {
	case TagBegin:
		return "begin"
	case TagEnd:
		return "end"
	}
	return "-"
}

// Tag is a capture marker on an epsilon transition.
type Tag struct {
	Kind  TagKind
	Label string
}

// Transition is a directed edge between two automaton states. It is either
// labelled with a symbol predicate, or it is an epsilon transition, which
// consumes no input. Epsilon transitions may carry a capture tag or a
// lookahead gate.
type Transition struct {
	Eps    bool            // epsilon transition?
	Sym    comba.Predicate // symbol predicate; meaningful iff !Eps
	Target int             // target state index, Unbound while dangling
	Tag    Tag             // capture tag; epsilon transitions only
	Look   int             // lookahead index into the automaton's table, or NoLookahead
}

func (t Transition) String() string {
	label := "ε"
	if !t.Eps {
		label = t.Sym.String()
	} else if t.Tag.Kind != TagNone {
		label = fmt.Sprintf("ε[%s %s]", t.Tag.Kind, t.Tag.Label)
	} else if t.Look != NoLookahead {
		label = fmt.Sprintf("ε[look %d]", t.Look)
	}
	return fmt.Sprintf("--%s--> %d", label, t.Target)
}

// State is a single automaton state: an ordered list of outgoing
// transitions, an accepting flag, and a priority rank (lower rank = earlier
// ordered-choice alternative; states outside of any ordered choice carry
// rank 0).
type State struct {
	Transitions []Transition
	Accept      bool
	Rank        int
}

// Lookahead is an isolated sub-automaton used as a zero-width predicate.
type Lookahead struct {
	Machine  *Automaton
	Negative bool
}

// Automaton is an assembled NFA: an arena of states with a designated start
// and accept state, plus a table of lookahead sub-automata. It is immutable
// after assembly and safe for concurrent use.
type Automaton struct {
	states     []State
	start      int
	accept     int
	lookaheads []Lookahead
}

// Start returns the index of the start state.
func (a *Automaton) Start() int {
	return a.start
}

// AcceptState returns the index of the designated accept state.
func (a *Automaton) AcceptState() int {
	return a.accept
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// State gives access to the state at index i. The returned pointer is into
// the automaton's arena; clients must treat it as read-only.
func (a *Automaton) State(i int) *State {
	return &a.states[i]
}

// LookaheadCount returns the number of lookahead sub-automata.
func (a *Automaton) LookaheadCount() int {
	return len(a.lookaheads)
}

// Lookahead returns the lookahead entry at index i.
func (a *Automaton) Lookahead(i int) Lookahead {
	return a.lookaheads[i]
}

// HasLookaheads is true if any state carries a lookahead gate. Such
// automata cannot be fully determinized and are run by the hybrid engine.
func (a *Automaton) HasLookaheads() bool {
	return len(a.lookaheads) > 0
}

// Dump logs all states and transitions (trace level Debug).
func (a *Automaton) Dump() {
	tracer().Debugf("=== NFA: %d states, start=%d, accept=%d ===", len(a.states), a.start, a.accept)
	for i := range a.states {
		s := &a.states[i]
		flag := " "
		if s.Accept {
			flag = "*"
		}
		tracer().Debugf("%s s%03d (rank %d)", flag, i, s.Rank)
		for _, t := range s.Transitions {
			tracer().Debugf("      %v", t)
		}
	}
}

// --- Fragments --------------------------------------------------------

// Fragment is an intermediate value during assembly: a start state plus a
// list of dangling transitions whose targets are not fixed yet. A
// fragment's dangling list is consumed exactly once, by binding it to a
// downstream fragment or the accept state.
type Fragment struct {
	start    int
	dangling []dangle
	consumed bool
}

// dangle addresses one dangling transition: slot within the transition list
// of a state.
type dangle struct {
	state int
	slot  int
}

// Start returns the fragment's start state index.
func (f *Fragment) Start() int {
	return f.start
}

// takeDangling hands out the dangling list and marks it consumed. A second
// take indicates an assembler bug and panics.
func (f *Fragment) takeDangling() []dangle {
	if f.consumed {
		panic("nfa: dangling transition list consumed twice")
	}
	f.consumed = true
	d := f.dangling
	f.dangling = nil
	return d
}
