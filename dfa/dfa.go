package dfa

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/comba"
	"github.com/npillmayer/comba/dfa/sparse"
)

// DState is a deterministic automaton state. Its identity is the origin
// set; rank and acceptance are derived from the origin members.
type DState struct {
	Origin     OriginSet
	Rank       int  // minimum rank of any origin member
	Accept     bool // does the origin set contain an accepting NFA state?
	AcceptRank int  // minimum rank among accepting members; meaningful iff Accept
}

func (s *DState) String() string {
	flag := ""
	if s.Accept {
		flag = "*"
	}
	return fmt.Sprintf("(state%s %v | rank %d)", flag, s.Origin, s.Rank)
}

// DFA is a deterministic automaton produced by Determinize. It contains no
// epsilon transitions; for every state and every input symbol exactly one
// transition applies (possibly into the implicit dead state, reported by
// Step as !ok). The automaton is immutable after construction and safe to
// share across concurrent executions.
type DFA struct {
	states    []DState
	start     int
	alph      *alphabet
	table     *sparse.Table
	tagBlocks [][]TagOp // indexed from transition entries; block 0 is empty
	acceptOps [][]TagOp // per state: residual ops of the winning accepting member
	initialOps []TagOp  // ops pending after closing over the start state
}

// InitialOps returns the capture tag operations already pending when a run
// enters the start state (captures opened before any input is consumed).
func (d *DFA) InitialOps() []TagOp {
	return d.initialOps
}

// Start returns the start state index.
func (d *DFA) Start() int {
	return d.start
}

// Len returns the number of states.
func (d *DFA) Len() int {
	return len(d.states)
}

// State gives read-only access to a state.
func (d *DFA) State(i int) *DState {
	return &d.states[i]
}

// ClassCount returns the size of the alphabet partition.
func (d *DFA) ClassCount() int {
	return d.alph.size()
}

// Step performs one deterministic transition on input symbol r. It returns
// the target state and the capture tag operations riding on the transition;
// ok is false if the symbol leads into the dead state.
func (d *DFA) Step(state int, r rune) (int, []TagOp, bool) {
	target, tags := d.table.Target(state, d.alph.classOf(r))
	if target == sparse.None {
		return 0, nil, false
	}
	return int(target), d.tagBlocks[tags], true
}

// AcceptOps returns the capture tag operations to apply when a match is
// reported at the given state.
func (d *DFA) AcceptOps(state int) []TagOp {
	return d.acceptOps[state]
}

// Expected returns the symbol predicates which would advance some
// transition out of the given state. Used for no-match diagnostics.
func (d *DFA) Expected(state int) []comba.Predicate {
	var preds []comba.Predicate
	for class := 0; class < d.alph.size(); class++ {
		if target, _ := d.table.Target(state, class); target != sparse.None {
			preds = append(preds, d.alph.predicateOf(class))
		}
	}
	return preds
}

// ClassOf exposes the alphabet partition (mainly for tests asserting
// exclusivity/totality of the partitioning).
func (d *DFA) ClassOf(r rune) int {
	return d.alph.classOf(r)
}

// EachTransition calls visit for every transition of the automaton, with
// the transition's symbol predicate reconstructed from its class.
func (d *DFA) EachTransition(visit func(from int, sym comba.Predicate, to int)) {
	d.table.EachEntry(func(state, class int, target, tags int32) {
		visit(state, d.alph.predicateOf(class), int(target))
	})
}

// Dump logs all states and transitions (trace level Debug).
func (d *DFA) Dump() {
	tracer().Debugf("=== DFA: %d states over %d classes, start=%d ===", len(d.states), d.alph.size(), d.start)
	for i := range d.states {
		tracer().Debugf("%v", &d.states[i])
	}
	d.table.EachEntry(func(state, class int, target, tags int32) {
		tracer().Debugf("s%03d --%v--> s%03d  %v", state, d.alph.predicateOf(class), target, d.tagBlocks[tags])
	})
}

// ToGraphViz exports the automaton to the Graphviz Dot format, given a
// filename. A debugging aid.
func (d *DFA) ToGraphViz(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		panic(fmt.Sprintf("file open error: %v", err.Error()))
	}
	defer f.Close()
	d.writeDot(f)
}

func (d *DFA) writeDot(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for i := range d.states {
		s := &d.states[i]
		color := "white"
		if s.Accept {
			color = "lightgray"
		}
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n", i, color, i, s.Origin)
	}
	d.table.EachEntry(func(state, class int, target, tags int32) {
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", state, target, d.alph.predicateOf(class))
	})
	io.WriteString(w, "}\n")
}
