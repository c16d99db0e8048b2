package dfa

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/npillmayer/comba/nfa"
	"github.com/npillmayer/comba/op"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func assemble(t *testing.T, e *op.Expr) *nfa.Automaton {
	a, err := nfa.Assemble(nil, e)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestClosureIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	a := assemble(t, op.Star(op.Alt(op.Lit('a'), op.Maybe(op.Lit('b')))))
	c := Closure(a, []int{a.Start()})
	cc := Closure(a, c)
	if !c.Equal(cc) {
		t.Errorf("closure not idempotent: %v vs %v", c, cc)
	}
	if !c.Contains(a.Start()) {
		t.Errorf("closure must contain its seed state")
	}
}

func TestClosureStopsAtLookaheadGates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	a := assemble(t, op.Seq(op.Not(op.Lit('x')), op.Lit('a')))
	c := Closure(a, []int{a.Start()})
	// the gate is an epsilon transition, but only passable at runtime
	if c.Contains(a.AcceptState()) {
		t.Errorf("closure crossed a lookahead gate: %v", c)
	}
}

func TestOriginSetIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	o1 := newOriginSet([]int{3, 1, 2, 1})
	o2 := newOriginSet([]int{1, 2, 3})
	if !o1.Equal(o2) {
		t.Errorf("expected %v to equal %v", o1, o2)
	}
	if o1.key() != o2.key() {
		t.Errorf("equal origin sets must hash equally")
	}
	if o1.Equal(newOriginSet([]int{1, 2})) {
		t.Errorf("origin sets of different size may not be equal")
	}
}

func TestDeterminizeSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	a := assemble(t, op.Seq(op.Lit('x'), op.Maybe(op.Lit('y'))))
	d, err := Determinize(a)
	if err != nil {
		t.Fatal(err)
	}
	d.Dump()
	s, _, ok := d.Step(d.Start(), 'x')
	if !ok {
		t.Fatalf("expected a transition on 'x' from the start state")
	}
	if !d.State(s).Accept {
		t.Errorf("state after 'x' must accept")
	}
	s2, _, ok := d.Step(s, 'y')
	if !ok || !d.State(s2).Accept {
		t.Errorf("state after 'xy' must accept")
	}
	if _, _, ok := d.Step(d.Start(), 'q'); ok {
		t.Errorf("unexpected transition on 'q' from the start state")
	}
}

// The alphabet partition must map every symbol to exactly one class:
// mentioned runes to their own class, everything else to a shared rest
// class.
func TestPartitionTotalAndExclusive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	a := assemble(t, op.Seq(op.OneOf('a', 'b'), op.NoneOf('c')))
	d, err := Determinize(a)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]rune)
	for _, r := range "abc" {
		class := d.ClassOf(r)
		if class < 0 || class >= d.ClassCount() {
			t.Fatalf("class of %q out of range: %d", string(r), class)
		}
		if other, ok := seen[class]; ok {
			t.Errorf("%q and %q share class %d", string(r), string(other), class)
		}
		seen[class] = r
	}
	if d.ClassOf('z') != d.ClassOf('w') {
		t.Errorf("unmentioned runes must share the rest class")
	}
	for _, r := range "abc" {
		if d.ClassOf(r) == d.ClassOf('z') {
			t.Errorf("%q may not fall into the rest class", string(r))
		}
	}
}

// 'ab' / 'a': the earlier alternative carries the lower rank, and the rank
// must arrive at the accepting states.
func TestOrderedChoiceRanksSurviveSubsetConstruction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	a := assemble(t, op.Choice(op.Str("ab"), op.Lit('a')))
	d, err := Determinize(a)
	if err != nil {
		t.Fatal(err)
	}
	s1, _, ok := d.Step(d.Start(), 'a')
	if !ok || !d.State(s1).Accept {
		t.Fatalf("state after 'a' must accept (second alternative)")
	}
	s2, _, ok := d.Step(s1, 'b')
	if !ok || !d.State(s2).Accept {
		t.Fatalf("state after 'ab' must accept (first alternative)")
	}
	if d.State(s2).AcceptRank >= d.State(s1).AcceptRank {
		t.Errorf("first alternative must accept with the lower rank: 'ab' rank %d, 'a' rank %d",
			d.State(s2).AcceptRank, d.State(s1).AcceptRank)
	}
}

func TestCaptureTagsOnAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	a := assemble(t, op.Capture("x", op.Lit('a')))
	d, err := Determinize(a)
	if err != nil {
		t.Fatal(err)
	}
	s, tops, ok := d.Step(d.Start(), 'a')
	if !ok || !d.State(s).Accept {
		t.Fatalf("expected 'a' to be accepted")
	}
	// begin is hoisted onto the transition, end stays with the accepting
	// member; together they bracket the capture
	ops := append(append([]TagOp{}, tops...), d.AcceptOps(s)...)
	var begins, ends int
	for _, tagop := range ops {
		switch tagop.Kind {
		case nfa.TagBegin:
			begins++
			if tagop.Adjust != 1 {
				t.Errorf("begin op should point 1 symbol back, adjust is %d", tagop.Adjust)
			}
		case nfa.TagEnd:
			ends++
			if tagop.Adjust != 0 {
				t.Errorf("end op should point at the current position, adjust is %d", tagop.Adjust)
			}
		}
		if tagop.Label != "x" {
			t.Errorf("tag op label %q, expected 'x'", tagop.Label)
		}
	}
	if begins != 1 || ends != 1 {
		t.Errorf("expected 1 begin and 1 end accept op, got %d/%d", begins, ends)
	}
}

// Fixed-lookback window: (a|b)* b (a|b){10} needs ~2^10 deterministic
// states, far beyond the default budget.
func TestBudgetExceeded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	ab := func() *op.Expr { return op.Alt(op.Lit('a'), op.Lit('b')) }
	a := assemble(t, op.Seq(op.Star(ab()), op.Lit('b'), op.Repeat(ab(), 10, 10)))
	_, err := Determinize(a)
	if err == nil {
		t.Fatalf("expected determinization to exceed the state budget")
	}
	partial, ok := err.(*PartialResult)
	if !ok {
		t.Fatalf("expected *PartialResult, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("expected the budget sentinel to be wrapped, got %v", err)
	}
	if partial.Discovered < partial.Limit {
		t.Errorf("partial result claims %d states under a budget of %d",
			partial.Discovered, partial.Limit)
	}
	if len(partial.Culprits) == 0 {
		t.Errorf("partial result should name culprit origin sets")
	}
	t.Logf("%v", partial)
}

func TestLookaheadNotDeterminized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	a := assemble(t, op.Seq(op.Not(op.Lit('x')), op.Lit('a')))
	_, err := Determinize(a)
	partial, ok := err.(*PartialResult)
	if !ok {
		t.Fatalf("expected *PartialResult for a gated automaton, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrLookaheadGates) {
		t.Errorf("expected the lookahead sentinel to be wrapped, got %v", err)
	}
	if len(partial.Culprits) == 0 {
		t.Errorf("partial result should name the gated origin set")
	}
}

// --- NFA/DFA equivalence ----------------------------------------------

// nfaAccepts is the test oracle: a naive breadth-first NFA simulation.
func nfaAccepts(a *nfa.Automaton, in []rune) bool {
	frontier := Closure(a, []int{a.Start()})
	for _, r := range in {
		var next []int
		for _, s := range frontier {
			for _, tr := range a.State(s).Transitions {
				if !tr.Eps && tr.Sym.Matches(r) {
					next = append(next, tr.Target)
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		frontier = Closure(a, next)
	}
	for _, s := range frontier {
		if a.State(s).Accept {
			return true
		}
	}
	return false
}

func dfaAccepts(d *DFA, in []rune) bool {
	s := d.Start()
	for _, r := range in {
		next, _, ok := d.Step(s, r)
		if !ok {
			return false
		}
		s = next
	}
	return d.State(s).Accept
}

func randExpr(rng *rand.Rand, depth int) *op.Expr {
	if depth == 0 || rng.Intn(4) == 0 {
		return op.Lit(rune('a' + rng.Intn(3)))
	}
	switch rng.Intn(5) {
	case 0:
		return op.Seq(randExpr(rng, depth-1), randExpr(rng, depth-1))
	case 1:
		return op.Alt(randExpr(rng, depth-1), randExpr(rng, depth-1))
	case 2:
		return op.Maybe(randExpr(rng, depth-1))
	case 3:
		return op.Star(randExpr(rng, depth-1))
	}
	return op.Lit(rune('a' + rng.Intn(3)))
}

// Randomized equivalence check over the alphabet {a,b,c}: for grammars
// without ordered choice and lookahead, NFA and DFA must accept exactly
// the same inputs.
func TestEquivalenceFuzzed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	rng := rand.New(rand.NewSource(4711))
	for round := 0; round < 50; round++ {
		e := randExpr(rng, 3)
		a := assemble(t, e)
		d, err := Determinize(a, MaxStates(4096))
		if err != nil {
			t.Fatalf("round %d: %v (grammar %v)", round, err, e)
		}
		for trial := 0; trial < 40; trial++ {
			in := make([]rune, rng.Intn(9))
			for i := range in {
				in[i] = rune('a' + rng.Intn(3))
			}
			want := nfaAccepts(a, in)
			got := dfaAccepts(d, in)
			if want != got {
				t.Fatalf("round %d: NFA says %v, DFA says %v for input %q (grammar %v)",
					round, want, got, string(in), e)
			}
		}
	}
}
