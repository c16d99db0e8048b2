package run

import (
	"github.com/npillmayer/comba"
	"github.com/npillmayer/comba/input"
	"github.com/npillmayer/comba/nfa"
)

// nfaRunner is the hybrid engine: a priority-ordered depth-first walk of
// the NFA with packrat memoization, so that every (state, position) pair is
// explored at most once. It is the engine for automata the converter could
// not determinize, and the only engine evaluating lookahead gates.
type nfaRunner struct {
	a        *nfa.Automaton
	seq      input.Sequence
	memo     map[[2]uint64]bool
	recs     []opRec
	best     *candidate
	furthest uint64
	expected []comba.Predicate
	steps    *int
	limit    int
	probe    bool // lookahead evaluation: stop at the first accept
	aborted  bool
}

func newNFARunner(a *nfa.Automaton, seq input.Sequence, steps *int, limit int) *nfaRunner {
	return &nfaRunner{
		a:     a,
		seq:   seq,
		memo:  make(map[[2]uint64]bool),
		steps: steps,
		limit: limit,
	}
}

// runNFA matches the automaton against the input. A limit > 0 bounds the
// number of explored (state, position) pairs; an exceeded limit abandons
// the run, which by deferred emission leaves an empty, aborted stream.
func runNFA(a *nfa.Automaton, seq input.Sequence, limit int) *Events {
	steps := 0
	rn := newNFARunner(a, seq, &steps, limit)
	rn.explore(a.Start(), 0, a.State(a.Start()).Rank)
	if rn.aborted {
		tracer().Infof("run abandoned after %d steps", steps)
		return &Events{aborted: true}
	}
	if rn.best != nil {
		tracer().Debugf("match (%d…%d), rank %d", 0, rn.best.end, rn.best.rank)
		return &Events{events: confirmEvents(rn.best.recs, comba.Span{0, rn.best.end})}
	}
	tracer().Debugf("no match, furthest position %d", rn.furthest)
	return &Events{events: failureEvents(rn.furthest, rn.expected)}
}

// explore walks from (state, pos) with the given path rank. Capture records
// appended below a branch are truncated when the branch is done; candidates
// snapshot them before that.
func (rn *nfaRunner) explore(state int, pos uint64, rank int) {
	if rn.aborted {
		return
	}
	if rn.probe && rn.best != nil {
		return
	}
	key := [2]uint64{uint64(state), pos}
	if rn.memo[key] {
		return
	}
	rn.memo[key] = true
	*rn.steps++
	if rn.limit > 0 && *rn.steps > rn.limit {
		rn.aborted = true
		return
	}
	st := rn.a.State(state)
	if st.Rank > rank {
		rank = st.Rank
	}
	if st.Accept {
		snap := make([]opRec, len(rn.recs))
		copy(snap, rn.recs)
		c := &candidate{rank: rank, end: pos, recs: snap}
		if c.better(rn.best) {
			rn.best = c
		}
		if rn.probe {
			return
		}
	}
	for _, t := range st.Transitions {
		if t.Eps {
			if t.Look != nfa.NoLookahead {
				la := rn.a.Lookahead(t.Look)
				if rn.matchesAt(la.Machine, pos) == la.Negative {
					continue
				}
			}
			mark := len(rn.recs)
			if t.Tag.Kind != nfa.TagNone {
				rn.recs = append(rn.recs, opRec{kind: t.Tag.Kind, label: t.Tag.Label, pos: pos})
			}
			rn.explore(t.Target, pos, rank)
			rn.recs = rn.recs[:mark]
			continue
		}
		r, ok := rn.seq.At(pos)
		if !ok || !t.Sym.Matches(r) {
			rn.noteExpected(pos, t.Sym)
			continue
		}
		rn.explore(t.Target, pos+1, rank)
	}
}

// matchesAt evaluates a lookahead sub-automaton as a zero-width predicate
// at the given position. The nested runner shares the step counter; its
// abandonment propagates to the outer run.
func (rn *nfaRunner) matchesAt(m *nfa.Automaton, pos uint64) bool {
	sub := newNFARunner(m, rn.seq, rn.steps, rn.limit)
	sub.probe = true
	sub.explore(m.Start(), pos, m.State(m.Start()).Rank)
	if sub.aborted {
		rn.aborted = true
		return false
	}
	return sub.best != nil
}

// noteExpected tracks the furthest position a symbol transition refused to
// advance from, together with the predicates which would have advanced.
func (rn *nfaRunner) noteExpected(pos uint64, sym comba.Predicate) {
	if rn.probe {
		return
	}
	if pos > rn.furthest {
		rn.furthest = pos
		rn.expected = rn.expected[:0]
	}
	if pos == rn.furthest {
		rn.expected = append(rn.expected, sym)
	}
}
