package run

import (
	"github.com/npillmayer/comba"
	"github.com/npillmayer/comba/dfa"
	"github.com/npillmayer/comba/input"
)

// candidate is an accepting configuration seen during a run: the rank of
// the path that reached acceptance, the end position, and the capture
// record snapshot with the accept operations already applied.
type candidate struct {
	rank int
	end  uint64
	recs []opRec
}

// better decides the match policy: lowest rank wins, within equal rank the
// longest match wins.
func (c *candidate) better(than *candidate) bool {
	if than == nil {
		return true
	}
	if c.rank != than.rank {
		return c.rank < than.rank
	}
	return c.end > than.end
}

// applyTagOps materializes hoisted tag operations into capture records.
// An operation's Adjust counts symbols consumed since the position it
// refers to, so the recorded position is pos - Adjust.
func applyTagOps(recs []opRec, ops []dfa.TagOp, pos uint64) []opRec {
	for _, op := range ops {
		recs = append(recs, opRec{kind: op.Kind, label: op.Label, pos: pos - uint64(op.Adjust)})
	}
	return recs
}

// runDFA walks the deterministic automaton over the input. The walk is a
// single pass without backtracking; accepting states passed along the way
// become candidates and the match policy picks among them at the end.
func runDFA(d *dfa.DFA, seq input.Sequence) *Events {
	state := d.Start()
	recs := applyTagOps(nil, d.InitialOps(), 0)
	var best *candidate
	note := func(pos uint64) {
		st := d.State(state)
		if !st.Accept {
			return
		}
		snap := make([]opRec, len(recs), len(recs)+len(d.AcceptOps(state)))
		copy(snap, recs)
		snap = applyTagOps(snap, d.AcceptOps(state), pos)
		c := &candidate{rank: st.AcceptRank, end: pos, recs: snap}
		if c.better(best) {
			best = c
		}
	}
	pos := uint64(0)
	note(pos)
	for {
		r, ok := seq.At(pos)
		if !ok {
			break
		}
		next, ops, live := d.Step(state, r)
		if !live {
			break
		}
		pos++
		state = next
		recs = applyTagOps(recs, ops, pos)
		note(pos)
	}
	if best != nil {
		tracer().Debugf("match (%d…%d), rank %d", 0, best.end, best.rank)
		return &Events{events: confirmEvents(best.recs, comba.Span{0, best.end})}
	}
	tracer().Debugf("no match, stuck at position %d", pos)
	return &Events{events: failureEvents(pos, d.Expected(state))}
}
