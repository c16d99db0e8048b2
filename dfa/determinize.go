package dfa

import (
	"errors"
	"fmt"
	"math"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/comba/dfa/sparse"
	"github.com/npillmayer/comba/nfa"
)

// Option configures the determinization.
type Option func(*converter)

// MaxStates overrides the state-count budget. Construction aborts with a
// PartialResult when the number of discovered states would exceed n.
func MaxStates(n int) Option {
	return func(c *converter) {
		c.limit = n
	}
}

// DefaultBudget is the default state bound for an NFA of n states:
// ceil(n·log2(n)), with a small floor for tiny automata.
func DefaultBudget(n int) int {
	if n < 4 {
		return n + 4
	}
	return int(math.Ceil(float64(n)*math.Log2(float64(n)))) + 4
}

// Sentinel causes for incomplete determinization, wrapped by PartialResult
// and recoverable with errors.Is.
var (
	ErrBudgetExceeded = errors.New("state budget exceeded")
	ErrLookaheadGates = errors.New("lookahead gates are evaluated at runtime, not determinized")
)

// PartialResult reports a determinization which could not be carried to
// convergence. It names the origin sets implicated in the excess, so that
// callers can decide on a mitigation: re-arrange the grammar, raise the
// budget, or execute the NFA directly with memoization (package run).
// PartialResult implements error and wraps one of the sentinel causes.
type PartialResult struct {
	Limit      int         // the configured state budget
	Discovered int         // states discovered before giving up
	Culprits   []OriginSet // origin sets involved in the excess
	Reason     error
}

func (p *PartialResult) Error() string {
	return fmt.Sprintf("determinization incomplete (%v): %d states discovered, budget %d",
		p.Reason, p.Discovered, p.Limit)
}

func (p *PartialResult) Unwrap() error {
	return p.Reason
}

// Determinize converts an NFA into a deterministic automaton by subset
// construction. On failure the returned error is a *PartialResult (budget
// exceeded, or lookahead gates present, which cannot be determinized).
func Determinize(a *nfa.Automaton, opts ...Option) (*DFA, error) {
	c := &converter{
		a:      a,
		alph:   buildAlphabet(a),
		limit:  DefaultBudget(a.Len()),
		lookup: make(map[string][]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	d, err := c.construct()
	if err != nil {
		return nil, err
	}
	tracer().Infof("determinized %d NFA states into %d DFA states over %d classes",
		a.Len(), d.Len(), d.ClassCount())
	return d, nil
}

type edge struct {
	from, class, to int
	tags            []TagOp
}

type converter struct {
	a          *nfa.Automaton
	alph       *alphabet
	limit      int
	states     []DState
	members    [][]member // per state: origin members in priority order
	lookup     map[string][]int
	trans      []edge
	initialOps []TagOp
}

func (c *converter) construct() (*DFA, error) {
	if c.a.HasLookaheads() {
		return nil, &PartialResult{
			Limit:    c.limit,
			Culprits: []OriginSet{Closure(c.a, []int{c.a.Start()})},
			Reason:   ErrLookaheadGates,
		}
	}
	seed := memberClosure(c.a, []member{{id: c.a.Start(), rank: c.a.State(c.a.Start()).Rank}})
	c.initialOps = hoistCommon(seed)
	start, _, err := c.lookupOrCreate(seed)
	if err != nil {
		return nil, err
	}
	worklist := arraylist.New()
	worklist.Add(start)
	for worklist.Size() > 0 {
		x, _ := worklist.Get(0)
		worklist.Remove(0)
		s := x.(int)
		for class := 0; class < c.alph.size(); class++ {
			next := c.move(s, class)
			if len(next) == 0 {
				continue
			}
			closure := memberClosure(c.a, next)
			common := hoistCommon(closure)
			target, created, err := c.lookupOrCreate(closure)
			if err != nil {
				return nil, err
			}
			if created {
				worklist.Add(target)
			}
			c.trans = append(c.trans, edge{from: s, class: class, to: target, tags: common})
		}
	}
	c.prune(start)
	return c.finish(start), nil
}

// move collects the origin members reachable from state s by consuming a
// symbol of the given class, in priority order, with pending tag operations
// shifted by one consumed symbol.
func (c *converter) move(s, class int) []member {
	rep := c.alph.representative(class)
	var next []member
	for _, m := range c.members[s] {
		for _, t := range c.a.State(m.id).Transitions {
			if t.Eps || !t.Sym.Matches(rep) {
				continue
			}
			next = append(next, member{
				id:   t.Target,
				rank: pathRank(m.rank, c.a.State(t.Target)),
				ops:  bumpAdjust(m.ops),
			})
		}
	}
	return next
}

// lookupOrCreate finds the deterministic state for the origin set of the
// given members, or creates it, enforcing the state budget. When the state
// exists already, the members (and their residual operations) of the first
// discovery win.
func (c *converter) lookupOrCreate(members []member) (int, bool, error) {
	ids := make([]int, len(members))
	for i, m := range members {
		ids[i] = m.id
	}
	origin := newOriginSet(ids)
	key := origin.key()
	for _, cand := range c.lookup[key] {
		if c.states[cand].Origin.Equal(origin) {
			return cand, false, nil
		}
	}
	if len(c.states) >= c.limit {
		return 0, false, &PartialResult{
			Limit:      c.limit,
			Discovered: len(c.states),
			Culprits:   c.culprits(origin),
			Reason:     ErrBudgetExceeded,
		}
	}
	state := DState{Origin: origin, Rank: math.MaxInt32}
	state.AcceptRank = math.MaxInt32
	for _, m := range members {
		if m.rank < state.Rank {
			state.Rank = m.rank
		}
		if c.a.State(m.id).Accept {
			state.Accept = true
			if m.rank < state.AcceptRank {
				state.AcceptRank = m.rank
			}
		}
	}
	id := len(c.states)
	c.states = append(c.states, state)
	c.members = append(c.members, members)
	c.lookup[key] = append(c.lookup[key], id)
	tracer().Debugf("created DFA state %d = %v", id, origin)
	return id, true, nil
}

// culprits names the origin sets implicated in a budget excess: the one
// whose creation overflowed, plus the most recently discovered states,
// which in a blow-up are the ones breeding new subsets.
func (c *converter) culprits(overflow OriginSet) []OriginSet {
	culprits := []OriginSet{overflow}
	for i := len(c.states) - 1; i >= 0 && len(culprits) < 8; i-- {
		culprits = append(culprits, c.states[i].Origin)
	}
	return culprits
}

// prune removes states unreachable from the start state; removal cascades
// to transitions referencing them. The worklist construction only ever
// discovers reachable states, but the sweep keeps the invariant independent
// of construction details.
func (c *converter) prune(start int) {
	reachable := make([]bool, len(c.states))
	reachable[start] = true
	frontier := []int{start}
	for len(frontier) > 0 {
		s := frontier[0]
		frontier = frontier[1:]
		for _, e := range c.trans {
			if e.from == s && !reachable[e.to] {
				reachable[e.to] = true
				frontier = append(frontier, e.to)
			}
		}
	}
	remap := make([]int, len(c.states))
	kept := 0
	for i := range c.states {
		if reachable[i] {
			remap[i] = kept
			c.states[kept] = c.states[i]
			c.members[kept] = c.members[i]
			kept++
		} else {
			remap[i] = -1
			tracer().Debugf("pruning unreachable DFA state %d = %v", i, c.states[i].Origin)
		}
	}
	if kept == len(c.states) {
		return
	}
	c.states = c.states[:kept]
	c.members = c.members[:kept]
	pruned := c.trans[:0]
	for _, e := range c.trans {
		if remap[e.from] >= 0 && remap[e.to] >= 0 {
			e.from, e.to = remap[e.from], remap[e.to]
			pruned = append(pruned, e)
		}
	}
	c.trans = pruned
}

// finish materializes the transition table and tag blocks.
func (c *converter) finish(start int) *DFA {
	table := sparse.NewTable(len(c.states), c.alph.size())
	blocks := [][]TagOp{nil} // block 0 is the empty block
	blockIndex := map[string]int32{"": 0}
	intern := func(ops []TagOp) int32 {
		if len(ops) == 0 {
			return 0
		}
		key := fmt.Sprintf("%v", ops)
		if i, ok := blockIndex[key]; ok {
			return i
		}
		i := int32(len(blocks))
		blocks = append(blocks, ops)
		blockIndex[key] = i
		return i
	}
	for _, e := range c.trans {
		table.Link(e.from, e.class, int32(e.to), intern(e.tags))
	}
	acceptOps := make([][]TagOp, len(c.states))
	for i, ms := range c.members {
		if !c.states[i].Accept {
			continue
		}
		for _, m := range ms {
			if c.a.State(m.id).Accept {
				acceptOps[i] = m.ops
				break // first member in priority order wins
			}
		}
	}
	return &DFA{
		states:     c.states,
		start:      start,
		alph:       c.alph,
		table:      table,
		tagBlocks:  blocks,
		acceptOps:  acceptOps,
		initialOps: c.initialOps,
	}
}
