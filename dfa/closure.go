package dfa

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/comba/nfa"
)

// OriginSet is the set of NFA states a deterministic state represents:
// a sorted, deduplicated list of state indices. Two deterministic states
// with equal origin sets are the same state; the origin set is the hash and
// comparison key.
type OriginSet []int

// newOriginSet canonicalizes a list of state indices.
func newOriginSet(states []int) OriginSet {
	o := make([]int, len(states))
	copy(o, states)
	sortInts(o)
	j := 0
	for i := 1; i < len(o); i++ {
		if o[j] == o[i] {
			continue
		}
		j++
		o[j] = o[i]
	}
	if len(o) > 0 {
		o = o[:j+1]
	}
	return OriginSet(o)
}

// Equal compares two origin sets structurally.
func (o OriginSet) Equal(other OriginSet) bool {
	if len(o) != len(other) {
		return false
	}
	for i, s := range o {
		if other[i] != s {
			return false
		}
	}
	return true
}

// Contains tests membership of an NFA state index.
func (o OriginSet) Contains(state int) bool {
	for _, s := range o {
		if s == state {
			return true
		}
		if s > state {
			break
		}
	}
	return false
}

// key produces the hash key for origin-set lookup. The hash is structural
// (over the sorted index vector), never based on reference identity; hash
// collisions are resolved by Equal.
func (o OriginSet) key() string {
	return fmt.Sprintf("%x", structhash.Sha1(struct{ States []int }{o}, 1))
}

func (o OriginSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, s := range o {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%d", s)
	}
	b.WriteString("}")
	return b.String()
}

// insertion sort; origin sets are small
func sortInts(x []int) {
	for i := 1; i < len(x); i++ {
		for j := i; j > 0 && x[j-1] > x[j]; j-- {
			x[j-1], x[j] = x[j], x[j-1]
		}
	}
}

// --- Epsilon closure --------------------------------------------------

// Closure computes the set of NFA states reachable from the given states
// through epsilon transitions alone. It is a pure function: the NFA is not
// mutated, and states already included are not re-expanded, which breaks
// epsilon cycles. Lookahead gates are not crossed — they consume no input
// but are only passable at runtime.
//
// Closure is idempotent: Closure(a, Closure(a, S)) == Closure(a, S).
func Closure(a *nfa.Automaton, states []int) OriginSet {
	included := make(map[int]bool)
	stack := arraystack.New()
	for _, s := range states {
		stack.Push(s)
	}
	for !stack.Empty() {
		x, _ := stack.Pop()
		s := x.(int)
		if included[s] {
			continue
		}
		included[s] = true
		for _, t := range a.State(s).Transitions {
			if t.Eps && t.Look == nfa.NoLookahead && !included[t.Target] {
				stack.Push(t.Target)
			}
		}
	}
	closure := make([]int, 0, len(included))
	for s := range included {
		closure = append(closure, s)
	}
	return newOriginSet(closure)
}

// --- Tagged closure ---------------------------------------------------

// TagOp is a capture tag operation hoisted onto a deterministic transition.
// Adjust counts the input symbols consumed since the position the operation
// refers to (0 = the current position).
type TagOp struct {
	Kind   nfa.TagKind
	Label  string
	Adjust int
}

func (t TagOp) String() string {
	return fmt.Sprintf("%s(%s)-%d", t.Kind, t.Label, t.Adjust)
}

// member is one NFA state within a deterministic state, together with the
// capture tag operations pending on the path that discovered it and the
// path's ordered-choice rank. States downstream of a choice carry rank 0
// again, so the rank a path committed to is the maximum seen along the way.
type member struct {
	id   int
	rank int
	ops  []TagOp
}

func pathRank(current int, state *nfa.State) int {
	if state.Rank > current {
		return state.Rank
	}
	return current
}

// memberClosure is the epsilon closure over members, preserving priority:
// the seed order and per-state transition order define exploration order,
// and a state reached on several paths keeps the first (highest-priority)
// one. Capture tags crossed on the way are appended to the member's pending
// operations. Mirrors the plain Closure, but is kept separate so that
// Closure stays a pure set function.
func memberClosure(a *nfa.Automaton, seed []member) []member {
	visited := make(map[int]bool)
	result := make([]member, 0, len(seed)*2)
	// LIFO stack, seeded in reverse, so that seed[0] is processed first
	stack := make([]member, 0, len(seed))
	for i := len(seed) - 1; i >= 0; i-- {
		stack = append(stack, seed[i])
	}
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[m.id] {
			continue
		}
		visited[m.id] = true
		result = append(result, m)
		trans := a.State(m.id).Transitions
		// push in reverse transition order, so the first transition is
		// explored first
		for i := len(trans) - 1; i >= 0; i-- {
			t := trans[i]
			if !t.Eps || t.Look != nfa.NoLookahead || visited[t.Target] {
				continue
			}
			ops := m.ops
			if t.Tag.Kind != nfa.TagNone {
				ops = make([]TagOp, len(m.ops), len(m.ops)+1)
				copy(ops, m.ops)
				ops = append(ops, TagOp{Kind: t.Tag.Kind, Label: t.Tag.Label})
			}
			stack = append(stack, member{
				id:   t.Target,
				rank: pathRank(m.rank, a.State(t.Target)),
				ops:  ops,
			})
		}
	}
	return result
}

// bumpAdjust returns a copy of ops with every Adjust incremented, to be
// used after consuming one input symbol.
func bumpAdjust(ops []TagOp) []TagOp {
	if len(ops) == 0 {
		return nil
	}
	bumped := make([]TagOp, len(ops))
	for i, op := range ops {
		bumped[i] = TagOp{Kind: op.Kind, Label: op.Label, Adjust: op.Adjust + 1}
	}
	return bumped
}

// hoistCommon strips the longest common prefix of pending operations from
// all members and returns it; the prefix is attached to the deterministic
// transition, the per-member residue stays with the members.
func hoistCommon(members []member) []TagOp {
	if len(members) == 0 {
		return nil
	}
	common := members[0].ops
	for _, m := range members[1:] {
		common = commonPrefix(common, m.ops)
		if len(common) == 0 {
			break
		}
	}
	if len(common) == 0 {
		return nil
	}
	for i := range members {
		members[i].ops = members[i].ops[len(common):]
	}
	return common
}

func commonPrefix(a, b []TagOp) []TagOp {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
