package dfa

import (
	"github.com/npillmayer/comba"
	"github.com/npillmayer/comba/nfa"
)

// alphabet is the symbol partition for a deterministic automaton. Every
// rune mentioned explicitly by some predicate of the NFA gets a class of
// its own; a final "other" class covers all remaining runes. Predicates
// never distinguish runes they do not mention, so the partition is
// exhaustive and non-overlapping: each input symbol selects exactly one
// class.
type alphabet struct {
	classes   map[rune]int // explicit rune -> class index
	mentioned []rune       // sorted explicit runes; class i = mentioned[i]
	otherRep  rune         // a representative rune for the "other" class
}

// buildAlphabet collects the explicit runes of all symbol predicates.
func buildAlphabet(a *nfa.Automaton) *alphabet {
	seen := make(map[rune]bool)
	for i := 0; i < a.Len(); i++ {
		for _, t := range a.State(i).Transitions {
			if t.Eps {
				continue
			}
			for _, r := range t.Sym.Runes() {
				seen[r] = true
			}
		}
	}
	mentioned := make([]rune, 0, len(seen))
	for r := range seen {
		mentioned = append(mentioned, r)
	}
	sortRunes(mentioned)
	classes := make(map[rune]int, len(mentioned))
	for i, r := range mentioned {
		classes[r] = i
	}
	// representative for "other": the smallest rune not mentioned
	var rep rune
	for seen[rep] {
		rep++
	}
	return &alphabet{classes: classes, mentioned: mentioned, otherRep: rep}
}

// size returns the number of classes, including "other".
func (al *alphabet) size() int {
	return len(al.mentioned) + 1
}

// other returns the index of the "other" class.
func (al *alphabet) other() int {
	return len(al.mentioned)
}

// classOf maps an input symbol to its class.
func (al *alphabet) classOf(r rune) int {
	if c, ok := al.classes[r]; ok {
		return c
	}
	return al.other()
}

// representative returns a rune standing in for all runes of a class.
func (al *alphabet) representative(class int) rune {
	if class == al.other() {
		return al.otherRep
	}
	return al.mentioned[class]
}

// predicateOf reconstructs a symbol predicate describing a class, for
// diagnostics (the "expected symbols" of a failed match).
func (al *alphabet) predicateOf(class int) comba.Predicate {
	if class == al.other() {
		if len(al.mentioned) == 0 {
			return comba.Any()
		}
		return comba.NoneOf(al.mentioned...)
	}
	return comba.IsRune(al.mentioned[class])
}

func sortRunes(x []rune) {
	for i := 1; i < len(x); i++ {
		for j := i; j > 0 && x[j-1] > x[j]; j-- {
			x[j-1], x[j] = x[j], x[j-1]
		}
	}
}
