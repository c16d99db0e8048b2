package comba

import (
	"fmt"
	"sort"
	"strings"
)

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. For every
// capture, the event stream will track which input positions the capture
// covers. A span denotes a start position and the position just behind the
// end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Symbol predicates ------------------------------------------------

// Predicate describes a set of input symbols a transition is willing to
// consume. Input symbols are runes; scanners feeding token streams encode
// token categories as runes, too. A predicate is either a (small) explicit
// set of runes, the complement of such a set, or "any" (the complement of
// the empty set).
//
// Predicates are value types and immutable after construction.
type Predicate struct {
	runes  []rune // sorted, deduplicated
	negate bool   // match the complement of runes
}

// IsRune creates a predicate matching a single rune.
func IsRune(r rune) Predicate {
	return Predicate{runes: []rune{r}}
}

// OneOf creates a predicate matching any rune out of a given set.
func OneOf(runes ...rune) Predicate {
	return Predicate{runes: normalize(runes)}
}

// NoneOf creates a predicate matching every rune except the given ones.
func NoneOf(runes ...rune) Predicate {
	return Predicate{runes: normalize(runes), negate: true}
}

// Any creates a predicate matching every input symbol.
func Any() Predicate {
	return Predicate{negate: true}
}

func normalize(runes []rune) []rune {
	r := make([]rune, len(runes))
	copy(r, runes)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	j := 0
	for i := 1; i < len(r); i++ {
		if r[j] == r[i] {
			continue
		}
		j++
		r[j] = r[i]
	}
	if len(r) > 0 {
		r = r[:j+1]
	}
	return r
}

// Matches tests a single input symbol against the predicate.
func (p Predicate) Matches(r rune) bool {
	i := sort.Search(len(p.runes), func(i int) bool { return p.runes[i] >= r })
	found := i < len(p.runes) && p.runes[i] == r
	if p.negate {
		return !found
	}
	return found
}

// IsAny returns true for the match-all predicate.
func (p Predicate) IsAny() bool {
	return p.negate && len(p.runes) == 0
}

// IsNegated returns true for complemented predicates (including "any").
func (p Predicate) IsNegated() bool {
	return p.negate
}

// Runes returns the explicit runes the predicate refers to (for negated
// predicates these are the excluded ones). Clients must not modify the
// returned slice.
func (p Predicate) Runes() []rune {
	return p.runes
}

// Equal compares two predicates structurally.
func (p Predicate) Equal(other Predicate) bool {
	if p.negate != other.negate || len(p.runes) != len(other.runes) {
		return false
	}
	for i, r := range p.runes {
		if other.runes[i] != r {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	if p.IsAny() {
		return "·"
	}
	var b strings.Builder
	if len(p.runes) == 1 && !p.negate {
		fmt.Fprintf(&b, "'%s'", string(p.runes[0]))
		return b.String()
	}
	b.WriteString("[")
	if p.negate {
		b.WriteString("^")
	}
	for _, r := range p.runes {
		b.WriteString(string(r))
	}
	b.WriteString("]")
	return b.String()
}
