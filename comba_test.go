package comba

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestPredicateMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.comba")
	defer teardown()
	//
	tests := []struct {
		pred    Predicate
		yes, no []rune
	}{
		{IsRune('a'), []rune{'a'}, []rune{'b', 'A'}},
		{OneOf('a', 'b', 'c'), []rune{'a', 'c'}, []rune{'d', 'x'}},
		{NoneOf('a', 'b'), []rune{'c', 'z'}, []rune{'a', 'b'}},
		{Any(), []rune{'a', '€', 0}, nil},
	}
	for i, test := range tests {
		for _, r := range test.yes {
			if !test.pred.Matches(r) {
				t.Errorf("#%d: expected %v to match %q", i, test.pred, string(r))
			}
		}
		for _, r := range test.no {
			if test.pred.Matches(r) {
				t.Errorf("#%d: expected %v not to match %q", i, test.pred, string(r))
			}
		}
	}
}

func TestPredicateNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.comba")
	defer teardown()
	//
	p := OneOf('c', 'a', 'b', 'a', 'c')
	if len(p.Runes()) != 3 {
		t.Errorf("expected 3 runes after dedup, got %v", p.Runes())
	}
	if !p.Equal(OneOf('a', 'b', 'c')) {
		t.Errorf("expected %v to equal [abc]", p)
	}
	if p.Equal(NoneOf('a', 'b', 'c')) {
		t.Errorf("set and complemented set may not be equal")
	}
}

func TestSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.comba")
	defer teardown()
	//
	s := Span{2, 5}
	if s.Len() != 3 {
		t.Errorf("expected span length 3, got %d", s.Len())
	}
	x := s.Extend(Span{4, 9})
	if x.From() != 2 || x.To() != 9 {
		t.Errorf("expected extended span (2…9), got %v", x)
	}
	if !(Span{}).IsNull() {
		t.Errorf("zero span should be null")
	}
}
