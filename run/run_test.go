package run

import (
	"testing"

	"github.com/npillmayer/comba/input"
	"github.com/npillmayer/comba/op"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func compile(t *testing.T, g *op.Grammar, e *op.Expr, opts ...Option) *Matcher {
	m, err := Compile(g, e, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMatchSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	m := compile(t, nil, op.Seq(op.Lit('x'), op.Maybe(op.Lit('y'))))
	tests := []struct {
		input string
		match bool
		end   uint64
	}{
		{"x", true, 1},
		{"xy", true, 2},
		{"xyz", true, 2}, // prefix match; 'z' is not consumed
		{"q", false, 0},
		{"", false, 0},
	}
	for _, test := range tests {
		events := m.Run(input.Text(test.input)).Collect()
		if len(events) == 0 {
			t.Fatalf("%q: empty event stream", test.input)
		}
		last := events[len(events)-1]
		if test.match {
			if last.Kind != MatchSuccess {
				t.Errorf("%q: expected success, got %v", test.input, last)
			} else if last.Span.To() != test.end {
				t.Errorf("%q: expected span up to %d, got %v", test.input, test.end, last.Span)
			}
		} else if last.Kind != MatchFailure {
			t.Errorf("%q: expected failure, got %v", test.input, last)
		}
	}
}

func TestOrderedChoiceLeftmost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	m := compile(t, nil, op.Choice(
		op.Capture("ab", op.Str("ab")),
		op.Capture("a", op.Lit('a'))))
	events := m.Run(input.Text("ab")).Collect()
	want := []Event{
		{Kind: BeginCapture, Label: "ab", Pos: 0},
		{Kind: EndCapture, Label: "ab", Pos: 2},
		{Kind: MatchSuccess},
	}
	checkEvents(t, "'ab'/'a' on \"ab\"", events, want, 2)
}

func TestOrderedChoiceCommitsEarly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	// with the short alternative first, 'a' wins although 'ab' would be longer
	m := compile(t, nil, op.Choice(
		op.Capture("a", op.Lit('a')),
		op.Capture("ab", op.Str("ab"))))
	events := m.Run(input.Text("ab")).Collect()
	want := []Event{
		{Kind: BeginCapture, Label: "a", Pos: 0},
		{Kind: EndCapture, Label: "a", Pos: 1},
		{Kind: MatchSuccess},
	}
	checkEvents(t, "'a'/'ab' on \"ab\"", events, want, 1)
}

func TestAlternationIsGreedy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	m := compile(t, nil, op.Alt(op.Lit('a'), op.Str("ab")))
	events := m.Run(input.Text("ab")).Collect()
	last := events[len(events)-1]
	if last.Kind != MatchSuccess || last.Span.To() != 2 {
		t.Errorf("expected regular alternation to match greedily up to 2, got %v", last)
	}
}

func TestEventNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	m := compile(t, nil, op.Capture("outer", op.Seq(
		op.Capture("left", op.Lit('a')),
		op.Capture("right", op.Lit('b')))))
	events := m.Run(input.Text("ab")).Collect()
	want := []Event{
		{Kind: BeginCapture, Label: "outer", Pos: 0},
		{Kind: BeginCapture, Label: "left", Pos: 0},
		{Kind: EndCapture, Label: "left", Pos: 1},
		{Kind: BeginCapture, Label: "right", Pos: 1},
		{Kind: EndCapture, Label: "right", Pos: 2},
		{Kind: EndCapture, Label: "outer", Pos: 2},
		{Kind: MatchSuccess},
	}
	checkEvents(t, "nested captures", events, want, 2)
}

func TestEnginesAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	e := op.Seq(op.Capture("head", op.Plus(op.OneOf('a', 'b'))), op.Lit('c'))
	fast := compile(t, nil, e)
	slow := compile(t, nil, e, ForceNFA())
	if !fast.UsesDFA() || slow.UsesDFA() {
		t.Fatalf("engine selection broken: fast=%v slow=%v", fast.UsesDFA(), slow.UsesDFA())
	}
	for _, text := range []string{"ac", "abbac", "c", "abx", ""} {
		evFast := fast.Run(input.Text(text)).Collect()
		evSlow := slow.Run(input.Text(text)).Collect()
		if len(evFast) != len(evSlow) {
			t.Fatalf("%q: engines emit %d vs %d events", text, len(evFast), len(evSlow))
		}
		for i := range evFast {
			if evFast[i].Kind != evSlow[i].Kind || evFast[i].Label != evSlow[i].Label ||
				evFast[i].Pos != evSlow[i].Pos || evFast[i].Span != evSlow[i].Span {
				t.Errorf("%q: event #%d differs: %v vs %v", text, i, evFast[i], evSlow[i])
			}
		}
	}
}

func TestLookaheadRunsHybrid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	letters := op.OneOf('a', 'b', 'c', 'x')
	m := compile(t, nil, op.Seq(op.Not(op.Lit('x')), op.Capture("word", op.Plus(letters))))
	if m.UsesDFA() {
		t.Fatalf("gated automaton must fall back to the hybrid engine")
	}
	events := m.Run(input.Text("abc")).Collect()
	last := events[len(events)-1]
	if last.Kind != MatchSuccess || last.Span.To() != 3 {
		t.Errorf("expected \"abc\" to match fully, got %v", last)
	}
	events = m.Run(input.Text("xbc")).Collect()
	if events[len(events)-1].Kind != MatchFailure {
		t.Errorf("expected \"xbc\" to be rejected by the lookahead")
	}
}

func TestPositiveLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	m := compile(t, nil, op.Seq(op.And(op.Lit('a')), op.OneOf('a', 'b')))
	last := func(text string) Event {
		events := m.Run(input.Text(text)).Collect()
		return events[len(events)-1]
	}
	if ev := last("a"); ev.Kind != MatchSuccess {
		t.Errorf("expected \"a\" to match, got %v", ev)
	}
	if ev := last("b"); ev.Kind != MatchFailure {
		t.Errorf("expected \"b\" to fail the lookahead, got %v", ev)
	}
}

func TestRecursiveGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	g := op.NewGrammar("parens")
	g.Define("r", op.Seq(op.Lit('('), op.Maybe(op.Ref("r")), op.Lit(')')))
	m := compile(t, g, op.Ref("r"), UnrollDepth(2))
	events := m.Run(input.Text("(())")).Collect()
	want := []Event{
		{Kind: BeginCapture, Label: "r", Pos: 0},
		{Kind: BeginCapture, Label: "r", Pos: 1},
		{Kind: EndCapture, Label: "r", Pos: 3},
		{Kind: EndCapture, Label: "r", Pos: 4},
		{Kind: MatchSuccess},
	}
	checkEvents(t, "nested parens", events, want, 4)
	// nesting deeper than the unroll depth goes dead
	events = m.Run(input.Text("((()))")).Collect()
	if events[len(events)-1].Kind != MatchFailure {
		t.Errorf("expected nesting beyond the unroll depth not to match")
	}
}

func TestFailureDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	for _, opts := range [][]Option{nil, {ForceNFA()}} {
		m := compile(t, nil, op.Str("ab"), opts...)
		events := m.Run(input.Text("ac")).Collect()
		if len(events) != 1 {
			t.Fatalf("expected a single failure event, got %d events", len(events))
		}
		fail := events[0]
		if fail.Kind != MatchFailure || fail.Pos != 1 {
			t.Errorf("expected failure at position 1, got %v", fail)
		}
		if len(fail.Expected) != 1 || !fail.Expected[0].Matches('b') {
			t.Errorf("expected diagnostics to name 'b', got %v", fail.Expected)
		}
	}
}

func TestStepLimitAborts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	m := compile(t, nil, op.Star(op.OneOf('a', 'b')), ForceNFA(), StepLimit(2))
	events := m.Run(input.Text("abababab"))
	if !events.Aborted() {
		t.Fatalf("expected the run to be abandoned")
	}
	if len(events.Collect()) != 0 {
		t.Errorf("aborted runs must not emit events")
	}
}

func TestEventsReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.run")
	defer teardown()
	//
	m := compile(t, nil, op.Lit('a'))
	events := m.Run(input.Text("a"))
	first := events.Collect()
	events.Reset()
	second := events.Collect()
	if len(first) == 0 || len(first) != len(second) {
		t.Errorf("expected Reset to restart the stream: %d vs %d events", len(first), len(second))
	}
}

// checkEvents compares an event stream against the expected shape; the
// terminal success event is checked against the expected end position.
func checkEvents(t *testing.T, name string, got, want []Event, end uint64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d events, got %d: %v", name, len(want), len(got), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Kind != w.Kind {
			t.Errorf("%s: event #%d: expected %v, got %v", name, i, w.Kind, g.Kind)
			continue
		}
		if w.Kind == MatchSuccess {
			if g.Span.To() != end {
				t.Errorf("%s: expected match up to %d, got %v", name, end, g.Span)
			}
			continue
		}
		if g.Label != w.Label || g.Pos != w.Pos {
			t.Errorf("%s: event #%d: expected %v, got %v", name, i, w, g)
		}
	}
}
