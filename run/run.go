package run

import (
	"github.com/npillmayer/comba/dfa"
	"github.com/npillmayer/comba/input"
	"github.com/npillmayer/comba/nfa"
	"github.com/npillmayer/comba/op"
)

// Option configures compilation of a matcher.
type Option func(*config)

type config struct {
	unroll    int
	maxStates int
	stepLimit int
	forceNFA  bool
}

// UnrollDepth permits recursive rule references to be inlined up to d
// levels deep (see nfa.UnrollDepth).
func UnrollDepth(d int) Option {
	return func(c *config) {
		c.unroll = d
	}
}

// MaxStates overrides the determinization state budget (see dfa.MaxStates).
func MaxStates(n int) Option {
	return func(c *config) {
		c.maxStates = n
	}
}

// StepLimit bounds the number of (state, position) pairs the hybrid engine
// may explore per run; an exceeded limit abandons the run, which yields an
// empty, aborted event stream. Zero means no limit. The deterministic
// engine needs no limit, it takes at most one step per input symbol.
func StepLimit(n int) Option {
	return func(c *config) {
		c.stepLimit = n
	}
}

// ForceNFA skips determinization; the matcher uses the hybrid engine even
// for grammars which would determinize cleanly. Mainly for engine
// comparison in tests.
func ForceNFA() Option {
	return func(c *config) {
		c.forceNFA = true
	}
}

// Matcher is a compiled grammar expression, ready to match input
// sequences. Matchers are immutable and safe for concurrent use.
type Matcher struct {
	nfa       *nfa.Automaton
	dfa       *dfa.DFA // nil when the hybrid engine is in charge
	stepLimit int
}

// Compile assembles the given expression over grammar g (g may be nil for
// expressions without rule references) and determinizes the result.
// Determinization ending in a *dfa.PartialResult — state budget exceeded
// or lookahead gates present — is not an error at this level: the matcher
// falls back to the hybrid engine. Compile fails only when assembly fails.
func Compile(g *op.Grammar, root *op.Expr, opts ...Option) (*Matcher, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	var aopts []nfa.Option
	if c.unroll > 0 {
		aopts = append(aopts, nfa.UnrollDepth(c.unroll))
	}
	a, err := nfa.Assemble(g, root, aopts...)
	if err != nil {
		return nil, err
	}
	m := &Matcher{nfa: a, stepLimit: c.stepLimit}
	if c.forceNFA {
		return m, nil
	}
	var dopts []dfa.Option
	if c.maxStates > 0 {
		dopts = append(dopts, dfa.MaxStates(c.maxStates))
	}
	d, err := dfa.Determinize(a, dopts...)
	if err != nil {
		if partial, ok := err.(*dfa.PartialResult); ok {
			tracer().Infof("falling back to hybrid engine: %v", partial)
			return m, nil
		}
		return nil, err
	}
	m.dfa = d
	return m, nil
}

// UsesDFA reports whether the matcher runs on the deterministic engine.
func (m *Matcher) UsesDFA() bool {
	return m.dfa != nil
}

// DFA returns the deterministic automaton, or nil for hybrid matchers.
func (m *Matcher) DFA() *dfa.DFA {
	return m.dfa
}

// NFA returns the assembled automaton.
func (m *Matcher) NFA() *nfa.Automaton {
	return m.nfa
}

// Run matches the input sequence and returns the event stream: the capture
// events of the winning path, terminated by a success or failure record.
func (m *Matcher) Run(seq input.Sequence) *Events {
	if m.dfa != nil {
		return runDFA(m.dfa, seq)
	}
	return runNFA(m.nfa, seq, m.stepLimit)
}
