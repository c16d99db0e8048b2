/*
Package nfa assembles grammar operator trees into nondeterministic finite
automata.

Assembly follows Thompson's construction: every operator node becomes a
small automaton fragment — a start state plus a list of unterminated
("dangling") outgoing transitions — and fragments are wired together
according to per-operator composition rules. Binding a fragment's dangling
transitions is destructive and happens exactly once; the dangling list is
handed out through a consuming accessor, and re-consumption panics, since it
indicates an assembler bug rather than a recoverable condition.

States live in an arena owned by the automaton and are addressed by integer
indices, so the finished automaton is a flat, immutable table which can be
shared across concurrent executions (and serialized, if need be) without
chasing pointers.

Ordered choice is encoded by tagging the states of each alternative with a
priority rank; ranks survive subset construction (package dfa) and decide
which alternative wins when several accepting paths end up in one
deterministic state. Regular alternation produces the same graph shape
without rank separation.

Lookahead operators assemble their operand into an isolated sub-automaton,
referenced from a gate transition; gates consume no input and are evaluated
by the runtime (package run).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package nfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'comba.nfa'.
func tracer() tracing.Trace {
	return tracing.Select("comba.nfa")
}
