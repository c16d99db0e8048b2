/*
Package dfa converts assembled NFAs into deterministic automata.

Conversion is the classic powerset (subset) construction, organized as an
iterative worklist algorithm: starting from the epsilon closure of the NFA
start state, every unprocessed deterministic state is expanded by
partitioning the outgoing symbol transitions of its underlying NFA states
into symbol classes, taking the union of the target closures per class, and
looking up or creating a deterministic state for each resulting origin set.

A deterministic state's identity IS its origin set — the sorted,
deduplicated list of NFA state indices it represents. Origin sets double as
the hash/comparison key (hashed structurally, never by reference), and no
automatic state minimization takes place: origin-set identity is already the
finer-grained equivalence needed for capture disambiguation downstream.

The alphabet is partitioned exhaustively and without overlaps: every rune
mentioned explicitly by some predicate gets its own class, and a single
"other" class covers the complement, so that each input symbol selects
exactly one outgoing transition per state.

Construction runs under a state-count budget. If the budget is exhausted
before the construction converges, Determinize reports a PartialResult
naming the origin sets implicated in the blow-up instead of silently
producing an oversized automaton; callers then either re-arrange their
grammar or fall back to memoized NFA execution (package run does the latter
automatically). The default budget is O(n·log n) in the NFA state count.

Priority ranks from ordered choice survive the construction: a deterministic
state inherits the minimum rank of its origin set, and acceptance is
reported with the minimum rank of the accepting members. Capture tags
crossed during closure computation are hoisted onto the deterministic
transitions as tag blocks; the common prefix shared by all members moves to
the transition, per-member residue is resolved by rank at accept time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'comba.dfa'.
func tracer() tracing.Trace {
	return tracing.Select("comba.dfa")
}
