/*
Package run executes automata over input sequences and emits capture events.

Two engines live here. The DFA interpreter steps a determinized automaton
(package dfa) and is the fast path. The hybrid NFA interpreter walks the
assembled NFA directly, in priority order, memoizing (state, position)
pairs packrat-style so that each distinct pair is evaluated at most once;
it is the fallback for automata the converter could not determinize —
budget excess or lookahead gates — and the only engine evaluating
lookaheads (zero-width, with input position rolled back).

Both engines drive the same capture/event emitter. A capture frame passes
through the states

    Open -> Closed-Provisional -> Confirmed
                               -> Discarded
         ------------------------> Discarded

and no event is emitted before its frame is confirmed: events are buffered
and released in a single flush when the match as a whole succeeds. This is
what keeps the event stream properly nested even though a merged
deterministic state may interleave progress through several grammar
branches — emitting on transition would release end events out of nesting
order. Frames on abandoned or out-prioritized paths are dropped without
emission. On a failed match, the emitter reports the furthest input
position reached together with the symbol predicates which would have
advanced there.

Match policy: among all accepting configurations seen, the lowest
ordered-choice rank wins; within equal rank, the longest match wins. This
realizes PEG leftmost preference for ordered choice and greedy regular
semantics for alternation and repetition.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package run

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'comba.run'.
func tracer() tracing.Trace {
	return tracing.Select("comba.run")
}
