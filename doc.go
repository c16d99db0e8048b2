/*
Package comba is a combinator-to-automaton matching toolbox.

Comba takes a grammar given as a tree of combinator operators — literals,
sequences, ordered (PEG-style) choice, regular alternation, options,
repetitions, lookahead — and turns it into finite-state automata, which are
then executed over an input sequence. Matching does not produce a parse tree,
but rather a stream of begin/end capture events. Package structure is as
follows:

■ op: Package op holds the grammar operator tree and a set of combinator
constructors, together with a rule table for named (and possibly recursive)
rules.

■ nfa: Package nfa assembles operator trees into nondeterministic automaton
fragments, Thompson-style.

■ dfa: Package dfa converts assembled NFAs into deterministic automata by
subset construction, under a configurable state-count budget.

■ run: Package run executes automata over input sequences and emits capture
events, reconciling ordered-choice and regular-alternation semantics.

■ input: Package input abstracts input sequences (strings, runes, readers,
token streams).

The base package contains small data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package comba
