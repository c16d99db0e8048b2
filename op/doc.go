/*
Package op implements the grammar operator tree.

Grammars are specified by combining operator constructors. Clients build
expressions from literals, sequences, choices, repetitions and lookaheads,
and optionally collect named rules in a grammar object.

Example:

    g := op.NewGrammar("G")
    g.Define("Word", op.Plus(op.OneOf('a', 'b', 'c')))
    g.Define("List", op.Seq(op.Ref("Word"), op.Star(op.Seq(op.Lit(','), op.Ref("Word")))))

This results in the following rules:

    Word ::= [abc]+
    List ::= Word ( ',' Word )*

Expressions are immutable once built. A grammar must be complete — i.e.,
every rule reference must resolve against the rule table — before it can be
fed to the assembler of package nfa; incomplete grammars are reported with
an UnresolvedReference error.

Ordered choice (Choice) and regular alternation (Alt) are deliberately kept
apart: the former commits to the leftmost successful branch, PEG-style, the
latter lets all branches compete and leaves disambiguation to the automaton.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package op

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'comba.op'.
func tracer() tracing.Trace {
	return tracing.Select("comba.op")
}
