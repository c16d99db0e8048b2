/*
Package input abstracts the input sequences automata run over.

The automaton engines of package run consume finite sequences of symbols
with random access; backtracking execution and lookahead evaluation need to
re-visit positions, so streaming inputs are buffered. Symbols are runes:
plain text input yields its runes, while token-stream input (see sub-package
lexmach) encodes token categories as runes, which lets grammars range over
the output of a scanner just as well as over characters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package input

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'comba.input'.
func tracer() tracing.Trace {
	return tracing.Select("comba.input")
}
