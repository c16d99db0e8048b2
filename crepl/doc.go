/*
Package crepl/main provides an interactive command line tool (C.REPL)
for exploring comba matchers. Users select one of a handful of built-in
demo grammars (or stick with the default), match input text against it,
and inspect the assembled NFA and the determinized automaton. C.REPL
serves as a sandbox for experiments during grammar development.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'comba.run'
func tracer() tracing.Trace {
	return tracing.Select("comba.run")
}
