package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/comba"
	"github.com/npillmayer/comba/input"
	"github.com/npillmayer/comba/op"
	"github.com/npillmayer/comba/run"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// demo is a built-in grammar for exploration.
type demo struct {
	grammar *op.Grammar
	root    *op.Expr
	about   string
}

// We provide a handful of small demo grammars, so that users can explore
// matching, ordered choice and the engine fallback without writing a
// grammar front end first.
func makeDemos() map[string]demo {
	demos := make(map[string]demo)

	// leftmost preference: 'ab' / 'a'
	demos["choice"] = demo{
		root:  op.Choice(op.Capture("ab", op.Str("ab")), op.Capture("a", op.Lit('a'))),
		about: "ordered choice 'ab' / 'a' with captures on both alternatives",
	}

	// ident = letter (letter | digit)*
	letter := op.OneOf([]rune("abcdefghijklmnopqrstuvwxyz")...)
	digit := op.OneOf([]rune("0123456789")...)
	demos["ident"] = demo{
		root:  op.Capture("ident", op.Seq(letter, op.Star(op.Alt(letter, digit)))),
		about: "identifier: letter (letter|digit)*",
	}

	// list = '(' item (',' item)* ')', item = ident | list
	g := op.NewGrammar("list")
	g.Define("item", op.Alt(op.Ref("ident"), op.Ref("list")))
	g.Define("ident", op.Plus(letter))
	g.Define("list", op.Seq(op.Lit('('),
		op.Maybe(op.Seq(op.Ref("item"), op.Star(op.Seq(op.Lit(','), op.Ref("item"))))),
		op.Lit(')')))
	demos["list"] = demo{
		grammar: g,
		root:    op.Ref("list"),
		about:   "recursive list grammar, unrolled to a fixed depth",
	}

	// lookahead forces the hybrid engine
	demos["look"] = demo{
		root: op.Seq(op.Not(op.Lit('x')),
			op.Capture("word", op.Plus(letter))),
		about: "negative lookahead !'x' then letters; runs on the hybrid engine",
	}

	return demos
}

// main starts an interactive CLI ("C.REPL"), where users may match input
// text against built-in demo grammars and inspect the automata involved.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gname := flag.String("grammar", "choice", "Demo grammar [choice|ident|list|look]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to CREPL")
	//
	repl, err := readline.New("crepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, demos: makeDemos()}
	if err := intp.selectGrammar(*gname); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if text := strings.TrimSpace(strings.Join(flag.Args(), " ")); text != "" {
		intp.match(text)
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object.
type Intp struct {
	repl    *readline.Instance
	demos   map[string]demo
	current string
	matcher *run.Matcher
}

// selectGrammar compiles one of the demo grammars into a matcher.
func (intp *Intp) selectGrammar(name string) error {
	d, ok := intp.demos[name]
	if !ok {
		return fmt.Errorf("no demo grammar %q; try one of %v", name, intp.names())
	}
	m, err := run.Compile(d.grammar, d.root, run.UnrollDepth(3))
	if err != nil {
		return err
	}
	intp.current = name
	intp.matcher = m
	engine := "hybrid NFA"
	if m.UsesDFA() {
		engine = fmt.Sprintf("DFA, %d states", m.DFA().Len())
	}
	pterm.Info.Println(fmt.Sprintf("grammar %q: %s (%s)", name, d.about, engine))
	return nil
}

func (intp *Intp) names() []string {
	names := make([]string, 0, len(intp.demos))
	for name := range intp.demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.SplitN(line, " ", 2)
		arg := ""
		if len(args) > 1 {
			arg = strings.TrimSpace(args[1])
		}
		quit := intp.Execute(args[0], arg)
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute runs a single REPL command.
func (intp *Intp) Execute(cmd, arg string) bool {
	switch cmd {
	case "quit", "q":
		return true
	case "help", "h":
		intp.help()
	case "grammar", "g":
		if err := intp.selectGrammar(arg); err != nil {
			pterm.Error.Println(err.Error())
		}
	case "match", "m":
		intp.match(arg)
	case "nfa":
		intp.matcher.NFA().Dump() // visible in debug mode
		pterm.Info.Println(fmt.Sprintf("NFA with %d states", intp.matcher.NFA().Len()))
	case "dfa":
		intp.showDFA()
	case "dot":
		if intp.matcher.DFA() == nil {
			pterm.Error.Println("no DFA; grammar runs on the hybrid engine")
		} else if arg == "" {
			pterm.Error.Println("usage: dot <filename>")
		} else {
			intp.matcher.DFA().ToGraphViz(arg)
			pterm.Info.Println("written " + arg)
		}
	case "trace":
		tracer().SetTraceLevel(tracing.TraceLevelFromString(arg))
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %q; try 'help'", cmd))
	}
	return false
}

func (intp *Intp) help() {
	for _, line := range []string{
		"grammar <name>   select a demo grammar " + fmt.Sprintf("%v", intp.names()),
		"match <text>     match text and print the event stream",
		"nfa              dump the assembled NFA (trace level Debug)",
		"dfa              show the deterministic automaton",
		"dot <file>       export the DFA to Graphviz Dot format",
		"trace <level>    set the trace level [Debug|Info|Error]",
		"quit             leave (or <ctrl>D)",
	} {
		pterm.Println(line)
	}
}

// match runs the current matcher over text and prints the event stream.
func (intp *Intp) match(text string) {
	events := intp.matcher.Run(input.Text(text))
	if events.Aborted() {
		pterm.Error.Println("run abandoned")
		return
	}
	for {
		ev, ok := events.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case run.MatchFailure:
			pterm.Error.Println(ev.String())
		default:
			pterm.Info.Println(ev.String())
		}
	}
}

// showDFA renders the deterministic automaton as a tree: one node per
// state, transitions as children.
func (intp *Intp) showDFA() {
	d := intp.matcher.DFA()
	if d == nil {
		pterm.Error.Println("no DFA; grammar runs on the hybrid engine")
		return
	}
	ll := pterm.LeveledList{}
	for i := 0; i < d.Len(); i++ {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: d.State(i).String()})
		from := i
		d.EachTransition(func(f int, sym comba.Predicate, to int) {
			if f == from {
				ll = append(ll, pterm.LeveledListItem{
					Level: 1,
					Text:  fmt.Sprintf("--%s--> s%03d", sym, to),
				})
			}
		})
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	pterm.Info.Println(fmt.Sprintf("DFA with %d states over %d symbol classes",
		d.Len(), d.ClassCount()))
}
