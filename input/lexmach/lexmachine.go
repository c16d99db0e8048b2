package lexmach

import (
	"strings"

	"github.com/npillmayer/comba/input"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'comba.input'.
func tracer() tracing.Trace {
	return tracing.Select("comba.input")
}

// LMAdapter wraps a lexmachine lexer so that its token stream can feed an
// automaton as an input sequence: every scanned token contributes its
// category (rune-encoded) as one input symbol.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their category values.
//
// NewLMAdapter will return an error if compiling the lexer failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling lexer: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Sequence scans the complete input and returns the token categories as an
// input sequence for the automaton engines.
func (lm *LMAdapter) Sequence(text string) (input.Sequence, error) {
	s, err := lm.Lexer.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}
	return input.FromTokens(&tokenSource{scanner: s}), nil
}

// tokenSource adapts a lexmachine scanner to input.TokenSource.
type tokenSource struct {
	scanner *lexmachine.Scanner
}

var _ input.TokenSource = (*tokenSource)(nil)

// NextToken is part of the TokenSource interface.
func (src *tokenSource) NextToken() (rune, bool) {
	tok, err, eof := src.scanner.Next()
	for err != nil {
		tracer().Errorf("scanner error: " + err.Error())
		if ui, is := err.(*machines.UnconsumedInput); is {
			src.scanner.TC = ui.FailTC
		}
		tok, err, eof = src.scanner.Next()
	}
	if eof {
		return 0, false
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d = %q", token.Type, string(token.Lexeme))
	return rune(token.Type), true
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
