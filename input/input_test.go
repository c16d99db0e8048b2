package input

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTextSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.input")
	defer teardown()
	//
	seq := Text("héllo")
	if seq.Len() != 5 {
		t.Errorf("expected 5 symbols, got %d", seq.Len())
	}
	if r, ok := seq.At(1); !ok || r != 'é' {
		t.Errorf("expected 'é' at position 1, got %q (%v)", string(r), ok)
	}
	if _, ok := seq.At(5); ok {
		t.Errorf("expected no symbol at position 5")
	}
}

func TestFromReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.input")
	defer teardown()
	//
	seq, err := FromReader(strings.NewReader("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if seq.Len() != 2 {
		t.Errorf("expected 2 symbols, got %d", seq.Len())
	}
	if r, _ := seq.At(1); r != 'b' {
		t.Errorf("expected 'b' at position 1, got %q", string(r))
	}
}

type countdown int

func (c *countdown) NextToken() (rune, bool) {
	if *c == 0 {
		return 0, false
	}
	*c--
	return 'n', true
}

func TestFromTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.input")
	defer teardown()
	//
	src := countdown(3)
	seq := FromTokens(&src)
	if seq.Len() != 3 {
		t.Errorf("expected 3 token symbols, got %d", seq.Len())
	}
	if r, ok := seq.At(2); !ok || r != 'n' {
		t.Errorf("expected category 'n' at position 2, got %q (%v)", string(r), ok)
	}
}
