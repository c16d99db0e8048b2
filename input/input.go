package input

import (
	"io"
)

// Sequence is a finite input of symbols with random access. Positions are
// zero-based; At returns false at or beyond the end of input.
type Sequence interface {
	At(pos uint64) (rune, bool)
	Len() uint64
}

// Text wraps a string as an input sequence of its runes.
func Text(s string) Sequence {
	return runeSeq([]rune(s))
}

// Runes wraps a rune slice as an input sequence. The caller must not
// modify the slice afterwards.
func Runes(rs []rune) Sequence {
	return runeSeq(rs)
}

type runeSeq []rune

func (rs runeSeq) At(pos uint64) (rune, bool) {
	if pos >= uint64(len(rs)) {
		return 0, false
	}
	return rs[pos], true
}

func (rs runeSeq) Len() uint64 {
	return uint64(len(rs))
}

// FromReader drains a rune reader into a buffered sequence. Matching needs
// random access for backtracking and lookahead, so there is no way around
// buffering; memory use is bounded by the input length.
func FromReader(r io.RuneReader) (Sequence, error) {
	var rs []rune
	for {
		ch, _, err := r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rs = append(rs, ch)
	}
	tracer().Debugf("buffered %d input symbols from reader", len(rs))
	return runeSeq(rs), nil
}

// TokenSource produces a stream of token categories, one rune-encoded
// category per token. ok turns false at end of input.
type TokenSource interface {
	NextToken() (cat rune, ok bool)
}

// FromTokens drains a token source into a sequence of category symbols.
func FromTokens(src TokenSource) Sequence {
	var rs []rune
	for {
		cat, ok := src.NextToken()
		if !ok {
			break
		}
		rs = append(rs, cat)
	}
	tracer().Debugf("buffered %d token categories", len(rs))
	return runeSeq(rs)
}
