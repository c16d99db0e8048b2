package run

import (
	"fmt"

	"github.com/npillmayer/comba"
)

// EventKind tags the records of an event stream.
type EventKind int8

// The event variants.
const (
	BeginCapture EventKind = iota
	EndCapture
	MatchSuccess
	MatchFailure
)

func (k EventKind) String() string {
	switch k {
	case BeginCapture:
		return "begin-capture"
	case EndCapture:
		return "end-capture"
	case MatchSuccess:
		return "match-success"
	case MatchFailure:
		return "match-failure"
	}
	return "<unknown event>"
}

// Event is one record of a match run. Begin/end events carry a label and a
// position; the terminal success event carries the matched span; the
// terminal failure event carries the furthest position reached and the
// symbol predicates which would have advanced a transition there.
type Event struct {
	Kind     EventKind
	Label    string
	Pos      uint64
	Span     comba.Span
	Expected []comba.Predicate
}

func (e Event) String() string {
	switch e.Kind {
	case BeginCapture, EndCapture:
		return fmt.Sprintf("%s(%s, %d)", e.Kind, e.Label, e.Pos)
	case MatchSuccess:
		return fmt.Sprintf("%s%v", e.Kind, e.Span)
	case MatchFailure:
		return fmt.Sprintf("%s(%d, expecting %v)", e.Kind, e.Pos, e.Expected)
	}
	return e.Kind.String()
}

// Events is a finite event stream. It is restartable per invocation of
// Reset, but not mid-stream. Every stream ends with exactly one terminal
// event (MatchSuccess or MatchFailure), except for aborted runs, which
// carry no events at all — deferred emission guarantees that abandonment
// never leaves a partially-emitted stream.
type Events struct {
	events  []Event
	cursor  int
	aborted bool
}

// Next returns the next event; ok turns false after the terminal event.
func (evs *Events) Next() (Event, bool) {
	if evs.cursor >= len(evs.events) {
		return Event{}, false
	}
	e := evs.events[evs.cursor]
	evs.cursor++
	return e, true
}

// Reset restarts the stream from the beginning.
func (evs *Events) Reset() {
	evs.cursor = 0
}

// Aborted is true if the run was abandoned (step limit) before an outcome
// was reached. Aborted streams are empty.
func (evs *Events) Aborted() bool {
	return evs.aborted
}

// Collect drains the remaining events into a slice.
func (evs *Events) Collect() []Event {
	var all []Event
	for {
		e, ok := evs.Next()
		if !ok {
			return all
		}
		all = append(all, e)
	}
}
