package run

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/comba"
	"github.com/npillmayer/comba/nfa"
)

// opRec records one applied capture tag operation. Both engines append
// records while they advance and truncate the record list when a path is
// abandoned — truncation is the Discarded arm of the frame lifecycle.
// Records are appended in path order, so their positions never decrease
// and begin/end records of surviving frames are properly nested.
type opRec struct {
	kind  nfa.TagKind
	label string
	pos   uint64
}

// frameState is the lifecycle state of a capture frame.
type frameState int8

const (
	frameOpen frameState = iota
	frameClosedProvisional
	frameConfirmed
	frameDiscarded
)

// frame is the bookkeeping record of one capture span.
type frame struct {
	label string
	start uint64
	end   uint64 // meaningful once closed
	state frameState
}

// replayFrames runs the frame state machine over a record list. Begin
// records open frames, end records close the innermost open frame with a
// matching label. Frames still open at the end of the list never reached
// Closed-Provisional and are discarded. The returned perRec slice maps
// each record to the frame it opened or closed (nil for stray ends).
func replayFrames(recs []opRec) (frames []*frame, perRec []*frame) {
	perRec = make([]*frame, len(recs))
	open := arraystack.New()
	for i, rec := range recs {
		switch rec.kind {
		case nfa.TagBegin:
			f := &frame{label: rec.label, start: rec.pos, state: frameOpen}
			frames = append(frames, f)
			perRec[i] = f
			open.Push(f)
		case nfa.TagEnd:
			// innermost open frame with this label; frames skipped over on
			// the way stem from merged branches and are discarded
			for !open.Empty() {
				x, _ := open.Pop()
				f := x.(*frame)
				if f.label == rec.label {
					f.end = rec.pos
					f.state = frameClosedProvisional
					perRec[i] = f
					break
				}
				f.state = frameDiscarded
			}
		}
	}
	for !open.Empty() {
		x, _ := open.Pop()
		x.(*frame).state = frameDiscarded
	}
	return frames, perRec
}

// confirmEvents confirms all provisionally closed frames of a successful
// match and flushes them in a single pass over the record list, in record
// order, which preserves strict begin-before-nested-begin and
// nested-end-before-enclosing-end ordering. The flush ends with a
// MatchSuccess record. This is the single release point of the deferred
// emission protocol.
func confirmEvents(recs []opRec, span comba.Span) []Event {
	frames, perRec := replayFrames(recs)
	for _, f := range frames {
		if f.state == frameClosedProvisional {
			f.state = frameConfirmed
		}
	}
	var events []Event
	for i, rec := range recs {
		f := perRec[i]
		if f == nil || f.state != frameConfirmed {
			continue
		}
		switch rec.kind {
		case nfa.TagBegin:
			events = append(events, Event{Kind: BeginCapture, Label: f.label, Pos: rec.pos})
		case nfa.TagEnd:
			events = append(events, Event{Kind: EndCapture, Label: f.label, Pos: rec.pos})
		}
	}
	return append(events, Event{Kind: MatchSuccess, Span: span})
}

// failureEvents builds the terminal no-match record, with expected symbol
// predicates deduplicated and sorted for stable diagnostics.
func failureEvents(pos uint64, expected []comba.Predicate) []Event {
	set := treeset.NewWith(func(a, b interface{}) int {
		return utils.StringComparator(a.(comba.Predicate).String(), b.(comba.Predicate).String())
	})
	for _, p := range expected {
		set.Add(p)
	}
	preds := make([]comba.Predicate, 0, set.Size())
	for _, x := range set.Values() {
		preds = append(preds, x.(comba.Predicate))
	}
	return []Event{{Kind: MatchFailure, Pos: pos, Expected: preds}}
}
