/*
Package sparse implements a sparse transition table for deterministic
automata. Rows are automaton states, columns are symbol classes of the
alphabet partition. Every entry is a pair (int32,int32): the target state
and a reference to a block of capture tag operations.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
)

// Table is a sparse transition table. Construct with
//
//     T := sparse.NewTable(states, classes)
//
// Now
//
//     T.Link(2, 3, 17, 4)         // state 2 --class 3--> state 17, tag block 4
//     s, tags := T.Target(2, 3)   // returns 17, 4
//     s, _ = T.Target(5, 0)       // returns None for unset entries
//
// Entries cannot be deleted, but may be overwritten. Space for overwritten
// values is not re-claimed.
type Table struct {
	entries []triplet
	rowcnt  int
	colcnt  int
}

// None signals an empty entry, i.e. no transition (min int32).
const None = -2147483648

// Triplet values to store
type triplet struct {
	row, col int
	target   int32
	tags     int32
}

// NewTable creates a table for m states over n symbol classes.
func NewTable(m, n int) *Table {
	return &Table{
		entries: []triplet{},
		rowcnt:  m,
		colcnt:  n,
	}
}

// M returns the state (row) count.
func (t *Table) M() int {
	return t.rowcnt
}

// N returns the symbol-class (column) count.
func (t *Table) N() int {
	return t.colcnt
}

// EntryCount returns the number of transitions in the table.
func (t *Table) EntryCount() int {
	return len(t.entries)
}

// Target returns the target state and tag block for (state, class), or
// (None, None) for empty entries.
func (t *Table) Target(state, class int) (int32, int32) {
	for _, e := range t.entries {
		if !e.storedLeftOf(state, class) { // have skipped all lesser indices
			if e.storedAt(state, class) {
				return e.target, e.tags
			}
			break
		}
	}
	return None, None
}

// Link records a transition from state via class to target, with a tag
// block reference (block 0 is conventionally the empty block). An existing
// entry is overwritten.
func (t *Table) Link(state, class int, target, tags int32) *Table {
	if state < 0 || state >= t.rowcnt || class < 0 || class >= t.colcnt {
		panic(fmt.Sprintf("sparse.Table.Link() out of bounds: (%d,%d)", state, class))
	}
	at := 0 // will be position of new entry
	for k, e := range t.entries {
		if !e.storedLeftOf(state, class) { // have skipped all lesser indices
			if e.storedAt(state, class) { // entry already present
				t.entries[k].target = target
				t.entries[k].tags = tags
				return t
			}
			break // no old entry present
		}
		at++
	}
	enew := triplet{row: state, col: class, target: target, tags: tags}
	// the following 3 lines have to work for at being the right edge or not
	t.entries = append(t.entries, enew)      // make room
	copy(t.entries[at+1:], t.entries[at:])   // copy remainder one index to right
	t.entries[at] = enew                     // if not append-case: insert new triplet
	return t
}

// EachEntry iterates over all transitions in (state, class) order.
func (t *Table) EachEntry(mapper func(state, class int, target, tags int32)) {
	for _, e := range t.entries {
		mapper(e.row, e.col, e.target, e.tags)
	}
}

func (e *triplet) storedLeftOf(i, j int) bool {
	return e.row < i || e.row == i && e.col < j
}

func (e *triplet) storedAt(i, j int) bool {
	return (e.row == i && e.col == j)
}
