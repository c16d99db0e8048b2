package sparse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTableLinkAndTarget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	table := NewTable(4, 3)
	if table.M() != 4 || table.N() != 3 {
		t.Errorf("expected a 4x3 table, got %dx%d", table.M(), table.N())
	}
	table.Link(0, 1, 2, 0)
	table.Link(2, 0, 3, 7)
	if table.EntryCount() != 2 {
		t.Errorf("expected 2 entries, got %d", table.EntryCount())
	}
	target, tags := table.Target(0, 1)
	if target != 2 || tags != 0 {
		t.Errorf("expected (2, 0) at (0,1), got (%d, %d)", target, tags)
	}
	target, tags = table.Target(2, 0)
	if target != 3 || tags != 7 {
		t.Errorf("expected (3, 7) at (2,0), got (%d, %d)", target, tags)
	}
	if target, _ = table.Target(1, 1); target != None {
		t.Errorf("expected None for an unlinked entry, got %d", target)
	}
}

func TestTableEachEntry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	table := NewTable(2, 2)
	table.Link(0, 0, 1, 0)
	table.Link(1, 1, 0, 1)
	count := 0
	table.EachEntry(func(state, class int, target, tags int32) {
		count++
		if state < 0 || state >= 2 || class < 0 || class >= 2 {
			t.Errorf("entry out of bounds: (%d, %d)", state, class)
		}
	})
	if count != 2 {
		t.Errorf("expected to visit 2 entries, visited %d", count)
	}
}

func TestTableBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comba.dfa")
	defer teardown()
	//
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected out-of-bounds link to panic")
		}
	}()
	table := NewTable(2, 2)
	table.Link(2, 0, 0, 0)
}
