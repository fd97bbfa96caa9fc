package chartwise

import (
	"testing"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

func TestLocationMapNearest(t *testing.T) {
	var lm LocationMap
	if _, _, ok := lm.Nearest(10); ok {
		t.Error("an empty map should report no nearest location")
	}
	lm.Put(10, Location{Entry: entry.Pt(0, 1)})
	lm.Put(30, Location{Entry: entry.Pt(1, 2)})
	lm.Put(30, Location{Entry: entry.Pt(1, 5), Series: 1})

	type testcase struct {
		name    string
		query   float32
		wantX   int
		wantLen int
	}
	for _, tc := range []testcase{
		{name: "exact", query: 10, wantX: 10, wantLen: 1},
		{name: "closer to left", query: 18, wantX: 10, wantLen: 1},
		{name: "closer to right", query: 25, wantX: 30, wantLen: 2},
		{name: "beyond the end", query: 500, wantX: 30, wantLen: 2},
		{name: "before the start", query: -5, wantX: 10, wantLen: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			px, locs, ok := lm.Nearest(tc.query)
			if !ok {
				t.Fatal("expected a nearest location")
			}
			if px != tc.wantX {
				t.Errorf("expected nearest x %d, got %d", tc.wantX, px)
			}
			if len(locs) != tc.wantLen {
				t.Errorf("expected %d records, got %d", tc.wantLen, len(locs))
			}
		})
	}
}

func TestLocationMapOrderAndClear(t *testing.T) {
	var lm LocationMap
	lm.Put(5, Location{Series: 0})
	lm.Put(5, Location{Series: 1})
	_, locs, _ := lm.Nearest(5)
	if locs[0].Series != 0 || locs[1].Series != 1 {
		t.Error("records at one x should keep insertion order")
	}
	lm.Clear()
	if lm.Len() != 0 {
		t.Errorf("clear should drop all records, %d remain", lm.Len())
	}
}

func TestLocationMapMerge(t *testing.T) {
	var a, b, merged LocationMap
	a.Put(10, Location{Series: 0})
	b.Put(10, Location{Series: 1})
	b.Put(40, Location{Series: 1})
	merged.MergeFrom(&a, &b)
	if merged.Len() != 2 {
		t.Fatalf("expected 2 distinct positions, got %d", merged.Len())
	}
	_, locs, _ := merged.Nearest(10)
	if len(locs) != 2 {
		t.Errorf("records at a shared x should combine, got %d", len(locs))
	}
}
