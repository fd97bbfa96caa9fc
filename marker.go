package chartwise

import (
	"image/color"
	"math"
	"slices"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

// Location is one marker hit-test record: which entry sits at a screen
// position, where a marker indicator should anchor vertically, and how the
// entry was colored.
type Location struct {
	Entry  entry.Entry
	Y      float32
	Color  color.NRGBA
	Series int
}

// LocationMap indexes marker hit-test records by rounded screen x. It is
// rebuilt from scratch on every draw; a tooltip implementation queries it
// with the pointer position after the frame's drawing completes.
type LocationMap struct {
	xs      []int
	records map[int][]Location
}

// Clear drops all records while retaining capacity for the next frame.
func (lm *LocationMap) Clear() {
	lm.xs = lm.xs[:0]
	clear(lm.records)
}

// Put records a location at screen x. Multiple records at the same x keep
// their insertion order, which for chart renderers is series order.
func (lm *LocationMap) Put(x float32, loc Location) {
	if lm.records == nil {
		lm.records = make(map[int][]Location)
	}
	px := int(math.Round(float64(x)))
	if _, ok := lm.records[px]; !ok {
		at, _ := slices.BinarySearch(lm.xs, px)
		lm.xs = slices.Insert(lm.xs, at, px)
	}
	lm.records[px] = append(lm.records[px], loc)
}

// Len returns the number of distinct screen x positions held.
func (lm *LocationMap) Len() int { return len(lm.xs) }

// Nearest returns the records whose screen x is closest to x. ok is false
// when the map is empty.
func (lm *LocationMap) Nearest(x float32) (px int, locs []Location, ok bool) {
	if len(lm.xs) == 0 {
		return 0, nil, false
	}
	want := int(math.Round(float64(x)))
	at, _ := slices.BinarySearch(lm.xs, want)
	if at == len(lm.xs) {
		at--
	} else if at > 0 && want-lm.xs[at-1] < lm.xs[at]-want {
		at--
	}
	px = lm.xs[at]
	return px, lm.records[px], true
}

// MergeFrom gathers every record from others into lm. The composed
// renderer uses this to present its children's maps as one.
func (lm *LocationMap) MergeFrom(others ...*LocationMap) {
	for _, other := range others {
		for _, px := range other.xs {
			for _, loc := range other.records[px] {
				lm.Put(float32(px), loc)
			}
		}
	}
}
