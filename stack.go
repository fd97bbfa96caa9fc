package chartwise

import "fmt"

// MergeMode is the policy for combining multiple series' columns that
// share an x value.
type MergeMode uint8

const (
	// MergeGrouped lays each series' column out side by side within one
	// x slot. Series never influence each other's geometry.
	MergeGrouped MergeMode = iota
	// MergeStacked piles columns at the same x cumulatively: positive
	// values grow upward from the zero line, negative values downward.
	MergeStacked
)

func (m MergeMode) String() string {
	switch m {
	case MergeGrouped:
		return "grouped"
	case MergeStacked:
		return "stacked"
	}
	return "unknown"
}

// heightStacker accumulates the positive and negative stacked heights per
// raw x value during one drawing pass. It is frame scoped: the owning
// renderer resets it at the end of every draw.
type heightStacker struct {
	pos map[float64]float32
	neg map[float64]float32
}

// heights returns the accumulated negative and positive heights for x,
// defaulting to zero for untouched x values.
func (hs *heightStacker) heights(x float64) (negHeight, posHeight float32) {
	return hs.neg[x], hs.pos[x]
}

// add records a placed column's height against the side matching its
// value's sign.
func (hs *heightStacker) add(x, y float64, height float32) {
	if hs.pos == nil {
		hs.pos = make(map[float64]float32)
		hs.neg = make(map[float64]float32)
	}
	if y < 0 {
		hs.neg[x] += height
	} else {
		hs.pos[x] += height
	}
}

// reset clears the accumulation for the next drawing pass.
func (hs *heightStacker) reset() {
	clear(hs.pos)
	clear(hs.neg)
}

// placeColumn converts one entry into screen-space column coordinates.
// height is the column's extent in pixels, zeroLine the screen y of value
// zero, and negAcc/posAcc the stacked heights already placed at this x.
// Screen y grows downward, so top < bottom for every non-empty column.
func placeColumn(mode MergeMode, y float64, height, zeroLine, negAcc, posAcc float32) (top, bottom float32) {
	switch mode {
	case MergeStacked:
		if y < 0 {
			bottom = zeroLine + height + negAcc
		} else {
			bottom = zeroLine - posAcc
		}
		top = min(bottom-height, bottom)
	case MergeGrouped:
		bottom = zeroLine
		if y < 0 {
			bottom += height
		}
		top = bottom - height
	default:
		panic(fmt.Sprintf("chartwise: unknown merge mode %d", mode))
	}
	return top, bottom
}
