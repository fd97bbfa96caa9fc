package entry

import (
	"fmt"
	"math"
)

// stepEpsilon bounds the floating error tolerated when deriving the shared
// x step and when checking entry alignment against it.
const stepEpsilon = 1e-5

// Model is an ordered set of entry collections (one per series) plus the
// aggregates the renderers need each frame. A Model is immutable once built:
// any data change produces a new Model via NewModel.
type Model struct {
	Collections [][]Entry

	MinX, MaxX float64
	MinY, MaxY float64
	// XStep is the greatest common divisor of the distances between
	// neighboring x values across all collections. Every entry's x is
	// expected to sit on a multiple of this step.
	XStep float64
	// StackedPosY is the largest cumulative positive y across all
	// collections at any single x. StackedNegY is the smallest (most
	// negative) cumulative negative y. Stacked merge mode scales its
	// y range from these rather than from the raw extrema.
	StackedPosY float64
	StackedNegY float64
}

// NewModel builds a Model and precomputes its aggregates. Each collection's
// x values must be in non-decreasing order; out-of-order data panics, since
// every downstream layout computation assumes sorted series.
func NewModel(collections ...[]Entry) *Model {
	m := &Model{
		Collections: collections,
		XStep:       1,
	}
	var (
		posSums = make(map[float64]float64)
		negSums = make(map[float64]float64)
		seen    bool
	)
	for ci, collection := range collections {
		for i, e := range collection {
			if i > 0 && e.X < collection[i-1].X {
				panic(fmt.Sprintf(
					"entry: collection %d out of order: x %v follows %v",
					ci, e.X, collection[i-1].X,
				))
			}
			if !seen {
				m.MinX, m.MaxX = e.X, e.X
				m.MinY, m.MaxY = e.Y, e.Y
				seen = true
			} else {
				m.MinX = min(m.MinX, e.X)
				m.MaxX = max(m.MaxX, e.X)
				m.MinY = min(m.MinY, e.Y)
				m.MaxY = max(m.MaxY, e.Y)
			}
			if e.Y >= 0 {
				posSums[e.X] += e.Y
			} else {
				negSums[e.X] += e.Y
			}
		}
	}
	for _, sum := range posSums {
		m.StackedPosY = max(m.StackedPosY, sum)
	}
	for _, sum := range negSums {
		m.StackedNegY = min(m.StackedNegY, sum)
	}
	m.XStep = xGcd(collections)
	return m
}

// Empty reports whether the model holds no entries at all.
func (m *Model) Empty() bool {
	if m == nil {
		return true
	}
	for _, c := range m.Collections {
		if len(c) > 0 {
			return false
		}
	}
	return true
}

// AlignedTo reports whether x sits on a multiple of step, within tolerance,
// measured from the model's MinX.
func (m *Model) AlignedTo(x float64) bool {
	if m.XStep == 0 {
		return true
	}
	ratio := (x - m.MinX) / m.XStep
	return math.Abs(ratio-math.Round(ratio)) <= stepEpsilon
}

// xGcd derives the shared x step from the deltas between neighboring
// entries. Series with fewer than two entries contribute nothing; if no
// deltas exist at all the step defaults to 1.
func xGcd(collections [][]Entry) float64 {
	step := 0.0
	for _, collection := range collections {
		for i := 1; i < len(collection); i++ {
			delta := collection[i].X - collection[i-1].X
			if delta <= stepEpsilon {
				continue
			}
			if step == 0 {
				step = delta
			} else {
				step = StepGCD(step, delta)
			}
		}
	}
	if step == 0 {
		return 1
	}
	return step
}

// StepGCD returns the greatest common divisor of two x steps, within the
// package's floating tolerance. Composed charts and shared value managers
// use it to reconcile children whose data arrives on different grids.
func StepGCD(a, b float64) float64 {
	for b > stepEpsilon {
		a, b = b, math.Mod(a, b)
	}
	return a
}
