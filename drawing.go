package chartwise

import (
	"math"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

// ColumnInfo is the per-entry interpolation state of one column: its
// height as a ratio in [0, 1] of the entry's magnitude to the frame's
// value range.
type ColumnInfo struct {
	Height float32
}

// DrawingModel captures the heights of every entry in a model snapshot,
// grouped per series and keyed by entry x. Models are superseded, never
// mutated: each new data snapshot produces a fresh DrawingModel.
type DrawingModel []map[float64]ColumnInfo

// Empty reports whether the model carries no heights at all.
func (dm DrawingModel) Empty() bool {
	for _, series := range dm {
		if len(series) > 0 {
			return false
		}
	}
	return true
}

// buildDrawingModel snapshots m's entry heights relative to the y span of
// vals. A nil model or a zero span yields nil.
func buildDrawingModel(m *entry.Model, vals ChartValues) DrawingModel {
	if m == nil || vals.YRange() == 0 {
		return nil
	}
	span := vals.YRange()
	dm := make(DrawingModel, len(m.Collections))
	for si, collection := range m.Collections {
		series := make(map[float64]ColumnInfo, len(collection))
		for _, e := range collection {
			series[e.X] = ColumnInfo{Height: float32(math.Abs(e.Y) / span)}
		}
		dm[si] = series
	}
	return dm
}

// Interpolator animates between two drawing-model snapshots. It holds at
// most one old and one target model; Prepare replaces both. One
// interpolator belongs to exactly one chart renderer.
type Interpolator struct {
	old, target DrawingModel
}

// Prepare stages a transition. Either side may be nil, meaning the chart
// fades in from empty or out to empty.
func (it *Interpolator) Prepare(old, target DrawingModel) {
	it.old = old
	it.target = target
}

// Transform returns the intermediate drawing model at the given progress
// fraction in [0, 1]. Entries present on only one side interpolate from or
// toward zero height. The result is nil once both sides are empty.
// Transform(0) reproduces the old model's heights and Transform(1) the
// target's, exactly; calling it repeatedly is safe, as an external frame
// clock drives it once per animation tick.
func (it *Interpolator) Transform(fraction float32) DrawingModel {
	if it.old.Empty() && it.target.Empty() {
		return nil
	}
	series := max(len(it.old), len(it.target))
	out := make(DrawingModel, series)
	for si := 0; si < series; si++ {
		var oldSeries, targetSeries map[float64]ColumnInfo
		if si < len(it.old) {
			oldSeries = it.old[si]
		}
		if si < len(it.target) {
			targetSeries = it.target[si]
		}
		merged := make(map[float64]ColumnInfo, max(len(oldSeries), len(targetSeries)))
		for x, info := range oldSeries {
			merged[x] = ColumnInfo{Height: lerp(info.Height, targetSeries[x].Height, fraction)}
		}
		for x, info := range targetSeries {
			if _, ok := oldSeries[x]; ok {
				continue
			}
			merged[x] = ColumnInfo{Height: lerp(0, info.Height, fraction)}
		}
		out[si] = merged
	}
	return out
}

// lerp interpolates so that fraction 0 yields a and fraction 1 yields b
// exactly, with no floating drift at the endpoints.
func lerp(a, b, fraction float32) float32 {
	return a*(1-fraction) + b*fraction
}
