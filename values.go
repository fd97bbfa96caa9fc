// Package chartwise renders composed, multi-series column and line charts
// into a Gio drawing context. Renderers share one coordinate space through a
// ValuesManager and report interactive hit-test locations through a
// LocationMap.
package chartwise

import "git.sr.ht/~whereswaldon/chartwise/entry"

// AxisPosition tags a vertical axis so dual-axis charts can carry
// independent value ranges for their start (left in LTR) and end sides.
type AxisPosition uint8

const (
	// AxisDefault addresses the shared range used by any renderer or axis
	// that does not request a specific side.
	AxisDefault AxisPosition = iota
	AxisStart
	AxisEnd
)

// ChartValues are the resolved drawing ranges used to scale one frame.
type ChartValues struct {
	MinX, MaxX float64
	MinY, MaxY float64
	XStep      float64
}

// XRange returns the x span of the values.
func (v ChartValues) XRange() float64 { return v.MaxX - v.MinX }

// YRange returns the y span of the values.
func (v ChartValues) YRange() float64 { return v.MaxY - v.MinY }

// ValuesProvider is the read side of a ValuesManager. External axis
// renderers query it after the frame's value-update step has run.
type ValuesProvider interface {
	Values(pos AxisPosition) ChartValues
}

// ValuesManager resolves the chart values for each frame. One renderer tree
// writes it once per frame before any reader runs; there is no internal
// locking because the draw model is single threaded.
type ValuesManager struct {
	values map[AxisPosition]ChartValues
}

// Reset forgets the previous frame's ranges. Call it once at the top of a
// frame, before any renderer contributes its model.
func (vm *ValuesManager) Reset() {
	clear(vm.values)
}

// Update widens the ranges stored for pos to cover v. The default position
// is always widened too, so readers that do not care about axis sides see
// the union of every contribution.
func (vm *ValuesManager) Update(pos AxisPosition, v ChartValues) {
	if vm.values == nil {
		vm.values = make(map[AxisPosition]ChartValues)
	}
	vm.merge(AxisDefault, v)
	if pos != AxisDefault {
		vm.merge(pos, v)
	}
}

func (vm *ValuesManager) merge(pos AxisPosition, v ChartValues) {
	cur, ok := vm.values[pos]
	if !ok {
		vm.values[pos] = v
		return
	}
	cur.MinX = min(cur.MinX, v.MinX)
	cur.MaxX = max(cur.MaxX, v.MaxX)
	cur.MinY = min(cur.MinY, v.MinY)
	cur.MaxY = max(cur.MaxY, v.MaxY)
	switch {
	case cur.XStep == 0:
		cur.XStep = v.XStep
	case v.XStep != 0:
		// Children on different grids share the gcd so every entry of
		// every child lands on a whole slot.
		cur.XStep = entry.StepGCD(cur.XStep, v.XStep)
	}
	vm.values[pos] = cur
}

// Values returns the ranges for pos, falling back to the default position
// when no renderer contributed values for that side this frame.
func (vm *ValuesManager) Values(pos AxisPosition) ChartValues {
	if v, ok := vm.values[pos]; ok {
		return v
	}
	return vm.values[AxisDefault]
}

var _ ValuesProvider = (*ValuesManager)(nil)
