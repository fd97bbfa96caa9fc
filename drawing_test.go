package chartwise

import (
	"testing"

	"git.sr.ht/~whereswaldon/chartwise/entry"
	"github.com/google/go-cmp/cmp"
)

func TestBuildDrawingModel(t *testing.T) {
	m := entry.NewModel(
		[]entry.Entry{entry.Pt(0, 2), entry.Pt(1, -4)},
		[]entry.Entry{entry.Pt(0, 1)},
	)
	vals := ChartValues{MinY: -4, MaxY: 4}
	dm := buildDrawingModel(m, vals)
	want := DrawingModel{
		{0: {Height: 0.25}, 1: {Height: 0.5}},
		{0: {Height: 0.125}},
	}
	if diff := cmp.Diff(want, dm); diff != "" {
		t.Errorf("unexpected drawing model (-want +got):\n%s", diff)
	}
	if got := buildDrawingModel(nil, vals); got != nil {
		t.Error("nil model should produce a nil drawing model")
	}
	if got := buildDrawingModel(m, ChartValues{}); got != nil {
		t.Error("zero y span should produce a nil drawing model")
	}
}

func TestInterpolatorRoundTrip(t *testing.T) {
	old := DrawingModel{{0: {Height: 0.2}, 1: {Height: 0.8}}}
	target := DrawingModel{{0: {Height: 0.6}, 2: {Height: 0.4}}}
	var it Interpolator
	it.Prepare(old, target)

	atZero := it.Transform(0)
	if got := atZero[0][0].Height; got != 0.2 {
		t.Errorf("Transform(0) should reproduce the old height exactly, got %v", got)
	}
	if got := atZero[0][1].Height; got != 0.8 {
		t.Errorf("Transform(0) should reproduce old-only heights exactly, got %v", got)
	}
	if got := atZero[0][2].Height; got != 0 {
		t.Errorf("target-only entries should start at zero, got %v", got)
	}

	atOne := it.Transform(1)
	want := DrawingModel{{0: {Height: 0.6}, 1: {}, 2: {Height: 0.4}}}
	if diff := cmp.Diff(want, atOne); diff != "" {
		t.Errorf("Transform(1) should converge to the target (-want +got):\n%s", diff)
	}
	// Repeated calls at the same fraction are idempotent.
	if diff := cmp.Diff(atOne, it.Transform(1)); diff != "" {
		t.Errorf("repeated Transform(1) diverged (-first +second):\n%s", diff)
	}
}

func TestInterpolatorMonotonic(t *testing.T) {
	old := DrawingModel{{0: {Height: 0.1}}}
	target := DrawingModel{{0: {Height: 0.9}}}
	var it Interpolator
	it.Prepare(old, target)
	prev := float32(-1)
	for _, f := range []float32{0, 0.25, 0.5, 0.75, 1} {
		h := it.Transform(f)[0][0].Height
		if h < prev {
			t.Errorf("height should grow with the fraction, got %v after %v", h, prev)
		}
		prev = h
	}
}

func TestInterpolatorEmptySides(t *testing.T) {
	var it Interpolator
	if got := it.Transform(0.5); got != nil {
		t.Error("both sides empty should transform to nil")
	}

	it.Prepare(nil, DrawingModel{{0: {Height: 0.5}}})
	if got := it.Transform(0.5)[0][0].Height; got != 0.25 {
		t.Errorf("fade-in from empty should interpolate from zero, got %v", got)
	}

	it.Prepare(DrawingModel{{0: {Height: 0.5}}}, nil)
	if got := it.Transform(0.5)[0][0].Height; got != 0.25 {
		t.Errorf("fade-out to empty should interpolate toward zero, got %v", got)
	}
}
