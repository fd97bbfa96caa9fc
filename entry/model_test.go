package entry

import (
	"math"
	"testing"
)

func TestModelAggregates(t *testing.T) {
	type testcase struct {
		name        string
		collections [][]Entry
		minX, maxX  float64
		minY, maxY  float64
		xStep       float64
		stackedPos  float64
		stackedNeg  float64
	}
	for _, tc := range []testcase{
		{
			name: "single series",
			collections: [][]Entry{
				{Pt(0, 2), Pt(1, 4), Pt(2, 1)},
			},
			minX: 0, maxX: 2,
			minY: 1, maxY: 4,
			xStep:      1,
			stackedPos: 4,
		},
		{
			name: "two series with negatives",
			collections: [][]Entry{
				{Pt(0, 3), Pt(2, -2)},
				{Pt(0, 2), Pt(2, -1)},
			},
			minX: 0, maxX: 2,
			minY: -2, maxY: 3,
			xStep:      2,
			stackedPos: 5,
			stackedNeg: -3,
		},
		{
			name: "gcd across series",
			collections: [][]Entry{
				{Pt(0, 1), Pt(4, 1)},
				{Pt(0, 1), Pt(6, 1)},
			},
			minX: 0, maxX: 6,
			minY: 1, maxY: 1,
			xStep:      2,
			stackedPos: 2,
		},
		{
			name:        "empty model",
			collections: [][]Entry{{}},
			xStep:       1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel(tc.collections...)
			if m.MinX != tc.minX || m.MaxX != tc.maxX {
				t.Errorf("expected x range [%v,%v], got [%v,%v]", tc.minX, tc.maxX, m.MinX, m.MaxX)
			}
			if m.MinY != tc.minY || m.MaxY != tc.maxY {
				t.Errorf("expected y range [%v,%v], got [%v,%v]", tc.minY, tc.maxY, m.MinY, m.MaxY)
			}
			if math.Abs(m.XStep-tc.xStep) > 1e-9 {
				t.Errorf("expected x step %v, got %v", tc.xStep, m.XStep)
			}
			if m.StackedPosY != tc.stackedPos {
				t.Errorf("expected stacked positive %v, got %v", tc.stackedPos, m.StackedPosY)
			}
			if m.StackedNegY != tc.stackedNeg {
				t.Errorf("expected stacked negative %v, got %v", tc.stackedNeg, m.StackedNegY)
			}
		})
	}
}

func TestModelRejectsUnsortedSeries(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected out-of-order collection to panic")
		}
	}()
	NewModel([]Entry{Pt(2, 1), Pt(0, 1)})
}

func TestModelAlignment(t *testing.T) {
	m := NewModel([]Entry{Pt(0, 1), Pt(1, 2), Pt(2, 3)})
	if !m.AlignedTo(1) {
		t.Error("x = 1 should align to step 1")
	}
	if m.AlignedTo(0.3) {
		t.Error("x = 0.3 should not align to step 1")
	}
}

func TestComposeUnions(t *testing.T) {
	a := NewModel([]Entry{Pt(0, 1), Pt(2, 5)})
	b := NewModel([]Entry{Pt(1, -2), Pt(4, 2)})
	cm := Compose(a, b)
	if cm.MinX != 0 || cm.MaxX != 4 {
		t.Errorf("expected x range [0,4], got [%v,%v]", cm.MinX, cm.MaxX)
	}
	if cm.MinY != -2 || cm.MaxY != 5 {
		t.Errorf("expected y range [-2,5], got [%v,%v]", cm.MinY, cm.MaxY)
	}
	if cm.XStep != 1 {
		t.Errorf("expected composed step 1, got %v", cm.XStep)
	}
}
