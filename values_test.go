package chartwise

import "testing"

func TestValuesManagerWidens(t *testing.T) {
	var vm ValuesManager
	vm.Update(AxisDefault, ChartValues{MinX: 0, MaxX: 4, MinY: -1, MaxY: 3, XStep: 2})
	vm.Update(AxisDefault, ChartValues{MinX: 1, MaxX: 6, MinY: 0, MaxY: 5, XStep: 1})

	got := vm.Values(AxisDefault)
	want := ChartValues{MinX: 0, MaxX: 6, MinY: -1, MaxY: 5, XStep: 1}
	if got != want {
		t.Errorf("expected merged values %+v, got %+v", want, got)
	}
}

func TestValuesManagerStepGCD(t *testing.T) {
	// Children on steps 2 and 3 must share step 1: taking the smaller
	// step would leave x=3 on a fractional slot.
	var vm ValuesManager
	vm.Update(AxisDefault, ChartValues{MaxX: 6, MaxY: 1, XStep: 2})
	vm.Update(AxisDefault, ChartValues{MaxX: 6, MaxY: 1, XStep: 3})
	if got := vm.Values(AxisDefault).XStep; got != 1 {
		t.Errorf("expected the shared step gcd 1, got %v", got)
	}
}

func TestValuesManagerAxisPositions(t *testing.T) {
	var vm ValuesManager
	vm.Update(AxisStart, ChartValues{MaxY: 10, XStep: 1})
	vm.Update(AxisEnd, ChartValues{MaxY: 100, XStep: 1})

	if got := vm.Values(AxisStart).MaxY; got != 10 {
		t.Errorf("start axis should keep its own range, got max %v", got)
	}
	if got := vm.Values(AxisEnd).MaxY; got != 100 {
		t.Errorf("end axis should keep its own range, got max %v", got)
	}
	// The default position carries the union for untagged readers.
	if got := vm.Values(AxisDefault).MaxY; got != 100 {
		t.Errorf("default position should union all contributions, got max %v", got)
	}
}

func TestValuesManagerFallback(t *testing.T) {
	var vm ValuesManager
	vm.Update(AxisDefault, ChartValues{MaxY: 7, XStep: 1})
	if got := vm.Values(AxisEnd).MaxY; got != 7 {
		t.Errorf("an untouched position should fall back to the default, got max %v", got)
	}
}

func TestValuesManagerReset(t *testing.T) {
	var vm ValuesManager
	vm.Update(AxisDefault, ChartValues{MaxY: 7, XStep: 1})
	vm.Reset()
	if got := vm.Values(AxisDefault); got != (ChartValues{}) {
		t.Errorf("reset should forget the previous frame, got %+v", got)
	}
}
