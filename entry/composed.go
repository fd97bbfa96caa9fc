package entry

// ComposedModel carries one Model per child of a composed chart renderer,
// aligned positionally with the renderer's child list, plus the union of
// the children's aggregates.
type ComposedModel struct {
	Models []*Model

	MinX, MaxX float64
	MinY, MaxY float64
	XStep      float64
}

// Compose builds a ComposedModel from per-child models. The union
// aggregates span every child; the composed x step is the gcd of the
// children's steps so that a shared axis can label all of them.
func Compose(models ...*Model) *ComposedModel {
	cm := &ComposedModel{
		Models: models,
		XStep:  1,
	}
	seen := false
	step := 0.0
	for _, m := range models {
		if m.Empty() {
			continue
		}
		if !seen {
			cm.MinX, cm.MaxX = m.MinX, m.MaxX
			cm.MinY, cm.MaxY = m.MinY, m.MaxY
			seen = true
		} else {
			cm.MinX = min(cm.MinX, m.MinX)
			cm.MaxX = max(cm.MaxX, m.MaxX)
			cm.MinY = min(cm.MinY, m.MinY)
			cm.MaxY = max(cm.MaxY, m.MaxY)
		}
		if step == 0 {
			step = m.XStep
		} else {
			step = StepGCD(step, m.XStep)
		}
	}
	if step != 0 {
		cm.XStep = step
	}
	return cm
}
