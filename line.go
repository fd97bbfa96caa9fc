package chartwise

import (
	"fmt"
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"git.sr.ht/~whereswaldon/chartwise/entry"
)

// LineRenderer draws one logical line chart: each series becomes a stroked
// polyline through its entries, optionally with a gradient area fill down
// to the zero line. It composes with column renderers under a shared
// coordinate space.
type LineRenderer struct {
	// Styles supplies the per-series line styles, cycled when there are
	// more series than styles. When empty, styles derive from Palette.
	Styles []*LineStyle
	// Spacing is the unscaled distance between neighboring x slots.
	Spacing unit.Dp
	// Axis selects which vertical axis this renderer's y range
	// contributes to.
	Axis AxisPosition

	minYOverride, maxYOverride *float64

	bounds    image.Rectangle
	defaults  []*LineStyle
	locations LocationMap
	interp    Interpolator
	current   DrawingModel
	// scratch holds the area polygon's lower edge while building each
	// series' fill path.
	scratch []f32.Point
}

// NewLineRenderer returns a renderer with the default slot spacing.
func NewLineRenderer(styles ...*LineStyle) *LineRenderer {
	return &LineRenderer{
		Styles:  styles,
		Spacing: 16,
	}
}

func (r *LineRenderer) SetBounds(b image.Rectangle) { r.bounds = b }
func (r *LineRenderer) Bounds() image.Rectangle     { return r.bounds }

// SetYRange force-overrides the data-derived y bounds for subsequent
// frames. Nil values fall back to the derived defaults.
func (r *LineRenderer) SetYRange(minY, maxY *float64) {
	r.minYOverride = minY
	r.maxYOverride = maxY
}

// Locations exposes the hit-test records from the most recent Draw.
func (r *LineRenderer) Locations() *LocationMap { return &r.locations }

// UpdateValues contributes this renderer's ranges for m to the frame.
func (r *LineRenderer) UpdateValues(vm *ValuesManager, m *entry.Model) {
	vm.Update(r.Axis, r.rangeFor(m))
}

func (r *LineRenderer) rangeFor(m *entry.Model) ChartValues {
	if m == nil {
		return ChartValues{}
	}
	v := ChartValues{
		MinX: m.MinX, MaxX: m.MaxX,
		MinY: m.MinY, MaxY: m.MaxY,
		XStep: m.XStep,
	}
	if r.minYOverride != nil {
		v.MinY = *r.minYOverride
	}
	if r.maxYOverride != nil {
		v.MaxY = *r.maxYOverride
	}
	return v
}

// HorizontalDims reports the room one x slot occupies for this line.
func (r *LineRenderer) HorizontalDims(ctx *DrawContext, _ *entry.Model) HorizontalDims {
	spacing := float32(ctx.Gtx.Dp(r.Spacing))
	return HorizontalDims{
		XSpacing:     spacing,
		StartPadding: spacing / 2,
		EndPadding:   spacing / 2,
	}
}

// UpdateInsets is a no-op: lines fit within the content bounds.
func (r *LineRenderer) UpdateInsets(*DrawContext, *Insets) {}

// PrepareTransformation stages an animated transition between two model
// snapshots.
func (r *LineRenderer) PrepareTransformation(old, target *entry.Model) {
	r.interp.Prepare(
		buildDrawingModel(old, r.rangeFor(old)),
		buildDrawingModel(target, r.rangeFor(target)),
	)
}

// Transform advances the staged transition.
func (r *LineRenderer) Transform(fraction float32) {
	r.current = r.interp.Transform(fraction)
}

// Draw strokes each series' polyline, fills configured areas, and rebuilds
// the marker location map.
func (r *LineRenderer) Draw(ctx *DrawContext, m *entry.Model) {
	r.locations.Clear()
	vals := ctx.Values.Values(r.Axis)
	if vals.YRange() == 0 || m.Empty() {
		return
	}
	gtx := ctx.Gtx
	zoom := ctx.zoom()
	dims := r.HorizontalDims(ctx, m)
	spacing := dims.XSpacing * zoom
	startPad := dims.StartPadding * zoom
	contentHeight := float32(ctx.Content.Dy())
	heightMult := contentHeight / float32(vals.YRange())
	zeroLine := float32(ctx.Content.Max.Y) + float32(vals.MinY)*heightMult
	step := vals.XStep
	if step == 0 {
		step = 1
	}

	// Keep strokes and area fills inside the content bounds even when
	// scrolled partially out of view.
	bounds := clip.Rect(ctx.Content).Push(gtx.Ops)
	defer bounds.Pop()

	for si, collection := range m.Collections {
		if len(collection) == 0 {
			continue
		}
		st := r.styleFor(si)
		var heights map[float64]ColumnInfo
		if si < len(r.current) {
			heights = r.current[si]
		}
		r.scratch = r.scratch[:0]
		var p clip.Path
		p.Begin(gtx.Ops)
		for i, e := range collection {
			if !m.AlignedTo(e.X) {
				panic(fmt.Sprintf("chartwise: entry x %v is not a multiple of step %v", e.X, step))
			}
			slot := (e.X - vals.MinX) / step
			x := ctx.directedX(startPad + float32(slot)*spacing - ctx.Scroll)
			height := float32(math.Abs(e.Y)) * heightMult
			if heights != nil {
				if info, ok := heights[e.X]; ok {
					height = info.Height * contentHeight
				}
			}
			y := zeroLine - height
			if e.Y < 0 {
				y = zeroLine + height
			}
			pt := f32.Pt(x, y)
			if i == 0 {
				p.MoveTo(pt)
			} else {
				p.LineTo(pt)
			}
			r.scratch = append(r.scratch, pt)
			if x >= float32(ctx.Content.Min.X) && x <= float32(ctx.Content.Max.X) {
				r.locations.Put(x, Location{
					Entry:  e,
					Y:      clamp(y, float32(ctx.Content.Min.Y), float32(ctx.Content.Max.Y)),
					Color:  st.Color,
					Series: si,
				})
			}
		}
		outline := p.End()
		if st.Area != nil && len(r.scratch) > 1 {
			r.fillArea(ctx, st, zeroLine)
		}
		paint.FillShape(gtx.Ops, st.Color, clip.Stroke{
			Path:  outline,
			Width: float32(gtx.Dp(st.Width)),
		}.Op())
	}
}

// fillArea closes the polygon between the series' polyline (held in
// scratch) and the zero line, painting it with the style's area shader.
func (r *LineRenderer) fillArea(ctx *DrawContext, st *LineStyle, zeroLine float32) {
	ops := ctx.Gtx.Ops
	zero := clamp(zeroLine, float32(ctx.Content.Min.Y), float32(ctx.Content.Max.Y))
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(r.scratch[0])
	for _, pt := range r.scratch[1:] {
		p.LineTo(pt)
	}
	p.LineTo(f32.Pt(r.scratch[len(r.scratch)-1].X, zero))
	p.LineTo(f32.Pt(r.scratch[0].X, zero))
	p.Close()
	area := clip.Outline{Path: p.End()}.Op().Push(ops)
	st.Area.paint(ops, ctx.Content)
	area.Pop()
}

// DrawOverlay is a no-op: lines have no non-scrollable content.
func (r *LineRenderer) DrawOverlay(*DrawContext, *entry.Model) {}

// styleFor returns the base style for series si, cycling the configured
// styles or deriving stable palette-backed defaults.
func (r *LineRenderer) styleFor(si int) *LineStyle {
	if len(r.Styles) > 0 {
		return r.Styles[si%len(r.Styles)]
	}
	for len(r.defaults) <= si%len(Palette) {
		r.defaults = append(r.defaults, NewLineStyle(Palette[len(r.defaults)]))
	}
	return r.defaults[si%len(Palette)]
}
