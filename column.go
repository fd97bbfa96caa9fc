package chartwise

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/chartwise/entry"
)

// LabelStyle configures the optional value labels drawn above positive
// columns and below negative ones.
type LabelStyle struct {
	// TextSize overrides the theme's body text size when nonzero.
	TextSize unit.Sp
	// Color overrides the theme's text color when set.
	Color color.NRGBA
	// Formatter renders the entry value; nil uses DecimalFormatter.
	Formatter ValueFormatter
	// Inset is the gap between a column's end and its label.
	Inset unit.Dp
}

// ColumnRenderer draws one logical column chart: a set of entry series
// merged into shared x slots under a grouped or stacked policy. Its
// mutable state (override cache, stacking accumulator, location map,
// staged transition) belongs to this instance alone and is only touched
// during synchronous draw calls.
type ColumnRenderer struct {
	// Styles supplies the per-series column styles, cycled when there
	// are more series than styles. When empty, styles are derived from
	// Palette.
	Styles []*ColumnStyle
	Mode   MergeMode
	// InnerSpacing separates grouped columns within one x slot;
	// OuterSpacing separates neighboring slots.
	InnerSpacing unit.Dp
	OuterSpacing unit.Dp
	// Overrider optionally substitutes style fields per entry.
	Overrider Overrider
	// Labels enables value labels when non-nil.
	Labels *LabelStyle
	// Axis selects which vertical axis this renderer's y range
	// contributes to.
	Axis AxisPosition

	minYOverride, maxYOverride *float64

	bounds    image.Rectangle
	defaults  []*ColumnStyle
	overrides overrideCache
	stacker   heightStacker
	locations LocationMap
	interp    Interpolator
	current   DrawingModel
}

// NewColumnRenderer returns a renderer with the default spacing. Styles
// may be empty to use the palette.
func NewColumnRenderer(mode MergeMode, styles ...*ColumnStyle) *ColumnRenderer {
	return &ColumnRenderer{
		Styles:       styles,
		Mode:         mode,
		InnerSpacing: 4,
		OuterSpacing: 8,
	}
}

func (r *ColumnRenderer) SetBounds(b image.Rectangle) { r.bounds = b }
func (r *ColumnRenderer) Bounds() image.Rectangle     { return r.bounds }

// SetYRange force-overrides the data-derived y bounds for subsequent
// frames. Nil values fall back to the derived defaults.
func (r *ColumnRenderer) SetYRange(minY, maxY *float64) {
	r.minYOverride = minY
	r.maxYOverride = maxY
}

// Locations exposes the hit-test records from the most recent Draw.
func (r *ColumnRenderer) Locations() *LocationMap { return &r.locations }

// UpdateValues contributes this renderer's ranges for m to the frame.
func (r *ColumnRenderer) UpdateValues(vm *ValuesManager, m *entry.Model) {
	vm.Update(r.Axis, r.rangeFor(m))
}

// rangeFor resolves the chart values m implies under this renderer's merge
// mode and overrides. Stacked mode scales from the cumulative stacked
// extrema, grouped from the raw extrema; zero is always kept inside the
// visible range so the zero line is on screen.
func (r *ColumnRenderer) rangeFor(m *entry.Model) ChartValues {
	if m == nil {
		return ChartValues{}
	}
	v := ChartValues{MinX: m.MinX, MaxX: m.MaxX, XStep: m.XStep}
	switch r.Mode {
	case MergeStacked:
		v.MinY, v.MaxY = m.StackedNegY, m.StackedPosY
	default:
		v.MinY, v.MaxY = m.MinY, m.MaxY
	}
	if r.minYOverride != nil {
		v.MinY = *r.minYOverride
	}
	if r.maxYOverride != nil {
		v.MaxY = *r.maxYOverride
	}
	v.MinY = min(v.MinY, 0)
	v.MaxY = max(v.MaxY, 0)
	return v
}

// HorizontalDims reports the unscaled room one x slot occupies: the slot's
// column width plus the outer spacing, with half a slot of padding at each
// end so edge columns stay inside the content.
func (r *ColumnRenderer) HorizontalDims(ctx *DrawContext, m *entry.Model) HorizontalDims {
	spacing := r.slotWidth(ctx, len(m.Collections)) + float32(ctx.Gtx.Dp(r.OuterSpacing))
	return HorizontalDims{
		XSpacing:     spacing,
		StartPadding: spacing / 2,
		EndPadding:   spacing / 2,
	}
}

// UpdateInsets reserves vertical room for value labels when configured.
func (r *ColumnRenderer) UpdateInsets(ctx *DrawContext, in *Insets) {
	if r.Labels == nil || ctx.Theme == nil {
		return
	}
	gtx := ctx.Gtx
	gtx.Constraints.Min = image.Point{}
	dims, _ := record(gtx, r.label(ctx, "0").Layout)
	need := float32(dims.Size.Y + gtx.Dp(r.Labels.Inset))
	in.Union(Insets{Top: need, Bottom: need})
}

// PrepareTransformation stages an animated transition from the old model
// snapshot to the target. Heights are captured relative to each snapshot's
// own resolved range.
func (r *ColumnRenderer) PrepareTransformation(old, target *entry.Model) {
	r.interp.Prepare(
		buildDrawingModel(old, r.rangeFor(old)),
		buildDrawingModel(target, r.rangeFor(target)),
	)
}

// Transform advances the staged transition; the resulting intermediate
// heights replace the raw entry magnitudes until the next Prepare.
func (r *ColumnRenderer) Transform(fraction float32) {
	r.current = r.interp.Transform(fraction)
}

// Draw renders the columns for m and rebuilds the marker location map.
// Entries whose x does not sit on the model's step are a precondition
// violation and panic; a zero y span degenerates to a no-op frame.
func (r *ColumnRenderer) Draw(ctx *DrawContext, m *entry.Model) {
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
	slotW := r.slotWidth(ctx, len(m.Collections)) * zoom
	inner := float32(gtx.Dp(r.InnerSpacing)) * zoom

	for si, collection := range m.Collections {
		base := r.styleFor(si)
		thickness := r.thickness(ctx, si) * zoom
		// Offset of this series' column center from its slot center.
		var seriesOffset float32
		if r.Mode == MergeGrouped {
			var before float32
			for prev := 0; prev < si; prev++ {
				before += r.thickness(ctx, prev)*zoom + inner
			}
			seriesOffset = -slotW/2 + before + thickness/2
		}
		var heights map[float64]ColumnInfo
		if si < len(r.current) {
			heights = r.current[si]
		}
		for _, e := range collection {
			if !m.AlignedTo(e.X) {
				panic(fmt.Sprintf("chartwise: entry x %v is not a multiple of step %v", e.X, step))
			}
			slot := (e.X - vals.MinX) / step
			center := ctx.directedX(startPad + float32(slot)*spacing + seriesOffset - ctx.Scroll)
			height := float32(math.Abs(e.Y)) * heightMult
			if heights != nil {
				if info, ok := heights[e.X]; ok {
					height = info.Height * contentHeight
				}
			}
			negAcc, posAcc := r.stacker.heights(e.X)
			top, bottom := placeColumn(r.Mode, e.Y, height, zeroLine, negAcc, posAcc)
			if r.Mode == MergeStacked {
				r.stacker.add(e.X, e.Y, height)
			}
			rect := image.Rect(
				round(center-thickness/2), round(top),
				round(center+thickness/2), round(bottom),
			)
			if !rect.Overlaps(ctx.Content) {
				continue
			}
			st := r.overrides.resolve(r.Overrider, base, e)
			st.draw(ctx, rect)
			r.locations.Put(center, Location{
				Entry:  e,
				Y:      clamp(top, float32(ctx.Content.Min.Y), float32(ctx.Content.Max.Y)),
				Color:  st.markerColor(),
				Series: si,
			})
			if r.Labels != nil {
				r.drawLabel(ctx, vals, e, center, top, bottom)
			}
		}
	}
	r.overrides.prune()
	r.stacker.reset()
}

// DrawOverlay is a no-op: columns have no non-scrollable content.
func (r *ColumnRenderer) DrawOverlay(*DrawContext, *entry.Model) {}

func (r *ColumnRenderer) label(ctx *DrawContext, txt string) material.LabelStyle {
	label := material.Body2(ctx.Theme, txt)
	label.MaxLines = 1
	if r.Labels.TextSize != 0 {
		label.TextSize = r.Labels.TextSize
	}
	if r.Labels.Color != (color.NRGBA{}) {
		label.Color = r.Labels.Color
	}
	return label
}

// drawLabel places the entry's formatted value above a positive column or
// below a negative one, clamped horizontally so labels at the chart's
// first and last positions stay within the content bounds.
func (r *ColumnRenderer) drawLabel(ctx *DrawContext, vals ChartValues, e entry.Entry, centerX, top, bottom float32) {
	if ctx.Theme == nil {
		return
	}
	formatter := r.Labels.Formatter
	if formatter == nil {
		formatter = DecimalFormatter{}
	}
	gtx := ctx.Gtx
	gtx.Constraints.Min = image.Point{}
	dims, call := record(gtx, r.label(ctx, formatter.Format(e.Y, vals)).Layout)
	gap := float32(gtx.Dp(r.Labels.Inset))
	var y float32
	if e.Y < 0 {
		y = bottom + gap
	} else {
		y = top - gap - float32(dims.Size.Y)
	}
	x := centerX - float32(dims.Size.X)/2
	x = clamp(x, float32(ctx.Content.Min.X), float32(ctx.Content.Max.X)-float32(dims.Size.X))
	offset := op.Offset(image.Pt(round(x), round(y))).Push(gtx.Ops)
	call.Add(gtx.Ops)
	offset.Pop()
}

// slotWidth is the unscaled width of one x slot's columns: the thickest
// series for stacked mode, the sum of all series plus inner spacing for
// grouped mode.
func (r *ColumnRenderer) slotWidth(ctx *DrawContext, series int) float32 {
	var w float32
	switch r.Mode {
	case MergeStacked:
		for si := 0; si < series; si++ {
			w = max(w, r.thickness(ctx, si))
		}
	default:
		inner := float32(ctx.Gtx.Dp(r.InnerSpacing))
		for si := 0; si < series; si++ {
			if si > 0 {
				w += inner
			}
			w += r.thickness(ctx, si)
		}
	}
	return w
}

func (r *ColumnRenderer) thickness(ctx *DrawContext, si int) float32 {
	return float32(ctx.Gtx.Dp(r.styleFor(si).Thickness))
}

// styleFor returns the base style for series si, cycling the configured
// styles or deriving stable palette-backed defaults.
func (r *ColumnRenderer) styleFor(si int) *ColumnStyle {
	if len(r.Styles) > 0 {
		return r.Styles[si%len(r.Styles)]
	}
	for len(r.defaults) <= si%len(Palette) {
		r.defaults = append(r.defaults, NewColumnStyle(Palette[len(r.defaults)]))
	}
	return r.defaults[si%len(Palette)]
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}
