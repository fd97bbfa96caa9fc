package chartwise

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"
	"golang.org/x/exp/constraints"
)

// DrawContext carries the per-frame drawing environment shared by every
// renderer in a chart tree. The Gio context is the drawing sink; the rest
// describes how the chart content is positioned within it. Renderers treat
// the whole struct as read-only.
type DrawContext struct {
	Gtx   layout.Context
	Theme *material.Theme
	// Values exposes the ranges resolved during this frame's value-update
	// step. The same provider is handed to external axis renderers after
	// the chart has drawn.
	Values ValuesProvider
	// Zoom scales the horizontal spacing of x slots. Zero means 1.
	Zoom float32
	// Scroll is the horizontal scroll offset in pixels. Positive values
	// shift the content toward earlier x.
	Scroll float32
	// RTL mirrors the x axis for right-to-left layouts.
	RTL bool
	// Content is the pixel rectangle available for chart content,
	// excluding axis and label insets.
	Content image.Rectangle
}

func (ctx *DrawContext) zoom() float32 {
	if ctx.Zoom == 0 {
		return 1
	}
	return ctx.Zoom
}

// directedX converts a distance from the content's leading edge into an
// absolute screen x, honoring the layout direction.
func (ctx *DrawContext) directedX(offset float32) float32 {
	if ctx.RTL {
		return float32(ctx.Content.Max.X) - offset
	}
	return float32(ctx.Content.Min.X) + offset
}

// record runs w against the context's ops without drawing it, returning its
// dimensions and a macro that replays it later.
func record(gtx layout.Context, w layout.Widget) (layout.Dimensions, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	return dims, macro.Stop()
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
