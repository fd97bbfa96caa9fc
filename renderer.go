package chartwise

import (
	"image"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

// Insets are the margins a renderer needs reserved outside the content
// bounds, in pixels. Start and End follow the layout direction.
type Insets struct {
	Top, Bottom, Start, End float32
}

// Union widens the insets elementwise to cover other. A composed chart's
// margins must accommodate its most demanding child.
func (in *Insets) Union(other Insets) {
	in.Top = max(in.Top, other.Top)
	in.Bottom = max(in.Bottom, other.Bottom)
	in.Start = max(in.Start, other.Start)
	in.End = max(in.End, other.End)
}

// Horizontal returns the additional width the insets consume.
func (in Insets) Horizontal() float32 { return in.Start + in.End }

// Vertical returns the additional height the insets consume.
func (in Insets) Vertical() float32 { return in.Top + in.Bottom }

// HorizontalDims describe how much unscaled horizontal room a renderer
// wants: the pixel distance between neighboring x slots and the padding
// before the first and after the last slot. Zoom multiplies all three at
// draw time.
type HorizontalDims struct {
	XSpacing     float32
	StartPadding float32
	EndPadding   float32
}

// Union widens the dimensions elementwise to cover other, so composed
// charts grant every child the spacing it asked for.
func (h *HorizontalDims) Union(other HorizontalDims) {
	h.XSpacing = max(h.XSpacing, other.XSpacing)
	h.StartPadding = max(h.StartPadding, other.StartPadding)
	h.EndPadding = max(h.EndPadding, other.EndPadding)
}

// ContentWidth returns the total scrollable width occupied by steps x
// slots at zoom 1.
func (h HorizontalDims) ContentWidth(steps int) float32 {
	return h.StartPadding + h.EndPadding + float32(steps)*h.XSpacing
}

// ChartRenderer is the capability set shared by the column and line
// renderers, and the unit a ComposedRenderer fans out to. One frame calls,
// in order: UpdateValues, HorizontalDims, UpdateInsets, Draw, DrawOverlay.
// All methods are synchronous and must run on the frame goroutine.
type ChartRenderer interface {
	// SetBounds records the screen rectangle the renderer may draw into.
	SetBounds(image.Rectangle)
	Bounds() image.Rectangle
	// UpdateValues contributes the model's ranges to the frame's chart
	// values before anything draws or reads them.
	UpdateValues(vm *ValuesManager, m *entry.Model)
	// HorizontalDims reports the renderer's unscaled horizontal layout
	// requirements for m.
	HorizontalDims(ctx *DrawContext, m *entry.Model) HorizontalDims
	// UpdateInsets widens in to cover the renderer's margin needs.
	UpdateInsets(ctx *DrawContext, in *Insets)
	// PrepareTransformation stages an animated transition between two
	// model snapshots. Either may be nil, meaning fade from or to empty.
	PrepareTransformation(old, target *entry.Model)
	// Transform advances the staged transition. It is driven externally
	// by a frame clock, once per animation tick.
	Transform(fraction float32)
	// Draw renders the scrollable chart content for m.
	Draw(ctx *DrawContext, m *entry.Model)
	// DrawOverlay renders content pinned above all scrollable content.
	DrawOverlay(ctx *DrawContext, m *entry.Model)
	// SetYRange force-overrides the renderer's data-derived y bounds.
	// Either value may be nil to keep the derived default.
	SetYRange(minY, maxY *float64)
	// Locations exposes the marker hit-test records collected by the
	// most recent Draw.
	Locations() *LocationMap
}
