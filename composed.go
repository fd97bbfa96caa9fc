package chartwise

import (
	"fmt"
	"image"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

// ComposedRenderer presents a list of child chart renderers as a single
// renderer sharing one bounds, inset, and coordinate contract. Per-frame
// calls fan out to every child in list order, paired positionally with the
// composed model's per-child slices; later children draw on top of earlier
// ones.
type ComposedRenderer struct {
	children  []ChartRenderer
	bounds    image.Rectangle
	locations LocationMap

	// Last-written broadcast y overrides, retained for read-back only.
	legacyMinY, legacyMaxY *float64
}

// NewComposed builds a composed renderer over children. The composed
// models drawn with it must carry exactly one model per child.
func NewComposed(children ...ChartRenderer) *ComposedRenderer {
	return &ComposedRenderer{children: children}
}

// Children returns the child renderers in draw order.
func (c *ComposedRenderer) Children() []ChartRenderer { return c.children }

// zip asserts the positional pairing between children and models. A length
// mismatch is a configuration bug: silently truncating would hide a chart
// drawing without data, or data never drawn.
func (c *ComposedRenderer) zip(models []*entry.Model) {
	if len(models) != len(c.children) {
		panic(fmt.Sprintf(
			"chartwise: composed renderer has %d children but the model carries %d series slices",
			len(c.children), len(models),
		))
	}
}

// SetBounds records the shared screen rectangle and propagates it to
// every child.
func (c *ComposedRenderer) SetBounds(b image.Rectangle) {
	c.bounds = b
	for _, child := range c.children {
		child.SetBounds(b)
	}
}

func (c *ComposedRenderer) Bounds() image.Rectangle { return c.bounds }

// UpdateValues fans the frame's value-update step out to every child with
// its slice of the composed model.
func (c *ComposedRenderer) UpdateValues(vm *ValuesManager, cm *entry.ComposedModel) {
	c.zip(cm.Models)
	for i, child := range c.children {
		child.UpdateValues(vm, cm.Models[i])
	}
}

// HorizontalDims merges the children's layout requirements elementwise, so
// the shared coordinate space grants each child the spacing it needs.
func (c *ComposedRenderer) HorizontalDims(ctx *DrawContext, cm *entry.ComposedModel) HorizontalDims {
	c.zip(cm.Models)
	var dims HorizontalDims
	for i, child := range c.children {
		dims.Union(child.HorizontalDims(ctx, cm.Models[i]))
	}
	return dims
}

// UpdateInsets widens in with every child's needs; the aggregate is the
// elementwise maximum since margins must fit the most demanding child.
func (c *ComposedRenderer) UpdateInsets(ctx *DrawContext, in *Insets) {
	for _, child := range c.children {
		child.UpdateInsets(ctx, in)
	}
}

// PrepareTransformation stages a transition on every child from its slice
// of old to its slice of target. Either composed model may be nil.
func (c *ComposedRenderer) PrepareTransformation(old, target *entry.ComposedModel) {
	if old != nil {
		c.zip(old.Models)
	}
	if target != nil {
		c.zip(target.Models)
	}
	for i, child := range c.children {
		var childOld, childTarget *entry.Model
		if old != nil {
			childOld = old.Models[i]
		}
		if target != nil {
			childTarget = target.Models[i]
		}
		child.PrepareTransformation(childOld, childTarget)
	}
}

// Transform advances every child's staged transition.
func (c *ComposedRenderer) Transform(fraction float32) {
	for _, child := range c.children {
		child.Transform(fraction)
	}
}

// Draw renders all children's scrollable content in list order, then their
// overlay content in list order, and replaces the composed location map
// with the union of the children's maps.
func (c *ComposedRenderer) Draw(ctx *DrawContext, cm *entry.ComposedModel) {
	c.zip(cm.Models)
	for i, child := range c.children {
		child.Draw(ctx, cm.Models[i])
	}
	for i, child := range c.children {
		child.DrawOverlay(ctx, cm.Models[i])
	}
	c.locations.Clear()
	for _, child := range c.children {
		c.locations.MergeFrom(child.Locations())
	}
}

// Locations exposes the merged hit-test records of every child from the
// most recent Draw.
func (c *ComposedRenderer) Locations() *LocationMap { return &c.locations }

// SetYRange broadcasts a y-range override to every child.
//
// Deprecated: set ranges on the individual children instead. The composed
// renderer only caches the last written values for read-back; they carry
// no independent meaning at this level.
func (c *ComposedRenderer) SetYRange(minY, maxY *float64) {
	c.legacyMinY = minY
	c.legacyMaxY = maxY
	for _, child := range c.children {
		child.SetYRange(minY, maxY)
	}
}

// YRange returns the last values written through SetYRange.
//
// Deprecated: see SetYRange.
func (c *ComposedRenderer) YRange() (minY, maxY *float64) {
	return c.legacyMinY, c.legacyMaxY
}
