package chartwise

import (
	"errors"
	"image/color"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

// Overrider lets callers substitute parts of a column's style for specific
// entries without re-describing the whole style. ShouldOverride gates the
// other methods; they are only consulted for entries it accepts.
type Overrider interface {
	ShouldOverride(e entry.Entry) bool
	FillOverride(e entry.Entry) (color.NRGBA, bool)
	ShaderOverride(e entry.Entry) (Shader, bool)
	StrokeOverride(e entry.Entry) (color.NRGBA, bool)
}

// NoOverride is an Overrider that never matches. Renderers treat a nil
// Overrider and NoOverride identically.
type NoOverride struct{}

func (NoOverride) ShouldOverride(entry.Entry) bool                { return false }
func (NoOverride) FillOverride(entry.Entry) (color.NRGBA, bool)   { return color.NRGBA{}, false }
func (NoOverride) ShaderOverride(entry.Entry) (Shader, bool)      { return Shader{}, false }
func (NoOverride) StrokeOverride(entry.Entry) (color.NRGBA, bool) { return color.NRGBA{}, false }

// ErrNoOverrideValues reports an OverrideWhere call that supplied no
// values: such an overrider could never change anything, which is a
// configuration mistake rather than a valid no-op.
var ErrNoOverrideValues = errors.New("chartwise: overrider needs at least one of fill, shader, or stroke")

// OverrideWhere builds an Overrider substituting the given discrete values
// for every entry matching pred. Nil values leave the corresponding style
// field alone; at least one must be set.
func OverrideWhere(pred func(entry.Entry) bool, fill *color.NRGBA, shader *Shader, stroke *color.NRGBA) (Overrider, error) {
	if fill == nil && shader == nil && stroke == nil {
		return nil, ErrNoOverrideValues
	}
	return &valueOverrider{
		pred:   pred,
		fill:   fill,
		shader: shader,
		stroke: stroke,
	}, nil
}

type valueOverrider struct {
	pred   func(entry.Entry) bool
	fill   *color.NRGBA
	shader *Shader
	stroke *color.NRGBA
}

func (v *valueOverrider) ShouldOverride(e entry.Entry) bool { return v.pred(e) }

func (v *valueOverrider) FillOverride(entry.Entry) (color.NRGBA, bool) {
	if v.fill == nil {
		return color.NRGBA{}, false
	}
	return *v.fill, true
}

func (v *valueOverrider) ShaderOverride(entry.Entry) (Shader, bool) {
	if v.shader == nil {
		return Shader{}, false
	}
	return *v.shader, true
}

func (v *valueOverrider) StrokeOverride(entry.Entry) (color.NRGBA, bool) {
	if v.stroke == nil {
		return color.NRGBA{}, false
	}
	return *v.stroke, true
}

// styleKey is the structural cache key for one override combination. It is
// a comparable composite of the three override values rather than a
// synthesized string, so distinct combinations can never collide.
type styleKey struct {
	fill      color.NRGBA
	hasFill   bool
	shader    Shader
	hasShader bool
	stroke    color.NRGBA
	hasStroke bool
}

// overrideCache reuses the styles built for override combinations across
// entries and frames. Keys not used during a frame are evicted when the
// frame's draw pass prunes the cache, bounding growth to the combinations
// currently visible.
type overrideCache struct {
	built map[styleKey]*ColumnStyle
	used  map[styleKey]bool
}

// resolve returns the effective style for e: the default when no override
// applies, otherwise a cached or freshly built copy with the override
// values substituted.
func (c *overrideCache) resolve(o Overrider, def *ColumnStyle, e entry.Entry) *ColumnStyle {
	if o == nil || !o.ShouldOverride(e) {
		return def
	}
	var key styleKey
	key.fill, key.hasFill = o.FillOverride(e)
	key.shader, key.hasShader = o.ShaderOverride(e)
	key.stroke, key.hasStroke = o.StrokeOverride(e)
	if !key.hasFill && !key.hasShader && !key.hasStroke {
		return def
	}
	if c.built == nil {
		c.built = make(map[styleKey]*ColumnStyle)
		c.used = make(map[styleKey]bool)
	}
	c.used[key] = true
	if st, ok := c.built[key]; ok {
		return st
	}
	st := *def
	if key.hasFill {
		st.Fill = key.fill
		st.Shader = nil
	}
	if key.hasShader {
		shader := key.shader
		st.Shader = &shader
	}
	if key.hasStroke {
		st.StrokeColor = key.stroke
	}
	c.built[key] = &st
	return &st
}

// prune evicts every style whose key went unused since the last prune and
// resets the usage tracking for the next frame.
func (c *overrideCache) prune() {
	for key := range c.built {
		if !c.used[key] {
			delete(c.built, key)
		}
	}
	clear(c.used)
}
