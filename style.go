package chartwise

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

// Palette is the default series color cycle used when a renderer is not
// given explicit styles.
var Palette = []color.NRGBA{
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff},
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff},
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff},
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff},
}

// Shader describes a linear gradient in coordinates relative to the shape
// it fills: (0,0) is the shape's top-left corner and (1,1) its bottom
// right. Shader is a comparable value so it can participate in override
// cache keys directly.
type Shader struct {
	Start, End           f32.Point
	StartColor, EndColor color.NRGBA
}

// paint emits the gradient resolved against rect. The caller is expected
// to have pushed a clip for the shape being filled.
func (sh Shader) paint(ops *op.Ops, rect image.Rectangle) {
	w := float32(rect.Dx())
	h := float32(rect.Dy())
	paint.LinearGradientOp{
		Stop1:  f32.Pt(float32(rect.Min.X)+sh.Start.X*w, float32(rect.Min.Y)+sh.Start.Y*h),
		Stop2:  f32.Pt(float32(rect.Min.X)+sh.End.X*w, float32(rect.Min.Y)+sh.End.Y*h),
		Color1: sh.StartColor,
		Color2: sh.EndColor,
	}.Add(ops)
	paint.PaintOp{}.Add(ops)
}

// VerticalShader is a convenience constructor for a top-to-bottom gradient.
func VerticalShader(top, bottom color.NRGBA) *Shader {
	return &Shader{
		End:        f32.Pt(0, 1),
		StartColor: top,
		EndColor:   bottom,
	}
}

// ColumnStyle describes how one series' columns are drawn. A configured
// Shader takes precedence over the flat Fill.
type ColumnStyle struct {
	Fill         color.NRGBA
	Shader       *Shader
	StrokeColor  color.NRGBA
	StrokeWidth  unit.Dp
	Thickness    unit.Dp
	CornerRadius unit.Dp
}

// NewColumnStyle returns a solid style with the default column thickness.
func NewColumnStyle(fill color.NRGBA) *ColumnStyle {
	return &ColumnStyle{
		Fill:      fill,
		Thickness: 8,
	}
}

// markerColor is the color a marker indicator shows for entries drawn with
// this style.
func (s *ColumnStyle) markerColor() color.NRGBA {
	if s.Shader != nil {
		return s.Shader.StartColor
	}
	return s.Fill
}

// draw renders one column occupying rect.
func (s *ColumnStyle) draw(ctx *DrawContext, rect image.Rectangle) {
	ops := ctx.Gtx.Ops
	radius := min(ctx.Gtx.Dp(s.CornerRadius), rect.Dx()/2, rect.Dy()/2)
	outline := clip.UniformRRect(rect, radius)
	if s.Shader != nil {
		area := outline.Push(ops)
		s.Shader.paint(ops, rect)
		area.Pop()
	} else {
		paint.FillShape(ops, s.Fill, outline.Op(ops))
	}
	if s.StrokeWidth > 0 {
		paint.FillShape(ops, s.StrokeColor, clip.Stroke{
			Path:  outline.Path(ops),
			Width: float32(ctx.Gtx.Dp(s.StrokeWidth)),
		}.Op())
	}
}

// LineStyle describes how one series' line is drawn.
type LineStyle struct {
	Color color.NRGBA
	Width unit.Dp
	// Area optionally fills the region between the line and the zero
	// line with a gradient.
	Area *Shader
}

// NewLineStyle returns a solid line style with the default stroke width.
func NewLineStyle(c color.NRGBA) *LineStyle {
	return &LineStyle{
		Color: c,
		Width: 2,
	}
}
