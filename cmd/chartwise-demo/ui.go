package main

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/chartwise"
	"git.sr.ht/~whereswaldon/chartwise/entry"
	"git.sr.ht/~whereswaldon/chartwise/feed"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

const animDuration = 300 * time.Millisecond

type legendEntry struct {
	name  string
	color color.NRGBA
	last  float64
	has   bool
}

// UI holds the state of and draws the demo.
type UI struct {
	th *material.Theme
	ds *feed.Datasource

	snapshots  *stream.Stream[feed.Snapshot]
	snapshot   feed.Snapshot
	appliedSeq int
	loadErr    string

	columns  *chartwise.ColumnRenderer
	lines    *chartwise.LineRenderer
	composed *chartwise.ComposedRenderer
	vm       chartwise.ValuesManager
	target   *entry.ComposedModel
	legend   []legendEntry

	animating bool
	animStart time.Time

	stacked    widget.Bool
	showLabels widget.Bool
	paused     bool
	pauseBtn   widget.Clickable
	legendGrid component.GridState

	zoomG  gesture.Scroll
	panG   gesture.Scroll
	panBar widget.Scrollbar
	zoom   float32
	scroll float32

	// hover gesture state
	pos       f32.Point
	isHovered bool
}

func NewUI(controller *stream.Controller, ds *feed.Datasource, path string) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		th:   th,
		ds:   ds,
		zoom: 1,
	}
	ui.columns = chartwise.NewColumnRenderer(chartwise.MergeGrouped)
	ui.lines = chartwise.NewLineRenderer()
	ui.composed = chartwise.NewComposed(ui.columns, ui.lines)
	mut, _ := ds.WatchFile(path)
	ui.snapshots = stream.New(controller, mut.Stream)
	return ui
}

// Update consumes events and data for the frame.
func (ui *UI) Update(gtx C) {
	ui.snapshots.ReadInto(gtx, &ui.snapshot, feed.Snapshot{})
	if ui.snapshot.Err != nil {
		ui.loadErr = ui.snapshot.Err.Error()
	} else if ui.snapshot.Initialized() {
		ui.loadErr = ""
	}
	if ui.pauseBtn.Clicked(gtx) {
		ui.paused = !ui.paused
	}
	if !ui.paused && ui.snapshot.Initialized() && ui.snapshot.Seq != ui.appliedSeq {
		ui.appliedSeq = ui.snapshot.Seq
		ui.applySnapshot(ui.snapshot)
	}
	if ui.stacked.Update(gtx) {
		if ui.stacked.Value {
			ui.columns.Mode = chartwise.MergeStacked
		} else {
			ui.columns.Mode = chartwise.MergeGrouped
		}
	}
	ui.showLabels.Update(gtx)
	if ui.showLabels.Value {
		ui.columns.Labels = &chartwise.LabelStyle{Inset: 2}
	} else {
		ui.columns.Labels = nil
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: ui,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				ui.isHovered = true
				ui.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				ui.isHovered = false
			case pointer.Move:
				ui.pos = ev.Position
			}
		}
	}
	// Resolve this frame's chart values before anything reads them.
	if ui.target != nil {
		ui.vm.Reset()
		ui.composed.UpdateValues(&ui.vm, ui.target)
	}
}

// applySnapshot converts the loaded CSV data into fresh chart models and
// stages an animated transition from the previous state. Series whose
// heading carries a "(line)" suffix draw as lines, the rest as columns.
func (ui *UI) applySnapshot(s feed.Snapshot) {
	var (
		colSeries  [][]entry.Entry
		lineSeries [][]entry.Entry
		colNames   []string
		lineNames  []string
	)
	for i, heading := range s.Headings {
		if i < len(s.Collections) && strings.Contains(heading, "(line)") {
			lineSeries = append(lineSeries, s.Collections[i])
			lineNames = append(lineNames, heading)
		} else if i < len(s.Collections) {
			colSeries = append(colSeries, s.Collections[i])
			colNames = append(colNames, heading)
		}
	}
	palette := chartwise.Palette
	ui.columns.Styles = ui.columns.Styles[:0]
	ui.lines.Styles = ui.lines.Styles[:0]
	ui.legend = ui.legend[:0]
	for i, name := range colNames {
		c := palette[i%len(palette)]
		ui.columns.Styles = append(ui.columns.Styles, chartwise.NewColumnStyle(c))
		ui.legend = append(ui.legend, legendState(name, c, colSeries[i]))
	}
	for i, name := range lineNames {
		c := palette[(len(colNames)+i)%len(palette)]
		st := chartwise.NewLineStyle(c)
		area := c
		area.A = 0x40
		st.Area = chartwise.VerticalShader(area, color.NRGBA{})
		ui.lines.Styles = append(ui.lines.Styles, st)
		ui.legend = append(ui.legend, legendState(name, c, lineSeries[i]))
	}
	target := entry.Compose(
		entry.NewModel(colSeries...),
		entry.NewModel(lineSeries...),
	)
	ui.composed.PrepareTransformation(ui.target, target)
	ui.target = target
	ui.animating = true
	ui.animStart = time.Time{}
}

func legendState(name string, c color.NRGBA, entries []entry.Entry) legendEntry {
	le := legendEntry{name: name, color: c}
	if len(entries) > 0 {
		le.last = entries[len(entries)-1].Y
		le.has = true
	}
	return le
}

// Layout draws the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.target == nil {
		return ui.layoutStartScreen(gtx)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, ui.layoutPlotArea),
		layout.Rigid(ui.layoutControls),
		layout.Rigid(ui.layoutLegend),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body1(ui.th, "No data yet.").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// layoutPlotArea surrounds the plot with min/max labels for both axes,
// reading the same values an external axis renderer would.
func (ui *UI) layoutPlotArea(gtx C) D {
	vals := ui.vm.Values(chartwise.AxisDefault)
	maxYLabel := material.Body2(ui.th, formatVal(vals.MaxY))
	minYLabel := material.Body2(ui.th, formatVal(vals.MinY))
	minXLabel := material.Body2(ui.th, formatVal(vals.MinX))
	maxXLabel := material.Body2(ui.th, formatVal(vals.MaxX))
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	macro := op.Record(gtx.Ops)
	xLabelDims := minXLabel.Layout(gtx)
	_ = macro.Stop()
	gtx.Constraints = origConstraints
	return layout.Flex{}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(maxYLabel.Layout),
				layout.Rigid(minYLabel.Layout),
				layout.Rigid(func(gtx C) D {
					return D{Size: image.Point{Y: xLabelDims.Size.Y}}
				}),
			)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Flexed(1, ui.layoutPlot),
				layout.Rigid(func(gtx C) D {
					return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
						layout.Rigid(minXLabel.Layout),
						layout.Rigid(maxXLabel.Layout),
					)
				}),
			)
		}),
	)
}

func (ui *UI) layoutPlot(gtx C) D {
	// Zoom and pan gestures cover the whole plot.
	if dist := ui.zoomG.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 {
		proportion := 1 + float32(dist)/float32(gtx.Constraints.Max.Y)
		ui.zoom = clamp32(ui.zoom/proportion, 0.25, 8)
	}
	if dist := ui.panG.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0)); dist != 0 {
		ui.scroll += float32(dist)
	}

	ctx := &chartwise.DrawContext{
		Gtx:     gtx,
		Theme:   ui.th,
		Values:  &ui.vm,
		Zoom:    ui.zoom,
		Content: image.Rectangle{Max: gtx.Constraints.Max},
	}
	var insets chartwise.Insets
	ui.composed.UpdateInsets(ctx, &insets)
	ctx.Content.Min.Y += int(insets.Top)
	ctx.Content.Max.Y -= int(insets.Bottom)
	ctx.Content.Min.X += int(insets.Start)
	ctx.Content.Max.X -= int(insets.End)
	ui.composed.SetBounds(ctx.Content)

	// Clamp the scroll offset to the scrollable width.
	vals := ui.vm.Values(chartwise.AxisDefault)
	slots := 1
	if vals.XStep > 0 {
		slots = int(math.Round(vals.XRange()/vals.XStep)) + 1
	}
	dims := ui.composed.HorizontalDims(ctx, ui.target)
	total := dims.ContentWidth(slots-1) * ui.zoom
	maxScroll := max(total-float32(ctx.Content.Dx()), 0)
	if panDist := ui.panBar.ScrollDistance(); panDist != 0 {
		ui.scroll += panDist * total
	}
	ui.scroll = clamp32(ui.scroll, 0, maxScroll)
	ctx.Scroll = ui.scroll

	if ui.animating {
		if ui.animStart.IsZero() {
			ui.animStart = gtx.Now
		}
		fraction := float32(gtx.Now.Sub(ui.animStart)) / float32(animDuration)
		if fraction >= 1 {
			fraction = 1
			ui.animating = false
		}
		ui.composed.Transform(fraction)
		if ui.animating {
			gtx.Execute(op.InvalidateCmd{})
		}
	}

	return layout.Stack{Alignment: layout.S}.Layout(gtx,
		layout.Stacked(func(gtx C) D {
			macro := op.Record(gtx.Ops)
			ui.panG.Add(gtx.Ops)
			ui.zoomG.Add(gtx.Ops)
			event.Op(gtx.Ops, ui)
			ui.layoutGrid(gtx, ctx.Content, vals)
			ui.composed.Draw(ctx, ui.target)
			call := macro.Stop()
			if ui.isHovered {
				ui.layoutHover(gtx, call)
			} else {
				call.Add(gtx.Ops)
			}
			return D{Size: gtx.Constraints.Max}
		}),
		layout.Expanded(func(gtx C) D {
			if maxScroll == 0 {
				return D{}
			}
			scrollbar := material.Scrollbar(ui.th, &ui.panBar)
			scrollbar.Track.MajorPadding = 0
			scrollbar.Track.MinorPadding = 0
			scrollbar.Indicator.CornerRadius = 0
			scrollbar.Indicator.Color.A = 100
			vpStart := ui.scroll / total
			vpEnd := (ui.scroll + float32(ctx.Content.Dx())) / total
			return scrollbar.Layout(gtx, layout.Horizontal, vpStart, min(vpEnd, 1))
		}),
	)
}

// layoutGrid draws quarter-range gridlines plus a heavier zero line, the
// way a minimal external axis renderer would consume the chart values.
func (ui *UI) layoutGrid(gtx C, content image.Rectangle, vals chartwise.ChartValues) {
	if vals.YRange() == 0 {
		return
	}
	for i := 0; i <= 4; i++ {
		y := content.Min.Y + i*content.Dy()/4
		paint.FillShape(gtx.Ops, color.NRGBA{A: 50}, clip.Rect{
			Min: image.Point{X: content.Min.X, Y: y},
			Max: image.Point{X: content.Max.X, Y: y + 1},
		}.Op())
	}
	mult := float32(content.Dy()) / float32(vals.YRange())
	zeroY := int(float32(content.Max.Y) + float32(vals.MinY)*mult)
	if zeroY >= content.Min.Y && zeroY <= content.Max.Y {
		paint.FillShape(gtx.Ops, color.NRGBA{A: 120}, clip.Rect{
			Min: image.Point{X: content.Min.X, Y: zeroY},
			Max: image.Point{X: content.Max.X, Y: zeroY + 1},
		}.Op())
	}
}

// layoutHover replays the recorded plot, then draws a rule at the nearest
// marker position and a tooltip listing its entries.
func (ui *UI) layoutHover(gtx C, plot op.CallOp) {
	px, locs, ok := ui.composed.Locations().Nearest(ui.pos.X)
	if !ok {
		plot.Add(gtx.Ops)
		return
	}
	children := make([]layout.FlexChild, 0, len(locs))
	for _, loc := range locs {
		loc := loc
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(material.Body2(ui.th, formatVal(loc.Entry.Y)).Layout),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(func(gtx C) D {
					size := image.Pt(gtx.Dp(8), gtx.Dp(8))
					paint.FillShape(gtx.Ops, loc.Color, clip.Ellipse{Max: size}.Op(gtx.Ops))
					return D{Size: size}
				}),
			)
		}))
	}
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	tipMacro := op.Record(gtx.Ops)
	tipDims := layout.Background{}.Layout(gtx,
		func(gtx C) D {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 150}, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		},
		func(gtx C) D {
			return layout.UniformInset(10).Layout(gtx, func(gtx C) D {
				return layout.Flex{Axis: layout.Vertical, Alignment: layout.End}.Layout(gtx, children...)
			})
		},
	)
	tipCall := tipMacro.Stop()
	gtx.Constraints = origConstraints

	pos := image.Point{}
	if px > gtx.Constraints.Max.X-px {
		pos.X = max(px-tipDims.Size.X-gtx.Dp(4), 0)
	} else {
		pos.X = min(px+gtx.Dp(4), gtx.Constraints.Max.X-tipDims.Size.X)
	}
	if offscreenY := gtx.Constraints.Max.Y - (int(ui.pos.Y) + tipDims.Size.Y); offscreenY < 0 {
		pos.Y = int(ui.pos.Y) + offscreenY
	} else {
		pos.Y = int(ui.pos.Y)
	}
	plot.Add(gtx.Ops)
	paint.FillShape(gtx.Ops, color.NRGBA{A: 255}, clip.Rect{
		Min: image.Point{X: px - gtx.Dp(1)/2},
		Max: image.Point{X: px + max(gtx.Dp(1), 1), Y: gtx.Constraints.Max.Y},
	}.Op())
	offset := op.Offset(pos).Push(gtx.Ops)
	tipCall.Add(gtx.Ops)
	offset.Pop()
}

func (ui *UI) layoutControls(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(material.CheckBox(ui.th, &ui.stacked, "Stacked").Layout),
		layout.Rigid(layout.Spacer{Width: 12}.Layout),
		layout.Rigid(material.CheckBox(ui.th, &ui.showLabels, "Value labels").Layout),
		layout.Rigid(layout.Spacer{Width: 12}.Layout),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints = layout.Exact(image.Pt(gtx.Dp(24), gtx.Dp(24)))
			icon := pauseIcon
			if ui.paused {
				icon = playIcon
			}
			return material.Clickable(gtx, &ui.pauseBtn, func(gtx C) D {
				return icon.Layout(gtx, ui.th.Fg)
			})
		}),
	)
}

func (ui *UI) layoutLegend(gtx C) D {
	table := component.Table(ui.th, &ui.legendGrid)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		nameCol
		valueCol
		numCols
	)
	return table.Layout(gtx, len(ui.legend), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case nameCol:
				size = nameColWidth
			case valueCol:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(ui.th, "Color")
			case nameCol:
				l = material.Body1(ui.th, "Series")
				l.Alignment = text.Middle
			case valueCol:
				l = material.Body1(ui.th, "Latest")
				l.Alignment = text.End
			default:
				l = material.Body1(ui.th, "???")
			}
			l.Color = ui.th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, ui.th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				},
				l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			if row >= len(ui.legend) {
				return D{Size: gtx.Constraints.Max}
			}
			le := ui.legend[row]
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						paint.FillShape(gtx.Ops, le.color, clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case nameCol:
					return material.Body2(ui.th, le.name).Layout(gtx)
				case valueCol:
					txt := "-"
					if le.has {
						txt = formatVal(le.last)
					}
					l := material.Body2(ui.th, txt)
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
		})
}

func formatVal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func clamp32(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
