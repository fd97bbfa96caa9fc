// Command chartwise-demo renders a composed column/line chart from a CSV
// file, live-reloading the chart whenever the file changes.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/chartwise/feed"
)

func main() {
	dataFile := flag.String("data", "chart.csv", "CSV file of chart data: an x column followed by one column per series; series named with a \"(line)\" suffix draw as lines instead of columns")
	flag.Parse()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mutator := stream.NewMutator(ctx, time.Second)
	ds := feed.New(ctx, mutator)
	go func() {
		w := app.NewWindow(app.Title("chartwise demo"))
		controller := stream.NewController(ctx, w.Invalidate)
		ui := NewUI(controller, ds, *dataFile)
		if err := loop(w, ui); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, ui *UI) error {
	var ops op.Ops
	for {
		switch ev := w.NextEvent().(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
