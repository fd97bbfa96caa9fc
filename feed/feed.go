// Package feed loads chart data from CSV files and republishes it to the
// UI whenever the file changes on disk.
package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/chartwise/entry"
	"github.com/fsnotify/fsnotify"
)

// Snapshot is one loaded data state: a heading and an entry collection per
// series. Each reload of the backing file produces a fresh Snapshot, so
// consumers can animate between consecutive states.
type Snapshot struct {
	// Seq increments with each emission so consumers can cheaply detect
	// that a new snapshot arrived.
	Seq         int
	Headings    []string
	Collections [][]entry.Entry
	Err         error
}

// Initialized reports whether the snapshot carries any data yet.
func (s Snapshot) Initialized() bool {
	return len(s.Headings) > 0
}

// Datasource owns the file-watching sessions that feed the UI.
type Datasource struct {
	pool   *stream.MutationPool[string, Snapshot]
	appCtx context.Context
}

// New builds a Datasource whose sessions end when appCtx does.
func New(appCtx context.Context, mutator *stream.Mutator) *Datasource {
	return &Datasource{
		pool:   stream.NewMutationPool[string, Snapshot](mutator),
		appCtx: appCtx,
	}
}

// WatchFile starts (or joins) a session streaming snapshots of the CSV
// file at path. The first snapshot is emitted immediately; subsequent ones
// follow each write to the file.
func (d *Datasource) WatchFile(path string) (*stream.Mutation[Snapshot], bool) {
	return stream.Mutate(d.pool, path, func(ctx context.Context) <-chan Snapshot {
		out := make(chan Snapshot, 1)
		go func() {
			defer close(out)
			seq := 0
			emit := func(s Snapshot) bool {
				seq++
				s.Seq = seq
				select {
				case out <- s:
					return true
				case <-ctx.Done():
					return false
				}
			}
			if !emit(loadFile(path)) {
				return
			}
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				emit(Snapshot{Err: fmt.Errorf("failed creating file watcher: %w", err)})
				return
			}
			defer watcher.Close()
			if err := watcher.Add(path); err != nil {
				emit(Snapshot{Err: fmt.Errorf("failed watching %q: %w", path, err)})
				return
			}
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-watcher.Events:
					if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
						continue
					}
					if !emit(loadFile(path)) {
						return
					}
				case err := <-watcher.Errors:
					log.Printf("watch error on %q: %v", path, err)
				}
			}
		}()
		return out
	})
}

func loadFile(path string) Snapshot {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{Err: fmt.Errorf("failed opening data file: %w", err)}
	}
	defer f.Close()
	snapshot, err := Parse(f)
	if err != nil {
		return Snapshot{Err: fmt.Errorf("failed parsing %q: %w", path, err)}
	}
	return snapshot
}

// Parse reads chart data from CSV. The first column holds x values, every
// further column one series; the heading row names them. Empty cells leave
// a hole in that series, and rows must arrive in non-decreasing x order.
func Parse(r io.Reader) (Snapshot, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	headings, err := csvReader.Read()
	if err != nil {
		return Snapshot{}, fmt.Errorf("could not read csv headings: %w", err)
	}
	if len(headings) < 2 {
		return Snapshot{}, fmt.Errorf("expected an x column and at least one series, got %d columns", len(headings))
	}
	snapshot := Snapshot{
		Headings:    headings[1:],
		Collections: make([][]entry.Entry, len(headings)-1),
	}
	lastX := 0.0
	haveRows := false
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return snapshot, nil
			}
			return Snapshot{}, err
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed parsing x value %q: %w", rec[0], err)
		}
		if haveRows && x < lastX {
			return Snapshot{}, fmt.Errorf("x values must be non-decreasing, %v follows %v", x, lastX)
		}
		lastX, haveRows = x, true
		for i := 1; i < len(rec) && i < len(headings); i++ {
			cell := strings.TrimSpace(rec[i])
			if len(cell) < 1 {
				// Skip null cells.
				continue
			}
			y, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Snapshot{}, fmt.Errorf("failed parsing data[%d]=%q: %w", i, rec[i], err)
			}
			snapshot.Collections[i-1] = append(snapshot.Collections[i-1], entry.Pt(x, y))
		}
	}
}
