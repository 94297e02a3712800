// Package display maintains the terminal-state snapshots and turns
// frame updates into write calls on the output sink.
package display

import (
	"fmt"
	"io"

	"github.com/dshills/termpaint/internal/renderer/ansi"
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// CellDiff is one cell-level difference between the pending frame and
// what the terminal currently shows.
type CellDiff struct {
	X, Y int
	// Previous is nil when the position has never been painted
	// (first frame, or exposed by a resize).
	Previous *core.Cell
	Cell     core.Cell
}

// DisplayBuffer holds two snapshots: current, what the terminal is
// believed to show, and pending, the next frame. current stays nil
// until the first successful flush.
type DisplayBuffer struct {
	width   int
	height  int
	current *grid.Buffer
	pending *grid.Buffer
	gen     *ansi.Generator

	// rowFilter, when set, lets FlushDiff skip rows known to be
	// clean. A row is only skipped when the filter returns false.
	rowFilter func(y int) bool
}

// New creates a display buffer for a width x height terminal.
func New(width, height int, gen *ansi.Generator) (*DisplayBuffer, error) {
	pending, err := grid.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	return &DisplayBuffer{
		width:   width,
		height:  height,
		pending: pending,
		gen:     gen,
	}, nil
}

// Width returns the display width in cells.
func (d *DisplayBuffer) Width() int { return d.width }

// Height returns the display height in rows.
func (d *DisplayBuffer) Height() int { return d.height }

// SetRowFilter installs a row predicate used by FlushDiff. Rows for
// which the filter returns false are skipped without diffing, and
// their cells stay owed: the current snapshot only advances for rows
// the filter let through, so a later unfiltered flush delivers them.
// The filter is ignored before the first successful flush, when every
// position is owed. A nil filter diffs every row.
func (d *DisplayBuffer) SetRowFilter(filter func(y int) bool) {
	d.rowFilter = filter
}

// UpdateFromComposite replaces the pending frame. The display buffer
// takes ownership of buf.
func (d *DisplayBuffer) UpdateFromComposite(buf *grid.Buffer) error {
	if buf.Width() != d.width || buf.Height() != d.height {
		return fmt.Errorf("display: composite is %dx%d, want %dx%d",
			buf.Width(), buf.Height(), d.width, d.height)
	}
	d.pending = buf
	return nil
}

// Resize changes the display dimensions. The pending frame is resized
// in place; current is left untouched so positions the terminal has
// never shown diff as unpainted.
func (d *DisplayBuffer) Resize(width, height int) error {
	if err := d.pending.Resize(width, height); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	d.width = width
	d.height = height
	return nil
}

// Diff returns every position where the pending frame differs
// visually from the current snapshot, in row-major order.
func (d *DisplayBuffer) Diff() []CellDiff {
	return d.diffRows(nil)
}

func (d *DisplayBuffer) diffRows(filter func(y int) bool) []CellDiff {
	var diffs []CellDiff
	for y := 0; y < d.height; y++ {
		if filter != nil && !filter(y) {
			continue
		}
		for x := 0; x < d.width; x++ {
			next := d.pending.Get(x, y)
			if d.current == nil || !d.current.InBounds(x, y) {
				diffs = append(diffs, CellDiff{X: x, Y: y, Cell: next})
				continue
			}
			prev := d.current.Get(x, y)
			if !prev.VisualEqual(next) {
				diffs = append(diffs, CellDiff{X: x, Y: y, Previous: &prev, Cell: next})
			}
		}
	}
	return diffs
}

// Flush writes the entire pending frame to the sink: one cursor
// address per row, every cell encoded. The byte stream is assembled
// fully before a single Write call; if that write fails, current is
// not advanced and the error is returned.
func (d *DisplayBuffer) Flush(sink io.Writer) (int, error) {
	out := append([]byte(ansi.Reset), d.gen.BufferToANSI(d.pending)...)
	n, err := sink.Write(out)
	if err != nil {
		return n, fmt.Errorf("display: flush: %w", err)
	}
	d.current = d.pending.Clone()
	d.pending.ClearDirty()
	return n, nil
}

// FlushDiff writes only the cells that changed, coalescing
// consecutive cells on a row into a single cursor-move run. When
// nothing changed, nothing is written. Error semantics match Flush;
// on success current advances only for the cells actually flushed.
func (d *DisplayBuffer) FlushDiff(sink io.Writer) (int, error) {
	// Before the first flush, and after a resize, rows the filter
	// would skip can still hold owed cells; diff everything.
	owedAll := d.current == nil ||
		d.current.Width() != d.pending.Width() ||
		d.current.Height() != d.pending.Height()
	filter := d.rowFilter
	if owedAll {
		filter = nil
	}
	diffs := d.diffRows(filter)
	if len(diffs) == 0 {
		return 0, nil
	}

	out := []byte(ansi.Reset)
	style := core.DefaultStyle()
	runY, runX := -1, -1
	for _, diff := range diffs {
		if diff.Y == runY && diff.X < runX {
			// Column already covered by the wide character just
			// written; emitting anything here would clip its
			// right half.
			continue
		}
		if diff.Y != runY || diff.X != runX {
			out = d.gen.AppendCursorMove(out, diff.X, diff.Y)
		}
		out = d.gen.AppendCell(out, diff.Cell, &style)
		style = diff.Cell.Style
		runY = diff.Y
		runX = diff.X + max(diff.Cell.Width, 1)
	}

	n, err := sink.Write(out)
	if err != nil {
		return n, fmt.Errorf("display: flush: %w", err)
	}
	if owedAll {
		d.current = d.pending.Clone()
	} else {
		for _, diff := range diffs {
			d.current.Put(diff.X, diff.Y, diff.Cell)
		}
	}
	d.pending.ClearDirty()
	return n, nil
}
