// Package dirty tracks which rows changed between frames so the flush
// path can skip clean rows, and decides when enough of the screen
// changed that a full repaint beats diffing.
package dirty

import (
	"fmt"

	"github.com/dshills/termpaint/internal/renderer/core"
)

// DefaultThreshold is the dirty-row ratio above which a full repaint
// is cheaper than diffing.
const DefaultThreshold = 0.5

// Tracker records row-granular damage for one frame.
type Tracker struct {
	rows      []bool
	count     int
	threshold float64
	all       bool

	stats Stats
}

// Stats reports tracker activity for observability.
type Stats struct {
	Frames       int // Clear calls
	MarkedRows   int // cumulative rows marked
	FullRepaints int // frames where ShouldFullRepaint held
}

// NewTracker creates a tracker for a screen of the given height.
// A non-positive threshold falls back to DefaultThreshold.
func NewTracker(height int, threshold float64) (*Tracker, error) {
	if height < 0 {
		return nil, fmt.Errorf("dirty: invalid height %d", height)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{
		rows:      make([]bool, height),
		threshold: threshold,
	}, nil
}

// MarkRow records damage on row y. Out-of-range rows are ignored.
func (t *Tracker) MarkRow(y int) {
	if y < 0 || y >= len(t.rows) || t.rows[y] {
		return
	}
	t.rows[y] = true
	t.count++
	t.stats.MarkedRows++
}

// MarkRect records damage on every row the rectangle covers.
func (t *Tracker) MarkRect(r core.Rect) {
	for y := r.Y; y < r.Bottom(); y++ {
		t.MarkRow(y)
	}
}

// MarkAll records damage everywhere, forcing a full repaint.
func (t *Tracker) MarkAll() {
	t.all = true
	for y := range t.rows {
		if !t.rows[y] {
			t.rows[y] = true
			t.count++
			t.stats.MarkedRows++
		}
	}
}

// RowDirty returns true if row y was marked this frame.
func (t *Tracker) RowDirty(y int) bool {
	if t.all {
		return true
	}
	if y < 0 || y >= len(t.rows) {
		return false
	}
	return t.rows[y]
}

// DirtyRows returns the number of marked rows.
func (t *Tracker) DirtyRows() int {
	return t.count
}

// Ratio returns the fraction of rows marked.
func (t *Tracker) Ratio() float64 {
	if len(t.rows) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.rows))
}

// ShouldFullRepaint returns true when diffing would touch enough of
// the screen that repainting everything is cheaper.
func (t *Tracker) ShouldFullRepaint() bool {
	return t.all || t.Ratio() >= t.threshold
}

// Clear resets the tracker for the next frame.
func (t *Tracker) Clear() {
	if t.ShouldFullRepaint() {
		t.stats.FullRepaints++
	}
	for y := range t.rows {
		t.rows[y] = false
	}
	t.count = 0
	t.all = false
	t.stats.Frames++
}

// Resize adjusts the tracked height. All rows start dirty after a
// resize.
func (t *Tracker) Resize(height int) error {
	if height < 0 {
		return fmt.Errorf("dirty: invalid height %d", height)
	}
	t.rows = make([]bool, height)
	t.count = 0
	t.all = false
	t.MarkAll()
	return nil
}

// Stats returns cumulative tracker statistics.
func (t *Tracker) Stats() Stats {
	return t.stats
}
