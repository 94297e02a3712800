// Package grid provides the cell grid used by layers, compositing,
// and the display pipeline.
package grid

import (
	"fmt"

	"github.com/dshills/termpaint/internal/renderer/core"
)

// Buffer is a width x height grid of cells stored row-major.
// Out-of-bounds reads return the transparent empty cell; out-of-bounds
// writes are silently dropped. Rows touched by writes are tracked so
// flush paths can skip provably clean rows.
type Buffer struct {
	width  int
	height int
	cells  []core.Cell
	dirty  []bool // per-row write flags
}

// New creates a buffer of the given dimensions with every cell
// transparent. Negative dimensions are a configuration error.
func New(width, height int) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	b := &Buffer{
		width:  width,
		height: height,
		cells:  make([]core.Cell, width*height),
		dirty:  make([]bool, height),
	}
	b.reset()
	return b, nil
}

// MustNew is New for dimensions known to be valid at compile time.
// It panics on negative dimensions; use New for caller-supplied sizes.
func MustNew(width, height int) *Buffer {
	b, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Buffer) reset() {
	empty := core.EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
}

// Width returns the buffer width in cells.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in rows.
func (b *Buffer) Height() int { return b.height }

// InBounds returns true if (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y). Out-of-bounds positions return the
// transparent empty cell; Get never fails.
func (b *Buffer) Get(x, y int) core.Cell {
	if !b.InBounds(x, y) {
		return core.EmptyCell()
	}
	return b.cells[y*b.width+x]
}

// Set merges the patch into the cell at (x, y). Fields not named in
// the patch keep their current values. Out of bounds is a no-op.
func (b *Buffer) Set(x, y int, p core.Patch) {
	if !b.InBounds(x, y) {
		return
	}
	i := y*b.width + x
	b.cells[i] = b.cells[i].Apply(p)
	b.dirty[y] = true
}

// Put overwrites the whole cell at (x, y). Out of bounds is a no-op.
func (b *Buffer) Put(x, y int, c core.Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
	b.dirty[y] = true
}

// FillRegion overwrites every cell in the region with c, clipped to
// the buffer bounds.
func (b *Buffer) FillRegion(r core.Rect, c core.Cell) {
	clipped := r.Intersection(core.NewRect(0, 0, b.width, b.height))
	if clipped.IsEmpty() {
		return
	}
	for y := clipped.Y; y < clipped.Bottom(); y++ {
		row := y * b.width
		for x := clipped.X; x < clipped.Right(); x++ {
			b.cells[row+x] = c
		}
		b.dirty[y] = true
	}
}

// ClearRegion resets every cell in the region to transparent, clipped
// to the buffer bounds.
func (b *Buffer) ClearRegion(r core.Rect) {
	b.FillRegion(r, core.EmptyCell())
}

// Clear resets every cell to transparent.
func (b *Buffer) Clear() {
	b.reset()
	for y := range b.dirty {
		b.dirty[y] = true
	}
}

// Resize changes the buffer dimensions. Content in the overlapping
// sub-rectangle is preserved; exposed cells start transparent and
// their rows are marked dirty. Resizing to the current dimensions is
// a no-op. Negative dimensions are a configuration error.
func (b *Buffer) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	if width == b.width && height == b.height {
		return nil
	}

	cells := make([]core.Cell, width*height)
	empty := core.EmptyCell()
	for i := range cells {
		cells[i] = empty
	}

	copyW := min(width, b.width)
	copyH := min(height, b.height)
	for y := 0; y < copyH; y++ {
		copy(cells[y*width:y*width+copyW], b.cells[y*b.width:y*b.width+copyW])
	}

	dirty := make([]bool, height)
	for y := 0; y < min(height, len(b.dirty)); y++ {
		dirty[y] = b.dirty[y]
	}
	if width > b.width {
		// Existing rows gained exposed columns.
		for y := 0; y < copyH; y++ {
			dirty[y] = true
		}
	}
	for y := b.height; y < height; y++ {
		dirty[y] = true
	}

	b.width = width
	b.height = height
	b.cells = cells
	b.dirty = dirty
	return nil
}

// ForEach visits every cell in row-major order.
func (b *Buffer) ForEach(fn func(x, y int, c core.Cell)) {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			fn(x, y, b.cells[row+x])
		}
	}
}

// Row returns the cells of row y as a shared slice. Callers must not
// retain it across writes.
func (b *Buffer) Row(y int) []core.Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width : (y+1)*b.width]
}

// Clone returns a deep copy of the buffer, dirty flags included.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		width:  b.width,
		height: b.height,
		cells:  make([]core.Cell, len(b.cells)),
		dirty:  make([]bool, len(b.dirty)),
	}
	copy(c.cells, b.cells)
	copy(c.dirty, b.dirty)
	return c
}

// WriteString writes text starting at (x, y), grapheme-aware, with
// continuation cells after wide characters. Writes past the right edge
// are clipped. Returns the x position after the last written cell.
func (b *Buffer) WriteString(x, y int, s string, style core.Style) int {
	cells := core.CellsFromString(s, style)
	for i, c := range cells {
		b.Put(x+i, y, c)
	}
	return x + len(cells)
}

// RowDirty returns true if row y has been written since the last
// ClearDirty.
func (b *Buffer) RowDirty(y int) bool {
	if y < 0 || y >= len(b.dirty) {
		return false
	}
	return b.dirty[y]
}

// ClearDirty resets all row dirty flags.
func (b *Buffer) ClearDirty() {
	for y := range b.dirty {
		b.dirty[y] = false
	}
}
