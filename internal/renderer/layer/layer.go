// Package layer manages the stack of drawing surfaces merged by the
// compositor. Each layer owns its own cell buffer positioned by a
// bounds rectangle in root coordinates.
package layer

import (
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// Layer is a single drawing surface.
type Layer struct {
	// ID uniquely identifies the layer within its manager.
	ID string

	// Z is the stacking order; higher values draw on top.
	Z int

	// Seq is the creation sequence number assigned by the manager.
	// It breaks ties between layers sharing the same Z: the layer
	// created later wins.
	Seq uint64

	// Visible controls whether the layer participates in compositing.
	Visible bool

	// Opacity below 1 removes the layer from compositing entirely.
	// No partial blending is performed.
	Opacity float64

	// Bounds positions the layer's buffer in root coordinates.
	Bounds core.Rect

	// ElementID names the draw-tree element that owns this layer.
	ElementID string

	buf *grid.Buffer
}

// Buffer returns the layer's cell buffer, sized to Bounds.
func (l *Layer) Buffer() *grid.Buffer {
	return l.buf
}

// Opaque returns true if the layer contributes to compositing.
func (l *Layer) Opaque() bool {
	return l.Visible && l.Opacity >= 1.0
}

// SetBounds moves and resizes the layer. The buffer is resized only
// when the dimensions change, preserving overlapping content.
func (l *Layer) SetBounds(bounds core.Rect) error {
	if bounds.Width != l.buf.Width() || bounds.Height != l.buf.Height() {
		if err := l.buf.Resize(bounds.Width, bounds.Height); err != nil {
			return err
		}
	}
	l.Bounds = bounds
	return nil
}

// Clear resets the layer's buffer to transparent.
func (l *Layer) Clear() {
	l.buf.Clear()
}
