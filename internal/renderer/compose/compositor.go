// Package compose merges layer stacks into a single frame buffer.
package compose

import (
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
	"github.com/dshills/termpaint/internal/renderer/layer"
)

// Compositor merges layers bottom-up into one buffer.
//
// Merge rules, applied per position in ascending (z, seq) order:
//  1. A non-transparent, non-space character overwrites the character,
//     foreground, and attributes, and takes ownership of the cell.
//  2. Independently, a non-default background overwrites the
//     background. Ownership transfers only while no character
//     occupies the position.
//  3. The composite cell records the highest contributing z.
//  4. Invisible layers and layers with opacity below 1 are skipped
//     entirely, background included.
type Compositor struct{}

// New creates a compositor.
func New() *Compositor {
	return &Compositor{}
}

// Composite merges the given layers, assumed sorted ascending by
// (z, seq), into a width x height buffer. Identical inputs always
// produce identical output.
func (c *Compositor) Composite(layers []*layer.Layer, width, height int) (*grid.Buffer, error) {
	out, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	screen := core.NewRect(0, 0, width, height)

	for _, l := range layers {
		if !l.Opaque() {
			continue
		}
		visible := l.Bounds.Intersection(screen)
		if visible.IsEmpty() {
			continue
		}
		buf := l.Buffer()
		for y := visible.Y; y < visible.Bottom(); y++ {
			ly := y - l.Bounds.Y
			for x := visible.X; x < visible.Right(); x++ {
				src := buf.Get(x-l.Bounds.X, ly)
				c.mergeCell(out, x, y, src, l)
			}
		}
	}
	return out, nil
}

func (c *Compositor) mergeCell(out *grid.Buffer, x, y int, src core.Cell, l *layer.Layer) {
	hasChar := src.Rune != 0 && src.Rune != ' '
	hasBG := !src.Style.Background.IsDefault()
	if !hasChar && !hasBG {
		return
	}

	dst := out.Get(x, y)
	if dst.LayerID == "" {
		// First contribution at this position.
		dst.Z = l.Z
	}

	if hasChar {
		dst.Rune = src.Rune
		dst.Width = src.Width
		dst.Style.Foreground = src.Style.Foreground
		dst.Style.Attributes = src.Style.Attributes
		dst.LayerID = l.ID
		dst.ElementID = elementID(src, l)
	}
	if hasBG {
		dst.Style.Background = src.Style.Background
		if dst.Rune == 0 {
			dst.LayerID = l.ID
			dst.ElementID = elementID(src, l)
		}
	}
	if l.Z > dst.Z {
		dst.Z = l.Z
	}

	out.Put(x, y, dst)
}

func elementID(src core.Cell, l *layer.Layer) string {
	if src.ElementID != "" {
		return src.ElementID
	}
	return l.ElementID
}
