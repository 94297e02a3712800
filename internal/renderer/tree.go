// Package renderer orchestrates the frame pipeline: draw tree to
// layers, layers to a composite, composite to terminal bytes.
package renderer

import (
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// Node is one element of the draw tree. Nodes with StackingContext
// set render into their own layer; other nodes paint into the nearest
// ancestor context's layer.
type Node struct {
	// ID uniquely identifies the node. Stacking-context nodes reuse
	// the layer carrying their id across frames.
	ID string

	// Bounds positions the node relative to its parent.
	Bounds core.Rect

	// Z orders this node's layer among its siblings. Only meaningful
	// on stacking-context nodes.
	Z int

	// StackingContext gives the node its own layer.
	StackingContext bool

	// Visible toggles the node and its subtree. The zero Node is
	// hidden; use NewNode.
	Visible bool

	// Opacity below 1 removes the node's layer from compositing.
	Opacity float64

	// Content is painted in order before Children.
	Content []Drawable

	Children []*Node
}

// NewNode creates a visible node.
func NewNode(id string, bounds core.Rect) *Node {
	return &Node{
		ID:      id,
		Bounds:  bounds,
		Visible: true,
		Opacity: 1.0,
	}
}

// NewContext creates a visible stacking-context node.
func NewContext(id string, bounds core.Rect, z int) *Node {
	n := NewNode(id, bounds)
	n.Z = z
	n.StackingContext = true
	return n
}

// AddChild appends a child and returns it for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Drawable is the closed set of paintable content: TextRun, Fill,
// Border, and Group.
type Drawable interface {
	drawTo(p *painter)
}

// TextRun paints a string at a position in node coordinates.
type TextRun struct {
	X, Y  int
	Text  string
	Style core.Style
}

// Fill paints every cell of a rectangle with a rune and style. A zero
// Rune fills style only, leaving characters transparent.
type Fill struct {
	Rect  core.Rect
	Rune  rune
	Style core.Style
}

// Border paints a box outline just inside a rectangle.
type Border struct {
	Rect  core.Rect
	Style core.Style
	Set   BorderSet
}

// Group offsets and paints nested drawables.
type Group struct {
	Offset core.Pos
	Items  []Drawable
}

// BorderSet holds the box-drawing runes for a border.
type BorderSet struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// Border rune sets.
var (
	BorderSingle  = BorderSet{'┌', '┐', '└', '┘', '─', '│'}
	BorderRounded = BorderSet{'╭', '╮', '╰', '╯', '─', '│'}
	BorderDouble  = BorderSet{'╔', '╗', '╚', '╝', '═', '║'}
)

// painter carries the paint target through a subtree: the layer
// buffer, the accumulated offset into it, the clip rectangle in
// buffer coordinates, and the owning element id.
type painter struct {
	buf     *grid.Buffer
	dx, dy  int
	clip    core.Rect
	element string
}

func (p *painter) put(x, y int, c core.Cell) {
	bx, by := x+p.dx, y+p.dy
	if !p.clip.Contains(core.NewPos(bx, by)) {
		return
	}
	c.ElementID = p.element
	p.buf.Put(bx, by, c)
}

func (t TextRun) drawTo(p *painter) {
	cells := core.CellsFromString(t.Text, t.Style)
	for i, c := range cells {
		p.put(t.X+i, t.Y, c)
	}
}

func (f Fill) drawTo(p *painter) {
	if f.Rect.IsEmpty() {
		return
	}
	cell := core.Cell{Rune: f.Rune, Style: f.Style}
	if f.Rune != 0 {
		cell.Width = core.RuneWidth(f.Rune)
	}
	for y := f.Rect.Y; y < f.Rect.Bottom(); y++ {
		for x := f.Rect.X; x < f.Rect.Right(); x++ {
			p.put(x, y, cell)
		}
	}
}

func (b Border) drawTo(p *painter) {
	r := b.Rect
	if r.Width < 2 || r.Height < 2 {
		// Too small for an outline; degenerate rects paint nothing.
		return
	}
	set := b.Set
	if set == (BorderSet{}) {
		set = BorderSingle
	}
	right, bottom := r.Right()-1, r.Bottom()-1

	p.put(r.X, r.Y, core.NewStyledCell(set.TopLeft, b.Style))
	p.put(right, r.Y, core.NewStyledCell(set.TopRight, b.Style))
	p.put(r.X, bottom, core.NewStyledCell(set.BottomLeft, b.Style))
	p.put(right, bottom, core.NewStyledCell(set.BottomRight, b.Style))
	for x := r.X + 1; x < right; x++ {
		p.put(x, r.Y, core.NewStyledCell(set.Horizontal, b.Style))
		p.put(x, bottom, core.NewStyledCell(set.Horizontal, b.Style))
	}
	for y := r.Y + 1; y < bottom; y++ {
		p.put(r.X, y, core.NewStyledCell(set.Vertical, b.Style))
		p.put(right, y, core.NewStyledCell(set.Vertical, b.Style))
	}
}

func (g Group) drawTo(p *painter) {
	child := *p
	child.dx += g.Offset.X
	child.dy += g.Offset.Y
	for _, item := range g.Items {
		item.drawTo(&child)
	}
}
