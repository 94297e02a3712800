// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between the grid, compositing,
// display, and backend packages.
package core

// Cell represents a single character position's full visual state.
type Cell struct {
	// Rune is the character to display.
	// A value of 0 means the cell is transparent: it contributes no
	// character, foreground, or attributes when merged, though its
	// background (if set) still shows through.
	Rune rune

	// Width is the display width of this cell.
	// 0 for transparent and continuation cells, 1 for normal chars,
	// 2 for wide CJK chars.
	Width int

	// Style is the visual style for this cell.
	Style Style

	// Z records the highest z-index that contributed to this cell
	// during a merge. Bookkeeping only; never used for rendering.
	Z int

	// LayerID identifies the layer that owns this cell's content.
	LayerID string

	// ElementID identifies the drawable element that painted this
	// cell. Used for hit-testing queries, never for rendering logic.
	ElementID string
}

// EmptyCell returns a fully transparent cell with default style.
func EmptyCell() Cell {
	return Cell{Style: DefaultStyle()}
}

// NewCell creates an opaque cell with the given rune and default style.
func NewCell(r rune) Cell {
	return Cell{
		Rune:  r,
		Width: RuneWidth(r),
		Style: DefaultStyle(),
	}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Width: RuneWidth(r),
		Style: style,
	}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithRune returns a new cell with the given rune.
func (c Cell) WithRune(r rune) Cell {
	c.Rune = r
	c.Width = RuneWidth(r)
	return c
}

// IsTransparent returns true if the cell has no character of its own.
func (c Cell) IsTransparent() bool {
	return c.Rune == 0
}

// IsContinuation returns true if this cell could be the continuation
// column of a wide character. Continuation cells share the transparent
// shape; producers that need to tell them apart track position.
func (c Cell) IsContinuation() bool {
	return c.Rune == 0 && c.Width == 0
}

// VisualEqual compares the fields that affect what the terminal shows:
// rune, width, and style. Z and ownership metadata never participate.
func (c Cell) VisualEqual(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// Equals compares all fields including bookkeeping metadata.
func (c Cell) Equals(other Cell) bool {
	return c == other
}

// ContinuationCell returns a continuation cell for wide characters.
func ContinuationCell() Cell {
	return Cell{Style: DefaultStyle()}
}

// Field selects which Patch fields are present.
type Field uint8

// Patch field flags.
const (
	FieldRune Field = 1 << iota
	FieldForeground
	FieldBackground
	FieldAttributes
	FieldZ
	FieldLayerID
	FieldElementID
)

// Has returns true if the field set contains the given field.
func (f Field) Has(field Field) bool {
	return f&field != 0
}

// Patch is a partial cell: only the fields named in Fields are applied
// when merged onto an existing cell; everything else is preserved.
type Patch struct {
	Fields     Field
	Rune       rune
	Foreground Color
	Background Color
	Attributes Attribute
	Z          int
	LayerID    string
	ElementID  string
}

// RunePatch returns a patch that sets only the rune.
func RunePatch(r rune) Patch {
	return Patch{Fields: FieldRune, Rune: r}
}

// StylePatch returns a patch that sets foreground, background, and
// attributes from the given style.
func StylePatch(s Style) Patch {
	return Patch{
		Fields:     FieldForeground | FieldBackground | FieldAttributes,
		Foreground: s.Foreground,
		Background: s.Background,
		Attributes: s.Attributes,
	}
}

// CellPatch returns a patch that replaces every field from the cell.
func CellPatch(c Cell) Patch {
	return Patch{
		Fields:     FieldRune | FieldForeground | FieldBackground | FieldAttributes | FieldZ | FieldLayerID | FieldElementID,
		Rune:       c.Rune,
		Foreground: c.Style.Foreground,
		Background: c.Style.Background,
		Attributes: c.Style.Attributes,
		Z:          c.Z,
		LayerID:    c.LayerID,
		ElementID:  c.ElementID,
	}
}

// Apply merges the patch onto the cell, returning the result.
// Fields not named in the patch keep their existing values.
func (c Cell) Apply(p Patch) Cell {
	result := c
	if p.Fields.Has(FieldRune) {
		result.Rune = p.Rune
		result.Width = RuneWidth(p.Rune)
	}
	if p.Fields.Has(FieldForeground) {
		result.Style.Foreground = p.Foreground
	}
	if p.Fields.Has(FieldBackground) {
		result.Style.Background = p.Background
	}
	if p.Fields.Has(FieldAttributes) {
		result.Style.Attributes = p.Attributes
	}
	if p.Fields.Has(FieldZ) {
		result.Z = p.Z
	}
	if p.Fields.Has(FieldLayerID) {
		result.LayerID = p.LayerID
	}
	if p.Fields.Has(FieldElementID) {
		result.ElementID = p.ElementID
	}
	return result
}
