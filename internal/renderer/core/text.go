package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RuneWidth returns the display width of a rune.
// Control characters have width 0.
func RuneWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string in cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// CellsFromString converts a string to cells, one per grapheme cluster.
// Wide characters are followed by a continuation cell so that the slice
// length equals the string's display width.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		r := runes[0]
		width := runewidth.StringWidth(g.Str())
		if width == 0 {
			continue
		}
		cells = append(cells, Cell{
			Rune:  r,
			Width: width,
			Style: style,
		})
		for i := 1; i < width; i++ {
			cont := ContinuationCell()
			cont.Style = style
			cells = append(cells, cont)
		}
	}
	return cells
}

// StringFromCells converts cells back to a string, skipping
// continuation and transparent cells.
func StringFromCells(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}
