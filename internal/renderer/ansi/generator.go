// Package ansi generates the escape-sequence byte stream that
// reconciles the terminal with a frame. The generator emits minimal
// SGR transitions: a sequence contains only the codes for attributes
// and colors whose value actually changes.
package ansi

import (
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// Profile describes the terminal's color capability.
type Profile struct {
	// TrueColor enables 24-bit SGR color (38;2 / 48;2). When false,
	// RGB colors are downsampled to the 256-color cube.
	TrueColor bool
}

// Generator encodes styles, cells, and buffers as escape sequences.
// All Append methods grow and return the passed slice; none of them
// allocate beyond that slice.
type Generator struct {
	profile Profile
}

// NewGenerator creates a generator for the given color profile.
func NewGenerator(profile Profile) *Generator {
	return &Generator{profile: profile}
}

// Reset is the SGR sequence clearing all attributes and colors.
const Reset = "\x1b[0m"

// AppendCursorMove appends a cursor address sequence for the
// 0-indexed grid position (x, y). Terminal rows and columns are
// 1-based.
func (g *Generator) AppendCursorMove(dst []byte, x, y int) []byte {
	dst = append(dst, '\x1b', '[')
	dst = appendInt(dst, y+1)
	dst = append(dst, ';')
	dst = appendInt(dst, x+1)
	return append(dst, 'H')
}

// AppendTransition appends one SGR sequence carrying the terminal from
// style from to style to. A nil from means the terminal is in the
// default style, so only to's non-default properties are emitted.
// When the styles are equal nothing is appended.
func (g *Generator) AppendTransition(dst []byte, from *core.Style, to core.Style) []byte {
	def := core.DefaultStyle()
	if from == nil {
		from = &def
	}
	if from.Equals(to) {
		return dst
	}

	start := len(dst)
	dst = append(dst, '\x1b', '[')
	mark := len(dst)

	dst = appendAttrParams(dst, mark, from.Attributes, to.Attributes)
	if !to.Foreground.Equals(from.Foreground) {
		dst = g.appendColorParams(dst, mark, to.Foreground, false)
	}
	if !to.Background.Equals(from.Background) {
		dst = g.appendColorParams(dst, mark, to.Background, true)
	}

	if len(dst) == mark {
		return dst[:start]
	}
	return append(dst, 'm')
}

// TransitionCodes returns the SGR transition from from to to as a
// fresh byte slice.
func (g *Generator) TransitionCodes(from *core.Style, to core.Style) []byte {
	return g.AppendTransition(nil, from, to)
}

// AppendCell appends the cell's style transition and its character.
// A nil last means the terminal is in the default style. Transparent
// cells and width-0 runes (control characters) render as a space so
// the cursor always advances exactly one column per cell.
func (g *Generator) AppendCell(dst []byte, c core.Cell, last *core.Style) []byte {
	dst = g.AppendTransition(dst, last, c.Style)
	if c.Rune == 0 || c.Width == 0 {
		return append(dst, ' ')
	}
	return append(dst, string(c.Rune)...)
}

// CellToANSI encodes a single cell from the default style.
func (g *Generator) CellToANSI(c core.Cell) []byte {
	return g.AppendCell(nil, c, nil)
}

// AppendLine encodes a row of cells, carrying style state across the
// row so unchanged runs of cells emit no SGR codes. Continuation
// cells of wide characters are skipped. Returns the style in effect
// after the last cell.
func (g *Generator) AppendLine(dst []byte, cells []core.Cell, last *core.Style) ([]byte, core.Style) {
	style := core.DefaultStyle()
	if last != nil {
		style = *last
	}
	for i := 0; i < len(cells); i++ {
		c := cells[i]
		dst = g.AppendCell(dst, c, &style)
		style = c.Style
		if c.Width == 2 {
			// Skip the continuation column of a wide character.
			i++
		}
	}
	return dst, style
}

// LineToANSI encodes a row of cells starting from the default style.
func (g *Generator) LineToANSI(cells []core.Cell) []byte {
	out, _ := g.AppendLine(nil, cells, nil)
	return out
}

// BufferToANSI encodes an entire buffer, addressing the cursor to the
// start of each row.
func (g *Generator) BufferToANSI(b *grid.Buffer) []byte {
	var dst []byte
	style := core.DefaultStyle()
	for y := 0; y < b.Height(); y++ {
		dst = g.AppendCursorMove(dst, 0, y)
		dst, style = g.AppendLine(dst, b.Row(y), &style)
	}
	return dst
}

// appendAttrParams appends SGR codes for the attribute delta.
// SGR 22 clears both bold and dim, so turning either off emits 22
// followed by re-assertion of the one that remains on.
func appendAttrParams(dst []byte, mark int, from, to core.Attribute) []byte {
	if from == to {
		return dst
	}

	boldOff := from.Has(core.AttrBold) && !to.Has(core.AttrBold)
	dimOff := from.Has(core.AttrDim) && !to.Has(core.AttrDim)
	if boldOff || dimOff {
		dst = appendParam(dst, mark, 22)
		if to.Has(core.AttrBold) {
			dst = appendParam(dst, mark, 1)
		}
		if to.Has(core.AttrDim) {
			dst = appendParam(dst, mark, 2)
		}
	} else {
		if to.Has(core.AttrBold) && !from.Has(core.AttrBold) {
			dst = appendParam(dst, mark, 1)
		}
		if to.Has(core.AttrDim) && !from.Has(core.AttrDim) {
			dst = appendParam(dst, mark, 2)
		}
	}

	simple := []struct {
		attr core.Attribute
		on   int
		off  int
	}{
		{core.AttrItalic, 3, 23},
		{core.AttrUnderline, 4, 24},
		{core.AttrBlink, 5, 25},
		{core.AttrReverse, 7, 27},
		{core.AttrHidden, 8, 28},
		{core.AttrStrikethrough, 9, 29},
	}
	for _, s := range simple {
		switch {
		case to.Has(s.attr) && !from.Has(s.attr):
			dst = appendParam(dst, mark, s.on)
		case from.Has(s.attr) && !to.Has(s.attr):
			dst = appendParam(dst, mark, s.off)
		}
	}
	return dst
}

// appendColorParams appends the SGR parameters selecting the color.
func (g *Generator) appendColorParams(dst []byte, mark int, c core.Color, background bool) []byte {
	switch {
	case c.Default:
		if background {
			return appendParam(dst, mark, 49)
		}
		return appendParam(dst, mark, 39)

	case c.Indexed && c.R < 8:
		base := 30
		if background {
			base = 40
		}
		return appendParam(dst, mark, base+int(c.R))

	case c.Indexed && c.R < 16:
		base := 90
		if background {
			base = 100
		}
		return appendParam(dst, mark, base+int(c.R)-8)

	case c.Indexed:
		return appendExtended(dst, mark, background, 5, int(c.R))

	case g.profile.TrueColor:
		dst = appendExtended(dst, mark, background, 2, int(c.R))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.G))
		dst = append(dst, ';')
		return appendInt(dst, int(c.B))

	default:
		return appendExtended(dst, mark, background, 5, rgbTo256(c.R, c.G, c.B))
	}
}

// appendExtended appends a 38;mode;... or 48;mode;... prefix plus the
// first value.
func appendExtended(dst []byte, mark int, background bool, mode, value int) []byte {
	lead := 38
	if background {
		lead = 48
	}
	dst = appendParam(dst, mark, lead)
	dst = append(dst, ';')
	dst = appendInt(dst, mode)
	dst = append(dst, ';')
	return appendInt(dst, value)
}

// rgbTo256 maps an RGB color onto the 6x6x6 color cube of the
// 256-color palette.
func rgbTo256(r, g, b uint8) int {
	ri := (int(r)*5 + 127) / 255
	gi := (int(g)*5 + 127) / 255
	bi := (int(b)*5 + 127) / 255
	return 16 + 36*ri + 6*gi + bi
}

// appendParam appends a parameter, separated from any previous one.
func appendParam(dst []byte, mark int, code int) []byte {
	if len(dst) > mark {
		dst = append(dst, ';')
	}
	return appendInt(dst, code)
}

// appendInt appends the decimal representation of a non-negative int.
func appendInt(dst []byte, n int) []byte {
	if n >= 10 {
		dst = appendInt(dst, n/10)
	}
	return append(dst, byte('0'+n%10))
}
