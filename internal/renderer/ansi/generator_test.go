package ansi

import (
	"strings"
	"testing"

	"github.com/dshills/termpaint/internal/renderer/core"
)

func trueColorGen() *Generator {
	return NewGenerator(Profile{TrueColor: true})
}

func TestTransitionIdenticalStylesEmitsNothing(t *testing.T) {
	g := trueColorGen()
	s := core.NewStyle(core.ColorRed).Bold()
	if got := g.TransitionCodes(&s, s); len(got) != 0 {
		t.Errorf("identical styles emitted %q", got)
	}
	if got := g.TransitionCodes(nil, core.DefaultStyle()); len(got) != 0 {
		t.Errorf("default from nil emitted %q", got)
	}
}

func TestTransitionFromNilEmitsOnlyNonDefaults(t *testing.T) {
	g := trueColorGen()
	got := string(g.TransitionCodes(nil, core.NewStyle(core.ColorRed)))
	want := "\x1b[38;2;255;0;0m"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "49") || strings.Contains(got, "22") {
		t.Error("default background and attributes must not be mentioned")
	}
}

func TestTransitionAttributeOnOff(t *testing.T) {
	g := trueColorGen()
	plain := core.DefaultStyle()

	on := string(g.TransitionCodes(&plain, plain.Italic().Underline()))
	if on != "\x1b[3;4m" {
		t.Errorf("on codes = %q, want \\x1b[3;4m", on)
	}

	from := plain.Italic().Underline()
	off := string(g.TransitionCodes(&from, plain))
	if off != "\x1b[23;24m" {
		t.Errorf("off codes = %q, want \\x1b[23;24m", off)
	}
}

func TestTransitionBoldDimShareOffCode(t *testing.T) {
	g := trueColorGen()
	boldDim := core.DefaultStyle().Bold().Dim()
	dimOnly := core.DefaultStyle().Dim()

	// Dropping bold must re-assert dim after SGR 22.
	got := string(g.TransitionCodes(&boldDim, dimOnly))
	if got != "\x1b[22;2m" {
		t.Errorf("got %q, want \\x1b[22;2m", got)
	}

	// Dropping both emits just 22.
	got = string(g.TransitionCodes(&boldDim, core.DefaultStyle()))
	if got != "\x1b[22m" {
		t.Errorf("got %q, want \\x1b[22m", got)
	}

	// Adding bold while dim stays on emits just 1.
	got = string(g.TransitionCodes(&dimOnly, boldDim))
	if got != "\x1b[1m" {
		t.Errorf("got %q, want \\x1b[1m", got)
	}
}

func TestTransitionColors(t *testing.T) {
	g := trueColorGen()
	plain := core.DefaultStyle()

	tests := []struct {
		name string
		to   core.Style
		want string
	}{
		{"16-palette fg", plain.WithForeground(core.ColorFromIndex(1)), "\x1b[31m"},
		{"bright fg", plain.WithForeground(core.ColorFromIndex(9)), "\x1b[91m"},
		{"256 fg", plain.WithForeground(core.ColorFromIndex(142)), "\x1b[38;5;142m"},
		{"rgb fg", plain.WithForeground(core.ColorFromRGB(1, 2, 3)), "\x1b[38;2;1;2;3m"},
		{"16-palette bg", plain.WithBackground(core.ColorFromIndex(4)), "\x1b[44m"},
		{"bright bg", plain.WithBackground(core.ColorFromIndex(12)), "\x1b[104m"},
		{"256 bg", plain.WithBackground(core.ColorFromIndex(200)), "\x1b[48;5;200m"},
		{"rgb bg", plain.WithBackground(core.ColorFromRGB(9, 8, 7)), "\x1b[48;2;9;8;7m"},
	}
	for _, tt := range tests {
		if got := string(g.TransitionCodes(&plain, tt.to)); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTransitionToDefaultColors(t *testing.T) {
	g := trueColorGen()
	from := core.NewStyle(core.ColorRed).WithBackground(core.ColorBlue)
	got := string(g.TransitionCodes(&from, core.DefaultStyle()))
	if got != "\x1b[39;49m" {
		t.Errorf("got %q, want \\x1b[39;49m", got)
	}
}

func TestRGBDownsampleWithoutTrueColor(t *testing.T) {
	g := NewGenerator(Profile{TrueColor: false})
	plain := core.DefaultStyle()
	got := string(g.TransitionCodes(&plain, plain.WithForeground(core.ColorWhite)))
	if got != "\x1b[38;5;231m" {
		t.Errorf("got %q, want the top cube corner 231", got)
	}
	got = string(g.TransitionCodes(&plain, plain.WithForeground(core.ColorBlack)))
	if got != "\x1b[38;5;16m" {
		t.Errorf("got %q, want the bottom cube corner 16", got)
	}
}

func TestCursorMoveIsOneBased(t *testing.T) {
	g := trueColorGen()
	if got := string(g.AppendCursorMove(nil, 0, 0)); got != "\x1b[1;1H" {
		t.Errorf("origin = %q", got)
	}
	if got := string(g.AppendCursorMove(nil, 2, 1)); got != "\x1b[2;3H" {
		t.Errorf("(2,1) = %q", got)
	}
}

func TestCellToANSI(t *testing.T) {
	g := trueColorGen()
	got := string(g.CellToANSI(core.NewStyledCell('A', core.NewStyle(core.ColorRed))))
	if got != "\x1b[38;2;255;0;0mA" {
		t.Errorf("got %q", got)
	}
	// Transparent cells render as a space.
	if got := string(g.CellToANSI(core.EmptyCell())); got != " " {
		t.Errorf("transparent = %q, want a single space", got)
	}
}

func TestControlRunesRenderAsSpace(t *testing.T) {
	g := trueColorGen()
	bell := core.NewCell('\a')
	if got := string(g.CellToANSI(bell)); got != " " {
		t.Errorf("control rune = %q, want a single space", got)
	}
	// The control cell still occupies its column, so neighbors keep
	// their alignment.
	cells := []core.Cell{core.NewCell('a'), bell, core.NewCell('b')}
	if got := string(g.LineToANSI(cells)); got != "a b" {
		t.Errorf("got %q, want %q", got, "a b")
	}
}

func TestLineToANSICarriesStyle(t *testing.T) {
	g := trueColorGen()
	red := core.NewStyle(core.ColorFromIndex(1))
	cells := []core.Cell{
		core.NewStyledCell('a', red),
		core.NewStyledCell('b', red),
		core.NewStyledCell('c', core.DefaultStyle()),
	}
	got := string(g.LineToANSI(cells))
	want := "\x1b[31mab\x1b[39mc"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLineToANSISkipsContinuations(t *testing.T) {
	g := trueColorGen()
	cells := core.CellsFromString("a中b", core.DefaultStyle())
	if got := string(g.LineToANSI(cells)); got != "a中b" {
		t.Errorf("got %q", got)
	}
}
