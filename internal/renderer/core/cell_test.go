package core

import "testing"

func TestEmptyCellIsTransparent(t *testing.T) {
	c := EmptyCell()
	if !c.IsTransparent() {
		t.Error("empty cell should be transparent")
	}
	if c.Rune != 0 {
		t.Errorf("empty cell rune = %d, want 0", c.Rune)
	}
	if !c.Style.IsDefault() {
		t.Error("empty cell should have default style")
	}
}

func TestNewCellWidth(t *testing.T) {
	tests := []struct {
		r     rune
		width int
	}{
		{'a', 1},
		{'中', 2},
		{'\t', 0},
		{0, 0},
	}
	for _, tt := range tests {
		c := NewCell(tt.r)
		if c.Width != tt.width {
			t.Errorf("NewCell(%q).Width = %d, want %d", tt.r, c.Width, tt.width)
		}
	}
}

func TestVisualEqualIgnoresMetadata(t *testing.T) {
	a := NewCell('x')
	b := NewCell('x')
	b.Z = 5
	b.LayerID = "overlay"
	b.ElementID = "button"

	if !a.VisualEqual(b) {
		t.Error("cells differing only in metadata should be visually equal")
	}
	if a.Equals(b) {
		t.Error("Equals should see the metadata difference")
	}

	b = b.WithRune('y')
	if a.VisualEqual(b) {
		t.Error("different runes should not be visually equal")
	}
}

func TestVisualEqualStyle(t *testing.T) {
	a := NewStyledCell('x', NewStyle(ColorRed))
	b := NewStyledCell('x', NewStyle(ColorGreen))
	if a.VisualEqual(b) {
		t.Error("different foregrounds should not be visually equal")
	}
}

func TestPatchApplyPreservesUnsetFields(t *testing.T) {
	base := NewStyledCell('a', Style{
		Foreground: ColorRed,
		Background: ColorBlue,
		Attributes: AttrBold,
	})
	base.LayerID = "base"

	got := base.Apply(RunePatch('b'))
	if got.Rune != 'b' {
		t.Errorf("rune = %q, want 'b'", got.Rune)
	}
	if !got.Style.Foreground.Equals(ColorRed) || !got.Style.Background.Equals(ColorBlue) {
		t.Error("rune patch should preserve colors")
	}
	if got.Style.Attributes != AttrBold {
		t.Error("rune patch should preserve attributes")
	}
	if got.LayerID != "base" {
		t.Error("rune patch should preserve ownership")
	}
}

func TestPatchApplyBackgroundOnly(t *testing.T) {
	base := NewCell('a')
	p := Patch{Fields: FieldBackground, Background: ColorGreen}
	got := base.Apply(p)
	if !got.Style.Background.Equals(ColorGreen) {
		t.Error("background not applied")
	}
	if got.Rune != 'a' {
		t.Error("rune should be untouched")
	}
	if !got.Style.Foreground.IsDefault() {
		t.Error("foreground should be untouched")
	}
}

func TestCellPatchRoundTrip(t *testing.T) {
	c := NewStyledCell('中', Style{Foreground: ColorCyan, Attributes: AttrUnderline})
	c.Z = 3
	c.LayerID = "popup"
	c.ElementID = "title"

	got := EmptyCell().Apply(CellPatch(c))
	if !got.Equals(c) {
		t.Errorf("CellPatch round trip: got %+v, want %+v", got, c)
	}
}

func TestStylePatch(t *testing.T) {
	s := Style{Foreground: ColorYellow, Background: ColorBlack, Attributes: AttrDim}
	got := NewCell('q').Apply(StylePatch(s))
	if !got.Style.Equals(s) {
		t.Errorf("style = %+v, want %+v", got.Style, s)
	}
	if got.Rune != 'q' {
		t.Error("style patch should not touch the rune")
	}
}

func TestFieldHas(t *testing.T) {
	f := FieldRune | FieldBackground
	if !f.Has(FieldRune) || !f.Has(FieldBackground) {
		t.Error("Has should report set fields")
	}
	if f.Has(FieldForeground) {
		t.Error("Has should not report unset fields")
	}
}
