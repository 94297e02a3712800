package core

import "testing"

func TestParseColorNames(t *testing.T) {
	c, err := ParseColor("red")
	if err != nil {
		t.Fatalf("ParseColor(red): %v", err)
	}
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("red = %v", c)
	}

	if _, err := ParseColor("rebeccapurple"); err != nil {
		t.Errorf("ParseColor(rebeccapurple): %v", err)
	}
	if _, err := ParseColor("no-such-color"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestParseColorHex(t *testing.T) {
	c, err := ParseColor("#00ff00")
	if err != nil {
		t.Fatalf("ParseColor(#00ff00): %v", err)
	}
	if !c.Equals(ColorGreen) {
		t.Errorf("got %v, want %v", c, ColorGreen)
	}

	short, err := ParseColor("#0f0")
	if err != nil {
		t.Fatalf("ParseColor(#0f0): %v", err)
	}
	if !short.Equals(ColorGreen) {
		t.Errorf("short hex: got %v, want %v", short, ColorGreen)
	}

	if _, err := ParseColor("#zzz"); err == nil {
		t.Error("expected error for bad hex")
	}
}

func TestParseColorRGBFunc(t *testing.T) {
	c, err := ParseColor("rgb(12, 34, 56)")
	if err != nil {
		t.Fatalf("ParseColor(rgb): %v", err)
	}
	if c.R != 12 || c.G != 34 || c.B != 56 {
		t.Errorf("got %v", c)
	}

	if _, err := ParseColor("rgb(1,2)"); err == nil {
		t.Error("expected error for short rgb()")
	}
	if _, err := ParseColor("rgb(256,0,0)"); err == nil {
		t.Error("expected error for out-of-range component")
	}
}

func TestParseColorDefaultAndIndex(t *testing.T) {
	c, err := ParseColor("default")
	if err != nil || !c.IsDefault() {
		t.Errorf("default: %v, %v", c, err)
	}

	idx, err := ParseColor("142")
	if err != nil {
		t.Fatalf("ParseColor(142): %v", err)
	}
	if !idx.Indexed || idx.R != 142 {
		t.Errorf("got %v, want idx(142)", idx)
	}
}

func TestColorEquals(t *testing.T) {
	if !ColorDefault.Equals(Color{Default: true, R: 99}) {
		t.Error("default colors compare equal regardless of channels")
	}
	if ColorFromIndex(1).Equals(ColorFromRGB(1, 0, 0)) {
		t.Error("indexed and rgb colors are distinct")
	}
	if ColorRed.Equals(ColorDefault) {
		t.Error("rgb vs default")
	}
}

func TestLightenDarken(t *testing.T) {
	l := ColorGray.Lighten(0.5)
	if l.R <= ColorGray.R {
		t.Errorf("lighten should raise channels: %v", l)
	}
	d := ColorGray.Darken(0.5)
	if d.R >= ColorGray.R {
		t.Errorf("darken should lower channels: %v", d)
	}
	if !ColorFromIndex(4).Lighten(0.5).Equals(ColorFromIndex(4)) {
		t.Error("indexed colors pass through unchanged")
	}
}

func TestBlend(t *testing.T) {
	mid := ColorBlack.Blend(ColorWhite, 0.5)
	if mid.R < 100 || mid.R > 160 {
		t.Errorf("blend midpoint out of range: %v", mid)
	}
	if !ColorBlack.Blend(ColorWhite, 0).Equals(ColorBlack) {
		t.Error("blend(0) should return the receiver")
	}
	if !ColorDefault.Blend(ColorRed, 0.9).Equals(ColorRed) {
		t.Error("blending with default picks the nearer endpoint")
	}
}

func TestColorString(t *testing.T) {
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("String() = %q", got)
	}
	if got := ColorFromIndex(7).String(); got != "idx(7)" {
		t.Errorf("String() = %q", got)
	}
	if got := ColorRed.String(); got != "#FF0000" {
		t.Errorf("String() = %q", got)
	}
}
