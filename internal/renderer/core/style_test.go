package core

import "testing"

func TestAttributeOps(t *testing.T) {
	a := AttrNone.With(AttrBold).With(AttrUnderline)
	if !a.Has(AttrBold) || !a.Has(AttrUnderline) {
		t.Error("With should add attributes")
	}
	a = a.Without(AttrBold)
	if a.Has(AttrBold) {
		t.Error("Without should remove the attribute")
	}
	if !a.Has(AttrUnderline) {
		t.Error("Without should not touch other attributes")
	}
}

func TestStyleBuilders(t *testing.T) {
	s := NewStyle(ColorRed).WithBackground(ColorBlue).Bold().Dim()
	if !s.Foreground.Equals(ColorRed) || !s.Background.Equals(ColorBlue) {
		t.Errorf("colors = %+v", s)
	}
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrDim) {
		t.Error("builder attributes missing")
	}
}

func TestStyleEquals(t *testing.T) {
	a := NewStyle(ColorRed).Bold()
	b := NewStyle(ColorRed).Bold()
	if !a.Equals(b) {
		t.Error("identical styles should be equal")
	}
	if a.Equals(b.Italic()) {
		t.Error("attribute difference should be detected")
	}
	if a.Equals(b.WithBackground(ColorBlack)) {
		t.Error("background difference should be detected")
	}
}

func TestStyleIsDefault(t *testing.T) {
	if !DefaultStyle().IsDefault() {
		t.Error("DefaultStyle should be default")
	}
	if NewStyle(ColorRed).IsDefault() {
		t.Error("styled is not default")
	}
	if DefaultStyle().Underline().IsDefault() {
		t.Error("attributed is not default")
	}
}
