package backend

import (
	"errors"
	"testing"
)

func TestNullCapturesWrites(t *testing.T) {
	b := NewNull(80, 24)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	n, err := b.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	b.Write([]byte(" world"))
	if b.Output() != "hello world" {
		t.Errorf("Output = %q", b.Output())
	}
	if b.Writes() != 2 {
		t.Errorf("Writes = %d", b.Writes())
	}

	b.ResetOutput()
	if b.Output() != "" || b.Writes() != 0 {
		t.Error("ResetOutput should clear capture state")
	}
}

func TestNullFailWith(t *testing.T) {
	b := NewNull(10, 10)
	boom := errors.New("boom")
	b.FailWith(boom)
	if _, err := b.Write([]byte("x")); !errors.Is(err, boom) {
		t.Errorf("want injected error, got %v", err)
	}
	if b.Writes() != 0 {
		t.Error("failed writes should not count")
	}
	b.FailWith(nil)
	if _, err := b.Write([]byte("x")); err != nil {
		t.Errorf("recovered write failed: %v", err)
	}
}

func TestNullResizeCallback(t *testing.T) {
	b := NewNull(80, 24)
	var gotW, gotH int
	b.OnResize(func(w, h int) { gotW, gotH = w, h })
	b.Resize(100, 40)

	if gotW != 100 || gotH != 40 {
		t.Errorf("callback got %dx%d", gotW, gotH)
	}
	w, h, err := b.Size()
	if err != nil || w != 100 || h != 40 {
		t.Errorf("Size = %dx%d, %v", w, h, err)
	}
}
