package backend

import "bytes"

// Null is an in-memory backend for tests. It captures everything
// written and lets tests trigger resize events.
type Null struct {
	width, height int
	buf           bytes.Buffer
	writes        int
	resizeHandler func(width, height int)
	failWith      error
}

// NewNull creates a null backend with the given dimensions.
func NewNull(width, height int) *Null {
	return &Null{width: width, height: height}
}

func (b *Null) Init() error     { return nil }
func (b *Null) Shutdown() error { return nil }

func (b *Null) Size() (int, int, error) {
	return b.width, b.height, nil
}

func (b *Null) OnResize(callback func(width, height int)) {
	b.resizeHandler = callback
}

func (b *Null) Write(p []byte) (int, error) {
	if b.failWith != nil {
		return 0, b.failWith
	}
	b.writes++
	return b.buf.Write(p)
}

// FailWith makes subsequent writes return err. Pass nil to recover.
func (b *Null) FailWith(err error) {
	b.failWith = err
}

// Output returns everything written so far.
func (b *Null) Output() string {
	return b.buf.String()
}

// Writes returns the number of successful Write calls.
func (b *Null) Writes() int {
	return b.writes
}

// ResetOutput clears the captured output and write count.
func (b *Null) ResetOutput() {
	b.buf.Reset()
	b.writes = 0
}

// Resize changes the reported size and fires the resize callback.
func (b *Null) Resize(width, height int) {
	b.width = width
	b.height = height
	if b.resizeHandler != nil {
		b.resizeHandler(width, height)
	}
}
