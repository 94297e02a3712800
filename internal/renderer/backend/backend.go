// Package backend owns the terminal lifecycle: raw mode, the
// alternate screen, cursor visibility, and resize notification. The
// rendering pipeline only sees the io.Writer side.
package backend

import "io"

// Backend is a render target with a size and a resize callback.
type Backend interface {
	io.Writer

	// Init prepares the target for rendering. On a real terminal
	// this enters raw mode, switches to the alternate screen, and
	// hides the cursor.
	Init() error

	// Shutdown restores the target to its pre-Init state.
	Shutdown() error

	// Size returns the current dimensions in cells.
	Size() (width, height int, err error)

	// OnResize registers a callback invoked when the target changes
	// size.
	OnResize(callback func(width, height int))
}
