//go:build unix

package backend

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	resetAttrs     = "\x1b[0m"
	clearScreen    = "\x1b[2J"
)

// Terminal drives a real terminal on stdout. Init puts the terminal
// into raw mode on the alternate screen; Shutdown restores it.
type Terminal struct {
	out *os.File

	mu        sync.Mutex
	oldState  *term.State
	sigCh     chan os.Signal
	done      chan struct{}
	onResize  func(width, height int)
	altScreen bool
	cursor    bool
}

// TerminalOptions control Init behavior.
type TerminalOptions struct {
	// AltScreen switches to the alternate screen buffer.
	AltScreen bool
	// HideCursor hides the cursor while rendering.
	HideCursor bool
}

// NewTerminal creates a terminal backend on stdout.
func NewTerminal(opts TerminalOptions) *Terminal {
	return &Terminal{
		out:       os.Stdout,
		altScreen: opts.AltScreen,
		cursor:    !opts.HideCursor,
	}
}

// Init enters raw mode and starts watching for SIGWINCH.
func (t *Terminal) Init() error {
	fd := int(t.out.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("backend: not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("backend: raw mode: %w", err)
	}
	t.oldState = oldState

	if t.altScreen {
		fmt.Fprint(t.out, enterAltScreen)
	}
	if !t.cursor {
		fmt.Fprint(t.out, hideCursor)
	}
	fmt.Fprint(t.out, clearScreen)

	t.sigCh = make(chan os.Signal, 1)
	t.done = make(chan struct{})
	signal.Notify(t.sigCh, unix.SIGWINCH)
	go t.watchResize()
	return nil
}

// Shutdown restores cooked mode and the main screen. Calling it more
// than once is a no-op.
func (t *Terminal) Shutdown() error {
	if t.oldState == nil && t.sigCh == nil {
		return nil
	}
	if t.sigCh != nil {
		signal.Stop(t.sigCh)
		close(t.done)
		t.sigCh = nil
	}

	fmt.Fprint(t.out, resetAttrs)
	if !t.cursor {
		fmt.Fprint(t.out, showCursor)
	}
	if t.altScreen {
		fmt.Fprint(t.out, leaveAltScreen)
	}

	if t.oldState != nil {
		if err := term.Restore(int(t.out.Fd()), t.oldState); err != nil {
			return fmt.Errorf("backend: restore: %w", err)
		}
		t.oldState = nil
	}
	return nil
}

// Size returns the terminal dimensions via the winsize ioctl.
func (t *Terminal) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("backend: winsize: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// OnResize registers the resize callback. The callback runs on the
// signal watcher goroutine; callers serialize their own state.
func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	t.onResize = callback
	t.mu.Unlock()
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *Terminal) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case <-t.sigCh:
			w, h, err := t.Size()
			if err != nil {
				continue
			}
			t.mu.Lock()
			cb := t.onResize
			t.mu.Unlock()
			if cb != nil {
				cb(w, h)
			}
		}
	}
}
