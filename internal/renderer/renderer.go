package renderer

import (
	"fmt"
	"sync"

	"github.com/dshills/termpaint/internal/renderer/ansi"
	"github.com/dshills/termpaint/internal/renderer/backend"
	"github.com/dshills/termpaint/internal/renderer/compose"
	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/dirty"
	"github.com/dshills/termpaint/internal/renderer/display"
	"github.com/dshills/termpaint/internal/renderer/grid"
	"github.com/dshills/termpaint/internal/renderer/layer"
)

// Options configure a Renderer.
type Options struct {
	// TrueColor selects 24-bit SGR color output.
	TrueColor bool

	// RedrawThreshold is the changed-row ratio above which a frame
	// is flushed whole instead of diffed. Zero means the default.
	RedrawThreshold float64
}

// DefaultOptions returns the standard renderer configuration.
func DefaultOptions() Options {
	return Options{
		TrueColor:       true,
		RedrawThreshold: dirty.DefaultThreshold,
	}
}

// FrameStats reports cumulative renderer activity.
type FrameStats struct {
	Frames            uint64
	FullFlushes       uint64
	DiffFlushes       uint64
	SkippedFlushes    uint64 // frames where nothing changed
	CoalescedRequests uint64
	BytesWritten      uint64
}

// HitResult identifies what owns a screen position.
type HitResult struct {
	LayerID   string
	ElementID string
	Z         int
}

// Renderer runs the frame pipeline: draw tree to layers, layers to a
// composite, composite diffed against the terminal state and flushed
// to the backend. Frames are strictly sequential; one mutex guards
// all state.
type Renderer struct {
	mu   sync.Mutex
	opts Options

	backend backend.Backend
	layers  *layer.Manager
	comp    *compose.Compositor
	disp    *display.DisplayBuffer
	tracker *dirty.Tracker

	root          *Node
	width, height int
	owned         map[string]bool

	pending   bool
	forceFull bool
	flushed   bool

	// lastComposite is the most recently built frame, used for
	// hit-testing. shownComposite is the frame the terminal actually
	// shows, used for row damage.
	lastComposite  *grid.Buffer
	shownComposite *grid.Buffer

	stats FrameStats
}

// New creates a renderer on the given backend.
func New(b backend.Backend, opts Options) (*Renderer, error) {
	width, height, err := b.Size()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	gen := ansi.NewGenerator(ansi.Profile{TrueColor: opts.TrueColor})
	disp, err := display.New(width, height, gen)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	tracker, err := dirty.NewTracker(height, opts.RedrawThreshold)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	r := &Renderer{
		opts:    opts,
		backend: b,
		layers:  layer.NewManager(),
		comp:    compose.New(),
		disp:    disp,
		tracker: tracker,
		width:   width,
		height:  height,
		owned:   make(map[string]bool),
	}
	disp.SetRowFilter(tracker.RowDirty)
	b.OnResize(func(w, h int) {
		r.Resize(w, h)
	})
	return r, nil
}

// SetRoot replaces the draw tree and queues a render. The root node
// always renders into its own layer.
func (r *Renderer) SetRoot(root *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = root
	r.pending = true
}

// RequestRender queues a render. At most one render is ever pending:
// rapid requests coalesce into a single subsequent frame. force makes
// that frame flush the whole screen.
func (r *Renderer) RequestRender(force bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending {
		r.stats.CoalescedRequests++
	}
	r.pending = true
	if force {
		r.forceFull = true
	}
}

// Pending returns true if a render has been requested and not yet
// performed.
func (r *Renderer) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Frame renders one frame if one is pending. Returns whether a frame
// ran. On flush failure the request stays pending so the next Frame
// retries against the last confirmed terminal state.
func (r *Renderer) Frame() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.pending {
		return false, nil
	}
	if err := r.renderLocked(); err != nil {
		return true, err
	}
	return true, nil
}

// Render renders a frame unconditionally.
func (r *Renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renderLocked()
}

// Resize adapts the pipeline to a new terminal size and forces a full
// repaint on the next frame.
func (r *Renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.disp.Resize(width, height); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	if err := r.tracker.Resize(height); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	r.width = width
	r.height = height
	r.forceFull = true
	r.pending = true
	return nil
}

// Size returns the current render dimensions.
func (r *Renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// HitTest reports which layer and element own the given screen
// position in the most recently rendered frame.
func (r *Renderer) HitTest(x, y int) (HitResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastComposite == nil || !r.lastComposite.InBounds(x, y) {
		return HitResult{}, false
	}
	c := r.lastComposite.Get(x, y)
	if c.LayerID == "" {
		return HitResult{}, false
	}
	return HitResult{LayerID: c.LayerID, ElementID: c.ElementID, Z: c.Z}, true
}

// Stats returns cumulative frame statistics.
func (r *Renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// renderLocked runs one frame: layering, painting, compositing,
// diffing, flushing. Callers hold r.mu.
func (r *Renderer) renderLocked() error {
	r.syncLayers()

	composite, err := r.comp.Composite(r.layers.Sorted(), r.width, r.height)
	if err != nil {
		return fmt.Errorf("renderer: composite: %w", err)
	}
	r.lastComposite = composite

	r.markDamage(composite)

	if err := r.disp.UpdateFromComposite(composite.Clone()); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	full := !r.flushed || r.forceFull || r.tracker.ShouldFullRepaint()
	var n int
	if full {
		n, err = r.disp.Flush(r.backend)
	} else {
		n, err = r.disp.FlushDiff(r.backend)
	}
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	r.stats.Frames++
	r.stats.BytesWritten += uint64(n)
	switch {
	case full:
		r.stats.FullFlushes++
	case n == 0:
		r.stats.SkippedFlushes++
	default:
		r.stats.DiffFlushes++
	}

	r.flushed = true
	r.forceFull = false
	r.pending = false
	r.shownComposite = composite
	r.tracker.Clear()
	return nil
}

// markDamage marks the rows where the new composite differs from the
// frame the terminal shows.
func (r *Renderer) markDamage(composite *grid.Buffer) {
	prev := r.shownComposite
	if prev == nil || prev.Width() != composite.Width() || prev.Height() != composite.Height() {
		r.tracker.MarkAll()
		return
	}
	for y := 0; y < composite.Height(); y++ {
		for x := 0; x < composite.Width(); x++ {
			if !composite.Get(x, y).VisualEqual(prev.Get(x, y)) {
				r.tracker.MarkRow(y)
				break
			}
		}
	}
}

// syncLayers reconciles the layer set with the draw tree and repaints
// every context layer.
func (r *Renderer) syncLayers() {
	seen := make(map[string]bool)
	if r.root != nil {
		r.syncContext(r.root, 0, 0, seen)
	}
	for id := range r.owned {
		if !seen[id] {
			r.layers.Remove(id)
		}
	}
	r.owned = seen
}

// syncContext ensures a layer for a stacking-context node, repaints
// it, and recurses into child contexts. (parentX, parentY) is the
// node's origin in root coordinates.
func (r *Renderer) syncContext(node *Node, parentX, parentY int, seen map[string]bool) {
	abs := node.Bounds.Translate(parentX, parentY)

	l := r.layers.Get(node.ID)
	if l == nil {
		created, err := r.layers.Create(node.ID, node.Z, abs)
		if err != nil {
			// Duplicate node ids collapse onto the existing layer.
			created = r.layers.Get(node.ID)
			if created == nil {
				return
			}
		}
		l = created
	}
	seen[node.ID] = true

	r.layers.SetZ(node.ID, node.Z)
	r.layers.SetVisible(node.ID, node.Visible)
	r.layers.SetOpacity(node.ID, node.Opacity)
	l.ElementID = node.ID
	if !l.Bounds.Equals(abs) {
		if err := l.SetBounds(abs); err != nil {
			return
		}
	}

	if !node.Visible {
		return
	}

	l.Clear()
	clip := core.NewRect(0, 0, abs.Width, abs.Height)
	r.paintNode(node, l, 0, 0, clip, abs.X, abs.Y, seen)
}

// paintNode paints a node's content into the layer at offset
// (dx, dy), then its children. Context children start their own
// layers instead.
func (r *Renderer) paintNode(node *Node, l *layer.Layer, dx, dy int, clip core.Rect, absX, absY int, seen map[string]bool) {
	p := &painter{buf: l.Buffer(), dx: dx, dy: dy, clip: clip, element: node.ID}
	for _, d := range node.Content {
		d.drawTo(p)
	}

	for _, child := range node.Children {
		if child.StackingContext {
			r.syncContext(child, absX, absY, seen)
			continue
		}
		if !child.Visible {
			continue
		}
		childClip := clip.Intersection(child.Bounds.Translate(dx, dy))
		r.paintNode(child, l, dx+child.Bounds.X, dy+child.Bounds.Y, childClip, absX+child.Bounds.X, absY+child.Bounds.Y, seen)
	}
}
