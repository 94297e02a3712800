package layer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/termpaint/internal/renderer/core"
	"github.com/dshills/termpaint/internal/renderer/grid"
)

// ErrDuplicateLayer is returned when creating a layer whose id is
// already in use.
var ErrDuplicateLayer = errors.New("duplicate layer id")

// Manager owns the set of layers and their stacking order.
type Manager struct {
	layers    map[string]*Layer
	sorted    []*Layer
	needsSort bool
	nextSeq   uint64
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{
		layers: make(map[string]*Layer),
	}
}

// Create allocates a new layer with a fresh transparent buffer sized
// to bounds. Returns ErrDuplicateLayer if the id is taken.
func (m *Manager) Create(id string, z int, bounds core.Rect) (*Layer, error) {
	if _, exists := m.layers[id]; exists {
		return nil, fmt.Errorf("layer %q: %w", id, ErrDuplicateLayer)
	}
	buf, err := grid.New(bounds.Width, bounds.Height)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", id, err)
	}
	m.nextSeq++
	l := &Layer{
		ID:      id,
		Z:       z,
		Seq:     m.nextSeq,
		Visible: true,
		Opacity: 1.0,
		Bounds:  bounds,
		buf:     buf,
	}
	m.layers[id] = l
	m.needsSort = true
	return l, nil
}

// Remove deletes a layer. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	if _, exists := m.layers[id]; !exists {
		return
	}
	delete(m.layers, id)
	m.needsSort = true
}

// Get returns the layer with the given id, or nil.
func (m *Manager) Get(id string) *Layer {
	return m.layers[id]
}

// Len returns the number of layers.
func (m *Manager) Len() int {
	return len(m.layers)
}

// SetZ changes a layer's stacking position. Unknown ids are ignored.
func (m *Manager) SetZ(id string, z int) {
	l, exists := m.layers[id]
	if !exists || l.Z == z {
		return
	}
	l.Z = z
	m.needsSort = true
}

// SetVisible toggles a layer's visibility. Unknown ids are ignored.
func (m *Manager) SetVisible(id string, visible bool) {
	if l, exists := m.layers[id]; exists {
		l.Visible = visible
	}
}

// SetOpacity sets a layer's opacity. Unknown ids are ignored.
func (m *Manager) SetOpacity(id string, opacity float64) {
	if l, exists := m.layers[id]; exists {
		l.Opacity = opacity
	}
}

// BringToFront moves a layer above every other layer.
func (m *Manager) BringToFront(id string) {
	l, exists := m.layers[id]
	if !exists {
		return
	}
	maxZ := l.Z
	for _, other := range m.layers {
		if other != l && other.Z > maxZ {
			maxZ = other.Z
		}
	}
	l.Z = maxZ + 1
	m.needsSort = true
}

// SendToBack moves a layer below every other layer.
func (m *Manager) SendToBack(id string) {
	l, exists := m.layers[id]
	if !exists {
		return
	}
	minZ := l.Z
	for _, other := range m.layers {
		if other != l && other.Z < minZ {
			minZ = other.Z
		}
	}
	l.Z = minZ - 1
	m.needsSort = true
}

// Sorted returns all layers ascending by (z, seq). The slice is owned
// by the manager and valid until the next ordering mutation.
func (m *Manager) Sorted() []*Layer {
	if m.needsSort || m.sorted == nil {
		m.sorted = m.sorted[:0]
		for _, l := range m.layers {
			m.sorted = append(m.sorted, l)
		}
		sort.Slice(m.sorted, func(i, j int) bool {
			if m.sorted[i].Z != m.sorted[j].Z {
				return m.sorted[i].Z < m.sorted[j].Z
			}
			return m.sorted[i].Seq < m.sorted[j].Seq
		})
		m.needsSort = false
	}
	return m.sorted
}
