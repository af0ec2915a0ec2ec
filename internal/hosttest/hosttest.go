// Package hosttest provides an in-memory host for driving a background
// layer deterministically: frames advance only on Tick, pointer and
// resize notifications are injected by hand, and every listener and
// surface is counted.
package hosttest

import (
	"fmt"

	"github.com/iburimskiy/neural-background/internal/background"
	"github.com/iburimskiy/neural-background/internal/render"
)

type frameRequest struct {
	id int
	fn func()
}

// Host implements background.Host.
type Host struct {
	width, height int
	scale         float64

	// FailSurface, when set, is returned by NewSurface.
	FailSurface error

	nextID   int
	pointer  map[int]func(x, y float64)
	resize   map[int]func(width, height int, deviceScale float64)
	pending  []frameRequest
	canceled map[int]bool
	removals int

	attached *Surface
	surfaces []*Surface
}

var _ background.Host = (*Host)(nil)

// New returns a host with a width x height viewport at deviceScale.
func New(width, height int, deviceScale float64) *Host {
	return &Host{
		width:    width,
		height:   height,
		scale:    deviceScale,
		pointer:  make(map[int]func(x, y float64)),
		resize:   make(map[int]func(int, int, float64)),
		canceled: make(map[int]bool),
	}
}

func (h *Host) id() int {
	h.nextID++
	return h.nextID
}

// Viewport returns the current logical size and device scale.
func (h *Host) Viewport() (int, int, float64) { return h.width, h.height, h.scale }

// AddPointerListener registers fn for pointer moves.
func (h *Host) AddPointerListener(fn func(x, y float64)) func() {
	id := h.id()
	h.pointer[id] = fn
	return func() {
		if _, ok := h.pointer[id]; ok {
			delete(h.pointer, id)
			h.removals++
		}
	}
}

// AddResizeListener registers fn for viewport changes.
func (h *Host) AddResizeListener(fn func(width, height int, deviceScale float64)) func() {
	id := h.id()
	h.resize[id] = fn
	return func() {
		if _, ok := h.resize[id]; ok {
			delete(h.resize, id)
			h.removals++
		}
	}
}

// RequestFrame queues fn for the next Tick.
func (h *Host) RequestFrame(fn func()) func() {
	id := h.id()
	h.pending = append(h.pending, frameRequest{id: id, fn: fn})
	return func() { h.canceled[id] = true }
}

// NewSurface returns a recording surface, or FailSurface.
func (h *Host) NewSurface(width, height int) (render.Surface, error) {
	if h.FailSurface != nil {
		return nil, h.FailSurface
	}
	s := &Surface{Width: width, Height: height}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

// Attach places s at the mount point. Only one surface fits.
func (h *Host) Attach(s render.Surface) error {
	if h.attached != nil {
		return fmt.Errorf("hosttest: anchor occupied: %w", background.ErrMounted)
	}
	h.attached = s.(*Surface)
	return nil
}

// Detach removes s from the mount point.
func (h *Host) Detach(s render.Surface) {
	if h.attached == s {
		h.attached = nil
	}
}

// Tick runs the frame callbacks queued before this call and returns how
// many ran. Callbacks queued while ticking wait for the next Tick.
func (h *Host) Tick() int {
	batch := h.pending
	h.pending = nil
	ran := 0
	for _, req := range batch {
		if h.canceled[req.id] {
			delete(h.canceled, req.id)
			continue
		}
		req.fn()
		ran++
	}
	return ran
}

// MovePointer notifies every pointer listener.
func (h *Host) MovePointer(x, y float64) {
	for _, fn := range h.pointer {
		fn(x, y)
	}
}

// Resize changes the viewport and notifies every resize listener.
func (h *Host) Resize(width, height int, deviceScale float64) {
	h.width, h.height, h.scale = width, height, deviceScale
	for _, fn := range h.resize {
		fn(width, height, deviceScale)
	}
}

// PointerListeners returns the number of registered pointer listeners.
func (h *Host) PointerListeners() int { return len(h.pointer) }

// ResizeListeners returns the number of registered resize listeners.
func (h *Host) ResizeListeners() int { return len(h.resize) }

// Removals counts listener removals that took effect.
func (h *Host) Removals() int { return h.removals }

// PendingFrames returns the number of live frame requests.
func (h *Host) PendingFrames() int {
	n := 0
	for _, req := range h.pending {
		if !h.canceled[req.id] {
			n++
		}
	}
	return n
}

// Attached returns the surface at the mount point, if any.
func (h *Host) Attached() *Surface { return h.attached }

// Surfaces returns every surface created so far.
func (h *Host) Surfaces() []*Surface { return h.surfaces }

// Surface records what a renderer does with it.
type Surface struct {
	Width, Height int
	Resizes       int
	Draws         int
	Released      bool
	// DrawsAfterRelease counts draws on a released surface.
	DrawsAfterRelease int
	// DrawSizes is the backing size at each draw.
	DrawSizes [][2]int
	Last      render.Frame
}

// Resize records the new backing size.
func (s *Surface) Resize(width, height int) {
	s.Width, s.Height = width, height
	s.Resizes++
}

// Draw copies f.
func (s *Surface) Draw(f *render.Frame) {
	if s.Released {
		s.DrawsAfterRelease++
	}
	s.Draws++
	s.DrawSizes = append(s.DrawSizes, [2]int{s.Width, s.Height})
	s.Last = *f
	s.Last.Dots = append([]render.Dot(nil), f.Dots...)
	s.Last.Segments = append([]render.Segment(nil), f.Segments...)
}

// Release marks the surface released.
func (s *Surface) Release() { s.Released = true }
