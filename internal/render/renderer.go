// Package render turns the rotating particle field into frames: it owns
// the viewport and camera, the self-rescheduling frame loop, and the
// per-frame projection of points and connections.
package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/neural-background/internal/field"
	"github.com/iburimskiy/neural-background/internal/proximity"
	"github.com/iburimskiy/neural-background/internal/rotation"
)

// Options configures projection, connections and styling.
type Options struct {
	FOV, Near, Far    float64
	CameraDistance    float64
	ConnectDistanceSq float64
	MaxEdges          int
	PointSize         float64 // world units, attenuated by depth
	MaxPointRadius    float64 // logical pixels
	DotColor          color.NRGBA
	LineColor         color.NRGBA
	LineWidth         float32 // logical pixels
	Opacity           float64 // whole layer
}

// Renderer draws one frame per display refresh while it holds a surface.
// It is driven from a single goroutine: the host calls tick, Resize and
// Stop from its own loop.
type Renderer struct {
	opts     Options
	field    *field.Field
	rotation *rotation.Controller
	graph    *proximity.Builder
	camera   *Camera
	viewport Viewport

	frames  FrameSource
	surface Surface
	cancel  func()

	world []mgl64.Vec3
	frame Frame
	ticks int
}

// New wires a renderer to its surface and frame source and sizes the
// surface for vp. The loop does not run until Start.
func New(f *field.Field, rot *rotation.Controller, s Surface, frames FrameSource, vp Viewport, opts Options) *Renderer {
	r := &Renderer{
		opts:     opts,
		field:    f,
		rotation: rot,
		graph:    proximity.NewBuilder(opts.ConnectDistanceSq, opts.MaxEdges),
		camera:   NewCamera(opts.FOV, opts.Near, opts.Far, opts.CameraDistance, vp.Aspect()),
		viewport: vp,
		frames:   frames,
		surface:  s,
		world:    make([]mgl64.Vec3, 0, f.Len()),
	}
	r.frame.DotColor = opts.DotColor
	r.frame.LineColor = opts.LineColor
	r.frame.Opacity = opts.Opacity
	s.Resize(vp.PixelSize())
	return r
}

// Start requests the first frame. Calling it on a stopped renderer, or
// with a frame already pending, does nothing.
func (r *Renderer) Start() {
	if r.surface == nil || r.cancel != nil {
		return
	}
	r.cancel = r.frames.RequestFrame(r.tick)
}

// Stop cancels the pending frame and drops the surface, which ends the
// loop. It reports whether the renderer was live.
func (r *Renderer) Stop() bool {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	live := r.surface != nil
	r.surface = nil
	return live
}

// Alive reports whether the renderer still owns a surface.
func (r *Renderer) Alive() bool { return r.surface != nil }

// Ticks returns the number of frames drawn so far.
func (r *Renderer) Ticks() int { return r.ticks }

// Viewport returns the current viewport.
func (r *Renderer) Viewport() Viewport { return r.viewport }

// Camera returns the projection camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// Resize applies new viewport dimensions. Projection and surface size
// change together, before the next frame is drawn.
func (r *Renderer) Resize(width, height int, deviceScale float64) {
	r.viewport.Width = width
	r.viewport.Height = height
	r.viewport.DeviceScale = deviceScale
	r.camera.SetAspect(r.viewport.Aspect())
	if r.surface != nil {
		r.surface.Resize(r.viewport.PixelSize())
	}
}

func (r *Renderer) tick() {
	r.cancel = nil
	if r.surface == nil {
		return
	}
	r.cancel = r.frames.RequestFrame(r.tick)
	r.draw()
}

func (r *Renderer) draw() {
	st := r.rotation.Step()
	// points and connections share one transform so they never drift apart
	model := mgl64.HomogRotate3DX(st.CurrentX).Mul4(mgl64.HomogRotate3DY(st.CurrentY))
	r.world = r.field.Transform(r.world, model)
	edges := r.graph.Build(r.world)

	pw, ph := r.viewport.PixelSize()
	w, h := float64(pw), float64(ph)
	ratio := r.viewport.PixelRatio()

	r.frame.Dots = r.frame.Dots[:0]
	for _, p := range r.world {
		x, y, depth, ok := r.camera.Project(p, w, h)
		if !ok {
			continue
		}
		r.frame.Dots = append(r.frame.Dots, Dot{
			X:      float32(x),
			Y:      float32(y),
			Radius: float32(r.pointRadius(depth, h, ratio)),
		})
	}

	r.frame.Segments = r.frame.Segments[:0]
	for _, e := range edges {
		x0, y0, x1, y1, ok := r.camera.ProjectSegment(r.world[e.I], r.world[e.J], w, h)
		if !ok {
			continue
		}
		r.frame.Segments = append(r.frame.Segments, Segment{
			X0: float32(x0), Y0: float32(y0),
			X1: float32(x1), Y1: float32(y1),
		})
	}

	r.frame.LineWidth = r.opts.LineWidth * float32(ratio)
	r.frame.PixelRatio = ratio
	r.surface.Draw(&r.frame)
	r.ticks++
}

// pointRadius attenuates point size with depth the way a perspective
// point sprite does: size * (height/2) / depth is the diameter.
func (r *Renderer) pointRadius(depth, height, ratio float64) float64 {
	rad := r.opts.PointSize * (height / 2) / depth / 2
	return math.Max(0.5, math.Min(rad, r.opts.MaxPointRadius*ratio))
}
