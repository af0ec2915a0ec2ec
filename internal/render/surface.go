package render

import "image/color"

// Dot is a projected particle in surface pixels.
type Dot struct {
	X, Y, Radius float32
}

// Segment is a projected connection in surface pixels.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// Frame is everything drawn in one tick. Surfaces must not retain the
// slices after Draw returns.
type Frame struct {
	Dots       []Dot
	Segments   []Segment
	DotColor   color.NRGBA
	LineColor  color.NRGBA
	LineWidth  float32
	PixelRatio float64
	// Opacity applies to the whole layer when the host composites it.
	Opacity float64
}

// Surface is the drawing side owned by a Renderer for its mounted
// lifetime.
type Surface interface {
	// Resize sets the backing size in device pixels.
	Resize(width, height int)
	// Draw replaces the surface contents with f in a single pass.
	Draw(f *Frame)
	// Release frees every drawing-side buffer. The surface is unusable
	// afterwards.
	Release()
}

// FrameSource delivers display-refresh notifications. RequestFrame
// schedules fn for the next refresh only; the returned cancel drops it if
// it has not run yet.
type FrameSource interface {
	RequestFrame(fn func()) (cancel func())
}
