package render

import "math"

// Viewport describes the mount area in logical pixels plus the display
// density, capped to bound fill cost on dense screens.
type Viewport struct {
	Width, Height int
	DeviceScale   float64
	MaxPixelRatio float64
}

// PixelRatio returns the device scale clamped to [1, MaxPixelRatio].
func (v Viewport) PixelRatio() float64 {
	r := v.DeviceScale
	if !(r >= 1) {
		r = 1
	}
	if v.MaxPixelRatio >= 1 && r > v.MaxPixelRatio {
		r = v.MaxPixelRatio
	}
	return r
}

// PixelSize returns the backing size in device pixels, at least 1x1.
func (v Viewport) PixelSize() (int, int) {
	r := v.PixelRatio()
	w := int(math.Round(float64(v.Width) * r))
	h := int(math.Round(float64(v.Height) * r))
	return max(w, 1), max(h, 1)
}

// Aspect returns width over height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}
