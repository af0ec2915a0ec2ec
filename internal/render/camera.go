package render

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	FOV      float64 // vertical, degrees
	Near     float64
	Far      float64
	Distance float64

	aspect   float64
	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4
}

// NewCamera returns a camera with its projection built for aspect.
func NewCamera(fov, near, far, distance, aspect float64) *Camera {
	c := &Camera{FOV: fov, Near: near, Far: far, Distance: distance}
	c.view = mgl64.Translate3D(0, 0, -distance)
	c.SetAspect(aspect)
	return c
}

// SetAspect rebuilds the projection matrix.
func (c *Camera) SetAspect(aspect float64) {
	c.aspect = aspect
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
}

// Aspect returns the aspect ratio the projection was built for.
func (c *Camera) Aspect() float64 { return c.aspect }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl64.Mat4 { return c.proj }

// depth returns the distance in front of the camera along its axis.
func (c *Camera) depth(p mgl64.Vec3) float64 {
	return c.Distance - p.Z()
}

// Project maps a world position to surface pixels. ok is false when the
// point lies outside the near/far range or off the frustum sides.
func (c *Camera) Project(p mgl64.Vec3, width, height float64) (x, y, depth float64, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip.X()/w, clip.Y()/w, clip.Z()/w
	if nz < -1 || nz > 1 || nx < -1 || nx > 1 || ny < -1 || ny > 1 {
		return 0, 0, 0, false
	}
	x, y = toPixels(nx, ny, width, height)
	return x, y, c.depth(p), true
}

// ProjectSegment maps a world segment to surface pixels, clipping it
// against the near plane. ok is false when nothing is in front of the
// camera.
func (c *Camera) ProjectSegment(a, b mgl64.Vec3, width, height float64) (x0, y0, x1, y1 float64, ok bool) {
	da, db := c.depth(a), c.depth(b)
	if da < c.Near && db < c.Near {
		return 0, 0, 0, 0, false
	}
	if da < c.Near {
		a = b.Add(a.Sub(b).Mul((db - c.Near) / (db - da)))
	} else if db < c.Near {
		b = a.Add(b.Sub(a).Mul((da - c.Near) / (da - db)))
	}

	ca := c.viewProj.Mul4x1(a.Vec4(1))
	cb := c.viewProj.Mul4x1(b.Vec4(1))
	x0, y0 = toPixels(ca.X()/ca.W(), ca.Y()/ca.W(), width, height)
	x1, y1 = toPixels(cb.X()/cb.W(), cb.Y()/cb.W(), width, height)
	return x0, y0, x1, y1, true
}

func toPixels(nx, ny, width, height float64) (float64, float64) {
	return (nx + 1) / 2 * width, (1 - ny) / 2 * height
}
