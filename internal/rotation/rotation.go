// Package rotation blends a constant autonomous spin with pointer-driven
// tilt through exponential smoothing.
package rotation

import (
	"errors"
	"fmt"
	"math"
)

// ErrSmoothing indicates a smoothing factor outside (0,1).
var ErrSmoothing = errors.New("rotation: smoothing factor must lie in (0,1)")

// State is the rotation in radians. X is pitch, Y is yaw.
type State struct {
	CurrentX, CurrentY float64
	TargetX, TargetY   float64
}

func (s State) finite() bool {
	for _, v := range [...]float64{s.CurrentX, s.CurrentY, s.TargetX, s.TargetY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Options configures a Controller.
type Options struct {
	Spin      float64 // yaw target increment per tick
	PitchGain float64 // targetX = pointerY * PitchGain
	YawGain   float64 // pointerX * YawGain is added to the yaw target
	Smoothing float64 // fraction of the remaining gap closed per tick
}

// Controller advances the rotation once per tick. The zero state is the
// seed, so angles start finite.
type Controller struct {
	opts     Options
	state    State
	pointerX float64
	pointerY float64
}

// New validates opts and returns a zeroed Controller.
func New(opts Options) (*Controller, error) {
	if !(opts.Smoothing > 0 && opts.Smoothing < 1) {
		return nil, fmt.Errorf("%w: %g", ErrSmoothing, opts.Smoothing)
	}
	return &Controller{opts: opts}, nil
}

// SetPointer records the normalized pointer offset from the viewport
// centre. Non-finite input is ignored.
func (c *Controller) SetPointer(x, y float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	c.pointerX, c.pointerY = x, y
}

// Pointer returns the last recorded pointer offset.
func (c *Controller) Pointer() (x, y float64) { return c.pointerX, c.pointerY }

// State returns the current rotation.
func (c *Controller) State() State { return c.state }

// Step advances one tick and returns the new state. A step that would
// produce a non-finite angle is dropped and the previous state kept.
func (c *Controller) Step() State {
	next := c.state
	s := c.opts.Smoothing

	next.TargetY += c.opts.Spin
	next.TargetX = c.pointerY * c.opts.PitchGain

	next.CurrentY += (next.TargetY + c.pointerX*c.opts.YawGain - next.CurrentY) * s
	next.CurrentX += (next.TargetX - next.CurrentX) * s

	if next.finite() {
		c.state = next
	}
	return c.state
}
