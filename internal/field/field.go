// Package field holds the particle cloud. Positions are sampled once and
// never change; motion is applied by transforming copies each frame.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNegativeCount indicates a particle count below zero.
	ErrNegativeCount = errors.New("field: particle count must not be negative")
	// ErrBounds indicates a negative or non-finite axis bound.
	ErrBounds = errors.New("field: bounds must be finite and not negative")
)

// Bounds is the full extent of the sampling volume per axis. Each
// coordinate is drawn from [-bound/2, bound/2].
type Bounds struct {
	X, Y, Z float64
}

func (b Bounds) valid() bool {
	for _, v := range [...]float64{b.X, b.Y, b.Z} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside the sampling volume.
func (b Bounds) Contains(p mgl64.Vec3) bool {
	return math.Abs(p.X()) <= b.X/2 && math.Abs(p.Y()) <= b.Y/2 && math.Abs(p.Z()) <= b.Z/2
}

// Field is a fixed set of particle positions.
type Field struct {
	bounds    Bounds
	positions []mgl64.Vec3
}

// NewSource returns a random source for New. A zero seed yields an
// unseeded source, so every field looks different.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New samples count positions uniformly inside b. A nil rng is replaced
// by an unseeded source.
func New(count int, b Bounds, rng *rand.Rand) (*Field, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	if !b.valid() {
		return nil, fmt.Errorf("%w: %+v", ErrBounds, b)
	}
	if rng == nil {
		rng = NewSource(0)
	}

	positions := make([]mgl64.Vec3, count)
	for i := range positions {
		positions[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * b.X,
			(rng.Float64() - 0.5) * b.Y,
			(rng.Float64() - 0.5) * b.Z,
		}
	}
	return &Field{bounds: b, positions: positions}, nil
}

// Len returns the particle count.
func (f *Field) Len() int { return len(f.positions) }

// At returns the stored position of particle i.
func (f *Field) At(i int) mgl64.Vec3 { return f.positions[i] }

// Bounds returns the sampling volume the field was created with.
func (f *Field) Bounds() Bounds { return f.bounds }

// Transform writes m applied to every position into dst, growing it as
// needed, and returns the result. Stored positions are left untouched.
func (f *Field) Transform(dst []mgl64.Vec3, m mgl64.Mat4) []mgl64.Vec3 {
	dst = dst[:0]
	for _, p := range f.positions {
		dst = append(dst, mgl64.TransformCoordinate(p, m))
	}
	return dst
}
