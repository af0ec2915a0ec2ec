// Package proximity builds the per-frame connection graph of a particle
// field.
//
// The scan is a plain pairwise loop (i ascending, j > i). Particle counts
// are in the low hundreds and the graph is rebuilt every frame, so a
// spatial index would cost more to maintain than it saves. Emission stops
// as soon as the edge cap is reached, which bounds the work spent on
// dense clusters.
package proximity

import "github.com/go-gl/mathgl/mgl64"

// Edge connects particles I and J, with I < J.
type Edge struct {
	I, J int
}

// Build appends to dst[:0] every pair of positions whose squared distance
// is at most threshold, in emission order, and stops once limit edges
// have been produced. A non-positive threshold or limit yields no edges.
func Build(dst []Edge, positions []mgl64.Vec3, threshold float64, limit int) []Edge {
	dst = dst[:0]
	if threshold <= 0 || limit <= 0 {
		return dst
	}

	n := len(positions)
	for i := 0; i < n; i++ {
		a := positions[i]
		for j := i + 1; j < n; j++ {
			d := a.Sub(positions[j])
			if d.Dot(d) <= threshold {
				dst = append(dst, Edge{I: i, J: j})
				if len(dst) == limit {
					return dst
				}
			}
		}
	}
	return dst
}

// Builder owns a reusable edge buffer so steady-state frames do not
// allocate.
type Builder struct {
	Threshold float64 // squared distance, inclusive
	Limit     int

	edges []Edge
}

// NewBuilder returns a Builder with its buffer sized for limit edges.
func NewBuilder(threshold float64, limit int) *Builder {
	c := limit
	if c < 0 {
		c = 0
	}
	return &Builder{Threshold: threshold, Limit: limit, edges: make([]Edge, 0, c)}
}

// Build rebuilds the graph for positions. The returned slice is reused by
// the next call.
func (b *Builder) Build(positions []mgl64.Vec3) []Edge {
	b.edges = Build(b.edges, positions, b.Threshold, b.Limit)
	return b.edges
}
