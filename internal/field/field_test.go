package field_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/neural-background/internal/field"
)

// TestNew_CountAndBounds checks that every count yields exactly that many
// positions, each inside its axis bound.
func TestNew_CountAndBounds(t *testing.T) {
	b := field.Bounds{X: 250, Y: 150, Z: 100}
	for _, n := range []int{0, 1, 2, 17, 350, 1000} {
		f, err := field.New(n, b, field.NewSource(uint64(n)+1))
		require.NoError(t, err)
		require.Equal(t, n, f.Len())
		for i := 0; i < f.Len(); i++ {
			p := f.At(i)
			assert.True(t, b.Contains(p), "particle %d at %v outside %+v", i, p, b)
		}
	}
}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name  string
		count int
		b     field.Bounds
		err   error
	}{
		{"NegativeCount", -1, field.Bounds{X: 1, Y: 1, Z: 1}, field.ErrNegativeCount},
		{"NegativeBound", 3, field.Bounds{X: 1, Y: -1, Z: 1}, field.ErrBounds},
		{"NaNBound", 3, field.Bounds{X: math.NaN(), Y: 1, Z: 1}, field.ErrBounds},
		{"InfBound", 3, field.Bounds{X: 1, Y: 1, Z: math.Inf(1)}, field.ErrBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := field.New(tc.count, tc.b, nil)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

// TestNew_Anisotropic verifies that samples spread to the wider X extent
// and stay inside the narrower Z extent.
func TestNew_Anisotropic(t *testing.T) {
	b := field.Bounds{X: 250, Y: 150, Z: 100}
	f, err := field.New(2000, b, field.NewSource(42))
	require.NoError(t, err)

	var maxX, maxZ float64
	for i := 0; i < f.Len(); i++ {
		p := f.At(i)
		maxX = math.Max(maxX, math.Abs(p.X()))
		maxZ = math.Max(maxZ, math.Abs(p.Z()))
	}
	assert.Greater(t, maxX, 100.0)
	assert.LessOrEqual(t, maxZ, 50.0)
}

func TestNew_SeedReproducible(t *testing.T) {
	b := field.Bounds{X: 10, Y: 10, Z: 10}
	a, err := field.New(50, b, field.NewSource(7))
	require.NoError(t, err)
	c, err := field.New(50, b, field.NewSource(7))
	require.NoError(t, err)
	for i := 0; i < a.Len(); i++ {
		require.Equal(t, a.At(i), c.At(i))
	}
}

// TestTransform_LeavesStoredPositions confirms rotation is applied to a
// copy and never to the stored positions.
func TestTransform_LeavesStoredPositions(t *testing.T) {
	f, err := field.New(20, field.Bounds{X: 10, Y: 10, Z: 10}, field.NewSource(3))
	require.NoError(t, err)

	before := make([]mgl64.Vec3, f.Len())
	for i := range before {
		before[i] = f.At(i)
	}

	rot := mgl64.HomogRotate3DY(1.2).Mul4(mgl64.HomogRotate3DX(0.4))
	out := f.Transform(nil, rot)
	require.Len(t, out, f.Len())

	for i := range before {
		assert.Equal(t, before[i], f.At(i))
		// rigid rotation keeps distance from the origin
		assert.InDelta(t, before[i].Len(), out[i].Len(), 1e-9)
	}

	// reuse of the destination buffer
	again := f.Transform(out, mgl64.Ident4())
	require.Len(t, again, f.Len())
	for i := range before {
		assert.True(t, before[i].ApproxEqual(again[i]))
	}
}
