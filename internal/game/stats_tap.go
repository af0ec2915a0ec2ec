package game

import "github.com/iburimskiy/neural-background/internal/render"

type frameSample struct {
	dots     int
	segments int
}

// statsTap wraps the layer surface and records the size of the last N
// frames into a ring buffer so the HUD can show what is being drawn.
type statsTap struct {
	Source    *surface
	buffer    []frameSample
	nextIndex int
	filled    int
	frames    int
}

func newStatsTap(src *surface, ringSize int) *statsTap {
	return &statsTap{
		Source: src,
		buffer: make([]frameSample, ringSize),
	}
}

func (t *statsTap) Resize(width, height int) { t.Source.Resize(width, height) }

func (t *statsTap) Draw(f *render.Frame) {
	t.Source.Draw(f)
	t.buffer[t.nextIndex] = frameSample{dots: len(f.Dots), segments: len(f.Segments)}
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.filled < len(t.buffer) {
		t.filled++
	}
	t.frames++
}

func (t *statsTap) Release() { t.Source.Release() }

// snapshot returns up to the last n samples, most recent last.
func (t *statsTap) snapshot(n int) []frameSample {
	if n > t.filled {
		n = t.filled
	}
	out := make([]frameSample, 0, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
