package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/neural-background/internal/render"
)

// surface is an offscreen image the layer draws into; the game composites
// it over the page every Draw.
type surface struct {
	img     *ebiten.Image
	opacity float64
}

func newSurface(width, height int) (*surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("game: invalid surface size %dx%d", width, height)
	}
	return &surface{img: ebiten.NewImage(width, height), opacity: 1}, nil
}

func (s *surface) Resize(width, height int) {
	if s.img == nil || width <= 0 || height <= 0 {
		return
	}
	if b := s.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(width, height)
}

func (s *surface) Draw(f *render.Frame) {
	if s.img == nil {
		return
	}
	s.img.Clear()
	for _, seg := range f.Segments {
		vector.StrokeLine(s.img, seg.X0, seg.Y0, seg.X1, seg.Y1, f.LineWidth, f.LineColor, true)
	}
	for _, d := range f.Dots {
		vector.DrawFilledCircle(s.img, d.X, d.Y, d.Radius, f.DotColor, true)
	}
	s.opacity = clamp01(f.Opacity)
}

func (s *surface) Release() {
	if s.img == nil {
		return
	}
	s.img.Deallocate()
	s.img = nil
}

func (s *surface) composite(screen *ebiten.Image) {
	if s.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(s.opacity))
	screen.DrawImage(s.img, op)
}
