// Package background mounts the animated particle layer onto a host and
// tears it down again.
//
// Mount acquires the layer's resources in order and registers a release
// step for each. A failing Mount runs the release steps it has collected
// before returning, and Unmount runs all of them exactly once, so repeated
// mount/unmount cycles leave no listeners, frame requests or surfaces
// behind.
package background

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"sync"

	"github.com/iburimskiy/neural-background/internal/config"
	"github.com/iburimskiy/neural-background/internal/field"
	"github.com/iburimskiy/neural-background/internal/input"
	"github.com/iburimskiy/neural-background/internal/render"
	"github.com/iburimskiy/neural-background/internal/rotation"
)

// Host is everything a page must provide to carry the layer.
type Host interface {
	input.Document
	render.FrameSource
	// NewSurface creates a drawing surface of width x height device pixels.
	NewSurface(width, height int) (render.Surface, error)
	// Attach places s at the mount point.
	Attach(s render.Surface) error
	// Detach removes s from the mount point.
	Detach(s render.Surface)
}

// Options carries ambient dependencies.
type Options struct {
	Logger *log.Logger
}

// Background is a mounted layer.
type Background struct {
	host   Host
	cfg    config.Config
	logger *log.Logger

	field    *field.Field
	rotation *rotation.Controller
	renderer *render.Renderer
	bridge   *input.Bridge

	release []func()
	once    sync.Once
}

// Mount builds the layer on host and starts its frame loop. When the host
// cannot supply a surface the error wraps ErrNoContext; callers should log
// it and carry on without the layer.
func Mount(host Host, cfg config.Config, opts Options) (_ *Background, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Background{host: host, cfg: cfg, logger: opts.Logger}
	if b.logger == nil {
		b.logger = log.New(io.Discard, "", 0)
	}
	defer func() {
		if err != nil {
			b.teardown()
		}
	}()

	b.field, err = field.New(cfg.ParticleCount, field.Bounds{X: cfg.BoundsX, Y: cfg.BoundsY, Z: cfg.BoundsZ}, field.NewSource(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("background: create field: %w", err)
	}

	b.rotation, err = rotation.New(rotation.Options{
		Spin:      cfg.SpinStep,
		PitchGain: cfg.PitchGain,
		YawGain:   cfg.YawGain,
		Smoothing: cfg.Smoothing,
	})
	if err != nil {
		return nil, fmt.Errorf("background: create rotation: %w", err)
	}

	width, height, scale := host.Viewport()
	vp := render.Viewport{Width: width, Height: height, DeviceScale: scale, MaxPixelRatio: cfg.MaxPixelRatio}
	pw, ph := vp.PixelSize()

	surface, err := host.NewSurface(pw, ph)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContext, err)
	}
	if surface == nil {
		return nil, ErrNoContext
	}
	b.push(surface.Release)

	if err = host.Attach(surface); err != nil {
		return nil, fmt.Errorf("background: attach surface: %w", err)
	}
	b.push(func() { host.Detach(surface) })

	b.renderer = render.New(b.field, b.rotation, surface, host, vp, render.Options{
		FOV:               cfg.FieldOfView,
		Near:              cfg.Near,
		Far:               cfg.Far,
		CameraDistance:    cfg.CameraDistance,
		ConnectDistanceSq: cfg.ConnectDistanceSq,
		MaxEdges:          cfg.MaxEdges,
		PointSize:         cfg.PointSize,
		MaxPointRadius:    cfg.MaxPointRadius,
		DotColor:          withOpacity(cfg.Color, cfg.PointOpacity),
		LineColor:         withOpacity(cfg.Color, cfg.LineOpacity),
		LineWidth:         1,
		Opacity:           cfg.LayerOpacity,
	})
	b.push(func() { b.renderer.Stop() })

	b.bridge = input.Attach(host, b.rotation, b.renderer, cfg.PointerSensitivity)
	b.push(b.bridge.Detach)

	b.renderer.Start()
	b.logger.Printf("background mounted: %d particles, surface %dx%d", b.field.Len(), pw, ph)
	return b, nil
}

func (b *Background) push(fn func()) {
	b.release = append(b.release, fn)
}

func (b *Background) teardown() {
	for i := len(b.release) - 1; i >= 0; i-- {
		b.release[i]()
	}
	b.release = nil
}

// Unmount stops the loop, removes the listeners, detaches the surface from
// the mount point and releases it. Later calls do nothing.
func (b *Background) Unmount() {
	b.once.Do(func() {
		ticks := b.renderer.Ticks()
		b.teardown()
		b.logger.Printf("background unmounted after %d frames", ticks)
	})
}

// Renderer returns the layer's renderer.
func (b *Background) Renderer() *render.Renderer { return b.renderer }

// Field returns the layer's particle field.
func (b *Background) Field() *field.Field { return b.field }

// Rotation returns the layer's rotation controller.
func (b *Background) Rotation() *rotation.Controller { return b.rotation }

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(opacity*255 + 0.5)
	return c
}
