package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Field
	ParticleCount = 350
	BoundsX       = 250
	BoundsY       = 150
	BoundsZ       = 100

	// Connections
	ConnectDistanceSq = 900
	MaxEdges          = 600

	// Motion
	SpinStep           = 0.0008
	PointerSensitivity = 0.0005
	PitchGain          = 0.5
	YawGain            = 10
	SmoothingFactor    = 0.05

	// Camera
	FieldOfView    = 75
	NearPlane      = 0.1
	FarPlane       = 1000
	CameraDistance = 40

	MaxPixelRatio  = 2
	PointSize      = 1.0
	MaxPointRadius = 6

	PointOpacity = 0.6
	LineOpacity  = 0.1
	LayerOpacity = 0.6

	// Stats ring for the HUD
	StatsRingSize = 240
)

// Emerald is the base color of points and connections.
var Emerald = color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("config: invalid configuration")

// Config carries every tunable of the background layer.
type Config struct {
	ParticleCount      int
	BoundsX, BoundsY   float64
	BoundsZ            float64
	ConnectDistanceSq  float64
	MaxEdges           int
	SpinStep           float64
	PointerSensitivity float64
	PitchGain, YawGain float64
	Smoothing          float64
	FieldOfView        float64 // degrees
	Near, Far          float64
	CameraDistance     float64
	MaxPixelRatio      float64
	PointSize          float64
	MaxPointRadius     float64
	Color              color.NRGBA
	PointOpacity       float64
	LineOpacity        float64
	LayerOpacity       float64
	Seed               uint64 // 0 leaves the field unseeded
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ParticleCount:      ParticleCount,
		BoundsX:            BoundsX,
		BoundsY:            BoundsY,
		BoundsZ:            BoundsZ,
		ConnectDistanceSq:  ConnectDistanceSq,
		MaxEdges:           MaxEdges,
		SpinStep:           SpinStep,
		PointerSensitivity: PointerSensitivity,
		PitchGain:          PitchGain,
		YawGain:            YawGain,
		Smoothing:          SmoothingFactor,
		FieldOfView:        FieldOfView,
		Near:               NearPlane,
		Far:                FarPlane,
		CameraDistance:     CameraDistance,
		MaxPixelRatio:      MaxPixelRatio,
		PointSize:          PointSize,
		MaxPointRadius:     MaxPointRadius,
		Color:              Emerald,
		PointOpacity:       PointOpacity,
		LineOpacity:        LineOpacity,
		LayerOpacity:       LayerOpacity,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.ParticleCount < 0 {
		bad("particle count %d is negative", c.ParticleCount)
	}
	if c.MaxEdges < 0 {
		bad("edge cap %d is negative", c.MaxEdges)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"bounds x", c.BoundsX},
		{"bounds y", c.BoundsY},
		{"bounds z", c.BoundsZ},
		{"connect distance", c.ConnectDistanceSq},
		{"spin step", c.SpinStep},
		{"pointer sensitivity", c.PointerSensitivity},
		{"pitch gain", c.PitchGain},
		{"yaw gain", c.YawGain},
		{"camera distance", c.CameraDistance},
		{"point size", c.PointSize},
		{"max point radius", c.MaxPointRadius},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			bad("%s is not finite", f.name)
		}
	}
	if c.BoundsX < 0 || c.BoundsY < 0 || c.BoundsZ < 0 {
		bad("bounds (%g, %g, %g) must not be negative", c.BoundsX, c.BoundsY, c.BoundsZ)
	}
	if !(c.Smoothing > 0 && c.Smoothing < 1) {
		bad("smoothing %g outside (0,1)", c.Smoothing)
	}
	if !(c.FieldOfView > 0 && c.FieldOfView < 180) {
		bad("field of view %g outside (0,180)", c.FieldOfView)
	}
	if !(c.Near > 0 && c.Near < c.Far) {
		bad("near %g / far %g planes out of order", c.Near, c.Far)
	}
	if !(c.MaxPixelRatio >= 1) {
		bad("pixel ratio cap %g below 1", c.MaxPixelRatio)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"point opacity", c.PointOpacity},
		{"line opacity", c.LineOpacity},
		{"layer opacity", c.LayerOpacity},
	} {
		if !(f.v >= 0 && f.v <= 1) {
			bad("%s %g outside [0,1]", f.name, f.v)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
