// Package game hosts the background layer in an ebiten window. The window
// plays the page: it supplies the viewport, document-wide pointer and
// resize notifications, one frame notification per refresh and the mount
// point the layer's surface is attached to.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/neural-background/internal/background"
	"github.com/iburimskiy/neural-background/internal/config"
	"github.com/iburimskiy/neural-background/internal/render"
)

var pageColor = color.RGBA{R: 9, G: 9, B: 11, A: 255}

type frameRequest struct {
	id int
	fn func()
}

type Game struct {
	cfg    config.Config
	logger *log.Logger

	// document
	width, height int
	scale         float64
	resizePending bool
	cursorX       int
	cursorY       int
	pointer       map[int]func(x, y float64)
	resize        map[int]func(width, height int, deviceScale float64)

	// frame source
	nextID   int
	frames   []frameRequest
	canceled map[int]bool

	// mount point
	layer     *statsTap
	bg        *background.Background
	mountErr  error
	started   bool
	mountedAt time.Time

	hud     *hud
	showHUD bool
	lastErr error
}

var _ background.Host = (*Game)(nil)

func NewGame(cfg config.Config, logger *log.Logger, showHUD bool) *Game {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Game{
		cfg:      cfg,
		logger:   logger,
		width:    config.WindowWidth,
		height:   config.WindowHeight,
		scale:    1,
		cursorX:  -1,
		cursorY:  -1,
		pointer:  make(map[int]func(x, y float64)),
		resize:   make(map[int]func(int, int, float64)),
		canceled: make(map[int]bool),
		hud:      newHUD(logger),
		showHUD:  showHUD,
	}
}

// Mount puts the background layer on the page. Failure leaves the page
// running without it.
func (g *Game) Mount() {
	if g.bg != nil {
		return
	}
	bg, err := background.Mount(g, g.cfg, background.Options{Logger: g.logger})
	if err != nil {
		g.mountErr = err
		g.logger.Printf("background disabled: %v", err)
		return
	}
	g.bg = bg
	g.mountErr = nil
	g.mountedAt = time.Now()
}

// Unmount removes the background layer, if any.
func (g *Game) Unmount() {
	if g.bg == nil {
		return
	}
	g.bg.Unmount()
	g.bg = nil
}

func (g *Game) Update() error {
	if !g.started {
		g.started = true
		g.Mount()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Unmount()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Unmount()
		g.Mount()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.exportSnapshot(); err != nil {
			g.lastErr = err
		}
	}

	g.dispatchResize()
	g.dispatchPointer()
	g.runFrames()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(pageColor)
	if g.layer != nil {
		g.layer.Source.composite(screen)
	}

	status := ""
	if g.mountErr != nil {
		status = "Background unavailable: " + g.mountErr.Error()
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}

	if g.showHUD {
		var uptime time.Duration
		if g.bg != nil {
			uptime = time.Since(g.mountedAt)
		}
		g.hud.draw(screen, g.layer, uptime, g.pixelRatio())
	}
}

// Layout tracks the window size. Listeners hear about a change on the
// next Update, before any frame is drawn at the new size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.width || outsideHeight != g.height || scale != g.scale {
		g.width, g.height, g.scale = outsideWidth, outsideHeight, scale
		g.resizePending = true
	}
	return g.viewport().PixelSize()
}

func (g *Game) viewport() render.Viewport {
	return render.Viewport{Width: g.width, Height: g.height, DeviceScale: g.scale, MaxPixelRatio: g.cfg.MaxPixelRatio}
}

func (g *Game) pixelRatio() float64 { return g.viewport().PixelRatio() }

func (g *Game) dispatchResize() {
	if !g.resizePending {
		return
	}
	g.resizePending = false
	for _, fn := range g.resize {
		fn(g.width, g.height, g.scale)
	}
}

// dispatchPointer reports cursor moves in logical pixels.
func (g *Game) dispatchPointer() {
	x, y := ebiten.CursorPosition()
	if x == g.cursorX && y == g.cursorY {
		return
	}
	g.cursorX, g.cursorY = x, y
	r := g.pixelRatio()
	for _, fn := range g.pointer {
		fn(float64(x)/r, float64(y)/r)
	}
}

// runFrames runs the frame callbacks requested before this refresh.
func (g *Game) runFrames() {
	batch := g.frames
	g.frames = nil
	for _, req := range batch {
		if g.canceled[req.id] {
			delete(g.canceled, req.id)
			continue
		}
		req.fn()
	}
}

func (g *Game) id() int {
	g.nextID++
	return g.nextID
}

func (g *Game) Viewport() (int, int, float64) { return g.width, g.height, g.scale }

func (g *Game) AddPointerListener(fn func(x, y float64)) func() {
	id := g.id()
	g.pointer[id] = fn
	return func() { delete(g.pointer, id) }
}

func (g *Game) AddResizeListener(fn func(width, height int, deviceScale float64)) func() {
	id := g.id()
	g.resize[id] = fn
	return func() { delete(g.resize, id) }
}

func (g *Game) RequestFrame(fn func()) func() {
	id := g.id()
	g.frames = append(g.frames, frameRequest{id: id, fn: fn})
	return func() { g.canceled[id] = true }
}

func (g *Game) NewSurface(width, height int) (render.Surface, error) {
	s, err := newSurface(width, height)
	if err != nil {
		return nil, err
	}
	return newStatsTap(s, config.StatsRingSize), nil
}

func (g *Game) Attach(s render.Surface) error {
	if g.layer != nil {
		return fmt.Errorf("game: %w", background.ErrMounted)
	}
	tap, ok := s.(*statsTap)
	if !ok {
		return errors.New("game: surface was not created by this window")
	}
	g.layer = tap
	return nil
}

func (g *Game) Detach(s render.Surface) {
	if g.layer != nil && render.Surface(g.layer) == s {
		g.layer = nil
	}
}
