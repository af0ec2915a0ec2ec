package game

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/neural-background/internal/config"
)

const hudFontSize = 13

var hudColor = color.RGBA{R: 160, G: 230, B: 200, A: 220}

type hud struct {
	source *text.GoTextFaceSource
}

// newHUD loads the overlay font. Without it the HUD falls back to the
// debug printer.
func newHUD(logger *log.Logger) *hud {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		logger.Printf("hud font unavailable: %v", err)
		return &hud{}
	}
	return &hud{source: src}
}

func (h *hud) draw(screen *ebiten.Image, layer *statsTap, uptime time.Duration, ratio float64) {
	line := "no layer mounted  |  R remount  S snapshot  H hide  Q quit"
	if layer != nil {
		recent := layer.snapshot(config.StatsRingSize)
		last := frameSample{}
		if len(recent) > 0 {
			last = recent[len(recent)-1]
		}
		line = fmt.Sprintf("frames %d  dots %d  edges %d (avg %.0f)  up %s  |  R remount  S snapshot  H hide  Q quit",
			layer.frames, last.dots, last.segments, averageSegments(recent), formatDuration(uptime))
	}

	b := screen.Bounds()
	x := 12 * ratio
	y := float64(b.Dy()) - 28*ratio
	if h.source == nil {
		ebitenutil.DebugPrintAt(screen, line, int(x), int(y))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, line, &text.GoTextFace{Source: h.source, Size: hudFontSize * ratio}, op)
}
