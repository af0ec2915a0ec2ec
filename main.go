package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/neural-background/internal/config"
	"github.com/iburimskiy/neural-background/internal/game"
)

func main() {
	cfg := config.Default()
	width := flag.Int("width", config.WindowWidth, "initial window width")
	height := flag.Int("height", config.WindowHeight, "initial window height")
	showHUD := flag.Bool("hud", false, "show the stats overlay")
	flag.IntVar(&cfg.ParticleCount, "particles", cfg.ParticleCount, "number of particles")
	flag.IntVar(&cfg.MaxEdges, "edges", cfg.MaxEdges, "maximum connections drawn per frame")
	flag.Float64Var(&cfg.ConnectDistanceSq, "threshold", cfg.ConnectDistanceSq, "squared connection distance")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for the field (0 = unseeded)")
	flag.Parse()

	logger := log.New(os.Stderr, "[neural] ", log.LstdFlags)
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Neural Background - H: HUD, R: Remount, S: Snapshot, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := game.NewGame(cfg, logger, *showHUD)
	defer g.Unmount()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
