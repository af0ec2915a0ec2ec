package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/ncruces/zenity"
)

// exportSnapshot asks for a destination and writes the current layer
// contents there as PNG.
func (g *Game) exportSnapshot() error {
	if g.layer == nil || g.layer.Source.img == nil {
		return errors.New("game: no layer to export")
	}

	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("neural-background.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	img := g.layer.Source.img
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	img.ReadPixels(out.Pix)

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, out); err != nil {
		_ = f.Close()
		return fmt.Errorf("game: encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	g.logger.Printf("snapshot written to %s", filename)
	return nil
}
