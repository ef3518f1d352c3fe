package dropbubble

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// Resizable lets the user resize the window. The layout follows the
	// window size; widgets keep their coordinates.
	Resizable bool
}

// game adapts a Host to ebiten.Game.
type game struct {
	host *Host
	fps  *fpsWidget
}

func (g *game) Update() error {
	g.host.Update()
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.host.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(w, h int) (int, int) {
	return w, h
}

// Run opens a window and runs the host's game loop until the window closes.
// The overlay layer shares the window's coordinate space, so no chrome
// compensation is applied to pointer positions.
func Run(h *Host, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{host: h}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	if err := ebiten.RunGame(g); err != nil {
		return errors.Wrap(err, "run game")
	}
	return nil
}
