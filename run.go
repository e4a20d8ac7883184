package canopy

import "github.com/hajimehoshi/ebiten/v2"

// fallbackTPS is assumed when ebiten reports no fixed tick rate
// (ebiten.SyncWithFPS).
const fallbackTPS = 60

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	dt    float64
}

func (g *game) Update() error {
	g.scene.Update(g.dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout keeps the root sized to the outside size so anchored children
// follow window resizes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.scene.root.Size()
	if float64(outsideWidth) != size.X || float64(outsideHeight) != size.Y {
		g.scene.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window configured from the scene's Config and runs the game
// loop until the window is closed. Each tick advances the scene by 1/TPS
// seconds, or 1/60 when TPS is synced to the frame rate.
//
// For full control, implement ebiten.Game yourself and call Scene.Update and
// Scene.Draw directly.
func Run(scene *Scene) error {
	cfg := scene.Config()
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.ShowFPS {
		if err := scene.Root().AddChild(NewFPSWidget()); err != nil {
			return err
		}
	}
	return ebiten.RunGame(&game{scene: scene, dt: tickSeconds(ebiten.TPS())})
}

// tickSeconds returns the duration of one tick at tps ticks per second.
func tickSeconds(tps int) float64 {
	if tps <= 0 {
		tps = fallbackTPS
	}
	return 1 / float64(tps)
}
