package canopy

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a node that displays the current FPS and TPS at its
// derived position. The text is refreshed every ~0.5 seconds. The widget sits
// above its siblings and never takes part in hit-testing.
func NewFPSWidget() *Node {
	n := NewNodeWithRect("fps_widget", Rect{Width: 100, Height: 32})
	n.SetColor(Color{0, 0, 0, 0.5})
	n.SetZOrder(math.MaxInt32)
	n.HitTest = HitTestDisabledRecursive

	var lastUpdate float64
	label := "FPS: -\nTPS: -"

	n.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	n.OnDraw = func(dst *ebiten.Image, n *Node) {
		p := n.DerivedPosition(nil)
		ebitenutil.DebugPrintAt(dst, label, int(p.X), int(p.Y))
	}
	return n
}
