package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/arbor"
)

// drawStats prints the stats overlay with ebitenutil.DebugPrint.
func (r *Renderer) drawStats(screen *ebiten.Image, sm *arbor.SceneManager) {
	ebitenutil.DebugPrint(screen, statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), sm, len(r.tris)))
}

func statsText(fps, tps float64, sm *arbor.SceneManager, triangles int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nEntities: %d (+%d -%d)\nTriangles: %d",
		fps, tps, len(sm.Entities()), sm.PendingAdds(), sm.PendingRemoves(), triangles)
}
