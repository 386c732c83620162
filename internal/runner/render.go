package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/core"
)

// groundSink is how far the player's feet overlap the ground tile.
const groundSink = 3

// Surface is a fixed-size 2D drawing target in canvas coordinates.
type Surface interface {
	// Blit copies a sprite from the atlas with its top-left corner at (x, y).
	Blit(s atlas.Sprite, x, y float64)
	// StrokeRect outlines a box. Used by the debug overlay only.
	StrokeRect(b core.Box, c core.Color)
	// Text draws a line of text with its top-left corner at (x, y).
	Text(x, y float64, s string)
}

// ScoreDisplay receives the formatted score texts once per tick.
type ScoreDisplay interface {
	SetScore(s string)
	SetHighScore(s string)
}

// HUD is a ScoreDisplay that keeps the last texts for hosts to draw.
type HUD struct {
	score string
	high  string
}

// SetScore implements ScoreDisplay.
func (h *HUD) SetScore(s string) { h.score = s }

// SetHighScore implements ScoreDisplay.
func (h *HUD) SetHighScore(s string) { h.high = s }

// Score returns the current score text.
func (h *HUD) Score() string { return h.score }

// HighScore returns the high score text.
func (h *HUD) HighScore() string { return h.high }

// String renders both texts the way they appear above the canvas.
func (h *HUD) String() string {
	return h.high + "  " + h.score
}

// Draw renders the current frame back to front: clouds, ground, player,
// obstacles, the game-over overlay and finally the debug overlay.
func (g *Game) Draw(s Surface) {
	for _, c := range g.spawner.Clouds() {
		s.Blit(atlas.Cloud, c.X, c.Y)
	}

	tile := float64(atlas.Ground.W)
	gx := -math.Mod(float64(g.frame)*g.score.Speed(), tile)
	gy := g.cfg.Canvas.GroundY() + g.cfg.Player.Height - groundSink
	s.Blit(atlas.Ground, gx, gy)
	s.Blit(atlas.Ground, gx+tile, gy)

	s.Blit(g.player.Sprite(g.Over()), g.player.X, g.player.Y)

	for _, o := range g.spawner.Obstacles() {
		s.Blit(o.Sprite, o.X, o.Y)
	}

	if g.Over() {
		b := g.BannerBox()
		s.Blit(atlas.GameOver, b.X, b.Y)
		r := g.RestartBox()
		s.Blit(atlas.Restart, r.X, r.Y)
	}

	if g.debug {
		g.drawDebug(s)
	}
}

func (g *Game) drawDebug(s Surface) {
	inset := g.cfg.Collision.Inset
	s.StrokeRect(g.player.Box().Inset(inset), core.ColorGreen)
	for _, o := range g.spawner.Obstacles() {
		s.StrokeRect(o.Box().Inset(inset), core.ColorRed)
	}
	for i, line := range g.DebugLines() {
		s.Text(10, 20+float64(i)*15, line)
	}
}

// DebugLines returns the numeric state shown by the debug overlay.
func (g *Game) DebugLines() []string {
	return []string{
		fmt.Sprintf("Speed: %.2f", g.score.Speed()),
		fmt.Sprintf("Jump: %t", g.player.Jumping),
		fmt.Sprintf("Duck: %t", g.player.Ducking),
		fmt.Sprintf("Y: %.1f", g.player.Y),
		fmt.Sprintf("VelY: %.1f", g.player.VelocityY),
		fmt.Sprintf("Frame: %d", g.frame),
		fmt.Sprintf("Obstacles: %d", len(g.spawner.Obstacles())),
	}
}

// BannerBox returns where the game-over banner is drawn.
func (g *Game) BannerBox() core.Box {
	w, h := float64(g.cfg.Canvas.Width), float64(g.cfg.Canvas.Height)
	return core.NewBox(w/2-float64(atlas.GameOver.W)/2, h/2-20, float64(atlas.GameOver.W), float64(atlas.GameOver.H))
}

// RestartBox returns the restart control's bounds; clicks inside it restart
// a finished run.
func (g *Game) RestartBox() core.Box {
	w, h := float64(g.cfg.Canvas.Width), float64(g.cfg.Canvas.Height)
	return core.NewBox(w/2-float64(atlas.Restart.W)/2, h/2+20, float64(atlas.Restart.W), float64(atlas.Restart.H))
}
