package runner

import (
	"slices"
	"testing"

	"github.com/vovakirdan/trex-runner/internal/core"
)

func TestDrawOrder(t *testing.T) {
	g := newTestGame(WithRand(constRand{f: 0.4}))
	step(g, 100) // one cloud
	g.AddObstacle(g.spawner.Flyer(190, 600))

	surf := &recordingSurface{}
	g.Draw(surf)

	want := []string{"cloud", "ground", "ground", "dino-run-0", "ptero-0"}
	if !slices.Equal(surf.ops, want) {
		t.Errorf("draw calls = %v, expected %v", surf.ops, want)
	}
}

func TestDrawGameOverOverlay(t *testing.T) {
	g := newTestGame()
	g.AddObstacle(g.spawner.Cactus(false, 1, g.Player().X))
	g.Update()

	surf := &recordingSurface{}
	g.Draw(surf)

	want := []string{"ground", "ground", "dino-dead", "cactus-small-1", "game-over", "restart"}
	if !slices.Equal(surf.ops, want) {
		t.Errorf("draw calls = %v, expected %v", surf.ops, want)
	}
}

func TestDrawDebugOverlay(t *testing.T) {
	g := newTestGame()
	g.HandleEvent(core.NewEvent(core.ActionToggleDebug))
	g.AddObstacle(g.spawner.Cactus(false, 0, 600))

	surf := &recordingSurface{}
	g.Draw(surf)

	rects, texts := 0, 0
	for _, op := range surf.ops {
		switch op {
		case "rect":
			rects++
		case "text":
			texts++
		}
	}
	if rects != 2 {
		t.Errorf("debug rects = %d, expected player and one obstacle", rects)
	}
	if texts != len(g.DebugLines()) {
		t.Errorf("debug texts = %d, expected %d", texts, len(g.DebugLines()))
	}
	if surf.ops[len(surf.ops)-1] != "text" {
		t.Error("debug overlay should be drawn last")
	}
}

func TestDebugLines(t *testing.T) {
	g := newTestGame()
	step(g, 3)
	lines := g.DebugLines()

	want := []string{
		"Speed: 6.00",
		"Jump: false",
		"Duck: false",
		"Y: 200.0",
		"VelY: 0.0",
		"Frame: 3",
		"Obstacles: 0",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("DebugLines() = %q, expected %q", lines, want)
	}
}

func TestOverlayPlacement(t *testing.T) {
	g := newTestGame()

	if b := g.BannerBox(); b.X != 304.5 || b.Y != 130 {
		t.Errorf("BannerBox() = %+v, expected (304.5, 130)", b)
	}
	if r := g.RestartBox(); r.X != 382 || r.Y != 170 || r.W != 36 || r.H != 32 {
		t.Errorf("RestartBox() = %+v, expected 36x32 at (382, 170)", r)
	}
}

func TestHUD(t *testing.T) {
	hud := &HUD{}
	g := newTestGame(WithDisplay(hud), WithStore(&fakeStore{value: 4200}))

	if hud.String() != "HI 00042  00000" {
		t.Errorf("HUD = %q", hud.String())
	}
	step(g, 150)
	if hud.Score() != "00001" || hud.HighScore() != "HI 00042" {
		t.Errorf("HUD after 150 ticks = %q", hud.String())
	}
}
