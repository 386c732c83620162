package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

func TestLongRunWithoutObstacles(t *testing.T) {
	hud := &HUD{}
	g := newTestGame(WithDisplay(hud))

	if g.Score() != 0 || g.Speed() != 6 {
		t.Fatalf("initial score %d speed %v, expected 0 and 6", g.Score(), g.Speed())
	}

	for i := 1; i <= 10000; i++ {
		g.Update()
		p := g.Player()
		if !p.Grounded() {
			t.Fatalf("tick %d: player left the ground", i)
		}
		if g.Score() != i {
			t.Fatalf("tick %d: score %d", i, g.Score())
		}
	}

	if g.State() != StateRunning {
		t.Errorf("State() = %v, expected Running", g.State())
	}
	if hud.Score() != "00100" {
		t.Errorf("displayed score = %q, expected 00100", hud.Score())
	}
	if math.Abs(g.Speed()-16.0) > 1e-9 {
		t.Errorf("Speed() = %v, expected 16", g.Speed())
	}
	if len(g.Obstacles()) != 0 {
		t.Errorf("%d obstacles spawned", len(g.Obstacles()))
	}
}

func TestJumpThroughGame(t *testing.T) {
	cues := &cueRecorder{}
	g := newTestGame(WithNotifier(cues))

	g.HandleEvent(core.NewEvent(core.ActionJump))
	g.HandleEvent(core.NewEvent(core.ActionJump)) // already airborne
	if cues.count(core.CueJump) != 1 {
		t.Errorf("jump cues = %d, expected 1", cues.count(core.CueJump))
	}

	step(g, 32)
	if p := g.Player(); !p.Jumping || math.Abs(p.Y-196.8) > 1e-9 {
		t.Errorf("after 32 ticks: Jumping=%v Y=%v, expected airborne at 196.8", p.Jumping, p.Y)
	}
	step(g, 1)
	if p := g.Player(); p.Jumping || p.Y != 200 {
		t.Errorf("after 33 ticks: Jumping=%v Y=%v, expected landed", p.Jumping, p.Y)
	}
}

func TestRestartScenario(t *testing.T) {
	cues := &cueRecorder{}
	runs := &runLog{}
	g := newTestGame(WithRand(constRand{f: 0.4}), WithNotifier(cues), WithRunRecorder(runs))

	// 0.4 spawns clouds but never obstacles.
	step(g, 120)
	if len(g.Clouds()) == 0 {
		t.Fatal("expected a cloud after 120 ticks")
	}
	if g.Speed() <= 6 {
		t.Fatal("expected speed to have ramped")
	}

	p := g.Player()
	g.AddObstacle(g.spawner.Cactus(false, 1, p.X))
	g.Update()

	if g.State() != StateGameOver {
		t.Fatalf("State() = %v, expected GameOver", g.State())
	}
	if g.Score() != 120 {
		t.Errorf("score on collision tick = %d, expected 120", g.Score())
	}
	if cues.count(core.CueDie) != 1 {
		t.Errorf("die cues = %d, expected 1", cues.count(core.CueDie))
	}
	if len(runs.scores) != 1 || runs.scores[0] != 120 || runs.ticks[0] != 121 {
		t.Errorf("recorded runs %v / %v", runs.scores, runs.ticks)
	}

	g.Update()
	if g.Score() != 120 || g.Frame() != 121 {
		t.Error("Update() in GameOver should not advance the game")
	}

	g.HandleEvent(core.NewEvent(core.ActionJump))
	if g.State() != StateRunning {
		t.Fatalf("State() after jump = %v, expected Running", g.State())
	}
	if g.Score() != 0 || g.Speed() != 6 || g.Frame() != 0 {
		t.Errorf("after restart: score %d speed %v frame %d", g.Score(), g.Speed(), g.Frame())
	}
	if len(g.Obstacles()) != 0 || len(g.Clouds()) != 0 {
		t.Error("restart should clear obstacles and clouds")
	}
	if g.HighScore() != 120 {
		t.Errorf("HighScore() = %d, expected 120 to survive restart", g.HighScore())
	}
	if p := g.Player(); p.Jumping || p.Y != 200 {
		t.Error("restart should put the player back on the ground")
	}
}

func TestRestartByDuckAndClick(t *testing.T) {
	collide := func(g *Game) {
		g.AddObstacle(g.spawner.Cactus(true, 1, g.Player().X))
		g.Update()
		if !g.Over() {
			t.Fatal("expected collision")
		}
	}

	g := newTestGame()
	collide(g)
	g.HandleEvent(core.NewEvent(core.ActionDuckRelease))
	if !g.Over() {
		t.Error("duck release should not restart")
	}
	g.HandleEvent(core.NewEvent(core.ActionDuck))
	if g.Over() {
		t.Error("duck should restart")
	}

	collide(g)
	r := g.RestartBox()
	g.HandleEvent(core.ClickAt(r.X-1, r.Y))
	if !g.Over() {
		t.Error("click outside the restart control should not restart")
	}
	g.HandleEvent(core.ClickAt(r.Right(), r.Bottom()))
	if g.Over() {
		t.Error("click on the restart control's edge should restart")
	}
}

func TestClickIgnoredWhileRunning(t *testing.T) {
	g := newTestGame()
	step(g, 10)
	r := g.RestartBox()
	g.HandleEvent(core.ClickAt(r.X+1, r.Y+1))
	if g.Frame() != 10 {
		t.Error("click while running should not reset")
	}
}

func TestDuckEvents(t *testing.T) {
	g := newTestGame()

	g.HandleEvent(core.NewEvent(core.ActionDuck))
	if p := g.Player(); !p.Crouched() {
		t.Error("duck event should crouch")
	}
	g.HandleEvent(core.NewEvent(core.ActionDuckRelease))
	if p := g.Player(); p.Ducking {
		t.Error("duck release should stand up")
	}
}

func TestToggleDebug(t *testing.T) {
	g := newTestGame()
	g.HandleEvent(core.NewEvent(core.ActionToggleDebug))
	if !g.Debug() {
		t.Fatal("debug should be on")
	}

	g.AddObstacle(g.spawner.Cactus(false, 1, g.Player().X))
	g.Update()
	g.HandleEvent(core.NewEvent(core.ActionToggleDebug))
	if g.Debug() || !g.Over() {
		t.Error("debug toggle should work in GameOver without restarting")
	}
}

func TestHighScoreReloadedOnReset(t *testing.T) {
	store := &fakeStore{value: 300}
	g := newTestGame(WithStore(store))
	if g.HighScore() != 300 {
		t.Fatalf("HighScore() = %d, expected 300", g.HighScore())
	}

	// Another session raised the stored value.
	store.value = 900
	g.Reset()
	if g.HighScore() != 900 {
		t.Errorf("HighScore() after reset = %d, expected 900", g.HighScore())
	}
}

func TestObserve(t *testing.T) {
	g := newTestGame()

	if obs := g.Observe(); obs.Distance != NoObstacleDistance || obs.Speed != 6 {
		t.Errorf("empty Observe() = %+v", obs)
	}

	g.AddObstacle(g.spawner.Cactus(false, 0, 400))
	g.AddObstacle(g.spawner.Flyer(190, 250))
	g.AddObstacle(g.spawner.Cactus(false, 0, 20)) // behind the player

	obs := g.Observe()
	if obs.Distance != 200 || !obs.Flyer || obs.ObstacleY != 190 {
		t.Errorf("Observe() = %+v, expected flyer 200 ahead at y=190", obs)
	}
	if v := obs.Vector(); v != [4]float64{200, 6, 1, 190} {
		t.Errorf("Vector() = %v", v)
	}
}

func TestNewFallsBackOnInvalidConfig(t *testing.T) {
	g := New(config.RunnerConfig{}, WithRand(quiet), WithLogger(testLogger()))
	if g.Config() != config.DefaultRunnerConfig() {
		t.Errorf("Config() = %+v, expected the defaults", g.Config())
	}

	step(g, 200)
	if g.Score() != 200 {
		t.Errorf("Score() = %d, expected 200", g.Score())
	}

	bad := config.DefaultRunnerConfig()
	bad.Spawn.ObstacleInterval = 0
	if g := New(bad, WithRand(quiet), WithLogger(testLogger())); g.Config().Spawn.ObstacleInterval == 0 {
		t.Error("zero obstacle interval should be replaced")
	}
}
