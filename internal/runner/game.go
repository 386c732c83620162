// Package runner implements the side-scrolling runner: physics, spawning,
// collision, scoring and the Running/GameOver state machine.
//
// A Game is driven by exactly one goroutine. Hosts feed it events between
// ticks through HandleEvent and advance it with Update; the engine package
// provides the loop that does both in the right order.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

// State is the main loop state.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Game owns the complete game state. No other component keeps references
// into it across ticks.
type Game struct {
	cfg     config.RunnerConfig
	state   State
	frame   int
	debug   bool
	player  Player
	spawner *Spawner
	score   *ScoreKeeper

	rng      Rand
	store    HighScoreStore
	notifier Notifier
	display  ScoreDisplay
	recorder RunRecorder
	logger   *log.Logger
}

// New creates a game in the Running state. A cfg that fails Validate is
// replaced by the defaults.
func New(cfg config.RunnerConfig, opts ...Option) *Game {
	g := &Game{
		cfg:      cfg,
		notifier: nopNotifier{},
		display:  &HUD{},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	if err := cfg.Validate(); err != nil {
		g.logger.Warn("invalid runner config, using defaults", "error", err)
		cfg = config.DefaultRunnerConfig()
		g.cfg = cfg
	}

	ground := cfg.Canvas.GroundY()
	g.spawner = NewSpawner(cfg.Spawn, float64(cfg.Canvas.Width), ground, g.rng)
	g.score = newScoreKeeper(cfg.Physics, cfg.Scoring, g.store, g.logger)
	g.player = newPlayer(cfg.Player, ground)
	g.publishScore()
	return g
}

// Reset starts a fresh run: score, speed, player and both entity
// collections go back to their initial values. The debug overlay setting
// survives.
func (g *Game) Reset() {
	g.state = StateRunning
	g.frame = 0
	g.player = newPlayer(g.cfg.Player, g.cfg.Canvas.GroundY())
	g.spawner.Reset()
	g.score.Reset()
	g.publishScore()
}

// HandleEvent applies one input event. Requests that make no sense in the
// current state, such as jumping mid-air, are ignored.
func (g *Game) HandleEvent(ev core.Event) {
	if ev.Action == core.ActionToggleDebug {
		g.debug = !g.debug
		return
	}

	if g.state == StateGameOver {
		switch ev.Action {
		case core.ActionJump, core.ActionDuck:
			g.Reset()
		case core.ActionClick:
			if g.RestartBox().Contains(ev.X, ev.Y) {
				g.Reset()
			}
		}
		return
	}

	switch ev.Action {
	case core.ActionJump:
		if g.player.TriggerJump(g.cfg.Physics.JumpSpeed) {
			g.notifier.Notify(core.CueJump)
		}
	case core.ActionDuck:
		g.player.StartDuck()
	case core.ActionDuckRelease:
		g.player.StopDuck()
	}
}

// Update advances the simulation by one tick: physics, spawning, collision,
// then scoring. It does nothing once the run is over.
func (g *Game) Update() {
	if g.state == StateGameOver {
		return
	}
	g.frame++

	g.player.ApplyGravity(g.cfg.Physics.Gravity)
	g.player.Animate(g.frame)

	g.spawner.Tick(g.frame, g.score.Speed())

	pb := g.player.Box()
	for _, o := range g.spawner.Obstacles() {
		if CheckCollision(pb, o.Box(), g.cfg.Collision.Inset) {
			g.endRun()
			break
		}
	}

	if g.state == StateRunning && g.score.Advance() {
		g.notifier.Notify(core.CuePoint)
	}
	g.publishScore()
}

func (g *Game) endRun() {
	g.state = StateGameOver
	g.notifier.Notify(core.CueDie)
	g.logger.Debug("run over", "score", g.score.Score(), "ticks", g.frame)

	if g.recorder != nil {
		if err := g.recorder.RecordRun(g.score.Score(), g.frame); err != nil {
			g.logger.Warn("cannot record run", "error", err)
		}
	}
}

func (g *Game) publishScore() {
	g.display.SetScore(g.score.Display())
	g.display.SetHighScore(g.score.HighDisplay())
}

// AddObstacle places an obstacle directly, bypassing the random spawner.
func (g *Game) AddObstacle(o Obstacle) {
	g.spawner.Add(o)
}

// State returns the main loop state.
func (g *Game) State() State { return g.state }

// Over reports whether the run has ended.
func (g *Game) Over() bool { return g.state == StateGameOver }

// Frame returns the number of ticks since the last reset.
func (g *Game) Frame() int { return g.frame }

// Score returns the raw score.
func (g *Game) Score() int { return g.score.Score() }

// HighScore returns the best raw score.
func (g *Game) HighScore() int { return g.score.HighScore() }

// Speed returns the current scroll speed.
func (g *Game) Speed() float64 { return g.score.Speed() }

// Player returns a copy of the player.
func (g *Game) Player() Player { return g.player }

// Obstacles returns the live obstacles. Callers must not keep the slice across ticks.
func (g *Game) Obstacles() []Obstacle { return g.spawner.Obstacles() }

// Clouds returns the live clouds. Callers must not keep the slice across ticks.
func (g *Game) Clouds() []Cloud { return g.spawner.Clouds() }

// Debug reports whether the debug overlay is on.
func (g *Game) Debug() bool { return g.debug }

// Config returns the configuration the game was built with.
func (g *Game) Config() config.RunnerConfig { return g.cfg }
