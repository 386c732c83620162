package engine

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trex-runner/internal/core"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

// Pilot chooses an action from what the player can see. ActionNone means no input.
type Pilot interface {
	Act(obs runner.Observation) core.Action
}

// Loop owns a game and the input queue feeding it. Hosts push events from
// any goroutine; everything else must be called from the goroutine that
// drives the loop.
type Loop struct {
	game   *runner.Game
	queue  *core.InputQueue
	pilot  Pilot
	logger *log.Logger
	quit   bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithPilot lets p add one action per tick before input is drained.
func WithPilot(p Pilot) Option {
	return func(l *Loop) { l.pilot = p }
}

// WithQueueSize bounds the input queue.
func WithQueueSize(n int) Option {
	return func(l *Loop) { l.queue = core.NewInputQueue(n) }
}

// WithLogger sets the loop logger.
func WithLogger(lg *log.Logger) Option {
	return func(l *Loop) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewLoop creates a loop around g.
func NewLoop(g *runner.Game, opts ...Option) *Loop {
	l := &Loop{
		game:   g,
		queue:  core.NewInputQueue(core.DefaultQueueSize),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Game returns the driven game.
func (l *Loop) Game() *runner.Game { return l.game }

// Push queues an event for the next tick. A full queue drops the event.
func (l *Loop) Push(ev core.Event) bool {
	if !l.queue.Push(ev) {
		l.logger.Debug("input queue full, event dropped", "action", ev.Action)
		return false
	}
	return true
}

// Waiting reports whether the run is over and no input is queued. Hosts that
// drive Step from their own clock skip ticks while it holds.
func (l *Loop) Waiting() bool {
	return l.game.Over() && l.queue.Len() == 0
}

// Quit reports whether a quit event has been consumed.
func (l *Loop) Quit() bool { return l.quit }

// Step runs one tick: pilot, drained input in arrival order, then Update.
// A tick that starts in GameOver only handles input, so a restart never
// shares its tick with the first update of the new run.
func (l *Loop) Step() {
	if l.pilot != nil && !l.game.Over() {
		if a := l.pilot.Act(l.game.Observe()); a != core.ActionNone {
			l.Push(core.NewEvent(a))
		}
	}

	over := l.game.Over()
	for _, ev := range l.queue.Drain() {
		if ev.Action == core.ActionQuit {
			l.quit = true
			continue
		}
		l.game.HandleEvent(ev)
	}
	if over {
		return
	}
	l.game.Update()
}

// Draw renders the current frame. A nil surface draws nothing.
func (l *Loop) Draw(s runner.Surface) {
	if s != nil {
		l.game.Draw(s)
	}
}

// Tick is Step followed by Draw.
func (l *Loop) Tick(s runner.Surface) {
	l.Step()
	l.Draw(s)
}

// Run ticks on src until ctx is cancelled or a quit event arrives.
// While the run is over it stops consuming ticks and waits for input instead.
// Returns ctx.Err() on cancellation and nil on quit.
func (l *Loop) Run(ctx context.Context, src TickSource, s runner.Surface) error {
	defer src.Stop()
	l.Draw(s)

	for !l.quit {
		if l.game.Over() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.queue.Ready():
				l.Tick(s)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-src.Ticks():
			l.Tick(s)
		}
	}
	return nil
}
