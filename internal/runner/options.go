package runner

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trex-runner/internal/core"
)

// Rand is the source of every random draw the game makes.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a seeded PCG source. A zero seed is replaced with the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Notifier receives sound cues. Implementations must not block.
type Notifier interface {
	Notify(cue core.Cue)
}

// RunRecorder receives the result of every finished run.
type RunRecorder interface {
	RecordRun(score, ticks int) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(core.Cue) {}

// Option configures a Game.
type Option func(*Game)

// WithStore sets the high score store. Without one the high score lives in memory only.
func WithStore(s HighScoreStore) Option {
	return func(g *Game) { g.store = s }
}

// WithNotifier sets the sound cue sink.
func WithNotifier(n Notifier) Option {
	return func(g *Game) {
		if n != nil {
			g.notifier = n
		}
	}
}

// WithDisplay sets the score text sink.
func WithDisplay(d ScoreDisplay) Option {
	return func(g *Game) {
		if d != nil {
			g.display = d
		}
	}
}

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed seeds the default random source.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = NewRand(seed) }
}

// WithLogger sets the logger used for store and recorder failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRunRecorder sets a sink for finished runs.
func WithRunRecorder(r RunRecorder) Option {
	return func(g *Game) { g.recorder = r }
}
