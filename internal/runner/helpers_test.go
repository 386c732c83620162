package runner

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

// constRand returns the same draw every time. 0.99 never spawns anything.
type constRand struct {
	f float64
	i int
}

func (r constRand) Float64() float64 { return r.f }
func (r constRand) IntN(n int) int   { return r.i % n }

var quiet = constRand{f: 0.99}

// scriptedRand replays fixed draws, then falls back to quiet values.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

type fakeStore struct {
	value   int
	saves   []int
	loadErr error
	saveErr error
}

func (s *fakeStore) LoadHighScore() (int, error) {
	if s.loadErr != nil {
		return 0, s.loadErr
	}
	return s.value, nil
}

func (s *fakeStore) SaveHighScore(score int) error {
	s.saves = append(s.saves, score)
	if s.saveErr != nil {
		return s.saveErr
	}
	s.value = score
	return nil
}

var errBroken = errors.New("broken")

type cueRecorder struct {
	cues []core.Cue
}

func (r *cueRecorder) Notify(c core.Cue) { r.cues = append(r.cues, c) }

func (r *cueRecorder) count(c core.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

type runLog struct {
	scores, ticks []int
}

func (r *runLog) RecordRun(score, ticks int) error {
	r.scores = append(r.scores, score)
	r.ticks = append(r.ticks, ticks)
	return nil
}

// recordingSurface logs draw calls in order.
type recordingSurface struct {
	ops []string
}

func (s *recordingSurface) Blit(sp atlas.Sprite, x, y float64) { s.ops = append(s.ops, sp.Name) }
func (s *recordingSurface) StrokeRect(b core.Box, c core.Color) { s.ops = append(s.ops, "rect") }
func (s *recordingSurface) Text(x, y float64, text string)     { s.ops = append(s.ops, "text") }

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestGame(opts ...Option) *Game {
	base := []Option{WithRand(quiet), WithLogger(testLogger())}
	return New(config.DefaultRunnerConfig(), append(base, opts...)...)
}

func step(g *Game, n int) {
	for range n {
		g.Update()
	}
}
