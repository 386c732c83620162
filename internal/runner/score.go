package runner

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trex-runner/internal/config"
)

// HighScoreStore persists the best raw score across sessions.
// A missing value loads as 0.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// ScoreKeeper tracks the raw score, the high score and the scroll speed.
type ScoreKeeper struct {
	score int
	high  int
	ramps int // Speed increments applied since reset

	physics config.PhysicsConfig
	scoring config.ScoringConfig
	store   HighScoreStore
	logger  *log.Logger
}

func newScoreKeeper(physics config.PhysicsConfig, scoring config.ScoringConfig, store HighScoreStore, logger *log.Logger) *ScoreKeeper {
	k := &ScoreKeeper{physics: physics, scoring: scoring, store: store, logger: logger}
	k.Reset()
	return k
}

// Reset zeroes the score and speed and reloads the stored high score.
// The in-memory high score never goes down, even if the store lost it.
func (k *ScoreKeeper) Reset() {
	k.score = 0
	k.ramps = 0
	if k.store == nil {
		return
	}
	stored, err := k.store.LoadHighScore()
	if err != nil {
		k.logger.Warn("cannot load high score, using 0", "error", err)
		stored = 0
	}
	k.high = max(k.high, stored)
}

// Advance adds one point of raw score. It raises the speed when the new score
// lands on a speed step, writes the high score through when it is exceeded and
// reports whether the displayed score just increased.
func (k *ScoreKeeper) Advance() (point bool) {
	before := k.score / k.scoring.DisplayDivisor
	k.score++

	if k.score%k.physics.SpeedStep == 0 {
		k.ramps++
	}

	if k.score > k.high {
		k.high = k.score
		if k.store != nil {
			if err := k.store.SaveHighScore(k.high); err != nil {
				k.logger.Warn("cannot save high score", "score", k.high, "error", err)
			}
		}
	}

	return k.score/k.scoring.DisplayDivisor > before
}

// Score returns the raw score.
func (k *ScoreKeeper) Score() int {
	return k.score
}

// HighScore returns the best raw score seen.
func (k *ScoreKeeper) HighScore() int {
	return k.high
}

// Speed returns the current scroll speed.
func (k *ScoreKeeper) Speed() float64 {
	return k.physics.BaseSpeed + float64(k.ramps)*k.physics.SpeedIncrement
}

// Display returns the zero-padded displayed score.
func (k *ScoreKeeper) Display() string {
	return k.pad(k.score)
}

// HighDisplay returns the displayed high score with its "HI " prefix.
func (k *ScoreKeeper) HighDisplay() string {
	return "HI " + k.pad(k.high)
}

func (k *ScoreKeeper) pad(raw int) string {
	return fmt.Sprintf("%0*d", k.scoring.DisplayDigits, raw/k.scoring.DisplayDivisor)
}
