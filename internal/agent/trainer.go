package agent

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/engine"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

// DefaultMaxTicks caps a single evaluation at five minutes of game time.
const DefaultMaxTicks = 5 * 60 * engine.DefaultTickRate

// Result is the outcome of one headless run.
type Result struct {
	Score   int
	Ticks   int
	Fitness float64
}

// GenerationStats summarises one evaluated generation.
type GenerationStats struct {
	Generation int
	Best       Result
	AvgScore   float64
	Elapsed    time.Duration
}

// Trainer evolves networks against headless games.
type Trainer struct {
	cfg      config.RunnerConfig
	ga       GAConfig
	workers  int
	maxTicks int
	tickRate int
	seed     int64
	logger   *log.Logger

	pop  *Population
	best *Model
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithGA sets the genetic algorithm settings.
func WithGA(ga GAConfig) TrainerOption {
	return func(t *Trainer) { t.ga = ga }
}

// WithWorkers bounds how many games run at once.
func WithWorkers(n int) TrainerOption {
	return func(t *Trainer) {
		if n > 0 {
			t.workers = n
		}
	}
}

// WithMaxTicks caps each evaluation.
func WithMaxTicks(n int) TrainerOption {
	return func(t *Trainer) {
		if n > 0 {
			t.maxTicks = n
		}
	}
}

// WithTickRate sets how many ticks make a second of survival time.
func WithTickRate(rate int) TrainerOption {
	return func(t *Trainer) {
		if rate > 0 {
			t.tickRate = rate
		}
	}
}

// WithTrainSeed fixes the seed for the population and every game.
func WithTrainSeed(seed int64) TrainerOption {
	return func(t *Trainer) { t.seed = seed }
}

// WithTrainLogger sets the logger for per-generation progress.
func WithTrainLogger(lg *log.Logger) TrainerOption {
	return func(t *Trainer) {
		if lg != nil {
			t.logger = lg
		}
	}
}

// NewTrainer creates a trainer with a fresh random population.
func NewTrainer(cfg config.RunnerConfig, opts ...TrainerOption) (*Trainer, error) {
	t := &Trainer{
		cfg:      cfg,
		ga:       DefaultGAConfig(),
		workers:  runtime.NumCPU(),
		maxTicks: DefaultMaxTicks,
		tickRate: engine.DefaultTickRate,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.seed == 0 {
		t.seed = time.Now().UnixNano()
	}

	pop, err := NewPopulation(t.ga, runner.NewRand(t.seed))
	if err != nil {
		return nil, err
	}
	t.pop = pop
	return t, nil
}

// Population returns the current generation.
func (t *Trainer) Population() *Population { return t.pop }

// Best returns the fittest network seen so far, or nil before the first generation.
func (t *Trainer) Best() *Model { return t.best }

// Evaluate plays one game with n at the controls until it ends or hits the tick cap.
func (t *Trainer) Evaluate(ctx context.Context, n *Network, seed int64) (Result, error) {
	g := runner.New(t.cfg, runner.WithSeed(seed), runner.WithLogger(t.logger))
	loop := engine.NewLoop(g, engine.WithPilot(NewPilot(n)), engine.WithLogger(t.logger))

	ticks := 0
	for !g.Over() && ticks < t.maxTicks {
		if ticks%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		loop.Step()
		ticks++
	}

	seconds := float64(ticks) / float64(t.tickRate)
	return Result{Score: g.Score(), Ticks: ticks, Fitness: Fitness(g.Score(), seconds)}, nil
}

// Generation evaluates every member on the same course, records the best
// network and evolves the population.
func (t *Trainer) Generation(ctx context.Context, gen int) (GenerationStats, error) {
	start := time.Now()
	members := t.pop.Members
	results := make([]Result, len(members))
	seed := t.seed + int64(gen) + 1

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(t.workers)
	for i, n := range members {
		eg.Go(func() error {
			r, err := t.Evaluate(ctx, n, seed)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return GenerationStats{}, fmt.Errorf("agent: generation %d: %w", gen, err)
	}

	stats := GenerationStats{Generation: gen}
	fitness := make([]float64, len(results))
	bestIdx, total := 0, 0
	for i, r := range results {
		fitness[i] = r.Fitness
		total += r.Score
		if r.Fitness > results[bestIdx].Fitness {
			bestIdx = i
		}
	}
	stats.Best = results[bestIdx]
	stats.AvgScore = float64(total) / float64(len(results))

	if t.best == nil || stats.Best.Fitness > t.best.Fitness {
		t.best = &Model{
			Generation: gen,
			Fitness:    stats.Best.Fitness,
			Score:      stats.Best.Score,
			Network:    members[bestIdx].Clone(),
		}
	}

	if err := t.pop.Evolve(fitness); err != nil {
		return GenerationStats{}, err
	}
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// Train runs generations and returns the best model found.
func (t *Trainer) Train(ctx context.Context, generations int) (*Model, error) {
	for gen := range generations {
		stats, err := t.Generation(ctx, gen)
		if err != nil {
			return t.best, err
		}
		t.logger.Info("generation done",
			"generation", fmt.Sprintf("%d/%d", gen+1, generations),
			"best_score", stats.Best.Score,
			"avg_score", fmt.Sprintf("%.2f", stats.AvgScore),
			"best_ticks", stats.Best.Ticks,
			"elapsed", stats.Elapsed.Round(time.Millisecond),
		)
	}
	return t.best, nil
}
