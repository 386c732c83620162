package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trex-runner/internal/agent"
	"github.com/vovakirdan/trex-runner/internal/engine"
)

var (
	flagPopulation  int
	flagGenerations int
	flagOutput      string
	flagMaxTicks    int
	flagWorkers     int
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train an autopilot",
	Long: `Evolve neural-network autopilots with a genetic algorithm.

Every network plays a headless game per generation; the fittest are kept
and bred. The best network seen is written to --output, also when training
is interrupted with Ctrl+C.

Examples:
  trex train
  trex train --population 50 --generations 20 --output quick.msgpack
  trex play --agent best.msgpack`,
	Args: cobra.NoArgs,
	Run:  runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagPopulation, "population", 100, "Population size")
	trainCmd.Flags().IntVar(&flagGenerations, "generations", 100, "Number of generations")
	trainCmd.Flags().StringVar(&flagOutput, "output", "best.msgpack", "Where to save the best model")
	trainCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", agent.DefaultMaxTicks, "Tick cap per game")
	trainCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Games evaluated in parallel")
}

func runTrain(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ga := agent.DefaultGAConfig()
	ga.Size = flagPopulation
	ga.Elite = min(ga.Elite, flagPopulation)
	ga.Tournament = min(ga.Tournament, flagPopulation)

	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = engine.DefaultTickRate
	}

	trainer, err := agent.NewTrainer(cfg,
		agent.WithGA(ga),
		agent.WithWorkers(flagWorkers),
		agent.WithMaxTicks(flagMaxTicks),
		agent.WithTickRate(tickRate),
		agent.WithTrainSeed(flagSeed),
		agent.WithTrainLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting training", "population", ga.Size, "generations", flagGenerations, "workers", flagWorkers)
	best, trainErr := trainer.Train(ctx, flagGenerations)
	if trainErr != nil && !errors.Is(trainErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", trainErr)
		os.Exit(1)
	}
	if best == nil {
		logger.Warn("no generation finished, nothing to save")
		return
	}

	if err := agent.SaveModel(flagOutput, best); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("best model saved", "path", flagOutput, "generation", best.Generation, "score", best.Score, "fitness", best.Fitness)
}
