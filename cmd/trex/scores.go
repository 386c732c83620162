package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trex-runner/internal/platform/tui"
	"github.com/vovakirdan/trex-runner/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs from the scores database.

On a terminal the history opens as a scrollable table; when piped it is
printed as plain text.

Examples:
  trex scores
  trex scores --limit 5 | cat
  trex scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (the high score is kept)")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")
		return
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 80, 24
		}
		if err := tui.RunScoreboard(store, cfg.Scoring, flagFPS, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("T-Rex Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'trex play' to set the first high score!")
		return
	}

	divisor := max(cfg.Scoring.DisplayDivisor, 1)
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Seconds", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "-------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %0*d     %-8.1f  %s\n",
			i+1,
			cfg.Scoring.DisplayDigits, r.Score/divisor,
			float64(r.Ticks)/float64(max(flagFPS, 1)),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %0*d  Average: %.1f\n",
			stats.Runs, cfg.Scoring.DisplayDigits, stats.Best/divisor, stats.AvgScore/float64(divisor))
	}
	if high, err := store.LoadHighScore(); err == nil {
		fmt.Printf("High score: %0*d\n", cfg.Scoring.DisplayDigits, high/divisor)
	}
}
