// trex is an endless runner: jump the cacti, duck the pterodactyls.
//
// Usage:
//
//	trex play               - Play in the terminal
//	trex window             - Play in a desktop window with real sprites
//	trex scores             - Show the run history
//	trex serve              - Start SSH server for remote play
//	trex train              - Evolve an autopilot with a genetic algorithm
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.trex/scores.db)
//	--store <kind>      - High score store: sqlite or gdata
//	--config <path>     - Runner config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trex-runner/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagStore    string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trex",
	Short: "T-Rex Runner - the offline dinosaur game, anywhere",
	Long: `T-Rex Runner is the endless dinosaur runner for terminals, desktops
and SSH sessions, with an autopilot you can train yourself.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  scores   - View the run history
  serve    - Start SSH server for remote play
  train    - Train an autopilot

Examples:
  trex play
  trex play --agent best.msgpack
  trex window --atlas sprites.png --scale 1.5
  trex serve --ssh :2222
  trex train --generations 50 --output best.msgpack`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storeSQLite, "High score store: sqlite or gdata")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(trainCmd)
}
