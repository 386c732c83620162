package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trex-runner/internal/audio"
	"github.com/vovakirdan/trex-runner/internal/engine"
	"github.com/vovakirdan/trex-runner/internal/platform/window"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

var (
	flagAtlas string
	flagScale float64
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a window and play with sprites from the atlas image.

Without --atlas a generated placeholder sheet is used. If the atlas cannot
be loaded the window waits and retries every two seconds.

Controls:
  Space/Up     - Jump (also restarts after game over)
  Down         - Duck while held
  Click        - Restart control after game over
  D            - Debug overlay
  Q/Esc        - Quit`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagAtlas, "atlas", "", "Sprite sheet PNG (empty = placeholder)")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale")
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runWindow(cmd *cobra.Command, args []string) {
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

	st, err := openStores(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.close()

	var notifier runner.Notifier = audio.Silent{}
	if !flagMute && cfg.Audio.Enabled {
		notifier = audio.NewEbitenPlayer(cfg.Audio, logger)
	}

	hud := &runner.HUD{}
	opts := append(st.gameOptions(logger), runner.WithDisplay(hud), runner.WithNotifier(notifier))
	loop := engine.NewLoop(runner.New(cfg, opts...), engine.WithLogger(logger))

	g := window.New(loop, hud, window.Options{
		AtlasPath: flagAtlas,
		Scale:     flagScale,
		TickRate:  flagFPS,
	}, logger)

	if err := window.Run(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		st.close()
		os.Exit(1)
	}
}
