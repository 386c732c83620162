package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trex-runner/internal/agent"
	"github.com/vovakirdan/trex-runner/internal/audio"
	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
	"github.com/vovakirdan/trex-runner/internal/engine"
	"github.com/vovakirdan/trex-runner/internal/platform/tui"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

var (
	flagAgent  string
	flagMute   bool
	flagSounds string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up/W   - Jump (also restarts after game over)
  Down/S       - Duck (held by key repeat)
  Click        - Restart control after game over
  D            - Debug overlay
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Examples:
  trex play
  trex play --mute
  trex play --sounds ./sounds
  trex play --agent best.msgpack`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagAgent, "agent", "", "Let a trained model (from 'trex train') play")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagSounds, "sounds", "", "Directory with jump.wav, die.wav and point.wav")
}

// newNotifier returns the speaker notifier, or Silent when muted or when the
// speaker cannot be opened. The returned func releases the speaker.
func newNotifier(cfg config.AudioConfig, logger *log.Logger) (runner.Notifier, func()) {
	if flagMute || !cfg.Enabled {
		return audio.Silent{}, func() {}
	}
	if flagSounds != "" {
		cfg.SoundDir = flagSounds
	}
	p, err := audio.NewBeepPlayer(cfg, logger)
	if err != nil {
		logger.Warn("audio disabled", "error", err)
		return audio.Silent{}, func() {}
	}
	return p, p.Close
}

func runPlay(cmd *cobra.Command, args []string) {
	logOut := io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var loopOpts []engine.Option
	if flagAgent != "" {
		model, err := agent.LoadModel(flagAgent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("autopilot loaded", "model", flagAgent, "generation", model.Generation, "score", model.Score)
		loopOpts = append(loopOpts, engine.WithPilot(agent.NewPilot(model.Network)))
	}

	st, err := openStores(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	notifier, closeAudio := newNotifier(cfg.Audio, logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	hud := &runner.HUD{}
	opts := append(st.gameOptions(logger), runner.WithDisplay(hud), runner.WithNotifier(notifier))
	g := runner.New(cfg, opts...)
	loop := engine.NewLoop(g, append(loopOpts, engine.WithLogger(logger))...)

	runErr := tui.Run(loop, hud, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	})

	// Release resources before potential exit
	closeAudio()
	st.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
