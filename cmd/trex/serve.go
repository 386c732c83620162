package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trex-runner/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKeyPath string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so players can run from anywhere.

Every session gets its own game; the high score and run history are shared.

Example:
  trex serve --ssh :23234
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Host key path (default ~/.trex/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Close idle sessions after this long")
}

func runServe(cmd *cobra.Command, args []string) {
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

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKeyPath
	sshCfg.IdleTimeout = flagIdleTimeout
	sshCfg.TickRate = flagFPS

	srv, err := tui.NewSSHServer(sshCfg, cfg, st.high, st.recorder, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		st.close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
