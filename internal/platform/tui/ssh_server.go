package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/trex-runner/internal/audio"
	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
	"github.com/vovakirdan/trex-runner/internal/engine"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

// SSHServerConfig configures `trex serve`.
type SSHServerConfig struct {
	Address     string        // listen address, ":23234" by default
	HostKeyPath string        // generated on first start; empty means ~/.trex/host_key
	IdleTimeout time.Duration // sessions with no traffic are closed after this
	TickRate    int           // simulation rate of every session
}

// DefaultSSHServerConfig returns the settings used when no flags are given.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    engine.DefaultTickRate,
	}
}

// SSHServer serves one independent game per SSH session.
// Sessions share the high score store and run recorder, which must be safe
// for concurrent use.
type SSHServer struct {
	config   SSHServerConfig
	runner   config.RunnerConfig
	store    runner.HighScoreStore
	recorder runner.RunRecorder
	server   *ssh.Server
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server. store and recorder may be nil.
func NewSSHServer(cfg SSHServerConfig, rc config.RunnerConfig, store runner.HighScoreStore, recorder runner.RunRecorder, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}

	srv := &SSHServer{
		config:   cfg,
		runner:   rc,
		store:    store,
		recorder: recorder,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".trex", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionLog,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// NewSession builds the model for one player: a fresh game, silent audio and
// the shared store.
func (s *SSHServer) NewSession(user string, width, height int) Model {
	hud := &runner.HUD{}
	opts := []runner.Option{
		runner.WithDisplay(hud),
		runner.WithNotifier(audio.Silent{}),
		runner.WithLogger(s.logger.With("user", user)),
	}
	if s.store != nil {
		opts = append(opts, runner.WithStore(s.store))
	}
	if s.recorder != nil {
		opts = append(opts, runner.WithRunRecorder(s.recorder))
	}

	g := runner.New(s.runner, opts...)
	loop := engine.NewLoop(g, engine.WithLogger(s.logger))
	return NewModel(loop, hud, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.config.TickRate,
	})
}

// teaHandler starts a game for a session. Sessions without a PTY are refused.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("refusing session without pty", "user", sess.User())
		return nil, nil
	}

	m := s.NewSession(sess.User(), pty.Window.Width, pty.Window.Height)
	return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// sessionLog records who played and for how long.
func (s *SSHServer) sessionLog(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		lg := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		lg.Info("player connected")
		next(sess)
		lg.Info("player left", "played", time.Since(start).Round(time.Second))
	}
}

// Serve accepts sessions until ctx is cancelled, then drains them.
// A listen failure is returned as soon as it happens.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("serving trex over ssh", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("tui: ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("stopping ssh server")
	return s.Shutdown()
}

// Shutdown waits up to ten seconds for open sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
