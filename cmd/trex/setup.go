package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/runner"
	"github.com/vovakirdan/trex-runner/internal/storage"
)

const (
	storeSQLite = "sqlite"
	storeGData  = "gdata"
)

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "trex",
		Level:           level,
	}), nil
}

// openLogFile opens ~/.trex/trex.log for appending. Interactive sessions log
// there so log lines never land on the alternate screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".trex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "trex.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// loadRunnerConfig loads the runner config honouring --config.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// stores bundles the persistence selected by --store.
type stores struct {
	high     runner.HighScoreStore
	recorder runner.RunRecorder
	close    func()
}

// openStores opens the selected store. A store that cannot be opened is
// replaced by an in-memory one so the game still runs.
func openStores(logger *log.Logger) (stores, error) {
	switch flagStore {
	case storeSQLite:
		st, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database, scores will not be kept", "error", err)
			return memoryStores(), nil
		}
		return stores{high: st, recorder: st, close: func() { st.Close() }}, nil

	case storeGData:
		gd, err := storage.OpenGData(storage.AppName)
		if err != nil {
			logger.Warn("could not open gdata store, scores will not be kept", "error", err)
			return memoryStores(), nil
		}
		// gdata keeps only the high score; the run history stays in memory.
		return stores{high: gd, recorder: storage.NewMemoryStore(), close: func() {}}, nil
	}
	return stores{}, fmt.Errorf("unknown --store %q (want %s or %s)", flagStore, storeSQLite, storeGData)
}

func memoryStores() stores {
	mem := storage.NewMemoryStore()
	return stores{high: mem, recorder: mem, close: func() {}}
}

// gameOptions returns the runner options shared by every host.
func (s stores) gameOptions(logger *log.Logger) []runner.Option {
	return []runner.Option{
		runner.WithStore(s.high),
		runner.WithRunRecorder(s.recorder),
		runner.WithSeed(flagSeed),
		runner.WithLogger(logger),
	}
}
