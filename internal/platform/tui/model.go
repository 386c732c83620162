package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trex-runner/internal/core"
	"github.com/vovakirdan/trex-runner/internal/engine"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

// duckHoldTicks is how long a duck lasts without a repeated key press.
// Terminals report no key releases, so auto-repeat keeps a held key ducking.
const duckHoldTicks = 10

// Model is the Bubble Tea model running one game.
type Model struct {
	loop     *engine.Loop
	hud      *runner.HUD
	raster   *Raster
	keys     *KeyMapper
	config   core.RuntimeConfig
	duckHold *int
	quitting bool
}

// NewModel creates a model around loop. hud must be the game's score display.
func NewModel(loop *engine.Loop, hud *runner.HUD, cfg core.RuntimeConfig) Model {
	canvas := loop.Game().Config().Canvas
	if cfg.TickRate <= 0 {
		cfg.TickRate = engine.DefaultTickRate
	}
	return Model{
		loop:     loop,
		hud:      hud,
		raster:   NewRaster(float64(canvas.Width), float64(canvas.Height), cfg.ScreenW, cfg.ScreenH),
		keys:     NewKeyMapper(),
		config:   cfg,
		duckHold: new(int),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.keys.MapMouse(msg, m.raster); ok {
			m.loop.Push(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.raster.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionDuck:
		*m.duckHold = duckHoldTicks
	}
	m.loop.Push(core.NewEvent(action))
	return m, nil
}

// handleTick expires a held duck and steps the simulation once. After a
// collision the simulation is left alone until input arrives.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if *m.duckHold > 0 {
		*m.duckHold--
		if *m.duckHold == 0 {
			m.loop.Push(core.NewEvent(core.ActionDuckRelease))
		}
	}

	if !m.loop.Waiting() {
		m.loop.Step()
	}
	if m.loop.Quit() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current frame as plain text under ~/.trex/screenshots.
func (m Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".trex", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("trex_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.raster.Screen().String()), 0o600)
}

func (m Model) render() {
	m.raster.Clear()
	m.loop.Draw(m.raster)
	m.raster.DrawHUD(m.hud.String())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.raster.Screen())
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(loop *engine.Loop, hud *runner.HUD, cfg core.RuntimeConfig) error {
	model := NewModel(loop, hud, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
