package tui

import (
	"errors"
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
	"github.com/vovakirdan/trex-runner/internal/engine"
	"github.com/vovakirdan/trex-runner/internal/runner"
	"github.com/vovakirdan/trex-runner/internal/storage"
)

// 100x31 cells over the 800x300 canvas: 8 units per column, 10 per row.
func newTestRaster() *Raster {
	return NewRaster(800, 300, 100, 31)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	hud := &runner.HUD{}
	g := runner.New(config.DefaultRunnerConfig(),
		runner.WithSeed(1),
		runner.WithDisplay(hud),
		runner.WithLogger(log.New(io.Discard)),
	)
	loop := engine.NewLoop(g, engine.WithLogger(log.New(io.Discard)))
	return NewModel(loop, hud, core.RuntimeConfig{ScreenW: 100, ScreenH: 31, TickRate: 60})
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}, core.ActionJump, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDuck, false},
		{"s", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, core.ActionDuck, false},
		{"d", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, core.ActionToggleDebug, false},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%s) = %v, %v, expected %v, %v", tt.name, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	r := newTestRaster()

	ev, ok := km.MapMouse(tea.MouseMsg{X: 48, Y: 19, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, r)
	if !ok {
		t.Fatal("left press should map to a click")
	}
	if ev.Action != core.ActionClick || math.Abs(ev.X-388) > 1e-9 || math.Abs(ev.Y-185) > 1e-9 {
		t.Errorf("MapMouse() = %+v, expected click at (388, 185)", ev)
	}

	if _, ok := km.MapMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}, r); ok {
		t.Error("motion should not map to a click")
	}
	if _, ok := km.MapMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, r); ok {
		t.Error("right press should not map to a click")
	}
}

func TestRasterBlit(t *testing.T) {
	r := newTestRaster()
	r.Blit(atlas.CactusLarge[0], 400, 150)

	s := r.Screen()
	for _, c := range [][2]int{{50, 16}, {52, 20}} {
		if got := s.GetCell(c[0], c[1]); got.Rune != '▓' || got.Color != core.ColorGreen {
			t.Errorf("cell %v = %q, expected cactus glyph", c, got.Rune)
		}
	}
	for _, c := range [][2]int{{53, 16}, {50, 15}, {50, 21}} {
		if got := s.Get(c[0], c[1]); got != ' ' {
			t.Errorf("cell %v = %q, expected blank", c, got)
		}
	}
}

func TestRasterGroundIsOneRow(t *testing.T) {
	r := newTestRaster()
	r.Blit(atlas.Ground, -600, 244)

	row := 1 + 24
	if got := r.Screen().Get(0, row); got != '▔' {
		t.Errorf("ground row = %q, expected ground glyph", got)
	}
	if got := r.Screen().Get(0, row+1); got != ' ' {
		t.Errorf("row below ground = %q, expected blank", got)
	}
}

func TestRasterTinySpriteKeepsACell(t *testing.T) {
	r := NewRaster(800, 300, 10, 4)
	r.Blit(atlas.CactusSmall[0], 0, 0)
	if got := r.Screen().Get(0, 1); got != '▓' {
		t.Errorf("tiny sprite cell = %q, expected cactus glyph", got)
	}
}

func TestRasterHUD(t *testing.T) {
	r := newTestRaster()
	r.DrawHUD("HI 00012  00034")

	if row := r.Screen().Row(0); !strings.HasSuffix(row, "HI 00012  00034 ") {
		t.Errorf("Row(0) = %q, expected right-aligned HUD", row)
	}
}

func TestRasterDeadPlayerIsRed(t *testing.T) {
	r := newTestRaster()
	r.Blit(atlas.DinoDead, 80, 100)
	if got := r.Screen().GetCell(10, 11); got.Color != core.ColorRed {
		t.Errorf("dead player colour = %v, expected red", got.Color)
	}
}

func TestModelDuckExpires(t *testing.T) {
	m := newTestModel(t)
	g := m.loop.Game()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if !g.Player().Ducking {
		t.Fatal("player should duck after the key press")
	}

	for range duckHoldTicks - 2 {
		next, _ = m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	if !g.Player().Ducking {
		t.Fatal("duck released before the hold expired")
	}

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if g.Player().Ducking {
		t.Error("duck should be released once the hold expires")
	}
}

func TestModelClickRestart(t *testing.T) {
	m := newTestModel(t)
	g := m.loop.Game()
	g.AddObstacle(runner.Obstacle{Kind: runner.KindCactus, X: 50, Y: 200, Sprite: atlas.CactusLarge[1]})

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if !g.Over() {
		t.Fatal("collision should end the run")
	}

	next, _ = m.Update(tea.MouseMsg{X: 48, Y: 19, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if g.Over() {
		t.Error("click on the restart control should start a new run")
	}
}

func TestModelIdleAfterCollision(t *testing.T) {
	m := newTestModel(t)
	g := m.loop.Game()
	g.AddObstacle(runner.Obstacle{Kind: runner.KindCactus, X: 50, Y: 200, Sprite: atlas.CactusLarge[1]})

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if !m.loop.Waiting() {
		t.Fatal("Waiting() = false after the collision tick")
	}

	for range 5 {
		var cmd tea.Cmd
		next, cmd = m.Update(TickMsg(time.Now()))
		m = next.(Model)
		if cmd == nil {
			t.Fatal("ticks should keep being scheduled while waiting")
		}
	}
	if !m.loop.Waiting() || !g.Over() {
		t.Error("idle ticks should leave the finished run untouched")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if g.Over() {
		t.Error("space after a collision should restart on the next tick")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).Quitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if v := next.(Model).View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	for range 5 {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}

	m.View()
	plain := m.raster.Screen().String()
	if !strings.Contains(plain, "HI 00000  00000") {
		t.Errorf("view should carry the HUD, got first row %q", m.raster.Screen().Row(0))
	}
	if !strings.ContainsRune(plain, '█') {
		t.Error("view should draw the player")
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawTextColored(0, 1, "de", core.ColorRed)

	out := RenderScreen(s)
	if !strings.Contains(out, "abc") || !strings.Contains(out, "de") {
		t.Errorf("RenderScreen() = %q, expected both rows", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", strings.Count(out, "\n"))
	}
}

type brokenHistory struct{}

func (brokenHistory) TopRuns(int) ([]storage.RunEntry, error) {
	return nil, errors.New("disk on fire")
}

func TestScoreboard(t *testing.T) {
	mem := storage.NewMemoryStore()
	mem.RecordRun(1250, 600)
	mem.RecordRun(300, 120)

	m := NewScoreboardModel(mem, config.DefaultRunnerConfig().Scoring, 60, 80, 24)
	rows := m.rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, expected 2", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "00012" || rows[0][2] != "10s" {
		t.Errorf("rows[0] = %v, expected #1, 00012, 10s", rows[0])
	}
	if got := m.Summary(); got != "2 runs  best 00012  avg 00007  played 12s" {
		t.Errorf("Summary() = %q", got)
	}
	if !strings.Contains(m.View(), "T-REX RUNS") {
		t.Error("View() should carry the title")
	}

	broken := NewScoreboardModel(brokenHistory{}, config.DefaultRunnerConfig().Scoring, 60, 80, 24)
	if !strings.Contains(broken.View(), "disk on fire") {
		t.Error("View() should show the load error")
	}
}

func TestSSHSessionsShareStore(t *testing.T) {
	mem := storage.NewMemoryStore()
	if err := mem.SaveHighScore(500); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	srv, err := NewSSHServer(cfg, config.DefaultRunnerConfig(), mem, mem, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() error: %v", err)
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, expected %q", srv.Addr(), cfg.Address)
	}

	a := srv.NewSession("alice", 100, 31)
	b := srv.NewSession("bob", 80, 24)
	if a.loop.Game() == b.loop.Game() {
		t.Fatal("sessions share a game")
	}
	for _, m := range []Model{a, b} {
		if got := m.loop.Game().HighScore(); got != 500 {
			t.Errorf("HighScore() = %d, expected 500 from the shared store", got)
		}
	}
}
