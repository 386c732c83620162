// Package window hosts the runner in a desktop window with Ebitengine,
// drawing real sprites from the atlas.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/core"
	"github.com/vovakirdan/trex-runner/internal/engine"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

// RetryInterval is how long the window waits between atlas load attempts.
const RetryInterval = 2 * time.Second

var background = color.RGBA{247, 247, 247, 255}

// Options configures the window.
type Options struct {
	AtlasPath string  // Empty uses the generated placeholder sheet
	Scale     float64 // Window size relative to the canvas
	TickRate  int
	Title     string
}

// Game is the ebiten.Game driving one engine loop.
type Game struct {
	loop   *engine.Loop
	hud    *runner.HUD
	opts   Options
	logger *log.Logger

	surface  *surface
	loadErr  error
	nextLoad time.Time

	canvasW, canvasH int
}

// New creates a window game around loop. hud must be the game's score display.
func New(loop *engine.Loop, hud *runner.HUD, opts Options, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.TickRate <= 0 {
		opts.TickRate = engine.DefaultTickRate
	}
	if opts.Title == "" {
		opts.Title = "T-Rex Runner"
	}
	canvas := loop.Game().Config().Canvas
	return &Game{
		loop:    loop,
		hud:     hud,
		opts:    opts,
		logger:  logger,
		canvasW: canvas.Width,
		canvasH: canvas.Height,
	}
}

// loadSheet reads the atlas image or builds the placeholder.
func loadSheet(path string) (*ebiten.Image, error) {
	if path == "" {
		return ebiten.NewImageFromImage(atlas.Placeholder()), nil
	}

	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", atlas.ErrNotLoaded, path, err)
	}
	w, h := atlas.SheetSize()
	if b := img.Bounds(); b.Dx() < w || b.Dy() < h {
		img.Deallocate()
		return nil, fmt.Errorf("%w: %s is %dx%d, need at least %dx%d", atlas.ErrNotLoaded, path, b.Dx(), b.Dy(), w, h)
	}
	return img, nil
}

// tryLoad attempts an atlas load when the retry interval has passed.
func (g *Game) tryLoad() {
	now := time.Now()
	if now.Before(g.nextLoad) {
		return
	}
	sheet, err := loadSheet(g.opts.AtlasPath)
	if err != nil {
		if g.loadErr == nil || g.loadErr.Error() != err.Error() {
			g.logger.Error("cannot load sprite atlas", "path", g.opts.AtlasPath, "error", err)
		}
		g.loadErr = err
		g.nextLoad = now.Add(RetryInterval)
		return
	}

	if g.loadErr != nil {
		g.logger.Info("sprite atlas loaded", "path", g.opts.AtlasPath)
	}
	g.loadErr = nil
	g.surface = newSurface(sheet)
}

// pushInput turns this frame's key and pointer transitions into events.
func (g *Game) pushInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.loop.Push(core.NewEvent(core.ActionJump))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.loop.Push(core.NewEvent(core.ActionDuck))
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowDown) {
		g.loop.Push(core.NewEvent(core.ActionDuckRelease))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.loop.Push(core.NewEvent(core.ActionToggleDebug))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.loop.Push(core.NewEvent(core.ActionQuit))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.loop.Push(core.ClickAt(float64(x), float64(y)))
	}
}

// Update implements ebiten.Game. The loop does not start until the atlas is loaded.
func (g *Game) Update() error {
	if g.surface == nil {
		g.tryLoad()
		return nil
	}

	g.pushInput()
	if !g.loop.Waiting() {
		g.loop.Step()
	}
	if g.loop.Quit() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.surface == nil {
		msg := "waiting for sprite atlas"
		if g.loadErr != nil {
			msg += "\n" + g.loadErr.Error()
		}
		ebitenutil.DebugPrintAt(screen, msg, 10, g.canvasH/2)
		return
	}

	g.surface.dst = screen
	g.loop.Draw(g.surface)
	hud := g.hud.String()
	// The debug font is 6 pixels wide.
	ebitenutil.DebugPrintAt(screen, hud, g.canvasW-len(hud)*6-10, 10)
}

// Layout implements ebiten.Game with a fixed logical canvas.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.canvasW, g.canvasH
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(g *Game) error {
	ebiten.SetWindowSize(int(float64(g.canvasW)*g.opts.Scale), int(float64(g.canvasH)*g.opts.Scale))
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetTPS(g.opts.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
