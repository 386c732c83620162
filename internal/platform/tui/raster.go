package tui

import (
	"math"
	"strings"

	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/core"
)

// hudRows are the screen rows above the canvas.
const hudRows = 1

type glyph struct {
	r rune
	c core.Color
}

var familyGlyphs = map[atlas.Family]glyph{
	atlas.FamilyPlayer:  {'█', core.ColorWhite},
	atlas.FamilyCactus:  {'▓', core.ColorGreen},
	atlas.FamilyFlyer:   {'▼', core.ColorYellow},
	atlas.FamilyCloud:   {'░', core.ColorGray},
	atlas.FamilyGround:  {'▔', core.ColorDarkGray},
	atlas.FamilyBanner:  {' ', core.ColorRed},
	atlas.FamilyRestart: {' ', core.ColorYellow},
}

const (
	bannerText  = "G A M E   O V E R"
	restartText = "[↻]"
)

// Raster is a runner.Surface that scales the canvas onto a character screen.
// The top row is reserved for the score display.
type Raster struct {
	screen  *core.Screen
	canvasW float64
	canvasH float64
}

// NewRaster creates a raster for a canvas of the given size shown in cols x rows cells.
func NewRaster(canvasW, canvasH float64, cols, rows int) *Raster {
	return &Raster{
		screen:  core.NewScreen(cols, rows),
		canvasW: canvasW,
		canvasH: canvasH,
	}
}

// Screen returns the character buffer.
func (r *Raster) Screen() *core.Screen { return r.screen }

// Resize changes the terminal size.
func (r *Raster) Resize(cols, rows int) { r.screen.Resize(cols, rows) }

// Clear blanks every cell.
func (r *Raster) Clear() { r.screen.Clear() }

func (r *Raster) scale() (sx, sy float64) {
	rows := max(r.screen.Height()-hudRows, 1)
	return float64(r.screen.Width()) / r.canvasW, float64(rows) / r.canvasH
}

// rect returns the cells covered by a canvas box, at least one cell in each direction.
func (r *Raster) rect(b core.Box) core.Rect {
	sx, sy := r.scale()
	x0 := int(math.Floor(b.X * sx))
	y0 := int(math.Floor(b.Y * sy))
	x1 := max(int(math.Round(b.Right()*sx)), x0+1)
	y1 := max(int(math.Round(b.Bottom()*sy)), y0+1)
	return core.NewRect(x0, y0+hudRows, x1-x0, y1-y0)
}

// ToCanvas maps a cell to the canvas coordinates of its centre.
func (r *Raster) ToCanvas(col, row int) (x, y float64) {
	sx, sy := r.scale()
	return (float64(col) + 0.5) / sx, (float64(row-hudRows) + 0.5) / sy
}

// Blit implements runner.Surface.
func (r *Raster) Blit(s atlas.Sprite, x, y float64) {
	rect := r.rect(core.NewBox(x, y, float64(s.W), float64(s.H)))
	g := familyGlyphs[s.Family]

	switch s.Family {
	case atlas.FamilyGround:
		rect.H = 1
	case atlas.FamilyBanner:
		r.centerText(rect, bannerText, g.c)
		return
	case atlas.FamilyRestart:
		r.centerText(rect, restartText, g.c)
		return
	case atlas.FamilyPlayer:
		if s == atlas.DinoDead {
			g.c = core.ColorRed
		}
	}
	r.screen.FillRect(rect, core.Cell{Rune: g.r, Color: g.c})
}

func (r *Raster) centerText(rect core.Rect, text string, c core.Color) {
	n := len([]rune(text))
	x := rect.X + (rect.W-n)/2
	y := rect.Y + (rect.H-1)/2
	r.screen.DrawTextColored(x, y, text, c)
}

// StrokeRect implements runner.Surface.
func (r *Raster) StrokeRect(b core.Box, c core.Color) {
	rect := r.rect(b)
	if rect.W < 2 || rect.H < 2 {
		r.screen.FillRect(rect, core.Cell{Rune: '·', Color: c})
		return
	}
	r.screen.DrawBox(rect, c)
}

// Text implements runner.Surface.
func (r *Raster) Text(x, y float64, s string) {
	sx, sy := r.scale()
	r.screen.DrawTextColored(int(x*sx), int(y*sy)+hudRows, s, core.ColorCyan)
}

// DrawHUD writes the score text right-aligned on the top row.
func (r *Raster) DrawHUD(s string) {
	s = strings.TrimSpace(s)
	r.screen.DrawTextColored(r.screen.Width()-len([]rune(s))-1, 0, s, core.ColorWhite)
}
