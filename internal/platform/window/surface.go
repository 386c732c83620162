package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/core"
)

var strokeColors = map[core.Color]color.RGBA{
	core.ColorDefault:  {83, 83, 83, 255},
	core.ColorRed:      {255, 0, 0, 255},
	core.ColorGreen:    {0, 255, 0, 255},
	core.ColorYellow:   {255, 200, 0, 255},
	core.ColorBlue:     {0, 0, 255, 255},
	core.ColorCyan:     {0, 200, 200, 255},
	core.ColorWhite:    {255, 255, 255, 255},
	core.ColorGray:     {160, 160, 160, 255},
	core.ColorDarkGray: {83, 83, 83, 255},
}

// surface draws runner frames onto an ebiten image.
type surface struct {
	sheet   *ebiten.Image
	dst     *ebiten.Image
	sprites map[string]*ebiten.Image
}

func newSurface(sheet *ebiten.Image) *surface {
	return &surface{sheet: sheet, sprites: make(map[string]*ebiten.Image)}
}

// sprite returns the sheet region for s, cached by name.
func (s *surface) sprite(sp atlas.Sprite) *ebiten.Image {
	img, ok := s.sprites[sp.Name]
	if !ok {
		img = s.sheet.SubImage(sp.Bounds()).(*ebiten.Image)
		s.sprites[sp.Name] = img
	}
	return img
}

// Blit implements runner.Surface.
func (s *surface) Blit(sp atlas.Sprite, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.dst.DrawImage(s.sprite(sp), op)
}

// StrokeRect implements runner.Surface.
func (s *surface) StrokeRect(b core.Box, c core.Color) {
	clr, ok := strokeColors[c]
	if !ok {
		clr = strokeColors[core.ColorDefault]
	}
	vector.StrokeRect(s.dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, clr, false)
}

// Text implements runner.Surface.
func (s *surface) Text(x, y float64, text string) {
	ebitenutil.DebugPrintAt(s.dst, text, int(x), int(y))
}
