package atlas

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	ink   = color.RGBA{0x53, 0x53, 0x53, 0xff}
	faint = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
)

// Placeholder builds an in-memory sheet with a flat shape in every sprite
// rectangle, so graphical hosts can run without the external image.
func Placeholder() *image.RGBA {
	w, h := SheetSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for _, s := range All() {
		r := s.Bounds()
		switch s.Family {
		case FamilyCloud:
			draw.Draw(img, r.Inset(2), image.NewUniform(faint), image.Point{}, draw.Src)
		case FamilyGround:
			line := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1)
			draw.Draw(img, line, image.NewUniform(ink), image.Point{}, draw.Src)
			for x := r.Min.X; x < r.Max.X; x += 23 {
				img.Set(x, r.Min.Y+4, ink)
			}
		case FamilyBanner, FamilyRestart:
			outline(img, r, ink)
		default:
			draw.Draw(img, r.Inset(1), image.NewUniform(ink), image.Point{}, draw.Src)
		}
	}
	return img
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}
