// Package atlas describes the runner's sprite sheet: a single image with fixed,
// documented pixel rectangles for every pose and prop.
package atlas

import (
	"errors"
	"image"
)

// ErrNotLoaded is returned by hosts whose atlas image could not be loaded.
var ErrNotLoaded = errors.New("atlas: sprite sheet not loaded")

// Family groups sprites that share a role; terminal hosts pick glyphs by family.
type Family int

const (
	FamilyPlayer Family = iota
	FamilyCactus
	FamilyFlyer
	FamilyCloud
	FamilyGround
	FamilyBanner
	FamilyRestart
)

// Sprite is a sub-rectangle of the sheet.
type Sprite struct {
	Name   string
	Family Family
	X, Y   int
	W, H   int
}

// Bounds returns the source rectangle on the sheet.
func (s Sprite) Bounds() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H)
}

// Character poses.
var (
	DinoIdle    = Sprite{"dino-idle", FamilyPlayer, 848, 0, 44, 47}
	DinoRunning = [2]Sprite{
		{"dino-run-0", FamilyPlayer, 936, 0, 44, 47},
		{"dino-run-1", FamilyPlayer, 980, 0, 44, 47},
	}
	DinoDucking = [2]Sprite{
		{"dino-duck-0", FamilyPlayer, 1112, 0, 59, 47},
		{"dino-duck-1", FamilyPlayer, 1171, 0, 59, 47},
	}
	DinoDead = Sprite{"dino-dead", FamilyPlayer, 1024, 0, 44, 47}
)

// Obstacles. Index is the size variant.
var (
	CactusSmall = [3]Sprite{
		{"cactus-small-0", FamilyCactus, 228, 0, 17, 35},
		{"cactus-small-1", FamilyCactus, 245, 0, 34, 35},
		{"cactus-small-2", FamilyCactus, 279, 0, 51, 35},
	}
	CactusLarge = [3]Sprite{
		{"cactus-large-0", FamilyCactus, 332, 0, 25, 50},
		{"cactus-large-1", FamilyCactus, 357, 0, 50, 50},
		{"cactus-large-2", FamilyCactus, 407, 0, 75, 50},
	}
	Pterodactyl = [2]Sprite{
		{"ptero-0", FamilyFlyer, 134, 0, 46, 40},
		{"ptero-1", FamilyFlyer, 180, 0, 46, 40},
	}
)

// Scenery and overlays.
var (
	Cloud    = Sprite{"cloud", FamilyCloud, 86, 2, 46, 16}
	Ground   = Sprite{"ground", FamilyGround, 2, 54, 1200, 12}
	GameOver = Sprite{"game-over", FamilyBanner, 655, 15, 191, 11}
	Restart  = Sprite{"restart", FamilyRestart, 2, 2, 36, 32}
)

// All returns every sprite on the sheet.
func All() []Sprite {
	out := []Sprite{DinoIdle, DinoDead, Cloud, Ground, GameOver, Restart}
	out = append(out, DinoRunning[:]...)
	out = append(out, DinoDucking[:]...)
	out = append(out, CactusSmall[:]...)
	out = append(out, CactusLarge[:]...)
	out = append(out, Pterodactyl[:]...)
	return out
}

// SheetSize returns the smallest sheet size that holds every sprite.
func SheetSize() (w, h int) {
	for _, s := range All() {
		w = max(w, s.X+s.W)
		h = max(h, s.Y+s.H)
	}
	return w, h
}
