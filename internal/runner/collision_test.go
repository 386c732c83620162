package runner

import (
	"testing"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

func TestCheckCollision(t *testing.T) {
	player := core.NewBox(50, 200, 44, 47) // padded: x [60,84), y [210,237)

	tests := []struct {
		name     string
		obstacle core.Box
		want     bool
	}{
		{"touching padded right edge", core.NewBox(74, 200, 40, 47), false},
		{"one unit into padded right edge", core.NewBox(73, 200, 40, 47), true},
		{"touching padded top edge", core.NewBox(50, 173, 44, 47), false},
		{"one unit into padded top edge", core.NewBox(50, 174, 44, 47), true},
		{"raw overlap inside padding only", core.NewBox(90, 200, 40, 47), false},
		{"far away", core.NewBox(600, 200, 25, 50), false},
		{"thin cactus on centre line", core.NewBox(60, 212, 17, 35), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckCollision(player, tt.obstacle, 10); got != tt.want {
				t.Errorf("CheckCollision(player, %+v) = %v, expected %v", tt.obstacle, got, tt.want)
			}
			if got := CheckCollision(tt.obstacle, player, 10); got != tt.want {
				t.Errorf("CheckCollision(%+v, player) = %v, not symmetric", tt.obstacle, got)
			}
		})
	}
}

func TestFlyerBand(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	s := NewSpawner(cfg.Spawn, 800, 200, quiet)
	inset := cfg.Collision.Inset

	p := newPlayer(cfg.Player, 200)
	stand := p.Box()
	p.StartDuck()
	duck := p.Box()

	// Flyers span tops from ground-15 to ground-5.
	for _, y := range []float64{185, 190, 195} {
		f := s.Flyer(y, p.X).Box()
		if !CheckCollision(stand, f, inset) {
			t.Errorf("flyer at y=%v should hit a standing player", y)
		}
		if CheckCollision(duck, f, inset) {
			t.Errorf("flyer at y=%v should miss a ducking player", y)
		}
	}

	// Cacti cannot be ducked under.
	for _, large := range []bool{false, true} {
		c := s.Cactus(large, 1, p.X).Box()
		if !CheckCollision(duck, c, inset) {
			t.Errorf("cactus (large=%v) should hit a ducking player", large)
		}
	}
}
