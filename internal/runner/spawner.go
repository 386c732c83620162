package runner

import (
	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

// Kind distinguishes ground obstacles from flying ones.
type Kind int

const (
	KindCactus Kind = iota
	KindFlyer
)

// String returns the obstacle kind name.
func (k Kind) String() string {
	if k == KindFlyer {
		return "pterodactyl"
	}
	return "cactus"
}

// Obstacle is anything the player must not touch.
type Obstacle struct {
	Kind   Kind
	X, Y   float64
	Sprite atlas.Sprite
	Frame  int // Flyer wing pose
}

// Box returns the obstacle's collision box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, float64(o.Sprite.W), float64(o.Sprite.H))
}

// Cloud is background decoration with no collision.
type Cloud struct {
	X, Y float64
}

// Spawner owns the obstacle and cloud collections. Entities enter at the
// right edge and are pruned once fully past the left edge; there is no
// other removal path.
type Spawner struct {
	cfg       config.SpawnConfig
	width     float64
	groundY   float64
	rng       Rand
	obstacles []Obstacle
	clouds    []Cloud
}

// NewSpawner creates a spawner for a canvas of the given width.
func NewSpawner(cfg config.SpawnConfig, width, groundY float64, rng Rand) *Spawner {
	return &Spawner{
		cfg:       cfg,
		width:     width,
		groundY:   groundY,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
		clouds:    make([]Cloud, 0, 8),
	}
}

// Reset removes every obstacle and cloud.
func (s *Spawner) Reset() {
	s.obstacles = s.obstacles[:0]
	s.clouds = s.clouds[:0]
}

// Tick spawns, moves and prunes entities for the given frame.
func (s *Spawner) Tick(frame int, speed float64) {
	if frame%s.cfg.ObstacleInterval == 0 && s.rng.Float64() < s.cfg.ObstacleChance {
		s.obstacles = append(s.obstacles, s.newObstacle())
	}
	if frame%s.cfg.CloudInterval == 0 && s.rng.Float64() < s.cfg.CloudChance {
		s.clouds = append(s.clouds, Cloud{
			X: s.width,
			Y: s.cfg.CloudMinY + s.rng.Float64()*s.cfg.CloudJitter,
		})
	}

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.X -= speed
		if o.Kind == KindFlyer && frame%s.cfg.FlyerAnimInterval == 0 {
			o.Frame = (o.Frame + 1) % 2
			o.Sprite = atlas.Pterodactyl[o.Frame]
		}
		if o.X > -float64(o.Sprite.W) {
			kept = append(kept, o)
		}
	}
	s.obstacles = kept

	cloudSpeed := speed * s.cfg.CloudSpeedFactor
	keptClouds := s.clouds[:0]
	for _, c := range s.clouds {
		c.X -= cloudSpeed
		if c.X > -float64(atlas.Cloud.W) {
			keptClouds = append(keptClouds, c)
		}
	}
	s.clouds = keptClouds
}

func (s *Spawner) newObstacle() Obstacle {
	if s.rng.Float64() >= s.cfg.FlyerShare {
		large := s.rng.Float64() < s.cfg.LargeShare
		return s.Cactus(large, s.rng.IntN(3), s.width)
	}
	return s.Flyer(s.groundY-s.cfg.FlyerBaseOffset-s.rng.Float64()*s.cfg.FlyerJitter, s.width)
}

// Cactus builds a ground obstacle of the given size variant at x.
func (s *Spawner) Cactus(large bool, variant int, x float64) Obstacle {
	if large {
		return Obstacle{Kind: KindCactus, X: x, Y: s.groundY + s.cfg.LargeCactusOffset, Sprite: atlas.CactusLarge[variant]}
	}
	return Obstacle{Kind: KindCactus, X: x, Y: s.groundY + s.cfg.SmallCactusOffset, Sprite: atlas.CactusSmall[variant]}
}

// Flyer builds a flying obstacle with its top edge at y.
func (s *Spawner) Flyer(y, x float64) Obstacle {
	return Obstacle{Kind: KindFlyer, X: x, Y: y, Sprite: atlas.Pterodactyl[0]}
}

// Add inserts an obstacle directly.
func (s *Spawner) Add(o Obstacle) {
	s.obstacles = append(s.obstacles, o)
}

// Obstacles returns the live obstacles, oldest first.
func (s *Spawner) Obstacles() []Obstacle {
	return s.obstacles
}

// Clouds returns the live clouds, oldest first.
func (s *Spawner) Clouds() []Cloud {
	return s.clouds
}
