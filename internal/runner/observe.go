package runner

// NoObstacleDistance is reported when nothing is ahead of the player.
const NoObstacleDistance = 1000

// Observation is what an autopilot sees each tick.
type Observation struct {
	Distance  float64 // Horizontal distance to the nearest obstacle ahead
	Speed     float64
	Flyer     bool    // Whether that obstacle flies
	ObstacleY float64 // Its top edge, 0 when nothing is ahead
}

// Vector returns the observation as network inputs.
func (o Observation) Vector() [4]float64 {
	kind := 0.0
	if o.Flyer {
		kind = 1
	}
	return [4]float64{o.Distance, o.Speed, kind, o.ObstacleY}
}

// Observe reports the nearest obstacle whose left edge is still ahead of the player's.
func (g *Game) Observe() Observation {
	obs := Observation{Distance: NoObstacleDistance, Speed: g.score.Speed()}
	for _, o := range g.spawner.Obstacles() {
		d := o.X - g.player.X
		if d > 0 && d < obs.Distance {
			obs.Distance = d
			obs.Flyer = o.Kind == KindFlyer
			obs.ObstacleY = o.Y
		}
	}
	return obs
}
