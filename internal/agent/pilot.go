package agent

import (
	"github.com/vovakirdan/trex-runner/internal/core"
	"github.com/vovakirdan/trex-runner/internal/runner"
)

// Input scales bring every observation feature to roughly [0, 1].
const (
	distanceScale = runner.NoObstacleDistance
	speedScale    = 20.0
	heightScale   = 300.0
)

// Pilot turns network predictions into player actions.
type Pilot struct {
	net     *Network
	ducking bool
}

// NewPilot returns a pilot driven by n.
func NewPilot(n *Network) *Pilot {
	return &Pilot{net: n}
}

// Inputs converts an observation into scaled network inputs.
func Inputs(obs runner.Observation) [4]float64 {
	v := obs.Vector()
	return [4]float64{v[0] / distanceScale, v[1] / speedScale, v[2], v[3] / heightScale}
}

// Act jumps when the jump output passes 0.5, ducks when the duck output
// does and otherwise releases a held duck.
func (p *Pilot) Act(obs runner.Observation) core.Action {
	out := p.net.Predict(Inputs(obs))
	switch {
	case out[outJump] > 0.5:
		return core.ActionJump
	case out[outDuck] > 0.5:
		p.ducking = true
		return core.ActionDuck
	case p.ducking:
		p.ducking = false
		return core.ActionDuckRelease
	}
	return core.ActionNone
}
