package agent

import (
	"fmt"
	"slices"
)

// GAConfig tunes the genetic algorithm.
type GAConfig struct {
	Size          int
	Elite         int
	Tournament    int
	MutationRate  float64
	MutationSigma float64
}

// DefaultGAConfig returns the standard settings: 100 networks, 10 elites,
// tournaments of 5 and a 10% chance of a N(0, 0.1) nudge per parameter.
func DefaultGAConfig() GAConfig {
	return GAConfig{
		Size:          100,
		Elite:         10,
		Tournament:    5,
		MutationRate:  0.1,
		MutationSigma: 0.1,
	}
}

// Validate rejects settings the algorithm cannot run with.
func (c GAConfig) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("agent: population size must be positive, got %d", c.Size)
	case c.Elite < 0 || c.Elite > c.Size:
		return fmt.Errorf("agent: elite %d outside [0, %d]", c.Elite, c.Size)
	case c.Tournament <= 0:
		return fmt.Errorf("agent: tournament size must be positive, got %d", c.Tournament)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("agent: mutation rate %v outside [0, 1]", c.MutationRate)
	}
	return nil
}

// Fitness weighs score over survival time.
func Fitness(score int, seconds float64) float64 {
	return float64(score)*1.5 + seconds*0.5
}

// Population is one generation of networks.
type Population struct {
	Members []*Network
	cfg     GAConfig
	rng     Rand
}

// NewPopulation creates cfg.Size random networks.
func NewPopulation(cfg GAConfig, rng Rand) (*Population, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Population{Members: make([]*Network, cfg.Size), cfg: cfg, rng: rng}
	for i := range p.Members {
		p.Members[i] = NewNetwork(rng)
	}
	return p, nil
}

// Evolve replaces the members with the next generation: the elite carried
// over unchanged, then mutated children of tournament-selected parents.
func (p *Population) Evolve(fitness []float64) error {
	if len(fitness) != len(p.Members) {
		return fmt.Errorf("agent: %d fitness values for %d members", len(fitness), len(p.Members))
	}

	order := make([]int, len(p.Members))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case fitness[a] > fitness[b]:
			return -1
		case fitness[a] < fitness[b]:
			return 1
		}
		return 0
	})

	next := make([]*Network, 0, p.cfg.Size)
	for _, i := range order[:p.cfg.Elite] {
		next = append(next, p.Members[i])
	}
	for len(next) < p.cfg.Size {
		a := p.Members[p.tournament(fitness)]
		b := p.Members[p.tournament(fitness)]
		child := crossover(a, b, p.rng)
		mutate(child, p.cfg.MutationRate, p.cfg.MutationSigma, p.rng)
		next = append(next, child)
	}
	p.Members = next
	return nil
}

// tournament draws cfg.Tournament members with replacement and returns the fittest.
func (p *Population) tournament(fitness []float64) int {
	best := p.rng.IntN(len(p.Members))
	for range p.cfg.Tournament - 1 {
		if i := p.rng.IntN(len(p.Members)); fitness[i] > fitness[best] {
			best = i
		}
	}
	return best
}

// crossover picks every parameter from either parent with equal chance.
func crossover(a, b *Network, rng Rand) *Network {
	child := a.Clone()
	var other []float64
	b.params(func(p *float64) { other = append(other, *p) })

	i := 0
	child.params(func(p *float64) {
		if rng.Float64() >= 0.5 {
			*p = other[i]
		}
		i++
	})
	return child
}

func mutate(n *Network, rate, sigma float64, rng Rand) {
	n.params(func(p *float64) {
		if rng.Float64() < rate {
			*p += rng.NormFloat64() * sigma
		}
	})
}
