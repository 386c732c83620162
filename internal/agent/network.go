// Package agent drives the runner with a small feed-forward network and
// trains populations of them with a genetic algorithm.
package agent

import (
	"errors"
	"fmt"
	"math"
)

// ErrShape is returned for networks whose layers do not match Shape.
var ErrShape = errors.New("agent: network shape mismatch")

// Shape lists the layer widths: 4 inputs, a linear layer of 4, a ReLU layer of 8
// and a softmax output of 2 (jump, duck).
var Shape = [...]int{4, 4, 8, 2}

const (
	outJump = 0
	outDuck = 1
)

// Rand is the random source used for initialisation and evolution.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
	IntN(n int) int
}

// Layer is a dense layer. Weights[o][i] connects input i to output o.
type Layer struct {
	Weights [][]float64 `msgpack:"weights"`
	Bias    []float64   `msgpack:"bias"`
}

// Network is a dense 4-4-8-2 network.
type Network struct {
	Layers []Layer `msgpack:"layers"`
}

// NewNetwork returns a network with Glorot-uniform weights and zero biases.
func NewNetwork(rng Rand) *Network {
	n := &Network{Layers: make([]Layer, len(Shape)-1)}
	for l := range n.Layers {
		in, out := Shape[l], Shape[l+1]
		limit := math.Sqrt(6 / float64(in+out))
		layer := Layer{Weights: make([][]float64, out), Bias: make([]float64, out)}
		for o := range layer.Weights {
			layer.Weights[o] = make([]float64, in)
			for i := range layer.Weights[o] {
				layer.Weights[o][i] = (rng.Float64()*2 - 1) * limit
			}
		}
		n.Layers[l] = layer
	}
	return n
}

// Validate checks the layer dimensions against Shape.
func (n *Network) Validate() error {
	if n == nil || len(n.Layers) != len(Shape)-1 {
		return ErrShape
	}
	for l, layer := range n.Layers {
		in, out := Shape[l], Shape[l+1]
		if len(layer.Weights) != out || len(layer.Bias) != out {
			return fmt.Errorf("%w: layer %d has %d outputs, expected %d", ErrShape, l, len(layer.Weights), out)
		}
		for _, row := range layer.Weights {
			if len(row) != in {
				return fmt.Errorf("%w: layer %d has %d inputs, expected %d", ErrShape, l, len(row), in)
			}
		}
	}
	return nil
}

// Predict returns the jump and duck probabilities for the inputs.
func (n *Network) Predict(in [4]float64) [2]float64 {
	act := in[:]
	last := len(n.Layers) - 1
	for l, layer := range n.Layers {
		next := make([]float64, len(layer.Weights))
		for o, row := range layer.Weights {
			sum := layer.Bias[o]
			for i, w := range row {
				sum += w * act[i]
			}
			next[o] = sum
		}
		switch {
		case l == last:
			softmax(next)
		case l > 0:
			for i, v := range next {
				next[i] = max(v, 0)
			}
		}
		act = next
	}
	return [2]float64{act[outJump], act[outDuck]}
}

func softmax(v []float64) {
	peak := v[0]
	for _, x := range v[1:] {
		peak = max(peak, x)
	}
	var sum float64
	for i, x := range v {
		v[i] = math.Exp(x - peak)
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
}

// Clone returns a deep copy.
func (n *Network) Clone() *Network {
	c := &Network{Layers: make([]Layer, len(n.Layers))}
	for l, layer := range n.Layers {
		c.Layers[l] = Layer{Weights: make([][]float64, len(layer.Weights)), Bias: append([]float64(nil), layer.Bias...)}
		for o, row := range layer.Weights {
			c.Layers[l].Weights[o] = append([]float64(nil), row...)
		}
	}
	return c
}

// params calls fn with a pointer to every weight and bias in a fixed order.
func (n *Network) params(fn func(p *float64)) {
	for l := range n.Layers {
		for o := range n.Layers[l].Weights {
			for i := range n.Layers[l].Weights[o] {
				fn(&n.Layers[l].Weights[o][i])
			}
		}
		for o := range n.Layers[l].Bias {
			fn(&n.Layers[l].Bias[o])
		}
	}
}
