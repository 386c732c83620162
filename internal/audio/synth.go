// Package audio plays the runner's sound cues. Playback is fire-and-forget:
// a cue that cannot be played is logged and skipped.
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/vovakirdan/trex-runner/internal/core"
)

// SampleRate is the rate every synthesised cue is rendered at.
const SampleRate = 48000

// tone is one segment of a cue: a frequency sweep with a linear fade-out.
type tone struct {
	from, to float64 // Hz
	length   time.Duration
	saw      bool
}

var cueTones = map[core.Cue][]tone{
	core.CueJump:  {{from: 440, to: 880, length: 80 * time.Millisecond}},
	core.CueDie:   {{from: 320, to: 70, length: 300 * time.Millisecond, saw: true}},
	core.CuePoint: {{from: 880, to: 880, length: 70 * time.Millisecond}, {from: 1320, to: 1320, length: 110 * time.Millisecond}},
}

// Synth renders a cue as mono samples in [-1, 1].
// Unknown cues render as silence of zero length.
func Synth(cue core.Cue, rate int) []float64 {
	var out []float64
	for _, t := range cueTones[cue] {
		n := int(float64(rate) * t.length.Seconds())
		phase := 0.0
		for i := range n {
			progress := float64(i) / float64(n)
			freq := t.from + (t.to-t.from)*progress
			phase += freq / float64(rate)
			phase -= math.Floor(phase)

			var v float64
			if t.saw {
				v = 2 * (phase - 0.5)
			} else {
				v = math.Sin(2 * math.Pi * phase)
			}
			out = append(out, v*(1-progress))
		}
	}
	return out
}

// PCM16 encodes mono samples as interleaved 16-bit little-endian stereo,
// scaled by volume.
func PCM16(samples []float64, volume float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := int16(math.Max(-1, math.Min(1, s*volume)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}
