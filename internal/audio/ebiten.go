package audio

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

// EbitenPlayer plays cues through the window host's audio context.
type EbitenPlayer struct {
	ctx    *audio.Context
	pcm    map[core.Cue][]byte
	volume float64
	logger *log.Logger
}

// NewEbitenPlayer prepares synthesised cues on the process-wide audio context,
// creating it at SampleRate when none exists yet.
func NewEbitenPlayer(cfg config.AudioConfig, logger *log.Logger) *EbitenPlayer {
	if logger == nil {
		logger = log.Default()
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}

	pcm := make(map[core.Cue][]byte, len(core.Cues))
	for _, cue := range core.Cues {
		pcm[cue] = PCM16(Synth(cue, ctx.SampleRate()), 1)
	}
	return &EbitenPlayer{ctx: ctx, pcm: pcm, volume: cfg.Volume, logger: logger}
}

// Notify implements runner.Notifier. Each cue gets its own player so
// overlapping cues do not cut each other off.
func (p *EbitenPlayer) Notify(cue core.Cue) {
	data, ok := p.pcm[cue]
	if !ok {
		p.logger.Warn("no sound for cue", "cue", cue)
		return
	}
	player := p.ctx.NewPlayerFromBytes(data)
	player.SetVolume(p.volume)
	player.Play()
}
