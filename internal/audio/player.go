package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

const beepRate = beep.SampleRate(SampleRate)

var cueFormat = beep.Format{SampleRate: beepRate, NumChannels: 2, Precision: 2}

// Silent is a notifier that plays nothing.
type Silent struct{}

// Notify implements runner.Notifier.
func (Silent) Notify(core.Cue) {}

// BeepPlayer plays cues through the system speaker.
type BeepPlayer struct {
	mu      sync.Mutex
	buffers map[core.Cue]*beep.Buffer
	volume  float64
	logger  *log.Logger
	closed  bool
}

// NewBeepPlayer opens the speaker and prepares every cue. Cues come from
// <sound_dir>/<cue>.wav when present and are synthesised otherwise.
func NewBeepPlayer(cfg config.AudioConfig, logger *log.Logger) (*BeepPlayer, error) {
	if logger == nil {
		logger = log.Default()
	}

	if err := speaker.Init(beepRate, beepRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	return &BeepPlayer{
		buffers: loadCues(cfg.SoundDir, logger),
		volume:  cfg.Volume,
		logger:  logger,
	}, nil
}

// Notify implements runner.Notifier. It never blocks on playback.
func (p *BeepPlayer) Notify(cue core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	buf, ok := p.buffers[cue]
	if !ok || buf.Len() == 0 {
		p.logger.Warn("no sound for cue", "cue", cue)
		return
	}
	speaker.Play(newVolume(buf.Streamer(0, buf.Len()), p.volume))
}

// Close stops playback and releases the speaker.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}

func loadCues(dir string, logger *log.Logger) map[core.Cue]*beep.Buffer {
	out := make(map[core.Cue]*beep.Buffer, len(core.Cues))
	for _, cue := range core.Cues {
		if dir != "" {
			buf, err := loadWAV(filepath.Join(dir, cue.String()+".wav"))
			if err == nil {
				out[cue] = buf
				continue
			}
			logger.Warn("cannot load sound, using synthesised cue", "cue", cue, "error", err)
		}
		out[cue] = synthBuffer(cue)
	}
	return out
}

// loadWAV decodes a WAV file into a buffer at the speaker's rate.
func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != beepRate {
		s = beep.Resample(4, format.SampleRate, beepRate, s)
	}

	buf := beep.NewBuffer(cueFormat)
	buf.Append(s)
	return buf, nil
}

func synthBuffer(cue core.Cue) *beep.Buffer {
	buf := beep.NewBuffer(cueFormat)
	buf.Append(newSamples(Synth(cue, SampleRate)))
	return buf
}

// samples streams mono values on both channels.
type samples struct {
	data []float64
	pos  int
}

func newSamples(data []float64) *samples {
	return &samples{data: data}
}

func (s *samples) Stream(out [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	for n < len(out) && s.pos < len(s.data) {
		out[n][0] = s.data[s.pos]
		out[n][1] = s.data[s.pos]
		n++
		s.pos++
	}
	return n, true
}

func (s *samples) Err() error { return nil }

// newVolume scales a stream by a linear gain; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
