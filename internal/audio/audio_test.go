package audio

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/trex-runner/internal/core"
)

func TestSynthCues(t *testing.T) {
	tests := []struct {
		cue     core.Cue
		samples int
	}{
		{core.CueJump, 3840},
		{core.CueDie, 14400},
		{core.CuePoint, 8640},
	}

	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			got := Synth(tt.cue, SampleRate)
			if d := len(got) - tt.samples; d < -2 || d > 2 {
				t.Errorf("len(Synth(%s)) = %d, expected about %d", tt.cue, len(got), tt.samples)
			}
			for i, v := range got {
				if v < -1 || v > 1 {
					t.Fatalf("sample %d = %v, outside [-1, 1]", i, v)
				}
			}
		})
	}

	if got := Synth(core.Cue(99), SampleRate); len(got) != 0 {
		t.Errorf("unknown cue rendered %d samples", len(got))
	}
}

func TestSynthDeterministic(t *testing.T) {
	a := Synth(core.CuePoint, 22050)
	b := Synth(core.CuePoint, 22050)
	if len(a) != len(b) {
		t.Fatal("lengths differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestPCM16(t *testing.T) {
	out := PCM16([]float64{1, -1, 0.5}, 0.5)
	if len(out) != 12 {
		t.Fatalf("len = %d, expected 12", len(out))
	}

	left := int16(binary.LittleEndian.Uint16(out[0:]))
	right := int16(binary.LittleEndian.Uint16(out[2:]))
	if left != right || left != 16383 {
		t.Errorf("first frame = %d/%d, expected 16383 on both channels", left, right)
	}
	if v := int16(binary.LittleEndian.Uint16(out[4:])); v != -16383 {
		t.Errorf("second frame = %d, expected -16383", v)
	}

	loud := PCM16([]float64{0.9}, 4)
	if v := int16(binary.LittleEndian.Uint16(loud)); v != 32767 {
		t.Errorf("clipped frame = %d, expected 32767", v)
	}
}

func writeWAV(t *testing.T, path string, data []float64, rate int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, newSamples(data), format); err != nil {
		t.Fatalf("wav.Encode: %v", err)
	}
}

func TestLoadCuesPrefersFiles(t *testing.T) {
	dir := t.TempDir()
	custom := make([]float64, 1000)
	for i := range custom {
		custom[i] = 0.25
	}
	writeWAV(t, filepath.Join(dir, "jump.wav"), custom, SampleRate)

	cues := loadCues(dir, log.New(io.Discard))

	if got := cues[core.CueJump].Len(); got != 1000 {
		t.Errorf("jump buffer = %d samples, expected 1000 from the file", got)
	}
	if got, want := cues[core.CueDie].Len(), len(Synth(core.CueDie, SampleRate)); got != want {
		t.Errorf("die buffer = %d samples, expected synthesised %d", got, want)
	}
}

func TestLoadWAVResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "point.wav")
	writeWAV(t, path, Synth(core.CuePoint, 24000), 24000)

	buf, err := loadWAV(path)
	if err != nil {
		t.Fatalf("loadWAV() error: %v", err)
	}
	want := len(Synth(core.CuePoint, 24000)) * 2
	if d := buf.Len() - want; d < -64 || d > 64 {
		t.Errorf("resampled length = %d, expected about %d", buf.Len(), want)
	}
}

func TestLoadWAVErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadWAV(filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadWAV(bad); err == nil {
		t.Error("garbage file should fail")
	}
}

func TestSilent(t *testing.T) {
	var n interface{ Notify(core.Cue) } = Silent{}
	for _, c := range core.Cues {
		n.Notify(c)
	}
}
