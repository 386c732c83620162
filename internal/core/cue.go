package core

// Cue names a sound effect the runner asks its host to play.
type Cue int

const (
	CueJump Cue = iota
	CueDie
	CuePoint
)

// Cues lists every cue, in declaration order.
var Cues = []Cue{CueJump, CueDie, CuePoint}

// String returns the cue name, which doubles as the sound file stem.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueDie:
		return "die"
	case CuePoint:
		return "point"
	default:
		return "unknown"
	}
}
