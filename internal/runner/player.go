package runner

import (
	"github.com/vovakirdan/trex-runner/internal/atlas"
	"github.com/vovakirdan/trex-runner/internal/config"
	"github.com/vovakirdan/trex-runner/internal/core"
)

// Player is the runner character. Y is the top edge of the standing pose;
// larger Y is lower on the canvas.
type Player struct {
	X, Y      float64
	VelocityY float64
	Frame     int // Running/ducking pose index, 0 or 1
	Jumping   bool
	Ducking   bool

	groundY float64
	cfg     config.PlayerConfig
}

func newPlayer(cfg config.PlayerConfig, groundY float64) Player {
	return Player{X: cfg.X, Y: groundY, groundY: groundY, cfg: cfg}
}

// Grounded reports whether the player rests exactly on the ground line.
func (p *Player) Grounded() bool {
	return !p.Jumping && p.Y == p.groundY
}

// TriggerJump starts a jump. It only takes effect from the ground;
// the return value reports whether it did.
func (p *Player) TriggerJump(speed float64) bool {
	if !p.Grounded() {
		return false
	}
	p.Jumping = true
	p.VelocityY = speed
	return true
}

// ApplyGravity advances one tick of vertical motion and lands the player
// on the ground line once it is reached or crossed.
func (p *Player) ApplyGravity(gravity float64) {
	if !p.Jumping {
		return
	}
	p.VelocityY += gravity
	p.Y += p.VelocityY
	if p.Y >= p.groundY {
		p.Y = p.groundY
		p.VelocityY = 0
		p.Jumping = false
	}
}

// StartDuck lowers the player. While airborne the flag is kept and the duck
// pose applies after landing.
func (p *Player) StartDuck() {
	p.Ducking = true
}

// StopDuck returns to the standing pose. Releasing while not ducking is a no-op.
func (p *Player) StopDuck() {
	p.Ducking = false
}

// Crouched reports whether the duck pose and dimensions are in effect.
func (p *Player) Crouched() bool {
	return p.Ducking && !p.Jumping
}

// Animate toggles the running pose every interval ticks.
func (p *Player) Animate(frame int) {
	if frame%p.cfg.AnimInterval == 0 {
		p.Frame = (p.Frame + 1) % 2
	}
}

// Box returns the collision box. It is bottom-aligned, so ducking shrinks
// the character from the top.
func (p *Player) Box() core.Box {
	if p.Crouched() {
		return core.NewBox(p.X, p.Y+p.cfg.Height-p.cfg.DuckHeight, p.cfg.DuckWidth, p.cfg.DuckHeight)
	}
	return core.NewBox(p.X, p.Y, p.cfg.Width, p.cfg.Height)
}

// Sprite selects the pose: dead, ducking, jumping or running. A duck held
// mid-air shows the ducking pose even though the box stays upright.
func (p *Player) Sprite(dead bool) atlas.Sprite {
	switch {
	case dead:
		return atlas.DinoDead
	case p.Ducking:
		return atlas.DinoDucking[p.Frame]
	case p.Jumping:
		return atlas.DinoIdle
	default:
		return atlas.DinoRunning[p.Frame]
	}
}
