// Package config provides YAML-based configuration loading for the runner.
// Every gameplay constant is a named tunable with the classic value as default.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when a configuration holds values the runner cannot use.
var ErrInvalid = errors.New("config: invalid runner configuration")

// RunnerConfig contains all configuration for the runner game.
type RunnerConfig struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Collision CollisionConfig `yaml:"collision"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Audio     AudioConfig     `yaml:"audio"`
}

// CanvasConfig defines the logical drawing surface.
type CanvasConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundMargin int `yaml:"ground_margin"` // Distance from the bottom edge to the ground line
}

// GroundY returns the y coordinate of a standing player's top edge.
func (c CanvasConfig) GroundY() float64 {
	return float64(c.Height - c.GroundMargin)
}

// PhysicsConfig defines the vertical motion and scroll speed.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	JumpSpeed      float64 `yaml:"jump_speed"` // Negative: up is towards y=0
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	SpeedStep      int     `yaml:"speed_step"` // Raw score interval between increments
}

// PlayerConfig defines the player character.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	DuckWidth    float64 `yaml:"duck_width"`
	DuckHeight   float64 `yaml:"duck_height"`
	AnimInterval int     `yaml:"anim_interval"`
}

// SpawnConfig defines obstacle and cloud generation.
type SpawnConfig struct {
	ObstacleInterval  int     `yaml:"obstacle_interval"`
	ObstacleChance    float64 `yaml:"obstacle_chance"`
	FlyerShare        float64 `yaml:"flyer_share"` // Share of obstacles that are flying creatures
	LargeShare        float64 `yaml:"large_share"` // Share of cacti that are large
	SmallCactusOffset float64 `yaml:"small_cactus_offset"`
	LargeCactusOffset float64 `yaml:"large_cactus_offset"`
	FlyerBaseOffset   float64 `yaml:"flyer_base_offset"` // Flyers spawn at ground - base - rand*jitter
	FlyerJitter       float64 `yaml:"flyer_jitter"`
	FlyerAnimInterval int     `yaml:"flyer_anim_interval"`
	CloudInterval     int     `yaml:"cloud_interval"`
	CloudChance       float64 `yaml:"cloud_chance"`
	CloudMinY         float64 `yaml:"cloud_min_y"`
	CloudJitter       float64 `yaml:"cloud_jitter"`
	CloudSpeedFactor  float64 `yaml:"cloud_speed_factor"`
}

// CollisionConfig defines the padding applied to both boxes before the overlap test.
type CollisionConfig struct {
	Inset float64 `yaml:"inset"`
}

// ScoringConfig defines how raw ticks turn into displayed points.
type ScoringConfig struct {
	DisplayDivisor int `yaml:"display_divisor"`
	DisplayDigits  int `yaml:"display_digits"`
}

// AudioConfig defines cue playback.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Volume   float64 `yaml:"volume"`    // Linear gain in (0, 1]
	SoundDir string  `yaml:"sound_dir"` // Optional directory with jump.wav, die.wav, point.wav
}

// Validate reports the first value the runner cannot work with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.GroundMargin < 0 || c.Canvas.GroundMargin >= c.Canvas.Height:
		return fmt.Errorf("%w: ground_margin %d outside canvas", ErrInvalid, c.Canvas.GroundMargin)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalid)
	case c.Physics.JumpSpeed >= 0:
		return fmt.Errorf("%w: jump_speed must be negative", ErrInvalid)
	case c.Physics.BaseSpeed < 0 || c.Physics.SpeedIncrement < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalid)
	case c.Physics.SpeedStep <= 0:
		return fmt.Errorf("%w: speed_step must be positive", ErrInvalid)
	case c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.DuckWidth <= 0 || c.Player.DuckHeight <= 0:
		return fmt.Errorf("%w: player dimensions must be positive", ErrInvalid)
	case c.Player.AnimInterval <= 0 || c.Spawn.FlyerAnimInterval <= 0:
		return fmt.Errorf("%w: animation intervals must be positive", ErrInvalid)
	case c.Spawn.ObstacleInterval <= 0 || c.Spawn.CloudInterval <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalid)
	case !isProbability(c.Spawn.ObstacleChance) || !isProbability(c.Spawn.CloudChance) ||
		!isProbability(c.Spawn.FlyerShare) || !isProbability(c.Spawn.LargeShare):
		return fmt.Errorf("%w: probabilities must be within [0, 1]", ErrInvalid)
	case c.Spawn.FlyerJitter < 0 || c.Spawn.CloudJitter < 0:
		return fmt.Errorf("%w: jitter must not be negative", ErrInvalid)
	case c.Collision.Inset < 0:
		return fmt.Errorf("%w: collision inset must not be negative", ErrInvalid)
	case c.Scoring.DisplayDivisor <= 0 || c.Scoring.DisplayDigits <= 0:
		return fmt.Errorf("%w: scoring divisor and digits must be positive", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume must be within [0, 1]", ErrInvalid)
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
