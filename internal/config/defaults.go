package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the classic runner tuning.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Canvas: CanvasConfig{
			Width:        800,
			Height:       300,
			GroundMargin: 100,
		},
		Physics: PhysicsConfig{
			Gravity:        0.6,
			JumpSpeed:      -10,
			BaseSpeed:      6,
			SpeedIncrement: 0.1,
			SpeedStep:      100,
		},
		Player: PlayerConfig{
			X:            50,
			Width:        44,
			Height:       47,
			DuckWidth:    59,
			DuckHeight:   30,
			AnimInterval: 6,
		},
		Spawn: SpawnConfig{
			ObstacleInterval:  50,
			ObstacleChance:    0.3,
			FlyerShare:        0.3,
			LargeShare:        0.5,
			SmallCactusOffset: 12, // 35 tall: feet line up with the player's
			LargeCactusOffset: -3, // 50 tall
			FlyerBaseOffset:   5,
			FlyerJitter:       10,
			FlyerAnimInterval: 15,
			CloudInterval:     100,
			CloudChance:       0.5,
			CloudMinY:         20,
			CloudJitter:       30,
			CloudSpeedFactor:  0.5,
		},
		Collision: CollisionConfig{
			Inset: 10,
		},
		Scoring: ScoringConfig{
			DisplayDivisor: 100,
			DisplayDigits:  5,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.3,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
