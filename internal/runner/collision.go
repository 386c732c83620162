package runner

import "github.com/vovakirdan/trex-runner/internal/core"

// CheckCollision reports whether a and b overlap after both are shrunk by
// inset on every side. It is symmetric and has no side effects.
func CheckCollision(a, b core.Box, inset float64) bool {
	return a.Inset(inset).Intersects(b.Inset(inset))
}
