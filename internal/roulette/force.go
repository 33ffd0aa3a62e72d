package roulette

import (
	gomath "math"

	"github.com/Faultbox/roulette/pkg/math"
)

// LaunchForce returns the push applied to the ball while it is being launched.
// rise and run are unsigned magnitudes scaled by strength; the sign of each
// planar axis picks which way they are added so the push keeps the ball
// circling the bowl. The Y component is a constant downward bias.
func LaunchForce(pos math.Vec3, strength, downBias float64) math.Vec3 {
	rise := gomath.Abs(pos.X * strength)
	run := gomath.Abs(pos.Z * strength)

	return math.Vec3{
		X: pos.X + sign(pos.Z)*run,
		Y: downBias,
		Z: pos.Z - sign(pos.X)*rise,
	}
}

// sign maps zero to +1 so the axes fall into the positive quadrant.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
