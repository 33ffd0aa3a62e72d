package roulette

import (
	"testing"

	"github.com/Faultbox/roulette/pkg/math"
)

func TestLaunchForceQuadrants(t *testing.T) {
	const strength = 100.0
	const bias = -10.0

	tests := []struct {
		name string
		pos  math.Vec3
		want math.Vec3
	}{
		// x >= 0, z >= 0: (x + run, z - rise)
		{"first quadrant", math.Vec3{X: 2, Y: 0.3, Z: 1}, math.Vec3{X: 2 + 100, Y: bias, Z: 1 - 200}},
		// x < 0, z > 0: (x + run, z + rise)
		{"second quadrant", math.Vec3{X: -2, Z: 1}, math.Vec3{X: -2 + 100, Y: bias, Z: 1 + 200}},
		// x < 0, z < 0: (x - run, z + rise)
		{"third quadrant", math.Vec3{X: -2, Z: -1}, math.Vec3{X: -2 - 100, Y: bias, Z: -1 + 200}},
		// x > 0, z < 0: (x - run, z - rise)
		{"fourth quadrant", math.Vec3{X: 2, Z: -1}, math.Vec3{X: 2 - 100, Y: bias, Z: -1 - 200}},
		{"launch point", math.Vec3{X: 2, Y: 0.3, Z: 0}, math.Vec3{X: 2, Y: bias, Z: -200}},
		{"origin", math.Vec3{}, math.Vec3{Y: bias}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LaunchForce(tt.pos, strength, bias)
			if !approxVec(got, tt.want, 1e-9) {
				t.Errorf("LaunchForce(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestLaunchForceMagnitudesAreUnsigned(t *testing.T) {
	// Mirroring the position across an axis mirrors the push, so |rise| and
	// |run| never depend on the sign of the coordinate they came from.
	p := math.Vec3{X: 0.7, Z: 0.4}
	a := LaunchForce(p, 50, -10)
	b := LaunchForce(math.Vec3{X: -p.X, Z: -p.Z}, 50, -10)

	if !approxVec(a.Scale(-1), math.Vec3{X: b.X, Y: -b.Y, Z: b.Z}, 1e-9) {
		t.Errorf("point reflection: %v and %v are not mirrored", a, b)
	}
}
