package roulette

import (
	gomath "math"

	"github.com/Faultbox/roulette/pkg/math"
)

// RotateY turns every boundary point about the vertical axis by angle radians
// by stepping its polar angle in the XZ plane. Heights are untouched.
// Positive angles turn the same way as RotateQuat(QuatFromAxisAngle(UnitY, angle)).
func (t PocketTable) RotateY(angle float64) {
	angle = gomath.Mod(angle, 2*gomath.Pi)

	for i := range t {
		for j := range t[i] {
			v := t[i][j]
			p := v.XZ()
			polar := p.Angle() - angle
			r := p.Length()
			v.X = r * gomath.Cos(polar)
			v.Z = r * gomath.Sin(polar)
			t[i][j] = v
		}
	}
}

// RotateQuat applies q to every boundary point about the origin.
func (t PocketTable) RotateQuat(q math.Quat) {
	for i := range t {
		for j := range t[i] {
			t[i][j] = q.Rotate(t[i][j])
		}
	}
}
