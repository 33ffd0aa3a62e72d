package math

import (
	"math"
	"testing"
)

func approxVec(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}

	v := Vec3{1, 2, 3}
	if got := q.Rotate(v); !approxVec(got, v, 1e-12) {
		t.Errorf("identity Rotate(%v) = %v", v, got)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math.Abs(length-1.0) > 1e-12 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}

	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %v", got)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(UnitY, math.Pi/2)

	expectedW := math.Cos(math.Pi / 4)
	expectedY := math.Sin(math.Pi / 4)

	if math.Abs(q.W-expectedW) > 1e-12 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(q.Y-expectedY) > 1e-12 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateMatchesRotateY(t *testing.T) {
	points := []Vec3{
		{1, 0, 0},
		{0.3, 0.2, -0.7},
		{-2, 0.3, 1.5},
	}
	angles := []float64{0, 0.002, -0.03, math.Pi / 3, -math.Pi, 5.5}

	for _, a := range angles {
		q := QuatFromAxisAngle(UnitY, a)
		for _, p := range points {
			got := q.Rotate(p)
			want := p.RotateY(a)
			if !approxVec(got, want, 1e-12) {
				t.Errorf("angle %v point %v: quat %v, RotateY %v", a, p, got, want)
			}
		}
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(UnitY, 0.4)
	b := QuatFromAxisAngle(UnitY, -1.1)
	p := Vec3{0.5, 1, -0.25}

	got := a.Mul(b).Rotate(p)
	want := a.Rotate(b.Rotate(p))
	if !approxVec(got, want, 1e-12) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestQuatRotateAround(t *testing.T) {
	q := QuatFromAxisAngle(UnitY, math.Pi)
	pivot := Vec3{1, 0, 0}

	got := q.RotateAround(Vec3{2, 5, 0}, pivot)
	want := Vec3{0, 5, 0}
	if !approxVec(got, want, 1e-12) {
		t.Errorf("RotateAround: got %v, want %v", got, want)
	}
}
