package roulette

import (
	gomath "math"

	"github.com/Faultbox/roulette/pkg/math"
)

type forceCall struct {
	force, at math.Vec3
}

type fakePhysics struct {
	pos      math.Vec3
	vel      math.Vec3
	angular  math.Vec3
	touching bool
	forces   []forceCall
}

func (p *fakePhysics) BallPosition() math.Vec3 { return p.pos }
func (p *fakePhysics) SetBallPosition(v math.Vec3) { p.pos = v }
func (p *fakePhysics) BallVelocity() math.Vec3 { return p.vel }
func (p *fakePhysics) BallTouchesRing() bool { return p.touching }
func (p *fakePhysics) ApplyBallForce(f, at math.Vec3) { p.forces = append(p.forces, forceCall{f, at}) }

func (p *fakePhysics) SetBallVelocity(linear, angular math.Vec3) {
	p.vel = linear
	p.angular = angular
}

type fakeScene struct {
	meshes      map[string][]float32
	orientation math.Quat
	rotations   int
}

func (s *fakeScene) MeshVertices(name string) ([]float32, bool) {
	buf, ok := s.meshes[name]
	return buf, ok
}

func (s *fakeScene) SetWheelOrientation(q math.Quat) { s.orientation = q }

func (s *fakeScene) RotateWheel(q math.Quat) {
	s.orientation = q.Mul(s.orientation).Normalize()
	s.rotations++
}

// encode writes boundaries to a flat buffer in reverse order, then repeats
// every boundary with its points swapped so extraction has duplicates to drop.
func encode(bs []PocketBoundary) []float32 {
	var buf []float32
	put := func(v math.Vec3) {
		buf = append(buf, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for i := len(bs) - 1; i >= 0; i-- {
		put(bs[i][0])
		put(bs[i][1])
	}
	for _, b := range bs {
		put(b[1])
		put(b[0])
	}
	return buf
}

// stripGeometry lays out 37 boundaries in x-sorted order. After the shuffle,
// boundaries 13 and 14 sit at x=0.10 and x=0.20 spanning z in [-0.05, 0.05];
// every odd sorted boundary is parked at z >= 2 so no other pocket box
// covers (0.15, 0).
func stripGeometry() []PocketBoundary {
	sorted := make([]PocketBoundary, 37)
	for k := range sorted {
		x := 0.10 + float64(k-26)*0.05
		z0, z1 := -0.05, 0.05
		if k%2 == 1 {
			z0, z1 = 2.0, 2.1
		}
		sorted[k] = PocketBoundary{{X: x, Y: 0.1, Z: z0}, {X: x, Y: 0.1, Z: z1}}
	}
	return sorted
}

// ringGeometry builds n radial boundaries on a flat annulus with a quarter
// pocket of angular offset, the way the wheel model is authored.
func ringGeometry(n int, inner, outer float64) []PocketBoundary {
	step := 2 * gomath.Pi / float64(n)
	bs := make([]PocketBoundary, n)
	for k := range bs {
		a := float64(k)*step + step/4
		sin, cos := gomath.Sincos(a)
		bs[k] = PocketBoundary{
			{X: inner * cos, Y: 0.2, Z: inner * sin},
			{X: outer * cos, Y: 0.2, Z: outer * sin},
		}
	}
	return bs
}

func separatorBuffer() []float32 {
	return []float32{0, 0, 0, 0, 1, 0, 0, 0, 0}
}

func newFakes(numbers []float32) (*fakeScene, *fakePhysics) {
	scene := &fakeScene{meshes: map[string][]float32{
		"numbers":    numbers,
		"separators": separatorBuffer(),
	}}
	return scene, &fakePhysics{}
}

func approxVec(a, b math.Vec3, eps float64) bool {
	return gomath.Abs(a.X-b.X) <= eps && gomath.Abs(a.Y-b.Y) <= eps && gomath.Abs(a.Z-b.Z) <= eps
}

// roundTo32 mirrors the float32 precision of a vertex buffer.
func roundTo32(b PocketBoundary) PocketBoundary {
	for i := range b {
		b[i] = math.Vec3{X: float64(float32(b[i].X)), Y: float64(float32(b[i].Y)), Z: float64(float32(b[i].Z))}
	}
	return b
}
