// Package sim is a headless stand-in for the engine that hosts the wheel: it
// generates the wheel meshes procedurally and runs a small ball simulation.
package sim

import (
	gomath "math"

	"github.com/Faultbox/roulette/pkg/math"
)

// Geometry describes the procedural wheel.
type Geometry struct {
	Pockets int `yaml:"pockets"`

	// Numbers ring, in world units.
	InnerRadius float64 `yaml:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius"`
	RingHeight  float64 `yaml:"ring_height"`

	// RingTilt lifts the outer edge of the ring so a resting ball rolls to
	// the inner edge of its pocket.
	RingTilt float64 `yaml:"ring_tilt"`

	// SeparatorHeight is how far the dividers stand above the ring.
	SeparatorHeight float64 `yaml:"separator_height"`

	// AngleOffset turns boundary 0 by a fraction of a pocket. It must be
	// strictly between 0 and one half or boundaries on opposite sides of
	// the ring tie when sorted by x.
	AngleOffset float64 `yaml:"angle_offset"`

	// Bowl around the ring: the outer wall and the two slopes that feed the
	// ball onto the ring.
	WallRadius float64 `yaml:"wall_radius"`
	TrackSlope float64 `yaml:"track_slope"`
	ConeSlope  float64 `yaml:"cone_slope"`
}

// DefaultGeometry returns a single-zero wheel sized for a launch point at radius 2.
func DefaultGeometry() Geometry {
	return Geometry{
		Pockets:         37,
		InnerRadius:     1.25,
		OuterRadius:     1.6,
		RingHeight:      0.2,
		RingTilt:        0.05,
		SeparatorHeight: 0.06,
		AngleOffset:     0.25,
		WallRadius:      2.3,
		TrackSlope:      0.3,
		ConeSlope:       0.5,
	}
}

// BoundaryAngle is the polar angle (atan2(z, x)) of boundary k.
func (g Geometry) BoundaryAngle(k int) float64 {
	step := 2 * gomath.Pi / float64(g.Pockets)
	return (float64(k) + g.AngleOffset) * step
}

func (g Geometry) boundary(k int, lift float64) (inner, outer math.Vec3) {
	sin, cos := gomath.Sincos(g.BoundaryAngle(k % g.Pockets))
	inner = math.Vec3{X: g.InnerRadius * cos, Y: g.FloorHeight(g.InnerRadius) + lift, Z: g.InnerRadius * sin}
	outer = math.Vec3{X: g.OuterRadius * cos, Y: g.FloorHeight(g.OuterRadius) + lift, Z: g.OuterRadius * sin}
	return inner, outer
}

// NumbersMesh returns the numbers ring as a triangle list, two triangles per
// pocket. Neighbouring pockets share their boundary vertices, so each
// boundary appears several times in the buffer.
func (g Geometry) NumbersMesh() []float32 {
	buf := make([]float32, 0, g.Pockets*6*3)
	for k := 0; k < g.Pockets; k++ {
		i0, o0 := g.boundary(k, 0)
		i1, o1 := g.boundary(k+1, 0)
		buf = appendVertices(buf, i0, o0, i1, o0, o1, i1)
	}
	return buf
}

// SeparatorsMesh returns one upright quad per boundary.
func (g Geometry) SeparatorsMesh() []float32 {
	buf := make([]float32, 0, g.Pockets*6*3)
	for k := 0; k < g.Pockets; k++ {
		i0, o0 := g.boundary(k, 0)
		i1, o1 := g.boundary(k, g.SeparatorHeight)
		buf = appendVertices(buf, i0, o0, i1, o0, o1, i1)
	}
	return buf
}

// FloorHeight is the height of the bowl surface at radius r.
func (g Geometry) FloorHeight(r float64) float64 {
	rim := g.RingHeight + (g.OuterRadius-g.InnerRadius)*g.RingTilt
	switch {
	case r < g.InnerRadius:
		return g.RingHeight + (g.InnerRadius-r)*g.ConeSlope
	case r > g.OuterRadius:
		return rim + (r-g.OuterRadius)*g.TrackSlope
	default:
		return g.RingHeight + (r-g.InnerRadius)*g.RingTilt
	}
}

// PocketCenter is the midpoint of the pocket between boundaries k and k+1.
func (g Geometry) PocketCenter(k int) math.Vec3 {
	a := (g.BoundaryAngle(k) + g.BoundaryAngle(k+1)) / 2
	r := (g.InnerRadius + g.OuterRadius) / 2
	sin, cos := gomath.Sincos(a)
	return math.Vec3{X: r * cos, Y: g.FloorHeight(r), Z: r * sin}
}

func appendVertices(buf []float32, vs ...math.Vec3) []float32 {
	for _, v := range vs {
		buf = append(buf, float32(v.X), float32(v.Y), float32(v.Z))
	}
	return buf
}
