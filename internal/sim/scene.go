package sim

import "github.com/Faultbox/roulette/pkg/math"

// Scene holds the wheel meshes and the orientation of the rotating part.
type Scene struct {
	meshes      map[string][]float32
	orientation math.Quat
}

// NewScene builds the numbers and separators meshes of g under the given names.
func NewScene(g Geometry, numbersName, separatorsName string) *Scene {
	return &Scene{
		meshes: map[string][]float32{
			numbersName:    g.NumbersMesh(),
			separatorsName: g.SeparatorsMesh(),
		},
		orientation: math.QuatIdentity(),
	}
}

// MeshVertices returns a named mesh's vertex buffer at the reference orientation.
func (s *Scene) MeshVertices(name string) ([]float32, bool) {
	buf, ok := s.meshes[name]
	return buf, ok
}

// SetWheelOrientation replaces the wheel orientation.
func (s *Scene) SetWheelOrientation(q math.Quat) {
	s.orientation = q
}

// RotateWheel turns the wheel by q on top of its current orientation.
func (s *Scene) RotateWheel(q math.Quat) {
	s.orientation = q.Mul(s.orientation).Normalize()
}

// Orientation returns the current wheel orientation.
func (s *Scene) Orientation() math.Quat {
	return s.orientation
}
