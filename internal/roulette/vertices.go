package roulette

import "github.com/Faultbox/roulette/pkg/math"

// ExtractVertices converts a flat xyz vertex buffer into points, dropping every
// point that exactly equals one already seen. Shared edges in the wheel mesh
// emit bit-identical duplicates, so no tolerance is applied. Output order is
// first-occurrence order. Trailing values that do not form a full triple are
// ignored.
func ExtractVertices(buf []float32) []math.Vec3 {
	out := make([]math.Vec3, 0, len(buf)/3)
	for i := 0; i+2 < len(buf); i += 3 {
		v := math.FromSlice(buf, i)
		if !containsVertex(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsVertex(vs []math.Vec3, v math.Vec3) bool {
	for _, u := range vs {
		if u == v {
			return true
		}
	}
	return false
}
